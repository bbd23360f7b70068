// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis streams with
// github.com/jfreymuth/oggvorbis.
//
// Only the first logical bitstream of the Ogg container is read. Ogg files
// carrying Opus, Speex or FLAC are rejected when the Vorbis identification
// header is missing.
//
//	src, err := vorbis.Decoder{}.Decode(file)
package vorbis
