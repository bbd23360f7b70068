// SPDX-License-Identifier: EPL-2.0

// Package flac decodes FLAC streams with github.com/mewkiz/flac.
//
// Frames are decoded one at a time as samples are read, so memory use stays
// at one frame regardless of file length. Channel decorrelation (left/side,
// mid/side) is undone by the library; samples of any bit depth up to 32 are
// normalised to float32 in [-1,1).
//
//	src, err := flac.Decoder{}.Decode(file)
//	defer src.Close()
package flac
