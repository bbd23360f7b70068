// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MPEG-1/2 Layer III streams with
// github.com/hajimehoshi/go-mp3.
//
// go-mp3 always emits 16-bit stereo, so the returned audio.Source reports two
// channels even for mono files (both channels carry the same signal and
// average back to it). The native sample rate of the stream is kept;
// resampling is left to the audio package.
//
//	src, err := mp3.Decoder{}.Decode(file)
package mp3
