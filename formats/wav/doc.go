// SPDX-License-Identifier: EPL-2.0

// Package wav decodes RIFF/WAVE files and writes 16-bit PCM ones.
//
// Decoding goes through github.com/go-audio/wav, so files with extra chunks
// (LIST, fact, bext) before the data chunk are fine. Integer PCM at 8, 16,
// 24 and 32 bits is accepted, in both the plain and the extensible format
// tag. IEEE float and compressed WAV variants are rejected with
// ErrUnsupportedEncoding.
//
//	src, err := wav.Decoder{}.Decode(file)
//	if errors.Is(err, wav.ErrNotWavFile) {
//	    // not RIFF/WAVE at all
//	}
//
// Samples come out of the returned audio.Source as float32 in [-1,1).
//
// WriteWAV16 produces the canonical 44-byte header layout; it is what the
// test fixtures across the module are built with.
package wav
