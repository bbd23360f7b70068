// SPDX-License-Identifier: EPL-2.0

// Package audio provides the streaming primitives the decoders are built on.
//
// # Source Interface
//
// Every format decoder returns a Source of interleaved float32 samples in
// the range [-1.0, 1.0]:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// ReadSamples returns io.EOF once the stream is drained, possibly together
// with the last samples. Any other error means the stream is broken.
//
// # Processing
//
// Sources can be chained:
//
//	resampled := audio.NewResampler(src, 44100)
//	mono := audio.NewMonoMixer(resampled)
//
// ResampleToMono16 runs that chain to completion and returns 16-bit PCM.
// When the source already runs at the requested rate the resampler is left
// out, so decoding 44.1 kHz PCM is bit exact.
//
// # Format Registry
//
// A Registry maps format names and file extensions to decoders:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{}, "wave")
//	name, decoder, ok := registry.ForFile("take1.WAVE")
//
// Detect sniffs a file header and reports which registry key to try.
package audio
