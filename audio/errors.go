// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize    = errors.New("dst size must be multiple of channels")
	ErrInvalidSampleRate = errors.New("sample rate must be positive")
	ErrNoChannels        = errors.New("source has no channels")

	// ErrNoAudioTrack is returned by decoders when the container parses but
	// carries nothing they can turn into samples.
	ErrNoAudioTrack = errors.New("no audio track")

	// ErrNoProgress is returned when a source keeps answering reads with
	// neither samples nor an error.
	ErrNoProgress = errors.New("source made no progress")
)
