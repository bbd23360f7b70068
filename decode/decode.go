// SPDX-License-Identifier: EPL-2.0

package decode

import (
	"context"
	"time"
)

// Canonical record format.
const (
	SampleRate = 44100
	Channels   = 1
)

// Decoder turns the file at path into a Record.
//
// Implementations either return a Record with at least one sample or an
// *Error; a partially decoded file is never returned.
type Decoder interface {
	Decode(ctx context.Context, path string) (*Record, error)
}

// Record is a decoded file: signed 16-bit mono samples at SampleRate.
// A Record is not modified after it is returned.
type Record struct {
	Path    string
	Samples []int16
}

func (r *Record) Len() int { return len(r.Samples) }

// Duration of the audio at SampleRate.
func (r *Record) Duration() time.Duration {
	return time.Duration(len(r.Samples)) * time.Second / SampleRate
}
