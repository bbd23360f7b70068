// SPDX-License-Identifier: EPL-2.0

package decode

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_IsMatchesKindSentinel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind     Kind
		sentinel error
	}{
		{SourceUnreadable, ErrSourceUnreadable},
		{UnsupportedOrCorruptFormat, ErrUnsupportedOrCorruptFormat},
		{NoDecodableTrack, ErrNoDecodableTrack},
		{DecoderUnavailable, ErrDecoderUnavailable},
		{ExternalToolFailure, ErrExternalToolFailure},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			t.Parallel()

			err := fmt.Errorf("loading batch: %w", newError(tt.kind, "a.wav", StageOpen, fs.ErrNotExist))

			assert.ErrorIs(t, err, tt.sentinel)
			assert.ErrorIs(t, err, fs.ErrNotExist)
			assert.Equal(t, tt.kind, KindOf(err))

			for _, other := range tests {
				if other.kind != tt.kind {
					assert.NotErrorIs(t, err, other.sentinel)
				}
			}
		})
	}
}

func TestKindOf_ForeignErrors(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Unknown, KindOf(nil))
	assert.Equal(t, Unknown, KindOf(context.Canceled))
	assert.Equal(t, Unknown, KindOf(errors.New("other")))
	assert.Equal(t, "unknown", Unknown.String())
}

func TestError_Message(t *testing.T) {
	t.Parallel()

	err := &Error{
		Kind:       ExternalToolFailure,
		Path:       "song.ogg",
		Stage:      StageExec,
		ExitCode:   1,
		Diagnostic: "Invalid data found when processing input",
		Err:        errors.New("exit status 1"),
	}

	assert.Equal(t,
		`decoding "song.ogg": external tool failed at exec: exit status 1 (exit code 1): Invalid data found when processing input`,
		err.Error())

	plain := newError(UnsupportedOrCorruptFormat, "x.wav", StageDecode, errNoSamples)
	assert.Equal(t, `decoding "x.wav": unsupported or corrupt format at decode: no samples decoded`, plain.Error())
}

func TestRecord_Helpers(t *testing.T) {
	t.Parallel()

	rec := &Record{Path: "a.wav", Samples: make([]int16, SampleRate/2)}

	assert.Equal(t, SampleRate/2, rec.Len())
	assert.Equal(t, "500ms", rec.Duration().String())
	assert.Zero(t, (&Record{}).Duration())
}
