// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"fmt"

	goaiff "github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"
	"github.com/spf13/afero"
)

// EncodeWAV encodes interleaved integer samples with go-audio's encoder, so
// fixtures can cover bit depths the 16-bit writer does not.
func EncodeWAV(sampleRate, bitDepth, channels int, data []int) ([]byte, error) {
	fs := afero.NewMemMapFs()
	f, err := fs.Create("fixture.wav")
	if err != nil {
		return nil, err
	}
	defer f.Close()

	enc := gowav.NewEncoder(f, sampleRate, bitDepth, channels, 1)
	if err := enc.Write(intBuffer(sampleRate, bitDepth, channels, data)); err != nil {
		return nil, fmt.Errorf("encoding wav fixture: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("finalising wav fixture: %w", err)
	}

	return afero.ReadFile(fs, "fixture.wav")
}

// EncodeAIFF is the AIFF counterpart of EncodeWAV.
func EncodeAIFF(sampleRate, bitDepth, channels int, data []int) ([]byte, error) {
	fs := afero.NewMemMapFs()
	f, err := fs.Create("fixture.aiff")
	if err != nil {
		return nil, err
	}
	defer f.Close()

	enc := goaiff.NewEncoder(f, sampleRate, bitDepth, channels)
	if err := enc.Write(intBuffer(sampleRate, bitDepth, channels, data)); err != nil {
		return nil, fmt.Errorf("encoding aiff fixture: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("finalising aiff fixture: %w", err)
	}

	return afero.ReadFile(fs, "fixture.aiff")
}

func intBuffer(sampleRate, bitDepth, channels int, data []int) *goaudio.IntBuffer {
	return &goaudio.IntBuffer{
		Data: data,
		Format: &goaudio.Format{
			NumChannels: channels,
			SampleRate:  sampleRate,
		},
		SourceBitDepth: bitDepth,
	}
}
