// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/ik5/audsort/utils"
)

// ResampleToMono16 drains src into mono 16-bit PCM at targetRate.
//
// The pipeline is:
//  1. resample to targetRate with cubic interpolation (skipped when src
//     already runs at targetRate, so those decodes are lossless)
//  2. average all channels down to mono
//  3. convert float32 samples to int16 with rounding and clamping
//
// bufferSize is the number of mono samples pulled per read; a value <= 0
// uses src.BufSize(). ctx is checked between reads. The source is not
// closed; that stays with whoever opened it.
func ResampleToMono16(ctx context.Context, src Source, targetRate int, bufferSize int) ([]int16, error) {
	if targetRate <= 0 || src.SampleRate() <= 0 {
		return nil, ErrInvalidSampleRate
	}
	if src.Channels() <= 0 {
		return nil, ErrNoChannels
	}
	if bufferSize <= 0 {
		bufferSize = max(src.BufSize(), 4096)
	}

	var stage Source = src
	if src.SampleRate() != targetRate {
		stage = NewResampler(src, targetRate)
	}
	mono := NewMonoMixer(stage)

	pcm16 := make([]int16, 0, targetRate)
	buf := make([]float32, bufferSize)
	idle := 0

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		n, err := mono.ReadSamples(buf)
		for i := range n {
			pcm16 = append(pcm16, utils.Float32ToInt16(buf[i]))
		}

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading samples: %w", err)
		}

		if n == 0 {
			idle++
			if idle > maxIdleReads {
				return nil, ErrNoProgress
			}
			continue
		}
		idle = 0
	}

	return pcm16, nil
}
