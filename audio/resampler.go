// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"

	"github.com/ik5/audsort/utils"
)

// maxIdleReads bounds how many empty, error-free reads are tolerated from a
// source before giving up with ErrNoProgress.
const maxIdleReads = 64

// Resampler streams from src to target sample rate using cubic interpolation.
// Works on interleaved samples; preserves channel count.
// Includes basic anti-aliasing filtering when downsampling.
type Resampler struct {
	src      Source
	dstRate  int
	ratio    float64 // source frames consumed per output frame
	channels int

	// frames[1] is the frame at the integer read position; frames[0] is the
	// one before it, frames[2] and frames[3] follow it.
	frames   [4][]float32
	hasFrame [4]bool
	primed   bool
	done     bool

	// fractional position between frames[1] and frames[2]
	pos float64

	// read-ahead block from the source
	srcBuf []float32
	srcPos int
	srcLen int
	eof    bool

	// one-pole low-pass state, only used when downsampling
	useFilter   bool
	filterInit  bool
	filterAlpha float32
	filterState []float32
}

func NewResampler(src Source, dstRate int) *Resampler {
	channels := max(src.Channels(), 1)

	var ratio float64
	if dstRate > 0 {
		ratio = float64(src.SampleRate()) / float64(dstRate)
	}

	block := max(src.BufSize(), 4096)
	block -= block % channels

	r := &Resampler{
		src:         src,
		dstRate:     dstRate,
		ratio:       ratio,
		channels:    channels,
		srcBuf:      make([]float32, block),
		useFilter:   ratio > 1.0,
		filterAlpha: 0.5,
		filterState: make([]float32, channels),
	}

	for i := range r.frames {
		r.frames[i] = make([]float32, channels)
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	return r.src.Close()
}

// nextFrame copies the next source frame into dst. It reports false once the
// source is exhausted.
func (r *Resampler) nextFrame(dst []float32) (bool, error) {
	idle := 0
	for r.srcPos+r.channels > r.srcLen {
		if r.eof {
			return false, nil
		}

		n, err := r.src.ReadSamples(r.srcBuf)
		r.srcPos = 0
		r.srcLen = n - n%r.channels

		if errors.Is(err, io.EOF) {
			r.eof = true
		} else if err != nil {
			return false, err
		}

		if n == 0 && !r.eof {
			idle++
			if idle > maxIdleReads {
				return false, ErrNoProgress
			}
		}
	}

	copy(dst, r.srcBuf[r.srcPos:r.srcPos+r.channels])
	r.srcPos += r.channels

	if r.useFilter {
		if !r.filterInit {
			copy(r.filterState, dst)
			r.filterInit = true
		}
		for c := range r.channels {
			// y[n] = alpha * x[n] + (1-alpha) * y[n-1]
			dst[c] = r.filterAlpha*dst[c] + (1-r.filterAlpha)*r.filterState[c]
			r.filterState[c] = dst[c]
		}
	}

	return true, nil
}

// prime loads the first frames. The first frame is duplicated into
// frames[0] so output starts exactly on source frame zero.
func (r *Resampler) prime() error {
	r.primed = true

	ok, err := r.nextFrame(r.frames[1])
	if err != nil {
		return err
	}
	if !ok {
		r.done = true
		return nil
	}
	copy(r.frames[0], r.frames[1])
	r.hasFrame[0], r.hasFrame[1] = true, true

	if r.hasFrame[2], err = r.nextFrame(r.frames[2]); err != nil || !r.hasFrame[2] {
		return err
	}
	r.hasFrame[3], err = r.nextFrame(r.frames[3])

	return err
}

// shift advances the window by one source frame.
func (r *Resampler) shift() error {
	f := r.frames
	r.frames = [4][]float32{f[1], f[2], f[3], f[0]}
	r.hasFrame[0], r.hasFrame[1], r.hasFrame[2] = r.hasFrame[1], r.hasFrame[2], r.hasFrame[3]

	var err error
	r.hasFrame[3], err = r.nextFrame(r.frames[3])

	return err
}

// ReadSamples produces dst samples at the target rate.
// dst length should be a multiple of Channels().
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if r.dstRate <= 0 || r.ratio <= 0 {
		return 0, ErrInvalidSampleRate
	}

	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	written := 0
	framesNeeded := len(dst) / r.channels

	for !r.done && written < framesNeeded {
		for r.pos >= 1.0 {
			r.pos -= 1.0
			if err := r.shift(); err != nil {
				return written * r.channels, err
			}
		}

		// Past the last source frame: only an exact hit on it is valid.
		if !r.hasFrame[1] || (!r.hasFrame[2] && r.pos > 0) {
			r.done = true
			break
		}

		alpha := float32(r.pos)
		out := dst[written*r.channels : (written+1)*r.channels]

		for c := range r.channels {
			y0 := r.frames[0][c]
			y1 := r.frames[1][c]

			y2 := y1
			if r.hasFrame[2] {
				y2 = r.frames[2][c]
			}

			y3 := y2
			if r.hasFrame[3] {
				y3 = r.frames[3][c]
			}

			out[c] = utils.CubicInterpolate(y0, y1, y2, y3, alpha)
		}

		written++
		r.pos += r.ratio
	}

	if r.done {
		return written * r.channels, io.EOF
	}

	return written * r.channels, nil
}
