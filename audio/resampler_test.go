// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"math"
	"testing"

	"github.com/ik5/audsort/internal/audiotest"
)

func TestResampler_Metadata(t *testing.T) {
	t.Parallel()

	r := NewResampler(audiotest.NewSilentSource(44100, 2, 1000), 8000)

	if r.SampleRate() != 8000 {
		t.Errorf("SampleRate() = %d, want 8000", r.SampleRate())
	}
	if r.Channels() != 2 {
		t.Errorf("Channels() = %d, want 2", r.Channels())
	}
}

func TestResampler_SameRateIsIdentity(t *testing.T) {
	t.Parallel()

	wave := func(i, _ int) float32 { return float32(i%200-100) / 128 }
	src := audiotest.NewMockSource(8000, 1, 1000, wave)

	got := drainSource(t, NewResampler(src, 8000), 64)
	if len(got) != 1000 {
		t.Fatalf("got %d samples, want 1000", len(got))
	}
	for i, v := range got {
		if want := wave(i, 0); v != want {
			t.Fatalf("sample %d = %v, want %v", i, v, want)
		}
	}
}

func TestResampler_OutputLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		srcRate  int
		dstRate  int
		frames   int
		channels int
		want     int // output frames
	}{
		{name: "44.1k to 8k", srcRate: 44100, dstRate: 8000, frames: 44100, channels: 1, want: 8000},
		{name: "48k to 44.1k", srcRate: 48000, dstRate: 44100, frames: 48000, channels: 2, want: 44100},
		{name: "8k to 16k", srcRate: 8000, dstRate: 16000, frames: 8000, channels: 1, want: 15999},
		{name: "22.05k to 44.1k stereo", srcRate: 22050, dstRate: 44100, frames: 2205, channels: 2, want: 4409},
		{name: "single frame", srcRate: 8000, dstRate: 44100, frames: 1, channels: 1, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := audiotest.NewSineSource(tt.srcRate, tt.channels, tt.frames, 440)
			got := drainSource(t, NewResampler(src, tt.dstRate), 1000*tt.channels)

			if len(got) != tt.want*tt.channels {
				t.Errorf("got %d frames, want %d", len(got)/tt.channels, tt.want)
			}
		})
	}
}

func TestResampler_PreservesSignal(t *testing.T) {
	t.Parallel()

	// a 100 Hz tone survives 48k -> 44.1k with its amplitude intact
	src := audiotest.NewSineSource(48000, 1, 48000, 100)
	got := drainSource(t, NewResampler(src, 44100), 4096)

	var peak float64
	for _, v := range got {
		peak = math.Max(peak, math.Abs(float64(v)))
	}
	if peak < 0.95 || peak > 1.05 {
		t.Errorf("peak amplitude = %v, want ≈1", peak)
	}
}

func TestResampler_EmptySource(t *testing.T) {
	t.Parallel()

	got := drainSource(t, NewResampler(audiotest.NewSilentSource(8000, 1, 0), 44100), 16)
	if len(got) != 0 {
		t.Errorf("got %d samples from an empty source", len(got))
	}
}

func TestResampler_InvalidDstSize(t *testing.T) {
	t.Parallel()

	r := NewResampler(audiotest.NewSilentSource(8000, 2, 100), 16000)
	if _, err := r.ReadSamples(make([]float32, 3)); !errors.Is(err, ErrInvalidDstSize) {
		t.Errorf("ReadSamples() error = %v, want ErrInvalidDstSize", err)
	}
}

func TestResampler_InvalidRate(t *testing.T) {
	t.Parallel()

	r := NewResampler(audiotest.NewSilentSource(8000, 1, 100), 0)
	if _, err := r.ReadSamples(make([]float32, 4)); !errors.Is(err, ErrInvalidSampleRate) {
		t.Errorf("ReadSamples() error = %v, want ErrInvalidSampleRate", err)
	}
}

func TestResampler_PropagatesSourceErrors(t *testing.T) {
	t.Parallel()

	r := NewResampler(audiotest.NewFailingSource(8000, 1, 10000, 0.1), 44100)
	buf := make([]float32, 512)

	for range 1000 {
		_, err := r.ReadSamples(buf)
		if errors.Is(err, audiotest.ErrInjected) {
			return
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v, want ErrInjected", err)
		}
	}
	t.Fatal("source error never surfaced")
}

func BenchmarkResampler_Downsample(b *testing.B) {
	buf := make([]float32, 4096)

	b.ReportAllocs()
	for range b.N {
		r := NewResampler(audiotest.NewSineSource(48000, 2, 48000, 440), 44100)
		for {
			if _, err := r.ReadSamples(buf); err != nil {
				break
			}
		}
	}
}
