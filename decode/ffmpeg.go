// SPDX-License-Identifier: EPL-2.0

package decode

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/spf13/afero"
)

// FFmpeg decodes by transcoding through the ffmpeg command line tool.
type FFmpeg struct {
	// Binary is the executable name or path; "ffmpeg" when empty.
	Binary string
	Fs     afero.Fs
	// Timeout kills a single decode that runs longer; zero means no limit.
	Timeout time.Duration
	Logger  *slog.Logger
}

var ffmpegRules = []diagnosticRule{
	{contains: "matches no streams", kind: NoDecodableTrack},
	{contains: "does not contain any stream", kind: NoDecodableTrack},
}

func NewFFmpeg() *FFmpeg {
	return &FFmpeg{Binary: "ffmpeg", Fs: afero.NewOsFs()}
}

// Args is the ffmpeg argument list used for path.
func (f *FFmpeg) Args(path string) []string {
	return []string{
		"-nostdin", "-hide_banner", "-loglevel", "error",
		"-i", path,
		"-map", "0:a:0", "-vn",
		"-f", "s16le", "-acodec", "pcm_s16le",
		"-ac", strconv.Itoa(Channels),
		"-ar", strconv.Itoa(SampleRate),
		"pipe:1",
	}
}

func (f *FFmpeg) Decode(ctx context.Context, path string) (*Record, error) {
	t := &tool{
		strategy: "ffmpeg",
		binary:   orDefault(f.Binary, "ffmpeg"),
		fs:       orOsFs(f.Fs),
		timeout:  f.Timeout,
		rules:    ffmpegRules,
		logger:   orDefaultLogger(f.Logger),
	}
	return t.decode(ctx, path, f.Args(path))
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func orOsFs(fs afero.Fs) afero.Fs {
	if fs == nil {
		return afero.NewOsFs()
	}
	return fs
}

func orDefaultLogger(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.Default()
	}
	return l
}
