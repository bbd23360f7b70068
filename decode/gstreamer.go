// SPDX-License-Identifier: EPL-2.0

package decode

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/afero"
)

// GStreamer decodes through a gst-launch-1.0 pipeline.
type GStreamer struct {
	// Binary is the executable name or path; "gst-launch-1.0" when empty.
	Binary  string
	Fs      afero.Fs
	Timeout time.Duration
	Logger  *slog.Logger
}

var gstreamerRules = []diagnosticRule{
	{contains: "not-linked", kind: NoDecodableTrack},
	{contains: "no audio", kind: NoDecodableTrack},
	{contains: "missing a plug-in", kind: DecoderUnavailable},
	{contains: "no suitable plugins", kind: DecoderUnavailable},
	{contains: "could not determine type of stream", kind: UnsupportedOrCorruptFormat},
}

func NewGStreamer() *GStreamer {
	return &GStreamer{Binary: "gst-launch-1.0", Fs: afero.NewOsFs()}
}

// Args is the gst-launch argument list used for path. gst-launch joins its
// arguments into one pipeline description, so the location is quoted.
func (g *GStreamer) Args(path string) []string {
	caps := fmt.Sprintf("audio/x-raw,format=S16LE,layout=interleaved,channels=%d,rate=%d", Channels, SampleRate)

	return []string{
		"-q",
		"filesrc", "location=" + quoteLocation(path),
		"!", "decodebin",
		"!", "audioconvert",
		"!", "audioresample",
		"!", caps,
		"!", "fdsink", "fd=1",
	}
}

func (g *GStreamer) Decode(ctx context.Context, path string) (*Record, error) {
	t := &tool{
		strategy: "gstreamer",
		binary:   orDefault(g.Binary, "gst-launch-1.0"),
		fs:       orOsFs(g.Fs),
		timeout:  g.Timeout,
		rules:    gstreamerRules,
		logger:   orDefaultLogger(g.Logger),
	}
	return t.decode(ctx, path, g.Args(path))
}

func quoteLocation(path string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return `"` + r.Replace(path) + `"`
}
