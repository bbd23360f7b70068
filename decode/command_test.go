// SPDX-License-Identifier: EPL-2.0

package decode

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTool writes an executable shell script standing in for a transcoder.
// The scripts run sequentially: writing an executable while another test
// forks can fail with ETXTBSY.
func fakeTool(t *testing.T, name, body string) string {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("fake tools are shell scripts")
	}

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755))
	return path
}

func inputFs(t *testing.T) afero.Fs {
	t.Helper()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/music/my song.ogg", []byte("OggS"), 0o644))
	require.NoError(t, fs.MkdirAll("/music/albums", 0o755))
	return fs
}

func TestFFmpeg_Decode(t *testing.T) {
	argsFile := filepath.Join(t.TempDir(), "args")
	bin := fakeTool(t, "ffmpeg", `printf '%s\n' "$@" > "`+argsFile+`"
printf '\001\000\377\177\000\200\007'`)

	f := &FFmpeg{Binary: bin, Fs: inputFs(t)}
	rec, err := f.Decode(context.Background(), "/music/my song.ogg")
	require.NoError(t, err)

	assert.Equal(t, []int16{1, 32767, -32768}, rec.Samples)
	assert.Equal(t, "/music/my song.ogg", rec.Path)

	args, err := os.ReadFile(argsFile)
	require.NoError(t, err)
	assert.Equal(t, f.Args("/music/my song.ogg"), strings.Split(strings.TrimSuffix(string(args), "\n"), "\n"))
}

func TestFFmpeg_Args(t *testing.T) {
	t.Parallel()

	got := strings.Join(NewFFmpeg().Args("in.mp3"), " ")
	assert.Equal(t,
		"-nostdin -hide_banner -loglevel error -i in.mp3 -map 0:a:0 -vn -f s16le -acodec pcm_s16le -ac 1 -ar 44100 pipe:1",
		got)
}

func TestFFmpeg_Failures(t *testing.T) {
	tests := []struct {
		name     string
		script   string
		path     string
		kind     Kind
		exitCode int
		diag     string
	}{
		{
			name:     "no audio stream",
			script:   `echo "Stream map '0:a:0' matches no streams." >&2; exit 1`,
			path:     "/music/my song.ogg",
			kind:     NoDecodableTrack,
			exitCode: 1,
			diag:     "Stream map '0:a:0' matches no streams.",
		},
		{
			name:     "tool error",
			script:   `echo "Invalid data found when processing input" >&2; exit 3`,
			path:     "/music/my song.ogg",
			kind:     ExternalToolFailure,
			exitCode: 3,
			diag:     "Invalid data found when processing input",
		},
		{
			name:   "empty output",
			script: `exit 0`,
			path:   "/music/my song.ogg",
			kind:   UnsupportedOrCorruptFormat,
		},
		{
			name:   "missing input",
			script: `exit 0`,
			path:   "/music/gone.ogg",
			kind:   SourceUnreadable,
		},
		{
			name:   "directory input",
			script: `exit 0`,
			path:   "/music/albums",
			kind:   SourceUnreadable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &FFmpeg{Binary: fakeTool(t, "ffmpeg", tt.script), Fs: inputFs(t)}

			_, err := f.Decode(context.Background(), tt.path)

			var de *Error
			require.ErrorAs(t, err, &de)
			assert.Equal(t, tt.kind, de.Kind, "error: %v", err)
			if tt.exitCode != 0 {
				assert.Equal(t, tt.exitCode, de.ExitCode)
			}
			assert.Equal(t, tt.diag, de.Diagnostic)
		})
	}
}

func TestFFmpeg_MissingBinary(t *testing.T) {
	t.Parallel()

	f := &FFmpeg{Binary: filepath.Join(t.TempDir(), "no-such-ffmpeg"), Fs: inputFs(t)}

	_, err := f.Decode(context.Background(), "/music/my song.ogg")
	assert.ErrorIs(t, err, ErrDecoderUnavailable)
}

func TestFFmpeg_TimeoutKillsProcess(t *testing.T) {
	f := &FFmpeg{
		Binary:  fakeTool(t, "ffmpeg", `exec sleep 10`),
		Fs:      inputFs(t),
		Timeout: 100 * time.Millisecond,
	}

	start := time.Now()
	_, err := f.Decode(context.Background(), "/music/my song.ogg")

	assert.Less(t, time.Since(start), 5*time.Second)
	assert.ErrorIs(t, err, ErrExternalToolFailure)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	var de *Error
	require.ErrorAs(t, err, &de)
	assert.Equal(t, -1, de.ExitCode)
}

func TestGStreamer_Args(t *testing.T) {
	t.Parallel()

	got := strings.Join(NewGStreamer().Args(`/music/my "best" song.ogg`), " ")
	assert.Equal(t,
		`-q filesrc location="/music/my \"best\" song.ogg" ! decodebin ! audioconvert ! audioresample ! `+
			`audio/x-raw,format=S16LE,layout=interleaved,channels=1,rate=44100 ! fdsink fd=1`,
		got)
}

func TestGStreamer_Decode(t *testing.T) {
	g := &GStreamer{
		Binary: fakeTool(t, "gst-launch-1.0", `printf '\012\000\366\377'`),
		Fs:     inputFs(t),
	}

	rec, err := g.Decode(context.Background(), "/music/my song.ogg")
	require.NoError(t, err)
	assert.Equal(t, []int16{10, -10}, rec.Samples)
}

func TestGStreamer_Failures(t *testing.T) {
	tests := []struct {
		name   string
		script string
		kind   Kind
	}{
		{
			name:   "video only",
			script: `echo "ERROR: from element /GstPipeline:pipeline0/GstDecodeBin:decodebin0: Internal data stream error. streaming stopped, reason not-linked (-1)" >&2; exit 1`,
			kind:   NoDecodableTrack,
		},
		{
			name:   "missing plugin",
			script: `echo "ERROR: Your GStreamer installation is missing a plug-in." >&2; exit 1`,
			kind:   DecoderUnavailable,
		},
		{
			name:   "unknown type",
			script: `echo "ERROR: Could not determine type of stream." >&2; exit 1`,
			kind:   UnsupportedOrCorruptFormat,
		},
		{
			name:   "other",
			script: `echo "ERROR: something else" >&2; exit 2`,
			kind:   ExternalToolFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := &GStreamer{Binary: fakeTool(t, "gst-launch-1.0", tt.script), Fs: inputFs(t)}

			_, err := g.Decode(context.Background(), "/music/my song.ogg")
			assert.Equal(t, tt.kind, KindOf(err), "error: %v", err)
		})
	}
}

func TestPCMFromS16LE(t *testing.T) {
	t.Parallel()

	assert.Empty(t, pcmFromS16LE(nil))
	assert.Empty(t, pcmFromS16LE([]byte{0x01}))
	assert.Equal(t, []int16{-2, 256}, pcmFromS16LE([]byte{0xFE, 0xFF, 0x00, 0x01, 0x55}))
}

func TestBoundedBuffer(t *testing.T) {
	t.Parallel()

	b := &boundedBuffer{limit: 5}
	n, err := b.Write([]byte("abc"))
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = b.Write([]byte("defgh"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	assert.Equal(t, "abcde [truncated]", b.String())
}
