// SPDX-License-Identifier: EPL-2.0

package decode

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/ik5/audsort/audio"
	"github.com/ik5/audsort/formats"
	"github.com/spf13/afero"
)

// Native decodes in process through an audio.Registry.
type Native struct {
	Fs       afero.Fs
	Registry *audio.Registry
	Logger   *slog.Logger
}

// NewNative returns a Native decoder reading from the OS filesystem with
// every built-in format registered.
func NewNative() *Native {
	return &Native{
		Fs:       afero.NewOsFs(),
		Registry: formats.NewRegistry(),
	}
}

func (n *Native) Decode(ctx context.Context, path string) (*Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, newError(Unknown, path, StageOpen, err)
	}

	fs := orOsFs(n.Fs)
	registry := n.Registry
	if registry == nil {
		registry = formats.NewRegistry()
	}
	log := orDefaultLogger(n.Logger).With("path", path, "strategy", "native")

	info, err := fs.Stat(path)
	if err != nil {
		return nil, newError(SourceUnreadable, path, StageOpen, err)
	}
	if info.IsDir() {
		return nil, newError(SourceUnreadable, path, StageOpen, errIsDirectory)
	}

	f, err := fs.Open(path)
	if err != nil {
		return nil, newError(SourceUnreadable, path, StageOpen, err)
	}
	defer f.Close()

	header := make([]byte, audio.HeaderSize)
	read, err := io.ReadFull(f, header)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, newError(SourceUnreadable, path, StageProbe, err)
	}
	if read == 0 {
		return nil, newError(UnsupportedOrCorruptFormat, path, StageProbe, errEmptyFile)
	}

	det := audio.Detect(header[:read], path)
	log.Debug("format detected", "format", det.Format, "mime", det.MIME, "magic", det.Magic)

	dec, ok := registry.Get(det.Format)
	switch {
	case !ok && det.Magic:
		return nil, newError(DecoderUnavailable, path, StageProbe,
			fmt.Errorf("no decoder for %s (%s)", det.Format, det.MIME))
	case !ok:
		return nil, newError(UnsupportedOrCorruptFormat, path, StageProbe,
			fmt.Errorf("unrecognised content (%s)", det.MIME))
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, newError(SourceUnreadable, path, StageProbe, err)
	}

	src, err := openStream(dec, f)
	if err != nil {
		return nil, n.trackError(path, det, err)
	}
	defer src.Close()

	log.Debug("stream opened", "rate", src.SampleRate(), "channels", src.Channels())

	samples, err := drain(ctx, src)
	switch {
	case err == nil:
	case ctx.Err() != nil:
		return nil, newError(Unknown, path, StageDecode, err)
	case errors.Is(err, audio.ErrNoChannels):
		return nil, newError(NoDecodableTrack, path, StageTrack, err)
	case errors.Is(err, audio.ErrInvalidSampleRate):
		return nil, newError(UnsupportedOrCorruptFormat, path, StageConvert, err)
	default:
		return nil, newError(UnsupportedOrCorruptFormat, path, StageDecode, err)
	}

	if len(samples) == 0 {
		return nil, newError(UnsupportedOrCorruptFormat, path, StageDecode, errNoSamples)
	}

	log.Debug("decoded", "samples", len(samples))

	return &Record{Path: path, Samples: samples}, nil
}

// trackError classifies a decoder that refused the stream. A video
// container the audio decoder cannot read has no decodable track rather
// than being corrupt.
func (n *Native) trackError(path string, det audio.Detection, err error) error {
	if errors.Is(err, audio.ErrNoAudioTrack) || strings.HasPrefix(det.MIME, "video/") {
		return newError(NoDecodableTrack, path, StageTrack, err)
	}
	return newError(UnsupportedOrCorruptFormat, path, StageTrack, err)
}

// openStream and drain turn a panic inside a third-party format decoder
// into an error, so one malformed file cannot take down a whole batch.
func openStream(dec audio.Decoder, r io.Reader) (src audio.Source, err error) {
	defer func() {
		if p := recover(); p != nil {
			src, err = nil, fmt.Errorf("%w: %v", errDecoderPanic, p)
		}
	}()

	return dec.Decode(r)
}

func drain(ctx context.Context, src audio.Source) (samples []int16, err error) {
	defer func() {
		if p := recover(); p != nil {
			samples, err = nil, fmt.Errorf("%w: %v", errDecoderPanic, p)
		}
	}()

	return audio.ResampleToMono16(ctx, src, SampleRate, 0)
}
