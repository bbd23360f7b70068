// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/riff"
	gowav "github.com/go-audio/wav"
	"github.com/ik5/audsort/audio"
	"github.com/ik5/audsort/utils"
)

const (
	formatPCM        = 1
	formatExtensible = 0xFFFE

	// offset of the sub-format code inside an extensible fmt chunk; the
	// rest of the GUID is fixed
	subFormatOffset = 24
)

// pcmReader is the part of gowav.Decoder the source needs; it allows testing
type pcmReader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
	// PCMLen is the declared size of the data chunk in bytes.
	PCMLen() int64
}

type source struct {
	dec        pcmReader
	sampleRate int
	channels   int
	bitDepth   int
	intBuf     *goaudio.IntBuffer
	delivered  int64
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int {
	if s.intBuf != nil {
		return cap(s.intBuf.Data)
	}
	return 4096
}

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	if s.intBuf == nil || cap(s.intBuf.Data) < len(dst) {
		s.intBuf = &goaudio.IntBuffer{
			Data: make([]int, len(dst)),
			Format: &goaudio.Format{
				NumChannels: s.channels,
				SampleRate:  s.sampleRate,
			},
			SourceBitDepth: s.bitDepth,
		}
	}
	s.intBuf.Data = s.intBuf.Data[:len(dst)]

	n, err := s.dec.PCMBuffer(s.intBuf)
	n = min(n, len(dst))

	// go-audio keeps reading past the data chunk into any trailing chunk
	if want := s.dec.PCMLen() / int64(s.bitDepth/8); want > 0 {
		n = int(min(int64(n), max(want-s.delivered, 0)))
	}

	for i := range n {
		v := s.intBuf.Data[i]
		if s.bitDepth == 8 {
			// 8-bit WAV is unsigned
			v -= 128
		}
		dst[i] = utils.IntToFloat32(v, s.bitDepth)
	}

	switch {
	case err != nil && !errors.Is(err, io.EOF):
		return n, fmt.Errorf("reading wav samples: %w", err)
	case n == 0:
		return 0, s.finish()
	}

	s.delivered += int64(n)

	return n, nil
}

// finish reports io.EOF when the data chunk was read in full and
// io.ErrUnexpectedEOF when the file ends before its declared size.
func (s *source) finish() error {
	size := s.dec.PCMLen()
	got := s.delivered * int64(s.bitDepth/8)

	// odd chunk sizes are padded to a word; the pad byte is often missing
	if size-got > 1 {
		return fmt.Errorf("%w: data chunk declares %d bytes, file holds %d",
			io.ErrUnexpectedEOF, size, got)
	}

	return io.EOF
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading wav data: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	header := make([]byte, 12)
	if _, err := io.ReadFull(rs, header); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotWavFile, err)
	}
	if !bytes.Equal(header[:4], []byte("RIFF")) || !bytes.Equal(header[8:12], []byte("WAVE")) {
		return nil, ErrNotWavFile
	}
	if err := rewind(rs); err != nil {
		return nil, err
	}
	if sub, ok := extensibleSubFormat(rs); ok && sub != formatPCM {
		return nil, fmt.Errorf("%w: extensible sub-format %#x", ErrUnsupportedEncoding, sub)
	}
	if err := rewind(rs); err != nil {
		return nil, err
	}

	dec := gowav.NewDecoder(rs)
	dec.ReadInfo()
	if err := dec.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedWavLayout, err)
	}

	if dec.WavAudioFormat != formatPCM && dec.WavAudioFormat != formatExtensible {
		return nil, fmt.Errorf("%w: format tag %#x", ErrUnsupportedEncoding, dec.WavAudioFormat)
	}
	if dec.NumChans == 0 {
		return nil, audio.ErrNoAudioTrack
	}
	if dec.SampleRate == 0 {
		return nil, ErrUnsupportedWavLayout
	}

	switch dec.BitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d bits", ErrUnsupportedBitDepth, dec.BitDepth)
	}

	return &source{
		dec:        dec,
		sampleRate: int(dec.SampleRate),
		channels:   int(dec.NumChans),
		bitDepth:   int(dec.BitDepth),
	}, nil
}

func rewind(rs io.Seeker) error {
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewinding wav data: %w", err)
	}
	return nil
}

// extensibleSubFormat returns the sub-format code of a
// WAVE_FORMAT_EXTENSIBLE fmt chunk. ok is false for any other layout,
// which is left to the decoder to judge.
func extensibleSubFormat(r io.Reader) (sub uint16, ok bool) {
	p := riff.New(r)
	if err := p.ParseHeaders(); err != nil {
		return 0, false
	}

	// fmt normally comes first; skip a few JUNK or LIST chunks at most
	for range 8 {
		chunk, err := p.NextChunk()
		if err != nil {
			return 0, false
		}
		if chunk.ID != riff.FmtID {
			chunk.Drain()
			continue
		}

		if chunk.Size < subFormatOffset+2 {
			return 0, false
		}
		body := make([]byte, chunk.Size)
		if _, err := io.ReadFull(chunk.R, body); err != nil {
			return 0, false
		}
		if binary.LittleEndian.Uint16(body) != formatExtensible {
			return 0, false
		}

		return binary.LittleEndian.Uint16(body[subFormatOffset:]), true
	}

	return 0, false
}
