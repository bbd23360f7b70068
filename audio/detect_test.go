// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"testing"
)

func padded(prefix string, size int) []byte {
	b := make([]byte, size)
	copy(b, prefix)
	return b
}

func TestDetect(t *testing.T) {
	t.Parallel()

	oggVorbis := padded("OggS", 64)
	copy(oggVorbis[28:], "\x01vorbis")

	tests := []struct {
		name      string
		header    []byte
		filename  string
		wantFmt   string
		wantMagic bool
	}{
		{name: "wav", header: padded("RIFF\x24\x00\x00\x00WAVEfmt ", 64), filename: "x.bin", wantFmt: "wav", wantMagic: true},
		{name: "mp3 with id3", header: padded("ID3\x03\x00\x00\x00\x00\x00\x00", 64), filename: "x", wantFmt: "mp3", wantMagic: true},
		{name: "flac", header: padded("fLaC\x00\x00\x00\x22", 64), filename: "x.wav", wantFmt: "flac", wantMagic: true},
		{name: "aiff", header: padded("FORM\x00\x00\x00\x00AIFFCOMM", 64), filename: "x", wantFmt: "aiff", wantMagic: true},
		{name: "ogg vorbis", header: oggVorbis, filename: "x", wantFmt: "ogg", wantMagic: true},
		{name: "m4a is known but has no table entry", header: padded("\x00\x00\x00\x20ftypM4A ", 64), filename: "x", wantFmt: "m4a", wantMagic: true},
		{name: "unknown falls back to extension", header: []byte("plain text, nothing to see"), filename: "/a/b/Song.MP3", wantFmt: "mp3"},
		{name: "unknown without extension", header: []byte{0x01, 0x02}, filename: "noext", wantFmt: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Detect(tt.header, tt.filename)
			if got.Format != tt.wantFmt {
				t.Errorf("Detect().Format = %q (mime %s), want %q", got.Format, got.MIME, tt.wantFmt)
			}
			if got.Magic != tt.wantMagic {
				t.Errorf("Detect().Magic = %v, want %v", got.Magic, tt.wantMagic)
			}
		})
	}
}
