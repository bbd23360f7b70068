// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

type Source interface {
	// SampleRate of the PCM stream in Hz.
	SampleRate() int
	// Channels count (e.g., 1=mono, 2=stereo).
	Channels() int
	// ReadSamples fills dst with interleaved float32 samples in [-1,1].
	// Returns number of float32 values written (not frames). When n == 0 with err == io.EOF, the stream is finished.
	ReadSamples(dst []float32) (n int, err error)

	BufSize() int

	// Close releases any resources.
	Close() error
}

// Decoder constructs a Source from an input reader.
type Decoder interface {
	Decode(r io.Reader) (Source, error)
}

// Registry maps format keys (e.g., "wav", "mp3", "ogg") and file extensions
// to decoders.
type Registry struct {
	codecs  map[string]Decoder
	aliases map[string]string

	mtx sync.RWMutex
}

func NewRegistry() *Registry {
	return &Registry{
		codecs:  make(map[string]Decoder),
		aliases: make(map[string]string),
	}
}

// Register binds d to format. Any extra extensions are registered as
// aliases of format, so "aif" can resolve to the "aiff" decoder.
func (r *Registry) Register(format string, d Decoder, extensions ...string) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	format = normalizeKey(format)
	r.codecs[format] = d
	for _, ext := range extensions {
		r.aliases[normalizeKey(ext)] = format
	}
}

// Get returns the decoder registered for format or one of its aliases.
func (r *Registry) Get(format string) (Decoder, bool) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	key := normalizeKey(format)
	if d, ok := r.codecs[key]; ok {
		return d, true
	}
	if target, ok := r.aliases[key]; ok {
		d, ok := r.codecs[target]
		return d, ok
	}

	return nil, false
}

// Resolve maps a format key or alias to its canonical format key.
func (r *Registry) Resolve(format string) (string, bool) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	key := normalizeKey(format)
	if _, ok := r.codecs[key]; ok {
		return key, true
	}
	target, ok := r.aliases[key]
	return target, ok
}

// ForFile looks a decoder up by the extension of path.
func (r *Registry) ForFile(path string) (string, Decoder, bool) {
	format, ok := r.Resolve(filepath.Ext(path))
	if !ok {
		return "", nil, false
	}
	d, ok := r.Get(format)
	return format, d, ok
}

// Formats returns the registered format keys, sorted.
func (r *Registry) Formats() []string {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	formats := make([]string, 0, len(r.codecs))
	for f := range r.codecs {
		formats = append(formats, f)
	}
	slices.Sort(formats)

	return formats
}

func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "."))
}
