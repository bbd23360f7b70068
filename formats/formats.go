// SPDX-License-Identifier: EPL-2.0

// Package formats wires every bundled decoder into an audio.Registry.
package formats

import (
	"github.com/ik5/audsort/audio"
	"github.com/ik5/audsort/formats/aiff"
	"github.com/ik5/audsort/formats/flac"
	"github.com/ik5/audsort/formats/mp3"
	"github.com/ik5/audsort/formats/vorbis"
	"github.com/ik5/audsort/formats/wav"
)

// NewRegistry returns a registry holding all bundled decoders, keyed the way
// audio.Detect names formats and aliased by their common extensions.
func NewRegistry() *audio.Registry {
	reg := audio.NewRegistry()

	reg.Register("wav", wav.Decoder{}, "wave")
	reg.Register("mp3", mp3.Decoder{}, "mpga", "mp2")
	reg.Register("ogg", vorbis.Decoder{}, "oga", "vorbis")
	reg.Register("aiff", aiff.Decoder{}, "aif", "aifc")
	reg.Register("flac", flac.Decoder{}, "fla")

	return reg
}
