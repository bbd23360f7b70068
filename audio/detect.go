// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// HeaderSize is how many leading bytes Detect needs to see.
const HeaderSize = 3072

// Detection is the result of sniffing a file header.
type Detection struct {
	// Format is the registry key to try, or "" when nothing matched.
	Format string
	// MIME is what the magic bytes looked like, even when unrecognised.
	MIME string
	// Magic reports whether Format came from the content rather than
	// the file name.
	Magic bool
}

var mimeFormats = map[string]string{
	"audio/wav":  "wav",
	"audio/mpeg": "mp3",
	"audio/ogg":  "ogg",
	// bare Ogg pages whose first packet mimetype does not recognise
	"application/ogg": "ogg",
	"audio/aiff":      "aiff",
	"audio/flac":      "flac",
	"audio/x-wav":     "wav",
}

// Detect identifies the container in header, falling back to the extension
// of filename when the magic bytes are inconclusive.
//
// Audio and video containers that have no entry in the format table are
// still reported with Magic set, keyed by their usual extension ("m4a",
// "aac", "webm"), so callers can tell "known but undecodable" apart from
// "garbage".
func Detect(header []byte, filename string) Detection {
	if len(header) > HeaderSize {
		header = header[:HeaderSize]
	}

	mt := mimetype.Detect(header)
	for m := mt; m != nil; m = m.Parent() {
		for mime, format := range mimeFormats {
			if m.Is(mime) {
				return Detection{Format: format, MIME: mt.String(), Magic: true}
			}
		}
	}

	mime := mt.String()
	if isMediaMIME(mime) {
		return Detection{
			Format: normalizeKey(mt.Extension()),
			MIME:   mime,
			Magic:  true,
		}
	}

	return Detection{
		Format: normalizeKey(filepath.Ext(filename)),
		MIME:   mime,
	}
}

func isMediaMIME(mime string) bool {
	return strings.HasPrefix(mime, "audio/") || strings.HasPrefix(mime, "video/")
}
