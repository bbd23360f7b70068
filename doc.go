// SPDX-License-Identifier: EPL-2.0

// Package audsort decodes audio files into canonical PCM and ranks them by
// loudness.
//
// Every decoded file becomes a decode.Record: signed 16-bit, mono, 44,100 Hz
// samples. The loudness of a record is the mean absolute sample value, and a
// list of records can be sorted by it.
//
// # Decoding Strategies
//
// Three interchangeable strategies implement decode.Decoder:
//   - "native" decodes in process with the formats/* packages
//     (WAV, AIFF, MP3, Ogg Vorbis, FLAC)
//   - "ffmpeg" transcodes through the ffmpeg binary
//   - "gstreamer" runs a gst-launch-1.0 pipeline
//
// All three produce the same Record shape and report failures with the same
// decode.Kind taxonomy.
//
// # Quick Start
//
//	rec, err := audsort.DecodeFile(ctx, "song.mp3")
//	if err != nil {
//	    switch decode.KindOf(err) {
//	    case decode.SourceUnreadable:
//	        // bad path or permissions
//	    case decode.UnsupportedOrCorruptFormat:
//	        // not audio, or damaged
//	    }
//	}
//	fmt.Println(loudness.Score(rec.Samples))
//
// For a batch of files with an explicit error policy use library.Loader.
package audsort
