// SPDX-License-Identifier: EPL-2.0

package decode

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies why a file could not be decoded.
type Kind int

const (
	// Unknown is the kind of failures that say nothing about the file,
	// such as a cancelled context. KindOf also reports it for foreign errors.
	Unknown Kind = iota
	SourceUnreadable
	UnsupportedOrCorruptFormat
	NoDecodableTrack
	DecoderUnavailable
	ExternalToolFailure
)

var (
	ErrSourceUnreadable           = errors.New("source unreadable")
	ErrUnsupportedOrCorruptFormat = errors.New("unsupported or corrupt format")
	ErrNoDecodableTrack           = errors.New("no decodable audio track")
	ErrDecoderUnavailable         = errors.New("decoder unavailable")
	ErrExternalToolFailure        = errors.New("external tool failed")

	errIsDirectory = errors.New("path is a directory")
	errEmptyFile   = errors.New("file is empty")
	errNoSamples   = errors.New("no samples decoded")

	errDecoderPanic = errors.New("decoder panic")
)

var kindSentinels = map[Kind]error{
	SourceUnreadable:           ErrSourceUnreadable,
	UnsupportedOrCorruptFormat: ErrUnsupportedOrCorruptFormat,
	NoDecodableTrack:           ErrNoDecodableTrack,
	DecoderUnavailable:         ErrDecoderUnavailable,
	ExternalToolFailure:        ErrExternalToolFailure,
}

func (k Kind) String() string {
	if err, ok := kindSentinels[k]; ok {
		return err.Error()
	}
	return "unknown"
}

// Stages name the step of the pipeline an Error came from.
const (
	StageOpen    = "open"
	StageProbe   = "probe"
	StageTrack   = "track"
	StageDecode  = "decode"
	StageConvert = "convert"
	StageExec    = "exec"
)

// Error is the failure type every decoder returns.
type Error struct {
	Kind  Kind
	Path  string
	Stage string

	// ExitCode and Diagnostic are only set by subprocess strategies.
	// ExitCode is -1 when the process never exited on its own.
	ExitCode   int
	Diagnostic string

	Err error
}

func (e *Error) Error() string {
	var b strings.Builder

	fmt.Fprintf(&b, "decoding %q", e.Path)
	if e.Kind != Unknown {
		fmt.Fprintf(&b, ": %s", e.Kind)
	}
	if e.Stage != "" {
		fmt.Fprintf(&b, " at %s", e.Stage)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	if e.Kind == ExternalToolFailure {
		fmt.Fprintf(&b, " (exit code %d)", e.ExitCode)
	}
	if e.Diagnostic != "" {
		fmt.Fprintf(&b, ": %s", e.Diagnostic)
	}

	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrNoDecodableTrack) and friends work.
func (e *Error) Is(target error) bool {
	sentinel, ok := kindSentinels[e.Kind]
	return ok && target == sentinel
}

// KindOf returns the Kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return Unknown
}

func newError(kind Kind, path, stage string, err error) *Error {
	return &Error{Kind: kind, Path: path, Stage: stage, Err: err}
}
