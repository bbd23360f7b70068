// SPDX-License-Identifier: EPL-2.0

package decode

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/spf13/afero"
)

const (
	// maxDiagnostic bounds how much of a tool's stderr is kept.
	maxDiagnostic = 8 << 10

	// waitDelay bounds how long pipes are drained after the process is
	// killed, in case it left children holding them open.
	waitDelay = 2 * time.Second
)

// diagnosticRule maps a substring of a tool's stderr to a Kind that is more
// precise than ExternalToolFailure.
type diagnosticRule struct {
	contains string
	kind     Kind
}

// tool runs one external transcoder that writes s16le mono PCM to stdout.
type tool struct {
	strategy string
	binary   string
	fs       afero.Fs
	timeout  time.Duration
	rules    []diagnosticRule
	logger   *slog.Logger
}

func (t *tool) decode(ctx context.Context, path string, args []string) (*Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, newError(Unknown, path, StageOpen, err)
	}

	log := t.logger.With("path", path, "strategy", t.strategy)

	info, err := t.fs.Stat(path)
	if err != nil {
		return nil, newError(SourceUnreadable, path, StageOpen, err)
	}
	if info.IsDir() {
		return nil, newError(SourceUnreadable, path, StageOpen, errIsDirectory)
	}

	bin, err := exec.LookPath(t.binary)
	if err != nil {
		return nil, newError(DecoderUnavailable, path, StageExec, err)
	}

	if t.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	var stdout bytes.Buffer
	stderr := &boundedBuffer{limit: maxDiagnostic}

	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = stderr
	cmd.WaitDelay = waitDelay

	log.Debug("running decoder", "argv", cmd.Args)

	// Run always waits, so the process and its pipes are reaped on every path.
	runErr := cmd.Run()
	diag := strings.TrimSpace(stderr.String())

	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, &Error{
			Kind:       ExternalToolFailure,
			Path:       path,
			Stage:      StageExec,
			ExitCode:   -1,
			Diagnostic: diag,
			Err:        ctxErr,
		}
	}

	if runErr != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			exitCode = exitErr.ExitCode()
		}

		return nil, &Error{
			Kind:       t.classify(diag),
			Path:       path,
			Stage:      StageExec,
			ExitCode:   exitCode,
			Diagnostic: diag,
			Err:        runErr,
		}
	}

	samples := pcmFromS16LE(stdout.Bytes())
	if len(samples) == 0 {
		e := newError(UnsupportedOrCorruptFormat, path, StageConvert, errNoSamples)
		e.Diagnostic = diag
		return nil, e
	}

	log.Debug("decoded", "samples", len(samples))

	return &Record{Path: path, Samples: samples}, nil
}

func (t *tool) classify(diag string) Kind {
	lower := strings.ToLower(diag)
	for _, rule := range t.rules {
		if strings.Contains(lower, rule.contains) {
			return rule.kind
		}
	}
	return ExternalToolFailure
}

// pcmFromS16LE converts little-endian 16-bit samples; a trailing odd byte
// is dropped.
func pcmFromS16LE(raw []byte) []int16 {
	samples := make([]int16, len(raw)/2)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(raw[2*i:]))
	}
	return samples
}

// boundedBuffer keeps the first limit bytes written to it and silently
// discards the rest, so a chatty tool cannot grow memory without bound.
type boundedBuffer struct {
	buf       bytes.Buffer
	limit     int
	truncated bool
}

func (b *boundedBuffer) Write(p []byte) (int, error) {
	if room := b.limit - b.buf.Len(); room > 0 {
		b.buf.Write(p[:min(len(p), room)])
	}
	if b.buf.Len()+len(p) > b.limit {
		b.truncated = true
	}
	return len(p), nil
}

func (b *boundedBuffer) String() string {
	if b.truncated {
		return fmt.Sprintf("%s [truncated]", b.buf.String())
	}
	return b.buf.String()
}
