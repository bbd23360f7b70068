// SPDX-License-Identifier: EPL-2.0

package library

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/dhowden/tag"
	"github.com/ik5/audsort/decode"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
)

// Policy decides what a batch does when one file fails to decode.
type Policy int

const (
	// FailFast aborts the batch on a failure and returns no entries. The
	// reported failure is the first one in input order.
	FailFast Policy = iota
	// SkipAndReport keeps every file that decoded and lists the failures.
	SkipAndReport
)

var ErrUnknownPolicy = errors.New("unknown batch policy")

func (p Policy) String() string {
	switch p {
	case FailFast:
		return "fail-fast"
	case SkipAndReport:
		return "skip"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParsePolicy accepts "fail-fast" and "skip".
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fail-fast", "failfast":
		return FailFast, nil
	case "skip", "skip-and-report":
		return SkipAndReport, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
}

// Failure is a file SkipAndReport left out.
type Failure struct {
	Path string
	Err  error
}

func (f Failure) Error() string { return f.Err.Error() }
func (f Failure) Unwrap() error { return f.Err }

// Result of a batch. Entries and Failures are both in input order.
type Result struct {
	Entries  []Entry
	Failures []Failure
}

// Loader decodes batches of paths into entries.
type Loader struct {
	Decoder decode.Decoder
	Policy  Policy

	// Jobs bounds how many files are decoded at once; values below 1 mean 1.
	Jobs int

	// Metadata enables reading title and artist tags through Fs.
	Metadata bool
	Fs       afero.Fs

	// Progress, when set, is called after each file with the number of
	// files finished so far. Calls never overlap.
	Progress func(done, total int)

	Logger *slog.Logger
}

func (l *Loader) logger() *slog.Logger {
	if l.Logger != nil {
		return l.Logger
	}
	return slog.Default()
}

// Load decodes paths. Under FailFast the error of the earliest failing
// path in input order is returned, whichever failure happened first in
// time; files after it are cancelled and files before it still finish.
// Under SkipAndReport an error is only returned when ctx ends.
func (l *Loader) Load(ctx context.Context, paths []string) (*Result, error) {
	if l.Decoder == nil {
		return nil, errors.New("loader has no decoder")
	}

	var (
		entries = make([]*Entry, len(paths))
		errs    = make([]error, len(paths))

		mu   sync.Mutex
		done int

		// lowest failing index under FailFast, len(paths) while none
		failed  = len(paths)
		cancels = make([]context.CancelFunc, len(paths))
	)

	finished := func() {
		mu.Lock()
		defer mu.Unlock()

		done++
		if l.Progress != nil {
			l.Progress(done, len(paths))
		}
	}

	start := func(i int) (context.Context, context.CancelFunc, bool) {
		mu.Lock()
		defer mu.Unlock()

		if i > failed {
			return nil, nil, false
		}
		jctx, cancel := context.WithCancel(ctx)
		cancels[i] = cancel
		return jctx, cancel, true
	}

	abort := func(i int, err error) {
		mu.Lock()
		defer mu.Unlock()

		if i >= failed {
			return
		}
		failed = i
		errs[i] = err
		for _, cancel := range cancels[i+1:] {
			if cancel != nil {
				cancel()
			}
		}
	}

	var g errgroup.Group
	g.SetLimit(max(l.Jobs, 1))

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			jctx, cancel, ok := start(i)
			if !ok {
				return nil
			}
			defer cancel()

			rec, err := l.Decoder.Decode(jctx, path)
			switch {
			case err == nil:
			case ctx.Err() != nil:
				return ctx.Err()
			case l.Policy == FailFast:
				// a cancelled job lost to an earlier failure
				if jctx.Err() == nil {
					abort(i, err)
				}
				return nil
			default:
				l.logger().Debug("skipping file", "path", path, "error", err)
				errs[i] = err
				finished()
				return nil
			}

			e := NewEntry(rec)
			if l.Metadata {
				l.readTags(&e)
			}
			entries[i] = &e
			finished()

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if failed < len(paths) {
		return nil, errs[failed]
	}

	res := &Result{}
	for i, e := range entries {
		if e != nil {
			res.Entries = append(res.Entries, *e)
			continue
		}
		res.Failures = append(res.Failures, Failure{Path: paths[i], Err: errs[i]})
	}

	return res, nil
}

// readTags fills Title and Artist. Missing or unreadable tags leave them
// empty; they never fail the file.
func (l *Loader) readTags(e *Entry) {
	fs := l.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}

	f, err := fs.Open(e.Record.Path)
	if err != nil {
		l.logger().Debug("opening file for tags", "path", e.Record.Path, "error", err)
		return
	}
	defer f.Close()

	meta, err := tag.ReadFrom(f)
	if err != nil {
		if !errors.Is(err, tag.ErrNoTagsFound) {
			l.logger().Debug("reading tags", "path", e.Record.Path, "error", err)
		}
		return
	}

	e.Title = strings.TrimSpace(meta.Title())
	e.Artist = strings.TrimSpace(meta.Artist())
}
