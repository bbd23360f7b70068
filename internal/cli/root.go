// SPDX-License-Identifier: EPL-2.0

// Package cli implements the audsort command.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"time"

	"github.com/ik5/audsort"
	"github.com/ik5/audsort/decode"
	"github.com/ik5/audsort/library"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

const Version = "0.3.0"

// ErrLoadFailed is returned after a fail-fast batch was abandoned.
var ErrLoadFailed = errors.New("loading files failed")

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	opts := defaultOptions()

	cmd := &cobra.Command{
		Use:   "audsort [flags] FILE...",
		Short: "Decode audio files and sort them by loudness",
		Long: `audsort decodes each FILE to 16-bit mono PCM at 44.1 kHz and lists the
files with their loudness, the mean absolute sample value.

Examples:
  audsort *.mp3                          # list in argument order
  audsort --sort *.wav                   # quietest first
  audsort --policy skip --jobs 4 music/* # keep going past bad files
  audsort --strategy ffmpeg --sort --remove 0 a.m4a b.opus`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.Strategy, "strategy", opts.Strategy, "decoding strategy: native, ffmpeg or gstreamer")
	f.StringVar(&opts.Policy, "policy", opts.Policy, "batch error policy: fail-fast or skip")
	f.IntVarP(&opts.Jobs, "jobs", "j", opts.Jobs, "files decoded in parallel")
	f.BoolVarP(&opts.Sort, "sort", "s", false, "sort by loudness, quietest first")
	f.IntSliceVar(&opts.Remove, "remove", nil, "remove the entry at this load index (repeatable)")
	f.BoolVar(&opts.Metadata, "metadata", false, "read title and artist tags")
	f.DurationVar(&opts.Timeout, "timeout", 0, "per-file decode timeout, 0 for none")
	f.BoolVar(&opts.Progress, "progress", false, "show a progress bar on stderr")
	f.BoolVar(&opts.Dump, "dump", false, "print every file's samples after the table")
	f.StringVar(&opts.LogLevel, "log-level", opts.LogLevel, "log level: debug, info, warn or error")
	f.StringVar(&opts.LogFile, "log-file", "", "also write logs to this file, rotated")
	f.BoolVarP(&opts.Version, "version", "v", false, "show version information")

	return cmd
}

// Execute runs the command and returns the process exit code.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func run(cmd *cobra.Command, opts *Options, paths []string) error {
	if opts.Version {
		cmd.Printf("audsort version %s\n", Version)
		return nil
	}

	if err := opts.Validate(); err != nil {
		return err
	}

	logger, closer, err := newLogger(opts, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer closer.Close()

	dec, err := newDecoder(opts, logger)
	if err != nil {
		return err
	}
	policy, _ := library.ParsePolicy(opts.Policy)

	loader := &library.Loader{
		Decoder:  dec,
		Policy:   policy,
		Jobs:     opts.Jobs,
		Metadata: opts.Metadata,
		Logger:   logger,
	}

	if opts.Progress && len(paths) > 0 {
		bar := progressbar.NewOptions(len(paths),
			progressbar.OptionSetWriter(cmd.ErrOrStderr()),
			progressbar.OptionSetDescription("decoding"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
		loader.Progress = func(done, _ int) { _ = bar.Set(done) }
		defer bar.Finish()
	}

	logger.Info("loading files", "count", len(paths), "strategy", opts.Strategy, "policy", policy, "jobs", opts.Jobs)

	start := time.Now()
	res, loadErr := loader.Load(cmd.Context(), paths)
	if loadErr != nil {
		// a failed batch still shows the (empty) list
		logger.Error("batch abandoned", "error", loadErr)
		res = &library.Result{}
	}

	for _, f := range res.Failures {
		logger.Warn("skipped file", "path", f.Path, "kind", decode.KindOf(f.Err).String(), "error", f.Err)
		cmd.PrintErrf("skipped %s: %v\n", f.Path, f.Err)
	}
	logger.Info("files loaded", "loaded", len(res.Entries), "failed", len(res.Failures), "elapsed", time.Since(start))

	list := library.NewList(res.Entries...)
	if err := removeIndices(list, opts.Remove); err != nil {
		return err
	}
	if opts.Sort {
		list.SortByLoudness()
	}

	entries := list.Entries()
	if err := printTable(cmd.OutOrStdout(), entries); err != nil {
		return err
	}
	if opts.Dump {
		if err := dumpSamples(cmd.OutOrStdout(), entries); err != nil {
			return err
		}
	}

	if loadErr != nil {
		return fmt.Errorf("%w: %w", ErrLoadFailed, loadErr)
	}
	return nil
}

func newDecoder(opts *Options, logger *slog.Logger) (decode.Decoder, error) {
	dec, err := audsort.NewDecoder(opts.Strategy)
	if err != nil {
		return nil, err
	}

	switch d := dec.(type) {
	case *decode.Native:
		d.Logger = logger
		if opts.Timeout > 0 {
			return deadlineDecoder{Decoder: d, timeout: opts.Timeout}, nil
		}
	case *decode.FFmpeg:
		d.Logger, d.Timeout = logger, opts.Timeout
	case *decode.GStreamer:
		d.Logger, d.Timeout = logger, opts.Timeout
	}

	return dec, nil
}

// deadlineDecoder bounds each in-process decode by a timeout.
type deadlineDecoder struct {
	decode.Decoder
	timeout time.Duration
}

func (d deadlineDecoder) Decode(ctx context.Context, path string) (*decode.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	return d.Decoder.Decode(ctx, path)
}

// removeIndices drops entries by their position after loading. Indices are
// applied highest first so earlier removals do not shift later ones.
func removeIndices(list *library.List, indices []int) error {
	idx := slices.Clone(indices)
	slices.Sort(idx)
	idx = slices.Compact(idx)
	slices.Reverse(idx)

	for _, i := range idx {
		if err := list.RemoveAt(i); err != nil {
			return fmt.Errorf("--remove: %w", err)
		}
	}
	return nil
}
