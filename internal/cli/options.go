// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/ik5/audsort"
	"github.com/ik5/audsort/library"
)

var (
	ErrInvalidJobs    = errors.New("jobs must be at least 1")
	ErrInvalidTimeout = errors.New("timeout must not be negative")
	ErrInvalidIndex   = errors.New("remove index must not be negative")
	ErrInvalidLevel   = errors.New("unknown log level")
)

// Options holds every command line setting.
type Options struct {
	Strategy string
	Policy   string
	Jobs     int
	Sort     bool
	Remove   []int
	Metadata bool
	Timeout  time.Duration
	Progress bool
	Dump     bool
	LogLevel string
	LogFile  string
	Version  bool
}

func defaultOptions() *Options {
	return &Options{
		Strategy: audsort.StrategyNative,
		Policy:   library.FailFast.String(),
		Jobs:     1,
		LogLevel: "warn",
	}
}

// Validate rejects bad values before anything is decoded.
func (o *Options) Validate() error {
	if !slices.Contains(audsort.Strategies(), o.Strategy) {
		return fmt.Errorf("%w: %q", audsort.ErrUnknownStrategy, o.Strategy)
	}
	if _, err := library.ParsePolicy(o.Policy); err != nil {
		return err
	}
	if o.Jobs < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidJobs, o.Jobs)
	}
	if o.Timeout < 0 {
		return fmt.Errorf("%w: %s", ErrInvalidTimeout, o.Timeout)
	}
	for _, i := range o.Remove {
		if i < 0 {
			return fmt.Errorf("%w: %d", ErrInvalidIndex, i)
		}
	}
	if _, err := o.level(); err != nil {
		return err
	}

	return nil
}

func (o *Options) level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(o.LogLevel)); err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLevel, o.LogLevel)
	}
	return lvl, nil
}
