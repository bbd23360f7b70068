// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"io"
	"log/slog"

	"gopkg.in/natefinch/lumberjack.v2"
)

// newLogger builds a text logger on stderr, also writing to a rotated file
// when LogFile is set. The returned closer releases the file.
func newLogger(o *Options, stderr io.Writer) (*slog.Logger, io.Closer, error) {
	level, err := o.level()
	if err != nil {
		return nil, nil, err
	}

	writers := []io.Writer{stderr}
	var closer io.Closer = nopCloser{}

	if o.LogFile != "" {
		file := &lumberjack.Logger{
			Filename:   o.LogFile,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		}
		writers = append(writers, file)
		closer = file
	}

	handler := slog.NewTextHandler(io.MultiWriter(writers...), &slog.HandlerOptions{
		Level: level,
	})
	logger := slog.New(handler)

	logger.Debug("logging setup completed", "level", level.String(), "file", o.LogFile)

	return logger, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
