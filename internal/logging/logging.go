// Package logging configures the process-wide charm logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"charm.land/log/v2"
	"gopkg.in/natefinch/lumberjack.v2"
)

// FileName is the log file created in file mode.
const FileName = "regexlab.log"

// Options selects where and how much to log.
type Options struct {
	// Level is one of debug, info, warn, error. Empty means warn.
	Level string

	// Dir, when set, sends output to a rotating file in Dir instead of
	// Writer. The TUI uses this so log lines never reach the terminal.
	Dir string

	// Writer receives output when Dir is empty. Defaults to os.Stderr.
	Writer io.Writer
}

// Setup builds a logger from opts and installs it as the default. The
// returned closer releases the log file, if any.
func Setup(opts Options) (*log.Logger, io.Closer, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, nil, err
	}

	var (
		w      io.Writer = opts.Writer
		closer io.Closer = nopCloser{}
		format           = log.TextFormatter
	)
	if w == nil {
		w = os.Stderr
	}
	if opts.Dir != "" {
		if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log dir: %w", err)
		}
		lj := &lumberjack.Logger{
			Filename:   filepath.Join(opts.Dir, FileName),
			MaxSize:    5, // MB
			MaxBackups: 3,
			MaxAge:     28, // days
		}
		w, closer, format = lj, lj, log.LogfmtFormatter
	}

	logger := log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Formatter:       format,
		Prefix:          "regexlab",
	})
	log.SetDefault(logger)
	return logger, closer, nil
}

// ParseLevel maps a level name to a log.Level. Empty means warn.
func ParseLevel(s string) (log.Level, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return log.WarnLevel, nil
	}
	if s == "warning" {
		s = "warn"
	}
	level, err := log.ParseLevel(s)
	if err != nil {
		return 0, fmt.Errorf("invalid log level %q: use debug, info, warn or error", s)
	}
	return level, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
