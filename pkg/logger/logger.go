// Package logger holds the process-wide zerolog logger.
//
// Call Setup once in main, then hand the returned logger (or L()) to the
// components that need one. Console output is for development; production
// emits JSON.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	mu   sync.Mutex
	root zerolog.Logger
	set  bool
)

// Setup configures and returns the root logger. level is one of trace,
// debug, info, warn, error (defaults to info). When pretty is true, output
// is human-readable console text instead of JSON. A nil out means stdout.
func Setup(level string, pretty bool, out io.Writer) zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()

	zerolog.TimeFieldFormat = time.RFC3339Nano

	if out == nil {
		out = os.Stdout
	}
	if pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	lvl := parseLevel(level)
	root = zerolog.New(out).Level(lvl).With().Timestamp().Logger()
	set = true
	return root
}

// L returns the root logger. Before Setup it returns a disabled logger so
// library code can log unconditionally.
func L() zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if !set {
		return zerolog.Nop()
	}
	return root
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
