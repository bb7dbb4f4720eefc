package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/thoreinstein/confit/internal/errors"
)

// LevelTrace is below slog.LevelDebug and enabled by -vvv.
const LevelTrace = slog.Level(-8)

// Format specifies the output format for log messages.
type Format string

const (
	// FormatText produces human-readable text output.
	FormatText Format = "text"
	// FormatJSON produces machine-readable JSON output.
	FormatJSON Format = "json"
)

// Config describes a logger.
type Config struct {
	// Level is the minimum level. Nil means Info.
	Level slog.Leveler
	// Format selects the console encoding. Unknown values mean FormatText.
	Format Format
	// Output is the console writer. Nil means os.Stderr.
	Output io.Writer
	// File, when set, also receives every record as JSON lines. The file
	// is created 0600 and appended to.
	File string
}

// New creates a console logger. Config.File is ignored; use Open for a
// logger that also writes a file.
func New(cfg Config) *slog.Logger {
	return slog.New(consoleHandler(cfg))
}

// Open creates a logger like New and, when cfg.File is set, tees records
// into that file. The returned closer releases the file and is never nil.
func Open(cfg Config) (*slog.Logger, io.Closer, error) {
	console := consoleHandler(cfg)
	if cfg.File == "" {
		return slog.New(console), nopCloser{}, nil
	}

	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, errors.Wrap(err, "opening log file")
	}
	file := slog.NewJSONHandler(f, &slog.HandlerOptions{Level: cfg.Level})
	return slog.New(NewMultiHandler(console, file)), f, nil
}

func consoleHandler(cfg Config) slog.Handler {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: cfg.Level}
	if cfg.Format == FormatJSON {
		return slog.NewJSONHandler(out, opts)
	}
	return NewHandler(out, opts)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// LevelFromVerbosity maps the count of -v flags to a level:
// 0 warn, 1 info, 2 debug, 3 or more trace.
func LevelFromVerbosity(v int) slog.Level {
	switch {
	case v <= 0:
		return slog.LevelWarn
	case v == 1:
		return slog.LevelInfo
	case v == 2:
		return slog.LevelDebug
	default:
		return LevelTrace
	}
}

// ParseFormat accepts "text" or "json", case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON:
		return f, nil
	}
	return "", errors.Newf("unknown log format %q (valid: text, json)", s)
}

// NewDiscard returns a logger that drops everything.
func NewDiscard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// ForTest returns a Debug-level logger writing to t's output, which is
// shown for failing tests and with -v.
func ForTest(t *testing.T) *slog.Logger {
	t.Helper()
	return New(Config{
		Level:  slog.LevelDebug,
		Format: FormatText,
		Output: t.Output(),
	})
}
