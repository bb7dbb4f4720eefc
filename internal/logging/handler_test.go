package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// record builds a timeless record so output can be compared exactly.
func record(level slog.Level, msg string, args ...any) slog.Record {
	r := slog.NewRecord(time.Time{}, level, msg, 0)
	r.Add(args...)
	return r
}

func TestHandler_Line(t *testing.T) {
	tests := []struct {
		name string
		rec  slog.Record
		want string
	}{
		{"info", record(slog.LevelInfo, "hello world", "foo", "value"), "INFO  hello world foo=value\n"},
		{"warn", record(slog.LevelWarn, "careful"), "WARN  careful\n"},
		{"error", record(slog.LevelError, "boom", "n", 3), "ERROR boom n=3\n"},
		{"trace", record(LevelTrace, "deep"), "TRACE deep\n"},
		{"inline group", record(slog.LevelInfo, "m", slog.Group("req", "id", 7)), "INFO  m req.id=7\n"},
		{"empty attr skipped", record(slog.LevelInfo, "m", slog.Attr{}), "INFO  m\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			h := NewHandler(&buf, &slog.HandlerOptions{Level: LevelTrace})
			require.NoError(t, h.Handle(context.Background(), tt.rec))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestHandler_Time(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, nil))

	now := time.Now()
	logger.Info("hello")

	assert.True(t, strings.HasPrefix(buf.String(), now.Format(time.Kitchen)+" INFO"), "got %q", buf.String())
}

func TestHandler_WithAttrs(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf, nil).WithAttrs([]slog.Attr{slog.String("common", "attr")})

	require.NoError(t, h.Handle(context.Background(), record(slog.LevelInfo, "message", "local", "val")))
	assert.Equal(t, "INFO  message common=attr local=val\n", buf.String())
}

func TestHandler_Enabled(t *testing.T) {
	h := NewHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn})

	ctx := t.Context()
	assert.False(t, h.Enabled(ctx, slog.LevelInfo))
	assert.True(t, h.Enabled(ctx, slog.LevelWarn))
	assert.True(t, h.Enabled(ctx, slog.LevelError))

	assert.True(t, NewHandler(&bytes.Buffer{}, nil).Enabled(ctx, slog.LevelInfo))
	assert.False(t, NewHandler(&bytes.Buffer{}, nil).Enabled(ctx, slog.LevelDebug))
}

func TestHandler_LevelVar(t *testing.T) {
	var lv slog.LevelVar
	lv.Set(slog.LevelError)
	h := NewHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: &lv})

	assert.False(t, h.Enabled(t.Context(), slog.LevelWarn))
	lv.Set(slog.LevelWarn)
	assert.True(t, h.Enabled(t.Context(), slog.LevelWarn))
}

func TestHandler_Redaction(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf, nil)

	require.NoError(t, h.Handle(context.Background(),
		record(slog.LevelInfo, "sensitive data", "api_key", "secret12345", "Token", "ghp_abcdef")))
	assert.Equal(t, "INFO  sensitive data api_key=****2345 Token=****cdef\n", buf.String())

	buf.Reset()
	require.NoError(t, h.Handle(context.Background(), record(slog.LevelInfo, "token value", "foo", "ghp_secrettoken")))
	assert.Equal(t, "INFO  token value foo=****oken\n", buf.String())
}

func TestHandler_WithGroup(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf, nil).
		WithAttrs([]slog.Attr{slog.String("app", "demo")}).
		WithGroup("store").
		WithAttrs([]slog.Attr{slog.String("format", "toml")})

	require.NoError(t, h.Handle(context.Background(), record(slog.LevelInfo, "wrote", "path", "/tmp/app/settings.toml")))
	assert.Equal(t, "INFO  wrote app=demo store.format=toml store.path=/tmp/app/settings.toml\n", buf.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestHandler_WriteError(t *testing.T) {
	h := NewHandler(failingWriter{}, nil)
	assert.EqualError(t, h.Handle(context.Background(), record(slog.LevelInfo, "m")), "disk full")
}

func TestMultiHandler(t *testing.T) {
	var text, js bytes.Buffer
	h := NewMultiHandler(
		NewHandler(&text, &slog.HandlerOptions{Level: slog.LevelWarn}),
		nil,
		slog.NewJSONHandler(&js, &slog.HandlerOptions{Level: slog.LevelDebug}),
	)
	logger := slog.New(h).With("app", "demo")

	assert.True(t, h.Enabled(t.Context(), slog.LevelDebug))
	assert.False(t, h.Enabled(t.Context(), LevelTrace))

	logger.Debug("only json")
	logger.Warn("both")

	assert.NotContains(t, text.String(), "only json")
	assert.Contains(t, text.String(), "both app=demo")
	assert.Equal(t, 2, strings.Count(js.String(), `"app":"demo"`))
}

func TestMultiHandler_FirstError(t *testing.T) {
	var buf bytes.Buffer
	h := NewMultiHandler(NewHandler(failingWriter{}, nil), NewHandler(&buf, nil))

	err := h.Handle(context.Background(), record(slog.LevelInfo, "m"))
	assert.EqualError(t, err, "disk full")
	assert.Equal(t, "INFO  m\n", buf.String(), "later handlers still run")
}
