package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Formats(t *testing.T) {
	tests := []struct {
		name     string
		format   Format
		wantJSON bool
	}{
		{"json", FormatJSON, true},
		{"text", FormatText, false},
		{"unknown falls back to text", Format("xml"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := New(Config{Level: slog.LevelInfo, Format: tt.format, Output: &buf})
			logger.Info("test message", "key", "value")

			var parsed map[string]any
			err := json.Unmarshal(buf.Bytes(), &parsed)
			if tt.wantJSON {
				require.NoError(t, err, "output: %s", buf.String())
				assert.Equal(t, "test message", parsed["msg"])
				assert.Equal(t, "value", parsed["key"])
				return
			}
			require.Error(t, err)
			assert.Contains(t, buf.String(), "INFO  test message key=value")
		})
	}
}

func TestNew_NilLevelIsInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Output: &buf})

	logger.Debug("hidden")
	logger.Info("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestLevelFiltering(t *testing.T) {
	tests := []struct {
		name   string
		config slog.Level
		log    slog.Level
		want   bool
	}{
		{"info at info", slog.LevelInfo, slog.LevelInfo, true},
		{"debug at info", slog.LevelInfo, slog.LevelDebug, false},
		{"error at info", slog.LevelInfo, slog.LevelError, true},
		{"info at warn", slog.LevelWarn, slog.LevelInfo, false},
		{"trace at trace", LevelTrace, LevelTrace, true},
		{"trace at debug", slog.LevelDebug, LevelTrace, false},
		{"error at error+4", slog.LevelError + 4, slog.LevelError, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, format := range []Format{FormatText, FormatJSON} {
				var buf bytes.Buffer
				logger := New(Config{Level: tt.config, Format: format, Output: &buf})
				logger.Log(t.Context(), tt.log, "test message")

				assert.Equal(t, tt.want, buf.Len() > 0, "%s output: %q", format, buf.String())
			}
		})
	}
}

func TestOpen_NoFile(t *testing.T) {
	var buf bytes.Buffer
	logger, closer, err := Open(Config{Output: &buf})
	require.NoError(t, err)
	require.NotNil(t, closer)
	assert.NoError(t, closer.Close())

	logger.Info("console only")
	assert.Contains(t, buf.String(), "console only")
}

func TestOpen_File(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "confit.log")

	logger, closer, err := Open(Config{Level: slog.LevelInfo, Output: &buf, File: path})
	require.NoError(t, err)

	logger.Info("stored config", "path", "/tmp/a.json")
	require.NoError(t, closer.Close())

	assert.Contains(t, buf.String(), "stored config path=/tmp/a.json")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var rec map[string]any
	require.NoError(t, json.Unmarshal(data, &rec))
	assert.Equal(t, "stored config", rec["msg"])
	assert.Equal(t, "/tmp/a.json", rec["path"])

	info, err := os.Stat(path)
	require.NoError(t, err)
	if info.Mode().Perm()&0o077 != 0 {
		t.Errorf("log file mode = %v, want no group/other bits", info.Mode().Perm())
	}
}

func TestOpen_FileError(t *testing.T) {
	_, _, err := Open(Config{File: filepath.Join(t.TempDir(), "missing", "confit.log")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening log file")
}

func TestNewDiscard(t *testing.T) {
	logger := NewDiscard()
	assert.False(t, logger.Enabled(t.Context(), slog.LevelError))
	logger.Error("dropped", "key", "value")
}

func TestForTest(t *testing.T) {
	logger := ForTest(t)
	assert.True(t, logger.Enabled(t.Context(), slog.LevelDebug))
	logger.Debug("debug from test logger", "test", t.Name())
}

func TestNew_AttributeTypes(t *testing.T) {
	for _, format := range []Format{FormatText, FormatJSON} {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			logger := New(Config{Format: format, Output: &buf})
			logger.Info("message", "string", "value", "int", 42, "float", 3.14, "bool", true)

			for _, want := range []string{"value", "42", "3.14", "true"} {
				assert.True(t, strings.Contains(buf.String(), want), "missing %q in %s", want, buf.String())
			}
		})
	}
}

func TestLevelFromVerbosity(t *testing.T) {
	tests := []struct {
		verbosity int
		want      slog.Level
	}{
		{-1, slog.LevelWarn},
		{0, slog.LevelWarn},
		{1, slog.LevelInfo},
		{2, slog.LevelDebug},
		{3, LevelTrace},
		{4, LevelTrace},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, LevelFromVerbosity(tt.verbosity), "verbosity %d", tt.verbosity)
	}
	assert.Less(t, LevelTrace, slog.LevelDebug)
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"text", FormatText, false},
		{"JSON", FormatJSON, false},
		{" json ", FormatJSON, false},
		{"xml", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "ParseFormat(%q)", tt.in)
			continue
		}
		require.NoError(t, err, "ParseFormat(%q)", tt.in)
		assert.Equal(t, tt.want, got)
	}
}
