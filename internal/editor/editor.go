// Package editor launches the user's text editor on a config file.
package editor

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/thoreinstein/confit/internal/errors"
	"github.com/thoreinstein/confit/internal/logging"
)

// fallbacks are tried in order when neither an explicit command nor the
// environment names an editor.
var fallbacks = []string{"nano", "vi"}

// Editor runs an editor command attached to the given streams.
type Editor struct {
	// Command may carry arguments, e.g. "code --wait". Blank means detect.
	Command string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// New returns an Editor on the process's standard streams.
func New(command string) *Editor {
	return &Editor{
		Command: command,
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}
}

// Open runs the editor on path and blocks until it exits. It reports whether
// the file's contents differ afterwards.
func (e *Editor) Open(ctx context.Context, path string) (bool, error) {
	name, args := e.resolve()
	logger := logging.FromContext(ctx)

	before := snapshot(path)
	logger.Debug("launching editor", slog.String("editor", name), slog.String("path", path))

	cmd := exec.CommandContext(ctx, name, append(args, path)...)
	cmd.Stdin, cmd.Stdout, cmd.Stderr = e.Stdin, e.Stdout, e.Stderr
	if err := cmd.Run(); err != nil {
		return false, errors.Wrapf(err, "running editor %s", name)
	}

	changed := !bytes.Equal(before, snapshot(path))
	logger.Debug("editor exited", slog.String("path", path), slog.Bool("changed", changed))
	return changed, nil
}

func (e *Editor) resolve() (string, []string) {
	command := strings.TrimSpace(e.Command)
	if command == "" {
		command = Detect()
	}
	fields := strings.Fields(command)
	return fields[0], fields[1:]
}

// Detect picks an editor from $EDITOR, then $VISUAL, then the first
// fallback found on PATH. vi is assumed to exist.
func Detect() string {
	for _, env := range []string{"EDITOR", "VISUAL"} {
		if v := strings.TrimSpace(os.Getenv(env)); v != "" {
			return v
		}
	}
	for _, name := range fallbacks {
		if _, err := exec.LookPath(name); err == nil {
			return name
		}
	}
	return fallbacks[len(fallbacks)-1]
}

// snapshot returns nil for unreadable files, which compares equal to a file
// that is still missing.
func snapshot(path string) []byte {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	return data
}
