package confit

import (
	"log/slog"
	"os"

	"github.com/thoreinstein/confit/internal/logging"
	"github.com/thoreinstein/confit/internal/paths"
	"github.com/thoreinstein/confit/pkg/fileutil"
)

// Option customizes a single LoadOrInit, Store, Path, Exists or Remove call.
type Option func(*options)

type options struct {
	resolver func() (string, bool)
	logger   *slog.Logger
	fileMode os.FileMode
	dirMode  os.FileMode
	validate bool
}

func newOptions(opts []Option) *options {
	o := &options{
		resolver: paths.RoamingConfigDir,
		logger:   logging.NewDiscard(),
		fileMode: fileutil.DefaultFilePerm,
		dirMode:  paths.DefaultDirPerm,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithRoot uses dir instead of the platform's roaming config root.
// An empty dir behaves like a platform with no config directory.
func WithRoot(dir string) Option {
	return func(o *options) {
		o.resolver = func() (string, bool) {
			return dir, dir != ""
		}
	}
}

// WithResolver replaces the roaming config root lookup.
func WithResolver(fn func() (string, bool)) Option {
	return func(o *options) {
		if fn != nil {
			o.resolver = fn
		}
	}
}

// WithLogger receives debug-level records about files read and written.
// Errors are returned, never logged.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithFileMode sets the permissions of newly written config files (default 0600).
func WithFileMode(mode os.FileMode) Option {
	return func(o *options) {
		o.fileMode = mode
	}
}

// WithDirMode sets the permissions of created directories (default 0700).
func WithDirMode(mode os.FileMode) Option {
	return func(o *options) {
		o.dirMode = mode
	}
}

// WithValidation validates struct values with `validate` tags
// (github.com/go-playground/validator) after loading and before writing.
func WithValidation() Option {
	return func(o *options) {
		o.validate = true
	}
}
