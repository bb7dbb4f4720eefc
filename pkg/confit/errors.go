package confit

import (
	"fmt"

	"github.com/thoreinstein/confit/internal/errors"
	"github.com/thoreinstein/confit/pkg/format"
)

// Errors returned by this package. Every failure matches exactly one of
// them through errors.Is.
var (
	// ErrMissingConfigDir indicates the platform reported no roaming config root.
	ErrMissingConfigDir = errors.New("missing config directory")

	// ErrInvalidName indicates an empty app or file name, or one that would
	// escape the app directory.
	ErrInvalidName = errors.New("invalid name")

	// ErrReadFile indicates the existing config file could not be read.
	ErrReadFile = errors.New("read config file")

	// ErrCreateDir indicates the config directory could not be created.
	ErrCreateDir = errors.New("create config directory")

	// ErrWriteFile indicates the config file could not be written.
	ErrWriteFile = errors.New("write config file")

	// ErrRemoveFile indicates the config file could not be removed.
	ErrRemoveFile = errors.New("remove config file")

	// ErrInvalid indicates a value failed struct validation (WithValidation).
	ErrInvalid = errors.New("invalid config value")

	// ErrSerialize matches serialize failures; use errors.As with
	// *format.Error to learn the format.
	ErrSerialize = format.ErrSerialize

	// ErrDeserialize matches deserialize failures; use errors.As with
	// *format.Error to learn the format.
	ErrDeserialize = format.ErrDeserialize

	// ErrUnsupportedFormat indicates the format's codec is not compiled in.
	ErrUnsupportedFormat = format.ErrUnsupportedFormat
)

// PathOp names the file system step that failed.
type PathOp string

// File system steps.
const (
	OpRead      PathOp = "read"
	OpCreateDir PathOp = "create directory"
	OpWrite     PathOp = "write"
	OpRemove    PathOp = "remove"
)

var opSentinels = map[PathOp]error{
	OpRead:      ErrReadFile,
	OpCreateDir: ErrCreateDir,
	OpWrite:     ErrWriteFile,
	OpRemove:    ErrRemoveFile,
}

// PathError records an I/O failure and the path it happened on. It unwraps
// to the underlying OS error, so errors.Is(err, fs.ErrPermission) works.
type PathError struct {
	Op   PathOp
	Path string
	Err  error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PathError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel for e.Op (ErrReadFile, ErrCreateDir, ...).
func (e *PathError) Is(target error) bool {
	sentinel, ok := opSentinels[e.Op]
	return ok && target == sentinel
}
