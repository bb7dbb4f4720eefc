package format

import (
	"fmt"

	"github.com/thoreinstein/confit/internal/errors"
)

// Op names the codec operation that failed.
type Op string

// Codec operations.
const (
	OpSerialize   Op = "serialize"
	OpDeserialize Op = "deserialize"
)

// Sentinel errors matched by *Error.
var (
	// ErrSerialize matches any serialize failure, whatever the format.
	ErrSerialize = errors.New("serialize failed")

	// ErrDeserialize matches any deserialize failure, whatever the format.
	ErrDeserialize = errors.New("deserialize failed")

	// ErrUnsupportedFormat indicates the codec for a format is not compiled in.
	ErrUnsupportedFormat = errors.New("unsupported format")
)

// Error reports a codec failure. Op and Format together identify the
// failure kind; Err carries the underlying library error.
type Error struct {
	Op     Op
	Format Format
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Format, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches ErrSerialize or ErrDeserialize according to Op.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrSerialize:
		return e.Op == OpSerialize
	case ErrDeserialize:
		return e.Op == OpDeserialize
	}
	return false
}

func serializeError(f Format, err error) error {
	return &Error{Op: OpSerialize, Format: f, Err: err}
}

func deserializeError(f Format, err error) error {
	return &Error{Op: OpDeserialize, Format: f, Err: err}
}

// SyntaxError reports malformed RON input. Line and Column are 1-indexed.
type SyntaxError struct {
	Line   int
	Column int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("ron: line %d, column %d: %s", e.Line, e.Column, e.Msg)
}
