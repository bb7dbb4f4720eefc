package config

import (
	"fmt"
	"path/filepath"

	"github.com/thoreinstein/confit/internal/errors"
	"github.com/thoreinstein/confit/internal/logging"
	"github.com/thoreinstein/confit/pkg/format"
)

// Validation errors for settings fields.
var (
	// ErrUnsupportedVersion indicates a settings schema this build cannot read.
	ErrUnsupportedVersion = errors.New("unsupported settings version")

	// ErrInvalidPath indicates a path value is malformed.
	ErrInvalidPath = errors.New("invalid path")
)

// Validate checks settings for validity and returns every problem found.
func Validate(s *Settings) []error {
	if s == nil {
		return []error{errors.New("settings are nil")}
	}

	var errs []error

	if s.Version != CurrentVersion {
		errs = append(errs, &FieldError{
			Field: "version",
			Value: s.Version,
			Err:   ErrUnsupportedVersion,
		})
	}

	if _, err := format.Parse(s.DefaultFormat); err != nil {
		errs = append(errs, &FieldError{
			Field: "default_format",
			Value: s.DefaultFormat,
			Err:   format.ErrUnknownFormat,
		})
	}

	if _, err := logging.ParseFormat(s.LogFormat); err != nil {
		errs = append(errs, &FieldError{
			Field: "log_format",
			Value: s.LogFormat,
			Err:   err,
		})
	}

	if s.Root != "" && !filepath.IsAbs(s.Root) {
		errs = append(errs, &FieldError{
			Field: "root",
			Value: s.Root,
			Err:   ErrInvalidPath,
		})
	}

	return errs
}

// FieldError reports an invalid settings field.
type FieldError struct {
	Field string
	Value any
	Err   error
}

func (e *FieldError) Error() string {
	if s, ok := e.Value.(string); ok {
		return fmt.Sprintf("%s: %v: %q", e.Field, e.Err, s)
	}
	return fmt.Sprintf("%s: %v: %v", e.Field, e.Err, e.Value)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
