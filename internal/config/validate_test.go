package config

import (
	"testing"

	"github.com/thoreinstein/confit/internal/errors"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		modify   func(*Settings)
		wantErrs int
	}{
		{name: "defaults", modify: func(*Settings) {}, wantErrs: 0},
		{name: "yml alias", modify: func(s *Settings) { s.DefaultFormat = "yml" }, wantErrs: 0},
		{name: "absolute root", modify: func(s *Settings) { s.Root = "/srv/config" }, wantErrs: 0},
		{name: "zero version", modify: func(s *Settings) { s.Version = 0 }, wantErrs: 1},
		{name: "bad log format", modify: func(s *Settings) { s.LogFormat = "xml" }, wantErrs: 1},
		{
			name: "everything wrong",
			modify: func(s *Settings) {
				s.Version = 9
				s.DefaultFormat = ""
				s.LogFormat = "yaml"
				s.Root = "rel"
			},
			wantErrs: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Default()
			tt.modify(s)
			errs := Validate(s)
			if len(errs) != tt.wantErrs {
				t.Errorf("Validate() returned %d errors, want %d: %v", len(errs), tt.wantErrs, errs)
			}
		})
	}
}

func TestValidate_Nil(t *testing.T) {
	if errs := Validate(nil); len(errs) != 1 {
		t.Errorf("Validate(nil) = %v, want one error", errs)
	}
}

func TestFieldError(t *testing.T) {
	err := &FieldError{Field: "root", Value: "rel", Err: ErrInvalidPath}
	if got, want := err.Error(), `root: invalid path: "rel"`; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, ErrInvalidPath) {
		t.Error("FieldError should unwrap to its cause")
	}

	num := &FieldError{Field: "version", Value: 2, Err: ErrUnsupportedVersion}
	if got, want := num.Error(), "version: unsupported settings version: 2"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
