package format

import (
	"path/filepath"
	"strings"

	"github.com/thoreinstein/confit/internal/errors"
)

// Format identifies one supported serialization format.
type Format uint8

// Supported formats. The zero value is not a valid format.
const (
	JSON Format = iota + 1
	RON
	TOML
	YAML
)

var names = [...]string{
	JSON: "json",
	RON:  "ron",
	TOML: "toml",
	YAML: "yaml",
}

// ErrUnknownFormat is returned by Parse for names outside the closed set.
var ErrUnknownFormat = errors.New("unknown format")

// All returns every format in declaration order, registered or not.
func All() []Format {
	return []Format{JSON, RON, TOML, YAML}
}

// Valid reports whether f is one of the declared formats.
func (f Format) Valid() bool {
	return f >= JSON && f <= YAML
}

// String returns the lower-case format name, which is also its file extension.
func (f Format) String() string {
	if !f.Valid() {
		return "unknown"
	}
	return names[f]
}

// Extension returns the file extension without a leading dot.
func (f Format) Extension() string {
	return f.String()
}

// Parse converts a format name ("json", "RON", "yml", ...) into a Format.
func Parse(s string) (Format, error) {
	name := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "."))
	if name == "yml" {
		return YAML, nil
	}
	for _, f := range All() {
		if names[f] == name {
			return f, nil
		}
	}
	return 0, errors.Wrapf(ErrUnknownFormat, "%q (valid: json, ron, toml, yaml)", s)
}

// FromPath infers the format from a file name's extension.
func FromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return 0, errors.Wrapf(ErrUnknownFormat, "%s has no extension", path)
	}
	return Parse(ext)
}

// MarshalText implements encoding.TextMarshaler.
func (f Format) MarshalText() ([]byte, error) {
	if !f.Valid() {
		return nil, errors.Wrapf(ErrUnknownFormat, "format %d", uint8(f))
	}
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Format) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// Set implements pflag.Value so a Format can be bound directly to a flag.
func (f *Format) Set(s string) error {
	return f.UnmarshalText([]byte(s))
}

// Type implements pflag.Value.
func (f *Format) Type() string {
	return "format"
}
