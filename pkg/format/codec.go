package format

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/thoreinstein/confit/internal/errors"
)

// Codec is the serialize/deserialize pair bound to one Format.
type Codec interface {
	// Format returns the format this codec implements.
	Format() Format

	// Marshal renders v as pretty, human-editable text.
	Marshal(v any) ([]byte, error)

	// Unmarshal parses a whole document into v, which must be a pointer.
	Unmarshal(data []byte, v any) error
}

// registry is written only from init functions.
var registry = map[Format]Codec{}

// Register binds c to its format, replacing any earlier codec.
// It panics on an invalid format, so it must only be called from init.
func Register(c Codec) {
	if !c.Format().Valid() {
		panic("format: Register called with invalid format")
	}
	registry[c.Format()] = c
}

// Lookup returns the codec compiled in for f.
func Lookup(f Format) (Codec, error) {
	c, ok := registry[f]
	if !ok {
		return nil, errors.Wrapf(ErrUnsupportedFormat, "%s", f)
	}
	return c, nil
}

// Available returns the formats that have a registered codec, in
// declaration order.
func Available() []Format {
	var out []Format
	for _, f := range All() {
		if _, ok := registry[f]; ok {
			out = append(out, f)
		}
	}
	return out
}

// Marshal serializes v in format f. Failures are returned as *Error with
// Op OpSerialize.
func Marshal(v any, f Format) (data []byte, err error) {
	c, err := Lookup(f)
	if err != nil {
		return nil, err
	}

	// Some encoders (yaml.v3) panic on unsupported kinds such as funcs.
	defer func() {
		if r := recover(); r != nil {
			data = nil
			err = serializeError(f, errors.Newf("%v", r))
		}
	}()

	data, err = c.Marshal(v)
	if err != nil {
		return nil, serializeError(f, err)
	}
	return data, nil
}

// Unmarshal parses data in format f into v. Failures are returned as *Error
// with Op OpDeserialize.
func Unmarshal(data []byte, f Format, v any) (err error) {
	c, err := Lookup(f)
	if err != nil {
		return err
	}

	defer func() {
		if r := recover(); r != nil {
			err = deserializeError(f, errors.Newf("%v", r))
		}
	}()

	if err := c.Unmarshal(data, v); err != nil {
		return deserializeError(f, err)
	}
	return nil
}

// decodeJSON decodes a single JSON value into v. A bare *any target keeps
// numbers as json.Number so integers beyond 2^53 survive a round trip.
func decodeJSON(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, ok := v.(*any); ok {
		dec.UseNumber()
	}
	if err := dec.Decode(v); err != nil {
		if err == io.EOF {
			return io.ErrUnexpectedEOF
		}
		return err
	}
	if _, err := dec.Token(); err != io.EOF {
		return errors.New("unexpected data after top-level value")
	}
	return nil
}
