//go:build !confit_no_json

package format

import (
	"bytes"
	"encoding/json"
)

func init() {
	Register(jsonCodec{})
}

// jsonCodec renders JSON with two-space indentation and a trailing newline.
type jsonCodec struct{}

func (jsonCodec) Format() Format { return JSON }

func (jsonCodec) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return decodeJSON(data, v)
}
