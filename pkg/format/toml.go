//go:build !confit_no_toml

package format

import (
	"bytes"

	"github.com/pelletier/go-toml/v2"
)

func init() {
	Register(tomlCodec{})
}

// tomlCodec renders TOML tables with indented sub-tables and one array
// element per line.
type tomlCodec struct{}

func (tomlCodec) Format() Format { return TOML }

func (tomlCodec) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentSymbol("  ")
	enc.SetIndentTables(true)
	enc.SetArraysMultiline(true)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (tomlCodec) Unmarshal(data []byte, v any) error {
	return toml.Unmarshal(data, v)
}
