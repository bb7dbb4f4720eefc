package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/confit/internal/errors"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"json", JSON, false},
		{"JSON", JSON, false},
		{".toml", TOML, false},
		{"ron", RON, false},
		{"yaml", YAML, false},
		{"yml", YAML, false},
		{" Yaml ", YAML, false},
		{"xml", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrUnknownFormat))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormat_String(t *testing.T) {
	assert.Equal(t, "json", JSON.String())
	assert.Equal(t, "ron", RON.Extension())
	assert.Equal(t, "toml", TOML.String())
	assert.Equal(t, "yaml", YAML.Extension())
	assert.Equal(t, "unknown", Format(0).String())
	assert.Equal(t, "unknown", Format(42).String())
	assert.False(t, Format(0).Valid())
}

func TestFromPath(t *testing.T) {
	f, err := FromPath("/home/u/.config/app/settings.yml")
	require.NoError(t, err)
	assert.Equal(t, YAML, f)

	_, err = FromPath("settings")
	assert.True(t, errors.Is(err, ErrUnknownFormat))
}

func TestFormat_TextAndFlag(t *testing.T) {
	var f Format
	require.NoError(t, f.Set("toml"))
	assert.Equal(t, TOML, f)
	assert.Equal(t, "format", f.Type())

	text, err := RON.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "ron", string(text))

	_, err = Format(0).MarshalText()
	assert.Error(t, err)

	assert.Error(t, f.UnmarshalText([]byte("ini")))
	assert.Equal(t, TOML, f, "failed parse must not modify the value")
}

func TestAvailable(t *testing.T) {
	assert.Equal(t, []Format{JSON, RON, TOML, YAML}, Available())
}
