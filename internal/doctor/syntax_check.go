package doctor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strconv"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/thoreinstein/confit/internal/errors"
	"github.com/thoreinstein/confit/pkg/fileutil"
	"github.com/thoreinstein/confit/pkg/format"
)

// ConfigSyntaxCheck parses the config file with its format's codec and
// reports where parsing failed.
type ConfigSyntaxCheck struct {
	path   string
	format format.Format
}

var _ Check = (*ConfigSyntaxCheck)(nil)

// NewConfigSyntaxCheck checks the file at path, which should hold f.
func NewConfigSyntaxCheck(path string, f format.Format) *ConfigSyntaxCheck {
	return &ConfigSyntaxCheck{path: path, format: f}
}

// Name returns the unique identifier for this check.
func (c *ConfigSyntaxCheck) Name() string {
	return "config-syntax"
}

// Category returns the grouping for this check.
func (c *ConfigSyntaxCheck) Category() string {
	return "config"
}

// Run reads and decodes the file. A missing file is informational because
// LoadOrInit will create it.
func (c *ConfigSyntaxCheck) Run() *CheckResult {
	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Status:   SeverityError,
		Details:  map[string]any{"path": c.path, "format": c.format.String()},
	}

	if _, err := format.Lookup(c.format); err != nil {
		result.Message = fmt.Sprintf("%s support is not compiled into this build", c.format)
		return result
	}

	data, err := fileutil.ReadFile(c.path)
	if err != nil {
		switch {
		case errors.Is(err, os.ErrNotExist):
			result.Status = SeverityInfo
			result.Message = "config file does not exist yet"
			result.FixHint = "run 'confit init' to write the defaults"
		case errors.Is(err, os.ErrPermission):
			result.Message = fmt.Sprintf("permission denied: %v", err)
		default:
			result.Message = fmt.Sprintf("read error: %v", err)
		}
		return result
	}
	result.Details["bytes"] = len(data)

	var doc any
	err = format.Unmarshal(data, c.format, &doc)
	if err == nil {
		result.Status = SeverityPass
		result.Message = "valid " + c.format.String()
		return result
	}

	where := ""
	line, col := ErrorPosition(err, data)
	if line > 0 {
		result.Details["line"] = line
		where = fmt.Sprintf(" at line %d", line)
	}
	if col > 0 {
		result.Details["column"] = col
		where += fmt.Sprintf(", column %d", col)
	}
	result.Message = fmt.Sprintf("%s syntax error%s: %v", c.format, where, errors.Unwrap(err))
	result.FixHint = "fix the file by hand with 'confit edit', or 'confit reset' to start over"
	return result
}

var yamlLine = regexp.MustCompile(`line (\d+)`)

// ErrorPosition extracts a 1-indexed line and column from a decoder error.
// It returns 0, 0 when the error carries no position. The column is 0 when
// only the line is known.
func ErrorPosition(err error, data []byte) (line, col int) {
	var jsonSyntax *json.SyntaxError
	if errors.As(err, &jsonSyntax) {
		return offsetToLineCol(data, int(jsonSyntax.Offset))
	}

	var jsonType *json.UnmarshalTypeError
	if errors.As(err, &jsonType) {
		return offsetToLineCol(data, int(jsonType.Offset))
	}

	var tomlErr *toml.DecodeError
	if errors.As(err, &tomlErr) {
		return tomlErr.Position()
	}

	var ronErr *format.SyntaxError
	if errors.As(err, &ronErr) {
		return ronErr.Line, ronErr.Column
	}

	var fmtErr *format.Error
	if errors.As(err, &fmtErr) && fmtErr.Format == format.YAML {
		if m := yamlLine.FindStringSubmatch(fmtErr.Err.Error()); m != nil {
			n, _ := strconv.Atoi(m[1])
			return n, 0
		}
	}

	return 0, 0
}

// offsetToLineCol turns a byte offset into a 1-indexed line and column.
func offsetToLineCol(data []byte, offset int) (line, col int) {
	offset = min(max(offset, 0), len(data))
	before := data[:offset]
	line = bytes.Count(before, []byte{'\n'}) + 1
	col = offset - (bytes.LastIndexByte(before, '\n') + 1) + 1
	return line, col
}
