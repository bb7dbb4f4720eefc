package doctor

import (
	"fmt"
	"os"

	"github.com/thoreinstein/confit/internal/config"
	"github.com/thoreinstein/confit/internal/errors"
	"github.com/thoreinstein/confit/pkg/fileutil"
	"github.com/thoreinstein/confit/pkg/format"
)

// SettingsCheck validates the CLI's own settings file without creating it.
type SettingsCheck struct {
	path string
}

var _ Check = (*SettingsCheck)(nil)

// NewSettingsCheck checks the settings file at path.
func NewSettingsCheck(path string) *SettingsCheck {
	return &SettingsCheck{path: path}
}

// Name returns the unique identifier for this check.
func (c *SettingsCheck) Name() string {
	return "cli-settings"
}

// Category returns the grouping for this check.
func (c *SettingsCheck) Category() string {
	return "config"
}

// Run decodes the settings over their defaults and validates them.
func (c *SettingsCheck) Run() *CheckResult {
	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Details:  map[string]any{"path": c.path},
	}

	data, err := fileutil.ReadFile(c.path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		result.Status = SeverityInfo
		result.Message = "no settings file; defaults are in use"
		return result
	case err != nil:
		result.Status = SeverityError
		result.Message = fmt.Sprintf("read error: %v", err)
		return result
	}

	s := config.Default()
	if err := format.Unmarshal(data, format.YAML, s); err != nil {
		result.Status = SeverityError
		result.Message = fmt.Sprintf("settings are not valid YAML: %v", errors.Unwrap(err))
		return result
	}

	if errs := config.Validate(s); len(errs) > 0 {
		problems := make([]string, len(errs))
		for i, e := range errs {
			problems[i] = e.Error()
		}
		result.Status = SeverityWarning
		result.Message = fmt.Sprintf("%d invalid setting(s): %s", len(errs), problems[0])
		result.Details["problems"] = problems
		result.FixHint = "edit " + c.path
		return result
	}

	result.Status = SeverityPass
	result.Message = "settings are valid"
	return result
}
