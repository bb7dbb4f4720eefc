package doctor

import (
	"fmt"
	"strings"

	"github.com/thoreinstein/confit/pkg/format"
)

// FormatSupportCheck reports which codecs this build includes.
type FormatSupportCheck struct {
	want format.Format
}

var _ Check = (*FormatSupportCheck)(nil)

// NewFormatSupportCheck fails when want has no codec in this build.
func NewFormatSupportCheck(want format.Format) *FormatSupportCheck {
	return &FormatSupportCheck{want: want}
}

// Name returns the unique identifier for this check.
func (c *FormatSupportCheck) Name() string {
	return "format-support"
}

// Category returns the grouping for this check.
func (c *FormatSupportCheck) Category() string {
	return "build"
}

// Run compares the compiled-in codecs against every known format.
func (c *FormatSupportCheck) Run() *CheckResult {
	available := format.Available()
	names := make([]string, len(available))
	for i, f := range available {
		names[i] = f.String()
	}

	var missing []string
	for _, f := range format.All() {
		if _, err := format.Lookup(f); err != nil {
			missing = append(missing, f.String())
		}
	}

	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Details: map[string]any{
			"available": names,
		},
	}

	if _, err := format.Lookup(c.want); err != nil {
		result.Status = SeverityError
		result.Message = fmt.Sprintf("%s is not supported by this build (available: %s)", c.want, strings.Join(names, ", "))
		result.FixHint = "rebuild without the confit_no_" + c.want.String() + " tag"
		return result
	}

	if len(missing) > 0 {
		result.Details["missing"] = missing
		result.Status = SeverityInfo
		result.Message = fmt.Sprintf("built without %s", strings.Join(missing, ", "))
		return result
	}

	result.Status = SeverityPass
	result.Message = "all formats available: " + strings.Join(names, ", ")
	return result
}
