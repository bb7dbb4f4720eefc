package doctor

import (
	"fmt"
	"os"
	"path/filepath"
)

// ConfigDirCheck verifies the roaming config root.
type ConfigDirCheck struct {
	root string
}

var _ Check = (*ConfigDirCheck)(nil)

// NewConfigDirCheck checks root. An empty root means the platform reported
// no config directory.
func NewConfigDirCheck(root string) *ConfigDirCheck {
	return &ConfigDirCheck{root: root}
}

// Name returns the unique identifier for this check.
func (c *ConfigDirCheck) Name() string {
	return "config-root"
}

// Category returns the grouping for this check.
func (c *ConfigDirCheck) Category() string {
	return "filesystem"
}

// Run reports whether the root is known, absolute and a directory.
func (c *ConfigDirCheck) Run() *CheckResult {
	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Details:  map[string]any{"root": c.root},
	}

	switch {
	case c.root == "":
		result.Status = SeverityError
		result.Message = "no roaming config directory is available on this system"
		result.FixHint = "set XDG_CONFIG_HOME (or APPDATA on Windows), or pass --root"
		return result
	case !filepath.IsAbs(c.root):
		result.Status = SeverityError
		result.Message = fmt.Sprintf("config root %q is not an absolute path", c.root)
		result.FixHint = "use an absolute path for --root"
		return result
	}

	info, err := os.Stat(c.root)
	switch {
	case os.IsNotExist(err):
		result.Status = SeverityInfo
		result.Message = fmt.Sprintf("config root %s does not exist yet; it is created on first init", c.root)
	case err != nil:
		result.Status = SeverityError
		result.Message = fmt.Sprintf("cannot stat config root: %v", err)
	case !info.IsDir():
		result.Status = SeverityError
		result.Message = fmt.Sprintf("config root %s is not a directory", c.root)
	default:
		result.Status = SeverityPass
		result.Message = fmt.Sprintf("config root %s", c.root)
	}
	return result
}
