package doctor

import (
	"path/filepath"
	"testing"
)

func TestConfigDirCheck(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "plain", "x")

	tests := []struct {
		name string
		root string
		want Severity
	}{
		{name: "existing directory", root: dir, want: SeverityPass},
		{name: "not created yet", root: filepath.Join(dir, "later"), want: SeverityInfo},
		{name: "unavailable", root: "", want: SeverityError},
		{name: "relative", root: "relative/root", want: SeverityError},
		{name: "regular file", root: file, want: SeverityError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewConfigDirCheck(tt.root)
			if c.Name() != "config-root" || c.Category() != "filesystem" {
				t.Errorf("unexpected identity %s/%s", c.Category(), c.Name())
			}
			result := c.Run()
			if result.Status != tt.want {
				t.Errorf("Status = %v, want %v: %s", result.Status, tt.want, result.Message)
			}
		})
	}
}
