package doctor

import (
	"path/filepath"
	"testing"
)

func TestSettingsCheck(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
		want    Severity
	}{
		{name: "valid", content: "version: 1\ndefault_format: toml\n", want: SeverityPass},
		{name: "partial file uses defaults", content: "editor: vim\n", want: SeverityPass},
		{name: "invalid values", content: "version: 1\ndefault_format: xml\nlog_format: pretty\n", want: SeverityWarning},
		{name: "malformed", content: "version: [\n", want: SeverityError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, tt.name+".yaml", tt.content)
			result := NewSettingsCheck(path).Run()
			if result.Status != tt.want {
				t.Errorf("Status = %v, want %v: %s", result.Status, tt.want, result.Message)
			}
		})
	}

	t.Run("missing", func(t *testing.T) {
		result := NewSettingsCheck(filepath.Join(dir, "none.yaml")).Run()
		if result.Status != SeverityInfo {
			t.Errorf("Status = %v, want info", result.Status)
		}
	})

	t.Run("problems listed", func(t *testing.T) {
		path := writeFile(t, dir, "two.yaml", "version: 3\nroot: rel\n")
		result := NewSettingsCheck(path).Run()
		problems, ok := result.Details["problems"].([]string)
		if !ok || len(problems) != 2 {
			t.Errorf("Details[problems] = %v, want 2 entries", result.Details["problems"])
		}
	})
}
