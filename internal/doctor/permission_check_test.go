package doctor

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestPathPermissionCheck_Identity(t *testing.T) {
	c := NewPathPermissionCheck("", "")
	if got := c.Name(); got != "path-permissions" {
		t.Errorf("Name() = %q, want %q", got, "path-permissions")
	}
	if got := c.Category(); got != "filesystem" {
		t.Errorf("Category() = %q, want %q", got, "filesystem")
	}
}

func TestPathPermissionCheck_Private(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "app")
	if err := os.Mkdir(dir, 0o700); err != nil {
		t.Fatal(err)
	}
	file := writeFile(t, dir, "settings.json", "{}")

	result := NewPathPermissionCheck(dir, file).Run()
	if result.Status != SeverityPass {
		t.Errorf("Status = %v, want pass: %s (%v)", result.Status, result.Message, result.Details)
	}
}

func TestPathPermissionCheck_MissingPaths(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "missing")
	result := NewPathPermissionCheck(dir, filepath.Join(dir, "settings.json")).Run()
	if result.Status != SeverityPass {
		t.Errorf("Status = %v, want pass for paths that do not exist yet", result.Status)
	}
}

func TestPathPermissionCheck_WrongTypes(t *testing.T) {
	root := t.TempDir()
	notDir := writeFile(t, root, "app", "x")
	notFile := filepath.Join(root, "dir.json")
	if err := os.Mkdir(notFile, 0o700); err != nil {
		t.Fatal(err)
	}

	c := NewPathPermissionCheck(notDir, notFile)
	result := c.Run()
	if result.Status != SeverityError {
		t.Errorf("Status = %v, want error", result.Status)
	}
	if got := result.Details["issue_count"]; got != 2 {
		t.Errorf("issue_count = %v, want 2", got)
	}
	if c.CanFix() {
		t.Error("type mismatches are not fixable")
	}
}

func TestPathPermissionCheck_FixPermissive(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not enforced on Windows")
	}

	dir := filepath.Join(t.TempDir(), "app")
	if err := os.Mkdir(dir, 0o700); err != nil {
		t.Fatal(err)
	}
	file := writeFile(t, dir, "settings.json", `{"token": "x"}`)
	if err := os.Chmod(file, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Chmod(dir, 0o777); err != nil {
		t.Fatal(err)
	}

	c := NewPathPermissionCheck(dir, file)
	result := c.Run()
	if result.Status != SeverityWarning {
		t.Fatalf("Status = %v, want warning: %s", result.Status, result.Message)
	}
	if !result.Fixable || !c.CanFix() {
		t.Fatal("permission issues should be fixable")
	}
	if got := c.CountFixable(); got != 2 {
		t.Errorf("CountFixable() = %d, want 2", got)
	}

	for _, res := range c.Fix() {
		if !res.Fixed || res.Error != nil {
			t.Errorf("Fix(%s) = %+v", res.Path, res)
		}
	}

	info, err := os.Stat(file)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("file mode = %04o, want 0600", info.Mode().Perm())
	}
	dirInfo, err := os.Stat(dir)
	if err != nil {
		t.Fatal(err)
	}
	if dirInfo.Mode().Perm() != 0o700 {
		t.Errorf("dir mode = %04o, want 0700", dirInfo.Mode().Perm())
	}

	if again := NewPathPermissionCheck(dir, file).Run(); again.Status != SeverityPass {
		t.Errorf("after fix Status = %v: %s", again.Status, again.Message)
	}
}

func TestPermissionFixer_UnknownType(t *testing.T) {
	f := &PermissionFixer{}
	f.setIssues([]pathIssue{{Path: "/nowhere", Type: "socket", Fixable: true}})

	results := f.Fix()
	if len(results) != 1 {
		t.Fatalf("Fix() = %d results, want 1", len(results))
	}
	if results[0].Fixed || results[0].Error == nil {
		t.Errorf("unknown type should fail: %+v", results[0])
	}
}

func TestOctal(t *testing.T) {
	if got := octal(0o644); got != "0644" {
		t.Errorf("octal(0644) = %q", got)
	}
	if got := octal(os.ModeDir | 0o700); got != "0700" {
		t.Errorf("octal(dir 0700) = %q", got)
	}
}

func TestPathPermissionCheck_FixHints(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not enforced on Windows")
	}

	dir := t.TempDir()
	file := writeFile(t, dir, "settings.yaml", "a: 1\n")
	if err := os.Chmod(file, 0o664); err != nil {
		t.Fatal(err)
	}

	result := NewPathPermissionCheck("", file).Run()
	if want := "chmod 600 " + file; result.FixHint != want {
		t.Errorf("FixHint = %q, want %q", result.FixHint, want)
	}
	issues, ok := result.Details["issues"].([]map[string]any)
	if !ok || len(issues) != 1 {
		t.Fatalf("issues = %#v", result.Details["issues"])
	}
	if issues[0]["permissions"] != "0664" || issues[0]["type"] != "file" {
		t.Errorf("issue = %v", issues[0])
	}
}

func TestPermissionFixer_FixOnce(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not enforced on Windows")
	}

	dir := t.TempDir()
	file := writeFile(t, dir, "settings.toml", "a = 1\n")
	if err := os.Chmod(file, 0o640); err != nil {
		t.Fatal(err)
	}

	c := NewPathPermissionCheck("", file)
	c.Run()
	if got := len(c.Fix()); got != 1 {
		t.Fatalf("first Fix() = %d results, want 1", got)
	}
	if c.CanFix() {
		t.Error("nothing should be left to fix")
	}
	if got := len(c.Fix()); got != 0 {
		t.Errorf("second Fix() = %d results, want 0", got)
	}
}
