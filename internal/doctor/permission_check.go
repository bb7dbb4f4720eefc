package doctor

import (
	"fmt"
	"os"
	"runtime"
	"strings"
)

const (
	typeFile = "file"
	typeDir  = "directory"
)

// PathPermissionCheck makes sure the app directory and config file can be
// used by confit and are not open to other users. Paths that do not exist
// yet pass; LoadOrInit creates them with private modes.
type PathPermissionCheck struct {
	PermissionFixer

	dir  string
	file string
}

var (
	_ Check = (*PathPermissionCheck)(nil)
	_ Fixer = (*PathPermissionCheck)(nil)
)

// NewPathPermissionCheck checks dir and file. Either may be empty.
func NewPathPermissionCheck(dir, file string) *PathPermissionCheck {
	return &PathPermissionCheck{dir: dir, file: file}
}

// Name returns the unique identifier for this check.
func (c *PathPermissionCheck) Name() string {
	return "path-permissions"
}

// Category returns the grouping for this check.
func (c *PathPermissionCheck) Category() string {
	return "filesystem"
}

// Run inspects each configured path and remembers fixable issues for Fix.
func (c *PathPermissionCheck) Run() *CheckResult {
	var issues []pathIssue
	checked := 0
	for _, target := range []struct{ path, kind string }{
		{c.dir, typeDir},
		{c.file, typeFile},
	} {
		if target.path == "" {
			continue
		}
		checked++
		issues = append(issues, inspectPath(target.path, target.kind)...)
	}

	c.setIssues(issues)
	return c.result(issues, checked)
}

// pathIssue is one problem found on one path.
type pathIssue struct {
	Path        string
	Type        string
	Problem     string
	Severity    Severity
	Permissions string
	Fixable     bool
	FixHint     string
}

func inspectPath(path, kind string) []pathIssue {
	info, err := os.Stat(path)
	switch {
	case os.IsNotExist(err):
		return nil
	case err != nil:
		return []pathIssue{{Path: path, Type: kind, Severity: SeverityError,
			Problem: fmt.Sprintf("cannot stat %s: %v", kind, err)}}
	case info.IsDir() != (kind == typeDir):
		return []pathIssue{{Path: path, Type: kind, Severity: SeverityError,
			Problem: "expected a " + kind}}
	}

	mode := info.Mode()
	owner := secureFilePerm
	if kind == typeDir {
		owner = secureDirPerm
	}
	// Fixable issues all share the chmod that Fix applies.
	fixable := func(sev Severity, problem string) pathIssue {
		return pathIssue{
			Path:        path,
			Type:        kind,
			Problem:     problem,
			Severity:    sev,
			Permissions: octal(mode),
			Fixable:     true,
			FixHint:     fmt.Sprintf("chmod %o %s", owner, path),
		}
	}

	var issues []pathIssue
	if !usable(path, kind) {
		verb := "readable"
		if kind == typeDir {
			verb = "writable"
		}
		issues = append(issues, fixable(SeverityError, kind+" is not "+verb))
	}
	if runtime.GOOS == "windows" {
		return issues
	}

	perm := mode.Perm()
	switch {
	case perm&0o002 != 0:
		issues = append(issues, fixable(SeverityWarning, kind+" is world-writable"))
	case kind == typeFile && perm&0o077 != 0:
		issues = append(issues, fixable(SeverityWarning,
			fmt.Sprintf("file is open to other users (mode %s, want %s)", octal(mode), octal(secureFilePerm))))
	}
	return issues
}

// usable reports whether confit can read a file or create files in a
// directory.
func usable(path, kind string) bool {
	if kind == typeFile {
		f, err := os.Open(path)
		if err != nil {
			return false
		}
		f.Close()
		return true
	}
	probe, err := os.CreateTemp(path, ".confit-doctor-*")
	if err != nil {
		return false
	}
	probe.Close()
	os.Remove(probe.Name())
	return true
}

func (c *PathPermissionCheck) result(issues []pathIssue, checked int) *CheckResult {
	res := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Status:   SeverityPass,
		Message:  fmt.Sprintf("all %d paths have valid permissions", checked),
	}
	if len(issues) == 0 {
		return res
	}

	details := make([]map[string]any, 0, len(issues))
	var hints []string
	for _, issue := range issues {
		res.Status = max(res.Status, issue.Severity)
		d := map[string]any{
			"path":     issue.Path,
			"type":     issue.Type,
			"problem":  issue.Problem,
			"severity": issue.Severity.String(),
		}
		if issue.Permissions != "" {
			d["permissions"] = issue.Permissions
		}
		if issue.Fixable {
			d["fix_hint"] = issue.FixHint
			hints = append(hints, issue.FixHint)
		}
		details = append(details, d)
	}

	res.Message = fmt.Sprintf("found %d permission issue(s) across %d paths", len(issues), checked)
	res.Details = map[string]any{
		"checked_paths": checked,
		"issue_count":   len(issues),
		"issues":        details,
	}
	res.Fixable = c.CanFix()
	res.FixHint = strings.Join(hints, "; ")
	return res
}

func octal(mode os.FileMode) string {
	return fmt.Sprintf("%04o", mode.Perm())
}
