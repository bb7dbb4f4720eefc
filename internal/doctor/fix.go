package doctor

import (
	"fmt"
	"os"

	"github.com/thoreinstein/confit/internal/errors"
	"github.com/thoreinstein/confit/internal/paths"
	"github.com/thoreinstein/confit/pkg/fileutil"
)

// Fixer is implemented by checks that can repair what they detect
// (confit doctor --fix). CanFix and Fix refer to the most recent Run.
type Fixer interface {
	CanFix() bool
	Fix() []FixResult
}

// FixResult is the outcome of one attempted repair.
type FixResult struct {
	Path        string
	Fixed       bool
	Description string
	Error       error
}

// Owner bits confit itself creates files and directories with.
const (
	secureFilePerm os.FileMode = fileutil.DefaultFilePerm
	secureDirPerm  os.FileMode = paths.DefaultDirPerm
)

// PermissionFixer removes group and other bits from the paths a
// PathPermissionCheck flagged, and makes sure the owner keeps the access
// confit needs. PathPermissionCheck embeds it.
type PermissionFixer struct {
	issues []pathIssue
}

// CanFix reports whether the last run found anything fixable.
func (f *PermissionFixer) CanFix() bool {
	return f.CountFixable() > 0
}

// CountFixable returns the number of fixable issues.
func (f *PermissionFixer) CountFixable() int {
	n := 0
	for _, issue := range f.issues {
		if issue.Fixable {
			n++
		}
	}
	return n
}

// Fix chmods each fixable path. Repaired issues are forgotten, so calling
// Fix twice does not repeat work.
func (f *PermissionFixer) Fix() []FixResult {
	results := make([]FixResult, 0, f.CountFixable())
	remaining := f.issues[:0]
	for _, issue := range f.issues {
		if !issue.Fixable {
			remaining = append(remaining, issue)
			continue
		}
		res := chmodPrivate(issue)
		if !res.Fixed {
			remaining = append(remaining, issue)
		}
		results = append(results, res)
	}
	f.issues = remaining
	return results
}

func chmodPrivate(issue pathIssue) FixResult {
	res := FixResult{Path: issue.Path}

	var owner os.FileMode
	switch issue.Type {
	case "file":
		owner = secureFilePerm
	case "directory":
		owner = secureDirPerm
	default:
		res.Description = "unknown type: " + issue.Type
		res.Error = errors.Newf("cannot fix unknown type: %s", issue.Type)
		return res
	}

	info, err := os.Stat(issue.Path)
	if err != nil {
		res.Description = fmt.Sprintf("cannot stat: %v", err)
		res.Error = errors.Wrapf(err, "stat %s", issue.Path)
		return res
	}
	target := info.Mode().Perm()&^0o077 | owner

	if err := os.Chmod(issue.Path, target); err != nil {
		res.Description = fmt.Sprintf("failed to chmod %04o: %v", target, err)
		res.Error = errors.Wrapf(err, "chmod %04o %s", target, issue.Path)
		return res
	}
	res.Fixed = true
	res.Description = fmt.Sprintf("chmod %04o", target)
	return res
}

// setIssues records what Run found for a later Fix.
func (f *PermissionFixer) setIssues(issues []pathIssue) {
	f.issues = issues
}
