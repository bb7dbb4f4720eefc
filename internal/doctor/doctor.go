// Package doctor diagnoses a single application's config file: whether the
// config root is usable, whether the file parses in its format, and whether
// its permissions keep it private.
package doctor

import (
	"fmt"
	"time"

	"github.com/thoreinstein/confit/internal/errors"
)

// Check is the interface that diagnostic checks must implement.
type Check interface {
	// Name returns the unique identifier for this check.
	Name() string

	// Category returns the grouping for this check (e.g., "filesystem", "config").
	Category() string

	// Run executes the diagnostic check and returns its result.
	Run() *CheckResult
}

// Runner executes checks in the order they were added.
type Runner struct {
	target string
	checks []Check
	now    func() time.Time
}

// NewRunner creates a runner for the config file (or app directory) at
// target. target is informational and may be empty.
func NewRunner(target string) *Runner {
	return &Runner{target: target, now: time.Now}
}

// AddCheck registers a diagnostic check with the runner.
func (r *Runner) AddCheck(c Check) {
	r.checks = append(r.checks, c)
}

// Run executes every check. A check that panics or returns nil is reported
// as an error instead of aborting the run.
func (r *Runner) Run() *Report {
	report := &Report{
		Target:    r.target,
		Timestamp: r.now().UTC(),
		Results:   make([]*CheckResult, 0, len(r.checks)),
	}
	for _, c := range r.checks {
		start := r.now()
		result := runCheck(c)
		result.Duration = r.now().Sub(start)

		report.Results = append(report.Results, result)
		report.Summary.add(result.Status)
	}
	return report
}

func runCheck(c Check) (result *CheckResult) {
	defer func() {
		if p := recover(); p != nil {
			result = &CheckResult{
				Name:     c.Name(),
				Category: c.Category(),
				Status:   SeverityError,
				Message:  fmt.Sprintf("check panicked: %v", p),
			}
		}
	}()

	result = c.Run()
	if result == nil {
		result = &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityError,
			Message:  "check returned no result",
		}
	}
	return result
}

// Fixers returns the checks from the last Run that have something to fix.
func (r *Runner) Fixers() []Fixer {
	var fixers []Fixer
	for _, c := range r.checks {
		if f, ok := c.(Fixer); ok && f.CanFix() {
			fixers = append(fixers, f)
		}
	}
	return fixers
}

// Fix applies every pending fix and returns the outcomes in check order.
func (r *Runner) Fix() []FixResult {
	var results []FixResult
	for _, f := range r.Fixers() {
		results = append(results, f.Fix()...)
	}
	return results
}

// Report is the outcome of one Runner.Run.
type Report struct {
	// Target is the config file or directory under diagnosis.
	Target string `json:"target,omitempty"`

	// Timestamp is when the run started.
	Timestamp time.Time `json:"timestamp"`

	Results []*CheckResult `json:"results"`
	Summary Summary        `json:"summary"`
}

// HasErrors returns true if any check has SeverityError.
func (r *Report) HasErrors() bool {
	return r.Summary.Errors > 0
}

// HasWarnings returns true if any check has SeverityWarning.
func (r *Report) HasWarnings() bool {
	return r.Summary.Warnings > 0
}

// Worst returns the highest severity in the report.
func (r *Report) Worst() Severity {
	switch {
	case r.HasErrors():
		return SeverityError
	case r.HasWarnings():
		return SeverityWarning
	case r.Summary.Info > 0:
		return SeverityInfo
	}
	return SeverityPass
}

// ExitCode maps the report to the CLI exit codes: warnings are a user
// problem, errors a system one.
func (r *Report) ExitCode() int {
	switch r.Worst() {
	case SeverityError:
		return errors.ExitSystem
	case SeverityWarning:
		return errors.ExitUser
	}
	return errors.ExitSuccess
}
