package doctor

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/thoreinstein/confit/internal/errors"
)

// ReportFormat selects how a Report is written.
type ReportFormat string

const (
	// ReportText is the human-readable, colorized form.
	ReportText ReportFormat = "text"
	// ReportJSON is the machine-readable form.
	ReportJSON ReportFormat = "json"
)

// Reporter writes doctor reports.
type Reporter struct {
	out     io.Writer
	format  ReportFormat
	verbose bool
}

// NewReporter creates a Reporter. In text form only warnings and errors are
// listed unless verbose is set.
func NewReporter(out io.Writer, format ReportFormat, verbose bool) *Reporter {
	return &Reporter{out: out, format: format, verbose: verbose}
}

// Report writes report to the output.
func (r *Reporter) Report(report *Report) error {
	if report == nil {
		return nil
	}
	if r.format == ReportJSON {
		enc := json.NewEncoder(r.out)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(report), "encoding JSON report")
	}
	r.reportText(report)
	return nil
}

func (r *Reporter) reportText(report *Report) {
	if report.Target != "" {
		fmt.Fprintf(r.out, "Checking %s\n\n", report.Target)
	}

	shown := false
	for _, result := range report.Results {
		problem := result.Status == SeverityError || result.Status == SeverityWarning
		if !r.verbose && !problem {
			continue
		}
		shown = true
		fmt.Fprintf(r.out, "%s [%s] %s: %s\n", statusIcon(result.Status), result.Category, result.Name, result.Message)
		if result.FixHint != "" && problem {
			fmt.Fprintf(r.out, "  hint: %s\n", result.FixHint)
		}
	}
	if shown {
		fmt.Fprintln(r.out)
	}

	fmt.Fprintf(r.out, "Summary: %s passed, %d info, %s, %s\n",
		color.GreenString("%d", report.Summary.Passed),
		report.Summary.Info,
		color.YellowString("%d warnings", report.Summary.Warnings),
		color.RedString("%d errors", report.Summary.Errors))
}

// WriteFixResults prints the outcome of Fixer.Fix calls.
func (r *Reporter) WriteFixResults(results []FixResult) {
	for _, res := range results {
		if res.Fixed {
			fmt.Fprintf(r.out, "%s fixed %s: %s\n", color.GreenString("✓"), res.Path, res.Description)
			continue
		}
		fmt.Fprintf(r.out, "%s could not fix %s: %s\n", color.RedString("✗"), res.Path, res.Description)
	}
}

func statusIcon(s Severity) string {
	switch s {
	case SeverityPass:
		return color.GreenString("✓")
	case SeverityInfo:
		return color.CyanString("ℹ")
	case SeverityWarning:
		return color.YellowString("⚠")
	case SeverityError:
		return color.RedString("✗")
	default:
		return "?"
	}
}
