package commands

import (
	"github.com/spf13/cobra"

	"github.com/thoreinstein/confit/internal/config"
	"github.com/thoreinstein/confit/internal/doctor"
	"github.com/thoreinstein/confit/internal/errors"
	"github.com/thoreinstein/confit/internal/paths"
	"github.com/thoreinstein/confit/pkg/confit"
)

var (
	doctorJSON bool
	doctorAll  bool
	doctorFix  bool
)

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false,
		"output results as JSON")
	doctorCmd.Flags().BoolVar(&doctorAll, "all", false,
		"show every check, including passed ones")
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false,
		"tighten file and directory permissions that are too open")
	doctorCmd.MarkFlagsMutuallyExclusive("json", "all")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor [app [file]]",
	Short: "Diagnose config files",
	Long: `Run diagnostic checks on the config root, the CLI settings and,
when given, an application's directory and config file.

Checks the file parses in its format and that permissions keep it private.

Exit codes:
  0 - All checks passed (no errors or warnings)
  1 - Warnings present, no errors
  2 - Errors present`,
	Example: `  confit doctor
  confit doctor myapp settings -f toml
  confit doctor myapp settings --fix`,
	Args: cobra.MaximumNArgs(2),
	RunE: runDoctor,
}

func runDoctor(cmd *cobra.Command, args []string) error {
	f, err := selectedFormat()
	if err != nil {
		return err
	}

	root := configRoot()
	if root == "" {
		root, _ = paths.RoamingConfigDir()
	}

	var target string
	checks := []doctor.Check{
		doctor.NewConfigDirCheck(root),
		doctor.NewFormatSupportCheck(f),
	}
	if p, err := config.Path(rootFlag); err == nil {
		checks = append(checks, doctor.NewSettingsCheck(p))
	}

	if len(args) > 0 && root != "" {
		app, file := args[0], ""
		if len(args) > 1 {
			file = args[1]
		}
		dir, err := confit.Dir(app, storeOptions(cmd)...)
		if err != nil {
			return userError(err, app, file)
		}
		if file == "" {
			target = dir
			checks = append(checks, doctor.NewPathPermissionCheck(dir, ""))
		} else {
			path, err := confit.Path(app, file, f, storeOptions(cmd)...)
			if err != nil {
				return userError(err, app, file)
			}
			target = path
			checks = append(checks,
				doctor.NewPathPermissionCheck(dir, path),
				doctor.NewConfigSyntaxCheck(path, f),
			)
		}
	}

	runner := doctor.NewRunner(target)
	for _, c := range checks {
		runner.AddCheck(c)
	}
	report := runner.Run()

	reportFormat := doctor.ReportText
	if doctorJSON {
		reportFormat = doctor.ReportJSON
	}
	reporter := doctor.NewReporter(cmd.OutOrStdout(), reportFormat, doctorAll)

	if doctorFix {
		if results := runner.Fix(); len(results) > 0 {
			if reportFormat == doctor.ReportText {
				reporter.WriteFixResults(results)
			}
			report = runner.Run()
		}
	}

	if !quiet || doctorJSON {
		if err := reporter.Report(report); err != nil {
			return errors.NewSystemError(err, "")
		}
	}

	if code := report.ExitCode(); code != errors.ExitSuccess {
		return errors.NewExitError(nil, code)
	}
	return nil
}
