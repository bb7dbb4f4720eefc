// Package commands implements the confit CLI.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/confit/cmd"
	"github.com/thoreinstein/confit/internal/config"
	"github.com/thoreinstein/confit/internal/errors"
	"github.com/thoreinstein/confit/internal/logging"
	"github.com/thoreinstein/confit/pkg/confit"
	"github.com/thoreinstein/confit/pkg/format"
)

// formatFlag holds the value of the --format flag.
var formatFlag string

// rootFlag holds the value of the --root flag.
var rootFlag string

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

// settings are the CLI settings loaded before each command runs.
var settings *config.Settings

// settingsErr holds any error that occurred while loading settings.
var settingsErr error

// logCloser releases the --log-file handle after the command finishes.
var logCloser io.Closer

func init() {
	cobra.OnInitialize(initSettings)

	rootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "",
		"config format: json, ron, toml, yaml (default from settings, json)")
	rootCmd.PersistentFlags().StringVar(&rootFlag, "root", "",
		"config root directory (default: the platform's roaming config directory)")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "",
		"log format: text, json (default from settings, text)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"also write logs to file in JSON format")

	rootCmd.Version = cmd.Version
	rootCmd.SetVersionTemplate("confit version {{.Version}}\n")

	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

func initSettings() {
	config.Init()
	settings, settingsErr = config.Load(rootFlag)
}

var rootCmd = &cobra.Command{
	Use:   "confit",
	Short: "Load, initialize and inspect per-application config files",
	Long: `confit manages application config files kept in the user's roaming
config directory, one file per <app>/<file>.<format>.

A file is created with default contents the first time it is used and read
back on every later use. JSON, RON, TOML and YAML are supported.`,
	Example: `  # Create (or read) ~/.config/myapp/settings.toml
  confit init myapp settings -f toml

  # Read a single value
  confit get myapp settings server.port -f toml

  # Check a file for problems
  confit doctor myapp settings -f toml`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := setupLogging(cmd); err != nil {
			return err
		}
		return checkSettings(cmd)
	},
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(errors.New("cannot use --quiet and --verbose together"), "")
	}

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		v := verbosity
		if v == 0 {
			if val, ok := os.LookupEnv("CONFIT_DEBUG"); ok {
				switch val {
				case "1", "true":
					v = 2
				case "2":
					v = 3
				}
			}
		}
		level = logging.LevelFromVerbosity(v)
	}

	f := logFormat
	if f == "" && settings != nil {
		f = settings.LogFormat
	}
	if f == "" {
		f = string(logging.FormatText)
	}
	lf, err := logging.ParseFormat(f)
	if err != nil {
		return errors.NewUserError(err, "")
	}

	logger, closer, err := logging.Open(logging.Config{
		Level:  level,
		Format: lf,
		Output: cmd.ErrOrStderr(),
		File:   logFile,
	})
	if err != nil {
		return errors.NewUserError(err, "")
	}
	closeLog()
	logCloser = closer

	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))
	return nil
}

// checkSettings surfaces a broken settings file. help and version still work.
func checkSettings(cmd *cobra.Command) error {
	if cmd.Name() == "help" || cmd.Name() == "version" {
		return nil
	}
	if settingsErr != nil {
		path, _ := config.Path(rootFlag)
		return errors.NewUserError(settingsErr, "Fix or remove "+path)
	}
	return nil
}

// selectedFormat returns --format, else the settings default, else JSON.
func selectedFormat() (format.Format, error) {
	if formatFlag != "" {
		f, err := format.Parse(formatFlag)
		if err != nil {
			return 0, errors.NewUserError(err, "")
		}
		return f, nil
	}
	if settings != nil {
		return settings.Format()
	}
	return format.JSON, nil
}

// configRoot returns --root, else the settings root. Empty means the
// platform default.
func configRoot() string {
	if rootFlag != "" {
		return rootFlag
	}
	if settings != nil {
		return settings.Root
	}
	return ""
}

// storeOptions configures pkg/confit calls for the current invocation.
func storeOptions(cmd *cobra.Command) []confit.Option {
	opts := []confit.Option{confit.WithLogger(logging.FromContext(cmd.Context()))}
	if root := configRoot(); root != "" {
		opts = append(opts, confit.WithRoot(root))
	}
	return opts
}

// userError classifies library errors for exit codes and suggestions.
func userError(err error, app, file string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, confit.ErrMissingConfigDir):
		return errors.NewSystemError(err, "Set XDG_CONFIG_HOME (APPDATA on Windows) or pass --root")
	case errors.Is(err, confit.ErrDeserialize), errors.Is(err, confit.ErrInvalid):
		return errors.NewUserError(err, fmt.Sprintf("Run: confit doctor %s %s", app, file))
	case errors.Is(err, confit.ErrInvalidName),
		errors.Is(err, confit.ErrUnsupportedFormat),
		errors.Is(err, errors.ErrInvalidKey),
		errors.Is(err, errors.ErrNotFound):
		return errors.NewUserError(err, "")
	}
	return errors.NewSystemError(err, "")
}

// PrintError writes err and any suggestion it carries to w.
func PrintError(w io.Writer, err error) {
	var exitErr *errors.ExitError
	if errors.As(err, &exitErr) && exitErr.Err == nil {
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
	if hint := errors.FlattenHints(err); hint != "" {
		fmt.Fprintf(w, "  hint: %s\n", hint)
	}
	if errors.As(err, &exitErr) && exitErr.Suggestion != "" {
		fmt.Fprintf(w, "  %s\n", exitErr.Suggestion)
	}
}

// Execute runs the root command.
func Execute() error {
	defer closeLog()
	return rootCmd.Execute()
}

func closeLog() {
	if logCloser != nil {
		_ = logCloser.Close()
		logCloser = nil
	}
}
