package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/confit/internal/cli/prompt"
	"github.com/thoreinstein/confit/internal/doctor"
	"github.com/thoreinstein/confit/internal/editor"
	"github.com/thoreinstein/confit/internal/errors"
	"github.com/thoreinstein/confit/internal/logging"
	"github.com/thoreinstein/confit/internal/translate"
	"github.com/thoreinstein/confit/pkg/confit"
	"github.com/thoreinstein/confit/pkg/format"
)

func init() {
	rootCmd.AddCommand(editCmd)
}

var editCmd = &cobra.Command{
	Use:   "edit <app> [file]",
	Short: "Open a config file in your editor",
	Long: `Open a config file in the editor from settings, $EDITOR or $VISUAL.
A missing file is created first.

Without a file name, pick one of the app's config files interactively. A
file name with an extension (settings.toml) selects the format.

After the editor exits the file is parsed again and any syntax error is
reported.`,
	Example: `  confit edit myapp settings -f toml
  confit edit myapp settings.yaml
  confit edit myapp`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runEdit,
}

// candidate is a config file found in an app directory.
type candidate struct {
	Name   string
	Format format.Format
	Path   string
}

// fuzzyPick picks one candidate on a terminal. It returns nil when the
// user cancels.
func fuzzyPick(files []candidate) (*candidate, error) {
	idx, err := fuzzyfinder.Find(
		files,
		func(i int) string {
			return filepath.Base(files[i].Path)
		},
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return ""
			}
			data, err := os.ReadFile(files[i].Path)
			if err != nil {
				return err.Error()
			}
			return string(data)
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "interactive selection failed")
	}
	return &files[idx], nil
}

func runEdit(cmd *cobra.Command, args []string) error {
	app := args[0]
	f, err := selectedFormat()
	if err != nil {
		return err
	}
	opts := storeOptions(cmd)

	var file string
	if len(args) > 1 {
		file = args[1]
		if ext := filepath.Ext(file); ext != "" {
			if byExt, err := format.FromPath(file); err == nil {
				f = byExt
				file = strings.TrimSuffix(file, ext)
			}
		}
	} else {
		picked, err := pickFile(cmd, app)
		if err != nil {
			return err
		}
		if picked == nil {
			return nil
		}
		file, f = picked.Name, picked.Format
	}

	// Create the file with an empty document so the editor opens something
	// that already parses.
	if _, err := confit.LoadOrInit[translate.Document](app, file, f, opts...); err != nil &&
		!errors.Is(err, confit.ErrDeserialize) {
		return userError(err, app, file)
	}
	path, err := confit.Path(app, file, f, opts...)
	if err != nil {
		return userError(err, app, file)
	}

	ed := editor.New(settingsEditor())
	ed.Stdin = cmd.InOrStdin()
	ed.Stdout = cmd.OutOrStdout()
	ed.Stderr = cmd.ErrOrStderr()
	changed, err := ed.Open(cmd.Context(), path)
	if err != nil {
		return errors.NewSystemError(err, "Set editor in settings or export $EDITOR")
	}
	if !changed {
		logging.FromContext(cmd.Context()).Info("no changes", "path", path)
	}

	result := doctor.NewConfigSyntaxCheck(path, f).Run()
	if result.Status == doctor.SeverityError {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", result.Message)
		return errors.NewUserError(errors.Newf("%s no longer parses as %s", path, f),
			fmt.Sprintf("Run: confit edit %s %s -f %s", app, file, f))
	}
	return nil
}

// pickFile lists the app directory and lets the user choose a config file.
func pickFile(cmd *cobra.Command, app string) (*candidate, error) {
	dir, err := confit.Dir(app, storeOptions(cmd)...)
	if err != nil {
		return nil, userError(err, app, "")
	}

	entries, err := os.ReadDir(dir)
	if err != nil && !os.IsNotExist(err) {
		return nil, errors.NewSystemError(errors.Wrapf(err, "listing %s", dir), "")
	}
	var files []candidate
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		f, err := format.FromPath(e.Name())
		if err != nil || filepath.Ext(e.Name()) != "."+f.Extension() {
			continue
		}
		files = append(files, candidate{
			Name:   strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())),
			Format: f,
			Path:   filepath.Join(dir, e.Name()),
		})
	}
	if len(files) == 0 {
		return nil, errors.NewUserError(errors.Wrapf(errors.ErrNotFound, "no config files in %s", dir),
			fmt.Sprintf("Run: confit edit %s <file>", app))
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })

	if isTerminal(cmd.InOrStdin()) {
		return fuzzyPick(files)
	}

	names := make([]string, len(files))
	for i, c := range files {
		names[i] = filepath.Base(c.Path)
	}
	idx, err := prompt.New(cmd.InOrStdin(), cmd.ErrOrStderr()).Select("Config files in "+dir, names)
	switch {
	case errors.Is(err, prompt.ErrCancelled):
		return nil, nil
	case err != nil:
		return nil, errors.NewUserError(err, "")
	}
	return &files[idx], nil
}

func settingsEditor() string {
	if settings == nil {
		return ""
	}
	return settings.Editor
}
