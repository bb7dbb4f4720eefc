package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/confit/internal/errors"
	"github.com/thoreinstein/confit/internal/keypath"
	"github.com/thoreinstein/confit/internal/translate"
	"github.com/thoreinstein/confit/pkg/confit"
	"github.com/thoreinstein/confit/pkg/format"
)

var setString bool

func init() {
	setCmd.Flags().BoolVar(&setString, "string", false,
		"store the value as a string without interpreting it")
	rootCmd.AddCommand(setCmd)
}

var setCmd = &cobra.Command{
	Use:   "set <app> <file> <key> <value>",
	Short: "Set a single value in a config file",
	Long: `Set the value at a dotted key, creating the file and any missing tables.

The value is read the way a YAML scalar is: 42 is an integer, true a bool
and [a, b] a list. Use --string to keep it as text.`,
	Example: `  confit set myapp settings server.port 8080
  confit set myapp settings name 007 --string
  confit set myapp settings plugins "[core, extra]" -f toml`,
	Args: cobra.ExactArgs(4),
	RunE: runSet,
}

func runSet(cmd *cobra.Command, args []string) error {
	app, file, key, raw := args[0], args[1], args[2], args[3]
	f, err := selectedFormat()
	if err != nil {
		return err
	}

	var value any = raw
	if !setString {
		value = keypath.ParseValue(raw)
	}
	if value == nil && f == format.TOML {
		return errors.NewUserError(errors.Newf("toml cannot store null at %q", key),
			"Quote the value and pass --string to store the text")
	}

	doc, path, err := readDocument(cmd, app, file, f)
	if err != nil {
		if !errors.Is(err, errors.ErrNotFound) {
			return err
		}
		doc = map[string]any{}
	}

	doc, err = keypath.Set(doc, key, value)
	if err != nil {
		return userError(err, app, file)
	}
	doc, err = translate.Prepare(doc, f)
	if err != nil {
		return errors.NewUserError(err, "")
	}
	if err := confit.Store(app, file, f, doc, storeOptions(cmd)...); err != nil {
		return userError(err, app, file)
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Set %s in %s\n", key, path)
	}
	return nil
}
