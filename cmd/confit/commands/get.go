package commands

import (
	"github.com/spf13/cobra"

	"github.com/thoreinstein/confit/internal/errors"
	"github.com/thoreinstein/confit/internal/keypath"
)

var getOutput string

func init() {
	getCmd.Flags().StringVarP(&getOutput, "output", "o", "",
		"encoding for tables and lists: json, ron, toml, yaml")
	rootCmd.AddCommand(getCmd)
}

var getCmd = &cobra.Command{
	Use:   "get <app> <file> <key>",
	Short: "Print a single value from a config file",
	Long: `Print the value at a dotted key. Numeric segments index into lists.

Scalars are printed as plain text; tables and lists are encoded in the
file's format, or the one given with --output.`,
	Example: `  confit get myapp settings server.port
  confit get myapp settings plugins.0 -f toml`,
	Args: cobra.ExactArgs(3),
	RunE: runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	app, file, key := args[0], args[1], args[2]
	f, err := selectedFormat()
	if err != nil {
		return err
	}
	out, err := parseOutputFormat(getOutput, f)
	if err != nil {
		return err
	}

	doc, _, err := readDocument(cmd, app, file, f)
	if err != nil {
		return err
	}
	v, err := keypath.Get(doc, key)
	if err != nil {
		return userError(err, app, file)
	}
	if err := writeValue(cmd.OutOrStdout(), v, out); err != nil {
		return errors.NewSystemError(err, "")
	}
	return nil
}
