package commands

import (
	"github.com/spf13/cobra"

	"github.com/thoreinstein/confit/internal/errors"
	"github.com/thoreinstein/confit/internal/translate"
)

var showOutput string

func init() {
	showCmd.Flags().StringVarP(&showOutput, "output", "o", "",
		"render in another format: json, ron, toml, yaml")
	rootCmd.AddCommand(showCmd)
}

var showCmd = &cobra.Command{
	Use:   "show <app> <file>",
	Short: "Print a config file",
	Long: `Print the contents of an existing config file, re-encoded in the
file's own format or the one given with --output.`,
	Example: `  confit show myapp settings
  confit show myapp settings -f toml -o yaml`,
	Args: cobra.ExactArgs(2),
	RunE: runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	app, file := args[0], args[1]
	f, err := selectedFormat()
	if err != nil {
		return err
	}
	out, err := parseOutputFormat(showOutput, f)
	if err != nil {
		return err
	}

	doc, _, err := readDocument(cmd, app, file, f)
	if err != nil {
		return err
	}
	data, err := translate.Encode(doc, out)
	if err != nil {
		return errors.NewUserError(err, "")
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
