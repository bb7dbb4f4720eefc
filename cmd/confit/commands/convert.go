package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/confit/internal/errors"
	"github.com/thoreinstein/confit/internal/translate"
	"github.com/thoreinstein/confit/pkg/confit"
	"github.com/thoreinstein/confit/pkg/format"
)

var (
	convertTo     string
	convertRemove bool
)

func init() {
	convertCmd.Flags().StringVarP(&convertTo, "to", "t", "",
		"target format: json, ron, toml, yaml")
	convertCmd.Flags().BoolVar(&convertRemove, "remove", false,
		"delete the source file after converting")
	_ = convertCmd.MarkFlagRequired("to")
	rootCmd.AddCommand(convertCmd)
}

var convertCmd = &cobra.Command{
	Use:   "convert <app> <file>",
	Short: "Convert a config file to another format",
	Long: `Write a copy of a config file in another format next to the original.
An existing target file is replaced.`,
	Example: `  confit convert myapp settings -f json --to toml
  confit convert myapp settings -f yaml --to ron --remove`,
	Args: cobra.ExactArgs(2),
	RunE: runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	app, file := args[0], args[1]
	from, err := selectedFormat()
	if err != nil {
		return err
	}
	to, err := format.Parse(convertTo)
	if err != nil {
		return errors.NewUserError(err, "")
	}
	if from == to {
		return errors.NewUserError(errors.Newf("%s is already %s", file, to),
			"Pass the current format with --format and the new one with --to")
	}

	doc, src, err := readDocument(cmd, app, file, from)
	if err != nil {
		return err
	}
	doc, err = translate.Prepare(doc, to)
	if err != nil {
		return errors.NewUserError(errors.Wrapf(err, "converting %s to %s", from, to), "")
	}

	opts := storeOptions(cmd)
	if err := confit.Store(app, file, to, doc, opts...); err != nil {
		return userError(err, app, file)
	}
	dst, err := confit.Path(app, file, to, opts...)
	if err != nil {
		return userError(err, app, file)
	}

	if convertRemove {
		if err := confit.Remove(app, file, from, opts...); err != nil {
			return userError(err, app, file)
		}
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Converted %s -> %s\n", src, dst)
	}
	return nil
}
