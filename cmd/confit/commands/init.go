package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/confit/internal/translate"
	"github.com/thoreinstein/confit/pkg/confit"
)

var initPrint bool

func init() {
	initCmd.Flags().BoolVarP(&initPrint, "print", "p", false,
		"print the file contents after loading")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init <app> <file>",
	Short: "Create a config file if it does not exist",
	Long: `Load a config file, creating it with an empty document when it is
missing. An existing file is read and validated but never modified.`,
	Example: `  confit init myapp settings
  confit init myapp settings -f yaml --print`,
	Args: cobra.ExactArgs(2),
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	app, file := args[0], args[1]
	f, err := selectedFormat()
	if err != nil {
		return err
	}
	opts := storeOptions(cmd)

	existed, err := confit.Exists(app, file, f, opts...)
	if err != nil {
		return userError(err, app, file)
	}
	doc, err := confit.LoadOrInit[translate.Document](app, file, f, opts...)
	if err != nil {
		return userError(err, app, file)
	}
	path, err := confit.Path(app, file, f, opts...)
	if err != nil {
		return userError(err, app, file)
	}

	out := cmd.OutOrStdout()
	if initPrint {
		data, err := translate.Encode(map[string]any(doc), f)
		if err != nil {
			return userError(err, app, file)
		}
		_, err = out.Write(data)
		return err
	}
	if quiet {
		return nil
	}
	if existed {
		fmt.Fprintf(out, "Loaded %s\n", path)
	} else {
		fmt.Fprintf(out, "Created %s\n", path)
	}
	return nil
}
