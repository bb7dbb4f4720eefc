package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/confit/internal/errors"
	"github.com/thoreinstein/confit/internal/translate"
	"github.com/thoreinstein/confit/pkg/confit"
	"github.com/thoreinstein/confit/pkg/fileutil"
)

var (
	storeInput       string
	storeInputFormat string
)

func init() {
	storeCmd.Flags().StringVarP(&storeInput, "input", "i", "-",
		"file to read the document from, - for stdin")
	storeCmd.Flags().StringVar(&storeInputFormat, "input-format", "",
		"format of the input (default: the file's format)")
	rootCmd.AddCommand(storeCmd)
}

var storeCmd = &cobra.Command{
	Use:   "store <app> <file>",
	Short: "Replace a config file with a document",
	Long: `Replace the contents of a config file with a document read from stdin
or --input. The input may be in any supported format; it is re-encoded in
the file's format and written atomically.`,
	Example: `  echo '{"theme": "dark"}' | confit store myapp settings
  confit store myapp settings -f toml -i backup.yaml --input-format yaml`,
	Args: cobra.ExactArgs(2),
	RunE: runStore,
}

func runStore(cmd *cobra.Command, args []string) error {
	app, file := args[0], args[1]
	f, err := selectedFormat()
	if err != nil {
		return err
	}
	in, err := parseOutputFormat(storeInputFormat, f)
	if err != nil {
		return err
	}

	var data []byte
	if storeInput == "-" {
		data, err = fileutil.ReadAll(cmd.InOrStdin())
	} else {
		data, err = fileutil.ReadFile(storeInput)
	}
	if err != nil {
		return errors.NewUserError(errors.Wrap(err, "reading input"), "")
	}

	doc, err := translate.Decode(data, in)
	if err != nil {
		return errors.NewUserError(err, "")
	}
	doc, err = translate.Prepare(doc, f)
	if err != nil {
		return errors.NewUserError(err, "")
	}
	if err := confit.Store(app, file, f, doc, storeOptions(cmd)...); err != nil {
		return userError(err, app, file)
	}

	if !quiet {
		path, _ := confit.Path(app, file, f, storeOptions(cmd)...)
		fmt.Fprintf(cmd.OutOrStdout(), "Stored %s\n", path)
	}
	return nil
}
