package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/confit/pkg/confit"
)

func init() {
	rootCmd.AddCommand(pathCmd)
}

var pathCmd = &cobra.Command{
	Use:   "path <app> <file>",
	Short: "Print the location of a config file",
	Long: `Print the absolute path a config file resolves to. The file does not
need to exist and nothing is created.`,
	Args: cobra.ExactArgs(2),
	RunE: runPath,
}

func runPath(cmd *cobra.Command, args []string) error {
	app, file := args[0], args[1]
	f, err := selectedFormat()
	if err != nil {
		return err
	}
	path, err := confit.Path(app, file, f, storeOptions(cmd)...)
	if err != nil {
		return userError(err, app, file)
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}
