package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/confit/internal/cli/prompt"
	"github.com/thoreinstein/confit/internal/errors"
	"github.com/thoreinstein/confit/pkg/confit"
)

var resetYes bool

func init() {
	resetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false,
		"do not ask for confirmation")
	rootCmd.AddCommand(resetCmd)
}

var resetCmd = &cobra.Command{
	Use:   "reset <app> <file>",
	Short: "Delete a config file so it is re-created with defaults",
	Long: `Delete a config file. The next load re-creates it with default
contents. Deleting a file that does not exist is not an error.

On a terminal you are asked to confirm unless --yes is given.`,
	Args: cobra.ExactArgs(2),
	RunE: runReset,
}

func runReset(cmd *cobra.Command, args []string) error {
	app, file := args[0], args[1]
	f, err := selectedFormat()
	if err != nil {
		return err
	}
	opts := storeOptions(cmd)

	path, err := confit.Path(app, file, f, opts...)
	if err != nil {
		return userError(err, app, file)
	}
	existed, err := confit.Exists(app, file, f, opts...)
	if err != nil {
		return userError(err, app, file)
	}
	if existed && !resetYes && isTerminal(cmd.InOrStdin()) {
		ok, err := prompt.New(cmd.InOrStdin(), cmd.ErrOrStderr()).Confirm("Remove "+path+"?", false)
		if err != nil && !errors.Is(err, prompt.ErrCancelled) {
			return errors.NewUserError(err, "")
		}
		if !ok {
			return nil
		}
	}
	if err := confit.Remove(app, file, f, opts...); err != nil {
		return userError(err, app, file)
	}

	if quiet {
		return nil
	}
	if existed {
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", path)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Nothing to remove at %s\n", path)
	}
	return nil
}
