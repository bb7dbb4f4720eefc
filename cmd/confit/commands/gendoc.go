package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/thoreinstein/confit/cmd"
	"github.com/thoreinstein/confit/internal/errors"
)

var (
	genDocDir string
	genDocMan bool
)

func init() {
	genDocCmd.Flags().StringVarP(&genDocDir, "dir", "d", "", "output directory")
	genDocCmd.Flags().BoolVar(&genDocMan, "man", false, "write man pages instead of Markdown")
	_ = genDocCmd.MarkFlagRequired("dir")
	rootCmd.AddCommand(genDocCmd)
}

var genDocCmd = &cobra.Command{
	Use:    "gen-doc",
	Short:  "Generate reference documentation for the CLI",
	Hidden: true,
	Args:   cobra.NoArgs,
	RunE: func(c *cobra.Command, _ []string) error {
		if err := os.MkdirAll(genDocDir, 0o755); err != nil {
			return errors.Wrap(err, "creating output directory")
		}

		root := c.Root()
		root.DisableAutoGenTag = true

		var err error
		if genDocMan {
			err = doc.GenManTree(root, &doc.GenManHeader{
				Title:   "CONFIT",
				Section: "1",
				Source:  "confit " + cmd.Version,
			}, genDocDir)
		} else {
			err = doc.GenMarkdownTree(root, genDocDir)
		}
		if err != nil {
			return errors.Wrap(err, "generating documentation")
		}

		fmt.Fprintf(c.OutOrStdout(), "Documentation generated in %s\n", genDocDir)
		return nil
	},
}
