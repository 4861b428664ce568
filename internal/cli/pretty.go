package cli

import (
	"github.com/spf13/cobra"

	pkgio "github.com/matzehuels/jsonscope/pkg/io"
)

func (c *CLI) prettyCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "pretty [file]",
		Short: "Pretty-print a document",
		Long: `Re-indent a document with two spaces. Object member order and number
literals are kept exactly as written.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.openDocument(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if output == "" {
				return pkgio.WriteJSON(cmd.OutOrStdout(), s.Document())
			}
			if err := pkgio.ExportJSON(s.Document(), output); err != nil {
				return err
			}
			printSuccess("Document written")
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")

	return cmd
}
