package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/jsonscope/pkg/errors"
	pkgio "github.com/matzehuels/jsonscope/pkg/io"
	"github.com/matzehuels/jsonscope/pkg/skeleton"
)

func (c *CLI) skeletonCommand() *cobra.Command {
	var (
		format string
		items  int
		output string
	)

	cmd := &cobra.Command{
		Use:   "skeleton [file]",
		Short: "Print the shape of a document",
		Long: `Replace every scalar with a type placeholder ("<string>", "<number>",
"<boolean>"; null stays null) and keep only the first items of each array.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := errors.ValidateFormat(format, "json", "yaml"); err != nil {
				return err
			}
			if items <= 0 {
				items = c.config().View.SkeletonItems
			}
			s, err := c.openDocument(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			sk := s.Skeleton(items)

			var buf bytes.Buffer
			if format == "yaml" {
				err = skeleton.WriteYAML(&buf, sk)
			} else {
				err = pkgio.WriteJSON(&buf, sk)
			}
			if err != nil {
				return err
			}

			if output == "" {
				_, err := cmd.OutOrStdout().Write(buf.Bytes())
				return err
			}
			if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			printSuccess("Skeleton written")
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json, yaml")
	cmd.Flags().IntVar(&items, "items", 0, "array items to keep (default from config, 1)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")

	return cmd
}
