package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/jsonscope/pkg/docpath"
	"github.com/matzehuels/jsonscope/pkg/errors"
)

func (c *CLI) pathCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "path [expression...]",
		Short: "Validate and normalize path expressions",
		Long: `Parse path expressions such as $["users"][0]['name'] and print them in
canonical form. With --file, also print the value each path points to.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths := make([]docpath.Path, len(args))
			for i, expr := range args {
				p, err := docpath.Parse(expr)
				if err != nil {
					return err
				}
				paths[i] = p
			}

			out := cmd.OutOrStdout()
			if file == "" {
				for _, p := range paths {
					fmt.Fprintln(out, p.QueryExpression())
				}
				return nil
			}

			s, err := c.openDocument(cmd.Context(), file)
			if err != nil {
				return err
			}
			var missing int
			for _, p := range paths {
				v, ok := s.Value(p)
				if !ok {
					missing++
					fmt.Fprintf(out, "%s\t%s\n", p.QueryExpression(), StyleWarning.Render("(not found)"))
					continue
				}
				val, err := v.MarshalJSON()
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s\t%s\n", p.QueryExpression(), val)
			}
			if missing > 0 {
				return errors.New(errors.ErrCodeNotFound, "%d of %d paths not found", missing, len(paths))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "resolve the paths against this JSON document")

	return cmd
}
