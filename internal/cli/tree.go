package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/jsonscope/pkg/docpath"
	"github.com/matzehuels/jsonscope/pkg/viewer"
	"github.com/matzehuels/jsonscope/pkg/window"
)

// treeOpts holds the command-line flags for the tree command.
type treeOpts struct {
	search    string   // search term; matching rows and their ancestors stay visible
	expandAll bool     // open every container
	expand    []string // paths to toggle open, as query expressions
	offset    int      // first visible row to print
	limit     int      // maximum rows to print, 0 for all
	paths     bool     // print the query expression of each row
}

func (c *CLI) treeCommand() *cobra.Command {
	var opts treeOpts

	cmd := &cobra.Command{
		Use:   "tree [file]",
		Short: "Print the visible rows of a document's tree view",
		Long: `Print the tree view of a JSON document. Containers start collapsed;
--search keeps only matching rows and their ancestors and opens them.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.openDocument(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := applyTreeOpts(s, opts); err != nil {
				return err
			}
			c.Logger.Debug("tree resolved", "visible", len(s.Visible()), "matches", len(s.Forest().Matches()))
			return writeTree(cmd.OutOrStdout(), s, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.search, "search", "s", "", "filter rows by a case-insensitive substring")
	cmd.Flags().BoolVarP(&opts.expandAll, "expand-all", "a", false, "expand every container")
	cmd.Flags().StringArrayVarP(&opts.expand, "expand", "e", nil, `toggle the row at a path open, e.g. '$["users"][0]' (repeatable)`)
	cmd.Flags().IntVar(&opts.offset, "offset", 0, "first visible row to print")
	cmd.Flags().IntVarP(&opts.limit, "limit", "n", 0, "maximum number of rows to print (0 prints all)")
	cmd.Flags().BoolVar(&opts.paths, "paths", false, "print each row's path")

	return cmd
}

func applyTreeOpts(s *viewer.Session, opts treeOpts) error {
	if err := s.Search(opts.search); err != nil {
		return err
	}
	if opts.expandAll {
		s.ExpandAll()
	}
	for _, expr := range opts.expand {
		p, err := docpath.Parse(expr)
		if err != nil {
			return err
		}
		if !s.Reveal(p) {
			printWarning("no row at %s", expr)
			continue
		}
		if !s.Expansion().IsExpandedPath(p) {
			s.Toggle(p, false)
		}
	}
	return nil
}

// writeTree prints the rows selected by offset and limit. Rows are addressed
// by position, so the window runs with a one-unit row height.
func writeTree(w io.Writer, s *viewer.Session, opts treeOpts) error {
	visible := s.Visible()
	rng := window.Range{Start: 0, End: len(visible)}
	if opts.limit > 0 || opts.offset > 0 {
		viewport := opts.limit
		if viewport <= 0 {
			viewport = len(visible)
		}
		win := window.Window{Count: len(visible), RowHeight: 1, Overscan: 0, ViewportHeight: viewport}
		rng = win.Range(opts.offset)
		rng.End = min(rng.End, rng.Start+viewport)
	}

	for _, v := range visible[rng.Start:rng.End] {
		line := styledRow(v, s.Term())
		if opts.paths {
			line += "  " + StyleDim.Render(v.Row.Path.QueryExpression())
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if rng.End < len(visible) || rng.Start > 0 {
		fmt.Fprintln(w, StyleDim.Render(fmt.Sprintf("rows %d-%d of %d", rng.Start+1, rng.End, len(visible))))
	}
	return nil
}
