package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/jsonscope/pkg/cache"
	"github.com/matzehuels/jsonscope/pkg/errors"
	"github.com/matzehuels/jsonscope/pkg/render"
	"github.com/matzehuels/jsonscope/pkg/viewer"
)

// graphOpts holds options for the graph command.
type graphOpts struct {
	format      string
	output      string
	expandAll   bool
	collapseAll bool
	toggle      []int
	threshold   int
	detailed    bool
	noCache     bool
}

func (c *CLI) graphCommand() *cobra.Command {
	opts := graphOpts{format: render.FormatSVG}

	cmd := &cobra.Command{
		Use:   "graph [file]",
		Short: "Render a document as a node-link graph",
		Long: `Render the document as a tidy node-link tree. Large documents start
collapsed below the root; use --expand-all or --toggle to open nodes.

Formats: json (layout), dot, svg, pdf, png. Image formats require Graphviz
bindings; pdf and png additionally need rsvg-convert on PATH.`,
		Example: `  jsonscope graph data.json -o data.svg
  jsonscope graph data.json -f dot | dot -Tpng > data.png
  jsonscope graph data.json --toggle 0 --toggle 3 -f png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGraph(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: "+strings.Join(viewer.GraphFormats, ", "))
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout for text formats)")
	cmd.Flags().BoolVar(&opts.expandAll, "expand-all", false, "open every node")
	cmd.Flags().BoolVar(&opts.collapseAll, "collapse-all", false, "close every node below the root")
	cmd.Flags().IntSliceVar(&opts.toggle, "toggle", nil, "toggle node ids, applied in order")
	cmd.Flags().IntVar(&opts.threshold, "threshold", 0, "auto-collapse above this many nodes (default from config)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show scalar properties on every card")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the render cache")
	cmd.MarkFlagsMutuallyExclusive("expand-all", "collapse-all")

	return cmd
}

func (c *CLI) runGraph(cmd *cobra.Command, path string, opts graphOpts) error {
	if err := errors.ValidateFormat(opts.format, viewer.GraphFormats...); err != nil {
		return err
	}
	ctx := cmd.Context()

	s, err := c.openDocument(ctx, path, func(o *viewer.Options) {
		if opts.threshold > 0 {
			o.Layout.CollapseThreshold = opts.threshold
		}
		if opts.detailed {
			o.Render.Detailed = true
		}
	})
	if err != nil {
		return err
	}

	switch {
	case opts.expandAll:
		s.ExpandGraph()
	case opts.collapseAll:
		s.CollapseGraph()
	}
	for _, id := range opts.toggle {
		if !s.ToggleGraph(id, false) {
			c.Logger.Warn("node not toggled", "id", id)
		}
	}

	snap := s.Graph()
	c.Logger.Debug("graph ready", "nodes", snap.Source().Count(), "visible", len(snap.Visible()))

	binary := opts.format == render.FormatPDF || opts.format == render.FormatPNG
	output := opts.output
	if output == "" && binary {
		output = defaultOutput(path, opts.format)
	}

	var spin *spinner
	if isImage(opts.format) {
		spin = startStderrSpinner(ctx, fmt.Sprintf("Rendering %s...", strings.ToUpper(opts.format)))
	}
	store := c.newCache(opts.noCache)
	defer store.Close()
	data, err := s.RenderGraph(ctx, opts.format, store, cache.NewDefaultKeyer())
	if spin != nil {
		spin.stop()
	}
	if err != nil {
		return err
	}

	if output == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	printSuccess("Graph rendered")
	printStats(len(snap.Visible()), len(snap.Links()), snap.AutoCollapsed())
	printFile(output)
	return nil
}

func isImage(format string) bool {
	switch format {
	case render.FormatSVG, render.FormatPDF, render.FormatPNG:
		return true
	}
	return false
}

// defaultOutput derives an output filename from the input path, falling back
// to "graph" for stdin.
func defaultOutput(input, format string) string {
	base := "graph"
	if input != "-" {
		base = strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	}
	return base + "." + format
}
