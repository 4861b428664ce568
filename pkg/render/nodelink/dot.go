package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/jsonscope/pkg/graph"
	"github.com/matzehuels/jsonscope/pkg/layout"
	"github.com/matzehuels/jsonscope/pkg/render"
)

// Engine is the Graphviz layout engine used for pinned positions.
const Engine = "neato"

// DefaultScale converts layout units to points.
const DefaultScale = 0.5

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds property rows to every card.
	// When false, only the title and the collapse badge are shown.
	Detailed bool
	// Scale multiplies layout coordinates. Zero means DefaultScale.
	Scale float64
}

// ToDOT converts a snapshot to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG], [RenderPDF], or [RenderPNG].
func ToDOT(s *layout.Snapshot, opts Options) string {
	scale := opts.Scale
	if scale <= 0 {
		scale = DefaultScale
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	fmt.Fprintf(&buf, "  layout=%s;\n", Engine)
	buf.WriteString("  inputscale=72;\n")
	buf.WriteString("  splines=curved;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=plain, fontname=\"Helvetica\", fontsize=12];\n")
	buf.WriteString("  edge [color=\"#d0d7de\", penwidth=2, arrowhead=none];\n")
	buf.WriteString("\n")

	for _, n := range s.Visible() {
		// depth runs left to right; DOT's y axis points up
		x := n.Y * scale
		y := (0 - n.X) * scale
		fmt.Fprintf(&buf, "  n%d [pos=\"%s,%s!\", label=<%s>];\n",
			n.ID, fmtFloat(x), fmtFloat(y), cardLabel(n, opts.Detailed))
	}

	buf.WriteString("\n")
	for _, l := range s.Links() {
		fmt.Fprintf(&buf, "  n%d -> n%d;\n", l.Source.ID, l.Target.ID)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// cardLabel builds the HTML-like label of one card.
func cardLabel(n *layout.Node, detailed bool) string {
	var b strings.Builder
	b.WriteString(`<TABLE BORDER="1" CELLBORDER="0" CELLSPACING="0" CELLPADDING="4" STYLE="ROUNDED" COLOR="#e1e4e8" BGCOLOR="white">`)

	title := html.EscapeString(n.Title())
	if badge := n.Badge(); badge > 0 {
		fmt.Fprintf(&b, `<TR><TD COLSPAN="3" BGCOLOR="#f6f8fa" ALIGN="LEFT"><B>%s</B>  <FONT COLOR="#0969da">+%d</FONT></TD></TR>`, title, badge)
	} else {
		fmt.Fprintf(&b, `<TR><TD COLSPAN="3" BGCOLOR="#f6f8fa" ALIGN="LEFT"><B>%s</B></TD></TR>`, title)
	}

	if detailed {
		props, hidden := n.CardProperties()
		for _, p := range props {
			b.WriteString(propertyRow(p))
		}
		if hidden > 0 {
			fmt.Fprintf(&b, `<TR><TD COLSPAN="3" ALIGN="LEFT"><FONT COLOR="#57606a">⋯ %d more properties</FONT></TD></TR>`, hidden)
		}
	}

	b.WriteString("</TABLE>")
	return b.String()
}

func propertyRow(p graph.Property) string {
	swatch := `<TD></TD>`
	if p.Color {
		swatch = fmt.Sprintf(`<TD BGCOLOR="%s" WIDTH="10" HEIGHT="10" FIXEDSIZE="TRUE"></TD>`, p.Value)
	}
	return fmt.Sprintf(`<TR><TD ALIGN="LEFT"><FONT COLOR="#57606a">%s:</FONT></TD>%s<TD ALIGN="LEFT">%s</TD></TR>`,
		html.EscapeString(p.Key), swatch, html.EscapeString(p.Value))
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the root svg element so the diagram scales with
// its container.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(root))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	return renderAs(ctx, dot, render.FormatPDF, 0)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	return renderAs(ctx, dot, render.FormatPNG, scale)
}

// Render renders a DOT graph in any format supported by [render.Convert].
func Render(ctx context.Context, dot, format string, scale float64) ([]byte, error) {
	return renderAs(ctx, dot, format, scale)
}

func renderAs(ctx context.Context, dot, format string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.Convert(ctx, svg, format, scale)
}
