// Package render converts rendered diagrams between output formats.
//
// # Overview
//
// Diagram renderers produce SVG. The [ToPDF] and [ToPNG] functions convert
// any SVG to other formats using the external rsvg-convert tool (from
// librsvg):
//
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// # Node-Link Diagrams
//
// The [nodelink] subpackage renders a positioned graph hierarchy as cards
// connected by edges, using Graphviz with pinned node positions.
//
// [nodelink]: github.com/matzehuels/jsonscope/pkg/render/nodelink
package render
