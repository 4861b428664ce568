// Package nodelink renders a positioned graph hierarchy as a node-link
// diagram.
//
// # Overview
//
// Each visible node of a [layout.Snapshot] becomes a card: a title row, up
// to five property rows, and a footer counting the properties left out.
// Collapsed nodes carry a badge with the number of hidden children. Hex
// color values get a color swatch next to them.
//
// # Usage
//
// Convert a snapshot to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(snapshot, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # DOT Format
//
// The generated DOT pins every node at its layout position (pos="x,y!")
// and is rendered with the neato engine, so Graphviz draws the tidy tree
// as computed instead of ranking it again. The tree grows left to right:
// depth maps to the horizontal axis and sibling order to the vertical one.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
