// Package pkg provides the core libraries for jsonscope, a viewer for large
// JSON documents.
//
// # Overview
//
// jsonscope shows a JSON document two ways: as a collapsible, searchable tree
// of rows, and as a node-link graph where every object and array is a card
// linked to its children. Both views are built from the same immutable
// document model and stay responsive for documents with hundreds of thousands
// of values, because only the rows or nodes that are on screen are ever
// materialised.
//
// # Architecture
//
// The data flow for the tree view:
//
//	JSON bytes
//	     ↓
//	[jsonval] parse into an immutable document
//	     ↓
//	[tree] project rows (optionally filtered by a search term)
//	     ↓
//	[tree] expansion state → visible rows
//	     ↓
//	[window] slice the rows that intersect the viewport
//
// and for the graph view:
//
//	[jsonval] document
//	     ↓
//	[graph] node hierarchy (one node per object or array)
//	     ↓
//	[layout] tidy tree positions, collapsed subtrees pruned
//	     ↓
//	[render/nodelink] DOT → SVG/PDF/PNG, or [graph] JSON layout
//
// [viewer] ties both flows together for one open document and is the package
// front ends use.
//
// # Quick Start
//
//	s, err := viewer.Open(ctx, "data.json", viewer.Options{})
//	if err != nil {
//	    return err
//	}
//	if err := s.Search("email"); err != nil {
//	    return err
//	}
//	_, rows := s.Rows(0, 600)
//	for _, r := range rows {
//	    fmt.Println(r.Row.Path, r.Row.Value.Text())
//	}
//
//	svg, err := s.RenderGraph(ctx, "svg", nil, nil)
//
// # Main Packages
//
// ## Document Model
//
// [jsonval] - Immutable JSON values that keep object member order and number
// literals exactly as written.
//
// [docpath] - Paths into a document and their canonical query expression
// form, e.g. $["users"][0]["name"].
//
// [io] - Size-limited reading and pretty-printed writing of documents.
//
// ## Tree View
//
// [tree] - Row projection, search filtering, and expansion state.
//
// [window] - Virtual scrolling arithmetic for fixed-height rows.
//
// ## Graph View
//
// [graph] - Node hierarchy and the JSON wire formats for graphs and layouts.
//
// [layout] - Tidy tree layout with immutable collapse/expand snapshots.
//
// [render/nodelink] - Graphviz rendering of layout snapshots.
//
// [render] - SVG to PDF/PNG conversion.
//
// ## Tools
//
// [query] - JSONPath (RFC 9535) evaluation returning canonical paths.
//
// [skeleton] - Reduce a document to its shape.
//
// ## Infrastructure
//
// [cache] - File cache for rendered artifacts.
//
// [observability] - Hooks for metrics and tracing.
//
// [errors] - Coded errors shared by every package.
//
// [buildinfo] - Version information injected at build time.
package pkg
