// Package viewer ties the document pipeline together for one open document.
//
// A [Session] owns everything a front end needs to display a JSON document:
// the parsed value, the tree projection for the current search term, the
// expansion state, and a lazily built graph snapshot. Front ends (the
// terminal viewer, the HTTP API, one-shot CLI commands) drive a session
// through its methods and read back windows of visible rows or rendered
// graphs.
//
// # Tree view
//
//	s, err := viewer.Open(ctx, "data.json", viewer.Options{})
//	s.Search("user")
//	rng, rows := s.Rows(0, 600)
//	s.Toggle(rows[0].Row.Path, false)
//
// Search keeps earlier expansion: rows that were open stay open, and rows
// leading to new matches are opened.
//
// # Graph view
//
// The graph is built on first use and replaced, never mutated, by every
// toggle:
//
//	snap := s.Graph()
//	s.ToggleGraph(snap.Root().Children[0].ID, false)
//	svg, err := s.RenderGraph(ctx, "svg")
//
// A Session is not safe for concurrent use.
package viewer
