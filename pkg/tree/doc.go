// Package tree flattens a JSON document into rows for a collapsible,
// virtualized tree view.
//
// # Overview
//
// The package splits the tree view into three independent pieces:
//
//   - [Project] turns a document and a search term into an immutable [Forest]
//   - [Expansion] holds the expand/collapse flag of every container row
//   - [Resolve] lists the rows reachable through expanded ancestors
//
// A Forest is rebuilt only when the document or the search term changes.
// Expanding or collapsing a row touches the Expansion alone; the forest and
// its search annotations stay as they are.
//
// # Arena Layout
//
// Rows live in one slice in document pre-order. The descendants of row i
// occupy the contiguous range (i, Row.End), so skipping a collapsed subtree is
// a single jump and [Resolve] runs in time proportional to the number of
// visible rows, however large the hidden subtrees are.
//
// # Search
//
// A non-empty term keeps a row when its key or scalar text contains the term
// (case-insensitive), or when one of its descendants does. Kept rows start
// expanded so every match is visible without further interaction. An empty
// term keeps every row and starts everything collapsed.
//
// # Example
//
//	f := tree.Project(doc, "b")
//	e := tree.NewExpansion(f)
//	e.Toggle(docpath.New("a"), false)
//	for _, v := range tree.Resolve(f, e) {
//	    fmt.Println(strings.Repeat("  ", v.Row.Depth), v.Row.Key)
//	}
package tree
