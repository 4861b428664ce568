// Package graph turns a JSON document into a hierarchy of graph nodes and
// defines the wire formats used to exchange graphs and their layouts.
//
// # Architecture
//
// The package sits between the document model and the diagram:
//
//   - pkg/jsonval.Value: the parsed document
//   - [Node]: the diagram model built by [Build] (this package)
//   - pkg/layout.Snapshot: positions and collapse state for a Node tree
//   - [Graph], [Layout]: serialization types (this package)
//
// # Building
//
// [Build] walks a document once. Every container becomes a [Node] named by
// its key (array elements by their index); every scalar member becomes a
// [Property] of the enclosing node:
//
//	root := graph.Build(jsonval.MustParse(`{"x":1,"y":{"z":2}}`))
//	// root{x: 1}
//	//   └── y{z: 2}
//
// Node ids come from a single pre-order counter, so the same document always
// yields the same ids. Layout collapse state is keyed by those ids.
//
// # Display Limits
//
// Property values longer than [DefaultMaxValueLength] characters are cut and
// suffixed with [TruncationMarker]; the untruncated text is kept in
// [Property.FullValue]. Cards show at most [MaxCardProperties] properties and
// titles of at most [MaxTitleLength] characters.
//
// # Serialization
//
// Graphs use a node-link JSON format:
//
//	{
//	  "nodes": [{"id": 0, "name": "root"}, {"id": 1, "name": "y"}],
//	  "edges": [{"from": 0, "to": 1}]
//	}
//
// Layouts are discriminated by VizType:
//
//	layout, _ := graph.UnmarshalLayout(data)
//	if layout.IsNodelink() {
//	    // Use layout.DOT for Graphviz rendering
//	} else {
//	    // Use layout.Nodes for positioned cards
//	}
//
// # Concurrency
//
// Nodes are not modified after Build returns and may be shared freely.
package graph
