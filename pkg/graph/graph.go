package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// =============================================================================
// Graph - Node-Link Serialization
// =============================================================================

// Graph is the node-link serialization of a node hierarchy.
// Nodes are listed in pre-order; edges point from parent to child.
type Graph struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []Edge      `json:"edges"`
}

// GraphNode is a node without its children, as stored in a [Graph].
type GraphNode struct {
	ID         int        `json:"id"`
	Name       string     `json:"name"`
	Properties []Property `json:"properties,omitempty"`
}

// Edge is a parent to child link.
type Edge struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// FromNode flattens the hierarchy rooted at root.
func FromNode(root *Node) Graph {
	out := Graph{Nodes: []GraphNode{}, Edges: []Edge{}}
	root.Walk(func(n *Node, _ int) bool {
		out.Nodes = append(out.Nodes, GraphNode{ID: n.ID, Name: n.Name, Properties: n.Properties})
		for _, c := range n.Children {
			out.Edges = append(out.Edges, Edge{From: n.ID, To: c.ID})
		}
		return true
	})
	return out
}

// ToNode rebuilds the hierarchy described by g. The first node is the root.
// Returns an error for duplicate ids, dangling edges, nodes with two parents
// and nodes not reachable from the root.
func ToNode(g Graph) (*Node, error) {
	if len(g.Nodes) == 0 {
		return nil, fmt.Errorf("graph has no nodes")
	}

	byID := make(map[int]*Node, len(g.Nodes))
	for _, gn := range g.Nodes {
		if _, dup := byID[gn.ID]; dup {
			return nil, fmt.Errorf("duplicate node id %d", gn.ID)
		}
		byID[gn.ID] = &Node{ID: gn.ID, Name: gn.Name, Properties: gn.Properties}
	}

	hasParent := make(map[int]bool, len(g.Edges))
	for _, e := range g.Edges {
		from, to := byID[e.From], byID[e.To]
		if from == nil || to == nil {
			return nil, fmt.Errorf("edge %d→%d references unknown node", e.From, e.To)
		}
		if hasParent[e.To] {
			return nil, fmt.Errorf("node %d has more than one parent", e.To)
		}
		hasParent[e.To] = true
		from.Children = append(from.Children, to)
	}

	root := byID[g.Nodes[0].ID]
	if hasParent[root.ID] {
		return nil, fmt.Errorf("root node %d has a parent", root.ID)
	}
	if n := root.Count(); n != len(g.Nodes) {
		return nil, fmt.Errorf("%d nodes unreachable from root", len(g.Nodes)-n)
	}
	return root, nil
}

// =============================================================================
// Graph Serialization API
// =============================================================================

// MarshalGraph converts a hierarchy to JSON bytes.
func MarshalGraph(root *Node) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteGraph(root, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteGraph writes a hierarchy as indented JSON to w.
func WriteGraph(root *Node, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(FromNode(root)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteGraphFile writes a hierarchy to a JSON file.
// The file is created with 0644 permissions.
func WriteGraphFile(root *Node, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteGraph(root, f)
}

// ReadGraph decodes a node-link graph from r.
func ReadGraph(r io.Reader) (*Node, error) {
	var g Graph
	if err := json.NewDecoder(r).Decode(&g); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return ToNode(g)
}

// ReadGraphFile reads a node-link graph from a JSON file.
func ReadGraphFile(path string) (*Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadGraph(f)
}
