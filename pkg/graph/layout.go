package graph

import (
	"encoding/json"
	"fmt"
	"os"
)

// Visualization types.
const (
	VizTypeHierarchy = "hierarchy"
	VizTypeNodelink  = "nodelink"
)

// =============================================================================
// Layout - Unified Visualization Format
// =============================================================================

// Layout is the serialization format for positioned diagrams.
//
// This is a discriminated union type - check VizType to determine which
// fields are populated:
//
//	Hierarchy ("hierarchy"):
//	  - Nodes: positioned cards with collapse state
//	  - Edges: visible parent to child links
//
//	Nodelink ("nodelink"):
//	  - DOT: Graphviz DOT string with pinned positions
//	  - Engine: Graphviz layout engine (e.g., "neato")
//
// Width and Height are the extent of the positioned nodes and are set for
// both types.
type Layout struct {
	VizType string  `json:"viz_type"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`

	// Hierarchy-specific
	Nodes []LayoutNode `json:"nodes,omitempty"`
	Edges []Edge       `json:"edges,omitempty"`

	// Nodelink-specific
	DOT    string `json:"dot,omitempty"`
	Engine string `json:"engine,omitempty"`
}

// LayoutNode is a positioned card. X runs across siblings and Y across
// depth, both relative to the root at (0, 0).
type LayoutNode struct {
	ID         int        `json:"id"`
	Name       string     `json:"name"`
	X          float64    `json:"x"`
	Y          float64    `json:"y"`
	Depth      int        `json:"depth"`
	Parent     *int       `json:"parent,omitempty"`
	Collapsed  int        `json:"collapsed,omitempty"` // number of hidden children
	Properties []Property `json:"properties,omitempty"`
}

// IsHierarchy returns true if this is a hierarchy layout.
func (l *Layout) IsHierarchy() bool { return l.VizType == VizTypeHierarchy }

// IsNodelink returns true if this is a nodelink layout.
func (l *Layout) IsNodelink() bool { return l.VizType == VizTypeNodelink }

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout.
// Validates that required fields are present for the viz type.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}

	if l.VizType == "" {
		l.VizType = VizTypeHierarchy
	}

	switch {
	case l.IsHierarchy() && len(l.Nodes) == 0:
		return Layout{}, fmt.Errorf("hierarchy layout must contain nodes")
	case l.IsNodelink() && l.DOT == "":
		return Layout{}, fmt.Errorf("nodelink layout must contain DOT string")
	case !l.IsHierarchy() && !l.IsNodelink():
		return Layout{}, fmt.Errorf("unknown viz_type %q", l.VizType)
	}

	return l, nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}
