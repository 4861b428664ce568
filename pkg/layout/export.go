package layout

import "github.com/matzehuels/jsonscope/pkg/graph"

// Export converts the snapshot to its serialization format. Only visible
// nodes and links are included; collapsed nodes carry their hidden child
// count.
func (s *Snapshot) Export() graph.Layout {
	out := graph.Layout{
		VizType: graph.VizTypeHierarchy,
		Width:   s.bounds.Width(),
		Height:  s.bounds.Height(),
		Nodes:   make([]graph.LayoutNode, len(s.visible)),
		Edges:   make([]graph.Edge, 0, len(s.visible)),
	}

	for i, n := range s.visible {
		ln := graph.LayoutNode{
			ID:         n.ID,
			Name:       n.Name,
			X:          n.X,
			Y:          n.Y,
			Depth:      n.Depth,
			Collapsed:  n.Badge(),
			Properties: n.Properties,
		}
		if n.Parent != nil {
			pid := n.Parent.ID
			ln.Parent = &pid
			out.Edges = append(out.Edges, graph.Edge{From: pid, To: n.ID})
		}
		out.Nodes[i] = ln
	}
	return out
}
