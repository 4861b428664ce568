package layout

import (
	"maps"
	"slices"

	"github.com/matzehuels/jsonscope/pkg/graph"
)

// Default layout parameters.
const (
	DefaultCollapseThreshold = 200
	DefaultNodeWidth         = 160
	DefaultLevelGap          = 340
)

// Options configures a layout. Zero fields take the defaults.
type Options struct {
	// CollapseThreshold is the node count above which the initial layout
	// collapses everything below the root. Negative disables auto-collapse.
	CollapseThreshold int
	// NodeWidth is the distance between adjacent siblings.
	NodeWidth float64
	// LevelGap is the distance between depths.
	LevelGap float64
}

// WithDefaults returns o with zero fields replaced by the defaults.
func (o Options) WithDefaults() Options {
	if o.CollapseThreshold == 0 {
		o.CollapseThreshold = DefaultCollapseThreshold
	}
	if o.NodeWidth <= 0 {
		o.NodeWidth = DefaultNodeWidth
	}
	if o.LevelGap <= 0 {
		o.LevelGap = DefaultLevelGap
	}
	return o
}

// Node is a positioned graph node. Exactly one of Children and Collapsed is
// non-empty for a node with children; both are empty for a leaf.
//
// Nodes inside a collapsed subtree are not positioned.
type Node struct {
	*graph.Node

	X, Y      float64
	Depth     int
	Parent    *Node
	Children  []*Node
	Collapsed []*Node
}

// Badge returns the number of hidden children, 0 for expanded nodes.
func (n *Node) Badge() int { return len(n.Collapsed) }

// IsCollapsed reports whether n hides its children.
func (n *Node) IsCollapsed() bool { return len(n.Collapsed) > 0 }

// IsLeaf reports whether n has no children in the source hierarchy.
func (n *Node) IsLeaf() bool { return len(n.Node.Children) == 0 }

// Link is a drawn edge between an expanded node and one of its children.
type Link struct {
	Source *Node
	Target *Node
}

// Bounds is the extent of the positioned nodes.
type Bounds struct {
	MinX, MinY, MaxX, MaxY float64
}

// Width returns MaxX - MinX.
func (b Bounds) Width() float64 { return b.MaxX - b.MinX }

// Height returns MaxY - MinY.
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

// Snapshot is an immutable positioned hierarchy together with its collapse
// state. Snapshots are safe for concurrent reads.
type Snapshot struct {
	source    *graph.Node
	opts      Options
	collapsed map[int]bool
	auto      bool

	root    *Node
	byID    map[int]*Node
	visible []*Node
	bounds  Bounds
}

// New lays out root. When root has more than opts.CollapseThreshold nodes,
// every node below the root that has children starts collapsed.
func New(root *graph.Node, opts Options) *Snapshot {
	opts = opts.WithDefaults()
	collapsed := make(map[int]bool)

	auto := opts.CollapseThreshold > 0 && root.Count() > opts.CollapseThreshold
	if auto {
		root.Walk(func(n *graph.Node, depth int) bool {
			if depth >= 1 && len(n.Children) > 0 {
				collapsed[n.ID] = true
			}
			return true
		})
	}

	s := build(root, opts, collapsed)
	s.auto = auto
	return s
}

// WithCollapsed lays out root with exactly the given nodes collapsed.
// Ids that do not name a node with children are ignored.
func WithCollapsed(root *graph.Node, opts Options, ids []int) *Snapshot {
	collapsed := make(map[int]bool, len(ids))
	for _, id := range ids {
		collapsed[id] = true
	}
	return build(root, opts.WithDefaults(), collapsed)
}

func build(source *graph.Node, opts Options, collapsed map[int]bool) *Snapshot {
	s := &Snapshot{
		source:    source,
		opts:      opts,
		collapsed: collapsed,
		byID:      make(map[int]*Node),
	}
	s.root = s.wrap(source, nil, 0)
	s.position()
	return s
}

func (s *Snapshot) wrap(g *graph.Node, parent *Node, depth int) *Node {
	n := &Node{Node: g, Parent: parent, Depth: depth}
	s.byID[g.ID] = n
	if len(g.Children) == 0 {
		return n
	}

	kids := make([]*Node, len(g.Children))
	for i, c := range g.Children {
		kids[i] = s.wrap(c, n, depth+1)
	}
	if s.collapsed[g.ID] {
		n.Collapsed = kids
	} else {
		n.Children = kids
	}
	return n
}

// =============================================================================
// Collapse and Expand
// =============================================================================

// Toggle returns a new snapshot with node id collapsed or expanded.
//
// Without recursive only that node changes. With recursive the node takes
// the opposite of its current state and every descendant with children is
// forced to the same state.
//
// An unknown id or a node without children returns the receiver.
func (s *Snapshot) Toggle(id int, recursive bool) *Snapshot {
	n, ok := s.byID[id]
	if !ok || n.IsLeaf() {
		return s
	}

	collapse := !s.collapsed[id]
	next := maps.Clone(s.collapsed)
	set := func(g *graph.Node) {
		if collapse {
			next[g.ID] = true
		} else {
			delete(next, g.ID)
		}
	}

	if !recursive {
		set(n.Node)
	} else {
		n.Node.Walk(func(g *graph.Node, _ int) bool {
			if len(g.Children) > 0 {
				set(g)
			}
			return true
		})
	}
	return build(s.source, s.opts, next)
}

// ExpandAll returns a new snapshot with every node expanded.
func (s *Snapshot) ExpandAll() *Snapshot {
	return build(s.source, s.opts, map[int]bool{})
}

// CollapseAll returns a new snapshot with every node below the root
// collapsed, the same state a large hierarchy starts in.
func (s *Snapshot) CollapseAll() *Snapshot {
	next := make(map[int]bool)
	s.source.Walk(func(g *graph.Node, depth int) bool {
		if depth >= 1 && len(g.Children) > 0 {
			next[g.ID] = true
		}
		return true
	})
	return build(s.source, s.opts, next)
}

// =============================================================================
// Accessors
// =============================================================================

// Root returns the positioned root.
func (s *Snapshot) Root() *Node { return s.root }

// Source returns the hierarchy being laid out.
func (s *Snapshot) Source() *graph.Node { return s.source }

// Options returns the options the snapshot was built with.
func (s *Snapshot) Options() Options { return s.opts }

// AutoCollapsed reports whether [New] applied the auto-collapse heuristic.
func (s *Snapshot) AutoCollapsed() bool { return s.auto }

// Visible returns the positioned nodes in pre-order.
func (s *Snapshot) Visible() []*Node { return s.visible }

// Find returns the layout node with the given id, visible or not.
func (s *Snapshot) Find(id int) (*Node, bool) {
	n, ok := s.byID[id]
	return n, ok
}

// IsCollapsed reports whether node id is collapsed.
func (s *Snapshot) IsCollapsed(id int) bool { return s.collapsed[id] }

// CollapsedIDs returns the ids of collapsed nodes in ascending order.
// Passing them to [WithCollapsed] reproduces the snapshot.
func (s *Snapshot) CollapsedIDs() []int {
	ids := make([]int, 0, len(s.collapsed))
	for id := range s.collapsed {
		if n, ok := s.byID[id]; ok && !n.IsLeaf() {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}

// Links returns the drawn edges in pre-order of their targets.
func (s *Snapshot) Links() []Link {
	links := make([]Link, 0, len(s.visible))
	for _, n := range s.visible {
		if n.Parent != nil {
			links = append(links, Link{Source: n.Parent, Target: n})
		}
	}
	return links
}

// Bounds returns the extent of the visible nodes.
func (s *Snapshot) Bounds() Bounds { return s.bounds }
