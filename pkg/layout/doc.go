// Package layout positions a graph node hierarchy as a tidy tree and tracks
// which nodes are collapsed.
//
// # Overview
//
// [New] wraps a [graph.Node] tree in positioned [Node] values and returns an
// immutable [Snapshot]. [Snapshot.Toggle] collapses or expands a node and
// returns a new snapshot with every position recomputed; the receiver keeps
// its own positions and collapse state.
//
// # Collapse
//
// Each layout node has exactly one populated child slot: Children while it
// is expanded, Collapsed while it is not. Collapsed nodes are positioned as
// leaves and expose the number of hidden children through [Node.Badge].
//
// Large hierarchies start partially collapsed: when the node count exceeds
// [Options.CollapseThreshold], every node below the root that has children
// starts collapsed, so only the root and its direct children are drawn.
//
// # Algorithm
//
// Positions come from the Buchheim, Jünger and Leipert refinement of the
// Reingold-Tilford/Walker tidy tree, which runs in linear time:
//
//  1. A post-order walk assigns preliminary positions and pushes subtrees
//     apart where their contours come closer than the separation allows.
//  2. A pre-order walk accumulates modifiers into final positions.
//
// Separation between neighbours is measured in node widths. Siblings get 1,
// nodes with different parents get 1.4, and both are multiplied by 1.5 when
// either neighbour shows 4 or more children and by 2 at 10 or more.
//
// X runs across siblings and Y across depth. The root sits at (0, 0).
package layout
