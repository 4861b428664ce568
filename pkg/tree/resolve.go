package tree

import "sort"

// Visible is one row reachable through expanded ancestors.
type Visible struct {
	Index    int  // arena index
	Row      *Row // must not be modified
	Expanded bool
}

// Resolve lists the visible rows of f in pre-order. Collapsed subtrees are
// skipped by jumping to their end, never walked, so the cost is proportional
// to the result. Resolve does not modify f or e.
func Resolve(f *Forest, e *Expansion) []Visible {
	out := make([]Visible, 0, len(f.roots))
	for i := 0; i < len(f.rows); {
		r := &f.rows[i]
		open := r.Container && e.IsExpanded(i)
		out = append(out, Visible{Index: i, Row: r, Expanded: open})
		if open {
			i++
		} else {
			i = r.End
		}
	}
	return out
}

// Position returns the offset of arena index i within visible, or -1.
func Position(visible []Visible, i int) int {
	lo := sort.Search(len(visible), func(j int) bool { return visible[j].Index >= i })
	if lo < len(visible) && visible[lo].Index == i {
		return lo
	}
	return -1
}
