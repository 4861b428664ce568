package tree

import "github.com/matzehuels/jsonscope/pkg/docpath"

// Expansion holds the expand/collapse flag of every row in one [Forest].
//
// An Expansion is owned by a single caller and is not safe for concurrent
// use. Use [Expansion.Clone] or the functional [Toggle] when an earlier
// state must stay observable.
type Expansion struct {
	forest *Forest
	flags  []bool
}

// NewExpansion returns the initial state for f: rows kept by a non-empty
// search are expanded, everything else is collapsed.
func NewExpansion(f *Forest) *Expansion {
	flags := make([]bool, len(f.rows))
	copy(flags, f.expanded)
	return &Expansion{forest: f, flags: flags}
}

// Forest returns the forest e describes.
func (e *Expansion) Forest() *Forest { return e.forest }

// IsExpanded reports whether row i is an expanded container.
func (e *Expansion) IsExpanded(i int) bool {
	return e != nil && i >= 0 && i < len(e.flags) && e.flags[i]
}

// IsExpandedPath reports whether the row at p is an expanded container.
func (e *Expansion) IsExpandedPath(p docpath.Path) bool {
	i, ok := e.forest.Lookup(p)
	return ok && e.flags[i]
}

// Toggle flips the row at p. With recursive set, the row takes the negation
// of its current state and every container below it is forced to the same
// state.
//
// Toggle reports whether anything changed. A path that is not in the forest
// or that names a scalar row is ignored.
func (e *Expansion) Toggle(p docpath.Path, recursive bool) bool {
	i, ok := e.forest.Lookup(p)
	if !ok {
		return false
	}
	return e.ToggleIndex(i, recursive)
}

// ToggleIndex is [Expansion.Toggle] addressed by arena index.
func (e *Expansion) ToggleIndex(i int, recursive bool) bool {
	if i < 0 || i >= len(e.flags) || !e.forest.rows[i].Container {
		return false
	}
	state := !e.flags[i]
	if !recursive {
		e.flags[i] = state
		return true
	}
	e.setRange(i, e.forest.rows[i].End, state)
	return true
}

// ExpandAll expands every container row.
func (e *Expansion) ExpandAll() { e.setRange(0, len(e.flags), true) }

// CollapseAll collapses every container row.
func (e *Expansion) CollapseAll() { e.setRange(0, len(e.flags), false) }

func (e *Expansion) setRange(from, to int, state bool) {
	rows := e.forest.rows
	for j := from; j < to; j++ {
		if rows[j].Container {
			e.flags[j] = state
		}
	}
}

// Reveal expands every ancestor of the row at p so that it becomes visible.
// It reports false when p is not in the forest.
func (e *Expansion) Reveal(p docpath.Path) bool {
	i, ok := e.forest.Lookup(p)
	if !ok {
		return false
	}
	for j := e.forest.rows[i].Parent; j >= 0; j = e.forest.rows[j].Parent {
		e.flags[j] = true
	}
	return true
}

// Clone returns an independent copy of e.
func (e *Expansion) Clone() *Expansion {
	flags := make([]bool, len(e.flags))
	copy(flags, e.flags)
	return &Expansion{forest: e.forest, flags: flags}
}

// Rebase returns a state for a re-projected forest f. Without preserve it is
// [NewExpansion]. With preserve, rows that were expanded in e at the same path
// stay expanded, in addition to the rows f expands by default.
func (e *Expansion) Rebase(f *Forest, preserve bool) *Expansion {
	next := NewExpansion(f)
	if !preserve || e == nil {
		return next
	}
	for j := range f.rows {
		if !f.rows[j].Container || next.flags[j] {
			continue
		}
		if i, ok := e.forest.Lookup(f.rows[j].Path); ok && e.flags[i] {
			next.flags[j] = true
		}
	}
	return next
}

// Toggle is the copy-on-write form of [Expansion.Toggle]: it returns a new
// state for f with the row at p toggled and leaves e untouched. A nil e, or
// one describing another forest, is first rebased onto f.
func Toggle(f *Forest, e *Expansion, p docpath.Path, recursive bool) *Expansion {
	var next *Expansion
	switch {
	case e == nil:
		next = NewExpansion(f)
	case e.forest != f:
		next = e.Rebase(f, true)
	default:
		next = e.Clone()
	}
	next.Toggle(p, recursive)
	return next
}
