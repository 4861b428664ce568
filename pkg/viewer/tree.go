package viewer

import (
	"time"

	"github.com/matzehuels/jsonscope/pkg/docpath"
	"github.com/matzehuels/jsonscope/pkg/errors"
	"github.com/matzehuels/jsonscope/pkg/observability"
	"github.com/matzehuels/jsonscope/pkg/tree"
	"github.com/matzehuels/jsonscope/pkg/window"
)

func (s *Session) project(term string) *tree.Forest {
	start := time.Now()
	f := tree.Project(s.doc, term)
	observability.Viewer().OnProject(term, f.Len(), len(f.Matches()), time.Since(start))
	s.log.Debug("projected tree", "term", term, "rows", f.Len(), "matches", len(f.Matches()))
	return f
}

// Term returns the active search term.
func (s *Session) Term() string { return s.forest.Term() }

// Forest returns the current projection.
func (s *Session) Forest() *tree.Forest { return s.forest }

// Expansion returns a copy of the current expansion state.
func (s *Session) Expansion() *tree.Expansion { return s.exp.Clone() }

// Search re-projects the document for term. Expanded rows that survive the
// filter stay expanded; rows leading to matches are opened. Searching for the
// current term is a no-op.
func (s *Session) Search(term string) error {
	if err := errors.ValidateSearchTerm(term); err != nil {
		return err
	}
	if term == s.forest.Term() {
		return nil
	}
	s.forest = s.project(term)
	s.exp = s.exp.Rebase(s.forest, true)
	s.visible = nil
	return nil
}

// Visible returns the rows reachable through expanded ancestors.
// The slice is shared until the next mutation and must not be modified.
func (s *Session) Visible() []tree.Visible {
	if s.visible == nil {
		s.visible = tree.Resolve(s.forest, s.exp)
	}
	return s.visible
}

// Window returns the window over the visible rows for a viewport height.
func (s *Session) Window(viewportHeight int) window.Window {
	return window.Window{
		Count:          len(s.Visible()),
		RowHeight:      s.opts.RowHeight,
		Overscan:       s.opts.Overscan,
		ViewportHeight: viewportHeight,
	}
}

// Rows returns the window of visible rows for a scroll offset.
func (s *Session) Rows(offset, viewportHeight int) (window.Range, []tree.Visible) {
	rng := s.Window(viewportHeight).Range(offset)
	return rng, s.Visible()[rng.Start:rng.End]
}

// Toggle flips the row at p. It reports false, leaving the state unchanged,
// when p is not a container row of the current projection.
func (s *Session) Toggle(p docpath.Path, recursive bool) bool {
	changed := s.exp.Toggle(p, recursive)
	s.afterToggle(p.QueryExpression(), recursive, changed)
	return changed
}

// ToggleExpr is Toggle for a path given as a query expression. A malformed
// expression is a no-op.
func (s *Session) ToggleExpr(expr string, recursive bool) bool {
	p, err := docpath.Parse(expr)
	if err != nil {
		s.afterToggle(expr, recursive, false)
		return false
	}
	return s.Toggle(p, recursive)
}

// ToggleRow is Toggle by arena index.
func (s *Session) ToggleRow(i int, recursive bool) bool {
	changed := s.exp.ToggleIndex(i, recursive)
	target := ""
	if i >= 0 && i < s.forest.Len() {
		target = s.forest.Row(i).Path.QueryExpression()
	}
	s.afterToggle(target, recursive, changed)
	return changed
}

func (s *Session) afterToggle(target string, recursive, changed bool) {
	observability.Viewer().OnToggle(target, recursive, changed)
	if changed {
		s.visible = nil
	}
}

// ExpandAll opens every row.
func (s *Session) ExpandAll() {
	s.exp.ExpandAll()
	s.visible = nil
}

// CollapseAll closes every row.
func (s *Session) CollapseAll() {
	s.exp.CollapseAll()
	s.visible = nil
}

// Reveal opens every ancestor of p so its row becomes visible.
// It reports false when p is not a row of the current projection.
func (s *Session) Reveal(p docpath.Path) bool {
	if !s.exp.Reveal(p) {
		return false
	}
	s.visible = nil
	return true
}

// Position returns the visible position of the row at p, or -1.
func (s *Session) Position(p docpath.Path) int {
	i, ok := s.forest.Lookup(p)
	if !ok {
		return -1
	}
	return tree.Position(s.Visible(), i)
}

// Matches returns the paths of the rows matching the search term themselves,
// in document order.
func (s *Session) Matches() []docpath.Path {
	idx := s.forest.Matches()
	out := make([]docpath.Path, len(idx))
	for k, i := range idx {
		out[k] = s.forest.Row(i).Path
	}
	return out
}

// NextMatch returns the first match after the row at arena index from,
// wrapping around, and reveals it. With backward it searches before from.
// from may be -1 to start at the top.
func (s *Session) NextMatch(from int, backward bool) (docpath.Path, bool) {
	idx := s.forest.Matches()
	if len(idx) == 0 {
		return nil, false
	}
	pick := idx[0]
	if backward {
		pick = idx[len(idx)-1]
		for k := len(idx) - 1; k >= 0; k-- {
			if idx[k] < from {
				pick = idx[k]
				break
			}
		}
	} else {
		for _, i := range idx {
			if i > from {
				pick = i
				break
			}
		}
	}
	p := s.forest.Row(pick).Path
	s.Reveal(p)
	return p, true
}
