package tree

import (
	"strings"

	"github.com/matzehuels/jsonscope/pkg/docpath"
	"github.com/matzehuels/jsonscope/pkg/jsonval"
)

// Row is one array element or object member of the projected document.
type Row struct {
	Key       docpath.Segment // segment that produced the row
	Value     jsonval.Value
	Depth     int
	Path      docpath.Path
	Container bool
	Match     bool  // key or scalar text contains the term, or the term is empty
	Parent    int   // arena index of the parent row, -1 for top-level rows
	Children  []int // arena indices of included children, in order
	End       int   // one past the last descendant
}

// Label returns the display text of the row key.
func (r *Row) Label() string { return r.Key.String() }

// Forest is the immutable result of [Project].
type Forest struct {
	source   jsonval.Value
	term     string
	rows     []Row
	roots    []int
	matches  []int
	expanded []bool
	byPath   map[string]int
}

// Project flattens the top-level container of v into a forest, keeping only
// rows that match term or have a matching descendant. A scalar root projects
// to an empty forest.
func Project(v jsonval.Value, term string) *Forest {
	f := &Forest{
		source: v,
		term:   term,
		byPath: make(map[string]int),
	}
	if !v.IsContainer() {
		return f
	}

	p := &projector{f: f, term: strings.ToLower(term)}
	p.children(v, docpath.Root, 0, -1)
	return f
}

type projector struct {
	f    *Forest
	term string
}

// children projects each member of v and returns the indices of the rows
// that were kept.
func (p *projector) children(v jsonval.Value, path docpath.Path, depth, parent int) []int {
	var kept []int
	switch v.Kind() {
	case jsonval.KindArray:
		for i, e := range v.Elements() {
			if idx, ok := p.row(docpath.Index(i), e, path, depth, parent); ok {
				kept = append(kept, idx)
			}
		}
	case jsonval.KindObject:
		for _, m := range v.Members() {
			if idx, ok := p.row(docpath.Key(m.Key), m.Value, path, depth, parent); ok {
				kept = append(kept, idx)
			}
		}
	}
	return kept
}

// row appends the row for one member, recurses into it, and drops it again
// when neither it nor any descendant was kept.
func (p *projector) row(seg docpath.Segment, v jsonval.Value, parentPath docpath.Path, depth, parent int) (int, bool) {
	f := p.f
	idx := len(f.rows)
	match := p.matches(seg, v)
	if match && p.term != "" {
		f.matches = append(f.matches, idx)
	}

	f.rows = append(f.rows, Row{
		Key:       seg,
		Value:     v,
		Depth:     depth,
		Path:      parentPath.Child(seg),
		Container: v.IsContainer(),
		Match:     match,
		Parent:    parent,
	})
	f.expanded = append(f.expanded, false)

	var kids []int
	if v.IsContainer() {
		kids = p.children(v, f.rows[idx].Path, depth+1, idx)
	}

	if !match && len(kids) == 0 {
		f.rows = f.rows[:idx]
		f.expanded = f.expanded[:idx]
		return 0, false
	}

	r := &f.rows[idx]
	r.Children = kids
	r.End = len(f.rows)
	f.expanded[idx] = p.term != "" && r.Container
	f.byPath[r.Path.Key()] = idx
	if parent < 0 {
		f.roots = append(f.roots, idx)
	}
	return idx, true
}

func (p *projector) matches(seg docpath.Segment, v jsonval.Value) bool {
	if p.term == "" {
		return true
	}
	if strings.Contains(strings.ToLower(seg.String()), p.term) {
		return true
	}
	return !v.IsContainer() && strings.Contains(strings.ToLower(v.Text()), p.term)
}

// =============================================================================
// Accessors
// =============================================================================

// Len returns the number of rows in the forest.
func (f *Forest) Len() int { return len(f.rows) }

// Row returns the row at arena index i. Callers must not modify it.
func (f *Forest) Row(i int) *Row { return &f.rows[i] }

// Roots returns the arena indices of the top-level rows.
func (f *Forest) Roots() []int { return f.roots }

// Lookup returns the arena index of the row at p.
func (f *Forest) Lookup(p docpath.Path) (int, bool) {
	i, ok := f.byPath[p.Key()]
	return i, ok
}

// Matches returns the arena indices of rows that match the term by
// themselves, in document order. It is empty when the term is empty.
func (f *Forest) Matches() []int { return f.matches }

// Term returns the search term the forest was projected with.
func (f *Forest) Term() string { return f.term }

// Source returns the projected document.
func (f *Forest) Source() jsonval.Value { return f.source }

// DefaultExpanded reports the initial expansion flag of row i: true for
// container rows kept by a non-empty search.
func (f *Forest) DefaultExpanded(i int) bool { return f.expanded[i] }
