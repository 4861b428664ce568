// Package window computes which rows of a fixed-height list must be
// materialized for a given scroll offset.
//
// It is the windowing contract the tree view consumes: callers supply the
// number of visible rows and a row height, and get back the index range to
// render plus the total scrollable extent. Overscan rows are added on both
// sides of the viewport so small scrolls do not expose unrendered rows.
package window

// Defaults matching the row metrics of the tree view.
const (
	DefaultRowHeight = 24
	DefaultOverscan  = 20
)

// Window describes a scrollable list of Count rows of equal height.
type Window struct {
	Count          int
	RowHeight      int
	Overscan       int
	ViewportHeight int
}

// Range is the slice of rows to render.
type Range struct {
	Start     int `json:"start"`      // first row to render
	End       int `json:"end"`        // one past the last row to render
	Offset    int `json:"offset"`     // pixel offset of Start from the top
	TotalSize int `json:"total_size"` // scrollable height of the whole list
}

// Len returns the number of rows in r.
func (r Range) Len() int { return r.End - r.Start }

func (w Window) rowHeight() int {
	if w.RowHeight <= 0 {
		return DefaultRowHeight
	}
	return w.RowHeight
}

// TotalSize returns the scrollable height of the list.
func (w Window) TotalSize() int {
	if w.Count <= 0 {
		return 0
	}
	return w.Count * w.rowHeight()
}

// Range returns the rows intersecting the viewport at scroll offset, widened
// by the overscan. Offsets outside the list are clamped.
func (w Window) Range(offset int) Range {
	total := w.TotalSize()
	if total == 0 {
		return Range{}
	}
	h := w.rowHeight()
	offset = clamp(offset, 0, max(0, total-w.ViewportHeight))

	first := offset / h
	last := first + 1
	if w.ViewportHeight > 0 {
		last = (offset + w.ViewportHeight + h - 1) / h
	}

	overscan := max(0, w.Overscan)
	start := max(0, first-overscan)
	end := min(w.Count, last+overscan)
	return Range{
		Start:     start,
		End:       end,
		Offset:    start * h,
		TotalSize: total,
	}
}

// ScrollTo returns the scroll offset that brings row index into view while
// moving as little as possible from the current offset.
func (w Window) ScrollTo(index, current int) int {
	if w.Count <= 0 {
		return 0
	}
	h := w.rowHeight()
	index = clamp(index, 0, w.Count-1)
	top := index * h
	bottom := top + h

	switch {
	case top < current:
		return top
	case bottom > current+w.ViewportHeight:
		return max(0, bottom-w.ViewportHeight)
	}
	return current
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
