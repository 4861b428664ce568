package layout

import "math"

// walker carries the per-node state of the tidy tree algorithm.
type walker struct {
	node     *Node
	parent   *walker
	children []*walker

	ancestor *walker // default ancestor, used by the parent during apportion
	a        *walker // ancestor pointer for nextAncestor
	thread   *walker
	prelim   float64
	mod      float64
	change   float64
	shift    float64
	number   int // index among siblings
}

func newWalker(n *Node, number int, parent *walker) *walker {
	w := &walker{node: n, parent: parent, number: number}
	w.a = w
	if len(n.Children) > 0 {
		w.children = make([]*walker, len(n.Children))
		for i, c := range n.Children {
			w.children[i] = newWalker(c, i, w)
		}
	}
	return w
}

// position assigns X and Y to every visible node and collects them in
// pre-order.
func (s *Snapshot) position() {
	t := newWalker(s.root, 0, nil)
	virtual := &walker{children: []*walker{t}}
	t.parent = virtual

	eachAfter(t, firstWalk)
	virtual.mod = -t.prelim
	eachBefore(t, secondWalk)

	s.visible = s.visible[:0]
	s.bounds = Bounds{
		MinX: math.Inf(1), MinY: math.Inf(1),
		MaxX: math.Inf(-1), MaxY: math.Inf(-1),
	}
	eachBefore(t, func(w *walker) {
		n := w.node
		n.X *= s.opts.NodeWidth
		n.Y = float64(n.Depth) * s.opts.LevelGap
		s.visible = append(s.visible, n)
		s.bounds.MinX = math.Min(s.bounds.MinX, n.X)
		s.bounds.MaxX = math.Max(s.bounds.MaxX, n.X)
		s.bounds.MinY = math.Min(s.bounds.MinY, n.Y)
		s.bounds.MaxY = math.Max(s.bounds.MaxY, n.Y)
	})
}

func eachAfter(w *walker, fn func(*walker)) {
	for _, c := range w.children {
		eachAfter(c, fn)
	}
	fn(w)
}

func eachBefore(w *walker, fn func(*walker)) {
	fn(w)
	for _, c := range w.children {
		eachBefore(c, fn)
	}
}

// separation returns the minimum distance between neighbours a and b in
// node widths.
func separation(a, b *walker) float64 {
	base := 1.4
	if a.parent == b.parent {
		base = 1
	}
	return base * tier(max(len(a.node.Children), len(b.node.Children)))
}

func tier(children int) float64 {
	switch {
	case children >= 10:
		return 2
	case children >= 4:
		return 1.5
	}
	return 1
}

// firstWalk computes the preliminary position of v once its children are
// placed, then moves v's subtree clear of its left siblings.
func firstWalk(v *walker) {
	siblings := v.parent.children
	var w *walker
	if v.number > 0 {
		w = siblings[v.number-1]
	}

	if len(v.children) > 0 {
		executeShifts(v)
		midpoint := (v.children[0].prelim + v.children[len(v.children)-1].prelim) / 2
		if w != nil {
			v.prelim = w.prelim + separation(v, w)
			v.mod = v.prelim - midpoint
		} else {
			v.prelim = midpoint
		}
	} else if w != nil {
		v.prelim = w.prelim + separation(v, w)
	}

	ancestor := v.parent.ancestor
	if ancestor == nil {
		ancestor = siblings[0]
	}
	v.parent.ancestor = apportion(v, w, ancestor)
}

func secondWalk(v *walker) {
	v.node.X = v.prelim + v.parent.mod
	v.mod += v.parent.mod
}

// apportion walks the right contour of the left siblings and the left
// contour of v's subtree in lockstep and shifts v right wherever they come
// closer than the separation.
func apportion(v, w, ancestor *walker) *walker {
	if w == nil {
		return ancestor
	}

	vip, vop := v, v
	vim, vom := w, v.parent.children[0]
	sip, sop := vip.mod, vop.mod
	sim, som := vim.mod, vom.mod

	for {
		vim, vip = nextRight(vim), nextLeft(vip)
		if vim == nil || vip == nil {
			break
		}
		vom = nextLeft(vom)
		vop = nextRight(vop)
		vop.a = v

		shift := vim.prelim + sim - vip.prelim - sip + separation(vim, vip)
		if shift > 0 {
			moveSubtree(nextAncestor(vim, v, ancestor), v, shift)
			sip += shift
			sop += shift
		}
		sim += vim.mod
		sip += vip.mod
		som += vom.mod
		sop += vop.mod
	}

	if vim != nil && nextRight(vop) == nil {
		vop.thread = vim
		vop.mod += sim - sop
	}
	if vip != nil && nextLeft(vom) == nil {
		vom.thread = vip
		vom.mod += sip - som
		ancestor = v
	}
	return ancestor
}

func nextLeft(v *walker) *walker {
	if len(v.children) > 0 {
		return v.children[0]
	}
	return v.thread
}

func nextRight(v *walker) *walker {
	if len(v.children) > 0 {
		return v.children[len(v.children)-1]
	}
	return v.thread
}

func nextAncestor(vim, v, ancestor *walker) *walker {
	if vim.a.parent == v.parent {
		return vim.a
	}
	return ancestor
}

func moveSubtree(wm, wp *walker, shift float64) {
	change := shift / float64(wp.number-wm.number)
	wp.change -= change
	wp.shift += shift
	wm.change += change
	wp.prelim += shift
	wp.mod += shift
}

// executeShifts applies the shifts recorded by moveSubtree to v's children,
// spreading them over the intermediate siblings.
func executeShifts(v *walker) {
	var shift, change float64
	for i := len(v.children) - 1; i >= 0; i-- {
		w := v.children[i]
		w.prelim += shift
		w.mod += shift
		change += w.change
		shift += w.shift + change
	}
}
