package docpath

import (
	"strconv"
	"strings"

	"github.com/matzehuels/jsonscope/pkg/jsonval"
)

// Segment is one step of a [Path]: an array index or an object key.
type Segment struct {
	key     string
	index   int
	isIndex bool
}

// Index returns an array-index segment.
func Index(i int) Segment { return Segment{index: i, isIndex: true} }

// Key returns an object-key segment.
func Key(k string) Segment { return Segment{key: k} }

// IsIndex reports whether s addresses an array element.
func (s Segment) IsIndex() bool { return s.isIndex }

// Index returns the array index of s, or -1 for key segments.
func (s Segment) Index() int {
	if s.isIndex {
		return s.index
	}
	return -1
}

// Name returns the object key of s, or "" for index segments.
func (s Segment) Name() string { return s.key }

// String returns the label shown for s: the key itself, or the decimal index.
func (s Segment) String() string {
	if s.isIndex {
		return strconv.Itoa(s.index)
	}
	return s.key
}

func (s Segment) appendTo(b *strings.Builder) {
	b.WriteByte('[')
	if s.isIndex {
		b.WriteString(strconv.Itoa(s.index))
	} else {
		b.WriteByte('"')
		for i := 0; i < len(s.key); i++ {
			c := s.key[i]
			if c == '"' || c == '\\' {
				b.WriteByte('\\')
			}
			b.WriteByte(c)
		}
		b.WriteByte('"')
	}
	b.WriteByte(']')
}

// Path is an ordered sequence of segments from the document root.
// Paths are values; methods never modify the receiver's backing array.
type Path []Segment

// Root is the empty path.
var Root = Path{}

// New builds a path from ints (indices) and strings (keys).
// It panics on any other element type.
func New(elems ...any) Path {
	p := make(Path, 0, len(elems))
	for _, e := range elems {
		switch v := e.(type) {
		case int:
			p = append(p, Index(v))
		case string:
			p = append(p, Key(v))
		case Segment:
			p = append(p, v)
		default:
			panic("docpath: New: unsupported segment type")
		}
	}
	return p
}

// Child returns a new path extending p by s.
func (p Path) Child(s Segment) Path {
	out := make(Path, len(p)+1)
	copy(out, p)
	out[len(p)] = s
	return out
}

// Parent returns p without its last segment. The root is its own parent.
func (p Path) Parent() Path {
	if len(p) == 0 {
		return p
	}
	return p[: len(p)-1 : len(p)-1]
}

// Last returns the final segment of p. ok is false for the root.
func (p Path) Last() (s Segment, ok bool) {
	if len(p) == 0 {
		return Segment{}, false
	}
	return p[len(p)-1], true
}

// Depth returns the number of segments in p.
func (p Path) Depth() int { return len(p) }

// Equal reports whether p and q address the same location.
func (p Path) Equal(q Path) bool {
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if p[i] != q[i] {
			return false
		}
	}
	return true
}

// HasPrefix reports whether q is p itself or one of its ancestors.
func (p Path) HasPrefix(q Path) bool {
	return len(q) <= len(p) && p[:len(q)].Equal(q)
}

// QueryExpression renders p in canonical form, for example `$["a"][0]`.
func (p Path) QueryExpression() string {
	var b strings.Builder
	b.WriteByte('$')
	for _, s := range p {
		s.appendTo(&b)
	}
	return b.String()
}

// String is the same as QueryExpression.
func (p Path) String() string { return p.QueryExpression() }

// Key returns a string uniquely identifying p, suitable as a map key.
func (p Path) Key() string { return p.QueryExpression() }

// Lookup resolves p against v. ok is false when a segment does not exist or
// its kind does not match the container (an index into an object, say).
func (p Path) Lookup(v jsonval.Value) (jsonval.Value, bool) {
	cur := v
	for _, s := range p {
		var ok bool
		if s.isIndex {
			cur, ok = cur.Index(s.index)
		} else if cur.Kind() == jsonval.KindObject {
			cur, ok = cur.Get(s.key)
		}
		if !ok {
			return jsonval.Value{}, false
		}
	}
	return cur, true
}
