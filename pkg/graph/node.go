package graph

import (
	"regexp"
	"strconv"
	"unicode/utf8"

	"github.com/matzehuels/jsonscope/pkg/jsonval"
)

// =============================================================================
// Constants
// =============================================================================

// Display limits for node cards.
const (
	DefaultMaxValueLength = 18
	MaxCardProperties     = 5
	MaxTitleLength        = 20
	TruncationMarker      = "..."
)

// RootName is the name given to the node built for the document root.
const RootName = "root"

var hexColor = regexp.MustCompile(`(?i)^#([0-9A-F]{3}){1,2}$`)

// IsHexColor reports whether s is a #rgb or #rrggbb color literal.
func IsHexColor(s string) bool { return hexColor.MatchString(s) }

// =============================================================================
// Node
// =============================================================================

// Node is one container of the document drawn as a card.
type Node struct {
	ID         int        `json:"id"`
	Name       string     `json:"name"`
	Properties []Property `json:"properties,omitempty"`
	Children   []*Node    `json:"children,omitempty"`
}

// Property is one scalar member shown on a card.
type Property struct {
	Key       string `json:"key"`
	Value     string `json:"value"`                // display text, possibly truncated
	FullValue string `json:"full_value,omitempty"` // set only when Value was truncated
	Color     bool   `json:"color,omitempty"`      // Value is a hex color literal
}

// Truncated reports whether the display value was shortened.
func (p Property) Truncated() bool { return p.FullValue != "" }

// Text returns the untruncated value.
func (p Property) Text() string {
	if p.FullValue != "" {
		return p.FullValue
	}
	return p.Value
}

// Title returns the card title, shortened to MaxTitleLength characters.
func (n *Node) Title() string {
	return truncate(n.Name, MaxTitleLength)
}

// CardProperties returns the properties shown on the card and the number of
// properties left out.
func (n *Node) CardProperties() ([]Property, int) {
	if len(n.Properties) <= MaxCardProperties {
		return n.Properties, 0
	}
	return n.Properties[:MaxCardProperties], len(n.Properties) - MaxCardProperties
}

// Count returns the number of nodes in the subtree rooted at n.
func (n *Node) Count() int {
	c := 1
	for _, ch := range n.Children {
		c += ch.Count()
	}
	return c
}

// Walk calls fn for n and its descendants in pre-order with their depth.
// Returning false from fn skips the node's children.
func (n *Node) Walk(fn func(n *Node, depth int) bool) {
	n.walk(fn, 0)
}

func (n *Node) walk(fn func(*Node, int) bool, depth int) {
	if !fn(n, depth) {
		return
	}
	for _, ch := range n.Children {
		ch.walk(fn, depth+1)
	}
}

// Find returns the node with the given id in the subtree rooted at n.
func (n *Node) Find(id int) *Node {
	var found *Node
	n.Walk(func(m *Node, _ int) bool {
		if found != nil {
			return false
		}
		if m.ID == id {
			found = m
			return false
		}
		return true
	})
	return found
}

// =============================================================================
// Building
// =============================================================================

// Options controls how documents are turned into nodes.
type Options struct {
	MaxValueLength int // 0 means DefaultMaxValueLength
}

func (o Options) maxValueLength() int {
	if o.MaxValueLength <= 0 {
		return DefaultMaxValueLength
	}
	return o.MaxValueLength
}

// Build returns the node hierarchy for v with default options.
// The root node is named RootName and has id 0.
func Build(v jsonval.Value) *Node {
	n, _ := Options{}.BuildNamed(v, RootName, 0)
	return n
}

// BuildNamed builds the node for v with default options. See
// [Options.BuildNamed].
func BuildNamed(v jsonval.Value, name string, nextID int) (*Node, int) {
	return Options{}.BuildNamed(v, name, nextID)
}

// BuildNamed builds the node for v named name, numbering nodes in pre-order
// starting at nextID. It returns the node and the next unused id.
//
// A scalar v produces a single node without properties.
func (o Options) BuildNamed(v jsonval.Value, name string, nextID int) (*Node, int) {
	n := &Node{ID: nextID, Name: name}
	nextID++

	add := func(key string, val jsonval.Value) {
		if val.IsContainer() {
			var child *Node
			child, nextID = o.BuildNamed(val, key, nextID)
			n.Children = append(n.Children, child)
			return
		}
		n.Properties = append(n.Properties, o.property(key, val))
	}

	switch v.Kind() {
	case jsonval.KindArray:
		for i, e := range v.Elements() {
			add(strconv.Itoa(i), e)
		}
	case jsonval.KindObject:
		for _, m := range v.Members() {
			add(m.Key, m.Value)
		}
	}
	return n, nextID
}

func (o Options) property(key string, v jsonval.Value) Property {
	full := v.Text()
	display := truncate(full, o.maxValueLength())
	p := Property{Key: key, Value: display, Color: IsHexColor(full)}
	if display != full {
		p.FullValue = full
	}
	return p
}

// truncate shortens s to limit runes followed by TruncationMarker.
func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	i, n := 0, 0
	for i = range s {
		if n == limit {
			break
		}
		n++
	}
	return s[:i] + TruncationMarker
}
