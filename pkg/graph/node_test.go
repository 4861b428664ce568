package graph

import (
	"strings"
	"testing"

	"github.com/matzehuels/jsonscope/pkg/jsonval"
)

func TestBuildScenario(t *testing.T) {
	root := Build(jsonval.MustParse(`{"x":1,"y":{"z":2}}`))

	if root.Name != RootName || root.ID != 0 {
		t.Errorf("root = %q/%d, want %q/0", root.Name, root.ID, RootName)
	}
	if len(root.Properties) != 1 || root.Properties[0] != (Property{Key: "x", Value: "1"}) {
		t.Errorf("root properties = %+v", root.Properties)
	}
	if len(root.Children) != 1 {
		t.Fatalf("root children = %d, want 1", len(root.Children))
	}
	y := root.Children[0]
	if y.Name != "y" || y.ID != 1 {
		t.Errorf("child = %q/%d, want y/1", y.Name, y.ID)
	}
	if len(y.Properties) != 1 || y.Properties[0] != (Property{Key: "z", Value: "2"}) {
		t.Errorf("y properties = %+v", y.Properties)
	}
}

func TestBuildIDs(t *testing.T) {
	doc := jsonval.MustParse(`{"a":{"b":{"c":{}},"d":[]},"e":[{"f":1},{"g":2}]}`)
	root := Build(doc)

	var got []string
	root.Walk(func(n *Node, depth int) bool {
		got = append(got, strings.Repeat(".", depth)+n.Name)
		return true
	})
	want := "root .a ..b ...c ..d .e ..0 ..1"
	if strings.Join(got, " ") != want {
		t.Errorf("pre-order = %q, want %q", strings.Join(got, " "), want)
	}

	seen := map[int]bool{}
	next := 0
	root.Walk(func(n *Node, _ int) bool {
		if n.ID != next {
			t.Errorf("%s id = %d, want %d", n.Name, n.ID, next)
		}
		if seen[n.ID] {
			t.Errorf("duplicate id %d", n.ID)
		}
		seen[n.ID] = true
		next++
		return true
	})
	if root.Count() != 8 {
		t.Errorf("Count() = %d, want 8", root.Count())
	}

	again := Build(doc)
	if again.Find(6).Name != "0" || again.Find(7).Name != "1" {
		t.Error("ids are not deterministic")
	}
}

func TestBuildNamedReturnsNextID(t *testing.T) {
	n, next := BuildNamed(jsonval.MustParse(`[[1],[2],{"a":{}}]`), "items", 10)
	if n.ID != 10 || n.Name != "items" {
		t.Errorf("node = %d/%q", n.ID, n.Name)
	}
	if next != 15 {
		t.Errorf("next = %d, want 15", next)
	}
}

func TestBuildScalarRoot(t *testing.T) {
	root := Build(jsonval.MustParse(`"just a string"`))
	if len(root.Properties) != 0 || len(root.Children) != 0 {
		t.Errorf("scalar root = %+v, want bare node", root)
	}
}

func TestBuildProperties(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want Property
	}{
		{"Null", `{"k":null}`, Property{Key: "k", Value: "null"}},
		{"Bool", `{"k":false}`, Property{Key: "k", Value: "false"}},
		{"NumberLiteral", `{"k":1.50}`, Property{Key: "k", Value: "1.50"}},
		{"ExactLimit", `{"k":"123456789012345678"}`, Property{Key: "k", Value: "123456789012345678"}},
		{
			"Truncated",
			`{"k":"1234567890123456789"}`,
			Property{Key: "k", Value: "123456789012345678...", FullValue: "1234567890123456789"},
		},
		{
			"TruncatedRunes",
			`{"k":"ääääääääääääääääääää"}`,
			Property{Key: "k", Value: "ääääääääääääääääää...", FullValue: "ääääääääääääääääääää"},
		},
		{"HexShort", `{"k":"#FFF"}`, Property{Key: "k", Value: "#FFF", Color: true}},
		{"HexLong", `{"k":"#a1b2c3"}`, Property{Key: "k", Value: "#a1b2c3", Color: true}},
		{"NotHex", `{"k":"#abcd"}`, Property{Key: "k", Value: "#abcd"}},
		{"ArrayIndexKey", `["x"]`, Property{Key: "0", Value: "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := Build(jsonval.MustParse(tt.doc))
			if len(root.Properties) != 1 {
				t.Fatalf("properties = %+v", root.Properties)
			}
			if got := root.Properties[0]; got != tt.want {
				t.Errorf("property = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestBuildMaxValueLength(t *testing.T) {
	root, _ := Options{MaxValueLength: 3}.BuildNamed(jsonval.MustParse(`{"k":"abcdef"}`), "r", 0)
	p := root.Properties[0]
	if p.Value != "abc..." || p.Text() != "abcdef" || !p.Truncated() {
		t.Errorf("property = %+v", p)
	}
}

func TestIsHexColor(t *testing.T) {
	for s, want := range map[string]bool{
		"#fff":     true,
		"#FFFFFF":  true,
		"#0a0B0c":  true,
		"fff":      false,
		"#ff":      false,
		"#fffff":   false,
		"#ggg":     false,
		"#fff ":    false,
		"#fffffff": false,
	} {
		if got := IsHexColor(s); got != want {
			t.Errorf("IsHexColor(%q) = %v, want %v", s, got, want)
		}
	}
}

func TestCardLimits(t *testing.T) {
	root := Build(jsonval.MustParse(`{"a":1,"b":2,"c":3,"d":4,"e":5,"f":6,"g":7}`))
	shown, hidden := root.CardProperties()
	if len(shown) != MaxCardProperties || hidden != 2 {
		t.Errorf("CardProperties() = %d shown, %d hidden", len(shown), hidden)
	}

	small := Build(jsonval.MustParse(`{"a":1}`))
	if shown, hidden := small.CardProperties(); len(shown) != 1 || hidden != 0 {
		t.Errorf("CardProperties() = %d shown, %d hidden", len(shown), hidden)
	}

	n := &Node{Name: "a_really_long_container_name"}
	if got := n.Title(); got != "a_really_long_contai..." {
		t.Errorf("Title() = %q", got)
	}
}

func TestFind(t *testing.T) {
	root := Build(jsonval.MustParse(`{"a":{"b":{}},"c":{}}`))
	if n := root.Find(2); n == nil || n.Name != "b" {
		t.Errorf("Find(2) = %+v", n)
	}
	if n := root.Find(99); n != nil {
		t.Errorf("Find(99) = %+v, want nil", n)
	}
}
