package docpath

import (
	"testing"

	"github.com/matzehuels/jsonscope/pkg/errors"
	"github.com/matzehuels/jsonscope/pkg/jsonval"
)

func TestQueryExpression(t *testing.T) {
	tests := []struct {
		name string
		path Path
		want string
	}{
		{"Root", Root, "$"},
		{"Canonical", New("a", 0, "b c"), `$["a"][0]["b c"]`},
		{"NumericKey", New("0"), `$["0"]`},
		{"EscapedQuote", New(`say "hi"`), `$["say \"hi\""]`},
		{"EscapedBackslash", New(`a\b`), `$["a\\b"]`},
		{"EmptyKey", New(""), `$[""]`},
		{"Unicode", New("名前", 12), `$["名前"][12]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.path.QueryExpression(); got != tt.want {
				t.Errorf("QueryExpression() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestParseRoundTrip(t *testing.T) {
	paths := []Path{
		Root,
		New("a", 0, "b c"),
		New("0", 0),
		New(`q"uote`, `back\slash`, `'single'`),
		New(""),
		New(100, 2, "]["),
	}

	for _, p := range paths {
		t.Run(p.QueryExpression(), func(t *testing.T) {
			got, err := Parse(p.QueryExpression())
			if err != nil {
				t.Fatalf("Parse error: %v", err)
			}
			if !got.Equal(p) {
				t.Errorf("Parse(%s) = %v, want %v", p.QueryExpression(), got, p)
			}
		})
	}
}

func TestParseSingleQuoted(t *testing.T) {
	got, err := Parse(`$['store']['book'][0]['it\'s']`)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	want := New("store", "book", 0, "it's")
	if !got.Equal(want) {
		t.Errorf("Parse = %v, want %v", got, want)
	}
}

func TestParseNormalizedEscapes(t *testing.T) {
	got, err := Parse(`$['tab\there']['\u0041\/']`)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	want := New("tab\there", "A/")
	if !got.Equal(want) {
		t.Errorf("Parse = %q, want %q", got.QueryExpression(), want.QueryExpression())
	}
}

func TestParseErrors(t *testing.T) {
	inputs := []string{
		"",
		"a",
		"$a",
		"$[",
		"$[0",
		`$["a`,
		`$["a"`,
		"$[-1]",
		"$[01]",
		"$[x]",
		`$["a\q"]`,
		`$["\u12"]`,
		`$["\uzzzz"]`,
		`$["a\`,
		"$[99999999999999999999999]",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			_, err := Parse(in)
			if err == nil {
				t.Fatalf("Parse(%q) succeeded, want error", in)
			}
			if !errors.Is(err, errors.ErrCodeInvalidPath) {
				t.Errorf("code = %q, want %q", errors.GetCode(err), errors.ErrCodeInvalidPath)
			}
		})
	}
}

func TestPathRelations(t *testing.T) {
	p := New("a", 1, "b")

	if got := p.Parent(); !got.Equal(New("a", 1)) {
		t.Errorf("Parent() = %v", got)
	}
	if got := Root.Parent(); !got.Equal(Root) {
		t.Errorf("Root.Parent() = %v", got)
	}
	if s, ok := p.Last(); !ok || s.Name() != "b" || s.IsIndex() {
		t.Errorf("Last() = %v, %v", s, ok)
	}
	if _, ok := Root.Last(); ok {
		t.Error("Root.Last() should report false")
	}
	if !p.HasPrefix(New("a")) || !p.HasPrefix(Root) || !p.HasPrefix(p) {
		t.Error("HasPrefix should accept ancestors and self")
	}
	if p.HasPrefix(New("a", 2)) || p.HasPrefix(New("a", 1, "b", "c")) {
		t.Error("HasPrefix should reject non-ancestors")
	}
	if New(0).Equal(New("0")) {
		t.Error("index 0 and key \"0\" must differ")
	}
	if New(0).Key() == New("0").Key() {
		t.Error("index 0 and key \"0\" must have distinct keys")
	}
}

func TestChildDoesNotAlias(t *testing.T) {
	base := make(Path, 1, 4)
	base[0] = Key("a")

	x := base.Child(Key("x"))
	y := base.Child(Key("y"))
	if x.QueryExpression() != `$["a"]["x"]` {
		t.Errorf("x = %s", x)
	}
	if y.QueryExpression() != `$["a"]["y"]` {
		t.Errorf("y = %s", y)
	}

	z := x.Parent().Child(Key("z"))
	if x.QueryExpression() != `$["a"]["x"]` {
		t.Errorf("Parent().Child() modified x: %s", x)
	}
	if z.QueryExpression() != `$["a"]["z"]` {
		t.Errorf("z = %s", z)
	}
}

func TestLookup(t *testing.T) {
	doc := jsonval.MustParse(`{"a":[1,2,{"b":"x"}],"0":"zero"}`)

	tests := []struct {
		path   Path
		want   string
		wantOK bool
	}{
		{Root, "", true},
		{New("a", 2, "b"), "x", true},
		{New("0"), "zero", true},
		{New(0), "", false},
		{New("a", "b"), "", false},
		{New("a", 9), "", false},
		{New("missing"), "", false},
	}

	for _, tt := range tests {
		t.Run(tt.path.String(), func(t *testing.T) {
			got, ok := tt.path.Lookup(doc)
			if ok != tt.wantOK {
				t.Fatalf("Lookup ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got.Text() != tt.want {
				t.Errorf("Lookup = %q, want %q", got.Text(), tt.want)
			}
		})
	}
}
