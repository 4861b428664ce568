package jsonval

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/matzehuels/jsonscope/pkg/errors"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantKind Kind
		wantLen  int
	}{
		{"Null", "null", KindNull, 0},
		{"True", "true", KindBool, 0},
		{"Number", "1.50", KindNumber, 0},
		{"String", `"hi"`, KindString, 0},
		{"EmptyArray", "[]", KindArray, 0},
		{"EmptyObject", "{}", KindObject, 0},
		{"Nested", `{"a":[1,2,{"b":"x"}],"c":null}`, KindObject, 2},
		{"Whitespace", " \n\t[1, 2, 3]\n", KindArray, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := ParseString(tt.input)
			if err != nil {
				t.Fatalf("ParseString(%q) error: %v", tt.input, err)
			}
			if v.Kind() != tt.wantKind {
				t.Errorf("Kind() = %v, want %v", v.Kind(), tt.wantKind)
			}
			if v.Len() != tt.wantLen {
				t.Errorf("Len() = %d, want %d", v.Len(), tt.wantLen)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"Empty", ""},
		{"OnlySpace", "   "},
		{"Truncated", `{"a": [1, 2`},
		{"BadToken", `{"a": tru}`},
		{"Trailing", `{"a":1} {"b":2}`},
		{"TrailingGarbage", `[1] x`},
		{"UnquotedKey", `{a: 1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseString(tt.input)
			if err == nil {
				t.Fatalf("ParseString(%q) succeeded, want error", tt.input)
			}
			if !errors.Is(err, errors.ErrCodeParse) {
				t.Errorf("error code = %q, want %q", errors.GetCode(err), errors.ErrCodeParse)
			}
		})
	}
}

func TestParsePreservesOrder(t *testing.T) {
	v := MustParse(`{"z":1,"a":2,"m":3}`)

	var keys []string
	for _, m := range v.Members() {
		keys = append(keys, m.Key)
	}
	want := []string{"z", "a", "m"}
	if len(keys) != len(want) {
		t.Fatalf("keys = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("keys[%d] = %q, want %q", i, keys[i], want[i])
		}
	}
}

func TestParseDuplicateKeys(t *testing.T) {
	v := MustParse(`{"a":1,"b":2,"a":3}`)

	if v.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", v.Len())
	}
	if v.Members()[0].Key != "a" {
		t.Errorf("first key = %q, want a", v.Members()[0].Key)
	}
	got, _ := v.Get("a")
	if got.NumberLiteral() != "3" {
		t.Errorf("a = %q, want 3", got.NumberLiteral())
	}
}

func TestText(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"null", "null"},
		{"true", "true"},
		{"false", "false"},
		{"1.50", "1.50"},
		{"-0", "-0"},
		{"1e10", "1e10"},
		{`"Hello"`, "Hello"},
		{"[1]", ""},
		{`{"a":1}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := MustParse(tt.input).Text(); got != tt.want {
				t.Errorf("Text() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAccessors(t *testing.T) {
	v := MustParse(`{"a":[10,20],"s":"x","b":true}`)

	arr, ok := v.Get("a")
	if !ok || !arr.IsContainer() {
		t.Fatalf("Get(a) = %v, %v", arr, ok)
	}
	if e, ok := arr.Index(1); !ok || e.NumberLiteral() != "20" {
		t.Errorf("Index(1) = %v, %v", e, ok)
	}
	if _, ok := arr.Index(2); ok {
		t.Error("Index(2) out of range should fail")
	}
	if _, ok := v.Get("missing"); ok {
		t.Error("Get(missing) should fail")
	}
	if s, _ := v.Get("s"); s.StringValue() != "x" {
		t.Errorf("StringValue() = %q", s.StringValue())
	}
	if b, _ := v.Get("b"); !b.BoolValue() {
		t.Error("BoolValue() = false, want true")
	}
	if got := v.Count(); got != 6 {
		t.Errorf("Count() = %d, want 6", got)
	}
	if Null().IsContainer() || !Null().IsNull() {
		t.Error("zero value should be a non-container null")
	}
}

func TestMarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"Ordered", `{ "z" : 1, "a" : [true, null, "x"] }`, `{"z":1,"a":[true,null,"x"]}`},
		{"KeepsLiteral", `[1.50, 1e3]`, `[1.50,1e3]`},
		{"NoHTMLEscape", `{"k":"<a & b>"}`, `{"k":"<a & b>"}`},
		{"EscapesQuotes", `{"q\"k":"a\\b"}`, `{"q\"k":"a\\b"}`},
		{"Empty", `{"a":{},"b":[]}`, `{"a":{},"b":[]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(MustParse(tt.input))
			if err != nil {
				t.Fatalf("Marshal error: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("Marshal = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestUnmarshalJSON(t *testing.T) {
	var doc struct {
		Data Value `json:"data"`
	}
	if err := json.Unmarshal([]byte(`{"data":{"b":1,"a":2}}`), &doc); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if doc.Data.Members()[0].Key != "b" {
		t.Errorf("first key = %q, want b", doc.Data.Members()[0].Key)
	}
}

func TestWriteIndent(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteIndent(&buf, MustParse(`{"b":[1],"a":null}`), "  "); err != nil {
		t.Fatalf("WriteIndent error: %v", err)
	}
	want := "{\n  \"b\": [\n    1\n  ],\n  \"a\": null\n}\n"
	if buf.String() != want {
		t.Errorf("WriteIndent =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestInterface(t *testing.T) {
	got := MustParse(`{"a":[1,"x",null,false]}`).Interface()

	m, ok := got.(map[string]any)
	if !ok {
		t.Fatalf("Interface() = %T, want map", got)
	}
	arr, ok := m["a"].([]any)
	if !ok || len(arr) != 4 {
		t.Fatalf("a = %#v", m["a"])
	}
	if arr[0] != json.Number("1") || arr[1] != "x" || arr[2] != nil || arr[3] != false {
		t.Errorf("a = %#v", arr)
	}
}
