// Package skeleton reduces a JSON document to its shape.
//
// Scalars are replaced by type placeholders ("<string>", "<number>",
// "<boolean>"), null stays null, and arrays are cut down to a few sample
// elements followed by a marker counting the rest:
//
//	{"users":[{"id":1,"tags":["a","b"]},{"id":2,"tags":[]}]}
//
// becomes, with one sample per array,
//
//	{"users":[{"id":"<number>","tags":["<string>","[... 1 more items]"]},"[... 1 more items]"]}
//
// The result is itself a document and can be written as JSON or YAML.
package skeleton

import (
	"fmt"
	"io"
	"strconv"

	"github.com/goccy/go-yaml"

	"github.com/matzehuels/jsonscope/pkg/jsonval"
)

// DefaultMaxArrayItems is the number of array elements kept by default.
const DefaultMaxArrayItems = 1

// Placeholders for scalar values.
const (
	StringPlaceholder  = "<string>"
	NumberPlaceholder  = "<number>"
	BooleanPlaceholder = "<boolean>"
)

// Of returns the skeleton of v, keeping at most maxArrayItems elements of
// every array. maxArrayItems < 1 means DefaultMaxArrayItems.
func Of(v jsonval.Value, maxArrayItems int) jsonval.Value {
	if maxArrayItems < 1 {
		maxArrayItems = DefaultMaxArrayItems
	}
	return of(v, maxArrayItems)
}

func of(v jsonval.Value, limit int) jsonval.Value {
	switch v.Kind() {
	case jsonval.KindNull:
		return jsonval.Null()
	case jsonval.KindBool:
		return jsonval.String(BooleanPlaceholder)
	case jsonval.KindNumber:
		return jsonval.String(NumberPlaceholder)
	case jsonval.KindString:
		return jsonval.String(StringPlaceholder)
	case jsonval.KindArray:
		elems := v.Elements()
		n := min(limit, len(elems))
		out := make([]jsonval.Value, 0, n+1)
		for _, e := range elems[:n] {
			out = append(out, of(e, limit))
		}
		if rest := len(elems) - n; rest > 0 {
			out = append(out, jsonval.String(MoreItems(rest)))
		}
		return jsonval.Array(out...)
	}

	members := v.Members()
	out := make([]jsonval.Member, len(members))
	for i, m := range members {
		out[i] = jsonval.Field(m.Key, of(m.Value, limit))
	}
	return jsonval.Object(out...)
}

// MoreItems returns the marker appended to sampled arrays.
func MoreItems(n int) string {
	return fmt.Sprintf("[... %d more items]", n)
}

// =============================================================================
// YAML Export
// =============================================================================

// WriteYAML writes v as YAML, keeping object member order.
func WriteYAML(w io.Writer, v jsonval.Value) error {
	data, err := yaml.Marshal(toYAML(v))
	if err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// toYAML converts v to values go-yaml encodes in document order.
func toYAML(v jsonval.Value) any {
	switch v.Kind() {
	case jsonval.KindNull:
		return nil
	case jsonval.KindBool:
		return v.BoolValue()
	case jsonval.KindNumber:
		lit := v.NumberLiteral()
		if n, err := strconv.ParseInt(lit, 10, 64); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(lit, 64); err == nil {
			return f
		}
		return lit
	case jsonval.KindString:
		return v.StringValue()
	case jsonval.KindArray:
		out := make([]any, len(v.Elements()))
		for i, e := range v.Elements() {
			out[i] = toYAML(e)
		}
		return out
	}
	out := make(yaml.MapSlice, len(v.Members()))
	for i, m := range v.Members() {
		out[i] = yaml.MapItem{Key: m.Key, Value: toYAML(m.Value)}
	}
	return out
}
