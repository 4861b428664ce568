// Package query evaluates JSONPath expressions (RFC 9535) against a document
// and reports every match with its canonical location.
//
// Evaluation is delegated to github.com/theory/jsonpath. Matches are mapped
// back onto the original [jsonval.Value] through their normalized paths, so
// results keep object member order and number literals, and their
// [docpath.Path] can be used to reveal the match in the tree view.
//
//	q, err := query.Compile(`$.store.book[?@.price < 10].title`)
//	if err != nil {
//	    // err carries errors.ErrCodeQuery
//	}
//	for _, m := range q.Select(doc) {
//	    fmt.Println(m.Path, m.Value.Text())
//	}
package query

import (
	"strconv"
	"strings"

	"github.com/theory/jsonpath"

	"github.com/matzehuels/jsonscope/pkg/docpath"
	"github.com/matzehuels/jsonscope/pkg/errors"
	"github.com/matzehuels/jsonscope/pkg/jsonval"
)

// Match is one node selected by a query.
type Match struct {
	Path  docpath.Path
	Value jsonval.Value
}

// Query is a compiled JSONPath expression. It is safe for concurrent use.
type Query struct {
	expr string
	path *jsonpath.Path
}

// Compile parses expr. Syntax errors carry [errors.ErrCodeQuery].
func Compile(expr string) (*Query, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, errors.New(errors.ErrCodeQuery, "query expression is empty")
	}
	p, err := jsonpath.Parse(expr)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQuery, err, "invalid query %q", expr)
	}
	return &Query{expr: expr, path: p}, nil
}

// String returns the expression q was compiled from.
func (q *Query) String() string { return q.expr }

// Select returns the nodes of v matched by q in the order the engine
// produces them.
func (q *Query) Select(v jsonval.Value) []Match {
	located := q.path.SelectLocated(plain(v))
	out := make([]Match, 0, len(located))
	for _, ln := range located {
		p, err := docpath.Parse(ln.Path.String())
		if err != nil {
			continue
		}
		val, ok := p.Lookup(v)
		if !ok {
			continue
		}
		out = append(out, Match{Path: p, Value: val})
	}
	return out
}

// Run compiles expr and selects from v.
func Run(v jsonval.Value, expr string) ([]Match, error) {
	q, err := Compile(expr)
	if err != nil {
		return nil, err
	}
	return q.Select(v), nil
}

// plain converts v to the value types the engine compares: numbers become
// int64 when integral and float64 otherwise.
func plain(v jsonval.Value) any {
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
		f, _ := strconv.ParseFloat(lit, 64)
		return f
	case jsonval.KindString:
		return v.StringValue()
	case jsonval.KindArray:
		out := make([]any, v.Len())
		for i, e := range v.Elements() {
			out[i] = plain(e)
		}
		return out
	}
	out := make(map[string]any, v.Len())
	for _, m := range v.Members() {
		out[m.Key] = plain(m.Value)
	}
	return out
}
