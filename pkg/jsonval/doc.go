// Package jsonval provides the immutable JSON document model used by every
// other jsonscope package.
//
// # Overview
//
// A [Value] is a closed tagged union over the six JSON kinds: null, boolean,
// number, string, array and object. Objects keep their members in document
// order, which is what a viewer must show; Go maps would lose it. Numbers keep
// the literal text from the source so "1.50" is never redisplayed as "1.5".
//
// Values are never mutated after construction. Copying a Value is cheap and
// shares the underlying element and member slices.
//
// # Parsing
//
//	v, err := jsonval.ParseString(`{"a": [1, 2, {"b": "x"}]}`)
//	if err != nil {
//	    // err carries errors.ErrCodeParse
//	}
//
// Parse rejects empty input and trailing values after the first document.
// Duplicate object keys keep the position of the first occurrence and the
// value of the last, like JSON.parse.
//
// # Scalar Text
//
// [Value.Text] returns the text a user sees for a scalar and the text search
// matches against: "null", "true"/"false", the number literal, or the raw
// string. Containers have no text.
//
// # Interop
//
// [Value.Interface] converts to plain Go values (map[string]any, []any,
// json.Number, string, bool, nil) for external engines such as JSONPath
// evaluators. [Value.MarshalJSON] writes compact, order-preserving JSON.
package jsonval
