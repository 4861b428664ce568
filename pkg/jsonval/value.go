package jsonval

import (
	"encoding/json"
	"strconv"
)

// Kind identifies which JSON type a [Value] holds.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

var kindNames = [...]string{
	KindNull:   "null",
	KindBool:   "boolean",
	KindNumber: "number",
	KindString: "string",
	KindArray:  "array",
	KindObject: "object",
}

// String returns the JSON type name ("null", "boolean", "number", ...).
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Member is one key/value pair of an object, in document order.
type Member struct {
	Key   string
	Value Value
}

// Value is an immutable JSON value. The zero Value is null.
type Value struct {
	kind    Kind
	b       bool
	s       string // string contents, or the number literal
	elems   []Value
	members []Member
}

// =============================================================================
// Constructors
// =============================================================================

// Null returns the JSON null value.
func Null() Value { return Value{} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Number returns a number value with the given literal text.
// The literal is not validated; use [Parse] for untrusted input.
func Number(literal string) Value { return Value{kind: KindNumber, s: literal} }

// Int returns a number value for n.
func Int(n int) Value { return Number(strconv.Itoa(n)) }

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Array returns an array holding elems. The slice is retained, not copied.
func Array(elems ...Value) Value {
	if elems == nil {
		elems = []Value{}
	}
	return Value{kind: KindArray, elems: elems}
}

// Object returns an object holding members in the given order.
// The slice is retained, not copied.
func Object(members ...Member) Value {
	if members == nil {
		members = []Member{}
	}
	return Value{kind: KindObject, members: members}
}

// Field is shorthand for building an object [Member].
func Field(key string, v Value) Member { return Member{Key: key, Value: v} }

// =============================================================================
// Accessors
// =============================================================================

// Kind returns the JSON type of v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// IsContainer reports whether v is an array or an object.
func (v Value) IsContainer() bool { return v.kind == KindArray || v.kind == KindObject }

// BoolValue returns the boolean held by v, or false for other kinds.
func (v Value) BoolValue() bool { return v.b }

// StringValue returns the string held by v, or "" for other kinds.
func (v Value) StringValue() string {
	if v.kind == KindString {
		return v.s
	}
	return ""
}

// NumberLiteral returns the literal text of a number, or "" for other kinds.
func (v Value) NumberLiteral() string {
	if v.kind == KindNumber {
		return v.s
	}
	return ""
}

// Len returns the number of elements or members; 0 for scalars.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.elems)
	case KindObject:
		return len(v.members)
	}
	return 0
}

// Elements returns the elements of an array, or nil for other kinds.
// Callers must not modify the returned slice.
func (v Value) Elements() []Value {
	if v.kind == KindArray {
		return v.elems
	}
	return nil
}

// Members returns the members of an object in document order, or nil for
// other kinds. Callers must not modify the returned slice.
func (v Value) Members() []Member {
	if v.kind == KindObject {
		return v.members
	}
	return nil
}

// Index returns the i-th array element.
func (v Value) Index(i int) (Value, bool) {
	if v.kind != KindArray || i < 0 || i >= len(v.elems) {
		return Value{}, false
	}
	return v.elems[i], true
}

// Get returns the value of the member named key.
func (v Value) Get(key string) (Value, bool) {
	for _, m := range v.Members() {
		if m.Key == key {
			return m.Value, true
		}
	}
	return Value{}, false
}

// Text returns the display form of a scalar: "null", "true", "false", the
// number literal, or the string itself. Containers return "".
func (v Value) Text() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindNumber, KindString:
		return v.s
	}
	return ""
}

// Count returns the number of values in v including v itself.
func (v Value) Count() int {
	n := 1
	for _, e := range v.elems {
		n += e.Count()
	}
	for _, m := range v.members {
		n += m.Value.Count()
	}
	return n
}

// Interface converts v to plain Go values: nil, bool, json.Number, string,
// []any and map[string]any. Object order is lost.
func (v Value) Interface() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindNumber:
		return json.Number(v.s)
	case KindString:
		return v.s
	case KindArray:
		out := make([]any, len(v.elems))
		for i, e := range v.elems {
			out[i] = e.Interface()
		}
		return out
	case KindObject:
		out := make(map[string]any, len(v.members))
		for _, m := range v.members {
			out[m.Key] = m.Value.Interface()
		}
		return out
	}
	return nil
}
