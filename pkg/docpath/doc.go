// Package docpath addresses locations inside a JSON document.
//
// A [Path] is an ordered list of [Segment] values, each either an array
// index or an object key. The empty path is the document root.
//
// # Canonical Form
//
// [Path.QueryExpression] renders a path in the bracket form used by
// JSONPath normalized paths:
//
//	$                  root
//	$["a"][0]["b c"]   key "a", index 0, key "b c"
//
// Keys are always quoted, even when they look numeric, so `$["0"]` and `$[0]`
// address different locations. Double quotes and backslashes inside keys are
// escaped with a backslash.
//
// [Parse] is the inverse. It also accepts single-quoted names (`$['a']`)
// so normalized paths produced by JSONPath engines can be read back.
//
// # Identity
//
// [Path.Key] returns a string usable as a map key. Two paths have the same
// key iff they are [Path.Equal].
package docpath
