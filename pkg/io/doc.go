// Package io loads JSON documents from files and readers and writes them back
// out as pretty-printed JSON.
//
// # Overview
//
// The core packages never perform I/O; they receive a parsed
// [jsonval.Value]. This package is the boundary where bytes become values
// and values become bytes again.
//
// # Import
//
// Use [ImportJSON] to read a document from a file path ("-" reads standard
// input), or [ReadJSON] to read from any io.Reader:
//
//	v, err := io.ImportJSON(ctx, "data.json", io.DefaultMaxBytes)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Documents larger than the size ceiling are rejected before parsing with
// an error carrying errors.ErrCodeTooLarge. A ceiling of zero or less
// disables the check. Missing files report errors.ErrCodeFileNotFound and
// malformed documents errors.ErrCodeParse.
//
// # Export
//
// Use [ExportJSON] to write a document to a file, or [WriteJSON] to write to
// any io.Writer. Output is indented by two spaces and keeps object member
// order, so a document survives import and export unchanged apart from
// whitespace.
//
// # Concurrency
//
// All functions are safe for concurrent use. Values are immutable.
package io
