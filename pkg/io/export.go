package io

import (
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/jsonscope/pkg/jsonval"
)

// Indent is the indentation used for exported documents.
const Indent = "  "

// WriteJSON writes v to w as indented JSON followed by a newline.
// Object member order and number literals are preserved.
func WriteJSON(w io.Writer, v jsonval.Value) error {
	if err := jsonval.WriteIndent(w, v, Indent); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes v to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(v jsonval.Value, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteJSON(f, v); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
