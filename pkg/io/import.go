package io

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/jsonscope/pkg/errors"
	"github.com/matzehuels/jsonscope/pkg/jsonval"
)

// DefaultMaxBytes is the default document size ceiling (64 MiB).
const DefaultMaxBytes int64 = 64 << 20

// Stdin is the path that makes [ImportJSON] read standard input.
const Stdin = "-"

// stdin is replaced in tests.
var stdin io.Reader = os.Stdin

// ReadJSON decodes one JSON document from r.
//
// At most maxBytes bytes are read; a longer input returns an error with code
// [errors.ErrCodeTooLarge] without being parsed. maxBytes <= 0 reads
// everything. ReadJSON does not close r.
func ReadJSON(r io.Reader, maxBytes int64) (jsonval.Value, error) {
	data, err := readLimited(r, maxBytes)
	if err != nil {
		return jsonval.Value{}, err
	}
	return jsonval.ParseBytes(data)
}

// ImportJSON reads the JSON file at path and returns the decoded document.
// A path of "-" reads standard input.
//
// The file size is checked against maxBytes before reading. ImportJSON
// returns the same errors as [ReadJSON], plus [errors.ErrCodeFileNotFound]
// when path does not exist.
func ImportJSON(ctx context.Context, path string, maxBytes int64) (jsonval.Value, error) {
	if err := ctx.Err(); err != nil {
		return jsonval.Value{}, err
	}
	if path == Stdin {
		return ReadJSON(stdin, maxBytes)
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return jsonval.Value{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "file not found: %s", path)
		}
		return jsonval.Value{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	if info, err := f.Stat(); err == nil && info.Mode().IsRegular() {
		if err := errors.ValidateDocumentSize(info.Size(), maxBytes); err != nil {
			return jsonval.Value{}, err
		}
	}

	v, err := ReadJSON(f, maxBytes)
	if err != nil {
		return jsonval.Value{}, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}

// ReadFile is like [ImportJSON] but returns the raw bytes, still enforcing
// maxBytes. It is used by callers that cache on content hashes.
func ReadFile(path string, maxBytes int64) ([]byte, error) {
	if path == Stdin {
		return readLimited(stdin, maxBytes)
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "file not found: %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return readLimited(f, maxBytes)
}

func readLimited(r io.Reader, maxBytes int64) ([]byte, error) {
	if maxBytes <= 0 {
		return io.ReadAll(r)
	}
	var buf bytes.Buffer
	n, err := io.Copy(&buf, io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	if err := errors.ValidateDocumentSize(n, maxBytes); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
