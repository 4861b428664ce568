package jsonval

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	"github.com/matzehuels/jsonscope/pkg/errors"
)

// Parse decodes exactly one JSON document from r.
//
// The returned error carries [errors.ErrCodeParse] for empty input, syntax
// errors, and trailing data after the first value.
func Parse(r io.Reader) (Value, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	v, err := decodeValue(dec, true)
	if err != nil {
		if stderrors.Is(err, io.EOF) {
			return Value{}, errors.New(errors.ErrCodeParse, "input is empty")
		}
		return Value{}, parseError(dec, err)
	}

	if _, err := dec.Token(); !stderrors.Is(err, io.EOF) {
		if err == nil {
			return Value{}, errors.New(errors.ErrCodeParse, "multiple JSON values at offset %d", dec.InputOffset())
		}
		return Value{}, errors.Wrap(errors.ErrCodeParse, err, "invalid trailing data")
	}
	return v, nil
}

// ParseBytes decodes a JSON document held in memory.
func ParseBytes(data []byte) (Value, error) {
	return Parse(bytes.NewReader(data))
}

// ParseString decodes a JSON document held in a string.
func ParseString(s string) (Value, error) {
	return Parse(strings.NewReader(s))
}

// MustParse is like [ParseString] but panics on error.
// It is intended for tests and package-level fixtures.
func MustParse(s string) Value {
	v, err := ParseString(s)
	if err != nil {
		panic(fmt.Sprintf("jsonval: MustParse: %v", err))
	}
	return v
}

func parseError(dec *json.Decoder, err error) error {
	var syntax *json.SyntaxError
	if stderrors.As(err, &syntax) {
		return errors.Wrap(errors.ErrCodeParse, err, "JSON syntax error at offset %d", syntax.Offset)
	}
	return errors.Wrap(errors.ErrCodeParse, err, "invalid JSON at offset %d", dec.InputOffset())
}

// decodeValue reads one value from the token stream. A bare io.EOF is only
// passed through at the top level; inside a container it means truncation.
func decodeValue(dec *json.Decoder, top bool) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		if !top && stderrors.Is(err, io.EOF) {
			return Value{}, io.ErrUnexpectedEOF
		}
		return Value{}, err
	}

	switch t := tok.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case json.Number:
		return Number(string(t)), nil
	case string:
		return String(t), nil
	case json.Delim:
		switch t {
		case '[':
			return decodeArray(dec)
		case '{':
			return decodeObject(dec)
		}
		return Value{}, fmt.Errorf("unexpected delimiter %q", t)
	}
	return Value{}, fmt.Errorf("unexpected token %v", tok)
}

func decodeArray(dec *json.Decoder) (Value, error) {
	elems := []Value{}
	for dec.More() {
		v, err := decodeValue(dec, false)
		if err != nil {
			return Value{}, err
		}
		elems = append(elems, v)
	}
	if err := closeDelim(dec); err != nil {
		return Value{}, err
	}
	return Array(elems...), nil
}

func decodeObject(dec *json.Decoder) (Value, error) {
	members := []Member{}
	var seen map[string]int
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			if stderrors.Is(err, io.EOF) {
				return Value{}, io.ErrUnexpectedEOF
			}
			return Value{}, err
		}
		key, ok := tok.(string)
		if !ok {
			return Value{}, fmt.Errorf("object key must be a string, got %v", tok)
		}
		v, err := decodeValue(dec, false)
		if err != nil {
			return Value{}, err
		}
		if seen == nil {
			seen = make(map[string]int)
		}
		if i, dup := seen[key]; dup {
			members[i].Value = v
			continue
		}
		seen[key] = len(members)
		members = append(members, Member{Key: key, Value: v})
	}
	if err := closeDelim(dec); err != nil {
		return Value{}, err
	}
	return Object(members...), nil
}

func closeDelim(dec *json.Decoder) error {
	if _, err := dec.Token(); err != nil {
		if stderrors.Is(err, io.EOF) {
			return io.ErrUnexpectedEOF
		}
		return err
	}
	return nil
}
