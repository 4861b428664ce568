package docpath

import (
	"strconv"
	"strings"

	"github.com/matzehuels/jsonscope/pkg/errors"
)

// Parse decodes a canonical query expression such as `$["a"][0]`.
// Malformed input returns an error with code [errors.ErrCodeInvalidPath].
func Parse(expr string) (Path, error) {
	expr = strings.TrimSpace(expr)
	if !strings.HasPrefix(expr, "$") {
		return nil, invalid(expr, 0, "must start with $")
	}

	p := Path{}
	i := 1
	for i < len(expr) {
		if expr[i] != '[' {
			return nil, invalid(expr, i, "expected [")
		}
		i++
		if i >= len(expr) {
			return nil, invalid(expr, i, "unterminated segment")
		}

		var seg Segment
		var err error
		switch c := expr[i]; {
		case c == '"' || c == '\'':
			seg, i, err = parseName(expr, i)
		case c >= '0' && c <= '9':
			seg, i, err = parseIndex(expr, i)
		default:
			err = invalid(expr, i, "expected index or quoted key")
		}
		if err != nil {
			return nil, err
		}

		if i >= len(expr) || expr[i] != ']' {
			return nil, invalid(expr, i, "expected ]")
		}
		i++
		p = append(p, seg)
	}
	return p, nil
}

// MustParse is like [Parse] but panics on error.
func MustParse(expr string) Path {
	p, err := Parse(expr)
	if err != nil {
		panic(err)
	}
	return p
}

func parseIndex(expr string, i int) (Segment, int, error) {
	start := i
	for i < len(expr) && expr[i] >= '0' && expr[i] <= '9' {
		i++
	}
	digits := expr[start:i]
	if len(digits) > 1 && digits[0] == '0' {
		return Segment{}, i, invalid(expr, start, "index has leading zero")
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return Segment{}, i, invalid(expr, start, "index out of range")
	}
	return Index(n), i, nil
}

func parseName(expr string, i int) (Segment, int, error) {
	quote := expr[i]
	i++
	var b strings.Builder
	for i < len(expr) {
		c := expr[i]
		switch {
		case c == quote:
			return Key(b.String()), i + 1, nil
		case c == '\\':
			if i+1 >= len(expr) {
				return Segment{}, i, invalid(expr, i, "dangling escape")
			}
			n, err := unescape(&b, expr, i)
			if err != nil {
				return Segment{}, i, err
			}
			i += n
		default:
			b.WriteByte(c)
			i++
		}
	}
	return Segment{}, i, invalid(expr, i, "unterminated key")
}

// unescape decodes the escape sequence starting at expr[i] into b and returns
// its length. Besides quotes and backslash it accepts the control character
// escapes used by JSONPath normalized paths.
func unescape(b *strings.Builder, expr string, i int) (int, error) {
	switch c := expr[i+1]; c {
	case '"', '\'', '\\', '/':
		b.WriteByte(c)
	case 'b':
		b.WriteByte('\b')
	case 'f':
		b.WriteByte('\f')
	case 'n':
		b.WriteByte('\n')
	case 'r':
		b.WriteByte('\r')
	case 't':
		b.WriteByte('\t')
	case 'u':
		if i+6 > len(expr) {
			return 0, invalid(expr, i, "short unicode escape")
		}
		r, err := strconv.ParseUint(expr[i+2:i+6], 16, 32)
		if err != nil {
			return 0, invalid(expr, i, "bad unicode escape")
		}
		b.WriteRune(rune(r))
		return 6, nil
	default:
		return 0, invalid(expr, i, "unsupported escape")
	}
	return 2, nil
}

func invalid(expr string, pos int, reason string) error {
	return errors.New(errors.ErrCodeInvalidPath, "invalid path %q at %d: %s", expr, pos, reason)
}
