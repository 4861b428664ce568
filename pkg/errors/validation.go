package errors

import (
	"slices"
	"strings"
	"unicode"
)

// MaxSearchTermLength bounds the search box input.
const MaxSearchTermLength = 256

// ValidateSearchTerm rejects search terms the projector should never see:
// control characters and unreasonably long input. The empty term is valid
// and means "no search".
func ValidateSearchTerm(term string) error {
	if len(term) > MaxSearchTermLength {
		return New(ErrCodeInvalidSearch, "search term too long (max %d characters)", MaxSearchTermLength)
	}
	for _, r := range term {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidSearch, "search term contains control characters")
		}
	}
	return nil
}

// ValidateFormat checks that format is one of allowed (case-sensitive).
func ValidateFormat(format string, allowed ...string) error {
	if format == "" {
		return New(ErrCodeInvalidFormat, "format cannot be empty")
	}
	if !slices.Contains(allowed, format) {
		return New(ErrCodeInvalidFormat, "unsupported format %q (want one of %s)", format, strings.Join(allowed, ", "))
	}
	return nil
}

// ValidateDocumentSize returns a TOO_LARGE error when size exceeds limit.
// A non-positive limit disables the check.
func ValidateDocumentSize(size, limit int64) error {
	if limit > 0 && size > limit {
		return New(ErrCodeTooLarge, "document is %d bytes, limit is %d", size, limit)
	}
	return nil
}
