package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// slugRegex matches organization slugs and dashboard IDs.
var slugRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// ValidateSlug validates an organization slug or dashboard ID.
// Both end up in file paths and store keys, so the rules are strict:
//   - Not empty
//   - Maximum length of 64 characters
//   - Lowercase letters, digits, '-' and '_' only, starting with a letter or digit
func ValidateSlug(kind, s string) error {
	if s == "" {
		return New(ErrCodeInvalidInput, "%s cannot be empty", kind)
	}
	if len(s) > 64 {
		return New(ErrCodeInvalidInput, "%s too long (max 64 characters)", kind)
	}
	if !slugRegex.MatchString(s) {
		return New(ErrCodeInvalidInput, "invalid %s: %q", kind, s)
	}
	return nil
}

// ValidateTitle validates a dashboard or widget title.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return New(ErrCodeInvalidInput, "title cannot be empty")
	}
	if len(title) > 255 {
		return New(ErrCodeInvalidInput, "title too long (max 255 characters)")
	}
	for _, r := range title {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "title contains invalid control characters")
		}
	}
	return nil
}
