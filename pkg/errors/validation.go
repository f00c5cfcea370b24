package errors

import (
	"strings"
	"unicode"
)

// MaxDescriptionLength bounds the informal description accepted from users.
const MaxDescriptionLength = 4096

// ValidateLabel validates a single label rune.
// Labels are single printable, non-space characters.
func ValidateLabel(r rune) error {
	if r == unicode.ReplacementChar {
		return New(ErrCodeInvalidInput, "label is not valid UTF-8")
	}
	if unicode.IsSpace(r) {
		return New(ErrCodeInvalidInput, "label cannot be whitespace")
	}
	if unicode.IsControl(r) || !unicode.IsPrint(r) {
		return New(ErrCodeInvalidInput, "label %q is not a printable character", r)
	}
	return nil
}

// ValidateZoneToken validates one whitespace-free zone token such as "abc".
// Every rune of the token is a label, so duplicates are rejected.
func ValidateZoneToken(token string) error {
	if token == "" {
		return New(ErrCodeInvalidInput, "zone token cannot be empty")
	}

	seen := make(map[rune]bool, len(token))
	for _, r := range token {
		if err := ValidateLabel(r); err != nil {
			return Wrap(ErrCodeInvalidInput, err, "invalid zone token %q", token)
		}
		if seen[r] {
			return New(ErrCodeInvalidInput, "zone token %q repeats label %q", token, r)
		}
		seen[r] = true
	}
	return nil
}

// ValidateDescription validates an informal description before parsing.
//
// Validation rules:
//   - Description cannot be blank
//   - Maximum length of MaxDescriptionLength bytes
//   - No control characters other than whitespace separators
func ValidateDescription(s string) error {
	if strings.TrimSpace(s) == "" {
		return New(ErrCodeInvalidInput, "description cannot be empty")
	}

	if len(s) > MaxDescriptionLength {
		return New(ErrCodeInvalidInput, "description too long (max %d characters)", MaxDescriptionLength)
	}

	for _, r := range s {
		if unicode.IsControl(r) && !unicode.IsSpace(r) {
			return New(ErrCodeInvalidInput, "description contains invalid control characters")
		}
	}

	return nil
}

// ValidatePath validates an output path prefix.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}
