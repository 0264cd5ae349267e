package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// maxLabelLength bounds vertex labels; real solids use two to four characters.
const maxLabelLength = 64

// ValidateLabel validates a vertex label.
//
// Labels must be non-empty, at most 64 characters, and free of whitespace,
// control characters and parentheses, so that every label survives a round
// trip through cycle notation.
func ValidateLabel(label string) error {
	if label == "" {
		return New(ErrCodeInvalidInput, "label cannot be empty")
	}

	if len(label) > maxLabelLength {
		return New(ErrCodeInvalidInput, "label too long (max %d characters)", maxLabelLength)
	}

	for _, r := range label {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidInput, "label %q contains whitespace or control characters", label)
		}
	}

	if strings.ContainsAny(label, "()") {
		return New(ErrCodeInvalidInput, "label %q cannot contain parentheses", label)
	}

	return nil
}

// solidNameRegex matches valid solid names. Names double as file name stems.
var solidNameRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// ValidateSolidName validates a solid name for safety and correctness.
// It rejects names that could be used for path traversal when a solid is
// looked up in a solids directory.
func ValidateSolidName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidSolid, "solid name cannot be empty")
	}

	if len(name) > 64 {
		return New(ErrCodeInvalidSolid, "solid name too long (max 64 characters)")
	}

	if !solidNameRegex.MatchString(name) {
		return New(ErrCodeInvalidSolid, "invalid solid name: %q", name)
	}

	return nil
}

// ValidatePath validates an output directory path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidInput, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "path contains invalid characters")
		}
	}

	return nil
}
