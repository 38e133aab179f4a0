package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// MaxRoomCount caps the requested room count. Each room costs at most 101
// candidate positions, so the cap bounds a single run.
const MaxRoomCount = 100000

// footprintIDRegex matches footprint identifiers: a letter or digit followed by
// letters, digits, dots, dashes, underscores or slashes.
var footprintIDRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._/-]*$`)

// ValidateFootprintID validates a footprint identifier from a palette or catalog.
//
// The validation rules are intentionally conservative:
//   - No empty identifiers
//   - Maximum length of 128 characters
//   - No control characters
//   - No path traversal sequences (..)
//   - Only letters, digits and . _ - /
func ValidateFootprintID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidFootprint, "footprint id cannot be empty")
	}

	if len(id) > 128 {
		return New(ErrCodeInvalidFootprint, "footprint id too long (max 128 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidFootprint, "footprint id contains invalid control characters")
		}
	}

	if strings.Contains(id, "..") {
		return New(ErrCodeInvalidFootprint, "footprint id contains invalid characters: %q", "..")
	}

	if !footprintIDRegex.MatchString(id) {
		return New(ErrCodeInvalidFootprint, "invalid footprint id: %q", id)
	}

	return nil
}

// ValidateRoomCount checks a requested room count.
func ValidateRoomCount(n int) error {
	if n < 1 {
		return New(ErrCodeInvalidInput, "room count must be at least 1, got %d", n)
	}
	if n > MaxRoomCount {
		return New(ErrCodeInvalidInput, "room count too large (max %d)", MaxRoomCount)
	}
	return nil
}

// ValidatePath validates a file path given on the command line or in a preset.
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
