package errors

import (
	"strings"
	"unicode"
)

// ValidateStem validates a model stem before it becomes an output directory name.
// It rejects stems that could escape the output directory.
//
// The validation rules:
//   - No empty stems
//   - No control characters
//   - No path separators or parent-directory references
//   - Maximum length of 200 characters
func ValidateStem(stem string) error {
	if stem == "" {
		return New(ErrCodeInvalidPath, "model stem cannot be empty")
	}

	if len(stem) > 200 {
		return New(ErrCodeInvalidPath, "model stem too long (max 200 characters)")
	}

	for _, r := range stem {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "model stem contains invalid control characters")
		}
	}

	if stem == "." || stem == ".." {
		return New(ErrCodeInvalidPath, "model stem cannot be %q", stem)
	}

	if strings.ContainsAny(stem, "/\\") {
		return New(ErrCodeInvalidPath, "model stem cannot contain path separators")
	}

	return nil
}
