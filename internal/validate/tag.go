// tag.go implements tag string validation.
//
// Tags are normalised before they reach this check (see codec.Normalise), so
// delimiters and spaces are already gone. What remains to reject is input
// that normalises to nothing, or that carries bytes no filename may hold.

package validate

import (
	"fmt"
	"strings"
)

// Tag validates a normalised tag string.
//
// Validation rules:
//   - Empty tags rejected (meaningless label, or input made only of delimiters)
//   - Null bytes rejected (cannot appear in a filename)
func Tag(t string) error {
	if t == "" {
		return fmt.Errorf("%w: empty tag", ErrInvalidTag)
	}
	if strings.ContainsRune(t, 0) {
		return fmt.Errorf("%w: null byte in tag", ErrInvalidTag)
	}
	return nil
}

// Tags validates every tag in a list.
func Tags(tags []string) error {
	for _, t := range tags {
		if err := Tag(t); err != nil {
			return err
		}
	}
	return nil
}
