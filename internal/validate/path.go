// path.go validates file paths and glob patterns.

package validate

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Path validates a file path that is about to be rewritten.
//
// Validation rules:
//   - Empty paths rejected
//   - Null bytes rejected (security: prevents path injection attacks)
func Path(p string) error {
	if p == "" {
		return fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	if strings.ContainsRune(p, 0) {
		return fmt.Errorf("%w: null byte in path", ErrInvalidPath)
	}
	return nil
}

// Pattern validates a glob pattern. filepath.Match only reports a malformed
// pattern when it gets far enough to notice, so every segment is tried
// against an empty name.
func Pattern(p string) error {
	if strings.ContainsRune(p, 0) {
		return fmt.Errorf("%w: null byte in pattern", ErrInvalidPattern)
	}
	for _, seg := range strings.Split(filepath.ToSlash(p), "/") {
		if _, err := filepath.Match(seg, ""); err != nil {
			return fmt.Errorf("%w: %q: %w", ErrInvalidPattern, p, err)
		}
	}
	return nil
}
