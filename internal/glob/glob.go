// Package glob provides glob pattern matching for file paths.
//
// Extends filepath.Match with ** support for matching any path segments.
// This enables patterns like "photos/**/*.jpg" to match every jpg under
// photos/, regardless of nesting depth.
//
// Patterns and paths are compared in slash form so the same pattern works on
// every platform.
package glob

import (
	"path/filepath"
	"strings"
)

// Recursive is the segment wildcard that matches any number of directories.
const Recursive = "**"

// HasMeta reports whether pattern contains any glob metacharacters.
func HasMeta(pattern string) bool {
	return strings.ContainsAny(pattern, `*?[`)
}

// Root returns the longest leading directory of pattern that contains no
// metacharacters. Walking Root is enough to find every match.
//
//	"docs/**/*.md" -> "docs"
//	"/tmp/t/*"     -> "/tmp/t"
//	"**/*"         -> "."
//	"*.pdf"        -> "."
func Root(pattern string) string {
	pattern = filepath.ToSlash(pattern)
	segments := strings.Split(pattern, "/")
	var static []string
	for _, s := range segments[:len(segments)-1] {
		if HasMeta(s) {
			break
		}
		static = append(static, s)
	}
	root := strings.Join(static, "/")
	switch {
	case root == "" && strings.HasPrefix(pattern, "/"):
		return "/"
	case root == "":
		return "."
	}
	return filepath.FromSlash(root)
}

// Depth returns how many path segments a match of pattern has. ok is false
// when pattern contains ** and so matches at any depth.
//
//	"*.pdf"       -> 1, true
//	"/t/*/*.md"   -> 4, true
//	"docs/**/*"   -> 0, false
func Depth(pattern string) (n int, ok bool) {
	pattern = filepath.ToSlash(pattern)
	if strings.Contains(pattern, Recursive) {
		return 0, false
	}
	return Segments(pattern), true
}

// Segments counts the slash-separated segments of path. A leading "/" counts
// as an empty first segment, as it does in Depth.
func Segments(path string) int {
	return strings.Count(filepath.ToSlash(path), "/") + 1
}

// Match reports whether path matches the glob pattern.
// Supports standard glob patterns (*, ?, [...]) plus ** for matching any
// path segments. Returns an error if the pattern is malformed.
func Match(pattern, path string) (bool, error) {
	pattern = filepath.ToSlash(pattern)
	path = filepath.ToSlash(path)

	// Handle ** (match any path segments)
	if strings.Contains(pattern, Recursive) {
		parts := strings.SplitN(pattern, Recursive, 2)
		prefix := strings.TrimSuffix(parts[0], "/")
		suffix := strings.TrimPrefix(parts[1], "/")

		rest := path
		if prefix != "" {
			ok, tail, err := matchPrefix(prefix, path)
			if err != nil || !ok {
				return false, err
			}
			rest = tail
		}
		if suffix == "" {
			return true, nil
		}
		// Match suffix against every trailing run of segments
		segments := strings.Split(rest, "/")
		for i := range segments {
			if segments[i] == "" {
				continue
			}
			m, err := Match(suffix, strings.Join(segments[i:], "/"))
			if err != nil {
				return false, err
			}
			if m {
				return true, nil
			}
		}
		return false, nil
	}

	return filepath.Match(pattern, path)
}

// matchPrefix matches the directory segments of prefix against the start of
// path, returning whatever follows them. Prefixes are matched segment by
// segment so "docs" never matches "docs2/x".
func matchPrefix(prefix, path string) (bool, string, error) {
	want := strings.Split(prefix, "/")
	have := strings.Split(path, "/")
	if len(have) <= len(want) {
		return false, "", nil
	}
	for i, w := range want {
		m, err := filepath.Match(w, have[i])
		if err != nil {
			return false, "", err
		}
		if !m {
			return false, "", nil
		}
	}
	return true, strings.Join(have[len(want):], "/"), nil
}
