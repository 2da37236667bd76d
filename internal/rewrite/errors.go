// errors.go defines the sentinel errors returned by rewrite operations.
//
// Callers test with errors.Is; the returned errors wrap these with the
// offending path or tag.

package rewrite

import "errors"

var (
	// ErrMissingFile is returned when no file argument was given.
	ErrMissingFile = errors.New("missing file argument")
	// ErrMissingTag is returned when the tag argument normalises to nothing.
	ErrMissingTag = errors.New("missing tag argument")
	// ErrFileNotFound is returned when the file to rewrite does not exist.
	ErrFileNotFound = errors.New("file not found")
	// ErrMissingRenameTarget is returned when a rename names no new tag.
	ErrMissingRenameTarget = errors.New("missing rename target")
	// ErrTargetExists is returned instead of overwriting another file.
	ErrTargetExists = errors.New("target already exists")
	// ErrIsDirectory is returned when asked to tag a directory.
	ErrIsDirectory = errors.New("is a directory")
)
