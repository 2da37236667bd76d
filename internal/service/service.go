// Package service defines the shared interface for tag operations.
// Commands, extensions and the MCP server depend on this interface rather
// than on the filesystem-backed implementation in package tree.
package service

import (
	"github.com/jpl-au/oktags/internal/codec"
	"github.com/jpl-au/oktags/internal/query"
	"github.com/jpl-au/oktags/internal/rewrite"
)

// FileTags is the decoded tag set of one file.
type FileTags struct {
	Path string   `json:"path"`
	Tags []string `json:"tags"`
}

// Service defines all tag operations.
//
// Read operations take a glob pattern; an empty pattern means the configured
// default. Every call re-reads the filesystem, so there is nothing to open
// or close.
//
// Example:
//
//	svc := tree.New(afero.NewOsFs(), tree.Options{})
//	counts, err := svc.Counts("")
//	newPath, err := svc.Add("foo,bar", "notes.txt")
type Service interface {
	// Counts returns how many files carry each tag under pattern, most
	// used first. Ties are broken alphabetically.
	Counts(pattern string) ([]query.TagCount, error)

	// Tags returns the distinct tags under pattern, sorted. Used for
	// suggestions and shell completion.
	Tags(pattern string) ([]string, error)

	// Find returns, sorted, the files under pattern carrying every tag in
	// the comma-separated list. An empty list matches every tagged file.
	Find(tags, pattern string) ([]string, error)

	// Show decodes the tags of each file matched by paths. Untagged files
	// are included with an empty tag list. A path matching nothing returns
	// rewrite.ErrFileNotFound.
	Show(paths ...string) ([]FileTags, error)

	// Add adds comma-separated tags to a file and returns its new path.
	Add(tags, path string) (string, error)

	// Remove removes one tag from a file and returns its new path.
	Remove(tag, path string) (string, error)

	// Rename replaces tag old with the comma-separated tags in newTags on
	// every file under root, returning one change per renamed file.
	Rename(root, old, newTags string) ([]rewrite.Change, error)

	// Decode parses the tags of path with the configured codec, so legacy
	// names are read when decode.legacy is set.
	Decode(path string) codec.Name

	// Pattern returns the default walk pattern.
	Pattern() string

	// DryRun reports whether mutating calls only plan their changes.
	DryRun() bool
}
