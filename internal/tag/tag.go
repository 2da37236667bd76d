// Package tag provides tag operations for the CLI layer.
//
// This package orchestrates list/add/remove/rename/find/show, handling both
// the service calls and output formatting. Each function writes its human
// output to w and returns a result struct for JSON output.

package tag

import (
	"io"

	"github.com/jpl-au/oktags/internal/codec"
	"github.com/jpl-au/oktags/internal/format"
	"github.com/jpl-au/oktags/internal/query"
	"github.com/jpl-au/oktags/internal/rewrite"
	"github.com/jpl-au/oktags/internal/service"
)

// Result contains the outcome of an add or remove.
type Result struct {
	Path    string   `json:"path"`
	NewPath string   `json:"new_path"`
	Action  string   `json:"action"`
	Tags    []string `json:"tags"`
	Changed bool     `json:"changed"`
	DryRun  bool     `json:"dry_run,omitempty"`
}

// RenameResult contains the outcome of a rename across a tree.
type RenameResult struct {
	Old     string           `json:"old"`
	New     []string         `json:"new"`
	Changes []rewrite.Change `json:"changes"`
	DryRun  bool             `json:"dry_run,omitempty"`
	Error   string           `json:"error,omitempty"` // set when the rename stopped part way
}

// FindResult contains the files matching a tag query.
type FindResult struct {
	Tags  []string `json:"tags"`
	Files []string `json:"files"`
}

// Options controls presentation.
type Options struct {
	Colour bool // colourise dry-run previews
	Tree   bool // print find results as a tree
	Limit  int  // keep at most this many rows of list and find output; 0 keeps all
}

func limit[T any](rows []T, n int) []T {
	if n > 0 && len(rows) > n {
		return rows[:n]
	}
	return rows
}

// List prints tag frequencies under pattern, most used first.
func List(w io.Writer, svc service.Service, pattern string, opts Options) ([]query.TagCount, error) {
	counts, err := svc.Counts(pattern)
	if err != nil {
		return nil, err
	}
	if counts == nil {
		counts = []query.TagCount{}
	}
	counts = limit(counts, opts.Limit)
	return counts, format.Counts(w, counts)
}

// Names prints the distinct tags under pattern, sorted, without counts.
func Names(w io.Writer, svc service.Service, pattern string, opts Options) ([]string, error) {
	tags, err := svc.Tags(pattern)
	if err != nil {
		return nil, err
	}
	if tags == nil {
		tags = []string{}
	}
	tags = limit(tags, opts.Limit)
	return tags, format.Names(w, tags)
}

// Add adds comma-separated tags to the file at path.
func Add(w io.Writer, svc service.Service, tags, path string, opts Options) (Result, error) {
	dst, err := svc.Add(tags, path)
	if err != nil {
		return Result{Path: path, Action: "add"}, err
	}
	return report(w, svc, "add", path, dst, opts)
}

// Remove removes one tag from the file at path.
func Remove(w io.Writer, svc service.Service, tag, path string, opts Options) (Result, error) {
	dst, err := svc.Remove(tag, path)
	if err != nil {
		return Result{Path: path, Action: "remove"}, err
	}
	return report(w, svc, "remove", path, dst, opts)
}

func report(w io.Writer, svc service.Service, action, path, dst string, opts Options) (Result, error) {
	tags := svc.Decode(dst).Tags
	if tags == nil {
		tags = []string{}
	}
	result := Result{
		Path:    path,
		NewPath: dst,
		Action:  action,
		Tags:    tags,
		Changed: dst != path,
		DryRun:  svc.DryRun(),
	}

	if result.DryRun && result.Changed {
		return result, format.Changes(w, []rewrite.Change{{Old: path, New: dst}}, true, opts.Colour)
	}
	return result, format.Paths(w, []string{dst})
}

// Rename replaces tag old with newTags on every file under root. Changes
// made before a failure are still printed and returned.
func Rename(w io.Writer, svc service.Service, old, newTags, root string, opts Options) (RenameResult, error) {
	changes, err := svc.Rename(root, old, newTags)
	result := RenameResult{
		Old:     codec.Normalise(old),
		New:     codec.ParseList(newTags),
		Changes: changes,
		DryRun:  svc.DryRun(),
	}
	if result.Changes == nil {
		result.Changes = []rewrite.Change{}
	}
	if ferr := format.Changes(w, result.Changes, result.DryRun, opts.Colour); err == nil {
		err = ferr
	}
	if err != nil {
		result.Error = err.Error()
	}
	return result, err
}

// Find prints the files under pattern carrying every listed tag.
func Find(w io.Writer, svc service.Service, tags, pattern string, opts Options) (FindResult, error) {
	files, err := svc.Find(tags, pattern)
	if err != nil {
		return FindResult{}, err
	}
	result := FindResult{Tags: codec.ParseList(tags), Files: limit(files, opts.Limit)}
	if result.Tags == nil {
		result.Tags = []string{}
	}
	if result.Files == nil {
		result.Files = []string{}
	}

	if opts.Tree {
		return result, format.Tree(w, result.Files)
	}
	return result, format.Paths(w, result.Files)
}

// Show prints the decoded tags of each file matched by paths.
func Show(w io.Writer, svc service.Service, paths ...string) ([]service.FileTags, error) {
	files, err := svc.Show(paths...)
	if err != nil {
		return nil, err
	}
	return files, format.FileTags(w, files)
}
