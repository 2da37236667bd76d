// Package rewrite changes the tags of files by renaming them.
//
// Every operation decodes the current name, edits the tag set and encodes a
// new name, then moves the file only when the name actually changed. The new
// name is always the canonical encoding, so even an operation that leaves the
// tag set alone rewrites an unsorted, upper-case or legacy name. The
// source is always stat'ed first so a file that vanished since the index was
// built is reported as ErrFileNotFound rather than silently recreated. A
// destination that already belongs to a different file is never overwritten.
//
// With Options.DryRun set, the same checks run but nothing is moved, and the
// returned paths describe what would have happened.
package rewrite

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/jpl-au/oktags/internal/codec"
	"github.com/jpl-au/oktags/internal/index"
	"github.com/jpl-au/oktags/internal/validate"
	"github.com/spf13/afero"
)

// Options configures an Engine.
type Options struct {
	DryRun        bool        // Report changes without renaming
	Codec         codec.Codec // How existing names are decoded
	IncludeHidden bool        // Let RenameTag visit dot files
}

// Change records one file that was (or would be) renamed.
type Change struct {
	Old string `json:"old"`
	New string `json:"new"`
}

// Engine performs tag rewrites on a filesystem.
type Engine struct {
	fs   afero.Fs
	opts Options
}

// New returns an Engine operating on fsys.
func New(fsys afero.Fs, opts Options) *Engine {
	return &Engine{fs: fsys, opts: opts}
}

// DryRun reports whether the engine only plans changes.
func (e *Engine) DryRun() bool { return e.opts.DryRun }

// AddTags adds the comma-separated tags in csv to the file at path and
// returns its new path. Tags are normalised first and tags the file already
// carries are ignored. The result is the canonical name of the merged set.
func (e *Engine) AddTags(csv, path string) (string, error) {
	if path == "" {
		return "", ErrMissingFile
	}
	if err := validate.Path(path); err != nil {
		return "", err
	}
	tags := codec.ParseList(csv)
	if len(tags) == 0 {
		return "", fmt.Errorf("%w: %q", ErrMissingTag, csv)
	}
	if err := validate.Tags(tags); err != nil {
		return "", err
	}

	n := e.opts.Codec.Decode(path)
	return e.move(path, n.WithTags(append(slices.Clone(n.Tags), tags...)).Path())
}

// DeleteTag removes tag from the file at path and returns its new path.
// Removing a tag the file does not carry leaves the tag set unchanged, and
// the result is the canonical encoding of that set. The file must exist.
func (e *Engine) DeleteTag(tag, path string) (string, error) {
	if path == "" {
		return "", ErrMissingFile
	}
	if err := validate.Path(path); err != nil {
		return "", err
	}
	t := codec.Normalise(tag)
	if t == "" {
		return "", fmt.Errorf("%w: %q", ErrMissingTag, tag)
	}

	n := e.opts.Codec.Decode(path)
	rest := slices.DeleteFunc(slices.Clone(n.Tags), func(s string) bool { return s == t })
	return e.move(path, n.WithTags(rest).Path())
}

// RenameTag replaces tag old with the tags in newCSV on every file below
// root that carries old. A file matches on its decoded tag set, so renaming
// "foo" never touches a file tagged "foobar". Each file is given the new
// tags first and then loses old, so old is gone afterwards even when it is
// listed among the new tags.
//
// Changes are returned in walk order. The first failure stops the rename
// and is returned together with the changes already made.
func (e *Engine) RenameTag(root, old, newCSV string) ([]Change, error) {
	oldTag := codec.Normalise(old)
	if oldTag == "" {
		return nil, fmt.Errorf("%w: %q", ErrMissingTag, old)
	}
	newTags := codec.ParseList(newCSV)
	if len(newTags) == 0 {
		return nil, ErrMissingRenameTarget
	}
	if err := validate.Tags(newTags); err != nil {
		return nil, err
	}

	// Collect before renaming so the walk never sees its own output.
	var targets []string
	opts := index.Options{Codec: e.opts.Codec, IncludeHidden: e.opts.IncludeHidden}
	err := index.Walk(e.fs, root, opts, func(path string, n codec.Name) error {
		if n.Has(oldTag) {
			targets = append(targets, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("rename %q: %w", oldTag, err)
	}

	changes := []Change{}
	for _, path := range targets {
		var dst string
		if e.opts.DryRun {
			dst, err = e.plan(path, oldTag, newTags)
		} else {
			dst, err = e.AddTags(newCSV, path)
			if err == nil {
				dst, err = e.DeleteTag(oldTag, dst)
			}
		}
		if err != nil {
			return changes, fmt.Errorf("rename %q in %q: %w", oldTag, path, err)
		}
		if dst != path {
			changes = append(changes, Change{Old: path, New: dst})
		}
	}
	return changes, nil
}

// plan computes a rename's destination in one step, since the intermediate
// name of a dry-run add does not exist on disk for the delete to stat.
func (e *Engine) plan(path, oldTag string, newTags []string) (string, error) {
	n := e.opts.Codec.Decode(path)
	tags := append(slices.Clone(n.Tags), newTags...)
	tags = slices.DeleteFunc(tags, func(s string) bool { return s == oldTag })
	return e.move(path, n.WithTags(tags).Path())
}

// move renames src to dst, returning dst. When the two are equal only the
// existence of src is checked.
func (e *Engine) move(src, dst string) (string, error) {
	info, err := e.fs.Stat(src)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrFileNotFound, src)
		}
		return "", fmt.Errorf("stat %q: %w", src, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrIsDirectory, src)
	}
	if filepath.Clean(src) == dst {
		return dst, nil
	}

	if existing, err := e.fs.Stat(dst); err == nil {
		// Case-insensitive filesystems report the source itself.
		if !os.SameFile(info, existing) {
			return "", fmt.Errorf("%w: %s", ErrTargetExists, dst)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("stat %q: %w", dst, err)
	}

	if e.opts.DryRun {
		return dst, nil
	}
	if err := e.fs.Rename(src, dst); err != nil {
		return "", fmt.Errorf("rename %q to %q: %w", src, dst, err)
	}
	return dst, nil
}
