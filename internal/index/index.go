// Package index builds the tag -> files index from a directory walk.
//
// There is no stored index. Every call walks the filesystem, decodes each
// matching filename and groups paths by tag, so the result always reflects
// the names currently on disk. If another process renames files during the
// walk the index for that call may be stale or partial; nothing is locked.
package index

import (
	"errors"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/jpl-au/oktags/internal/codec"
	"github.com/jpl-au/oktags/internal/glob"
	"github.com/jpl-au/oktags/internal/validate"
	"github.com/spf13/afero"
)

// DefaultPattern matches every file below the working directory.
const DefaultPattern = "**/*"

// Options controls how a walk selects and decodes files.
type Options struct {
	Codec         codec.Codec // Legacy decoding of unbracketed names
	IncludeHidden bool        // Descend into and match dot files
}

// Index maps each tag to the files carrying it, in walk order.
// Files without tags are not present.
type Index struct {
	buckets map[string][]string
	order   []string
}

func newIndex() *Index {
	return &Index{buckets: make(map[string][]string)}
}

func (ix *Index) add(tag, path string) {
	if _, ok := ix.buckets[tag]; !ok {
		ix.order = append(ix.order, tag)
	}
	ix.buckets[tag] = append(ix.buckets[tag], path)
}

// Files returns the paths tagged with tag, or an empty slice for an unknown tag.
func (ix *Index) Files(tag string) []string {
	return slices.Clone(ix.buckets[tag])
}

// Tags returns every indexed tag in the order it was first seen.
func (ix *Index) Tags() []string {
	return slices.Clone(ix.order)
}

// Map returns a copy of the tag -> files mapping.
func (ix *Index) Map() map[string][]string {
	m := make(map[string][]string, len(ix.buckets))
	for t, files := range ix.buckets {
		m[t] = slices.Clone(files)
	}
	return m
}

// Len returns the number of distinct tags.
func (ix *Index) Len() int { return len(ix.buckets) }

// Build walks pattern and indexes every matching file by its decoded tags.
func Build(fsys afero.Fs, pattern string, opts Options) (*Index, error) {
	ix := newIndex()
	err := Walk(fsys, pattern, opts, func(path string, n codec.Name) error {
		for _, t := range n.Tags {
			ix.add(t, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ix, nil
}

// Occurrences returns one entry per (tag, file) pair under pattern, sorted.
// A tag carried by three files appears three times; this is the input for
// frequency counts.
func Occurrences(fsys afero.Fs, pattern string, opts Options) ([]string, error) {
	var tags []string
	err := Walk(fsys, pattern, opts, func(_ string, n codec.Name) error {
		tags = append(tags, n.Tags...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.Sort(tags)
	return tags, nil
}

// Known returns the distinct tags under pattern, sorted.
func Known(fsys afero.Fs, pattern string, opts Options) ([]string, error) {
	ix, err := Build(fsys, pattern, opts)
	if err != nil {
		return nil, err
	}
	return slices.Sorted(maps.Keys(ix.buckets)), nil
}

// Walk calls fn for every non-directory entry matching pattern, in lexical
// walk order. A pattern without metacharacters names a single file, or a
// directory whose whole subtree is walked. A pattern that matches nothing is
// not an error.
func Walk(fsys afero.Fs, pattern string, opts Options, fn func(path string, n codec.Name) error) error {
	if pattern == "" {
		pattern = DefaultPattern
	}
	pattern = filepath.Clean(pattern)

	// Tagged names contain brackets, so an existing path is taken literally
	// before it is ever read as a pattern.
	info, err := fsys.Stat(pattern)
	switch {
	case err == nil && !info.IsDir():
		return fn(pattern, opts.Codec.Decode(pattern))
	case err == nil:
		pattern = filepath.Join(pattern, glob.Recursive, "*")
	case !glob.HasMeta(pattern):
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := validate.Pattern(pattern); err != nil {
		return err
	}

	root := glob.Root(pattern)
	maxDepth, bounded := glob.Depth(pattern)
	return afero.Walk(fsys, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if path == root {
				if errors.Is(err, fs.ErrNotExist) {
					return nil
				}
				return err
			}
			// Unreadable entries below the root are skipped, as a shell glob would.
			if info != nil && info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if path != root && !opts.IncludeHidden && strings.HasPrefix(info.Name(), ".") {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if info.IsDir() {
			// Without ** nothing below the pattern's own depth can match.
			if bounded && path != root && glob.Segments(path) >= maxDepth {
				return filepath.SkipDir
			}
			return nil
		}

		ok, err := glob.Match(pattern, path)
		if err != nil || !ok {
			return err
		}
		return fn(path, opts.Codec.Decode(path))
	})
}
