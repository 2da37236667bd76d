// read.go implements the query side of the Service: counts, known tags,
// subset search and per-file decoding.

package tree

import (
	"fmt"

	"github.com/jpl-au/oktags/internal/codec"
	"github.com/jpl-au/oktags/internal/index"
	"github.com/jpl-au/oktags/internal/query"
	"github.com/jpl-au/oktags/internal/rewrite"
	"github.com/jpl-au/oktags/internal/service"
	"github.com/jpl-au/oktags/internal/validate"
)

// Counts returns tag frequencies under pattern, most used first.
func (s *Service) Counts(pattern string) ([]query.TagCount, error) {
	pattern = s.pattern(pattern)
	tags, err := index.Occurrences(s.fs, pattern, s.walk)
	if err != nil {
		return nil, fmt.Errorf("count tags in %q: %w", pattern, err)
	}
	return query.Rank(query.Count(tags)), nil
}

// Tags returns the distinct tags under pattern, sorted.
func (s *Service) Tags(pattern string) ([]string, error) {
	pattern = s.pattern(pattern)
	tags, err := index.Known(s.fs, pattern, s.walk)
	if err != nil {
		return nil, fmt.Errorf("list tags in %q: %w", pattern, err)
	}
	return tags, nil
}

// Find returns, sorted, the files under pattern carrying every listed tag.
func (s *Service) Find(tags, pattern string) ([]string, error) {
	pattern = s.pattern(pattern)
	requested := codec.ParseList(tags)
	if err := validate.Tags(requested); err != nil {
		return nil, err
	}
	ix, err := index.Build(s.fs, pattern, s.walk)
	if err != nil {
		return nil, fmt.Errorf("find %q in %q: %w", tags, pattern, err)
	}
	return query.FilesWithAllTags(requested, ix.Map()), nil
}

// Show decodes every file matched by each of paths, in argument order.
func (s *Service) Show(paths ...string) ([]service.FileTags, error) {
	out := []service.FileTags{}
	for _, p := range paths {
		if err := validate.Path(p); err != nil {
			return nil, err
		}
		found := false
		err := index.Walk(s.fs, p, s.walk, func(path string, n codec.Name) error {
			found = true
			tags := n.Tags
			if tags == nil {
				tags = []string{}
			}
			out = append(out, service.FileTags{Path: path, Tags: tags})
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("show %q: %w", p, err)
		}
		if !found {
			return nil, fmt.Errorf("show: %w: %s", rewrite.ErrFileNotFound, p)
		}
	}
	return out, nil
}
