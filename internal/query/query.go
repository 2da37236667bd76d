// Package query answers tag questions against a tag index: how often each
// tag is used, which files carry a tag, and which files carry all of a set
// of tags.
//
// Queries are pure functions of their inputs. Anything that needs the
// filesystem goes through package index first.
package query

import (
	"cmp"
	"maps"
	"slices"

	"github.com/jpl-au/oktags/internal/invert"
)

// TagCount is one row of a frequency table.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// Count builds a frequency table from a tag sequence (one entry per tagged
// file). Rows appear in the order each tag was first seen.
func Count(tags []string) []TagCount {
	pos := make(map[string]int)
	var counts []TagCount
	for _, t := range tags {
		i, ok := pos[t]
		if !ok {
			i = len(counts)
			pos[t] = i
			counts = append(counts, TagCount{Tag: t})
		}
		counts[i].Count++
	}
	return counts
}

// Rank sorts counts by count, highest first. Ties keep their table order,
// so ranking the output of Count over sorted input breaks ties
// alphabetically.
func Rank(counts []TagCount) []TagCount {
	ranked := slices.Clone(counts)
	slices.SortStableFunc(ranked, func(a, b TagCount) int {
		return cmp.Compare(b.Count, a.Count)
	})
	return ranked
}

// FilesWithTag returns the files indexed under tag, in index order, or an
// empty slice when the tag is unknown.
func FilesWithTag(tag string, index map[string][]string) []string {
	files := slices.Clone(index[tag])
	if files == nil {
		return []string{}
	}
	return files
}

// TagsOf inverts a tag index into each file's tag set. Tags are listed in
// ascending order.
func TagsOf(index map[string][]string) map[string][]string {
	inv := invert.SafeInvert(index)
	out := make(map[string][]string, len(inv))
	for path, tags := range inv {
		out[path] = tags
	}
	return out
}

// FilesWithAllTags returns, sorted, every indexed file whose tag set contains
// all of requested. The order of requested does not matter. Requesting a tag
// no file carries yields an empty slice.
func FilesWithAllTags(requested []string, index map[string][]string) []string {
	files := []string{}
	for path, tags := range TagsOf(index) {
		if subset(requested, tags) {
			files = append(files, path)
		}
	}
	slices.Sort(files)
	return files
}

// subset reports whether every element of want is in have.
func subset(want, have []string) bool {
	set := make(map[string]struct{}, len(have))
	for _, t := range have {
		set[t] = struct{}{}
	}
	for _, t := range want {
		if _, ok := set[t]; !ok {
			return false
		}
	}
	return true
}

// Tags returns the distinct tags of an index, sorted.
func Tags(index map[string][]string) []string {
	return slices.Sorted(maps.Keys(index))
}
