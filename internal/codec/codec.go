// Package codec encodes tag sets into file names and decodes them back.
//
// A tagged file name has the form
//
//	<stem>--[<tag1>,<tag2>,...]<.ext>
//
// The tag segment is a literal "--" followed by one bracket pair holding a
// comma-separated, lexicographically sorted list of normalised tags. A name
// without the segment carries no tags. This format is the only persistent
// state oktags has, so Encode must be byte-stable: the same tag set always
// produces the same name regardless of how the set was assembled.
//
// Decoding never fails. Anything that does not look like a tag segment is
// simply part of the stem.
package codec

import (
	"path/filepath"
	"slices"
	"strings"
)

// Marker opens the tag segment. The list itself is wrapped in brackets.
const Marker = "--"

const (
	tagOpen  = Marker + "["
	tagClose = "]"
	sep      = ","
)

// Name is a file path split into its tagging components.
type Name struct {
	Dir  string   // directory part, "." for bare names
	Stem string   // base name without tag segment and extension
	Tags []string // sorted, unique, normalised
	Ext  string   // extension including the dot, or ""
}

// Codec decodes file names. The zero value understands the bracketed format
// only; set Legacy to also read names written by older versions
// ("<stem>--<tag1>,<tag2><.ext>"). Encoding always uses the bracketed form.
type Codec struct {
	Legacy bool
}

// Decode splits path into a Name using the bracketed format only.
func Decode(path string) Name {
	return Codec{}.Decode(path)
}

// Decode splits path into directory, stem, tags and extension.
func (c Codec) Decode(path string) Name {
	dir, base := filepath.Split(path)
	n := Name{Dir: filepath.Clean(dir)}
	if dir == "" {
		n.Dir = "."
	}

	if stem, list, ext, ok := segment(base); ok {
		n.Stem, n.Ext = stem, ext
		n.Tags = split(list)
		return n
	}

	n.Ext = filepath.Ext(base)
	if n.Ext == base {
		// Dot files like ".envrc" have no extension.
		n.Ext = ""
	}
	n.Stem = strings.TrimSuffix(base, n.Ext)

	if c.Legacy {
		if i := strings.Index(n.Stem, Marker); i >= 0 {
			n.Tags = split(n.Stem[i+len(Marker):])
			n.Stem = n.Stem[:i]
		}
	}
	return n
}

// segment locates a bracketed tag segment in base. The segment must be
// followed by nothing or by an extension; "a--[x]b" is not tagged.
func segment(base string) (stem, list, ext string, ok bool) {
	i := strings.LastIndex(base, tagOpen)
	if i < 0 {
		return "", "", "", false
	}
	body := base[i+len(tagOpen):]
	j := strings.Index(body, tagClose)
	if j < 0 {
		return "", "", "", false
	}
	rest := body[j+len(tagClose):]
	if rest != "" && !strings.HasPrefix(rest, ".") {
		return "", "", "", false
	}
	return base[:i], body[:j], rest, true
}

// split parses a raw comma-separated list as found on disk: each element is
// trimmed and lower-cased, empties dropped, and the result sorted and unique.
func split(list string) []string {
	var tags []string
	for _, t := range strings.Split(list, sep) {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			tags = append(tags, t)
		}
	}
	return sortUnique(tags)
}

// Encode renders a file name. An empty tag set yields stem+ext with no
// segment at all, so an untagged file and a file whose last tag was removed
// are indistinguishable.
func Encode(stem string, tags []string, ext string) string {
	tags = sortUnique(slices.Clone(tags))
	if len(tags) == 0 {
		return stem + ext
	}
	return stem + tagOpen + strings.Join(tags, sep) + tagClose + ext
}

// Filename encodes n's base name.
func (n Name) Filename() string {
	return Encode(n.Stem, n.Tags, n.Ext)
}

// Path encodes n back into a full path.
func (n Name) Path() string {
	return filepath.Join(n.Dir, n.Filename())
}

// Has reports whether tag is in n's tag set.
func (n Name) Has(tag string) bool {
	_, found := slices.BinarySearch(n.Tags, tag)
	return found
}

// WithTags returns a copy of n carrying tags instead of its current set.
func (n Name) WithTags(tags []string) Name {
	n.Tags = sortUnique(slices.Clone(tags))
	return n
}

func sortUnique(tags []string) []string {
	slices.Sort(tags)
	return slices.Compact(tags)
}
