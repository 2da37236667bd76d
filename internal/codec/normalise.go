// normalise.go turns user input into tags that are safe to embed in a name.
//
// Decoding is lenient (trim + lower-case) because it must accept whatever is
// already on disk. Writing is strict: anything that would corrupt the segment
// on the next decode, or create a path on the filesystem, is removed here.

package codec

import (
	"strings"
)

// structural strips the segment delimiters and path separators.
var structural = strings.NewReplacer(
	sep, "",
	"[", "",
	"]", "",
	"/", "",
	"\\", "",
)

// Normalise returns the canonical form of a single tag: trimmed, lower-cased,
// each space replaced with an underscore, delimiters removed and any run of
// dashes that would form the "--" marker collapsed to one dash. The result
// may be empty.
func Normalise(tag string) string {
	t := strings.ToLower(strings.TrimSpace(tag))
	t = strings.ReplaceAll(t, " ", "_")
	t = structural.Replace(t)
	for strings.Contains(t, Marker) {
		t = strings.ReplaceAll(t, Marker, "-")
	}
	return t
}

// ParseList normalises a comma-separated list of tags as typed by a user.
// Empty elements are dropped; the result is sorted and unique.
func ParseList(csv string) []string {
	var tags []string
	for _, t := range strings.Split(csv, sep) {
		if t = Normalise(t); t != "" {
			tags = append(tags, t)
		}
	}
	return sortUnique(tags)
}
