// Package diff renders previews of file renames, used by --dry-run to show
// exactly which part of a name a tag change would touch.
package diff

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Markers wrapped around removed and inserted text in plain output.
const (
	delOpen  = "[-"
	delClose = "-]"
	insOpen  = "{+"
	insClose = "+}"
)

// Result holds one rename preview.
type Result struct {
	Old  string `json:"old"`
	New  string `json:"new"`
	Diff string `json:"diff"` // base name with [-removed-] and {+inserted+} spans
	ops  []diffmatchpatch.Diff
}

// Compute diffs the base names of oldPath and newPath character by character.
// The directory is never part of the diff; a rename never moves a file.
func Compute(oldPath, newPath string) Result {
	dmp := diffmatchpatch.New()
	d := dmp.DiffMain(filepath.Base(oldPath), filepath.Base(newPath), false)
	d = dmp.DiffCleanupSemantic(d)

	return Result{
		Old:  oldPath,
		New:  newPath,
		Diff: render(d, false),
		ops:  d,
	}
}

// Changed reports whether the two names differ.
func (r Result) Changed() bool {
	return r.Old != r.New
}

// render writes the diff inline, either with text markers or ANSI colours.
func render(diffs []diffmatchpatch.Diff, colour bool) string {
	const (
		red   = "\033[31m"
		green = "\033[32m"
		reset = "\033[0m"
	)

	var b strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			if colour {
				b.WriteString(red + d.Text + reset)
			} else {
				b.WriteString(delOpen + d.Text + delClose)
			}
		case diffmatchpatch.DiffInsert:
			if colour {
				b.WriteString(green + d.Text + reset)
			} else {
				b.WriteString(insOpen + d.Text + insClose)
			}
		case diffmatchpatch.DiffEqual:
			b.WriteString(d.Text)
		}
	}
	return b.String()
}

// Format returns the preview as two lines: the full rename, then the
// inline diff of the base name.
func (r Result) Format(colour bool) string {
	inline := r.Diff
	if colour {
		inline = render(r.ops, true)
	}
	return fmt.Sprintf("%s -> %s\n  %s\n", r.Old, r.New, inline)
}
