// Package format provides output formatting utilities for CLI display.
//
// Centralises formatting logic so that command implementations focus on
// tag operations while this package handles presentation concerns like
// column alignment, tree rendering, and colourised rename previews.
package format

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jpl-au/oktags/internal/diff"
	"github.com/jpl-au/oktags/internal/query"
	"github.com/jpl-au/oktags/internal/rewrite"
	"github.com/jpl-au/oktags/internal/service"
)

// Counts prints one `tag(count)` line per tag, in the order given.
func Counts(w io.Writer, counts []query.TagCount) error {
	for _, c := range counts {
		if _, err := fmt.Fprintf(w, "%s(%d)\n", c.Tag, c.Count); err != nil {
			return err
		}
	}
	return nil
}

// Names prints bare tag names, one per line.
func Names(w io.Writer, tags []string) error {
	for _, t := range tags {
		if _, err := fmt.Fprintln(w, t); err != nil {
			return err
		}
	}
	return nil
}

// Paths prints just file paths, one per line.
func Paths(w io.Writer, paths []string) error {
	for _, p := range paths {
		if _, err := fmt.Fprintln(w, p); err != nil {
			return err
		}
	}
	return nil
}

// FileTags prints each file followed by its tags. Untagged files show "-".
func FileTags(w io.Writer, files []service.FileTags) error {
	for _, f := range files {
		tags := "-"
		if len(f.Tags) > 0 {
			tags = strings.Join(f.Tags, ", ")
		}
		if _, err := fmt.Fprintf(w, "%s: %s\n", f.Path, tags); err != nil {
			return err
		}
	}
	return nil
}

// Changes prints one line per rename. A dry run also prints an inline diff
// of each base name so the affected segment is easy to spot.
func Changes(w io.Writer, changes []rewrite.Change, dryRun, colour bool) error {
	for _, c := range changes {
		var err error
		if dryRun {
			_, err = fmt.Fprint(w, diff.Compute(c.Old, c.New).Format(colour))
		} else {
			_, err = fmt.Fprintf(w, "%s -> %s\n", c.Old, c.New)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Tree prints paths as a directory tree.
func Tree(w io.Writer, paths []string) error {
	if len(paths) == 0 {
		return nil
	}

	type node struct {
		children map[string]*node
		isFile   bool
	}

	root := &node{children: make(map[string]*node)}

	for _, p := range paths {
		p = strings.TrimPrefix(filepath.ToSlash(filepath.Clean(p)), "/")
		current := root
		for _, part := range strings.Split(p, "/") {
			if current.children[part] == nil {
				current.children[part] = &node{children: make(map[string]*node)}
			}
			current = current.children[part]
		}
		current.isFile = true
	}

	var printNode func(n *node, prefix string)
	printNode = func(n *node, prefix string) {
		names := make([]string, 0, len(n.children))
		for name := range n.children {
			names = append(names, name)
		}
		sort.Strings(names)

		for i, name := range names {
			child := n.children[name]
			last := i == len(names)-1

			connector := "├── "
			if last {
				connector = "└── "
			}

			suffix := ""
			if !child.isFile {
				suffix = "/"
			}
			fmt.Fprintf(w, "%s%s%s%s\n", prefix, connector, name, suffix)

			pfx := prefix
			if last {
				pfx += "    "
			} else {
				pfx += "│   "
			}
			if len(child.children) > 0 {
				printNode(child, pfx)
			}
		}
	}

	printNode(root, "")
	return nil
}
