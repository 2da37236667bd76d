// write.go implements the mutating side of the Service. Each call delegates
// to the rewrite engine and, once the change is on disk, fires an event.

package tree

import (
	"fmt"

	"github.com/jpl-au/oktags/extension"
	"github.com/jpl-au/oktags/internal/codec"
	"github.com/jpl-au/oktags/internal/rewrite"
)

// Add adds comma-separated tags to the file at path.
func (s *Service) Add(tags, path string) (string, error) {
	dst, err := s.engine.AddTags(tags, path)
	if err != nil {
		return "", fmt.Errorf("add %q to %q: %w", tags, path, err)
	}
	if dst != path {
		s.fireEvent(extension.TagEvent{Path: path, NewPath: dst, Tags: codec.ParseList(tags), Added: true})
	}
	return dst, nil
}

// Remove removes tag from the file at path.
func (s *Service) Remove(tag, path string) (string, error) {
	dst, err := s.engine.DeleteTag(tag, path)
	if err != nil {
		return "", fmt.Errorf("remove %q from %q: %w", tag, path, err)
	}
	if dst != path {
		s.fireEvent(extension.TagEvent{Path: path, NewPath: dst, Tags: []string{codec.Normalise(tag)}})
	}
	return dst, nil
}

// Rename replaces tag old with newTags on every file under root. An empty
// root means the default pattern.
func (s *Service) Rename(root, old, newTags string) ([]rewrite.Change, error) {
	changes, err := s.engine.RenameTag(s.pattern(root), old, newTags)
	for _, c := range changes {
		s.fireEvent(extension.RenameEvent{
			Path:    c.Old,
			NewPath: c.New,
			Old:     codec.Normalise(old),
			New:     codec.ParseList(newTags),
		})
	}
	if err != nil {
		return changes, fmt.Errorf("rename %q to %q: %w", old, newTags, err)
	}
	return changes, nil
}
