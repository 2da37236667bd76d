// events.go defines the event types for extension notifications.
//
// Events are fire-and-forget: extensions observe a rename after it happened
// and cannot block it. Dry runs fire no events.

package extension

// EventType identifies the kind of event.
type EventType string

const (
	EventTagAdd    EventType = "tag:add"
	EventTagRemove EventType = "tag:remove"
	EventTagRename EventType = "tag:rename"
)

// Event is the base interface for all events.
type Event interface {
	EventType() EventType
	EventPath() string
}

// TagEvent is fired after tags were added to or removed from one file.
type TagEvent struct {
	Path    string   // name before the change
	NewPath string   // name after the change
	Tags    []string // tags added or removed
	Added   bool     // true=added, false=removed
}

func (e TagEvent) EventType() EventType {
	if e.Added {
		return EventTagAdd
	}
	return EventTagRemove
}
func (e TagEvent) EventPath() string { return e.Path }

// RenameEvent is fired once per file touched by a tag rename.
type RenameEvent struct {
	Path    string
	NewPath string
	Old     string   // tag replaced
	New     []string // tags put in its place
}

func (e RenameEvent) EventType() EventType { return EventTagRename }
func (e RenameEvent) EventPath() string    { return e.Path }

// EventHandler is implemented by extensions that want to receive events.
type EventHandler interface {
	HandleEvent(ctx Context, e Event) error
}
