// registry.go holds the global extension registry.
//
// Extensions self-register from init(), before main runs. A duplicate name
// is a programming error and panics, as database/sql.Register does.
// Registration order is kept so commands and MCP tools are listed the same
// way on every run.

package extension

import "sync"

var (
	mu       sync.RWMutex
	registry = make(map[string]Extension)
	order    []string
)

// Register adds an extension to the registry. Called from init() functions.
func Register(e Extension) {
	mu.Lock()
	defer mu.Unlock()

	name := e.Name()
	if _, exists := registry[name]; exists {
		panic("extension already registered: " + name)
	}
	registry[name] = e
	order = append(order, name)
}

// All returns all registered extensions in registration order.
func All() []Extension {
	mu.RLock()
	defer mu.RUnlock()

	exts := make([]Extension, 0, len(order))
	for _, name := range order {
		exts = append(exts, registry[name])
	}
	return exts
}

// Get returns a specific extension by name, or nil if not found.
func Get(name string) Extension {
	mu.RLock()
	defer mu.RUnlock()
	return registry[name]
}

// Tools returns the MCP tools of every registered extension, in
// registration order.
func Tools() []MCPTool {
	var tools []MCPTool
	for _, e := range All() {
		tools = append(tools, e.MCPTools()...)
	}
	return tools
}

// Dispatch delivers e to every extension implementing EventHandler and
// returns the handlers' errors keyed by extension name. Handler errors never
// undo the operation that fired the event.
func Dispatch(ctx Context, e Event) map[string]error {
	var errs map[string]error
	for _, ext := range All() {
		h, ok := ext.(EventHandler)
		if !ok {
			continue
		}
		if err := h.HandleEvent(ctx, e); err != nil {
			if errs == nil {
				errs = make(map[string]error)
			}
			errs[ext.Name()] = err
		}
	}
	return errs
}
