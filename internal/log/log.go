// Package log records an audit trail of oktags operations.
// Entries are stored in ~/.oktags/log/oktags-log.db and cover every CLI
// command and MCP tool call across all directories oktags has been run in.
//
// The trail is write-only: oktags never reads it back, and it cannot be used
// to undo a rename.
//
// # Fluent API
//
//	log.Event("tag:add", "add").
//		Path(file).
//		Detail("tags", csv).
//		Resolved(newPath).
//		Write(err)
//
// The source is "tag:{command}" for CLI commands or "mcp:{operation}" for MCP
// tools.
package log

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

var (
	global *Logger
	mu     sync.Mutex
)

// Entry represents a single log entry.
type Entry struct {
	Source string // e.g. "tag:mv", "mcp:find"
	Action string // verb: add, remove, rename, list, find, show, ...
	Path   string // input file, pattern or root

	// ResolvedPath is the file's name after the operation, when it changed.
	ResolvedPath string
	DryRun       bool

	Start int64 // unix millis when Event() was called
	End   int64 // unix millis when Write() was called

	Success bool
	Error   string
	Detail  map[string]any
}

// Builder constructs a log entry using a fluent API.
// Create with [Event], chain methods to set fields, then call [Builder.Write].
type Builder struct {
	entry Entry
}

// Event creates a new log entry builder for an operation.
func Event(source, action string) *Builder {
	return &Builder{
		entry: Entry{
			Source: source,
			Action: action,
			Start:  time.Now().UnixMilli(),
		},
	}
}

// Path sets the file, pattern or root the operation was given.
func (b *Builder) Path(path string) *Builder {
	b.entry.Path = path
	return b
}

// Resolved sets the path the file ended up at.
//
//	l.Resolved(newPath) // after the rename succeeded
func (b *Builder) Resolved(path string) *Builder {
	b.entry.ResolvedPath = path
	return b
}

// DryRun marks the entry as a planned, not performed, change.
func (b *Builder) DryRun(dry bool) *Builder {
	b.entry.DryRun = dry
	return b
}

// Detail adds a key-value pair to the entry's detail map: tags requested,
// result counts, old and new tag names.
func (b *Builder) Detail(key string, value any) *Builder {
	if b.entry.Detail == nil {
		b.entry.Detail = make(map[string]any)
	}
	b.entry.Detail[key] = value
	return b
}

// Write writes the log entry, deriving success/failure from err.
//
//	newPath, err := svc.Add(tags, file)
//	log.Event("tag:add", "add").Path(file).Resolved(newPath).Write(err)
func (b *Builder) Write(err error) {
	b.entry.End = time.Now().UnixMilli()
	b.entry.Success = err == nil
	if err != nil {
		b.entry.Error = err.Error()
	}
	Log(b.entry)
}

// Open initialises the global logger. Safe to call multiple times.
// Errors are returned but callers may choose to ignore them (best-effort logging).
func Open() error {
	mu.Lock()
	defer mu.Unlock()

	if global != nil {
		return nil
	}

	p := dbPath()
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", p)
	if err != nil {
		return err
	}

	if err := migrate(db); err != nil {
		db.Close()
		return err
	}

	global = &Logger{db: db}
	return nil
}

// SetProject sets the project identifier for subsequent log entries.
// dir should be the absolute working directory.
func SetProject(dir string) {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.project = hash(dir)
	}
}

// Log writes an entry. Safe to call if logger not initialised (no-op).
func Log(e Entry) {
	mu.Lock()
	l := global
	mu.Unlock()

	if l == nil {
		return
	}
	l.log(e)
}

// Close closes the global logger.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.db.Close()
		global = nil
	}
}
