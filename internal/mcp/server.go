// Package mcp implements the Model Context Protocol server, exposing oktags
// operations to LLMs. This lets AI assistants list, search and retag files
// through a standardised protocol.
package mcp

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/afero"

	"github.com/jpl-au/oktags/extension"
	"github.com/jpl-au/oktags/internal/config"
	"github.com/jpl-au/oktags/internal/service"
	"github.com/jpl-au/oktags/internal/tree"
)

// Version is advertised to clients for capability negotiation.
const Version = "1.0.0"

// Options carries the command-line overrides that apply on top of the
// loaded configuration for the lifetime of the server.
type Options struct {
	DryRun bool
	Hidden bool
}

// Serve starts the MCP server over stdio, enabling LLM integration.
// Uses stdio transport for compatibility with Claude Desktop and other MCP clients.
func Serve(fsys afero.Fs, opts Options) error {
	// Log to stderr; stdout is reserved for MCP JSON-RPC messages
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	s, h, err := newServer(fsys, opts)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		return err
	}

	slog.Info("oktags MCP server ready", "version", Version, "transport", "stdio",
		"pattern", h.service().Pattern(), "dry_run", opts.DryRun)

	err = server.ServeStdio(s)
	if errors.Is(err, context.Canceled) {
		slog.Info("server stopped")
		return nil
	}
	return err
}

// newServer builds the MCP server and its handlers without starting a
// transport.
func newServer(fsys afero.Fs, opts Options) (*server.MCPServer, *handlers, error) {
	h := &handlers{fs: fsys, opts: opts}
	if err := h.reload(); err != nil {
		return nil, nil, err
	}

	s := server.NewMCPServer(
		"oktags",
		Version,
		server.WithToolCapabilities(true),
	)

	registerTools(s, h)
	registerExtensionTools(s, h)

	return s, h, nil
}

// handlers provides MCP request handlers with access to the tag service.
// The service is rebuilt whenever the configuration changes.
type handlers struct {
	fs   afero.Fs
	opts Options

	mu     sync.RWMutex
	svc    *tree.Service
	extCtx extension.Context
}

// reload loads configuration and rebuilds the service from it.
func (h *handlers) reload() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	topts := tree.OptionsFrom(cfg)
	topts.DryRun = h.opts.DryRun
	topts.IncludeHidden = topts.IncludeHidden || h.opts.Hidden

	svc := tree.New(h.fs, topts)
	extCtx := extension.NewContext(svc, cfg)
	svc.SetExtensionContext(extCtx)

	h.mu.Lock()
	h.svc, h.extCtx = svc, extCtx
	h.mu.Unlock()
	return nil
}

func (h *handlers) service() service.Service {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.svc
}

func (h *handlers) extContext() extension.Context {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.extCtx
}

// registerTools exposes oktags operations as MCP tools for LLM invocation.
func registerTools(s *server.MCPServer, h *handlers) {
	// List tags
	s.AddTool(
		mcp.NewTool("oktags_list",
			mcp.WithDescription("List tags with how many files carry each, most used first"),
			mcp.WithString("pattern", mcp.Description("Glob pattern selecting files (supports *, ?, [..] and **); default is the configured search.pattern")),
		),
		h.listTags,
	)

	// Add tags
	s.AddTool(
		mcp.NewTool("oktags_add",
			mcp.WithDescription("Add tags to a file by renaming it to stem--[tags].ext. Returns the new path"),
			mcp.WithString("path", mcp.Required(), mcp.Description("File path")),
			mcp.WithString("tags", mcp.Required(), mcp.Description("Comma-separated tags, e.g. 'work, to read'")),
			mcp.WithBoolean("dry_run", mcp.Description("Report the new path without renaming")),
		),
		h.addTags,
	)

	// Remove tag
	s.AddTool(
		mcp.NewTool("oktags_remove",
			mcp.WithDescription("Remove one tag from a file. Removing an absent tag leaves the tags unchanged"),
			mcp.WithString("path", mcp.Required(), mcp.Description("File path")),
			mcp.WithString("tag", mcp.Required(), mcp.Description("Tag to remove")),
			mcp.WithBoolean("dry_run", mcp.Description("Report the new path without renaming")),
		),
		h.removeTag,
	)

	// Rename tag
	s.AddTool(
		mcp.NewTool("oktags_rename",
			mcp.WithDescription("Replace a tag with one or more tags on every file that carries it"),
			mcp.WithString("old", mcp.Required(), mcp.Description("Tag to replace")),
			mcp.WithString("new", mcp.Required(), mcp.Description("Comma-separated replacement tags")),
			mcp.WithString("root", mcp.Description("Glob pattern or directory to rename under; default is the configured search.pattern")),
			mcp.WithBoolean("dry_run", mcp.Description("Report planned changes without renaming")),
		),
		h.renameTag,
	)

	// Find files
	s.AddTool(
		mcp.NewTool("oktags_find",
			mcp.WithDescription("Find files carrying every listed tag"),
			mcp.WithString("tags", mcp.Required(), mcp.Description("Comma-separated tags; all must be present")),
			mcp.WithString("pattern", mcp.Description("Glob pattern selecting files to search")),
		),
		h.findFiles,
	)

	// Show tags of files
	s.AddTool(
		mcp.NewTool("oktags_show",
			mcp.WithDescription("Show the tags of one or more files"),
			mcp.WithArray("paths", mcp.Required(), mcp.Description("File paths or glob patterns"), mcp.WithStringItems()),
		),
		h.showTags,
	)

	// Guide
	s.AddTool(
		mcp.NewTool("oktags_guide",
			mcp.WithDescription("Get help/guide content for oktags commands"),
			mcp.WithString("topic", mcp.Description("Guide topic (e.g., 'add', 'find', 'mv') or empty for index")),
		),
		h.getGuide,
	)

	// Config Get
	s.AddTool(
		mcp.NewTool("oktags_config_get",
			mcp.WithDescription("Get a configuration value"),
			mcp.WithString("key", mcp.Description("Config key (search.pattern, decode.legacy, walk.hidden, audit.enabled) or empty for all")),
		),
		h.configGet,
	)

	// Config Set
	s.AddTool(
		mcp.NewTool("oktags_config_set",
			mcp.WithDescription("Set a configuration value; written to the local config if one exists, else the global one"),
			mcp.WithString("key", mcp.Required(), mcp.Description("Config key (search.pattern, decode.legacy, walk.hidden, audit.enabled)")),
			mcp.WithString("value", mcp.Required(), mcp.Description("Value to set")),
		),
		h.configSet,
	)
}

// registerExtensionTools adds the tools contributed by extensions. Each
// handler receives the extension Context current at call time.
func registerExtensionTools(s *server.MCPServer, h *handlers) {
	for _, t := range extension.Tools() {
		handler := t.Handler
		s.AddTool(t.Tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handler(ctx, h.extContext(), req)
		})
	}
}
