// tools_tags.go implements the MCP tools for tag queries and rewrites.
//
// Rewrites are idempotent: adding a tag a file already has, or removing one
// it lacks, succeeds and leaves the tag set alone. The name may still change
// to its canonical form. This suits LLM workflows that do not track current
// tag state.

package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jpl-au/oktags/internal/codec"
	"github.com/jpl-au/oktags/internal/log"
	"github.com/jpl-au/oktags/internal/rewrite"
	"github.com/jpl-au/oktags/internal/service"
	"github.com/jpl-au/oktags/internal/tree"
)

// forRequest returns the service to use for a mutating call. A request with
// dry_run set gets a planning-only service even when the server writes.
func (h *handlers) forRequest(req mcp.CallToolRequest) service.Service {
	h.mu.RLock()
	svc, extCtx := h.svc, h.extCtx
	h.mu.RUnlock()

	if !getBool(req, "dry_run", false) || svc.DryRun() {
		return svc
	}
	opts := svc.Options()
	opts.DryRun = true
	dry := tree.New(h.fs, opts)
	dry.SetExtensionContext(extCtx)
	return dry
}

// listTags handles oktags_list tool calls.
func (h *handlers) listTags(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) { //nolint:revive // ctx for future use
	pattern := getString(req, "pattern", "")

	counts, err := h.service().Counts(pattern)

	log.Event("mcp:list", "list").Path(pattern).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(counts)
}

// addTags handles oktags_add tool calls.
func (h *handlers) addTags(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) { //nolint:revive // ctx for future use
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("path is required"), nil //nolint:nilerr
	}
	tags, err := req.RequireString("tags")
	if err != nil {
		return mcp.NewToolResultError("tags is required"), nil //nolint:nilerr
	}

	svc := h.forRequest(req)
	dst, err := svc.Add(tags, path)

	log.Event("mcp:add", "add").Path(path).Resolved(dst).DryRun(svc.DryRun()).Detail("tags", tags).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(rewriteResult(svc, path, dst))
}

// removeTag handles oktags_remove tool calls.
func (h *handlers) removeTag(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) { //nolint:revive // ctx for future use
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("path is required"), nil //nolint:nilerr
	}
	tag, err := req.RequireString("tag")
	if err != nil {
		return mcp.NewToolResultError("tag is required"), nil //nolint:nilerr
	}

	svc := h.forRequest(req)
	dst, err := svc.Remove(tag, path)

	log.Event("mcp:remove", "remove").Path(path).Resolved(dst).DryRun(svc.DryRun()).Detail("tag", tag).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(rewriteResult(svc, path, dst))
}

// renameTag handles oktags_rename tool calls. Changes made before a failure
// are reported alongside the error.
func (h *handlers) renameTag(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) { //nolint:revive // ctx for future use
	old, err := req.RequireString("old")
	if err != nil {
		return mcp.NewToolResultError("old is required"), nil //nolint:nilerr
	}
	newTags, err := req.RequireString("new")
	if err != nil {
		return mcp.NewToolResultError("new is required"), nil //nolint:nilerr
	}
	root := getString(req, "root", "")

	svc := h.forRequest(req)
	changes, err := svc.Rename(root, old, newTags)

	log.Event("mcp:rename", "rename").Path(root).DryRun(svc.DryRun()).
		Detail("old", old).Detail("new", newTags).Detail("changed", len(changes)).Write(err)

	if changes == nil {
		changes = []rewrite.Change{}
	}
	result := map[string]any{
		"old":     codec.Normalise(old),
		"new":     codec.ParseList(newTags),
		"changes": changes,
		"dry_run": svc.DryRun(),
	}
	if err != nil {
		result["error"] = err.Error()
		res, jerr := jsonResult(result)
		if res != nil {
			res.IsError = true
		}
		return res, jerr
	}
	return jsonResult(result)
}

// findFiles handles oktags_find tool calls.
func (h *handlers) findFiles(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) { //nolint:revive // ctx for future use
	tags, err := req.RequireString("tags")
	if err != nil {
		return mcp.NewToolResultError("tags is required"), nil //nolint:nilerr
	}
	pattern := getString(req, "pattern", "")

	files, err := h.service().Find(tags, pattern)

	log.Event("mcp:find", "find").Path(pattern).Detail("tags", tags).Detail("matches", len(files)).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(files)
}

// showTags handles oktags_show tool calls.
func (h *handlers) showTags(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) { //nolint:revive // ctx for future use
	paths := getStrings(req, "paths")
	if len(paths) == 0 {
		return mcp.NewToolResultError("paths is required"), nil
	}

	files, err := h.service().Show(paths...)

	log.Event("mcp:show", "show").Detail("paths", paths).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(files)
}

// rewriteResult describes one add or remove for the client.
func rewriteResult(svc service.Service, path, dst string) map[string]any {
	tags := svc.Decode(dst).Tags
	if tags == nil {
		tags = []string{}
	}
	return map[string]any{
		"path":     path,
		"new_path": dst,
		"tags":     tags,
		"changed":  dst != path,
		"dry_run":  svc.DryRun(),
	}
}
