// mcp.go defines types for MCP tool registration by extensions.
//
// Not every extension exposes MCP tools. Those that do pair each tool
// definition with its handler; the server passes the handler both the
// request context and the extension Context.

package extension

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// MCPTool pairs an MCP tool definition with its handler.
type MCPTool struct {
	Tool    mcp.Tool
	Handler MCPHandler
}

// MCPHandler processes MCP tool requests.
type MCPHandler func(ctx context.Context, extCtx Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)
