// version.go implements the version command and its MCP tool.

package core

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cobra"

	"github.com/jpl-au/oktags/cmd"
	"github.com/jpl-au/oktags/extension"
	"github.com/jpl-au/oktags/internal/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, git commit, Go version, and platform.`,
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			info := version.Get()
			if cmd.JSON() {
				_ = cmd.PrintJSON(info)
				return
			}
			fmt.Fprint(cmd.Out(), info.String())
		},
	}
}

func versionTool() extension.MCPTool {
	return extension.MCPTool{
		Tool: mcp.NewTool("oktags_version",
			mcp.WithDescription("Get oktags build information"),
		),
		Handler: func(_ context.Context, _ extension.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			data, err := json.MarshalIndent(version.Get(), "", "  ")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			return mcp.NewToolResultText(string(data)), nil
		},
	}
}
