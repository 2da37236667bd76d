// Package core provides the core extension for oktags.
// It registers commands: config, serve, guide, version.
package core

import (
	"github.com/spf13/cobra"

	"github.com/jpl-au/oktags/extension"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the core extension.
type Extension struct{}

// Compile-time interface compliance. Catches missing methods at build time
// rather than runtime, making interface changes safer to refactor.
var (
	_ extension.Extension  = (*Extension)(nil)
	_ extension.Standalone = (*Extension)(nil)
)

// Name returns "core" - this extension provides the non-tagging commands.
func (e *Extension) Name() string { return "core" }

// Commands returns all core CLI commands.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		newConfigCmd(),
		newServeCmd(),
		newGuideCmd(),
		newVersionCmd(),
	}
}

// MCPTools returns the version tool. Guide and config tools are in
// internal/mcp because they are needed before any extension loads.
func (e *Extension) MCPTools() []extension.MCPTool {
	return []extension.MCPTool{versionTool()}
}

// StandaloneCommands returns commands that run without the shared service.
// config: must be able to repair a config that fails to load.
// guide, version: static output.
// serve: builds its own service and rebuilds it when config changes.
func (e *Extension) StandaloneCommands() []string {
	return []string{"config", "guide", "version", "serve"}
}
