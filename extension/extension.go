// Package extension provides the plugin architecture for oktags. Extensions
// bundle related commands and MCP tools and register at init time, so a
// feature can be added without touching the root command.
package extension

import (
	"github.com/spf13/cobra"
)

// Extension defines the contract for oktags extensions.
type Extension interface {
	// Name returns a unique identifier for this extension.
	Name() string

	// Commands returns CLI commands to register with the root command.
	Commands() []*cobra.Command

	// MCPTools returns MCP tools to register with the server.
	MCPTools() []MCPTool
}

// Initializable extensions receive the shared Context before their
// commands run.
type Initializable interface {
	Extension
	Init(ctx Context) error
}

// Standalone is implemented by extensions with commands that must run
// without the shared service, for example because they repair the config
// the service is built from. Commands named by StandaloneCommands skip
// initialisation in the root command's PersistentPreRunE.
type Standalone interface {
	StandaloneCommands() []string
}
