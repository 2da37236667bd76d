// serve.go implements the "oktags serve" command for MCP server operation.
//
// Unlike other commands that run and exit, serve blocks handling MCP
// requests over stdio. It is standalone: the server builds its own service
// so that a config change made through oktags_config_set can rebuild it.

package core

import (
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/jpl-au/oktags/cmd"
	"github.com/jpl-au/oktags/internal/log"
	"github.com/jpl-au/oktags/internal/mcp"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start MCP server",
		Long: `Start an MCP (Model Context Protocol) server over stdio for LLM integration.

The server manages files below the current directory. Global flags apply:
  oktags serve --dry-run    # every rename is planned, never performed
  oktags serve --hidden     # include dot files`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}
}

func runServe(_ *cobra.Command, _ []string) error {
	l := log.Event("core:serve", "serve").DryRun(cmd.DryRun())
	err := mcp.Serve(afero.NewOsFs(), mcp.Options{DryRun: cmd.DryRun(), Hidden: cmd.Hidden()})
	l.Write(err)
	return err
}
