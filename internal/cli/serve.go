package cli

import (
	"github.com/spf13/cobra"

	"github.com/tasktree/tasktree/internal/app"
	"github.com/tasktree/tasktree/internal/mcp"
)

// newServeCommand creates the serve command running the MCP server.
func newServeCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server on stdio",
		Long: `Run the Model Context Protocol server on stdin/stdout.

Every tool call carries a project_dir argument, so one server
instance can manage tasks for any number of projects. The process
runs until stdin is closed.

Example client configuration:
  {
    "mcpServers": {
      "tasktree": {
        "command": "tasktree",
        "args": ["serve"]
      }
    }
  }`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return mcp.ServeStdio(mcp.NewServer(c))
		},
	}

	return cmd
}
