// Package mcp exposes the task tree over the Model Context Protocol.
// The server speaks JSON-RPC on stdio; every tool call carries a
// project_dir so one long-running server can serve many projects.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/tasktree/tasktree/internal/app"
)

const serverInstructions = `tasktree manages hierarchical task breakdowns per project.
Main tasks get integer ids; sub-tasks are addressed by dot-separated
ids like "1.2.1". Use start_or_resume_main_task to obtain the next
actionable leaf and complete_sub_task to finish it; parent statuses
are derived automatically.`

// NewServer builds the MCP server with every tool registered.
func NewServer(c *app.Container) *server.MCPServer {
	s := server.NewMCPServer(
		"tasktree",
		c.Version,
		server.WithToolCapabilities(false),
		server.WithInstructions(serverInstructions),
		server.WithRecovery(),
	)

	t := newToolset(c)

	s.AddTool(t.addMainTaskTool(), t.handleAddMainTask)
	s.AddTool(t.addSubTaskTool(), t.handleAddSubTask)
	s.AddTool(t.addSubTasksTool(), t.handleAddSubTasks)
	s.AddTool(t.listMainTasksTool(), t.handleListMainTasks)
	s.AddTool(t.findMainTasksTool(), t.handleFindMainTasks)
	s.AddTool(t.listSubTasksTool(), t.handleListSubTasks)
	s.AddTool(t.getTaskTool(), t.handleGetTask)
	s.AddTool(t.startOrResumeTool(), t.handleStartOrResume)
	s.AddTool(t.completeTaskTool(), t.handleCompleteTask)
	s.AddTool(t.deleteAllTool(), t.handleDeleteAll)

	return s
}

// ServeStdio runs the server over stdin/stdout until EOF.
func ServeStdio(s *server.MCPServer) error {
	return server.ServeStdio(s)
}
