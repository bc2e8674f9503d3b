// Package cli provides the command-line interface for tasktree.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tasktree/tasktree/internal/app"
	"github.com/tasktree/tasktree/internal/infra/projectdir"
)

// Command group IDs.
const (
	groupTask   = "task"
	groupServer = "server"
)

// NewRootCommand creates the root command for tasktree.
// It receives the container for dependency injection and version for display.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	var projectFlag string

	root := &cobra.Command{
		Use:   "tasktree",
		Short: "Hierarchical task tree manager",
		Long: `tasktree manages hierarchical task breakdowns per project.

Main tasks get integer ids; sub-tasks are addressed by dot-separated
ids like "1.2.1". Completing leaves updates parent statuses
automatically, and 'tasktree start' always returns the next
actionable step.

State lives in <project>/.tasktree/tasks.json. The project directory
defaults to the enclosing git repository root, or can be set with
--project.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&projectFlag, "project", "", "Project directory (default: enclosing git repository root)")

	root.AddGroup(
		&cobra.Group{ID: groupTask, Title: "Task Management:"},
		&cobra.Group{ID: groupServer, Title: "Server:"},
	)

	// Task management commands
	addCmd := newAddCommand(c)
	addCmd.GroupID = groupTask

	subCmd := newSubCommand(c)
	subCmd.GroupID = groupTask

	listCmd := newListCommand(c)
	listCmd.GroupID = groupTask

	findCmd := newFindCommand(c)
	findCmd.GroupID = groupTask

	showCmd := newShowCommand(c)
	showCmd.GroupID = groupTask

	startCmd := newStartCommand(c)
	startCmd.GroupID = groupTask

	doneCmd := newDoneCommand(c)
	doneCmd.GroupID = groupTask

	importCmd := newImportCommand(c)
	importCmd.GroupID = groupTask

	resetCmd := newResetCommand(c)
	resetCmd.GroupID = groupTask

	// Server command
	serveCmd := newServeCommand(c)
	serveCmd.GroupID = groupServer

	root.AddCommand(
		addCmd,
		subCmd,
		listCmd,
		findCmd,
		showCmd,
		startCmd,
		doneCmd,
		importCmd,
		resetCmd,
		serveCmd,
	)

	return root
}

// resolveProjectDir resolves the project directory for a command: the
// --project flag when given, otherwise the enclosing git repository
// root, otherwise the current directory.
func resolveProjectDir(cmd *cobra.Command) (string, error) {
	explicit, err := cmd.Flags().GetString("project")
	if err != nil {
		return "", err
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get current directory: %w", err)
	}

	return projectdir.Resolve(explicit, cwd)
}
