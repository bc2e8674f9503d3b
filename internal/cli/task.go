package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/tasktree/tasktree/internal/app"
	"github.com/tasktree/tasktree/internal/domain"
	"github.com/tasktree/tasktree/internal/usecase"
)

// newAddCommand creates the add command for creating main tasks.
func newAddCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Description string
	}

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a main task",
		Long: `Create a main task in the project.

The task gets the next sequential id. Ids are never reused, even
after a reset.

Examples:
  # Create a main task
  tasktree add "Implement auth"

  # Create a main task with a description
  tasktree add "Implement auth" --body "OAuth2 + session handling"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectDir, err := resolveProjectDir(cmd)
			if err != nil {
				return err
			}

			uc := usecase.NewAddMainTask(c.Projects, c.Clock)
			out, err := uc.Execute(cmd.Context(), usecase.AddMainTaskInput{
				ProjectDir:  projectDir,
				Name:        args[0],
				Description: opts.Description,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created task %d: %s\n", out.Task.ID, out.Task.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Description, "body", "", "Task description")

	return cmd
}

// newSubCommand creates the sub command for adding sub-tasks.
func newSubCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sub <parent-id> <number> <name>",
		Short: "Add a sub-task under a task",
		Long: `Add a sub-task under an existing task at an explicit sibling
position.

The parent id is hierarchical: "1" adds directly under main task 1,
"1.2" adds under its second sub-task. Missing intermediate levels
are created as placeholders.

Examples:
  # Add the first sub-task of main task 1
  tasktree sub 1 1 "Write schema"

  # Add a nested sub-task
  tasktree sub 1.2 1 "Add index"`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectDir, err := resolveProjectDir(cmd)
			if err != nil {
				return err
			}

			levels, err := domain.ParsePath(args[0])
			if err != nil {
				return fmt.Errorf("invalid parent id: %w", err)
			}
			number, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid sub-task number: %w", err)
			}

			var parentPath string
			if len(levels) > 1 {
				parentPath = args[0]
			}

			uc := usecase.NewAddSubTask(c.Projects, c.Clock)
			out, err := uc.Execute(cmd.Context(), usecase.AddSubTaskInput{
				ProjectDir:    projectDir,
				MainTaskID:    levels[0],
				ParentPath:    parentPath,
				SubTaskNumber: number,
				Name:          args[2],
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created sub-task %s: %s\n", out.Path, out.Task.Name)
			return nil
		},
	}

	return cmd
}

// newListCommand creates the list command for listing main tasks.
func newListCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List main tasks",
		Long: `Display the project's main tasks in creation order.

Output format is tab-separated with columns:
  ID, STATUS, [ELAPSED], SUBTASKS, NAME

ELAPSED is only shown for tasks with status 'in_progress'.

Examples:
  tasktree list`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			projectDir, err := resolveProjectDir(cmd)
			if err != nil {
				return err
			}

			uc := usecase.NewListMainTasks(c.Projects)
			out, err := uc.Execute(cmd.Context(), usecase.ListMainTasksInput{ProjectDir: projectDir})
			if err != nil {
				return err
			}

			printMainTaskList(cmd.OutOrStdout(), out.Tasks, c.Clock)
			return nil
		},
	}

	return cmd
}

// newFindCommand creates the find command for searching main tasks.
func newFindCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "find <name-prefix>",
		Short: "Find main tasks by name prefix",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectDir, err := resolveProjectDir(cmd)
			if err != nil {
				return err
			}

			uc := usecase.NewFindMainTasks(c.Projects)
			out, err := uc.Execute(cmd.Context(), usecase.FindMainTasksInput{
				ProjectDir: projectDir,
				NamePrefix: args[0],
			})
			if err != nil {
				return err
			}

			printMainTaskList(cmd.OutOrStdout(), out.Tasks, c.Clock)
			return nil
		},
	}

	return cmd
}

// newShowCommand creates the show command for displaying a task subtree.
func newShowCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Display a task and its sub-tasks",
		Long: `Display a task with its full subtree.

The id is hierarchical: "2" shows main task 2, "2.1.3" shows one
sub-task.

Examples:
  # Show a main task with all sub-tasks
  tasktree show 1

  # Show a single sub-task subtree
  tasktree show 1.2`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectDir, err := resolveProjectDir(cmd)
			if err != nil {
				return err
			}

			uc := usecase.NewGetTask(c.Projects)
			out, err := uc.Execute(cmd.Context(), usecase.GetTaskInput{
				ProjectDir: projectDir,
				Path:       args[0],
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if out.MainTask != nil {
				printMainTaskDetails(w, out.MainTask)
				return nil
			}
			printNodeTree(w, out.SubTask, out.Path, 0)
			return nil
		},
	}

	return cmd
}

// newStartCommand creates the start command.
func newStartCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start <main-task-id>",
		Short: "Start or resume a main task",
		Long: `Start or resume work on a main task.

Prints the next actionable step: the first sub-task (in traversal
order) that is not yet completed. Running start again without
completing anything prints the same step. When every step is done,
reports the task as complete.

Examples:
  tasktree start 1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectDir, err := resolveProjectDir(cmd)
			if err != nil {
				return err
			}

			mainTaskID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid main task id: %w", err)
			}

			uc := usecase.NewStartOrResume(c.Projects, c.Clock)
			out, err := uc.Execute(cmd.Context(), usecase.StartOrResumeInput{
				ProjectDir: projectDir,
				MainTaskID: mainTaskID,
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			res := out.Result
			if res.TreeComplete {
				_, _ = fmt.Fprintf(w, "Task %d is complete\n", mainTaskID)
				return nil
			}
			verb := "Started"
			if res.Resumed {
				verb = "Resumed"
			}
			_, _ = fmt.Fprintf(w, "%s %s: %s\n", verb, renderPath(res.Path), res.Name)
			return nil
		},
	}

	return cmd
}

// newDoneCommand creates the done command for completing leaves.
func newDoneCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "done <id>",
		Short: "Complete a task step",
		Long: `Mark a leaf task as completed.

The leaf must be in progress (see 'tasktree start'). Parent
statuses are re-derived: a parent whose children are all completed
becomes completed itself.

Examples:
  tasktree done 1.2.1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectDir, err := resolveProjectDir(cmd)
			if err != nil {
				return err
			}

			uc := usecase.NewCompleteTask(c.Projects, c.Clock)
			out, err := uc.Execute(cmd.Context(), usecase.CompleteTaskInput{
				ProjectDir: projectDir,
				Path:       args[0],
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "Completed %s\n", renderPath(out.Path))
			if out.MainTaskStatus == domain.StatusCompleted {
				levels, _ := domain.ParsePath(out.Path)
				_, _ = fmt.Fprintf(w, "Task %d is complete\n", levels[0])
			}
			return nil
		},
	}

	return cmd
}

// newResetCommand creates the reset command.
func newResetCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Force bool
	}

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Remove all tasks from the project",
		Long: `Remove every task from the project.

Assigned ids are never reused: the next created main task continues
the sequence.

Examples:
  tasktree reset --force`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !opts.Force {
				return fmt.Errorf("refusing to remove all tasks without --force")
			}

			projectDir, err := resolveProjectDir(cmd)
			if err != nil {
				return err
			}

			uc := usecase.NewDeleteAllTasks(c.Projects)
			out, err := uc.Execute(cmd.Context(), usecase.DeleteAllTasksInput{ProjectDir: projectDir})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Removed %d task(s)\n", out.Removed)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&opts.Force, "force", "f", false, "Confirm removing all tasks")

	return cmd
}

// printMainTaskList prints main tasks in TSV format.
func printMainTaskList(w io.Writer, tasks []*domain.MainTask, clock domain.Clock) {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	defer func() { _ = tw.Flush() }()

	// Header
	_, _ = fmt.Fprintln(tw, "ID\tSTATUS\tSUBTASKS\tNAME")

	// Rows
	for _, task := range tasks {
		statusStr := renderStatus(task.Status)
		if task.Status == domain.StatusInProgress && !task.Started.IsZero() {
			elapsed := clock.Now().Sub(task.Started)
			statusStr = fmt.Sprintf("%s (%s)", statusStr, formatDuration(elapsed))
		}

		_, _ = fmt.Fprintf(tw, "%d\t%s\t%d\t%s\n",
			task.ID,
			statusStr,
			len(task.Children),
			task.Name,
		)
	}
}

// printMainTaskDetails prints a main task with its full subtree.
func printMainTaskDetails(w io.Writer, task *domain.MainTask) {
	_, _ = fmt.Fprintf(w, "# Task %d: %s\n\n", task.ID, task.Name)

	if task.Description != "" {
		_, _ = fmt.Fprintf(w, "%s\n\n", task.Description)
	}

	_, _ = fmt.Fprintf(w, "Status: %s\n", renderStatus(task.Status))
	_, _ = fmt.Fprintf(w, "Created: %s\n", task.Created.Format(time.RFC3339))
	if !task.Started.IsZero() {
		_, _ = fmt.Fprintf(w, "Started: %s\n", task.Started.Format(time.RFC3339))
	}
	if !task.Finished.IsZero() {
		_, _ = fmt.Fprintf(w, "Finished: %s\n", task.Finished.Format(time.RFC3339))
	}

	if len(task.Children) > 0 {
		_, _ = fmt.Fprintln(w, "\nSub-tasks:")
		for _, child := range task.Children {
			printNodeTree(w, child, task.Path()+"."+strconv.Itoa(child.Number), 1)
		}
	}
}

// printNodeTree prints a sub-task subtree, one node per line.
func printNodeTree(w io.Writer, node *domain.Node, path string, depth int) {
	indent := strings.Repeat("  ", depth)
	_, _ = fmt.Fprintf(w, "%s%s [%s] %s\n", indent, renderPath(path), renderStatus(node.Status), node.Name)
	for _, child := range node.Children {
		printNodeTree(w, child, path+"."+strconv.Itoa(child.Number), depth+1)
	}
}

// formatDuration formats a duration in a human-readable way.
func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm", int(d.Minutes()))
	}
	if d < 24*time.Hour {
		return fmt.Sprintf("%dh", int(d.Hours()))
	}
	return fmt.Sprintf("%dd", int(d.Hours()/24))
}
