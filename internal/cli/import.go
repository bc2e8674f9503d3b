package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tasktree/tasktree/internal/app"
	"github.com/tasktree/tasktree/internal/usecase"
)

// newImportCommand creates the import command for loading a plan file.
func newImportCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Create tasks from a YAML plan file",
		Long: `Create a whole task breakdown from a YAML plan file.

All tasks in the plan are created in one atomic operation: either
the whole plan applies or nothing does.

File format:
  tasks:
    - name: Implement auth
      description: OAuth2 + session handling
      subtasks:
        - number: "1"
          name: Write schema
        - number: "1.1"
          name: Add index
    - name: Ship docs

Examples:
  tasktree import plan.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectDir, err := resolveProjectDir(cmd)
			if err != nil {
				return err
			}

			content, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read file: %w", err)
			}

			uc := usecase.NewImportPlan(c.Projects, c.Clock)
			out, err := uc.Execute(cmd.Context(), usecase.ImportPlanInput{
				ProjectDir: projectDir,
				Source:     content,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created %d task(s) with %d sub-task(s)\n",
				len(out.MainTaskIDs), out.SubTasks)
			return nil
		},
	}

	return cmd
}
