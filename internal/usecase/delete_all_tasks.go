package usecase

import (
	"context"

	"github.com/tasktree/tasktree/internal/domain"
)

// DeleteAllTasksInput contains the parameters for clearing a project.
type DeleteAllTasksInput struct {
	ProjectDir string // Project directory (required)
}

// DeleteAllTasksOutput contains the number of removed main tasks.
type DeleteAllTasksOutput struct {
	Removed int
}

// DeleteAllTasks is the use case for resetting a project's tree.
// Individual nodes are never deleted; this is a whole-tree reset.
// The id counter is preserved so ids are never reassigned.
type DeleteAllTasks struct {
	projects domain.ProjectOpener
}

// NewDeleteAllTasks creates a new DeleteAllTasks use case.
func NewDeleteAllTasks(projects domain.ProjectOpener) *DeleteAllTasks {
	return &DeleteAllTasks{projects: projects}
}

// Execute removes every main task from the project.
func (uc *DeleteAllTasks) Execute(_ context.Context, in DeleteAllTasksInput) (*DeleteAllTasksOutput, error) {
	project, err := uc.projects.Open(in.ProjectDir)
	if err != nil {
		return nil, err
	}

	var out DeleteAllTasksOutput
	err = project.Store.WithLock(func(tree *domain.Tree) error {
		out.Removed = len(tree.Tasks)
		tree.Tasks = nil
		return nil
	})
	if err != nil {
		return nil, err
	}

	project.Log.Info(0, "task", "cleared all tasks")
	return &out, nil
}
