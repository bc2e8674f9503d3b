package usecase

import (
	"context"

	"github.com/tasktree/tasktree/internal/domain"
)

// ListSubTasksInput contains the parameters for listing a subtree.
type ListSubTasksInput struct {
	ProjectDir string // Project directory (required)
	MainTaskID int    // Id of the main task (required)
}

// ListSubTasksOutput contains the flattened subtree in traversal order.
type ListSubTasksOutput struct {
	Tasks []domain.ListedTask
}

// ListSubTasks is the use case for listing the sub-tasks of a main task.
type ListSubTasks struct {
	projects domain.ProjectOpener
}

// NewListSubTasks creates a new ListSubTasks use case.
func NewListSubTasks(projects domain.ProjectOpener) *ListSubTasks {
	return &ListSubTasks{projects: projects}
}

// Execute returns the main task's subtree flattened in pre-order.
func (uc *ListSubTasks) Execute(_ context.Context, in ListSubTasksInput) (*ListSubTasksOutput, error) {
	if in.MainTaskID <= 0 {
		return nil, domain.ErrInvalidTaskID
	}

	project, err := uc.projects.Open(in.ProjectDir)
	if err != nil {
		return nil, err
	}

	var out ListSubTasksOutput
	err = project.Store.View(func(tree *domain.Tree) error {
		tasks, err := tree.ListSubTasks(in.MainTaskID)
		if err != nil {
			return err
		}
		out.Tasks = tasks
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
