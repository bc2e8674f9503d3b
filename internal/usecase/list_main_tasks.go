package usecase

import (
	"context"

	"github.com/tasktree/tasktree/internal/domain"
)

// ListMainTasksInput contains the parameters for listing main tasks.
type ListMainTasksInput struct {
	ProjectDir string // Project directory (required)
}

// ListMainTasksOutput contains the listed main tasks in id order.
type ListMainTasksOutput struct {
	Tasks []*domain.MainTask
}

// ListMainTasks is the use case for listing a project's main tasks.
type ListMainTasks struct {
	projects domain.ProjectOpener
}

// NewListMainTasks creates a new ListMainTasks use case.
func NewListMainTasks(projects domain.ProjectOpener) *ListMainTasks {
	return &ListMainTasks{projects: projects}
}

// Execute returns snapshots of all main tasks in creation (id) order.
func (uc *ListMainTasks) Execute(_ context.Context, in ListMainTasksInput) (*ListMainTasksOutput, error) {
	project, err := uc.projects.Open(in.ProjectDir)
	if err != nil {
		return nil, err
	}

	var out ListMainTasksOutput
	err = project.Store.View(func(tree *domain.Tree) error {
		for _, m := range tree.Tasks {
			out.Tasks = append(out.Tasks, m.Clone())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
