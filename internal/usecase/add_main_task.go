// Package usecase contains the task service operations. Each operation
// is a single atomic read-modify-write bounded by the project lock.
package usecase

import (
	"context"
	"fmt"

	"github.com/tasktree/tasktree/internal/domain"
)

// AddMainTaskInput contains the parameters for creating a main task.
type AddMainTaskInput struct {
	ProjectDir  string // Project directory (required)
	Name        string // Task name (required)
	Description string // Task description (optional)
}

// AddMainTaskOutput contains the result of creating a main task.
type AddMainTaskOutput struct {
	Task *domain.MainTask // Snapshot of the created task
}

// AddMainTask is the use case for creating a main task.
type AddMainTask struct {
	projects domain.ProjectOpener
	clock    domain.Clock
}

// NewAddMainTask creates a new AddMainTask use case.
func NewAddMainTask(projects domain.ProjectOpener, clock domain.Clock) *AddMainTask {
	return &AddMainTask{projects: projects, clock: clock}
}

// Execute creates a main task with the next sequential id.
func (uc *AddMainTask) Execute(_ context.Context, in AddMainTaskInput) (*AddMainTaskOutput, error) {
	if in.Name == "" {
		return nil, domain.ErrEmptyName
	}

	project, err := uc.projects.Open(in.ProjectDir)
	if err != nil {
		return nil, err
	}

	var out AddMainTaskOutput
	err = project.Store.WithLock(func(tree *domain.Tree) error {
		task := tree.AddMainTask(in.Name, in.Description, uc.clock.Now())
		out.Task = task.Clone()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("add main task: %w", err)
	}

	project.Log.Info(out.Task.ID, "task", fmt.Sprintf("created main task: %q", in.Name))
	return &out, nil
}
