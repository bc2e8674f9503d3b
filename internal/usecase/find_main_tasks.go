package usecase

import (
	"context"

	"github.com/tasktree/tasktree/internal/domain"
)

// FindMainTasksInput contains the parameters for a name-prefix search.
type FindMainTasksInput struct {
	ProjectDir string // Project directory (required)
	NamePrefix string // Name prefix to match (required)
}

// FindMainTasksOutput contains the matching main tasks in name order.
type FindMainTasksOutput struct {
	Tasks []*domain.MainTask
}

// FindMainTasks is the use case for finding main tasks by name prefix.
type FindMainTasks struct {
	projects domain.ProjectOpener
}

// NewFindMainTasks creates a new FindMainTasks use case.
func NewFindMainTasks(projects domain.ProjectOpener) *FindMainTasks {
	return &FindMainTasks{projects: projects}
}

// Execute returns snapshots of the main tasks whose name starts with
// the given prefix.
func (uc *FindMainTasks) Execute(_ context.Context, in FindMainTasksInput) (*FindMainTasksOutput, error) {
	if in.NamePrefix == "" {
		return nil, domain.ErrEmptyName
	}

	project, err := uc.projects.Open(in.ProjectDir)
	if err != nil {
		return nil, err
	}

	var out FindMainTasksOutput
	err = project.Store.View(func(tree *domain.Tree) error {
		for _, m := range tree.FindMainTasksByName(in.NamePrefix) {
			out.Tasks = append(out.Tasks, m.Clone())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
