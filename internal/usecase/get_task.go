package usecase

import (
	"context"

	"github.com/tasktree/tasktree/internal/domain"
)

// GetTaskInput contains the parameters for fetching one task.
type GetTaskInput struct {
	ProjectDir string // Project directory (required)
	Path       string // Hierarchical id: "2" for a main task, "2.1.3" for a sub-task
}

// GetTaskOutput contains a snapshot of the resolved task. Exactly one
// of MainTask / SubTask is set.
type GetTaskOutput struct {
	MainTask *domain.MainTask
	SubTask  *domain.Node
	Path     string
}

// GetTask is the use case for fetching a task snapshot by id or path.
type GetTask struct {
	projects domain.ProjectOpener
}

// NewGetTask creates a new GetTask use case.
func NewGetTask(projects domain.ProjectOpener) *GetTask {
	return &GetTask{projects: projects}
}

// Execute resolves the hierarchical id to a task snapshot.
func (uc *GetTask) Execute(_ context.Context, in GetTaskInput) (*GetTaskOutput, error) {
	project, err := uc.projects.Open(in.ProjectDir)
	if err != nil {
		return nil, err
	}

	out := GetTaskOutput{Path: in.Path}
	err = project.Store.View(func(tree *domain.Tree) error {
		m, n, err := tree.Resolve(in.Path)
		if err != nil {
			return err
		}
		if m != nil {
			out.MainTask = m.Clone()
		} else {
			out.SubTask = n.Clone()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
