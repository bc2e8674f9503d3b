package usecase

import (
	"context"
	"fmt"
	"strconv"

	"github.com/tasktree/tasktree/internal/domain"
)

// AddSubTaskInput contains the parameters for creating a sub-task.
// Fields are ordered to minimize memory padding.
type AddSubTaskInput struct {
	ProjectDir    string // Project directory (required)
	ParentPath    string // Hierarchical id of the parent; empty = main task root
	Name          string // Sub-task name (required)
	MainTaskID    int    // Id of the main task (required)
	SubTaskNumber int    // Sibling position of the new sub-task (required)
}

// AddSubTaskOutput contains the result of creating a sub-task.
type AddSubTaskOutput struct {
	Task *domain.Node // Snapshot of the created sub-task
	Path string       // Hierarchical id of the created sub-task
}

// AddSubTask is the use case for creating one sub-task.
type AddSubTask struct {
	projects domain.ProjectOpener
	clock    domain.Clock
}

// NewAddSubTask creates a new AddSubTask use case.
func NewAddSubTask(projects domain.ProjectOpener, clock domain.Clock) *AddSubTask {
	return &AddSubTask{projects: projects, clock: clock}
}

// Execute inserts a sub-task under the parent path at the given sibling
// position. The new node always starts pending; ancestors previously
// derived completed are reopened by propagation.
func (uc *AddSubTask) Execute(_ context.Context, in AddSubTaskInput) (*AddSubTaskOutput, error) {
	if in.Name == "" {
		return nil, domain.ErrEmptyName
	}
	if in.MainTaskID <= 0 {
		return nil, domain.ErrInvalidTaskID
	}
	if in.SubTaskNumber <= 0 {
		return nil, domain.ErrInvalidPosition
	}
	parentPath, err := normalizeParentPath(in.MainTaskID, in.ParentPath)
	if err != nil {
		return nil, err
	}

	project, err := uc.projects.Open(in.ProjectDir)
	if err != nil {
		return nil, err
	}

	var out AddSubTaskOutput
	err = project.Store.WithLock(func(tree *domain.Tree) error {
		node, path, err := tree.AddChild(parentPath, in.SubTaskNumber, in.Name, uc.clock.Now())
		if err != nil {
			return err
		}
		out.Task = node.Clone()
		out.Path = path
		return nil
	})
	if err != nil {
		return nil, err
	}

	project.Log.Info(in.MainTaskID, "task", fmt.Sprintf("created sub-task %s: %q", out.Path, in.Name))
	return &out, nil
}

// normalizeParentPath validates the parent path against the main task
// id and defaults an empty path to the main task root.
func normalizeParentPath(mainTaskID int, parentPath string) (string, error) {
	if parentPath == "" {
		return strconv.Itoa(mainTaskID), nil
	}
	levels, err := domain.ParsePath(parentPath)
	if err != nil {
		return "", err
	}
	if levels[0] != mainTaskID {
		return "", fmt.Errorf("parent path %q is not under main task %d: %w",
			parentPath, mainTaskID, domain.ErrInvalidParentPath)
	}
	return parentPath, nil
}
