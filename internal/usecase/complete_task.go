package usecase

import (
	"context"
	"fmt"

	"github.com/tasktree/tasktree/internal/domain"
)

// CompleteTaskInput contains the parameters for completing a leaf task.
type CompleteTaskInput struct {
	ProjectDir string // Project directory (required)
	Path       string // Hierarchical id of the leaf to complete
}

// CompleteTaskOutput contains a snapshot of the completed leaf and the
// derived status of its main task after propagation.
type CompleteTaskOutput struct {
	Path           string
	MainTaskStatus domain.Status
}

// CompleteTask is the use case for marking a leaf as completed.
// Only a leaf in in_progress may be completed; every ancestor status is
// re-derived afterwards, so finishing the last leaf completes the root.
type CompleteTask struct {
	projects domain.ProjectOpener
	clock    domain.Clock
}

// NewCompleteTask creates a new CompleteTask use case.
func NewCompleteTask(projects domain.ProjectOpener, clock domain.Clock) *CompleteTask {
	return &CompleteTask{projects: projects, clock: clock}
}

// Execute completes the leaf at the given hierarchical id.
func (uc *CompleteTask) Execute(_ context.Context, in CompleteTaskInput) (*CompleteTaskOutput, error) {
	project, err := uc.projects.Open(in.ProjectDir)
	if err != nil {
		return nil, err
	}

	levels, err := domain.ParsePath(in.Path)
	if err != nil {
		return nil, fmt.Errorf("path %q: %w", in.Path, domain.ErrTaskNotFound)
	}
	mainID := levels[0]

	var out CompleteTaskOutput
	err = project.Store.WithLock(func(tree *domain.Tree) error {
		if err := tree.CompleteLeaf(in.Path, uc.clock.Now()); err != nil {
			return err
		}
		out.Path = in.Path
		out.MainTaskStatus = tree.MainTask(mainID).Status
		return nil
	})
	if err != nil {
		return nil, err
	}

	project.Log.Info(mainID, "task", fmt.Sprintf("completed %s (main task now %s)", in.Path, out.MainTaskStatus))
	return &out, nil
}
