package usecase

import (
	"context"
	"fmt"

	"github.com/tasktree/tasktree/internal/domain"
)

// StartOrResumeInput contains the parameters for starting or resuming
// work on a main task.
type StartOrResumeInput struct {
	ProjectDir string // Project directory (required)
	MainTaskID int    // Id of the main task (required)
}

// StartOrResumeOutput contains the next actionable leaf, or the
// tree-complete signal.
type StartOrResumeOutput struct {
	Result *domain.StartResult
}

// StartOrResume is the use case driving stepwise execution: it returns
// the next non-completed leaf in traversal order, starting it if needed.
type StartOrResume struct {
	projects domain.ProjectOpener
	clock    domain.Clock
}

// NewStartOrResume creates a new StartOrResume use case.
func NewStartOrResume(projects domain.ProjectOpener, clock domain.Clock) *StartOrResume {
	return &StartOrResume{projects: projects, clock: clock}
}

// Execute walks the main task's subtree for the next actionable leaf.
// Calling it again without an intervening completion returns the same
// leaf and changes nothing.
func (uc *StartOrResume) Execute(_ context.Context, in StartOrResumeInput) (*StartOrResumeOutput, error) {
	if in.MainTaskID <= 0 {
		return nil, domain.ErrInvalidTaskID
	}

	project, err := uc.projects.Open(in.ProjectDir)
	if err != nil {
		return nil, err
	}

	var out StartOrResumeOutput
	err = project.Store.WithLock(func(tree *domain.Tree) error {
		result, err := tree.StartOrResume(in.MainTaskID, uc.clock.Now())
		if err != nil {
			return err
		}
		out.Result = result
		return nil
	})
	if err != nil {
		return nil, err
	}

	switch {
	case out.Result.TreeComplete:
		project.Log.Info(in.MainTaskID, "navigate", "tree complete")
	case out.Result.Resumed:
		project.Log.Info(in.MainTaskID, "navigate", fmt.Sprintf("resumed %s: %q", out.Result.Path, out.Result.Name))
	default:
		project.Log.Info(in.MainTaskID, "navigate", fmt.Sprintf("started %s: %q", out.Result.Path, out.Result.Name))
	}
	return &out, nil
}
