package usecase

import (
	"context"
	"fmt"
	"strconv"

	"github.com/tasktree/tasktree/internal/domain"
)

// NumberedSubTask is one entry of a batch insert: a full hierarchical
// number relative to the main task (e.g. "2.1" is child 1 of the main
// task's sub-task 2) plus the node name.
type NumberedSubTask struct {
	Number string `json:"number" yaml:"number"`
	Name   string `json:"name" yaml:"name"`
}

// AddSubTasksInput contains the parameters for a batch sub-task insert.
// Fields are ordered to minimize memory padding.
type AddSubTasksInput struct {
	ProjectDir string            // Project directory (required)
	SubTasks   []NumberedSubTask // Sub-tasks to create, applied in order
	MainTaskID int               // Id of the main task (required)
}

// AddSubTasksOutput contains the result of a batch sub-task insert.
type AddSubTasksOutput struct {
	Paths []string // Hierarchical ids of the created sub-tasks, in input order
}

// AddSubTasks is the use case for creating several sub-tasks in one
// locked operation. Either every entry applies or none does.
type AddSubTasks struct {
	projects domain.ProjectOpener
	clock    domain.Clock
}

// NewAddSubTasks creates a new AddSubTasks use case.
func NewAddSubTasks(projects domain.ProjectOpener, clock domain.Clock) *AddSubTasks {
	return &AddSubTasks{projects: projects, clock: clock}
}

// Execute inserts all sub-tasks under the main task. Each entry's
// number is split into parent levels plus sibling position; missing
// intermediate levels are created as placeholders.
func (uc *AddSubTasks) Execute(_ context.Context, in AddSubTasksInput) (*AddSubTasksOutput, error) {
	if in.MainTaskID <= 0 {
		return nil, domain.ErrInvalidTaskID
	}
	if len(in.SubTasks) == 0 {
		return &AddSubTasksOutput{}, nil
	}
	for _, st := range in.SubTasks {
		if st.Name == "" {
			return nil, domain.ErrEmptyName
		}
		if _, err := domain.ParsePath(st.Number); err != nil {
			return nil, fmt.Errorf("sub-task number %q: %w", st.Number, domain.ErrInvalidPosition)
		}
	}

	project, err := uc.projects.Open(in.ProjectDir)
	if err != nil {
		return nil, err
	}

	root := strconv.Itoa(in.MainTaskID)
	var out AddSubTasksOutput
	err = project.Store.WithLock(func(tree *domain.Tree) error {
		if tree.MainTask(in.MainTaskID) == nil {
			return fmt.Errorf("main task %d: %w", in.MainTaskID, domain.ErrTaskNotFound)
		}
		for _, st := range in.SubTasks {
			levels, _ := domain.ParsePath(st.Number)
			parentPath := root
			if len(levels) > 1 {
				parentPath = root + "." + domain.JoinPath(levels[:len(levels)-1])
			}
			_, path, err := tree.AddChild(parentPath, levels[len(levels)-1], st.Name, uc.clock.Now())
			if err != nil {
				return fmt.Errorf("sub-task %s: %w", st.Number, err)
			}
			out.Paths = append(out.Paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	project.Log.Info(in.MainTaskID, "task", fmt.Sprintf("created %d sub-tasks", len(out.Paths)))
	return &out, nil
}
