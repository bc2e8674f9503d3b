package usecase

import (
	"context"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/tasktree/tasktree/internal/domain"
)

// PlanTask is one main task in a YAML plan, with its numbered sub-tasks.
type PlanTask struct {
	Name        string            `yaml:"name"`
	Description string            `yaml:"description"`
	SubTasks    []NumberedSubTask `yaml:"subtasks"`
}

// Plan is the document format accepted by ImportPlan. Sub-task numbers
// are relative to their main task ("1", "1.2", ...), since main task
// ids are assigned at import time.
type Plan struct {
	Tasks []PlanTask `yaml:"tasks"`
}

// ImportPlanInput contains the parameters for importing a plan.
type ImportPlanInput struct {
	ProjectDir string // Project directory (required)
	Source     []byte // YAML plan document
}

// ImportPlanOutput contains the ids of the created main tasks.
type ImportPlanOutput struct {
	MainTaskIDs []int
	SubTasks    int
}

// ImportPlan is the use case for creating a whole task breakdown from a
// YAML plan file in one locked operation.
type ImportPlan struct {
	projects domain.ProjectOpener
	clock    domain.Clock
}

// NewImportPlan creates a new ImportPlan use case.
func NewImportPlan(projects domain.ProjectOpener, clock domain.Clock) *ImportPlan {
	return &ImportPlan{projects: projects, clock: clock}
}

// Execute parses and applies the plan. Either the whole plan applies or
// none of it does.
func (uc *ImportPlan) Execute(_ context.Context, in ImportPlanInput) (*ImportPlanOutput, error) {
	var plan Plan
	if err := yaml.Unmarshal(in.Source, &plan); err != nil {
		return nil, fmt.Errorf("parse plan: %w", err)
	}
	if len(plan.Tasks) == 0 {
		return nil, fmt.Errorf("parse plan: no tasks defined")
	}
	for _, pt := range plan.Tasks {
		if pt.Name == "" {
			return nil, domain.ErrEmptyName
		}
		for _, st := range pt.SubTasks {
			if st.Name == "" {
				return nil, domain.ErrEmptyName
			}
			if _, err := domain.ParsePath(st.Number); err != nil {
				return nil, fmt.Errorf("sub-task number %q: %w", st.Number, domain.ErrInvalidPosition)
			}
		}
	}

	project, err := uc.projects.Open(in.ProjectDir)
	if err != nil {
		return nil, err
	}

	var out ImportPlanOutput
	err = project.Store.WithLock(func(tree *domain.Tree) error {
		now := uc.clock.Now()
		for _, pt := range plan.Tasks {
			m := tree.AddMainTask(pt.Name, pt.Description, now)
			out.MainTaskIDs = append(out.MainTaskIDs, m.ID)
			root := strconv.Itoa(m.ID)
			for _, st := range pt.SubTasks {
				levels, _ := domain.ParsePath(st.Number)
				parentPath := root
				if len(levels) > 1 {
					parentPath = root + "." + domain.JoinPath(levels[:len(levels)-1])
				}
				if _, _, err := tree.AddChild(parentPath, levels[len(levels)-1], st.Name, now); err != nil {
					return fmt.Errorf("task %q sub-task %s: %w", pt.Name, st.Number, err)
				}
				out.SubTasks++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	project.Log.Info(0, "import", fmt.Sprintf("imported %d main tasks, %d sub-tasks", len(out.MainTaskIDs), out.SubTasks))
	return &out, nil
}
