package domain

import (
	"fmt"
	"time"
)

// StartResult is the outcome of a start-or-resume walk.
// Fields are ordered to minimize memory padding.
type StartResult struct {
	Path         string `json:"path,omitempty"`
	Name         string `json:"name,omitempty"`
	Status       Status `json:"status,omitempty"`
	Resumed      bool   `json:"resumed,omitempty"`
	TreeComplete bool   `json:"treeComplete,omitempty"`
}

// StartOrResume finds the next actionable leaf under the given main
// task: the first leaf in pre-order traversal (siblings in ascending
// number order) whose status is not completed.
//
//   - A pending leaf is transitioned to in_progress, every ancestor
//     status is re-derived, and the leaf is returned as newly started.
//   - An in_progress leaf is returned unchanged, so repeated calls
//     resume the same task until it is explicitly completed.
//   - If every leaf is completed, the main task is marked completed and
//     TreeComplete is reported.
//
// A main task with no children is treated as its own single leaf.
func (t *Tree) StartOrResume(mainID int, now time.Time) (*StartResult, error) {
	m := t.MainTask(mainID)
	if m == nil {
		return nil, fmt.Errorf("main task %d: %w", mainID, ErrTaskNotFound)
	}

	if m.IsLeaf() {
		switch m.Status {
		case StatusCompleted:
			return &StartResult{TreeComplete: true}, nil
		case StatusInProgress:
			return &StartResult{Path: m.Path(), Name: m.Name, Status: m.Status, Resumed: true}, nil
		default:
			m.Status = StatusInProgress
			m.Started = now
			return &StartResult{Path: m.Path(), Name: m.Name, Status: m.Status}, nil
		}
	}

	path, leaf := nextLeaf(m.Path(), m.Children)
	if leaf == nil {
		// Every leaf is completed; propagation confirms the ancestors.
		t.Propagate(m, now)
		return &StartResult{TreeComplete: true}, nil
	}

	if leaf.Status == StatusInProgress {
		return &StartResult{Path: path, Name: leaf.Name, Status: leaf.Status, Resumed: true}, nil
	}

	leaf.Status = StatusInProgress
	leaf.Started = now
	t.Propagate(m, now)
	return &StartResult{Path: path, Name: leaf.Name, Status: leaf.Status}, nil
}

// nextLeaf returns the first non-completed leaf in pre-order, with its
// hierarchical id, or nil if the subtree holds none.
func nextLeaf(prefix string, nodes []*Node) (string, *Node) {
	for _, n := range nodes {
		path := prefix + "." + JoinPath([]int{n.Number})
		if n.IsLeaf() {
			if n.Status != StatusCompleted {
				return path, n
			}
			continue
		}
		if p, leaf := nextLeaf(path, n.Children); leaf != nil {
			return p, leaf
		}
	}
	return "", nil
}
