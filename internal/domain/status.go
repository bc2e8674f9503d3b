package domain

// Status represents the lifecycle state of a task node.
type Status string

const (
	StatusPending    Status = "pending"     // Created, no work started
	StatusInProgress Status = "in_progress" // At least one descendant leaf started
	StatusCompleted  Status = "completed"   // All work finished
)

// AllStatuses returns all valid status values.
func AllStatuses() []Status {
	return []Status{
		StatusPending,
		StatusInProgress,
		StatusCompleted,
	}
}

// transitions defines the allowed status transitions for leaf nodes.
// The machine is monotonic: pending → in_progress → completed, no way back.
var transitions = map[Status][]Status{
	StatusPending:    {StatusInProgress},
	StatusInProgress: {StatusCompleted},
	StatusCompleted:  {},
}

// CanTransitionTo returns true if the status can transition to the target status.
func (s Status) CanTransitionTo(target Status) bool {
	allowed, ok := transitions[s]
	if !ok {
		return false
	}
	for _, t := range allowed {
		if t == target {
			return true
		}
	}
	return false
}

// IsTerminal returns true if the status is a terminal state.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted
}

// Display returns a human-readable representation of the status.
func (s Status) Display() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusInProgress:
		return "In Progress"
	case StatusCompleted:
		return "Completed"
	default:
		return string(s)
	}
}

// Recompute derives a parent's status from its children's statuses.
// It is a pure function: same child statuses, same result.
//
//   - all children completed → completed
//   - any child in_progress or completed → in_progress
//   - otherwise → pending
func Recompute(children []*Node) Status {
	if len(children) == 0 {
		return StatusPending
	}
	allCompleted := true
	anyTouched := false
	for _, c := range children {
		switch c.Status {
		case StatusCompleted:
			anyTouched = true
		case StatusInProgress:
			anyTouched = true
			allCompleted = false
		default:
			allCompleted = false
		}
	}
	if allCompleted {
		return StatusCompleted
	}
	if anyTouched {
		return StatusInProgress
	}
	return StatusPending
}
