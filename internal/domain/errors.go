package domain

import "errors"

// Domain errors.
var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrInvalidParentPath = errors.New("invalid parent path")
	ErrDuplicatePosition = errors.New("a sub-task already occupies that position")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrNotALeaf          = errors.New("task has sub-tasks and cannot be completed directly")
	ErrLockTimeout       = errors.New("timed out waiting for project lock")
	ErrStoreUnavailable  = errors.New("project store unavailable")
	ErrEmptyName         = errors.New("name cannot be empty")
	ErrEmptyProjectDir   = errors.New("project directory cannot be empty")
	ErrInvalidTaskID     = errors.New("task id must be a positive integer")
	ErrInvalidPosition   = errors.New("sub-task number must be a positive integer")
)
