package domain

import "time"

// TreeStore provides durable, lock-guarded access to one project's tree.
type TreeStore interface {
	// WithLock acquires the exclusive project lock, loads the current
	// tree (an empty one on first use), runs fn, and persists the tree
	// atomically only if fn succeeds. The lock is released on every
	// exit path. A bounded lock wait that expires yields ErrLockTimeout.
	WithLock(fn func(*Tree) error) error

	// View acquires a shared lock and runs fn against the latest
	// persisted tree without writing it back.
	View(fn func(*Tree) error) error
}

// Project bundles the per-project collaborators for one operation. It
// is opened on demand and passed explicitly; there is no process-wide
// project state.
type Project struct {
	Store TreeStore
	Log   Logger
	Dir   string
}

// ProjectOpener resolves a project directory to its store and logger.
type ProjectOpener interface {
	// Open prepares the project's backing store. It fails with
	// ErrStoreUnavailable if the directory is inaccessible.
	Open(projectDir string) (*Project, error)
}

// Logger provides leveled, main-task-scoped logging.
// Implementations must tolerate a zero taskID (project-global entry).
type Logger interface {
	Debug(taskID int, category, msg string)
	Info(taskID int, category, msg string)
	Warn(taskID int, category, msg string)
	Error(taskID int, category, msg string)
}

// Clock provides the current time.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the system time.
type RealClock struct{}

// Now returns the current system time.
func (RealClock) Now() time.Time {
	return time.Now()
}
