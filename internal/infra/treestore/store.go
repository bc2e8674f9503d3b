// Package treestore persists one project's task tree as a JSON file
// under <project>/.tasktree/, guarded by a file lock.
package treestore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
	"time"

	"github.com/tasktree/tasktree/internal/domain"
)

const (
	// DefaultLockTimeout bounds the wait for the project lock.
	DefaultLockTimeout = 5 * time.Second

	lockRetryInterval = 20 * time.Millisecond
)

// Store implements domain.TreeStore using a JSON file.
// Fields are ordered to minimize memory padding.
type Store struct {
	path        string
	lockPath    string
	lockTimeout time.Duration
}

// Option configures a Store.
type Option func(*Store)

// WithLockTimeout sets the bounded wait for the project lock.
func WithLockTimeout(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.lockTimeout = d
		}
	}
}

// Open resolves the backing record for a project directory, creating
// the .tasktree directory on first use. It fails with
// domain.ErrStoreUnavailable if the project directory is inaccessible.
func Open(projectDir string, opts ...Option) (*Store, error) {
	info, err := os.Stat(projectDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrStoreUnavailable, projectDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", domain.ErrStoreUnavailable, projectDir)
	}

	dir := filepath.Join(projectDir, ".tasktree")
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("%w: create %s: %v", domain.ErrStoreUnavailable, dir, err)
	}

	s := &Store{
		path:        filepath.Join(dir, "tasks.json"),
		lockPath:    filepath.Join(dir, "tasks.json.lock"),
		lockTimeout: DefaultLockTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Path returns the location of the store file.
func (s *Store) Path() string {
	return s.path
}

// WithLock runs fn under the exclusive project lock and persists the
// tree atomically if fn succeeds. On any failure the previously
// persisted tree stays untouched.
func (s *Store) WithLock(fn func(*domain.Tree) error) error {
	lock, err := s.acquireLock(syscall.LOCK_EX)
	if err != nil {
		return err
	}
	defer s.releaseLock(lock)

	tree, err := s.read()
	if err != nil {
		return err
	}

	if err := fn(tree); err != nil {
		return err
	}

	return s.write(tree)
}

// View runs fn against the latest persisted tree under a shared lock.
func (s *Store) View(fn func(*domain.Tree) error) error {
	lock, err := s.acquireLock(syscall.LOCK_SH)
	if err != nil {
		return err
	}
	defer s.releaseLock(lock)

	tree, err := s.read()
	if err != nil {
		return err
	}

	return fn(tree)
}

// acquireLock takes the project flock, polling with LOCK_NB so that a
// held lock converts into domain.ErrLockTimeout instead of blocking
// forever.
func (s *Store) acquireLock(lockType int) (*os.File, error) {
	lock, err := os.OpenFile(s.lockPath, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}

	deadline := time.Now().Add(s.lockTimeout)
	for {
		err := syscall.Flock(int(lock.Fd()), lockType|syscall.LOCK_NB)
		if err == nil {
			return lock, nil
		}
		if err != syscall.EWOULDBLOCK && err != syscall.EAGAIN {
			_ = lock.Close()
			return nil, fmt.Errorf("acquire lock: %w", err)
		}
		if time.Now().After(deadline) {
			_ = lock.Close()
			return nil, fmt.Errorf("%s: %w", s.lockPath, domain.ErrLockTimeout)
		}
		time.Sleep(lockRetryInterval)
	}
}

func (s *Store) releaseLock(lock *os.File) {
	_ = syscall.Flock(int(lock.Fd()), syscall.LOCK_UN)
	_ = lock.Close()
}

func (s *Store) read() (*domain.Tree, error) {
	content, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			// A project exists implicitly from its first write.
			return domain.NewTree(), nil
		}
		return nil, fmt.Errorf("read store file: %w", err)
	}

	var tree domain.Tree
	if err := json.Unmarshal(content, &tree); err != nil {
		return nil, fmt.Errorf("parse store file: %w", err)
	}
	if tree.NextID < 1 {
		tree.NextID = 1
	}

	return &tree, nil
}

// write serializes the tree and swaps it in with write-then-rename so
// a reader never observes a partially written file. Sibling order is
// carried by the JSON arrays verbatim.
func (s *Store) write(tree *domain.Tree) error {
	content, err := json.MarshalIndent(tree, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal tree: %w", err)
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, content, 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}

	return nil
}

// Ensure Store implements TreeStore.
var _ domain.TreeStore = (*Store)(nil)
