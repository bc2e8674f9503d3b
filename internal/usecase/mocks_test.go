package usecase

import (
	"fmt"
	"time"

	"github.com/tasktree/tasktree/internal/domain"
)

const testProjectDir = "/work/project"

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// mockClock is a test double for domain.Clock.
type mockClock struct {
	now time.Time
}

func (m *mockClock) Now() time.Time {
	return m.now
}

// memStore is an in-memory test double for domain.TreeStore. It mimics
// the real store's transactional behavior: fn runs against a copy, and
// the copy replaces the kept tree only if fn succeeds.
type memStore struct {
	tree    *domain.Tree
	lockErr error
}

func newMemStore() *memStore {
	return &memStore{tree: domain.NewTree()}
}

func (s *memStore) WithLock(fn func(*domain.Tree) error) error {
	if s.lockErr != nil {
		return s.lockErr
	}
	work := cloneTree(s.tree)
	if err := fn(work); err != nil {
		return err
	}
	s.tree = work
	return nil
}

func (s *memStore) View(fn func(*domain.Tree) error) error {
	if s.lockErr != nil {
		return s.lockErr
	}
	return fn(cloneTree(s.tree))
}

func cloneTree(t *domain.Tree) *domain.Tree {
	c := &domain.Tree{NextID: t.NextID}
	for _, m := range t.Tasks {
		c.Tasks = append(c.Tasks, m.Clone())
	}
	return c
}

// mockLogger records log lines for assertions.
type mockLogger struct {
	lines []string
}

func (l *mockLogger) log(level string, taskID int, category, msg string) {
	l.lines = append(l.lines, fmt.Sprintf("%s task-%d [%s] %s", level, taskID, category, msg))
}

func (l *mockLogger) Debug(taskID int, category, msg string) { l.log("DEBUG", taskID, category, msg) }
func (l *mockLogger) Info(taskID int, category, msg string)  { l.log("INFO", taskID, category, msg) }
func (l *mockLogger) Warn(taskID int, category, msg string)  { l.log("WARN", taskID, category, msg) }
func (l *mockLogger) Error(taskID int, category, msg string) { l.log("ERROR", taskID, category, msg) }

// mockOpener is a test double for domain.ProjectOpener serving a single
// in-memory project.
type mockOpener struct {
	store   *memStore
	log     *mockLogger
	openErr error
	opened  []string
}

func newMockOpener() *mockOpener {
	return &mockOpener{store: newMemStore(), log: &mockLogger{}}
}

func (o *mockOpener) Open(projectDir string) (*domain.Project, error) {
	if o.openErr != nil {
		return nil, o.openErr
	}
	if projectDir == "" {
		return nil, domain.ErrEmptyProjectDir
	}
	o.opened = append(o.opened, projectDir)
	return &domain.Project{Dir: projectDir, Store: o.store, Log: o.log}, nil
}

// seedMainTask creates a main task directly in the store.
func seedMainTask(o *mockOpener, name string) int {
	var id int
	_ = o.store.WithLock(func(tree *domain.Tree) error {
		id = tree.AddMainTask(name, "", testNow).ID
		return nil
	})
	return id
}

// seedSubTask creates a sub-task directly in the store.
func seedSubTask(o *mockOpener, parentPath string, number int, name string) {
	_ = o.store.WithLock(func(tree *domain.Tree) error {
		_, _, err := tree.AddChild(parentPath, number, name, testNow)
		return err
	})
}
