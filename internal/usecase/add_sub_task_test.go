package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tasktree/tasktree/internal/domain"
)

func TestAddSubTask_Execute(t *testing.T) {
	t.Run("adds directly under the main task", func(t *testing.T) {
		opener := newMockOpener()
		mainID := seedMainTask(opener, "main")
		uc := NewAddSubTask(opener, &mockClock{now: testNow})

		out, err := uc.Execute(context.Background(), AddSubTaskInput{
			ProjectDir:    testProjectDir,
			MainTaskID:    mainID,
			SubTaskNumber: 1,
			Name:          "sub",
		})
		require.NoError(t, err)

		assert.Equal(t, "1.1", out.Path)
		assert.Equal(t, "sub", out.Task.Name)
		assert.Equal(t, domain.StatusPending, out.Task.Status)
	})

	t.Run("adds under an explicit parent path", func(t *testing.T) {
		opener := newMockOpener()
		mainID := seedMainTask(opener, "main")
		seedSubTask(opener, "1", 2, "parent")
		uc := NewAddSubTask(opener, &mockClock{now: testNow})

		out, err := uc.Execute(context.Background(), AddSubTaskInput{
			ProjectDir:    testProjectDir,
			MainTaskID:    mainID,
			ParentPath:    "1.2",
			SubTaskNumber: 1,
			Name:          "nested",
		})
		require.NoError(t, err)
		assert.Equal(t, "1.2.1", out.Path)
	})

	t.Run("rejects a parent path under another main task", func(t *testing.T) {
		opener := newMockOpener()
		seedMainTask(opener, "one")
		seedMainTask(opener, "two")
		uc := NewAddSubTask(opener, &mockClock{now: testNow})

		_, err := uc.Execute(context.Background(), AddSubTaskInput{
			ProjectDir:    testProjectDir,
			MainTaskID:    1,
			ParentPath:    "2.1",
			SubTaskNumber: 1,
			Name:          "sub",
		})
		assert.ErrorIs(t, err, domain.ErrInvalidParentPath)
	})

	t.Run("rejects a malformed parent path", func(t *testing.T) {
		opener := newMockOpener()
		mainID := seedMainTask(opener, "main")
		uc := NewAddSubTask(opener, &mockClock{now: testNow})

		_, err := uc.Execute(context.Background(), AddSubTaskInput{
			ProjectDir:    testProjectDir,
			MainTaskID:    mainID,
			ParentPath:    "1.x",
			SubTaskNumber: 1,
			Name:          "sub",
		})
		assert.ErrorIs(t, err, domain.ErrInvalidParentPath)
	})

	t.Run("rejects an occupied position and keeps the tree unchanged", func(t *testing.T) {
		opener := newMockOpener()
		mainID := seedMainTask(opener, "main")
		seedSubTask(opener, "1", 1, "existing")
		uc := NewAddSubTask(opener, &mockClock{now: testNow})

		_, err := uc.Execute(context.Background(), AddSubTaskInput{
			ProjectDir:    testProjectDir,
			MainTaskID:    mainID,
			SubTaskNumber: 1,
			Name:          "clash",
		})
		assert.ErrorIs(t, err, domain.ErrDuplicatePosition)

		require.NoError(t, opener.store.View(func(tree *domain.Tree) error {
			assert.Len(t, tree.MainTask(mainID).Children, 1)
			assert.Equal(t, "existing", tree.MainTask(mainID).Children[0].Name)
			return nil
		}))
	})

	t.Run("rejects invalid inputs", func(t *testing.T) {
		opener := newMockOpener()
		uc := NewAddSubTask(opener, &mockClock{now: testNow})
		ctx := context.Background()

		_, err := uc.Execute(ctx, AddSubTaskInput{ProjectDir: testProjectDir, MainTaskID: 1, SubTaskNumber: 1})
		assert.ErrorIs(t, err, domain.ErrEmptyName)

		_, err = uc.Execute(ctx, AddSubTaskInput{ProjectDir: testProjectDir, SubTaskNumber: 1, Name: "x"})
		assert.ErrorIs(t, err, domain.ErrInvalidTaskID)

		_, err = uc.Execute(ctx, AddSubTaskInput{ProjectDir: testProjectDir, MainTaskID: 1, Name: "x"})
		assert.ErrorIs(t, err, domain.ErrInvalidPosition)
	})

	t.Run("unknown main task", func(t *testing.T) {
		opener := newMockOpener()
		uc := NewAddSubTask(opener, &mockClock{now: testNow})

		_, err := uc.Execute(context.Background(), AddSubTaskInput{
			ProjectDir:    testProjectDir,
			MainTaskID:    9,
			SubTaskNumber: 1,
			Name:          "sub",
		})
		assert.ErrorIs(t, err, domain.ErrTaskNotFound)
	})
}

func TestAddSubTasks_Execute(t *testing.T) {
	t.Run("applies all entries in order", func(t *testing.T) {
		opener := newMockOpener()
		mainID := seedMainTask(opener, "main")
		uc := NewAddSubTasks(opener, &mockClock{now: testNow})

		out, err := uc.Execute(context.Background(), AddSubTasksInput{
			ProjectDir: testProjectDir,
			MainTaskID: mainID,
			SubTasks: []NumberedSubTask{
				{Number: "1", Name: "schema"},
				{Number: "2", Name: "handlers"},
				{Number: "2.1", Name: "login"},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"1.1", "1.2", "1.2.1"}, out.Paths)
	})

	t.Run("creates placeholders for missing levels", func(t *testing.T) {
		opener := newMockOpener()
		mainID := seedMainTask(opener, "main")
		uc := NewAddSubTasks(opener, &mockClock{now: testNow})

		out, err := uc.Execute(context.Background(), AddSubTasksInput{
			ProjectDir: testProjectDir,
			MainTaskID: mainID,
			SubTasks:   []NumberedSubTask{{Number: "3.1", Name: "deep"}},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"1.3.1"}, out.Paths)

		require.NoError(t, opener.store.View(func(tree *domain.Tree) error {
			m := tree.MainTask(mainID)
			require.Len(t, m.Children, 1)
			assert.Equal(t, "Task 1.3", m.Children[0].Name)
			return nil
		}))
	})

	t.Run("a bad entry rolls back the whole batch", func(t *testing.T) {
		opener := newMockOpener()
		mainID := seedMainTask(opener, "main")
		seedSubTask(opener, "1", 2, "occupied")
		uc := NewAddSubTasks(opener, &mockClock{now: testNow})

		_, err := uc.Execute(context.Background(), AddSubTasksInput{
			ProjectDir: testProjectDir,
			MainTaskID: mainID,
			SubTasks: []NumberedSubTask{
				{Number: "1", Name: "fine"},
				{Number: "2", Name: "clash"},
			},
		})
		assert.ErrorIs(t, err, domain.ErrDuplicatePosition)

		require.NoError(t, opener.store.View(func(tree *domain.Tree) error {
			// The first entry must not have been persisted either.
			assert.Len(t, tree.MainTask(mainID).Children, 1)
			return nil
		}))
	})

	t.Run("validates entries before touching the store", func(t *testing.T) {
		opener := newMockOpener()
		uc := NewAddSubTasks(opener, &mockClock{now: testNow})

		_, err := uc.Execute(context.Background(), AddSubTasksInput{
			ProjectDir: testProjectDir,
			MainTaskID: 1,
			SubTasks:   []NumberedSubTask{{Number: "0", Name: "x"}},
		})
		assert.ErrorIs(t, err, domain.ErrInvalidPosition)
		assert.Empty(t, opener.opened)
	})

	t.Run("empty batch is a no-op", func(t *testing.T) {
		opener := newMockOpener()
		uc := NewAddSubTasks(opener, &mockClock{now: testNow})

		out, err := uc.Execute(context.Background(), AddSubTasksInput{
			ProjectDir: testProjectDir,
			MainTaskID: 1,
		})
		require.NoError(t, err)
		assert.Empty(t, out.Paths)
	})
}
