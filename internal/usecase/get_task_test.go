package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tasktree/tasktree/internal/domain"
)

func TestGetTask_Execute(t *testing.T) {
	t.Run("resolves a main task", func(t *testing.T) {
		opener := newMockOpener()
		seedMainTask(opener, "main")
		seedSubTask(opener, "1", 1, "sub")
		uc := NewGetTask(opener)

		out, err := uc.Execute(context.Background(), GetTaskInput{ProjectDir: testProjectDir, Path: "1"})
		require.NoError(t, err)

		require.NotNil(t, out.MainTask)
		assert.Nil(t, out.SubTask)
		assert.Equal(t, "main", out.MainTask.Name)
		assert.Len(t, out.MainTask.Children, 1)
		assert.Equal(t, "1", out.Path)
	})

	t.Run("resolves a sub-task", func(t *testing.T) {
		opener := newMockOpener()
		seedMainTask(opener, "main")
		seedSubTask(opener, "1", 1, "sub")
		uc := NewGetTask(opener)

		out, err := uc.Execute(context.Background(), GetTaskInput{ProjectDir: testProjectDir, Path: "1.1"})
		require.NoError(t, err)

		assert.Nil(t, out.MainTask)
		require.NotNil(t, out.SubTask)
		assert.Equal(t, "sub", out.SubTask.Name)
		assert.Equal(t, "1.1", out.Path)
	})

	t.Run("snapshot is detached from the store", func(t *testing.T) {
		opener := newMockOpener()
		seedMainTask(opener, "main")
		uc := NewGetTask(opener)

		out, err := uc.Execute(context.Background(), GetTaskInput{ProjectDir: testProjectDir, Path: "1"})
		require.NoError(t, err)

		out.MainTask.Name = "mutated"
		require.NoError(t, opener.store.View(func(tree *domain.Tree) error {
			assert.Equal(t, "main", tree.MainTask(1).Name)
			return nil
		}))
	})

	t.Run("unknown path", func(t *testing.T) {
		opener := newMockOpener()
		uc := NewGetTask(opener)

		_, err := uc.Execute(context.Background(), GetTaskInput{ProjectDir: testProjectDir, Path: "2"})
		assert.ErrorIs(t, err, domain.ErrTaskNotFound)
	})
}

func TestListMainTasks_Execute(t *testing.T) {
	opener := newMockOpener()
	seedMainTask(opener, "first")
	seedMainTask(opener, "second")
	uc := NewListMainTasks(opener)

	out, err := uc.Execute(context.Background(), ListMainTasksInput{ProjectDir: testProjectDir})
	require.NoError(t, err)

	require.Len(t, out.Tasks, 2)
	// Creation order.
	assert.Equal(t, "first", out.Tasks[0].Name)
	assert.Equal(t, "second", out.Tasks[1].Name)
}

func TestListMainTasks_Empty(t *testing.T) {
	opener := newMockOpener()
	uc := NewListMainTasks(opener)

	out, err := uc.Execute(context.Background(), ListMainTasksInput{ProjectDir: testProjectDir})
	require.NoError(t, err)
	assert.Empty(t, out.Tasks)
}

func TestFindMainTasks_Execute(t *testing.T) {
	opener := newMockOpener()
	seedMainTask(opener, "deploy staging")
	seedMainTask(opener, "write docs")
	seedMainTask(opener, "deploy prod")
	uc := NewFindMainTasks(opener)

	out, err := uc.Execute(context.Background(), FindMainTasksInput{
		ProjectDir: testProjectDir,
		NamePrefix: "deploy",
	})
	require.NoError(t, err)

	require.Len(t, out.Tasks, 2)
	assert.Equal(t, "deploy prod", out.Tasks[0].Name)
	assert.Equal(t, "deploy staging", out.Tasks[1].Name)
}

func TestListSubTasks_Execute(t *testing.T) {
	opener := newMockOpener()
	mainID := seedMainTask(opener, "main")
	seedSubTask(opener, "1", 1, "first")
	seedSubTask(opener, "1.1", 1, "nested")
	seedSubTask(opener, "1", 2, "second")
	uc := NewListSubTasks(opener)

	out, err := uc.Execute(context.Background(), ListSubTasksInput{
		ProjectDir: testProjectDir,
		MainTaskID: mainID,
	})
	require.NoError(t, err)

	require.Len(t, out.Tasks, 3)
	assert.Equal(t, []string{"1.1", "1.1.1", "1.2"},
		[]string{out.Tasks[0].Path, out.Tasks[1].Path, out.Tasks[2].Path})
	assert.False(t, out.Tasks[0].Leaf)
	assert.True(t, out.Tasks[1].Leaf)

	_, err = uc.Execute(context.Background(), ListSubTasksInput{ProjectDir: testProjectDir, MainTaskID: 9})
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}
