package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tasktree/tasktree/internal/domain"
)

// The full lifecycle through the service layer: create a task, break it
// down, step through the work, and confirm completion.
func TestWorkflow(t *testing.T) {
	opener := newMockOpener()
	clock := &mockClock{now: testNow}
	ctx := context.Background()

	add := NewAddMainTask(opener, clock)
	sub := NewAddSubTask(opener, clock)
	start := NewStartOrResume(opener, clock)
	done := NewCompleteTask(opener, clock)
	get := NewGetTask(opener)

	created, err := add.Execute(ctx, AddMainTaskInput{ProjectDir: testProjectDir, Name: "Implement auth"})
	require.NoError(t, err)
	require.Equal(t, 1, created.Task.ID)

	added, err := sub.Execute(ctx, AddSubTaskInput{
		ProjectDir:    testProjectDir,
		MainTaskID:    1,
		SubTaskNumber: 1,
		Name:          "Write schema",
	})
	require.NoError(t, err)
	require.Equal(t, "1.1", added.Path)

	started, err := start.Execute(ctx, StartOrResumeInput{ProjectDir: testProjectDir, MainTaskID: 1})
	require.NoError(t, err)
	require.Equal(t, "1.1", started.Result.Path)
	require.Equal(t, domain.StatusInProgress, started.Result.Status)

	completed, err := done.Execute(ctx, CompleteTaskInput{ProjectDir: testProjectDir, Path: "1.1"})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, completed.MainTaskStatus)

	final, err := start.Execute(ctx, StartOrResumeInput{ProjectDir: testProjectDir, MainTaskID: 1})
	require.NoError(t, err)
	assert.True(t, final.Result.TreeComplete)

	snapshot, err := get.Execute(ctx, GetTaskInput{ProjectDir: testProjectDir, Path: "1"})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, snapshot.MainTask.Status)
	assert.NotEmpty(t, opener.log.lines)
}
