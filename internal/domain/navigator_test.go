package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTree_StartOrResume(t *testing.T) {
	t.Run("starts the first pending leaf", func(t *testing.T) {
		tree := NewTree()
		tree.AddMainTask("main", "", testNow)
		_, _, err := tree.AddChild("1", 1, "first", testNow)
		require.NoError(t, err)
		_, _, err = tree.AddChild("1", 2, "second", testNow)
		require.NoError(t, err)

		res, err := tree.StartOrResume(1, testNow)
		require.NoError(t, err)
		assert.Equal(t, "1.1", res.Path)
		assert.Equal(t, "first", res.Name)
		assert.Equal(t, StatusInProgress, res.Status)
		assert.False(t, res.Resumed)
		assert.False(t, res.TreeComplete)

		// Ancestors follow the started leaf.
		assert.Equal(t, StatusInProgress, tree.MainTask(1).Status)
	})

	t.Run("repeated calls resume the same leaf", func(t *testing.T) {
		tree := NewTree()
		tree.AddMainTask("main", "", testNow)
		_, _, err := tree.AddChild("1", 1, "first", testNow)
		require.NoError(t, err)

		first, err := tree.StartOrResume(1, testNow)
		require.NoError(t, err)
		require.False(t, first.Resumed)

		second, err := tree.StartOrResume(1, testNow.Add(time.Minute))
		require.NoError(t, err)
		assert.True(t, second.Resumed)
		assert.Equal(t, first.Path, second.Path)
		assert.Equal(t, StatusInProgress, second.Status)

		// Started timestamp is not reset on resume.
		assert.Equal(t, testNow, tree.MainTask(1).Children[0].Started)
	})

	t.Run("walks depth first in sibling order", func(t *testing.T) {
		tree := NewTree()
		tree.AddMainTask("main", "", testNow)
		_, _, err := tree.AddChild("1.1", 1, "deep first", testNow)
		require.NoError(t, err)
		_, _, err = tree.AddChild("1.1", 2, "deep second", testNow)
		require.NoError(t, err)
		_, _, err = tree.AddChild("1", 2, "flat", testNow)
		require.NoError(t, err)

		res, err := tree.StartOrResume(1, testNow)
		require.NoError(t, err)
		require.Equal(t, "1.1.1", res.Path)
		require.NoError(t, tree.CompleteLeaf("1.1.1", testNow))

		res, err = tree.StartOrResume(1, testNow)
		require.NoError(t, err)
		require.Equal(t, "1.1.2", res.Path)
		require.NoError(t, tree.CompleteLeaf("1.1.2", testNow))

		res, err = tree.StartOrResume(1, testNow)
		require.NoError(t, err)
		assert.Equal(t, "1.2", res.Path)
	})

	t.Run("reports tree complete when every leaf is done", func(t *testing.T) {
		tree := NewTree()
		tree.AddMainTask("main", "", testNow)
		_, _, err := tree.AddChild("1", 1, "only", testNow)
		require.NoError(t, err)

		_, err = tree.StartOrResume(1, testNow)
		require.NoError(t, err)
		require.NoError(t, tree.CompleteLeaf("1.1", testNow))

		res, err := tree.StartOrResume(1, testNow)
		require.NoError(t, err)
		assert.True(t, res.TreeComplete)
		assert.Empty(t, res.Path)
		assert.Equal(t, StatusCompleted, tree.MainTask(1).Status)
	})

	t.Run("childless main task is its own leaf", func(t *testing.T) {
		tree := NewTree()
		tree.AddMainTask("standalone", "", testNow)

		res, err := tree.StartOrResume(1, testNow)
		require.NoError(t, err)
		assert.Equal(t, "1", res.Path)
		assert.Equal(t, StatusInProgress, res.Status)
		assert.False(t, res.Resumed)

		res, err = tree.StartOrResume(1, testNow)
		require.NoError(t, err)
		assert.True(t, res.Resumed)

		require.NoError(t, tree.CompleteLeaf("1", testNow))

		res, err = tree.StartOrResume(1, testNow)
		require.NoError(t, err)
		assert.True(t, res.TreeComplete)
	})

	t.Run("unknown main task", func(t *testing.T) {
		tree := NewTree()
		_, err := tree.StartOrResume(5, testNow)
		assert.ErrorIs(t, err, ErrTaskNotFound)
	})
}

// The full lifecycle: break down a task, step through it, finish it.
func TestTree_Workflow(t *testing.T) {
	tree := NewTree()
	m := tree.AddMainTask("Implement auth", "", testNow)
	require.Equal(t, 1, m.ID)

	_, path, err := tree.AddChild("1", 1, "Write schema", testNow)
	require.NoError(t, err)
	require.Equal(t, "1.1", path)

	res, err := tree.StartOrResume(1, testNow)
	require.NoError(t, err)
	require.Equal(t, "1.1", res.Path)
	require.Equal(t, StatusInProgress, res.Status)

	require.NoError(t, tree.CompleteLeaf("1.1", testNow))
	require.Equal(t, StatusCompleted, tree.MainTask(1).Status)

	res, err = tree.StartOrResume(1, testNow)
	require.NoError(t, err)
	assert.True(t, res.TreeComplete)
}
