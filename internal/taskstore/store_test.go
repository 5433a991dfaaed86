package taskstore

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/taskpilot/taskpilot/internal/models"
	"github.com/taskpilot/taskpilot/internal/taskerr"
)

// storeUnderTest runs the same behavioral tests against every Store
// implementation.
func storeUnderTest(t *testing.T, newStore func(t *testing.T) Store) {
	ctx := context.Background()

	t.Run("SaveAssignsID", func(t *testing.T) {
		store := newStore(t)

		saved, err := store.Save(ctx, models.NewTaskUnchecked("buy milk", nil, models.PriorityLow, ""))
		require.NoError(t, err)
		require.NotZero(t, saved.ID)

		second, err := store.Save(ctx, models.NewTaskUnchecked("walk dog", nil, "", ""))
		require.NoError(t, err)
		require.NotEqual(t, saved.ID, second.ID)
	})

	t.Run("FindByID", func(t *testing.T) {
		store := newStore(t)

		deadline := time.Now().Add(48 * time.Hour).UTC().Truncate(time.Second)
		task := models.NewTaskUnchecked("write report", &deadline, models.PriorityHigh, "max 5 pages")
		task.Metadata = map[string]any{"source": "chat"}

		saved, err := store.Save(ctx, task)
		require.NoError(t, err)

		got, err := store.FindByID(ctx, saved.ID)
		require.NoError(t, err)
		require.Equal(t, "write report", got.Description)
		require.Equal(t, models.PriorityHigh, got.Priority)
		require.Equal(t, "max 5 pages", got.Constraints)
		require.NotNil(t, got.Deadline)
		require.True(t, got.Deadline.Equal(deadline))
		require.Equal(t, "chat", got.Metadata["source"])
	})

	t.Run("FindByIDNotFound", func(t *testing.T) {
		store := newStore(t)

		_, err := store.FindByID(ctx, 9999)
		var nfe *taskerr.NotFoundError
		require.ErrorAs(t, err, &nfe)
	})

	t.Run("SaveUpdatesExisting", func(t *testing.T) {
		store := newStore(t)

		saved, err := store.Save(ctx, models.NewTaskUnchecked("buy milk", nil, "", ""))
		require.NoError(t, err)

		completed := saved.MarkCompleted(time.Now())
		_, err = store.Save(ctx, &completed)
		require.NoError(t, err)

		got, err := store.FindByID(ctx, saved.ID)
		require.NoError(t, err)
		require.True(t, got.Completed)
		require.NotNil(t, got.CompletedAt)
	})

	t.Run("UpdateMissingTaskFails", func(t *testing.T) {
		store := newStore(t)

		missing := models.NewTaskUnchecked("ghost", nil, "", "")
		missing.ID = 4242

		_, err := store.Save(ctx, missing)
		var nfe *taskerr.NotFoundError
		require.ErrorAs(t, err, &nfe)
	})

	t.Run("Filters", func(t *testing.T) {
		store := newStore(t)

		past := time.Now().Add(-time.Hour)
		future := time.Now().Add(time.Hour)

		root, err := store.Save(ctx, models.NewTaskUnchecked("project", nil, models.PriorityHigh, ""))
		require.NoError(t, err)

		sub := models.NewTaskUnchecked("subtask", &future, models.PriorityLow, "")
		sub.ParentID = &root.ID
		_, err = store.Save(ctx, sub)
		require.NoError(t, err)

		_, err = store.Save(ctx, models.NewTaskUnchecked("late", &past, "", ""))
		require.NoError(t, err)

		// A completed task with a past deadline is not overdue.
		finished, err := store.Save(ctx, models.NewTaskUnchecked("finished", &past, "", ""))
		require.NoError(t, err)
		completedFinished := finished.MarkCompleted(time.Now())
		_, err = store.Save(ctx, &completedFinished)
		require.NoError(t, err)

		all, err := store.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 4)

		active, err := store.FindActive(ctx)
		require.NoError(t, err)
		require.Len(t, active, 3)

		high, err := store.FindByPriority(ctx, models.PriorityHigh)
		require.NoError(t, err)
		require.Len(t, high, 1)
		require.Equal(t, "project", high[0].Description)

		lateTasks, err := store.FindOverdue(ctx)
		require.NoError(t, err)
		require.Len(t, lateTasks, 1)
		require.Equal(t, "late", lateTasks[0].Description)

		subs, err := store.FindSubtasks(ctx, root.ID)
		require.NoError(t, err)
		require.Len(t, subs, 1)
		require.Equal(t, "subtask", subs[0].Description)

		roots, err := store.FindRoots(ctx)
		require.NoError(t, err)
		require.Len(t, roots, 3)
	})
}

func TestMemoryStore(t *testing.T) {
	storeUnderTest(t, func(t *testing.T) Store {
		return NewMemoryStore()
	})
}

func TestSQLiteStore(t *testing.T) {
	storeUnderTest(t, func(t *testing.T) Store {
		store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "tasks.db"))
		require.NoError(t, err)
		t.Cleanup(func() { _ = store.Close() })
		return store
	})
}
