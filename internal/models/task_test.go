package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/taskpilot/taskpilot/internal/taskerr"
)

func TestNewTaskValidation(t *testing.T) {
	future := time.Now().Add(24 * time.Hour)
	past := time.Now().Add(-24 * time.Hour)

	task, err := NewTask("write report", &future, PriorityHigh, "under 5 pages")
	require.NoError(t, err)
	require.Equal(t, "write report", task.Description)
	require.False(t, task.Completed)
	require.False(t, task.CreatedAt.IsZero())

	testCases := []struct {
		name        string
		description string
		deadline    *time.Time
		priority    Priority
	}{
		{name: "empty description", description: ""},
		{name: "past deadline", description: "x", deadline: &past},
		{name: "unknown priority", description: "x", priority: Priority("URGENT")},
	}

	for _, td := range testCases {
		t.Run(td.name, func(t *testing.T) {
			_, err := NewTask(td.description, td.deadline, td.priority, "")
			var verr *taskerr.ValidationError
			require.ErrorAs(t, err, &verr)
		})
	}
}

func TestNewTaskUncheckedAllowsPastDeadline(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	task := NewTaskUnchecked("pay overdue bill", &past, "", "")
	require.NotNil(t, task)
	require.True(t, task.Overdue(time.Now()))
}

func TestMarkCompleted(t *testing.T) {
	task := NewTaskUnchecked("buy milk", nil, PriorityLow, "")
	now := time.Now()

	done := task.MarkCompleted(now)
	require.True(t, done.Completed)
	require.NotNil(t, done.CompletedAt)
	require.Equal(t, now, *done.CompletedAt)

	// The original value is untouched.
	require.False(t, task.Completed)
	require.Nil(t, task.CompletedAt)
}

func TestOverdue(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	require.True(t, Task{Deadline: &past}.Overdue(now))
	require.False(t, Task{Deadline: &future}.Overdue(now))
	require.False(t, Task{}.Overdue(now))
	require.False(t, Task{Deadline: &past, Completed: true}.Overdue(now))
}
