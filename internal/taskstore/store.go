// Package taskstore provides persistence for task records.
package taskstore

import (
	"context"

	"github.com/taskpilot/taskpilot/internal/models"
)

// Store provides access to task records. Implementations must be safe
// for concurrent use.
type Store interface {
	// Save persists the task. A task with a zero ID is inserted and
	// assigned one; otherwise the existing record is replaced.
	Save(ctx context.Context, task *models.Task) (*models.Task, error)

	// FindByID returns the task with the given ID, or a
	// [taskerr.NotFoundError] if no such task exists.
	FindByID(ctx context.Context, id int64) (*models.Task, error)

	// FindAll returns every task, ordered by ID.
	FindAll(ctx context.Context) ([]models.Task, error)

	// FindActive returns tasks that are not completed.
	FindActive(ctx context.Context) ([]models.Task, error)

	// FindByPriority returns tasks with the given priority.
	FindByPriority(ctx context.Context, priority models.Priority) ([]models.Task, error)

	// FindOverdue returns incomplete tasks whose deadline has passed.
	FindOverdue(ctx context.Context) ([]models.Task, error)

	// FindSubtasks returns the direct subtasks of the given task.
	FindSubtasks(ctx context.Context, parentID int64) ([]models.Task, error)

	// FindRoots returns tasks that have no parent.
	FindRoots(ctx context.Context) ([]models.Task, error)
}
