package models

import (
	"time"

	"github.com/taskpilot/taskpilot/internal/taskerr"
)

// Priority is a task priority level.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

// ValidPriority reports whether p is a recognized priority level.
// The empty priority is valid and means "unset".
func ValidPriority(p Priority) bool {
	switch p {
	case "", PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// Task is a persisted task record.
type Task struct {
	ID          int64          `json:"id"`
	Description string         `json:"description"`
	Completed   bool           `json:"completed"`
	CreatedAt   time.Time      `json:"createdAt"`
	CompletedAt *time.Time     `json:"completedAt,omitempty"`
	Deadline    *time.Time     `json:"deadline,omitempty"`
	Priority    Priority       `json:"priority,omitempty"`
	Constraints string         `json:"constraints,omitempty"`
	ParentID    *int64         `json:"parentId,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// NewTask creates a validated task. The description must be non-empty,
// the deadline (when set) must not be in the past, and the priority must
// be a recognized level or unset.
func NewTask(description string, deadline *time.Time, priority Priority, constraints string) (*Task, error) {
	if description == "" {
		return nil, taskerr.NewValidation("task description cannot be empty")
	}
	if deadline != nil && deadline.Before(time.Now()) {
		return nil, taskerr.NewValidation("task deadline %s is in the past", deadline.Format(time.RFC3339))
	}
	if !ValidPriority(priority) {
		return nil, taskerr.NewValidation("invalid priority %q: must be LOW, MEDIUM or HIGH", priority)
	}
	return NewTaskUnchecked(description, deadline, priority, constraints), nil
}

// NewTaskUnchecked creates a task without validating its fields. Intended
// for loading stored records and for tests that need historical deadlines.
func NewTaskUnchecked(description string, deadline *time.Time, priority Priority, constraints string) *Task {
	return &Task{
		Description: description,
		CreatedAt:   time.Now(),
		Deadline:    deadline,
		Priority:    priority,
		Constraints: constraints,
	}
}

// MarkCompleted returns a copy of the task marked completed at now.
func (t Task) MarkCompleted(now time.Time) Task {
	t.Completed = true
	t.CompletedAt = &now
	return t
}

// Overdue reports whether the task has an unmet deadline before now.
func (t Task) Overdue(now time.Time) bool {
	return !t.Completed && t.Deadline != nil && t.Deadline.Before(now)
}
