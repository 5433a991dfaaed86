// Package actions contains the operations the assistant can perform once
// an intent has been recognized and its parameters collected.
package actions

import (
	"context"

	"github.com/taskpilot/taskpilot/internal/models"
)

// Action is a single operation the assistant can perform.
type Action interface {
	// CanHandle reports whether this action handles the given intent.
	CanHandle(intent models.Intent) bool

	// Execute performs the operation with the given parameters.
	Execute(ctx context.Context, params Parameters) (Result, error)
}

// Parameters are the inputs to an action, in the string form the slot
// model collects them.
type Parameters struct {
	Description string
	Deadline    string
	Priority    string
	Constraints string
	TaskID      string
}

// ForCreate builds parameters for a task creation.
func ForCreate(description, deadline, priority, constraints string) Parameters {
	return Parameters{
		Description: description,
		Deadline:    deadline,
		Priority:    priority,
		Constraints: constraints,
	}
}

// ForComplete builds parameters for completing the task with the given ID.
func ForComplete(taskID string) Parameters {
	return Parameters{TaskID: taskID}
}

// Result is what an action produced. Task is set when the action created
// or changed a single task; Tasks is set when the action fetched several.
type Result struct {
	Parameters Parameters
	Task       *models.Task
	Tasks      []models.Task
}

// Select returns the first action that can handle the intent.
func Select(available []Action, intent models.Intent) (Action, bool) {
	for _, action := range available {
		if action.CanHandle(intent) {
			return action, true
		}
	}
	return nil, false
}
