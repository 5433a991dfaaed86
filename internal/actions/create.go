package actions

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/taskpilot/taskpilot/internal/models"
	"github.com/taskpilot/taskpilot/internal/taskerr"
	"github.com/taskpilot/taskpilot/internal/taskstore"
)

// CreateTask persists a new task from collected parameters.
type CreateTask struct {
	store taskstore.Store
}

// NewCreateTask creates the action backed by the given store.
func NewCreateTask(store taskstore.Store) *CreateTask {
	return &CreateTask{store: store}
}

func (a *CreateTask) CanHandle(intent models.Intent) bool {
	return intent == models.IntentCreateTask
}

func (a *CreateTask) Execute(ctx context.Context, params Parameters) (Result, error) {
	if params.Description == "" {
		return Result{}, taskerr.NewValidation("task description cannot be empty")
	}

	deadline, err := parseDeadline(params.Deadline)
	if err != nil {
		return Result{}, err
	}

	task, err := models.NewTask(params.Description, deadline, models.Priority(params.Priority), params.Constraints)
	if err != nil {
		return Result{}, err
	}

	saved, err := a.store.Save(ctx, task)
	if err != nil {
		return Result{}, err
	}

	slog.Info("task created", "id", saved.ID, "description", saved.Description)

	params.TaskID = strconv.FormatInt(saved.ID, 10)
	return Result{Parameters: params, Task: saved}, nil
}

// parseDeadline accepts RFC 3339 timestamps and bare dates. A bare date
// means end of that day, so "due today" does not fail validation.
func parseDeadline(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}

	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t, nil
	}

	day, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, taskerr.NewValidation("cannot parse deadline %q: expected an RFC 3339 timestamp or a date", value)
	}

	endOfDay := day.Add(24*time.Hour - time.Second)
	return &endOfDay, nil
}
