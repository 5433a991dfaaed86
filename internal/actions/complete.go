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

// CompleteTask marks an existing task as completed.
type CompleteTask struct {
	store taskstore.Store
}

// NewCompleteTask creates the action backed by the given store.
func NewCompleteTask(store taskstore.Store) *CompleteTask {
	return &CompleteTask{store: store}
}

func (a *CompleteTask) CanHandle(intent models.Intent) bool {
	return intent == models.IntentCompleteTask
}

func (a *CompleteTask) Execute(ctx context.Context, params Parameters) (Result, error) {
	id, err := strconv.ParseInt(params.TaskID, 10, 64)
	if err != nil {
		return Result{}, taskerr.NewValidation("cannot parse task id %q: %v", params.TaskID, err)
	}

	task, err := a.store.FindByID(ctx, id)
	if err != nil {
		return Result{}, err
	}

	completed := task.MarkCompleted(time.Now())
	saved, err := a.store.Save(ctx, &completed)
	if err != nil {
		return Result{}, err
	}

	slog.Info("task completed", "id", saved.ID)

	return Result{Parameters: params, Task: saved}, nil
}
