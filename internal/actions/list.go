package actions

import (
	"context"

	"github.com/taskpilot/taskpilot/internal/models"
	"github.com/taskpilot/taskpilot/internal/taskstore"
)

// ListTasks fetches every task.
type ListTasks struct {
	store taskstore.Store
}

// NewListTasks creates the action backed by the given store.
func NewListTasks(store taskstore.Store) *ListTasks {
	return &ListTasks{store: store}
}

func (a *ListTasks) CanHandle(intent models.Intent) bool {
	return intent == models.IntentListTasks
}

func (a *ListTasks) Execute(ctx context.Context, params Parameters) (Result, error) {
	tasks, err := a.store.FindAll(ctx)
	if err != nil {
		return Result{}, err
	}
	return Result{Parameters: params, Tasks: tasks}, nil
}
