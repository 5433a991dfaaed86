package actions

import (
	"context"

	"github.com/taskpilot/taskpilot/internal/models"
)

// RequireInfo is the routing target when the assistant needs to ask a
// follow-up question instead of acting. Executing it does nothing: the
// question travels on the resolution, not through the action.
type RequireInfo struct{}

// NewRequireInfo creates the follow-up routing action.
func NewRequireInfo() *RequireInfo {
	return &RequireInfo{}
}

func (a *RequireInfo) CanHandle(intent models.Intent) bool {
	return intent == models.IntentRequireInfo
}

func (a *RequireInfo) Execute(_ context.Context, params Parameters) (Result, error) {
	return Result{Parameters: params}, nil
}
