package webapi

import (
	"time"

	"github.com/taskpilot/taskpilot/internal/models"
)

// QueryRequest is the body for the conversational query endpoint.
// Context is the envelope returned by an earlier turn, round-tripped
// verbatim by the caller.
type QueryRequest struct {
	Query   string           `json:"query"`
	Context *models.Envelope `json:"context,omitempty"`
}

// CreateTaskRequest is the body for creating a task directly.
type CreateTaskRequest struct {
	Description string     `json:"description"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	Priority    string     `json:"priority,omitempty"`
	Constraints string     `json:"constraints,omitempty"`
	ParentID    *int64     `json:"parentId,omitempty"`
}

// UpdateTaskRequest is the body for updating a task. Only non-nil
// fields are applied.
type UpdateTaskRequest struct {
	Description *string    `json:"description,omitempty"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	Priority    *string    `json:"priority,omitempty"`
	Constraints *string    `json:"constraints,omitempty"`
}

// StatsResponse is the aggregate task count response.
type StatsResponse struct {
	TotalTasks     int `json:"totalTasks"`
	ActiveTasks    int `json:"activeTasks"`
	CompletedTasks int `json:"completedTasks"`
	OverdueTasks   int `json:"overdueTasks"`
}

// HealthResponse is the health check response.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// ErrorResponse is returned for errors.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}
