package webapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/taskpilot/taskpilot/internal/models"
	"github.com/taskpilot/taskpilot/internal/processor"
	"github.com/taskpilot/taskpilot/internal/taskerr"
	"github.com/taskpilot/taskpilot/internal/taskstore"
)

// Version is reported by the health endpoint.
var Version = "0.1.0"

// Handlers holds the HTTP handler methods for the web API.
type Handlers struct {
	store taskstore.Store
	proc  *processor.Processor
}

// NewHandlers creates a new Handlers with the given store and processor.
func NewHandlers(store taskstore.Store, proc *processor.Processor) *Handlers {
	return &Handlers{store: store, proc: proc}
}

// HandleQuery runs one conversational turn.
func (h *Handlers) HandleQuery(w http.ResponseWriter, r *http.Request) {
	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	outcome, err := h.proc.Process(r.Context(), &processor.Query{
		Text:     req.Query,
		Envelope: req.Context,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, outcome)
}

// HandleHealth returns a simple health check response.
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: Version,
	})
}

// HandleStats returns aggregate task counts. The store queries run
// concurrently since they are independent.
func (h *Handlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	var all, active, overdue []models.Task

	eg, ctx := errgroup.WithContext(r.Context())
	eg.Go(func() (err error) { all, err = h.store.FindAll(ctx); return })
	eg.Go(func() (err error) { active, err = h.store.FindActive(ctx); return })
	eg.Go(func() (err error) { overdue, err = h.store.FindOverdue(ctx); return })

	if err := eg.Wait(); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, StatsResponse{
		TotalTasks:     len(all),
		ActiveTasks:    len(active),
		CompletedTasks: len(all) - len(active),
		OverdueTasks:   len(overdue),
	})
}

// HandleListTasks returns every task.
func (h *Handlers) HandleListTasks(w http.ResponseWriter, r *http.Request) {
	h.respondTasks(w, r.Context(), h.store.FindAll)
}

// HandleActiveTasks returns tasks that are not completed.
func (h *Handlers) HandleActiveTasks(w http.ResponseWriter, r *http.Request) {
	h.respondTasks(w, r.Context(), h.store.FindActive)
}

// HandleRootTasks returns tasks without a parent.
func (h *Handlers) HandleRootTasks(w http.ResponseWriter, r *http.Request) {
	h.respondTasks(w, r.Context(), h.store.FindRoots)
}

// HandleOverdueTasks returns incomplete tasks past their deadline.
func (h *Handlers) HandleOverdueTasks(w http.ResponseWriter, r *http.Request) {
	h.respondTasks(w, r.Context(), h.store.FindOverdue)
}

// HandleTasksByPriority returns tasks with the priority in the path.
func (h *Handlers) HandleTasksByPriority(w http.ResponseWriter, r *http.Request) {
	priority := models.Priority(r.PathValue("priority"))
	if priority == "" || !models.ValidPriority(priority) {
		writeError(w, http.StatusBadRequest, "priority must be LOW, MEDIUM or HIGH")
		return
	}

	h.respondTasks(w, r.Context(), func(ctx context.Context) ([]models.Task, error) {
		return h.store.FindByPriority(ctx, priority)
	})
}

// HandleSubtasks returns the direct subtasks of the task in the path.
func (h *Handlers) HandleSubtasks(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	// 404 for a parent that does not exist, not an empty list.
	if _, err := h.store.FindByID(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}

	h.respondTasks(w, r.Context(), func(ctx context.Context) ([]models.Task, error) {
		return h.store.FindSubtasks(ctx, id)
	})
}

// HandleCreateTask creates a task directly, bypassing the assistant.
func (h *Handlers) HandleCreateTask(w http.ResponseWriter, r *http.Request) {
	var req CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	task, err := models.NewTask(req.Description, req.Deadline, models.Priority(req.Priority), req.Constraints)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	task.ParentID = req.ParentID

	saved, err := h.store.Save(r.Context(), task)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

// HandleUpdateTask applies a partial update to an existing task.
func (h *Handlers) HandleUpdateTask(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	task, err := h.store.FindByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	if req.Description != nil {
		if *req.Description == "" {
			writeError(w, http.StatusBadRequest, "task description cannot be empty")
			return
		}
		task.Description = *req.Description
	}
	if req.Deadline != nil {
		task.Deadline = req.Deadline
	}
	if req.Priority != nil {
		priority := models.Priority(*req.Priority)
		if !models.ValidPriority(priority) {
			writeError(w, http.StatusBadRequest, "priority must be LOW, MEDIUM or HIGH")
			return
		}
		task.Priority = priority
	}
	if req.Constraints != nil {
		task.Constraints = *req.Constraints
	}

	saved, err := h.store.Save(r.Context(), task)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

// HandleCompleteTask marks the task in the path as completed.
func (h *Handlers) HandleCompleteTask(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	task, err := h.store.FindByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	completed := task.MarkCompleted(time.Now())
	saved, err := h.store.Save(r.Context(), &completed)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

// RegisterRoutes registers all web API routes on the given mux.
func RegisterRoutes(mux *http.ServeMux, store taskstore.Store, proc *processor.Processor) {
	h := NewHandlers(store, proc)
	mux.HandleFunc("POST /api/query", h.HandleQuery)
	mux.HandleFunc("GET /api/health", h.HandleHealth)
	mux.HandleFunc("GET /api/stats", h.HandleStats)
	mux.HandleFunc("GET /api/tasks", h.HandleListTasks)
	mux.HandleFunc("GET /api/tasks/active", h.HandleActiveTasks)
	mux.HandleFunc("GET /api/tasks/root", h.HandleRootTasks)
	mux.HandleFunc("GET /api/tasks/overdue", h.HandleOverdueTasks)
	mux.HandleFunc("GET /api/tasks/priority/{priority}", h.HandleTasksByPriority)
	mux.HandleFunc("GET /api/tasks/{id}/subtasks", h.HandleSubtasks)
	mux.HandleFunc("POST /api/tasks", h.HandleCreateTask)
	mux.HandleFunc("PUT /api/tasks/{id}", h.HandleUpdateTask)
	mux.HandleFunc("PUT /api/tasks/{id}/complete", h.HandleCompleteTask)
}

// CORSMiddleware wraps a handler with CORS headers.
// If allowedOrigins is empty, no CORS header is set (same-origin only).
// Otherwise, the request Origin is checked against the allowed list.
func CORSMiddleware(next http.Handler, allowedOrigins ...string) http.Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if len(allowedOrigins) > 0 && origin != "" && allowed[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (h *Handlers) respondTasks(w http.ResponseWriter, ctx context.Context, find func(context.Context) ([]models.Task, error)) {
	tasks, err := find(ctx)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	writeJSON(w, http.StatusOK, tasks)
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "task id must be numeric")
		return 0, false
	}
	return id, true
}

// writeDomainError maps the error taxonomy onto HTTP status codes.
func writeDomainError(w http.ResponseWriter, err error) {
	var verr *taskerr.ValidationError
	if errors.As(err, &verr) {
		writeError(w, http.StatusBadRequest, verr.Message)
		return
	}
	var nfe *taskerr.NotFoundError
	if errors.As(err, &nfe) {
		writeError(w, http.StatusNotFound, nfe.Error())
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, ErrorResponse{Error: msg, Code: code})
}
