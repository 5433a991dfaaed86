package taskstore

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/taskpilot/taskpilot/internal/models"
	"github.com/taskpilot/taskpilot/internal/taskerr"
)

// MemoryStore is an in-memory Store for tests and single-process runs.
type MemoryStore struct {
	mu     sync.RWMutex
	tasks  map[int64]models.Task
	nextID int64
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tasks:  make(map[int64]models.Task),
		nextID: 1,
	}
}

func (s *MemoryStore) Save(_ context.Context, task *models.Task) (*models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	saved := *task
	if saved.ID == 0 {
		saved.ID = s.nextID
		s.nextID++
	}
	s.tasks[saved.ID] = saved
	return &saved, nil
}

func (s *MemoryStore) FindByID(_ context.Context, id int64) (*models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	task, ok := s.tasks[id]
	if !ok {
		return nil, taskerr.NewNotFound("task", strconv.FormatInt(id, 10))
	}
	return &task, nil
}

func (s *MemoryStore) FindAll(_ context.Context) ([]models.Task, error) {
	return s.filter(func(models.Task) bool { return true }), nil
}

func (s *MemoryStore) FindActive(_ context.Context) ([]models.Task, error) {
	return s.filter(func(t models.Task) bool { return !t.Completed }), nil
}

func (s *MemoryStore) FindByPriority(_ context.Context, priority models.Priority) ([]models.Task, error) {
	return s.filter(func(t models.Task) bool { return t.Priority == priority }), nil
}

func (s *MemoryStore) FindOverdue(_ context.Context) ([]models.Task, error) {
	now := time.Now()
	return s.filter(func(t models.Task) bool { return t.Overdue(now) }), nil
}

func (s *MemoryStore) FindSubtasks(_ context.Context, parentID int64) ([]models.Task, error) {
	return s.filter(func(t models.Task) bool { return t.ParentID != nil && *t.ParentID == parentID }), nil
}

func (s *MemoryStore) FindRoots(_ context.Context) ([]models.Task, error) {
	return s.filter(func(t models.Task) bool { return t.ParentID == nil }), nil
}

func (s *MemoryStore) filter(keep func(models.Task) bool) []models.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tasks := make([]models.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if keep(t) {
			tasks = append(tasks, t)
		}
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
	return tasks
}

// Ensure MemoryStore satisfies Store.
var _ Store = (*MemoryStore)(nil)
