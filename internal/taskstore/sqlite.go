package taskstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/taskpilot/taskpilot/internal/models"
	"github.com/taskpilot/taskpilot/internal/taskerr"
	_ "modernc.org/sqlite"
)

// SQLiteStore persists tasks in a local SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if necessary) the SQLite database at
// the given path and ensures the schema exists.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initialize(); err != nil {
		db.Close() //nolint:errcheck
		return nil, err
	}

	return store, nil
}

// initialize creates the required tables.
func (s *SQLiteStore) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS tasks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		description TEXT NOT NULL,
		completed INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		completed_at TEXT,
		deadline TEXT,
		priority TEXT,
		task_constraints TEXT,
		parent_id INTEGER,
		metadata TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_tasks_completed ON tasks(completed);
	CREATE INDEX IF NOT EXISTS idx_tasks_priority ON tasks(priority);
	CREATE INDEX IF NOT EXISTS idx_tasks_parent ON tasks(parent_id);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create tasks table: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

const taskColumns = "id, description, completed, created_at, completed_at, deadline, priority, task_constraints, parent_id, metadata"

func (s *SQLiteStore) Save(ctx context.Context, task *models.Task) (*models.Task, error) {
	saved := *task

	metadata, err := encodeMetadata(saved.Metadata)
	if err != nil {
		return nil, err
	}

	if saved.ID == 0 {
		res, err := s.db.ExecContext(ctx, `
			INSERT INTO tasks (description, completed, created_at, completed_at, deadline, priority, task_constraints, parent_id, metadata)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			saved.Description, saved.Completed, formatTime(&saved.CreatedAt), formatTime(saved.CompletedAt),
			formatTime(saved.Deadline), nullableString(string(saved.Priority)), nullableString(saved.Constraints),
			saved.ParentID, metadata)
		if err != nil {
			return nil, fmt.Errorf("failed to insert task: %w", err)
		}

		id, err := res.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("failed to read inserted task id: %w", err)
		}
		saved.ID = id
		return &saved, nil
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE tasks
		SET description = ?, completed = ?, created_at = ?, completed_at = ?, deadline = ?, priority = ?, task_constraints = ?, parent_id = ?, metadata = ?
		WHERE id = ?`,
		saved.Description, saved.Completed, formatTime(&saved.CreatedAt), formatTime(saved.CompletedAt),
		formatTime(saved.Deadline), nullableString(string(saved.Priority)), nullableString(saved.Constraints),
		saved.ParentID, metadata, saved.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return nil, taskerr.NewNotFound("task", strconv.FormatInt(saved.ID, 10))
	}

	return &saved, nil
}

func (s *SQLiteStore) FindByID(ctx context.Context, id int64) (*models.Task, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+taskColumns+" FROM tasks WHERE id = ?", id)

	task, err := scanTask(row)
	if err == sql.ErrNoRows {
		return nil, taskerr.NewNotFound("task", strconv.FormatInt(id, 10))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query task %d: %w", id, err)
	}
	return task, nil
}

func (s *SQLiteStore) FindAll(ctx context.Context) ([]models.Task, error) {
	return s.query(ctx, "SELECT "+taskColumns+" FROM tasks ORDER BY id")
}

func (s *SQLiteStore) FindActive(ctx context.Context) ([]models.Task, error) {
	return s.query(ctx, "SELECT "+taskColumns+" FROM tasks WHERE completed = 0 ORDER BY id")
}

func (s *SQLiteStore) FindByPriority(ctx context.Context, priority models.Priority) ([]models.Task, error) {
	return s.query(ctx, "SELECT "+taskColumns+" FROM tasks WHERE priority = ? ORDER BY id", string(priority))
}

func (s *SQLiteStore) FindOverdue(ctx context.Context) ([]models.Task, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	return s.query(ctx, "SELECT "+taskColumns+" FROM tasks WHERE completed = 0 AND deadline IS NOT NULL AND deadline < ? ORDER BY id", now)
}

func (s *SQLiteStore) FindSubtasks(ctx context.Context, parentID int64) ([]models.Task, error) {
	return s.query(ctx, "SELECT "+taskColumns+" FROM tasks WHERE parent_id = ? ORDER BY id", parentID)
}

func (s *SQLiteStore) FindRoots(ctx context.Context) ([]models.Task, error) {
	return s.query(ctx, "SELECT "+taskColumns+" FROM tasks WHERE parent_id IS NULL ORDER BY id")
}

func (s *SQLiteStore) query(ctx context.Context, stmt string, args ...any) ([]models.Task, error) {
	rows, err := s.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	tasks := []models.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task row: %w", err)
		}
		tasks = append(tasks, *task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read task rows: %w", err)
	}
	return tasks, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*models.Task, error) {
	var task models.Task
	var createdAt string
	var completedAt, deadline, priority, constraints, metadata sql.NullString
	var parentID sql.NullInt64

	err := row.Scan(&task.ID, &task.Description, &task.Completed, &createdAt,
		&completedAt, &deadline, &priority, &constraints, &parentID, &metadata)
	if err != nil {
		return nil, err
	}

	created, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("invalid created_at %q: %w", createdAt, err)
	}
	task.CreatedAt = created

	if task.CompletedAt, err = parseNullTime(completedAt); err != nil {
		return nil, err
	}
	if task.Deadline, err = parseNullTime(deadline); err != nil {
		return nil, err
	}
	if priority.Valid {
		task.Priority = models.Priority(priority.String)
	}
	if constraints.Valid {
		task.Constraints = constraints.String
	}
	if parentID.Valid {
		task.ParentID = &parentID.Int64
	}
	if metadata.Valid && metadata.String != "" {
		if err := json.Unmarshal([]byte(metadata.String), &task.Metadata); err != nil {
			return nil, fmt.Errorf("invalid task metadata: %w", err)
		}
	}

	return &task, nil
}

func parseNullTime(v sql.NullString) (*time.Time, error) {
	if !v.Valid || v.String == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339Nano, v.String)
	if err != nil {
		return nil, fmt.Errorf("invalid stored time %q: %w", v.String, err)
	}
	return &t, nil
}

func formatTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func encodeMetadata(metadata map[string]any) (any, error) {
	if len(metadata) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(metadata)
	if err != nil {
		return nil, fmt.Errorf("failed to encode task metadata: %w", err)
	}
	return string(data), nil
}

// Ensure SQLiteStore satisfies Store.
var _ Store = (*SQLiteStore)(nil)
