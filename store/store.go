package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"taskstore/models"
)

// ErrTaskNotFound is returned when an operation references a task id
// that has no matching row.
var ErrTaskNotFound = errors.New("task not found")

// ErrEmptyTitle is returned by Add when the title is empty after
// trimming whitespace.
var ErrEmptyTitle = errors.New("task title must not be empty")

// TaskStore executes task operations against a shared database handle.
// The handle is opened once at startup and pooled by database/sql, so
// individual operations never open or close connections themselves.
type TaskStore struct {
	db *sql.DB
}

// NewTaskStore is a constructor for the TaskStore struct.
func NewTaskStore(db *sql.DB) *TaskStore {
	return &TaskStore{db: db}
}

// List returns every task, newest first. created_at only has second
// granularity, so id breaks ties between rows inserted in the same
// second.
func (s *TaskStore) List(ctx context.Context) ([]models.Task, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, description, completed, created_at
         FROM tasks ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var t models.Task
		var description sql.NullString
		if err := rows.Scan(&t.ID, &t.Title, &description, &t.Completed, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan task row: %w", err)
		}
		t.Description = description.String
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during row iteration: %w", err)
	}

	return tasks, nil
}

// Add inserts a new task with completed=false and returns the id
// assigned by the database.
func (s *TaskStore) Add(ctx context.Context, title, description string) (int64, error) {
	if strings.TrimSpace(title) == "" {
		return 0, ErrEmptyTitle
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO tasks (title, description) VALUES (?, ?)`, title, description)
	if err != nil {
		return 0, fmt.Errorf("failed to insert task: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read inserted task id: %w", err)
	}
	return id, nil
}

// Get retrieves a single task by its id.
func (s *TaskStore) Get(ctx context.Context, id int64) (models.Task, error) {
	var t models.Task
	var description sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT id, title, description, completed, created_at FROM tasks WHERE id = ?`, id).
		Scan(&t.ID, &t.Title, &description, &t.Completed, &t.CreatedAt)
	if err == sql.ErrNoRows {
		return models.Task{}, ErrTaskNotFound
	} else if err != nil {
		return models.Task{}, fmt.Errorf("failed to retrieve task: %w", err)
	}
	t.Description = description.String
	return t, nil
}

// Toggle reads the current completed flag and writes its negation.
// The task must exist.
func (s *TaskStore) Toggle(ctx context.Context, id int64) error {
	var completed bool
	err := s.db.QueryRowContext(ctx,
		`SELECT completed FROM tasks WHERE id = ?`, id).Scan(&completed)
	if err == sql.ErrNoRows {
		return ErrTaskNotFound
	} else if err != nil {
		return fmt.Errorf("failed to read completed flag: %w", err)
	}

	if _, err := s.db.ExecContext(ctx,
		`UPDATE tasks SET completed = ? WHERE id = ?`, !completed, id); err != nil {
		return fmt.Errorf("failed to update completed flag: %w", err)
	}
	return nil
}

// Complete unconditionally marks a task as completed. Unknown ids are
// a no-op, which makes the operation idempotent.
func (s *TaskStore) Complete(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx,
		`UPDATE tasks SET completed = 1 WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to mark task completed: %w", err)
	}
	return nil
}

// Delete removes a task by id. Unknown ids are a no-op.
func (s *TaskStore) Delete(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM tasks WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}
