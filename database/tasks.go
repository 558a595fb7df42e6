package database

import (
	"context"
	"database/sql"
	"errors"

	"aathoos-core/models"

	"github.com/google/uuid"
)

// ==================== TASK OPERATIONS ====================

const taskColumns = `id, title, notes, due_date, priority, is_completed, created_at, updated_at`

// TaskRepository reads and writes the tasks table.
type TaskRepository struct {
	db *DB
}

func NewTaskRepository(db *DB) TaskRepository {
	return TaskRepository{db: db}
}

// Create inserts a new task. A nil dueDate or notes is stored as NULL.
func (r TaskRepository) Create(ctx context.Context, title string, notes *string, dueDate *int64, priority models.Priority) (*models.Task, error) {
	ts := now()
	task := &models.Task{
		ID:        uuid.New().String(),
		Title:     title,
		Notes:     notes,
		DueDate:   dueDate,
		Priority:  priority,
		CreatedAt: ts,
		UpdatedAt: ts,
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tasks (id, title, notes, due_date, priority, is_completed, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, 0, ?, ?)
	`,
		task.ID, task.Title, stringPtrToNull(notes), int64PtrToNull(dueDate),
		int(priority), task.CreatedAt, task.UpdatedAt,
	)
	if err != nil {
		return nil, storeError("tasks.Create", err)
	}

	return task, nil
}

// GetByID returns the task with the given id or a NotFound error.
func (r TaskRepository) GetByID(ctx context.Context, id string) (*models.Task, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)

	task, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("tasks.GetByID", id)
	}
	if err != nil {
		return nil, storeError("tasks.GetByID", err)
	}
	return task, nil
}

// ListAll returns every task in creation order.
func (r TaskRepository) ListAll(ctx context.Context) ([]models.Task, error) {
	return r.list(ctx, "tasks.ListAll", `
		SELECT `+taskColumns+`
		FROM tasks
		ORDER BY created_at ASC, rowid ASC
	`)
}

// ListIncomplete returns open tasks by due date ascending. Tasks without a
// due date come last; ties go to higher priority, then creation order.
func (r TaskRepository) ListIncomplete(ctx context.Context) ([]models.Task, error) {
	return r.list(ctx, "tasks.ListIncomplete", `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE is_completed = 0
		ORDER BY due_date IS NULL ASC, due_date ASC, priority DESC, rowid ASC
	`)
}

func (r TaskRepository) list(ctx context.Context, op, query string, args ...any) ([]models.Task, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storeError(op, err)
	}
	defer rows.Close()

	// Initialize with empty slice so an empty table encodes as []
	tasks := make([]models.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, storeError(op, err)
		}
		tasks = append(tasks, *task)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError(op, err)
	}

	return tasks, nil
}

// SetCompleted marks a task complete or incomplete.
func (r TaskRepository) SetCompleted(ctx context.Context, id string, completed bool) error {
	return r.db.execAffectingOne(ctx, "tasks.SetCompleted", id, `
		UPDATE tasks SET
			is_completed = ?,
			updated_at = ?
		WHERE id = ?
	`, boolToInt(completed), now(), id)
}

// UpdateTitle replaces a task's title.
func (r TaskRepository) UpdateTitle(ctx context.Context, id, title string) error {
	return r.db.execAffectingOne(ctx, "tasks.UpdateTitle", id, `
		UPDATE tasks SET
			title = ?,
			updated_at = ?
		WHERE id = ?
	`, title, now(), id)
}

// Delete permanently removes a task.
func (r TaskRepository) Delete(ctx context.Context, id string) error {
	return r.db.execAffectingOne(ctx, "tasks.Delete", id, `DELETE FROM tasks WHERE id = ?`, id)
}

func scanTask(s scanner) (*models.Task, error) {
	var task models.Task
	var notes sql.NullString
	var dueDate sql.NullInt64
	var priority int64
	var completed int

	if err := s.Scan(
		&task.ID, &task.Title, &notes, &dueDate, &priority, &completed,
		&task.CreatedAt, &task.UpdatedAt,
	); err != nil {
		return nil, err
	}

	task.Notes = nullToStringPtr(notes)
	task.DueDate = nullToInt64Ptr(dueDate)
	task.Priority = models.PriorityFromRank(priority)
	task.IsCompleted = completed != 0
	return &task, nil
}
