package database

import (
	"context"
	"database/sql"
	"errors"

	"aathoos-core/models"
	"aathoos-core/validator"

	"github.com/google/uuid"
)

// ==================== GOAL OPERATIONS ====================

const goalColumns = `id, title, description, target_date, progress, is_completed, created_at, updated_at`

// GoalRepository reads and writes the goals table.
type GoalRepository struct {
	db *DB
}

func NewGoalRepository(db *DB) GoalRepository {
	return GoalRepository{db: db}
}

// Create inserts a new goal with zero progress.
func (r GoalRepository) Create(ctx context.Context, title string, description *string, targetDate *int64) (*models.Goal, error) {
	ts := now()
	goal := &models.Goal{
		ID:          uuid.New().String(),
		Title:       title,
		Description: description,
		TargetDate:  targetDate,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO goals (id, title, description, target_date, progress, is_completed, created_at, updated_at)
		VALUES (?, ?, ?, ?, 0.0, 0, ?, ?)
	`,
		goal.ID, goal.Title, stringPtrToNull(description), int64PtrToNull(targetDate),
		goal.CreatedAt, goal.UpdatedAt,
	)
	if err != nil {
		return nil, storeError("goals.Create", err)
	}

	return goal, nil
}

// GetByID returns the goal with the given id or a NotFound error.
func (r GoalRepository) GetByID(ctx context.Context, id string) (*models.Goal, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+goalColumns+` FROM goals WHERE id = ?`, id)

	goal, err := scanGoal(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("goals.GetByID", id)
	}
	if err != nil {
		return nil, storeError("goals.GetByID", err)
	}
	return goal, nil
}

// ListAll returns every goal in creation order.
func (r GoalRepository) ListAll(ctx context.Context) ([]models.Goal, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+goalColumns+`
		FROM goals
		ORDER BY created_at ASC, rowid ASC
	`)
	if err != nil {
		return nil, storeError("goals.ListAll", err)
	}
	defer rows.Close()

	goals := make([]models.Goal, 0)
	for rows.Next() {
		goal, err := scanGoal(rows)
		if err != nil {
			return nil, storeError("goals.ListAll", err)
		}
		goals = append(goals, *goal)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("goals.ListAll", err)
	}

	return goals, nil
}

// SetProgress stores a progress fraction in [0, 1]. Completion is derived
// from progress in the same statement. Out of range values leave the row untouched.
func (r GoalRepository) SetProgress(ctx context.Context, id string, progress float64) error {
	const op = "goals.SetProgress"

	if err := validator.Default().Var(progress, "progress"); err != nil {
		return validationError(op, err)
	}

	return r.db.execAffectingOne(ctx, op, id, `
		UPDATE goals SET
			progress = ?,
			is_completed = ?,
			updated_at = ?
		WHERE id = ?
	`, progress, boolToInt(models.ProgressCompletes(progress)), now(), id)
}

// Delete permanently removes a goal.
func (r GoalRepository) Delete(ctx context.Context, id string) error {
	return r.db.execAffectingOne(ctx, "goals.Delete", id, `DELETE FROM goals WHERE id = ?`, id)
}

func scanGoal(s scanner) (*models.Goal, error) {
	var goal models.Goal
	var description sql.NullString
	var targetDate sql.NullInt64
	var completed int

	if err := s.Scan(
		&goal.ID, &goal.Title, &description, &targetDate, &goal.Progress, &completed,
		&goal.CreatedAt, &goal.UpdatedAt,
	); err != nil {
		return nil, err
	}

	goal.Description = nullToStringPtr(description)
	goal.TargetDate = nullToInt64Ptr(targetDate)
	goal.IsCompleted = completed != 0
	return &goal, nil
}
