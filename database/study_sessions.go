package database

import (
	"context"
	"database/sql"
	"errors"

	"aathoos-core/models"

	"github.com/google/uuid"
)

// ==================== STUDY SESSION OPERATIONS ====================

const studySessionColumns = `id, subject, duration_secs, notes, started_at, created_at, updated_at`

// StudySessionRepository reads and writes the study_sessions table.
type StudySessionRepository struct {
	db *DB
}

func NewStudySessionRepository(db *DB) StudySessionRepository {
	return StudySessionRepository{db: db}
}

// Create records a session. StartedAt is stamped with the creation time.
func (r StudySessionRepository) Create(ctx context.Context, subject string, durationSecs int64, notes *string) (*models.StudySession, error) {
	ts := now()
	session := &models.StudySession{
		ID:           uuid.New().String(),
		Subject:      subject,
		DurationSecs: durationSecs,
		Notes:        notes,
		StartedAt:    ts,
		CreatedAt:    ts,
		UpdatedAt:    ts,
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO study_sessions (id, subject, duration_secs, notes, started_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		session.ID, session.Subject, session.DurationSecs, stringPtrToNull(notes),
		session.StartedAt, session.CreatedAt, session.UpdatedAt,
	)
	if err != nil {
		return nil, storeError("study_sessions.Create", err)
	}

	return session, nil
}

// GetByID returns the session with the given id or a NotFound error.
func (r StudySessionRepository) GetByID(ctx context.Context, id string) (*models.StudySession, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+studySessionColumns+` FROM study_sessions WHERE id = ?`, id)

	session, err := scanStudySession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("study_sessions.GetByID", id)
	}
	if err != nil {
		return nil, storeError("study_sessions.GetByID", err)
	}
	return session, nil
}

// ListAll returns every session ordered by start time.
func (r StudySessionRepository) ListAll(ctx context.Context) ([]models.StudySession, error) {
	return r.list(ctx, "study_sessions.ListAll", `
		SELECT `+studySessionColumns+`
		FROM study_sessions
		ORDER BY started_at ASC, rowid ASC
	`)
}

// ListBySubject returns sessions whose subject matches exactly (case-sensitive).
func (r StudySessionRepository) ListBySubject(ctx context.Context, subject string) ([]models.StudySession, error) {
	return r.list(ctx, "study_sessions.ListBySubject", `
		SELECT `+studySessionColumns+`
		FROM study_sessions
		WHERE subject = ?
		ORDER BY started_at ASC, rowid ASC
	`, subject)
}

func (r StudySessionRepository) list(ctx context.Context, op, query string, args ...any) ([]models.StudySession, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storeError(op, err)
	}
	defer rows.Close()

	sessions := make([]models.StudySession, 0)
	for rows.Next() {
		session, err := scanStudySession(rows)
		if err != nil {
			return nil, storeError(op, err)
		}
		sessions = append(sessions, *session)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError(op, err)
	}

	return sessions, nil
}

// TotalDurationForSubject sums duration_secs over matching sessions.
// A subject with no sessions totals 0.
func (r StudySessionRepository) TotalDurationForSubject(ctx context.Context, subject string) (int64, error) {
	var total int64
	err := r.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(duration_secs), 0)
		FROM study_sessions
		WHERE subject = ?
	`, subject).Scan(&total)
	if err != nil {
		return 0, storeError("study_sessions.TotalDurationForSubject", err)
	}
	return total, nil
}

// Delete permanently removes a session.
func (r StudySessionRepository) Delete(ctx context.Context, id string) error {
	return r.db.execAffectingOne(ctx, "study_sessions.Delete", id, `DELETE FROM study_sessions WHERE id = ?`, id)
}

func scanStudySession(s scanner) (*models.StudySession, error) {
	var session models.StudySession
	var notes sql.NullString

	if err := s.Scan(
		&session.ID, &session.Subject, &session.DurationSecs, &notes,
		&session.StartedAt, &session.CreatedAt, &session.UpdatedAt,
	); err != nil {
		return nil, err
	}

	session.Notes = nullToStringPtr(notes)
	return &session, nil
}
