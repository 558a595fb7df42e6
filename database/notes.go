package database

import (
	"context"
	"database/sql"
	"errors"

	"aathoos-core/models"

	"github.com/google/uuid"
)

// ==================== NOTE OPERATIONS ====================

const noteColumns = `id, title, body, subject, created_at, updated_at`

// NoteRepository reads and writes the notes table.
type NoteRepository struct {
	db *DB
}

func NewNoteRepository(db *DB) NoteRepository {
	return NoteRepository{db: db}
}

// Create inserts a new note. A nil subject is stored as NULL.
func (r NoteRepository) Create(ctx context.Context, title, body string, subject *string) (*models.Note, error) {
	ts := now()
	note := &models.Note{
		ID:        uuid.New().String(),
		Title:     title,
		Body:      body,
		Subject:   subject,
		CreatedAt: ts,
		UpdatedAt: ts,
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO notes (id, title, body, subject, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, note.ID, note.Title, note.Body, stringPtrToNull(subject), note.CreatedAt, note.UpdatedAt)
	if err != nil {
		return nil, storeError("notes.Create", err)
	}

	return note, nil
}

// GetByID returns the note with the given id or a NotFound error.
func (r NoteRepository) GetByID(ctx context.Context, id string) (*models.Note, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+noteColumns+` FROM notes WHERE id = ?`, id)

	note, err := scanNote(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("notes.GetByID", id)
	}
	if err != nil {
		return nil, storeError("notes.GetByID", err)
	}
	return note, nil
}

// ListAll returns every note, most recently updated first.
func (r NoteRepository) ListAll(ctx context.Context) ([]models.Note, error) {
	return r.list(ctx, "notes.ListAll", `
		SELECT `+noteColumns+`
		FROM notes
		ORDER BY updated_at DESC, rowid DESC
	`)
}

// ListBySubject returns notes whose subject matches exactly (case-sensitive).
func (r NoteRepository) ListBySubject(ctx context.Context, subject string) ([]models.Note, error) {
	return r.list(ctx, "notes.ListBySubject", `
		SELECT `+noteColumns+`
		FROM notes
		WHERE subject = ?
		ORDER BY updated_at DESC, rowid DESC
	`, subject)
}

func (r NoteRepository) list(ctx context.Context, op, query string, args ...any) ([]models.Note, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storeError(op, err)
	}
	defer rows.Close()

	notes := make([]models.Note, 0)
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, storeError(op, err)
		}
		notes = append(notes, *note)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError(op, err)
	}

	return notes, nil
}

// UpdateBody replaces a note's body.
func (r NoteRepository) UpdateBody(ctx context.Context, id, body string) error {
	return r.db.execAffectingOne(ctx, "notes.UpdateBody", id, `
		UPDATE notes SET
			body = ?,
			updated_at = ?
		WHERE id = ?
	`, body, now(), id)
}

// Delete permanently removes a note.
func (r NoteRepository) Delete(ctx context.Context, id string) error {
	return r.db.execAffectingOne(ctx, "notes.Delete", id, `DELETE FROM notes WHERE id = ?`, id)
}

func scanNote(s scanner) (*models.Note, error) {
	var note models.Note
	var subject sql.NullString

	if err := s.Scan(&note.ID, &note.Title, &note.Body, &subject, &note.CreatedAt, &note.UpdatedAt); err != nil {
		return nil, err
	}

	note.Subject = nullToStringPtr(subject)
	return &note, nil
}
