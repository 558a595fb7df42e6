package bridge

import (
	"context"

	"aathoos-core/database"
)

type noteCreateRequest struct {
	Title string `json:"title" validate:"required,notblank"`
}

// NoteCreate creates a note. A nil body is stored as "" and a nil subject as absent.
func (b *Bridge) NoteCreate(h Handle, title, body, subject *string) (string, bool) {
	const op = "note_create"
	return b.payload(op, func(ctx context.Context) (any, error) {
		db, err := b.store(h)
		if err != nil {
			return nil, err
		}
		t, err := requireText(op, "title", title)
		if err != nil {
			return nil, err
		}
		text, err := textOrEmpty(op, "body", body)
		if err != nil {
			return nil, err
		}
		s, err := optionalText(op, "subject", subject)
		if err != nil {
			return nil, err
		}
		if err := b.validate(op, &noteCreateRequest{Title: t}); err != nil {
			return nil, err
		}

		return database.NewNoteRepository(db).Create(ctx, t, text, s)
	})
}

func (b *Bridge) NoteGet(h Handle, id *string) (string, bool) {
	const op = "note_get"
	return b.payload(op, func(ctx context.Context) (any, error) {
		db, err := b.store(h)
		if err != nil {
			return nil, err
		}
		noteID, err := requireText(op, "id", id)
		if err != nil {
			return nil, err
		}
		return database.NewNoteRepository(db).GetByID(ctx, noteID)
	})
}

func (b *Bridge) NoteListAll(h Handle) (string, bool) {
	return b.payload("note_list_all", func(ctx context.Context) (any, error) {
		db, err := b.store(h)
		if err != nil {
			return nil, err
		}
		return database.NewNoteRepository(db).ListAll(ctx)
	})
}

func (b *Bridge) NoteListBySubject(h Handle, subject *string) (string, bool) {
	const op = "note_list_by_subject"
	return b.payload(op, func(ctx context.Context) (any, error) {
		db, err := b.store(h)
		if err != nil {
			return nil, err
		}
		s, err := requireText(op, "subject", subject)
		if err != nil {
			return nil, err
		}
		return database.NewNoteRepository(db).ListBySubject(ctx, s)
	})
}

// NoteUpdateBody replaces a note's body. A nil body clears it.
func (b *Bridge) NoteUpdateBody(h Handle, id, body *string) bool {
	const op = "note_update_body"
	return b.mutation(op, func(ctx context.Context) error {
		db, err := b.store(h)
		if err != nil {
			return err
		}
		noteID, err := requireText(op, "id", id)
		if err != nil {
			return err
		}
		text, err := textOrEmpty(op, "body", body)
		if err != nil {
			return err
		}
		return database.NewNoteRepository(db).UpdateBody(ctx, noteID, text)
	})
}

func (b *Bridge) NoteDelete(h Handle, id *string) bool {
	const op = "note_delete"
	return b.mutation(op, func(ctx context.Context) error {
		db, err := b.store(h)
		if err != nil {
			return err
		}
		noteID, err := requireText(op, "id", id)
		if err != nil {
			return err
		}
		return database.NewNoteRepository(db).Delete(ctx, noteID)
	})
}
