package bridge

import (
	"context"

	"aathoos-core/database"
)

type studySessionCreateRequest struct {
	Subject      string `json:"subject" validate:"required,notblank"`
	DurationSecs int64  `json:"duration_secs" validate:"gte=0"`
}

// StudySessionCreate records a completed session. notes may be nil.
func (b *Bridge) StudySessionCreate(h Handle, subject *string, durationSecs int64, notes *string) (string, bool) {
	const op = "study_session_create"
	return b.payload(op, func(ctx context.Context) (any, error) {
		db, err := b.store(h)
		if err != nil {
			return nil, err
		}
		s, err := requireText(op, "subject", subject)
		if err != nil {
			return nil, err
		}
		n, err := optionalText(op, "notes", notes)
		if err != nil {
			return nil, err
		}
		if err := b.validate(op, &studySessionCreateRequest{Subject: s, DurationSecs: durationSecs}); err != nil {
			return nil, err
		}

		return database.NewStudySessionRepository(db).Create(ctx, s, durationSecs, n)
	})
}

func (b *Bridge) StudySessionGet(h Handle, id *string) (string, bool) {
	const op = "study_session_get"
	return b.payload(op, func(ctx context.Context) (any, error) {
		db, err := b.store(h)
		if err != nil {
			return nil, err
		}
		sessionID, err := requireText(op, "id", id)
		if err != nil {
			return nil, err
		}
		return database.NewStudySessionRepository(db).GetByID(ctx, sessionID)
	})
}

func (b *Bridge) StudySessionListAll(h Handle) (string, bool) {
	return b.payload("study_session_list_all", func(ctx context.Context) (any, error) {
		db, err := b.store(h)
		if err != nil {
			return nil, err
		}
		return database.NewStudySessionRepository(db).ListAll(ctx)
	})
}

func (b *Bridge) StudySessionListBySubject(h Handle, subject *string) (string, bool) {
	const op = "study_session_list_by_subject"
	return b.payload(op, func(ctx context.Context) (any, error) {
		db, err := b.store(h)
		if err != nil {
			return nil, err
		}
		s, err := requireText(op, "subject", subject)
		if err != nil {
			return nil, err
		}
		return database.NewStudySessionRepository(db).ListBySubject(ctx, s)
	})
}

// StudySessionTotalDuration sums seconds studied for subject, or -1 on failure.
func (b *Bridge) StudySessionTotalDuration(h Handle, subject *string) int64 {
	const op = "study_session_total_duration"
	return b.aggregate(op, func(ctx context.Context) (int64, error) {
		db, err := b.store(h)
		if err != nil {
			return 0, err
		}
		s, err := requireText(op, "subject", subject)
		if err != nil {
			return 0, err
		}
		return database.NewStudySessionRepository(db).TotalDurationForSubject(ctx, s)
	})
}

func (b *Bridge) StudySessionDelete(h Handle, id *string) bool {
	const op = "study_session_delete"
	return b.mutation(op, func(ctx context.Context) error {
		db, err := b.store(h)
		if err != nil {
			return err
		}
		sessionID, err := requireText(op, "id", id)
		if err != nil {
			return err
		}
		return database.NewStudySessionRepository(db).Delete(ctx, sessionID)
	})
}
