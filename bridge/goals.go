package bridge

import (
	"context"

	"aathoos-core/database"
)

type goalCreateRequest struct {
	Title string `json:"title" validate:"required,notblank"`
}

// GoalCreate creates a goal. description may be nil; targetDate 0 means open-ended.
func (b *Bridge) GoalCreate(h Handle, title, description *string, targetDate int64) (string, bool) {
	const op = "goal_create"
	return b.payload(op, func(ctx context.Context) (any, error) {
		db, err := b.store(h)
		if err != nil {
			return nil, err
		}
		t, err := requireText(op, "title", title)
		if err != nil {
			return nil, err
		}
		d, err := optionalText(op, "description", description)
		if err != nil {
			return nil, err
		}
		if err := b.validate(op, &goalCreateRequest{Title: t}); err != nil {
			return nil, err
		}

		return database.NewGoalRepository(db).Create(ctx, t, d, optionalDate(targetDate))
	})
}

func (b *Bridge) GoalGet(h Handle, id *string) (string, bool) {
	const op = "goal_get"
	return b.payload(op, func(ctx context.Context) (any, error) {
		db, err := b.store(h)
		if err != nil {
			return nil, err
		}
		goalID, err := requireText(op, "id", id)
		if err != nil {
			return nil, err
		}
		return database.NewGoalRepository(db).GetByID(ctx, goalID)
	})
}

func (b *Bridge) GoalListAll(h Handle) (string, bool) {
	return b.payload("goal_list_all", func(ctx context.Context) (any, error) {
		db, err := b.store(h)
		if err != nil {
			return nil, err
		}
		return database.NewGoalRepository(db).ListAll(ctx)
	})
}

// GoalSetProgress sets progress in [0, 1]; reaching 1.0 completes the goal.
func (b *Bridge) GoalSetProgress(h Handle, id *string, progress float64) bool {
	const op = "goal_set_progress"
	return b.mutation(op, func(ctx context.Context) error {
		db, err := b.store(h)
		if err != nil {
			return err
		}
		goalID, err := requireText(op, "id", id)
		if err != nil {
			return err
		}
		return database.NewGoalRepository(db).SetProgress(ctx, goalID, progress)
	})
}

func (b *Bridge) GoalDelete(h Handle, id *string) bool {
	const op = "goal_delete"
	return b.mutation(op, func(ctx context.Context) error {
		db, err := b.store(h)
		if err != nil {
			return err
		}
		goalID, err := requireText(op, "id", id)
		if err != nil {
			return err
		}
		return database.NewGoalRepository(db).Delete(ctx, goalID)
	})
}
