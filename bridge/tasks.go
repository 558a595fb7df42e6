package bridge

import (
	"context"

	"aathoos-core/database"
	"aathoos-core/models"
)

type taskCreateRequest struct {
	Title string `json:"title" validate:"required,notblank"`
}

type taskTitleRequest struct {
	Title string `json:"title" validate:"required,notblank"`
}

// TaskCreate creates a task. notes may be nil, dueDate 0 means no due date
// and priority is a rank in {0,1,2}; other ranks become Medium.
func (b *Bridge) TaskCreate(h Handle, title, notes *string, dueDate int64, priority int32) (string, bool) {
	const op = "task_create"
	return b.payload(op, func(ctx context.Context) (any, error) {
		db, err := b.store(h)
		if err != nil {
			return nil, err
		}
		t, err := requireText(op, "title", title)
		if err != nil {
			return nil, err
		}
		n, err := optionalText(op, "notes", notes)
		if err != nil {
			return nil, err
		}
		if err := b.validate(op, &taskCreateRequest{Title: t}); err != nil {
			return nil, err
		}

		return database.NewTaskRepository(db).Create(ctx, t, n, optionalDate(dueDate), models.PriorityFromRank(int64(priority)))
	})
}

func (b *Bridge) TaskGet(h Handle, id *string) (string, bool) {
	const op = "task_get"
	return b.payload(op, func(ctx context.Context) (any, error) {
		db, err := b.store(h)
		if err != nil {
			return nil, err
		}
		taskID, err := requireText(op, "id", id)
		if err != nil {
			return nil, err
		}
		return database.NewTaskRepository(db).GetByID(ctx, taskID)
	})
}

func (b *Bridge) TaskListAll(h Handle) (string, bool) {
	return b.payload("task_list_all", func(ctx context.Context) (any, error) {
		db, err := b.store(h)
		if err != nil {
			return nil, err
		}
		return database.NewTaskRepository(db).ListAll(ctx)
	})
}

func (b *Bridge) TaskListIncomplete(h Handle) (string, bool) {
	return b.payload("task_list_incomplete", func(ctx context.Context) (any, error) {
		db, err := b.store(h)
		if err != nil {
			return nil, err
		}
		return database.NewTaskRepository(db).ListIncomplete(ctx)
	})
}

func (b *Bridge) TaskSetCompleted(h Handle, id *string, completed bool) bool {
	const op = "task_set_completed"
	return b.mutation(op, func(ctx context.Context) error {
		db, err := b.store(h)
		if err != nil {
			return err
		}
		taskID, err := requireText(op, "id", id)
		if err != nil {
			return err
		}
		return database.NewTaskRepository(db).SetCompleted(ctx, taskID, completed)
	})
}

func (b *Bridge) TaskUpdateTitle(h Handle, id, title *string) bool {
	const op = "task_update_title"
	return b.mutation(op, func(ctx context.Context) error {
		db, err := b.store(h)
		if err != nil {
			return err
		}
		taskID, err := requireText(op, "id", id)
		if err != nil {
			return err
		}
		t, err := requireText(op, "title", title)
		if err != nil {
			return err
		}
		if err := b.validate(op, &taskTitleRequest{Title: t}); err != nil {
			return err
		}
		return database.NewTaskRepository(db).UpdateTitle(ctx, taskID, t)
	})
}

func (b *Bridge) TaskDelete(h Handle, id *string) bool {
	const op = "task_delete"
	return b.mutation(op, func(ctx context.Context) error {
		db, err := b.store(h)
		if err != nil {
			return err
		}
		taskID, err := requireText(op, "id", id)
		if err != nil {
			return err
		}
		return database.NewTaskRepository(db).Delete(ctx, taskID)
	})
}
