package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"path/filepath"
	"testing"

	"aathoos-core/config"
	"aathoos-core/database"
	"aathoos-core/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func str(s string) *string { return &s }

func setupBridge(t *testing.T) (*Bridge, Handle) {
	t.Helper()

	cfg := &config.Config{Env: "test", LogLevel: "error", LogFormat: "text", JournalMode: "WAL", BusyTimeoutMS: 1000}
	b := New(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))

	h := b.Open(str(filepath.Join(t.TempDir(), "bridge.db")))
	require.NotZero(t, h)
	require.Equal(t, CodeNone, b.LastError())

	t.Cleanup(b.CloseAll)
	return b, h
}

type result struct {
	payload string
	ok      bool
}

func res(payload string, ok bool) result {
	return result{payload: payload, ok: ok}
}

func decode[T any](t *testing.T, r result) T {
	t.Helper()
	require.True(t, r.ok, "expected a payload")

	var v T
	require.NoError(t, json.Unmarshal([]byte(r.payload), &v))
	return v
}

func TestOpenClose(t *testing.T) {
	b, h := setupBridge(t)

	t.Run("Null path", func(t *testing.T) {
		assert.Zero(t, b.Open(nil))
		assert.Equal(t, CodeDecode, b.LastError())
	})

	t.Run("Close twice and close null are no-ops", func(t *testing.T) {
		other := b.Open(str(filepath.Join(t.TempDir(), "other.db")))
		require.NotZero(t, other)
		assert.NotEqual(t, h, other)

		b.Close(other)
		b.Close(other)
		b.Close(0)
		b.Close(Handle(9999))

		_, ok := b.TaskListAll(other)
		assert.False(t, ok)
		assert.Equal(t, CodeInvalidHandle, b.LastError())
	})

	t.Run("Null handle aborts every shape", func(t *testing.T) {
		_, ok := b.TaskCreate(0, str("x"), nil, 0, 1)
		assert.False(t, ok)
		assert.False(t, b.TaskDelete(0, str("x")))
		assert.Equal(t, AggregateFailed, b.StudySessionTotalDuration(0, str("math")))
		assert.Equal(t, CodeInvalidHandle, b.LastError())
	})
}

func TestTaskScenario(t *testing.T) {
	b, h := setupBridge(t)

	created := decode[models.Task](t, res(b.TaskCreate(h, str("Write spec"), nil, 0, 2)))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, models.PriorityHigh, created.Priority)
	assert.Nil(t, created.DueDate)
	assert.Nil(t, created.Notes)

	incomplete := decode[[]models.Task](t, res(b.TaskListIncomplete(h)))
	require.Len(t, incomplete, 1)
	assert.Equal(t, created.ID, incomplete[0].ID)

	assert.True(t, b.TaskSetCompleted(h, str(created.ID), true))

	payload, ok := b.TaskListIncomplete(h)
	require.True(t, ok)
	assert.Equal(t, "[]", payload)

	all := decode[[]models.Task](t, res(b.TaskListAll(h)))
	require.Len(t, all, 1)
	assert.True(t, all[0].IsCompleted)
}

func TestTaskNullHandling(t *testing.T) {
	b, h := setupBridge(t)

	t.Run("Null title inserts nothing", func(t *testing.T) {
		payload, ok := b.TaskCreate(h, nil, str("notes"), 0, 1)
		assert.False(t, ok)
		assert.Empty(t, payload)
		assert.Equal(t, CodeDecode, b.LastError())

		all := decode[[]models.Task](t, res(b.TaskListAll(h)))
		assert.Empty(t, all)
	})

	t.Run("Blank title is a validation failure", func(t *testing.T) {
		_, ok := b.TaskCreate(h, str("  "), nil, 0, 1)
		assert.False(t, ok)
		assert.Equal(t, CodeValidation, b.LastError())
	})

	t.Run("Null notes is absent", func(t *testing.T) {
		created := decode[models.Task](t, res(b.TaskCreate(h, str("plain"), nil, 0, 0)))
		got := decode[models.Task](t, res(b.TaskGet(h, str(created.ID))))
		assert.Nil(t, got.Notes)
		assert.Equal(t, created, got)
	})

	t.Run("Due date zero is absent, nonzero is kept", func(t *testing.T) {
		due := decode[models.Task](t, res(b.TaskCreate(h, str("due"), str("n"), 1760000000, 1)))
		require.NotNil(t, due.DueDate)
		assert.Equal(t, int64(1760000000), *due.DueDate)
		assert.Equal(t, "n", *due.Notes)
	})

	t.Run("Unknown priority rank falls back", func(t *testing.T) {
		created := decode[models.Task](t, res(b.TaskCreate(h, str("odd"), nil, 0, 42)))
		assert.Equal(t, models.DefaultPriority, created.Priority)
	})

	t.Run("Invalid UTF-8 is a decode failure", func(t *testing.T) {
		_, ok := b.TaskCreate(h, str("bad \xff"), nil, 0, 1)
		assert.False(t, ok)
		assert.Equal(t, CodeDecode, b.LastError())
	})

	t.Run("Mutations collapse every failure to false", func(t *testing.T) {
		assert.False(t, b.TaskSetCompleted(h, nil, true))
		assert.False(t, b.TaskSetCompleted(h, str("missing"), true))
		assert.Equal(t, CodeNotFound, b.LastError())
		assert.False(t, b.TaskUpdateTitle(h, str("missing"), nil))
		assert.Equal(t, CodeDecode, b.LastError())

		_, ok := b.TaskGet(h, nil)
		assert.False(t, ok)
		_, ok = b.TaskGet(h, str("missing"))
		assert.False(t, ok)
		assert.Equal(t, CodeNotFound, b.LastError())
	})

	t.Run("Update title and delete", func(t *testing.T) {
		created := decode[models.Task](t, res(b.TaskCreate(h, str("before"), nil, 0, 1)))

		assert.True(t, b.TaskUpdateTitle(h, str(created.ID), str("after")))
		assert.Equal(t, CodeNone, b.LastError())
		got := decode[models.Task](t, res(b.TaskGet(h, str(created.ID))))
		assert.Equal(t, "after", got.Title)

		assert.True(t, b.TaskDelete(h, str(created.ID)))
		assert.False(t, b.TaskDelete(h, str(created.ID)))
		_, ok := b.TaskGet(h, str(created.ID))
		assert.False(t, ok)
	})
}

func TestNotes(t *testing.T) {
	b, h := setupBridge(t)

	created := decode[models.Note](t, res(b.NoteCreate(h, str("Limits"), nil, str("math"))))
	assert.Equal(t, "", created.Body)
	require.NotNil(t, created.Subject)

	_ = decode[models.Note](t, res(b.NoteCreate(h, str("Loose"), str("body"), nil)))

	_, ok := b.NoteCreate(h, nil, str("body"), nil)
	assert.False(t, ok)

	bySubject := decode[[]models.Note](t, res(b.NoteListBySubject(h, str("math"))))
	require.Len(t, bySubject, 1)
	assert.Equal(t, created.ID, bySubject[0].ID)

	_, ok = b.NoteListBySubject(h, nil)
	assert.False(t, ok)

	assert.True(t, b.NoteUpdateBody(h, str(created.ID), str("epsilon")))
	got := decode[models.Note](t, res(b.NoteGet(h, str(created.ID))))
	assert.Equal(t, "epsilon", got.Body)

	assert.True(t, b.NoteUpdateBody(h, str(created.ID), nil))
	got = decode[models.Note](t, res(b.NoteGet(h, str(created.ID))))
	assert.Equal(t, "", got.Body)

	all := decode[[]models.Note](t, res(b.NoteListAll(h)))
	assert.Len(t, all, 2)

	assert.True(t, b.NoteDelete(h, str(created.ID)))
	assert.False(t, b.NoteDelete(h, str(created.ID)))
	assert.False(t, b.NoteUpdateBody(h, str(created.ID), str("x")))
}

func TestGoals(t *testing.T) {
	b, h := setupBridge(t)

	created := decode[models.Goal](t, res(b.GoalCreate(h, str("Finish course"), nil, 0)))
	assert.Nil(t, created.Description)
	assert.Nil(t, created.TargetDate)

	t.Run("Out of range progress fails and leaves value", func(t *testing.T) {
		assert.True(t, b.GoalSetProgress(h, str(created.ID), 0.5))

		for _, v := range []float64{-0.5, 1.0001, math.NaN()} {
			assert.False(t, b.GoalSetProgress(h, str(created.ID), v))
			assert.Equal(t, CodeValidation, b.LastError())
		}

		got := decode[models.Goal](t, res(b.GoalGet(h, str(created.ID))))
		assert.InDelta(t, 0.5, got.Progress, 1e-9)
		assert.False(t, got.IsCompleted)
	})

	t.Run("Progress 1.0 completes", func(t *testing.T) {
		assert.True(t, b.GoalSetProgress(h, str(created.ID), 1.0))
		got := decode[models.Goal](t, res(b.GoalGet(h, str(created.ID))))
		assert.True(t, got.IsCompleted)
	})

	t.Run("List and delete", func(t *testing.T) {
		_ = decode[models.Goal](t, res(b.GoalCreate(h, str("Second"), str("desc"), 1790000000)))

		goals := decode[[]models.Goal](t, res(b.GoalListAll(h)))
		require.Len(t, goals, 2)
		assert.Equal(t, created.ID, goals[0].ID)
		require.NotNil(t, goals[1].TargetDate)

		assert.True(t, b.GoalDelete(h, str(created.ID)))
		assert.False(t, b.GoalDelete(h, str(created.ID)))
		assert.False(t, b.GoalSetProgress(h, str(created.ID), 0.2))
		assert.Equal(t, CodeNotFound, b.LastError())
	})
}

func TestStudySessions(t *testing.T) {
	b, h := setupBridge(t)

	assert.Equal(t, int64(0), b.StudySessionTotalDuration(h, str("math")))
	assert.Equal(t, CodeNone, b.LastError())

	first := decode[models.StudySession](t, res(b.StudySessionCreate(h, str("math"), 30, nil)))
	_ = decode[models.StudySession](t, res(b.StudySessionCreate(h, str("math"), 45, str("ch 2"))))
	_ = decode[models.StudySession](t, res(b.StudySessionCreate(h, str("history"), 60, nil)))

	assert.Equal(t, int64(75), b.StudySessionTotalDuration(h, str("math")))
	assert.Equal(t, AggregateFailed, b.StudySessionTotalDuration(h, nil))

	t.Run("Negative duration is rejected", func(t *testing.T) {
		_, ok := b.StudySessionCreate(h, str("math"), -5, nil)
		assert.False(t, ok)
		assert.Equal(t, CodeValidation, b.LastError())
		assert.Equal(t, int64(75), b.StudySessionTotalDuration(h, str("math")))
	})

	got := decode[models.StudySession](t, res(b.StudySessionGet(h, str(first.ID))))
	assert.Equal(t, first, got)

	bySubject := decode[[]models.StudySession](t, res(b.StudySessionListBySubject(h, str("math"))))
	assert.Len(t, bySubject, 2)

	all := decode[[]models.StudySession](t, res(b.StudySessionListAll(h)))
	assert.Len(t, all, 3)

	assert.True(t, b.StudySessionDelete(h, str(first.ID)))
	assert.False(t, b.StudySessionDelete(h, str(first.ID)))
	assert.Equal(t, int64(45), b.StudySessionTotalDuration(h, str("math")))
}

func TestStoreFailureAfterExternalClose(t *testing.T) {
	b, h := setupBridge(t)

	db, err := b.store(h)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	_, ok := b.TaskListAll(h)
	assert.False(t, ok)
	assert.Equal(t, CodeStore, b.LastError())
	assert.Equal(t, AggregateFailed, b.StudySessionTotalDuration(h, str("math")))
}

func TestPanicsBecomeSentinels(t *testing.T) {
	b, _ := setupBridge(t)

	payload, ok := b.payload("boom", func(_ context.Context) (any, error) { panic("boom") })
	assert.False(t, ok)
	assert.Empty(t, payload)
	assert.Equal(t, CodeInternal, b.LastError())

	assert.False(t, b.mutation("boom", func(_ context.Context) error { panic("boom") }))
	assert.Equal(t, AggregateFailed, b.aggregate("boom", func(_ context.Context) (int64, error) { panic("boom") }))
}

func TestLedger(t *testing.T) {
	l := NewLedger()

	l.Track(0)
	l.Track(0x1000)
	l.Track(0x2000)
	assert.Equal(t, 2, l.Outstanding())

	assert.True(t, l.Release(0x1000))
	assert.False(t, l.Release(0x1000))
	assert.False(t, l.Release(0))
	assert.False(t, l.Release(0x3000))
	assert.Equal(t, 1, l.Outstanding())
}

func TestCloseAll(t *testing.T) {
	b, h := setupBridge(t)
	other := b.Open(str(filepath.Join(t.TempDir(), "other.db")))
	require.NotZero(t, other)

	b.CloseAll()
	assert.Equal(t, CodeNone, b.LastError())

	for _, handle := range []Handle{h, other} {
		_, ok := b.TaskListAll(handle)
		assert.False(t, ok)
		assert.Equal(t, CodeInvalidHandle, b.LastError())
	}

	b.CloseAll()
	b.Close(h)
	assert.Equal(t, CodeNone, b.LastError())
}

func TestCodeFor(t *testing.T) {
	cause := errors.New("cause")

	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{"Validation", &database.Error{Kind: database.KindValidation, Op: "x", Err: cause}, CodeValidation},
		{"Not found wrapped", fmt.Errorf("outer: %w", &database.Error{Kind: database.KindNotFound}), CodeNotFound},
		{"Store", &database.Error{Kind: database.KindStore, Err: cause}, CodeStore},
		{"Decode", database.DecodeError("x", cause), CodeDecode},
		{"Invalid handle", fmt.Errorf("outer: %w", errInvalidHandle), CodeInvalidHandle},
		{"Unclassified", cause, CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, codeFor(tt.err))
		})
	}
}
