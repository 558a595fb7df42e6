package bridge

import (
	"log/slog"
	"sync"

	"aathoos-core/database"
)

// Handle is an opaque token for an open store. Zero is the null handle.
// Tokens are never reused within a process.
type Handle uint64

// handleTable owns every open store. Foreign callers only ever see tokens.
type handleTable struct {
	mu     sync.Mutex
	next   Handle
	stores map[Handle]*database.DB
}

func newHandleTable() *handleTable {
	return &handleTable{
		stores: make(map[Handle]*database.DB),
	}
}

func (t *handleTable) add(db *database.DB) Handle {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.next++
	t.stores[t.next] = db
	return t.next
}

func (t *handleTable) get(h Handle) (*database.DB, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	db, exists := t.stores[h]
	if !exists {
		return nil, errInvalidHandle
	}
	return db, nil
}

func (t *handleTable) remove(h Handle) *database.DB {
	t.mu.Lock()
	defer t.mu.Unlock()

	db, exists := t.stores[h]
	if !exists {
		return nil
	}
	delete(t.stores, h)
	return db
}

func (t *handleTable) drain() []*database.DB {
	t.mu.Lock()
	defer t.mu.Unlock()

	dbs := make([]*database.DB, 0, len(t.stores))
	for h, db := range t.stores {
		dbs = append(dbs, db)
		delete(t.stores, h)
	}
	return dbs
}

// Open opens or creates the store at path. It returns 0 on failure.
func (b *Bridge) Open(path *string) Handle {
	const op = "db_open"
	b.ClearError()

	p, err := requireText(op, "path", path)
	if err != nil {
		b.fail(op, err)
		return 0
	}

	db, err := database.OpenWithOptions(p, b.cfg.StoreOptions())
	if err != nil {
		b.fail(op, err)
		return 0
	}

	h := b.handles.add(db)
	b.logger.Info("store opened", slog.String("path", p), slog.Uint64("handle", uint64(h)))
	return h
}

// Close releases the store behind h. Unknown, zero and already closed
// handles are ignored.
func (b *Bridge) Close(h Handle) {
	b.ClearError()

	db := b.handles.remove(h)
	if db == nil {
		return
	}
	if err := db.Close(); err != nil {
		b.fail("db_close", &database.Error{Kind: database.KindStore, Op: "db_close", Err: err})
		return
	}
	b.logger.Info("store closed", slog.String("path", db.Path()), slog.Uint64("handle", uint64(h)))
}

// CloseAll closes every store still open. Handles issued before the call
// are invalid afterwards. Close failures are logged and recorded; the
// remaining stores are still closed.
func (b *Bridge) CloseAll() {
	b.ClearError()

	for _, db := range b.handles.drain() {
		if err := db.Close(); err != nil {
			b.fail("shutdown", &database.Error{Kind: database.KindStore, Op: "shutdown", Err: err})
			continue
		}
		b.logger.Info("store closed", slog.String("path", db.Path()))
	}
}

func (b *Bridge) store(h Handle) (*database.DB, error) {
	if h == 0 {
		return nil, errInvalidHandle
	}
	return b.handles.get(h)
}
