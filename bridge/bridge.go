// Package bridge is the boundary between foreign callers and the store.
//
// Every exported operation takes primitive inputs, where a nil *string stands
// for a NULL C string and a zero date stands for "no date". Failures never
// escape as errors or panics: payload operations return ("", false),
// mutations return false and aggregates return -1. The kind of the most
// recent failure is available from LastError.
package bridge

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"

	"aathoos-core/config"
	"aathoos-core/database"
	"aathoos-core/validator"
)

// AggregateFailed is returned by aggregate operations on any failure.
const AggregateFailed int64 = -1

// Bridge holds the dependencies shared by every boundary call.
type Bridge struct {
	cfg       *config.Config
	logger    *slog.Logger
	validator *validator.Validator

	handles  *handleTable
	Payloads *Ledger

	lastErr atomic.Int32
}

// New creates a bridge with its own handle table and payload ledger.
func New(cfg *config.Config, logger *slog.Logger) *Bridge {
	if cfg == nil {
		cfg = config.Load()
	}
	if logger == nil {
		logger = cfg.NewLogger(nil)
	}

	return &Bridge{
		cfg:       cfg,
		logger:    logger,
		validator: validator.Default(),
		handles:   newHandleTable(),
		Payloads:  NewLedger(),
	}
}

var (
	defaultBridge *Bridge
	defaultOnce   sync.Once
)

// Default returns the process-wide bridge used by the C exports.
// AATHOOS_ENV_FILE may name a dotenv file to read first.
func Default() *Bridge {
	defaultOnce.Do(func() {
		cfg := config.Load(os.Getenv("AATHOOS_ENV_FILE"))
		defaultBridge = New(cfg, cfg.NewLogger(nil))
	})
	return defaultBridge
}

// LastError reports the failure kind of the most recent call.
func (b *Bridge) LastError() ErrorCode {
	return ErrorCode(b.lastErr.Load())
}

// ClearError resets the diagnostic channel.
func (b *Bridge) ClearError() {
	b.lastErr.Store(int32(CodeNone))
}

func (b *Bridge) fail(op string, err error) {
	code := codeFor(err)
	b.lastErr.Store(int32(code))
	b.logger.Debug("boundary call failed",
		slog.String("op", op),
		slog.String("code", code.String()),
		slog.Any("error", err),
	)
}

// payload runs fn and encodes its result as JSON exactly once.
func (b *Bridge) payload(op string, fn func(ctx context.Context) (any, error)) (out string, ok bool) {
	b.ClearError()
	defer func() {
		if r := recover(); r != nil {
			b.fail(op, fmt.Errorf("panic: %v", r))
			out, ok = "", false
		}
	}()

	v, err := fn(context.Background())
	if err != nil {
		b.fail(op, err)
		return "", false
	}

	data, err := json.Marshal(v)
	if err != nil {
		b.fail(op, &database.Error{Kind: database.KindStore, Op: op, Err: err})
		return "", false
	}
	return string(data), true
}

func (b *Bridge) mutation(op string, fn func(ctx context.Context) error) (ok bool) {
	b.ClearError()
	defer func() {
		if r := recover(); r != nil {
			b.fail(op, fmt.Errorf("panic: %v", r))
			ok = false
		}
	}()

	if err := fn(context.Background()); err != nil {
		b.fail(op, err)
		return false
	}
	return true
}

func (b *Bridge) aggregate(op string, fn func(ctx context.Context) (int64, error)) (n int64) {
	b.ClearError()
	defer func() {
		if r := recover(); r != nil {
			b.fail(op, fmt.Errorf("panic: %v", r))
			n = AggregateFailed
		}
	}()

	n, err := fn(context.Background())
	if err != nil {
		b.fail(op, err)
		return AggregateFailed
	}
	return n
}

// validate checks a request struct and reports failures as validation errors.
func (b *Bridge) validate(op string, req any) error {
	if err := b.validator.Validate(req); err != nil {
		return &database.Error{Kind: database.KindValidation, Op: op, Err: err}
	}
	return nil
}
