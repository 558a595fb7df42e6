package database

import (
	"errors"
	"fmt"
)

// Kind classifies a failure. The set is closed.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindNotFound
	KindStore
	KindDecode
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindStore:
		return "store"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is checks against a Kind.
var (
	ErrValidation = &Error{Kind: KindValidation}
	ErrNotFound   = &Error{Kind: KindNotFound}
	ErrStore      = &Error{Kind: KindStore}
	ErrDecode     = &Error{Kind: KindDecode}
)

// Error carries a Kind, the operation that failed and the underlying cause.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Op != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	case e.Op != "":
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	default:
		return e.Kind.String()
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the Kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func validationError(op string, err error) error {
	return &Error{Kind: KindValidation, Op: op, Err: err}
}

func notFound(op, id string) error {
	return &Error{Kind: KindNotFound, Op: op, Err: fmt.Errorf("no row with id %q", id)}
}

func storeError(op string, err error) error {
	return &Error{Kind: KindStore, Op: op, Err: err}
}

// DecodeError reports input that could not be decoded at the boundary.
func DecodeError(op string, err error) error {
	return &Error{Kind: KindDecode, Op: op, Err: err}
}
