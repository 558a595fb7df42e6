package bridge

import (
	"errors"

	"aathoos-core/database"
)

// ErrorCode is the out-of-band diagnostic for the last failed call.
// Its values are part of the C interface.
type ErrorCode int32

const (
	CodeNone ErrorCode = iota
	CodeValidation
	CodeNotFound
	CodeStore
	CodeDecode
	CodeInvalidHandle
	CodeInternal
)

func (c ErrorCode) String() string {
	switch c {
	case CodeNone:
		return "none"
	case CodeValidation:
		return "validation"
	case CodeNotFound:
		return "not_found"
	case CodeStore:
		return "store"
	case CodeDecode:
		return "decode"
	case CodeInvalidHandle:
		return "invalid_handle"
	default:
		return "internal"
	}
}

var errInvalidHandle = errors.New("unknown or closed store handle")

func codeFor(err error) ErrorCode {
	if errors.Is(err, errInvalidHandle) {
		return CodeInvalidHandle
	}

	switch {
	case errors.Is(err, database.ErrValidation):
		return CodeValidation
	case errors.Is(err, database.ErrNotFound):
		return CodeNotFound
	case errors.Is(err, database.ErrStore):
		return CodeStore
	case errors.Is(err, database.ErrDecode):
		return CodeDecode
	default:
		return CodeInternal
	}
}
