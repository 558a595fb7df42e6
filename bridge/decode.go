package bridge

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"aathoos-core/database"
)

var errNullInput = errors.New("required input is NULL")

// requireText decodes a required string. NULL and invalid UTF-8 are decode failures.
func requireText(op, field string, p *string) (string, error) {
	if p == nil {
		return "", database.DecodeError(op, fmt.Errorf("%s: %w", field, errNullInput))
	}
	if !utf8.ValidString(*p) {
		return "", database.DecodeError(op, fmt.Errorf("%s: invalid UTF-8", field))
	}
	return *p, nil
}

// optionalText decodes an optional string. NULL means absent.
func optionalText(op, field string, p *string) (*string, error) {
	if p == nil {
		return nil, nil
	}
	s, err := requireText(op, field, p)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// textOrEmpty decodes a string that defaults to "" when NULL.
func textOrEmpty(op, field string, p *string) (string, error) {
	if p == nil {
		return "", nil
	}
	return requireText(op, field, p)
}

// optionalDate maps the zero timestamp to absent.
func optionalDate(ts int64) *int64 {
	if ts == 0 {
		return nil
	}
	return &ts
}
