package validator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

type TestCreateTaskRequest struct {
	Title    string `json:"title" validate:"required,notblank"`
	Priority int32  `json:"priority"`
}

type TestCreateSessionRequest struct {
	Subject      string `json:"subject" validate:"required,notblank"`
	DurationSecs int64  `json:"duration_secs" validate:"gte=0"`
}

func TestValidator_CreateTask(t *testing.T) {
	v := New()

	tests := []struct {
		name      string
		req       TestCreateTaskRequest
		wantError bool
		errorMsg  string
	}{
		{
			name:      "Valid task request",
			req:       TestCreateTaskRequest{Title: "Write spec", Priority: 2},
			wantError: false,
		},
		{
			name:      "Missing title",
			req:       TestCreateTaskRequest{Title: ""},
			wantError: true,
			errorMsg:  "title is required",
		},
		{
			name:      "Blank title",
			req:       TestCreateTaskRequest{Title: "   "},
			wantError: true,
			errorMsg:  "title must not be blank",
		},
		{
			name:      "Unknown priority is not a validation error",
			req:       TestCreateTaskRequest{Title: "x", Priority: 9},
			wantError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&tt.req)

			if tt.wantError {
				assert.Error(t, err)
				if tt.errorMsg != "" {
					assert.Contains(t, err.Error(), tt.errorMsg)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidator_CreateSession(t *testing.T) {
	v := New()

	tests := []struct {
		name      string
		req       TestCreateSessionRequest
		wantError bool
		errorMsg  string
	}{
		{
			name:      "Valid session",
			req:       TestCreateSessionRequest{Subject: "math", DurationSecs: 30},
			wantError: false,
		},
		{
			name:      "Zero duration is valid",
			req:       TestCreateSessionRequest{Subject: "math", DurationSecs: 0},
			wantError: false,
		},
		{
			name:      "Negative duration",
			req:       TestCreateSessionRequest{Subject: "math", DurationSecs: -1},
			wantError: true,
			errorMsg:  "duration_secs must be greater than or equal to 0",
		},
		{
			name:      "Missing subject",
			req:       TestCreateSessionRequest{DurationSecs: 10},
			wantError: true,
			errorMsg:  "subject is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&tt.req)

			if tt.wantError {
				assert.Error(t, err)
				if tt.errorMsg != "" {
					assert.Contains(t, err.Error(), tt.errorMsg)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidator_Progress(t *testing.T) {
	v := Default()

	for _, p := range []float64{0, 0.25, 0.5, 1} {
		assert.NoError(t, v.Var(p, "progress"), "progress %v", p)
	}

	for _, p := range []float64{-0.01, 1.01, math.NaN(), math.Inf(1), math.Inf(-1)} {
		err := v.Var(p, "progress")
		if assert.Error(t, err, "progress %v", p) {
			assert.Contains(t, err.Error(), "between 0.0 and 1.0")
		}
	}
}

func TestValidator_OneOf(t *testing.T) {
	v := Default()

	assert.NoError(t, v.Var("WAL", "oneof=DELETE WAL"))

	err := v.Var("WAL; DROP TABLE tasks", "oneof=DELETE WAL")
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "must be one of: DELETE WAL")
	}
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "title", Message: "title is required", Tag: "required"},
		{Field: "subject", Message: "subject must not be blank", Tag: "notblank"},
	}

	errMsg := errs.Error()
	assert.Contains(t, errMsg, "title is required")
	assert.Contains(t, errMsg, "subject must not be blank")
}
