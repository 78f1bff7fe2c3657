package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"suburban/shared/failure"
	"testing"
)

func TestFailure_Error(t *testing.T) {
	f := &failure.Failure{
		Code:    http.StatusBadRequest,
		Message: "check_out_date must be after check_in_date",
	}

	if f.Error() != "check_out_date must be after check_in_date" {
		t.Errorf("unexpected error message %q", f.Error())
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{
			name:    "BadRequest",
			err:     failure.BadRequest(errors.New("malformed body")),
			code:    http.StatusBadRequest,
			message: "malformed body",
		},
		{
			name:    "BadRequestFromString",
			err:     failure.BadRequestFromString("quantity must be at least 1"),
			code:    http.StatusBadRequest,
			message: "quantity must be at least 1",
		},
		{
			name:    "BadRequestf",
			err:     failure.BadRequestf("insufficient stock: %d available", 1),
			code:    http.StatusBadRequest,
			message: "insufficient stock: 1 available",
		},
		{
			name:    "Unauthorized",
			err:     failure.Unauthorized("token expired"),
			code:    http.StatusUnauthorized,
			message: "token expired",
		},
		{
			name:    "InternalError",
			err:     failure.InternalError(errors.New("disk I/O error")),
			code:    http.StatusInternalServerError,
			message: "disk I/O error",
		},
		{
			name:    "Unimplemented",
			err:     failure.Unimplemented("ExportReport"),
			code:    http.StatusNotImplemented,
			message: "ExportReport",
		},
		{
			name:    "NotFound",
			err:     failure.NotFound("room not found"),
			code:    http.StatusNotFound,
			message: "room not found",
		},
		{
			name:    "Conflict",
			err:     failure.Conflict("time slot clashes with an existing booking"),
			code:    http.StatusConflict,
			message: "time slot clashes with an existing booking",
		},
		{
			name:    "Conflictf",
			err:     failure.Conflictf("allocation is already %s", "lost"),
			code:    http.StatusConflict,
			message: "allocation is already lost",
		},
		{
			name:    "Forbidden",
			err:     failure.Forbidden("admin only"),
			code:    http.StatusForbidden,
			message: "admin only",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, ok := tt.err.(*failure.Failure)
			if !ok {
				t.Fatalf("expected *failure.Failure, got %T", tt.err)
			}

			if f.Code != tt.code {
				t.Errorf("expected code %d, got %d", tt.code, f.Code)
			}

			if f.Message != tt.message {
				t.Errorf("expected message %q, got %q", tt.message, f.Message)
			}
		})
	}
}

func TestNilInputs(t *testing.T) {
	if failure.BadRequest(nil) != nil {
		t.Error("expected nil for BadRequest(nil)")
	}

	if failure.InternalError(nil) != nil {
		t.Error("expected nil for InternalError(nil)")
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		input    error
		expected int
	}{
		{
			name:     "failure error",
			input:    failure.NotFound("booking not found"),
			expected: http.StatusNotFound,
		},
		{
			name:     "wrapped failure error",
			input:    fmt.Errorf("failed to check in: %w", failure.BadRequestFromString("bad dates")),
			expected: http.StatusBadRequest,
		},
		{
			name:     "regular error",
			input:    errors.New("database is locked"),
			expected: http.StatusInternalServerError,
		},
		{
			name:     "nil error",
			input:    nil,
			expected: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := failure.GetCode(tt.input); got != tt.expected {
				t.Errorf("expected code %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestIs(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", failure.Conflict("slot taken"))

	if !failure.Is(err, http.StatusConflict) {
		t.Error("expected wrapped conflict to match")
	}

	if failure.Is(err, http.StatusNotFound) {
		t.Error("expected conflict not to match not found")
	}

	if failure.Is(errors.New("plain"), http.StatusInternalServerError) {
		t.Error("expected plain error not to be a failure")
	}
}
