package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidRow, "row %d: bad value", 3)

	if err.Code != ErrCodeInvalidRow {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidRow)
	}
	if err.Message != "row 3: bad value" {
		t.Errorf("Message = %v, want %v", err.Message, "row 3: bad value")
	}

	expected := "INVALID_ROW: row 3: bad value"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("no such file or directory")
	err := Wrap(ErrCodeFileNotFound, cause, "nodes table")

	if err.Code != ErrCodeFileNotFound {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeFileNotFound)
	}
	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if errors.Unwrap(err) != cause {
		t.Errorf("Unwrap() = %v, want %v", errors.Unwrap(err), cause)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}

	expected := "FILE_NOT_FOUND: nodes table: no such file or directory"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeInvalidRow, "test"),
			code:     ErrCodeInvalidRow,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeInvalidRow, "test"),
			code:     ErrCodeMissingColumn,
			expected: false,
		},
		{
			name:     "outer code wins",
			err:      Wrap(ErrCodeStorage, New(ErrCodeNotFound, "inner"), "outer"),
			code:     ErrCodeStorage,
			expected: true,
		},
		{
			name:     "fmt wrapped",
			err:      fmt.Errorf("load: %w", New(ErrCodeFileNotFound, "missing")),
			code:     ErrCodeFileNotFound,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidInput,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidInput,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{"Error type", New(ErrCodeInvalidConfig, "test"), ErrCodeInvalidConfig},
		{"plain error", errors.New("plain"), ""},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeInvalidRange, "min must be below max")); got != "min must be below max" {
		t.Errorf("UserMessage() = %q", got)
	}
	if got := UserMessage(errors.New("plain error")); got != "plain error" {
		t.Errorf("UserMessage() = %q", got)
	}
}

func TestIsNotFound(t *testing.T) {
	if !IsNotFound(New(ErrCodeFileNotFound, "x")) {
		t.Error("FILE_NOT_FOUND should be a not-found error")
	}
	if !IsNotFound(fmt.Errorf("wrap: %w", New(ErrCodeNotFound, "x"))) {
		t.Error("wrapped NOT_FOUND should be a not-found error")
	}
	if IsNotFound(New(ErrCodeInvalidRow, "x")) {
		t.Error("INVALID_ROW is not a not-found error")
	}
	if IsNotFound(errors.New("plain")) {
		t.Error("plain errors are not not-found errors")
	}
}
