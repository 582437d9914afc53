package errors

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorType_Constants(t *testing.T) {
	tests := []struct {
		name     string
		errType  ErrorType
		expected string
	}{
		{name: "input error type", errType: ErrTypeInput, expected: "INPUT"},
		{name: "parsing error type", errType: ErrTypeParsing, expected: "PARSING"},
		{name: "storage error type", errType: ErrTypeStorage, expected: "STORAGE"},
		{name: "validation error type", errType: ErrTypeValidation, expected: "VALIDATION"},
		{name: "config error type", errType: ErrTypeConfig, expected: "CONFIG"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, string(tt.errType))
		})
	}
}

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name        string
		appError    *AppError
		wantMessage string
	}{
		{
			name: "error without cause",
			appError: &AppError{
				Type:    ErrTypeParsing,
				Message: "rows must be an array",
			},
			wantMessage: "[PARSING] rows must be an array",
		},
		{
			name: "error with cause",
			appError: &AppError{
				Type:    ErrTypeInput,
				Message: "failed to read survey data",
				Cause:   fmt.Errorf("open data.json: no such file or directory"),
			},
			wantMessage: "[INPUT] failed to read survey data: open data.json: no such file or directory",
		},
		{
			name: "error with empty message",
			appError: &AppError{
				Type: ErrTypeStorage,
			},
			wantMessage: "[STORAGE] ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantMessage, tt.appError.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := os.ErrNotExist
	err := NewInputError("failed to read survey data", cause)

	assert.Equal(t, cause, err.Unwrap())
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.Nil(t, NewValidationError("bad", nil).Unwrap())
}

func TestAppError_WithContext(t *testing.T) {
	err := NewStorageError("failed to write report", nil).
		WithContext("path", "data/csv/be.csv").
		WithContext("rows", 3)

	require.Len(t, err.Context, 2)
	assert.Equal(t, "data/csv/be.csv", err.Context["path"])
	assert.Equal(t, 3, err.Context["rows"])

	bare := &AppError{Type: ErrTypeConfig, Message: "no context yet"}
	bare.WithContext("key", "value")
	assert.Equal(t, "value", bare.Context["key"])
}

func TestConstructors(t *testing.T) {
	cause := errors.New("boom")
	tests := []struct {
		name     string
		err      *AppError
		wantType ErrorType
	}{
		{name: "input", err: NewInputError("msg", cause), wantType: ErrTypeInput},
		{name: "parsing", err: NewParsingError("msg", cause), wantType: ErrTypeParsing},
		{name: "storage", err: NewStorageError("msg", cause), wantType: ErrTypeStorage},
		{name: "validation", err: NewValidationError("msg", cause), wantType: ErrTypeValidation},
		{name: "config", err: NewConfigError("msg", cause), wantType: ErrTypeConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantType, tt.err.Type)
			assert.Equal(t, "msg", tt.err.Message)
			assert.Equal(t, cause, tt.err.Cause)
			assert.NotNil(t, tt.err.Context)
		})
	}
}

func TestIsType(t *testing.T) {
	parsing := NewParsingError("invalid JSON", errors.New("unexpected EOF"))
	wrapped := fmt.Errorf("load stage: %w", parsing)

	assert.True(t, IsType(parsing, ErrTypeParsing))
	assert.True(t, IsType(wrapped, ErrTypeParsing))
	assert.False(t, IsType(wrapped, ErrTypeStorage))
	assert.False(t, IsType(errors.New("plain"), ErrTypeParsing))
	assert.False(t, IsType(nil, ErrTypeParsing))

	assert.Equal(t, ErrTypeParsing, TypeOf(wrapped))
	assert.Equal(t, ErrorType(""), TypeOf(errors.New("plain")))
}
