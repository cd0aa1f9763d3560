package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrInvalidArgument", ErrInvalidArgument},
		{"ErrDimensionMismatch", ErrDimensionMismatch},
		{"ErrNotImplemented", ErrNotImplemented},
		{"ErrUnsupportedType", ErrUnsupportedType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestErrors_Distinct(t *testing.T) {
	assert.False(t, errors.Is(ErrInvalidInput, ErrInvalidArgument))
	assert.False(t, errors.Is(ErrNotFound, ErrInvalidInput))
	assert.False(t, errors.Is(ErrDimensionMismatch, ErrInvalidArgument))
}

func TestDimensionError_MatchesSentinel(t *testing.T) {
	err := &DimensionError{Expected: 3, Got: 2}

	assert.True(t, errors.Is(err, ErrDimensionMismatch))
	assert.False(t, errors.Is(err, ErrInvalidArgument))
	assert.Equal(t, "dimension mismatch: expected 3, got 2", err.Error())
}

func TestDimensionError_Wrapped(t *testing.T) {
	err := fmt.Errorf("upsert embedding: %w", &DimensionError{Expected: 4, Got: 8})

	assert.ErrorIs(t, err, ErrDimensionMismatch)

	var dimErr *DimensionError
	assert.True(t, errors.As(err, &dimErr))
	assert.Equal(t, 4, dimErr.Expected)
	assert.Equal(t, 8, dimErr.Got)
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"nil", nil, ""},
		{"not found", fmt.Errorf("get: %w", ErrNotFound), "not found"},
		{"invalid input", ErrInvalidInput, "invalid input"},
		{"invalid argument", ErrInvalidArgument, "invalid argument"},
		{"dimension", &DimensionError{Expected: 1, Got: 2}, "dimension mismatch"},
		{"other", errors.New("disk on fire"), "internal error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Describe(tt.err))
		})
	}
}
