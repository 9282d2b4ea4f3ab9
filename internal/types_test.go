// internal/types_test.go - Unit tests for application errors
package internal

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"without cause", NewError(ErrorCodeValidation, "bad input", nil), "bad input"},
		{"with cause", NewError(ErrorCodeFileSystem, "cannot read", fs.ErrNotExist), "cannot read: file does not exist"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestErrorUnwrap(t *testing.T) {
	err := fmt.Errorf("loading: %w", NewError(ErrorCodeNotFound, "missing", fs.ErrNotExist))

	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.Equal(t, ErrorCodeNotFound, ErrorCodeOf(err))
	assert.Equal(t, "", ErrorCodeOf(errors.New("plain")))
}

func TestProcessingStatsDuration(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	stats := ProcessingStats{StartTime: start, EndTime: start.Add(1500 * time.Millisecond)}
	assert.Equal(t, 1500*time.Millisecond, stats.Duration())
}
