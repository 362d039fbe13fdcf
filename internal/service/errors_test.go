package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shaharia-lab/venuebook/internal/service"
)

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *service.ValidationError
		expected string
	}{
		{
			name:     "with field and message",
			err:      &service.ValidationError{Field: "host", Message: "host is required"},
			expected: `validation error for "host": host is required`,
		},
		{
			name:     "without field - returns message only",
			err:      &service.ValidationError{Field: "", Message: "invalid request body"},
			expected: "invalid request body",
		},
		{
			name:     "empty message with field",
			err:      &service.ValidationError{Field: "port", Message: ""},
			expected: `validation error for "port": `,
		},
		{
			name:     "both empty",
			err:      &service.ValidationError{Field: "", Message: ""},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestValidationError_implements_error(t *testing.T) {
	var err error = &service.ValidationError{Field: "x", Message: "bad"}
	assert.Error(t, err)
}

func TestUnavailableError_Error(t *testing.T) {
	err := &service.UnavailableError{Resource: "event queue", Reason: "buffer full"}
	assert.Equal(t, "event queue unavailable: buffer full", err.Error())
}
