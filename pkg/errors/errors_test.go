package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentinelErrors_AreDistinct(t *testing.T) {
	sentinels := []error{ErrNotFound, ErrInvalidInput, ErrPayloadTooLarge, ErrInternal, ErrServiceUnavail}

	for i := 0; i < len(sentinels); i++ {
		for j := i + 1; j < len(sentinels); j++ {
			assert.NotEqual(t, sentinels[i], sentinels[j])
		}
	}
}

func TestAppError_ErrorString(t *testing.T) {
	withInner := &AppError{Code: "INTERNAL_ERROR", Message: "store failed", Err: fmt.Errorf("disk gone")}
	assert.Contains(t, withInner.Error(), "store failed")
	assert.Contains(t, withInner.Error(), "disk gone")

	bare := &AppError{Code: "NOT_FOUND", Message: "review not found"}
	assert.Equal(t, "NOT_FOUND: review not found", bare.Error())
	assert.Nil(t, bare.Unwrap())
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		status   int
		sentinel error
	}{
		{"not found", NotFound("review", "r-1"), http.StatusNotFound, ErrNotFound},
		{"invalid input", InvalidInput("rating is required"), http.StatusBadRequest, ErrInvalidInput},
		{"too large", PayloadTooLarge("image exceeds 5MB"), http.StatusRequestEntityTooLarge, ErrPayloadTooLarge},
		{"unavailable", Unavailable("try later"), http.StatusServiceUnavailable, ErrServiceUnavail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NotNil(t, tt.err)
			assert.Equal(t, tt.status, tt.err.Status)
			assert.True(t, errors.Is(tt.err, tt.sentinel))
			assert.Equal(t, tt.status, HTTPStatus(tt.err))
		})
	}
}

func TestInternal_HidesCause(t *testing.T) {
	cause := fmt.Errorf("boom")
	err := Internal(cause)
	assert.Equal(t, "an internal error occurred", err.Message)
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(err))
}

func TestHTTPStatus_WrappedSentinels(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, HTTPStatus(Wrap(ErrNotFound, "lookup")))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(fmt.Errorf("parse: %w", ErrInvalidInput)))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(fmt.Errorf("unknown")))
}
