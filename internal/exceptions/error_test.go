package exceptions

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/harentsoaR/clinic-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestFromStoreError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "not_found",
			err:        fmt.Errorf("find one bookings: %w", store.ErrNotFound),
			wantStatus: http.StatusNotFound,
			wantMsg:    "Appointment not found",
		},
		{
			name:       "deadline",
			err:        fmt.Errorf("find bookings: %w", context.DeadlineExceeded),
			wantStatus: http.StatusGatewayTimeout,
			wantMsg:    "Upstream timed out",
		},
		{
			name:       "driver_failure",
			err:        errors.New("connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "Internal server error",
		},
		{
			name:       "already_classified",
			err:        ErrForbidden("forbidden"),
			wantStatus: http.StatusForbidden,
			wantMsg:    "forbidden",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ce := FromStoreError(tt.err, "lookup booking", "Appointment not found")
			assert.Equal(t, tt.wantStatus, ce.StatusCode)
			assert.Equal(t, tt.wantMsg, ce.ClientMessage)
		})
	}
}

func TestInternalErrorHidesCause(t *testing.T) {
	cause := errors.New("auth failed for user root")
	ce := ErrInternal("insert payment", cause)

	assert.Equal(t, "Internal server error", ce.ClientMessage)
	assert.Contains(t, ce.Error(), "auth failed")
	assert.ErrorIs(t, ce, cause)
}

func TestAsWrapsUnknownErrors(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, As(errors.New("boom")).StatusCode)
	assert.Equal(t, http.StatusBadRequest, As(fmt.Errorf("ctx: %w", ErrBadRequest("Invalid id", nil))).StatusCode)
}
