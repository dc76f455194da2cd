package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/randytsao24/gorest/internal/apperr"
)

func TestStatusForError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"invalid", apperr.Invalid("bad radius"), http.StatusBadRequest, "invalid_request"},
		{"unavailable wrapping cancellation", fmt.Errorf("%w: %w", apperr.ErrUpstreamUnavailable, context.Canceled), http.StatusBadGateway, "upstream_unavailable"},
		{"status error", fmt.Errorf("fetch: %w", &apperr.UpstreamStatusError{StatusCode: 429}), http.StatusBadGateway, "upstream_error"},
		{"malformed", fmt.Errorf("decode: %w", apperr.ErrUpstreamMalformedResponse), http.StatusBadGateway, "upstream_malformed_response"},
		{"internal", apperr.ErrInternal, http.StatusInternalServerError, "internal_error"},
		{"unknown", errors.New("surprise"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, code := statusForError(tt.err)
			if status != tt.status || code != tt.code {
				t.Errorf("statusForError() = %d %q, want %d %q", status, code, tt.status, tt.code)
			}
		})
	}
}
