package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/randytsao24/gorest/internal/apperr"
	"github.com/randytsao24/gorest/internal/logger"
)

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("encoding JSON response", logger.Err(err))
	}
}

// statusForError maps an error kind to its HTTP status and short code
func statusForError(err error) (int, string) {
	switch {
	case errors.Is(err, apperr.ErrInvalidRequest):
		return http.StatusBadRequest, "invalid_request"
	case errors.Is(err, apperr.ErrUpstreamUnavailable):
		return http.StatusBadGateway, "upstream_unavailable"
	case errors.Is(err, apperr.ErrUpstreamError):
		return http.StatusBadGateway, "upstream_error"
	case errors.Is(err, apperr.ErrUpstreamMalformedResponse):
		return http.StatusBadGateway, "upstream_malformed_response"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

// writeError renders err as the standard error envelope. Internal errors get a
// generic message; their detail only goes to the log.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := statusForError(err)
	body := map[string]any{
		"status":  "error",
		"error":   code,
		"message": err.Error(),
	}

	var statusErr *apperr.UpstreamStatusError
	if errors.As(err, &statusErr) {
		body["upstream_status"] = statusErr.StatusCode
	}

	if status == http.StatusInternalServerError {
		body["message"] = "Something went wrong, please try again later"
		slog.Error("request_failed", "path", r.URL.Path, logger.Err(err))
	} else {
		slog.Warn("request_failed", "path", r.URL.Path, "status", status, logger.Err(err))
	}

	writeJSON(w, status, body)
}
