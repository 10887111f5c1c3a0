package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/rtsdrums-eng/kitchen-app/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors: a short
// machine-readable code plus a human-readable message.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<code>", "message": "<text>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, resp := resolveError(err, log, c)
		_ = c.JSON(code, resp)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	// Echo's own errors (bind failures, 404/405 from the router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{
			Error:   errorCode(he.Code),
			Message: fmt.Sprintf("%v", he.Message),
		}
	}

	// AlreadyProcessed is a legitimate race outcome, not a client mistake:
	// surfaced as 409 with the observed terminal status in the message.
	var processed *domain.AlreadyProcessedError
	if errors.As(err, &processed) {
		return http.StatusConflict, errorResponse{
			Error:   "already_processed",
			Message: processed.Error(),
		}
	}

	switch {
	case errors.Is(err, domain.ErrInvitationNotFound):
		return http.StatusNotFound, errorResponse{Error: "not_found", Message: "invitation not found"}
	case errors.Is(err, domain.ErrHouseholdNotFound):
		return http.StatusNotFound, errorResponse{Error: "not_found", Message: "household not found"}
	case errors.Is(err, domain.ErrStorageUnavailable):
		return http.StatusInternalServerError, errorResponse{Error: "storage_unavailable", Message: err.Error()}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Error: "internal_error", Message: "internal server error"}
}

// errorCode maps an HTTP status to the short code used in the envelope.
func errorCode(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "validation_error"
	case http.StatusUnauthorized:
		return "unauthorized"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusMethodNotAllowed:
		return "method_not_allowed"
	default:
		return "error"
	}
}
