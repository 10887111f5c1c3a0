package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/rtsdrums-eng/kitchen-app/internal/core/domain"
)

func renderError(t *testing.T, err error) (int, map[string]string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/acceptInvitation", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid error body: %v", err)
	}
	return rec.Code, body
}

func TestErrorHandler_InvitationNotFound(t *testing.T) {
	code, body := renderError(t, domain.ErrInvitationNotFound)
	if code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", code)
	}
	if body["error"] != "not_found" || body["message"] != "invitation not found" {
		t.Errorf("unexpected body: %v", body)
	}
}

func TestErrorHandler_HouseholdNotFound(t *testing.T) {
	code, body := renderError(t, domain.ErrHouseholdNotFound)
	if code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", code)
	}
	if body["message"] != "household not found" {
		t.Errorf("unexpected body: %v", body)
	}
}

func TestErrorHandler_AlreadyProcessedIsConflict(t *testing.T) {
	code, body := renderError(t, &domain.AlreadyProcessedError{Status: domain.InvitationDeclined})
	if code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", code)
	}
	if body["error"] != "already_processed" {
		t.Errorf("unexpected error code: %v", body)
	}
	if body["message"] != "invitation already declined" {
		t.Errorf("expected observed status in message, got: %v", body)
	}
}

func TestErrorHandler_StorageUnavailable(t *testing.T) {
	code, body := renderError(t, fmt.Errorf("%w: retries exhausted", domain.ErrStorageUnavailable))
	if code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", code)
	}
	if body["error"] != "storage_unavailable" {
		t.Errorf("unexpected error code: %v", body)
	}
}

func TestErrorHandler_EchoHTTPError(t *testing.T) {
	code, body := renderError(t, echo.NewHTTPError(http.StatusBadRequest, "invitationid is required"))
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
	if body["error"] != "validation_error" {
		t.Errorf("unexpected error code: %v", body)
	}
}

func TestErrorHandler_UnknownErrorHidden(t *testing.T) {
	code, body := renderError(t, errors.New("connection reset by peer"))
	if code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", code)
	}
	if body["message"] != "internal server error" {
		t.Errorf("internal detail leaked: %v", body)
	}
}
