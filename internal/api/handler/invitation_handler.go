package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rtsdrums-eng/kitchen-app/internal/api/metrics"
	"github.com/rtsdrums-eng/kitchen-app/internal/core/domain"
	"github.com/rtsdrums-eng/kitchen-app/internal/core/ports"
)

// InvitationHandler handles HTTP requests for the invitation-acceptance flow.
type InvitationHandler struct {
	service ports.AcceptanceService
}

func NewInvitationHandler(service ports.AcceptanceService) *InvitationHandler {
	return &InvitationHandler{service: service}
}

// Accept handles POST /acceptInvitation.
//
// @Summary      Accept a pending household invitation
// @Tags         invitations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      acceptInvitationRequest  true  "Invitation and user identifiers"
// @Success      200   {object}  acceptInvitationResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /acceptInvitation [post]
func (h *InvitationHandler) Accept(c echo.Context) error {
	var req acceptInvitationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	start := time.Now()
	result, err := h.service.AcceptInvitation(c.Request().Context(), ports.AcceptInvitationInput{
		InvitationID: req.InvitationID,
		UserID:       req.UserID,
	})
	if err != nil {
		metrics.AcceptanceErrorsTotal.WithLabelValues(errorReason(err)).Inc()
		metrics.AcceptanceDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		return err
	}

	metrics.InvitationsAcceptedTotal.WithLabelValues(strconv.FormatBool(result.UserCreated)).Inc()
	metrics.AcceptanceDuration.WithLabelValues("accepted").Observe(time.Since(start).Seconds())

	return c.JSON(http.StatusOK, acceptInvitationResponse{
		Success: true,
		Message: "invitation accepted",
	})
}

// errorReason buckets service errors for the errors-total metric.
func errorReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvitationNotFound):
		return "invitation_not_found"
	case errors.Is(err, domain.ErrHouseholdNotFound):
		return "household_not_found"
	case errors.Is(err, domain.ErrAlreadyProcessed):
		return "already_processed"
	case errors.Is(err, domain.ErrStorageUnavailable):
		return "storage_unavailable"
	default:
		return "internal"
	}
}
