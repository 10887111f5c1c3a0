package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx
// responses: a short machine-readable code plus a human-readable message.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type acceptInvitationRequest struct {
	InvitationID string `json:"invitationId" validate:"required"`
	UserID       string `json:"userId"       validate:"required"`
}

type acceptInvitationResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
