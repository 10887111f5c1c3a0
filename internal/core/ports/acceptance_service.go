package ports

import "context"

// AcceptInvitationInput carries the identifiers of an acceptance request.
type AcceptInvitationInput struct {
	InvitationID string
	UserID       string
}

// AcceptInvitationResult describes a committed acceptance.
type AcceptInvitationResult struct {
	InvitationID string
	UserID       string
	HouseholdID  string
	// PreviousHouseholdID is the household the user left; empty when the
	// user had none.
	PreviousHouseholdID string
	// UserCreated is true when this acceptance created the user record.
	UserCreated bool
}

// AcceptanceService executes the invitation-acceptance protocol: the full
// cross-entity transition of invitation, user, source household, and target
// household as one atomic unit.
type AcceptanceService interface {
	AcceptInvitation(ctx context.Context, input AcceptInvitationInput) (*AcceptInvitationResult, error)
}
