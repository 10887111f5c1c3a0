package ports

import (
	"context"

	"github.com/rtsdrums-eng/kitchen-app/internal/core/domain"
)

// Tx exposes the reads and writes available inside a single storage
// transaction. All reads observe one consistent snapshot; all writes become
// visible atomically when the transaction commits, or not at all.
type Tx interface {
	GetInvitation(ctx context.Context, id string) (*domain.Invitation, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
	GetHousehold(ctx context.Context, id string) (*domain.Household, error)

	// CreateUser inserts a new user record.
	CreateUser(ctx context.Context, user *domain.User) error

	// SetUserHousehold repoints the user's household_id field.
	SetUserHousehold(ctx context.Context, userID, householdID string) error

	// AddMember adds userID to the household's member set. Idempotent:
	// adding a present member is a no-op and never duplicates.
	AddMember(ctx context.Context, householdID, userID string) error

	// RemoveMember removes userID from the household's member set.
	// Idempotent: removing an absent member is a no-op, never an error.
	RemoveMember(ctx context.Context, householdID, userID string) error

	// MarkAccepted transitions the invitation to accepted, records the
	// invitee and stamps accepted_at with a store-assigned timestamp.
	MarkAccepted(ctx context.Context, invitationID, userID string) error
}

// AcceptanceStore is the transactional storage port used by the acceptance
// coordinator. A commit rejected because a concurrent writer invalidated the
// read snapshot surfaces as domain.ErrTxConflict; the coordinator owns the
// retry budget.
type AcceptanceStore interface {
	RunTransaction(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}
