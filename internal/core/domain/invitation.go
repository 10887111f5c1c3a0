package domain

import (
	"errors"
	"fmt"
	"time"
)

// InvitationStatus represents the lifecycle state of a household invitation.
type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationDeclined InvitationStatus = "declined"
	InvitationRevoked  InvitationStatus = "revoked"
)

// validTransitions defines the allowed state machine transitions.
// Every non-pending status is terminal.
var validTransitions = map[InvitationStatus][]InvitationStatus{
	InvitationPending: {InvitationAccepted, InvitationDeclined, InvitationRevoked},
}

var ErrInvitationNotFound = errors.New("invitation not found")
var ErrHouseholdNotFound = errors.New("household not found")
var ErrTxConflict = errors.New("transaction conflict")
var ErrStorageUnavailable = errors.New("storage unavailable")

// ErrAlreadyProcessed matches any *AlreadyProcessedError via errors.Is.
var ErrAlreadyProcessed = errors.New("invitation already processed")

// AlreadyProcessedError reports that an invitation has already reached a
// terminal status. It carries the status observed inside the transaction, so
// callers racing on the same invitation can see which outcome won.
type AlreadyProcessedError struct {
	Status InvitationStatus
}

func (e *AlreadyProcessedError) Error() string {
	return fmt.Sprintf("invitation already %s", e.Status)
}

func (e *AlreadyProcessedError) Is(target error) bool {
	return target == ErrAlreadyProcessed
}

// CanTransitionTo reports whether a transition from current status to next is valid.
func (s InvitationStatus) CanTransitionTo(next InvitationStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether the status rejects all further transitions.
func (s InvitationStatus) Terminal() bool {
	return s != InvitationPending
}

// Invitation is an offer for a user to join a specific household. It is
// mutated exactly once, by the acceptance flow; once terminal it is immutable.
type Invitation struct {
	ID           string           `json:"id" bson:"_id"`
	InviteeEmail string           `json:"invitee_email" bson:"invitee_email"`
	HouseholdID  string           `json:"household_id" bson:"household_id"`
	Status       InvitationStatus `json:"status" bson:"status"`
	InviteeID    string           `json:"invitee_id,omitempty" bson:"invitee_id,omitempty"`
	CreatedAt    time.Time        `json:"created_at" bson:"created_at"`
	AcceptedAt   *time.Time       `json:"accepted_at,omitempty" bson:"accepted_at,omitempty"`
}

// AcceptanceEvent records a committed invitation acceptance for the audit trail.
type AcceptanceEvent struct {
	InvitationID  string
	UserID        string
	FromHousehold string // empty when the user had no previous household
	ToHousehold   string
	AcceptedAt    time.Time
}
