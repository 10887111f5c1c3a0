package domain

import (
	"errors"
	"testing"
)

func TestInvitationStatus_CanTransitionTo(t *testing.T) {
	cases := []struct {
		from, to InvitationStatus
		want     bool
	}{
		{InvitationPending, InvitationAccepted, true},
		{InvitationPending, InvitationDeclined, true},
		{InvitationPending, InvitationRevoked, true},
		{InvitationAccepted, InvitationDeclined, false},
		{InvitationAccepted, InvitationAccepted, false},
		{InvitationDeclined, InvitationAccepted, false},
		{InvitationRevoked, InvitationAccepted, false},
	}

	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.want {
			t.Errorf("%s -> %s: got %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestInvitationStatus_Terminal(t *testing.T) {
	if InvitationPending.Terminal() {
		t.Errorf("pending should not be terminal")
	}
	for _, s := range []InvitationStatus{InvitationAccepted, InvitationDeclined, InvitationRevoked} {
		if !s.Terminal() {
			t.Errorf("%s should be terminal", s)
		}
	}
}

func TestAlreadyProcessedError_MatchesSentinel(t *testing.T) {
	err := error(&AlreadyProcessedError{Status: InvitationDeclined})

	if !errors.Is(err, ErrAlreadyProcessed) {
		t.Fatalf("expected errors.Is to match ErrAlreadyProcessed")
	}

	var ape *AlreadyProcessedError
	if !errors.As(err, &ape) {
		t.Fatalf("expected errors.As to extract AlreadyProcessedError")
	}
	if ape.Status != InvitationDeclined {
		t.Errorf("expected declined status, got %s", ape.Status)
	}
	if err.Error() != "invitation already declined" {
		t.Errorf("unexpected message: %s", err.Error())
	}
}
