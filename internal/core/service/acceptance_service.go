package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/rtsdrums-eng/kitchen-app/internal/core/domain"
	"github.com/rtsdrums-eng/kitchen-app/internal/core/ports"
)

const (
	defaultMaxAttempts = 5
	backoffBase        = 25 * time.Millisecond
)

// TerminalCache remembers invitations already observed in a terminal status
// (Redis). A hit lets repeated accepts short-circuit without opening a
// transaction; a miss or cache failure always falls through to the
// authoritative transactional check.
type TerminalCache interface {
	// TerminalStatus returns the cached terminal status, or "" on a miss.
	TerminalStatus(ctx context.Context, invitationID string) (domain.InvitationStatus, error)
	MarkTerminal(ctx context.Context, invitationID string, status domain.InvitationStatus) error
}

// AuditSink receives acceptance events for asynchronous persistence.
type AuditSink interface {
	Enqueue(event domain.AcceptanceEvent)
}

type acceptanceService struct {
	store       ports.AcceptanceStore
	cache       TerminalCache
	audit       AuditSink
	maxAttempts int
	log         zerolog.Logger
	now         func() time.Time
}

// NewAcceptanceService returns an AcceptanceService implementation.
// maxAttempts bounds the transaction-conflict retry budget; values <= 0 fall
// back to the default.
func NewAcceptanceService(
	store ports.AcceptanceStore,
	cache TerminalCache,
	audit AuditSink,
	maxAttempts int,
	log zerolog.Logger,
) ports.AcceptanceService {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	return &acceptanceService{
		store:       store,
		cache:       cache,
		audit:       audit,
		maxAttempts: maxAttempts,
		log:         log,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// AcceptInvitation moves the user into the invitation's target household.
// The invitation read, precondition checks, user upsert, both member-set
// mutations, and the invitation status write all belong to one transaction:
// either all four records reflect the transition or none do.
func (s *acceptanceService) AcceptInvitation(ctx context.Context, in ports.AcceptInvitationInput) (*ports.AcceptInvitationResult, error) {
	// Fast path: invitation already known to be terminal.
	if status, err := s.cache.TerminalStatus(ctx, in.InvitationID); err != nil {
		s.log.Warn().Err(err).Str("invitation_id", in.InvitationID).Msg("terminal cache check failed")
	} else if status != "" {
		return nil, &domain.AlreadyProcessedError{Status: status}
	}

	var result *ports.AcceptInvitationResult
	err := s.withRetry(ctx, func(ctx context.Context) error {
		result = nil
		return s.store.RunTransaction(ctx, func(ctx context.Context, tx ports.Tx) error {
			r, err := s.accept(ctx, tx, in)
			if err != nil {
				return err
			}
			result = r
			return nil
		})
	})
	if err != nil {
		var processed *domain.AlreadyProcessedError
		if errors.As(err, &processed) {
			// Authoritative terminal observation: safe to cache.
			if markErr := s.cache.MarkTerminal(ctx, in.InvitationID, processed.Status); markErr != nil {
				s.log.Warn().Err(markErr).Str("invitation_id", in.InvitationID).Msg("failed to cache terminal status")
			}
		}
		return nil, err
	}

	if err := s.cache.MarkTerminal(ctx, in.InvitationID, domain.InvitationAccepted); err != nil {
		s.log.Warn().Err(err).Str("invitation_id", in.InvitationID).Msg("failed to cache terminal status")
	}

	s.audit.Enqueue(domain.AcceptanceEvent{
		InvitationID:  result.InvitationID,
		UserID:        result.UserID,
		FromHousehold: result.PreviousHouseholdID,
		ToHousehold:   result.HouseholdID,
		AcceptedAt:    s.now(),
	})

	s.log.Info().
		Str("invitation_id", result.InvitationID).
		Str("user_id", result.UserID).
		Str("household_id", result.HouseholdID).
		Bool("user_created", result.UserCreated).
		Msg("invitation accepted")

	return result, nil
}

// accept is the transaction body: read all affected records from the
// snapshot, validate preconditions, and schedule the writes.
func (s *acceptanceService) accept(ctx context.Context, tx ports.Tx, in ports.AcceptInvitationInput) (*ports.AcceptInvitationResult, error) {
	inv, err := tx.GetInvitation(ctx, in.InvitationID)
	if err != nil {
		return nil, err
	}
	if inv.Status != domain.InvitationPending {
		return nil, &domain.AlreadyProcessedError{Status: inv.Status}
	}

	target := inv.HouseholdID
	if _, err := tx.GetHousehold(ctx, target); err != nil {
		return nil, err
	}

	result := &ports.AcceptInvitationResult{
		InvitationID: inv.ID,
		UserID:       in.UserID,
		HouseholdID:  target,
	}

	user, err := tx.GetUser(ctx, in.UserID)
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		// First-ever acceptance: create the user in the target household.
		if err := tx.CreateUser(ctx, &domain.User{
			ID:          in.UserID,
			Email:       inv.InviteeEmail,
			HouseholdID: target,
			CreatedAt:   s.now(),
		}); err != nil {
			return nil, err
		}
		result.UserCreated = true
	case err != nil:
		return nil, err
	default:
		if user.HouseholdID != "" && user.HouseholdID != target {
			if err := tx.RemoveMember(ctx, user.HouseholdID, in.UserID); err != nil {
				return nil, err
			}
			result.PreviousHouseholdID = user.HouseholdID
		}
		if err := tx.SetUserHousehold(ctx, in.UserID, target); err != nil {
			return nil, err
		}
	}

	if err := tx.AddMember(ctx, target, in.UserID); err != nil {
		return nil, err
	}
	if err := tx.MarkAccepted(ctx, inv.ID, in.UserID); err != nil {
		return nil, err
	}
	return result, nil
}

// withRetry runs fn up to maxAttempts times, retrying only on transaction
// conflicts with a doubling wait between attempts. Deterministic failures
// (not found, already processed) return immediately. Exhausting the budget
// surfaces as ErrStorageUnavailable. Cancellation while waiting abandons the
// retry loop only; an in-flight commit still settles per the store's own
// atomicity.
func (s *acceptanceService) withRetry(ctx context.Context, fn func(ctx context.Context) error) error {
	backoff := backoffBase
	var lastErr error
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		lastErr = fn(ctx)
		if lastErr == nil || !errors.Is(lastErr, domain.ErrTxConflict) {
			return lastErr
		}
		if attempt == s.maxAttempts {
			break
		}

		s.log.Debug().Int("attempt", attempt).Dur("backoff", backoff).Msg("transaction conflict, retrying")
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, ctx.Err())
		case <-timer.C:
		}
		backoff *= 2
	}
	return fmt.Errorf("%w: retries exhausted: %v", domain.ErrStorageUnavailable, lastErr)
}
