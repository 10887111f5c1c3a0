package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rtsdrums-eng/kitchen-app/internal/core/domain"
)

const terminalTTL = 24 * time.Hour

// TerminalCache remembers invitations already observed in a terminal status.
// Keys are written only after an authoritative read or commit, so the cache
// can short-circuit repeated accepts but never fabricate a terminal state.
// Key format: invitation:terminal:<invitation_id>
type TerminalCache struct {
	client *redis.Client
}

// NewTerminalCache creates a TerminalCache wrapping the given Redis client.
func NewTerminalCache(client *redis.Client) *TerminalCache {
	return &TerminalCache{client: client}
}

// TerminalStatus returns the cached terminal status, or "" on a miss.
func (c *TerminalCache) TerminalStatus(ctx context.Context, invitationID string) (domain.InvitationStatus, error) {
	val, err := c.client.Get(ctx, c.key(invitationID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("terminal cache get: %w", err)
	}
	return domain.InvitationStatus(val), nil
}

// MarkTerminal records the invitation's terminal status (expires after terminalTTL).
func (c *TerminalCache) MarkTerminal(ctx context.Context, invitationID string, status domain.InvitationStatus) error {
	return c.client.Set(ctx, c.key(invitationID), string(status), terminalTTL).Err()
}

func (c *TerminalCache) key(invitationID string) string {
	return "invitation:terminal:" + invitationID
}
