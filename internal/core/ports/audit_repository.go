package ports

import (
	"context"

	"github.com/rtsdrums-eng/kitchen-app/internal/core/domain"
)

// AuditRepository persists acceptance events to the append-only audit trail.
type AuditRepository interface {
	InsertAcceptance(ctx context.Context, event *domain.AcceptanceEvent) error
}
