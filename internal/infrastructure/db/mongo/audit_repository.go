package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/rtsdrums-eng/kitchen-app/internal/core/domain"
	"github.com/rtsdrums-eng/kitchen-app/internal/core/ports"
)

const collectionAcceptanceEvents = "acceptance_events"

// AuditRepository persists acceptance events to the acceptance_events
// audit collection. Writes happen outside the acceptance transaction and
// failures are non-fatal to the acceptance itself.
type AuditRepository struct {
	db *mongo.Database
}

func NewAuditRepository(db *mongo.Database) ports.AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) InsertAcceptance(ctx context.Context, event *domain.AcceptanceEvent) error {
	doc := bson.M{
		"invitation_id": event.InvitationID,
		"user_id":       event.UserID,
		"to_household":  event.ToHousehold,
		"accepted_at":   event.AcceptedAt.UTC(),
		"recorded_at":   time.Now().UTC(),
	}
	if event.FromHousehold != "" {
		doc["from_household"] = event.FromHousehold
	}

	_, err := r.db.Collection(collectionAcceptanceEvents).InsertOne(ctx, doc)
	return err
}
