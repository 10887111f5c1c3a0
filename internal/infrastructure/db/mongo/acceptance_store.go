package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readconcern"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"

	"github.com/rtsdrums-eng/kitchen-app/internal/core/domain"
	"github.com/rtsdrums-eng/kitchen-app/internal/core/ports"
)

const (
	collectionInvitations = "invitations"
	collectionUsers       = "users"
	collectionHouseholds  = "households"
)

// AcceptanceStore implements ports.AcceptanceStore on MongoDB multi-document
// transactions (requires a replica set).
type AcceptanceStore struct {
	client *mongo.Client
	db     *mongo.Database
}

func NewAcceptanceStore(client *mongo.Client, db *mongo.Database) *AcceptanceStore {
	return &AcceptanceStore{client: client, db: db}
}

// RunTransaction executes fn inside a session-scoped transaction with
// snapshot reads and majority writes. Transient transaction errors are mapped
// to domain.ErrTxConflict so the coordinator's retry budget applies.
func (s *AcceptanceStore) RunTransaction(ctx context.Context, fn func(ctx context.Context, tx ports.Tx) error) error {
	session, err := s.client.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	txOpts := options.Transaction().
		SetReadConcern(readconcern.Snapshot()).
		SetWriteConcern(writeconcern.Majority())

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc, &storeTx{db: s.db})
	}, txOpts)
	if err != nil {
		return mapTxError(err)
	}
	return nil
}

// mapTxError translates driver conflict labels into the domain sentinel.
// Deterministic domain errors raised inside fn pass through unchanged.
func mapTxError(err error) error {
	var se mongo.ServerError
	if errors.As(err, &se) &&
		(se.HasErrorLabel("TransientTransactionError") || se.HasErrorLabel("UnknownTransactionCommitResult")) {
		return fmt.Errorf("%w: %v", domain.ErrTxConflict, err)
	}
	return err
}

// storeTx implements ports.Tx. The context passed to each method is the
// session context handed to the transaction callback; all operations run
// inside that transaction.
type storeTx struct {
	db *mongo.Database
}

func (t *storeTx) GetInvitation(ctx context.Context, id string) (*domain.Invitation, error) {
	var inv domain.Invitation
	err := t.db.Collection(collectionInvitations).FindOne(ctx, bson.M{"_id": id}).Decode(&inv)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrInvitationNotFound
		}
		return nil, fmt.Errorf("find invitation: %w", err)
	}
	return &inv, nil
}

func (t *storeTx) GetUser(ctx context.Context, id string) (*domain.User, error) {
	var u domain.User
	err := t.db.Collection(collectionUsers).FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &u, nil
}

func (t *storeTx) GetHousehold(ctx context.Context, id string) (*domain.Household, error) {
	var h domain.Household
	err := t.db.Collection(collectionHouseholds).FindOne(ctx, bson.M{"_id": id}).Decode(&h)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrHouseholdNotFound
		}
		return nil, fmt.Errorf("find household: %w", err)
	}
	return &h, nil
}

func (t *storeTx) CreateUser(ctx context.Context, user *domain.User) error {
	_, err := t.db.Collection(collectionUsers).InsertOne(ctx, user)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (t *storeTx) SetUserHousehold(ctx context.Context, userID, householdID string) error {
	_, err := t.db.Collection(collectionUsers).UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$set": bson.M{"household_id": householdID}},
	)
	if err != nil {
		return fmt.Errorf("set user household: %w", err)
	}
	return nil
}

func (t *storeTx) AddMember(ctx context.Context, householdID, userID string) error {
	_, err := t.db.Collection(collectionHouseholds).UpdateOne(ctx,
		bson.M{"_id": householdID},
		bson.M{"$addToSet": bson.M{"members": userID}},
	)
	if err != nil {
		return fmt.Errorf("add member: %w", err)
	}
	return nil
}

func (t *storeTx) RemoveMember(ctx context.Context, householdID, userID string) error {
	_, err := t.db.Collection(collectionHouseholds).UpdateOne(ctx,
		bson.M{"_id": householdID},
		bson.M{"$pull": bson.M{"members": userID}},
	)
	if err != nil {
		return fmt.Errorf("remove member: %w", err)
	}
	return nil
}

// MarkAccepted guards on status=pending in the filter; the snapshot read
// already verified it, so a zero match means another writer got there first.
// accepted_at is assigned by the server via $currentDate.
func (t *storeTx) MarkAccepted(ctx context.Context, invitationID, userID string) error {
	res, err := t.db.Collection(collectionInvitations).UpdateOne(ctx,
		bson.M{"_id": invitationID, "status": domain.InvitationPending},
		bson.M{
			"$set":         bson.M{"status": domain.InvitationAccepted, "invitee_id": userID},
			"$currentDate": bson.M{"accepted_at": true},
		},
	)
	if err != nil {
		return fmt.Errorf("mark accepted: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrTxConflict
	}
	return nil
}

// EnsureIndexes creates the secondary indexes used by invitation lookups.
func (s *AcceptanceStore) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := s.db.Collection(collectionInvitations).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "invitee_email", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	})
	if err != nil {
		return err
	}

	_, err = s.db.Collection(collectionUsers).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}},
	})
	return err
}
