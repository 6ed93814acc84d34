package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/taruns1620/connectify_hub_backend/config"
	"github.com/taruns1620/connectify_hub_backend/models"
)

type CommissionRepository struct {
	collection *mongo.Collection
}

func NewCommissionRepository(db *mongo.Client) *CommissionRepository {
	return &CommissionRepository{
		collection: config.GetCollection(db, "commissions"),
	}
}

// ErrDuplicateGatewayTxn reports that a commission for the same gateway
// transaction already exists, enforced by the unique gatewayTxnId index.
var ErrDuplicateGatewayTxn = errors.New("commission already recorded for this gateway transaction")

// Insert creates a new commission record and returns its id.
func (r *CommissionRepository) Insert(ctx context.Context, commission models.Commission) (primitive.ObjectID, error) {
	if commission.ID.IsZero() {
		commission.ID = primitive.NewObjectID()
	}
	_, err := r.collection.InsertOne(ctx, commission)
	if mongo.IsDuplicateKeyError(err) {
		return primitive.NilObjectID, ErrDuplicateGatewayTxn
	}
	return commission.ID, err
}

// FindByID fetches one commission record.
func (r *CommissionRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Commission, error) {
	var commission models.Commission
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&commission)
	if err != nil {
		return nil, err
	}
	return &commission, nil
}

// List returns commission records, newest first.
func (r *CommissionRepository) List(ctx context.Context, limit int64) ([]models.Commission, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(limit)
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var commissions []models.Commission
	if err := cursor.All(ctx, &commissions); err != nil {
		return nil, err
	}
	return commissions, nil
}

// FindExpiredPending returns commissions holding at least one payout leg
// still pending a payment address whose window has lapsed.
func (r *CommissionRepository) FindExpiredPending(ctx context.Context, now time.Time) ([]models.Commission, error) {
	filter := bson.M{
		"payoutExpiresAt": bson.M{"$lt": now},
		"$or": []bson.M{
			{"clientPayoutStatus": models.PayoutStatusPendingAddress},
			{"referrerPayoutStatus": models.PayoutStatusPendingAddress},
		},
	}
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var commissions []models.Commission
	if err := cursor.All(ctx, &commissions); err != nil {
		return nil, err
	}
	return commissions, nil
}

// ReleasePendingLegsForUser flips every unexpired pending payout leg owned
// by the user to processing, called when the user registers a payout
// address. Returns the number of records touched.
func (r *CommissionRepository) ReleasePendingLegsForUser(ctx context.Context, userID primitive.ObjectID, now time.Time) (int64, error) {
	clientRes, err := r.collection.UpdateMany(ctx,
		bson.M{
			"clientId":           userID,
			"clientPayoutStatus": models.PayoutStatusPendingAddress,
			"payoutExpiresAt":    bson.M{"$gt": now},
		},
		bson.M{"$set": bson.M{"clientPayoutStatus": models.PayoutStatusProcessing}},
	)
	if err != nil {
		return 0, err
	}

	referrerRes, err := r.collection.UpdateMany(ctx,
		bson.M{
			"referrerId":           userID,
			"referrerPayoutStatus": models.PayoutStatusPendingAddress,
			"payoutExpiresAt":      bson.M{"$gt": now},
		},
		bson.M{"$set": bson.M{"referrerPayoutStatus": models.PayoutStatusProcessing}},
	)
	if err != nil {
		return clientRes.ModifiedCount, err
	}

	return clientRes.ModifiedCount + referrerRes.ModifiedCount, nil
}
