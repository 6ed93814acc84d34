package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taruns1620/connectify_hub_backend/config"
	"github.com/taruns1620/connectify_hub_backend/models"
	"github.com/taruns1620/connectify_hub_backend/utils"
)

type RegistrationRepository struct {
	collection *mongo.Collection
}

func NewRegistrationRepository(db *mongo.Client) *RegistrationRepository {
	return &RegistrationRepository{
		collection: config.GetCollection(db, "vendor_registrations"),
	}
}

// FindByID fetches one vendor registration.
func (r *RegistrationRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.VendorRegistration, error) {
	var reg models.VendorRegistration
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&reg)
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

// MarkRejected flips a registration from pending to rejected. The pending
// state is part of the update filter, so a registration approved by a
// concurrent admin is left untouched and the caller gets failed-precondition
// instead of a silent overwrite.
func (r *RegistrationRepository) MarkRejected(ctx context.Context, id, adminID primitive.ObjectID, reason string, now time.Time) error {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "status": models.RegistrationStatusPending},
		bson.M{"$set": bson.M{
			"status":          models.RegistrationStatusRejected,
			"rejectionReason": reason,
			"adminId":         adminID,
			"processedAt":     now,
		}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return utils.NewAppError(utils.ErrFailedPrecondition, "vendor registration is no longer pending")
	}
	return nil
}
