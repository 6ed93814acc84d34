package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taruns1620/connectify_hub_backend/config"
	"github.com/taruns1620/connectify_hub_backend/models"
)

type RateScheduleRepository struct {
	collection *mongo.Collection
}

func NewRateScheduleRepository(db *mongo.Client) *RateScheduleRepository {
	return &RateScheduleRepository{
		collection: config.GetCollection(db, "rate_schedules"),
	}
}

// FindActive returns the active tier schedule, falling back to the built-in
// default when none has been stored yet.
func (r *RateScheduleRepository) FindActive(ctx context.Context) (models.RateSchedule, error) {
	var schedule models.RateSchedule
	err := r.collection.FindOne(ctx, bson.M{"active": true}).Decode(&schedule)
	if err == mongo.ErrNoDocuments {
		return models.DefaultRateSchedule(), nil
	}
	if err != nil {
		return models.RateSchedule{}, err
	}
	return schedule, nil
}

// Replace deactivates the current schedule and inserts a new version.
func (r *RateScheduleRepository) Replace(ctx context.Context, tiers []models.RateTier, noReferrerClientShare float64) (models.RateSchedule, error) {
	current, err := r.FindActive(ctx)
	if err != nil {
		return models.RateSchedule{}, err
	}

	if _, err := r.collection.UpdateMany(ctx, bson.M{"active": true}, bson.M{"$set": bson.M{"active": false}}); err != nil {
		return models.RateSchedule{}, err
	}

	next := models.RateSchedule{
		ID:                    primitive.NewObjectID(),
		Version:               current.Version + 1,
		Tiers:                 tiers,
		NoReferrerClientShare: noReferrerClientShare,
		Active:                true,
		CreatedAt:             time.Now(),
	}
	if _, err := r.collection.InsertOne(ctx, next); err != nil {
		return models.RateSchedule{}, err
	}
	return next, nil
}
