package repositories

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/taruns1620/connectify_hub_backend/utils"
)

func TestMarkRejected(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("pending registration is rejected", func(mt *mtest.T) {
		repo := &RegistrationRepository{collection: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		err := repo.MarkRejected(context.Background(),
			primitive.NewObjectID(), primitive.NewObjectID(), "incomplete details", time.Now())
		if err != nil {
			t.Errorf("MarkRejected() error = %v", err)
		}
	})

	mt.Run("already processed registration is failed-precondition", func(mt *mtest.T) {
		repo := &RegistrationRepository{collection: mt.Coll}
		// The pending filter matches nothing once another admin approved it
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))

		err := repo.MarkRejected(context.Background(),
			primitive.NewObjectID(), primitive.NewObjectID(), "too late", time.Now())
		if err == nil {
			t.Fatal("MarkRejected() should fail when the registration is no longer pending")
		}
		if utils.KindOf(err) != utils.ErrFailedPrecondition {
			t.Errorf("error kind = %v, want failed-precondition", utils.KindOf(err))
		}
	})
}
