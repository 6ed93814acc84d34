package repositories

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/taruns1620/connectify_hub_backend/models"
)

func TestCommissionInsert(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("success returns the new id", func(mt *mtest.T) {
		repo := &CommissionRepository{collection: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		id, err := repo.Insert(context.Background(), models.Commission{
			BillAmount:   25000,
			GatewayTxnID: "txn-1",
		})
		if err != nil {
			t.Fatalf("Insert() error = %v", err)
		}
		if id.IsZero() {
			t.Error("Insert() returned a zero id")
		}
	})

	mt.Run("replayed gateway transaction hits the unique index", func(mt *mtest.T) {
		repo := &CommissionRepository{collection: mt.Coll}
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: connectify.commissions index: gatewayTxnId_1",
		}))

		_, err := repo.Insert(context.Background(), models.Commission{
			BillAmount:   25000,
			GatewayTxnID: "txn-1",
		})
		if !errors.Is(err, ErrDuplicateGatewayTxn) {
			t.Errorf("Insert() error = %v, want ErrDuplicateGatewayTxn", err)
		}
	})
}
