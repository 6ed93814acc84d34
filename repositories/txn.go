package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
)

// WithTransaction runs fn inside a MongoDB session transaction: all reads
// and writes issued through the session context commit atomically or not at
// all. Concurrent writers to the same documents are serialized by the
// store's transaction retry machinery, so flows that re-check a pending
// status inside fn fail cleanly instead of double-applying.
func WithTransaction(ctx context.Context, client *mongo.Client, fn func(sc mongo.SessionContext) (interface{}, error)) (interface{}, error) {
	session, err := client.StartSession()
	if err != nil {
		return nil, err
	}
	defer session.EndSession(ctx)

	return session.WithTransaction(ctx, fn)
}
