package websocket

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestRemoveClient(t *testing.T) {
	userID := primitive.NewObjectID()

	t.Run("departing client is evicted", func(t *testing.T) {
		h := NewHub()
		client := &Client{UserID: userID}
		h.clients[userID] = client

		h.removeClient(client)

		if _, ok := h.clients[userID]; ok {
			t.Error("client still registered after removal")
		}
	})

	t.Run("stale connection does not evict a reconnect", func(t *testing.T) {
		h := NewHub()
		oldConn := &Client{UserID: userID}
		newConn := &Client{UserID: userID}
		h.clients[userID] = newConn

		// The old connection's teardown races the reconnect
		h.removeClient(oldConn)

		if h.clients[userID] != newConn {
			t.Error("reconnected client was evicted by the stale connection's teardown")
		}
	})

	t.Run("unknown client is a no-op", func(t *testing.T) {
		h := NewHub()
		h.removeClient(&Client{UserID: primitive.NewObjectID()})
		if len(h.clients) != 0 {
			t.Errorf("clients map has %d entries, want 0", len(h.clients))
		}
	})
}
