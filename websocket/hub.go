package websocket

import (
	"fmt"
	"sync"

	"github.com/gorilla/websocket"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Define notification types
const (
	NotificationTypeRegistrationPending = "registration_pending"
	NotificationTypeCashVerification    = "cash_verification_pending"
	NotificationTypeCommissionCreated   = "commission_created"
)

// Notification represents a message sent over WebSocket
type Notification struct {
	Type         string      `json:"type"`
	Message      string      `json:"message"`
	Data         interface{} `json:"data,omitempty"`
	UserID       string      `json:"userID,omitempty"`
	RequiresAuth bool        `json:"requiresAuth,omitempty"`
}

// Client represents a connected WebSocket client
type Client struct {
	UserID        primitive.ObjectID
	IsAdmin       bool
	Conn          *websocket.Conn
	Authenticated bool
}

// Hub maintains the set of active clients and broadcasts messages
type Hub struct {
	clients    map[primitive.ObjectID]*Client
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[primitive.ObjectID]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run starts the hub's event loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if client.UserID != primitive.NilObjectID {
				h.clients[client.UserID] = client
			}
			h.mu.Unlock()
		case client := <-h.unregister:
			h.removeClient(client)
		}
	}
}

// removeClient evicts a departing client. The map entry is only removed
// when it still points at this client: after a quick reconnect the entry
// belongs to the new connection and must survive the old one's teardown.
func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	if current, ok := h.clients[client.UserID]; ok && current == client {
		delete(h.clients, client.UserID)
	}
	h.mu.Unlock()

	if client.Conn != nil {
		client.Conn.Close()
	}
}

// SendToUser sends a message to a specific user
func (h *Hub) SendToUser(userID primitive.ObjectID, notification Notification) error {
	h.mu.RLock()
	client, ok := h.clients[userID]
	h.mu.RUnlock()

	if !ok {
		return fmt.Errorf("user not connected")
	}

	return client.Conn.WriteJSON(notification)
}

// BroadcastToAdmins pushes an event to every connected admin dashboard.
func (h *Hub) BroadcastToAdmins(notification Notification) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.clients {
		if client.IsAdmin {
			client.Conn.WriteJSON(notification)
		}
	}
}

// NotifyRegistrationPending tells admin dashboards a new vendor
// registration is awaiting review.
func (h *Hub) NotifyRegistrationPending(registrationData interface{}) {
	h.BroadcastToAdmins(Notification{
		Type:    NotificationTypeRegistrationPending,
		Message: "New vendor registration awaiting review",
		Data:    registrationData,
	})
}

// NotifyCashVerificationPending tells admin dashboards a cash transaction
// is ready for settlement.
func (h *Hub) NotifyCashVerificationPending(txnData interface{}) {
	h.BroadcastToAdmins(Notification{
		Type:    NotificationTypeCashVerification,
		Message: "Cash transaction awaiting verification",
		Data:    txnData,
	})
}
