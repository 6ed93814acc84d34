package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification model
type Notification struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID    primitive.ObjectID `json:"userId" bson:"userId"`
	Title     string             `json:"title" bson:"title"`
	Message   string             `json:"message" bson:"message"`
	Type      string             `json:"type" bson:"type"` // e.g. "cash_verification", "referral", "payout"
	Data      interface{}        `json:"data,omitempty" bson:"data"`
	IsRead    bool               `json:"isRead" bson:"isRead"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

// SMSLog records every outbound SMS attempt. Delivery failures are logged
// here and never fail the business operation that triggered them.
type SMSLog struct {
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Destination  string             `json:"destination" bson:"destination"`
	Message      string             `json:"message" bson:"message"`
	TriggerEvent string             `json:"triggerEvent" bson:"triggerEvent"` // e.g. "otp", "cash_verification", "referral"
	RelatedID    string             `json:"relatedId,omitempty" bson:"relatedId,omitempty"`
	Sent         bool               `json:"sent" bson:"sent"`
	Error        string             `json:"error,omitempty" bson:"error,omitempty"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
}
