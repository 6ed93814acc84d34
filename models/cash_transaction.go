package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Cash transaction statuses
const (
	CashTxnStatusPending  = "pending"
	CashTxnStatusApproved = "approved"
	CashTxnStatusRejected = "rejected"
)

// CashTransaction is a QR check-in cash payment awaiting client verification
// and admin settlement. ClientVerified stays nil until the client responds;
// an explicit false means the client denied the charge.
type CashTransaction struct {
	ID             primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	VendorID       primitive.ObjectID  `json:"vendorId" bson:"vendorId"`
	ClientID       primitive.ObjectID  `json:"clientId" bson:"clientId"`
	BillAmount     float64             `json:"billAmount" bson:"billAmount"`
	Status         string              `json:"status" bson:"status"` // "pending", "approved", "rejected"
	ClientVerified *bool               `json:"clientVerified,omitempty" bson:"clientVerified,omitempty"`
	ClientRespAt   *time.Time          `json:"clientRespondedAt,omitempty" bson:"clientRespondedAt,omitempty"`
	CommissionID   *primitive.ObjectID `json:"commissionId,omitempty" bson:"commissionId,omitempty"`
	RejectReason   string              `json:"rejectReason,omitempty" bson:"rejectReason,omitempty"`
	AdminID        *primitive.ObjectID `json:"adminId,omitempty" bson:"adminId,omitempty"`
	CreatedAt      time.Time           `json:"createdAt" bson:"createdAt"`
	VerifiedAt     *time.Time          `json:"verifiedAt,omitempty" bson:"verifiedAt,omitempty"`
}

// CheckinRequest is the client payload after scanning a vendor QR code.
type CheckinRequest struct {
	VendorCode string  `json:"vendorCode" validate:"required"`
	BillAmount float64 `json:"billAmount" validate:"required,gt=0"`
}

// CashResponseRequest records the client's confirm/deny of a cash charge.
type CashResponseRequest struct {
	Confirmed bool `json:"confirmed"`
}

// VerifyCashResult is returned by the admin cash verification flow.
type VerifyCashResult struct {
	Status             string `json:"status"` // "approved" or "rejected"
	CommissionCreated  bool   `json:"commissionCreated"`
	CommissionID       string `json:"commissionId,omitempty"`
	ClientPayoutStatus string `json:"clientPayoutStatus,omitempty"`
	Reason             string `json:"reason,omitempty"`
}
