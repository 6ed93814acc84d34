package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment types
const (
	PaymentTypeOnline = "online"
	PaymentTypeCash   = "cash"
)

// Per-party payout statuses
const (
	PayoutStatusProcessing     = "processing"
	PayoutStatusPendingAddress = "pending_payment_address"
	PayoutStatusForfeited      = "forfeited"
	PayoutStatusPaid           = "paid"
	PayoutStatusNone           = "" // no payout leg for this party
)

// Commission represents one settled transaction and its splits.
// Invariant after rounding correction:
//
//	BaseCommissionAmount == ReferrerPayout + ClientCashback + HubShare
//	VendorPayout == BillAmount - BaseCommissionAmount
//
// Payout-status fields are mutated later by payout marking and the expiry
// sweep; commission records are never deleted.
type Commission struct {
	ID       primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	VendorID primitive.ObjectID  `bson:"vendorId" json:"vendorId"`
	ClientID primitive.ObjectID  `bson:"clientId" json:"clientId"`
	RefID    *primitive.ObjectID `bson:"referrerId,omitempty" json:"referrerId,omitempty"`

	BillAmount            float64 `bson:"billAmount" json:"billAmount"`
	CommissionRatePercent float64 `bson:"commissionRatePercent" json:"commissionRatePercent"`
	BaseCommissionAmount  float64 `bson:"baseCommissionAmount" json:"baseCommissionAmount"`
	ReferrerPayout        float64 `bson:"referrerPayout" json:"referrerPayout"`
	ClientCashback        float64 `bson:"clientCashback" json:"clientCashback"`
	HubShare              float64 `bson:"hubShare" json:"hubShare"`
	VendorPayout          float64 `bson:"vendorPayout" json:"vendorPayout"`

	PaymentType string `bson:"paymentType" json:"paymentType"` // "online" or "cash"
	Status      string `bson:"status" json:"status"`           // "settled"

	ClientPayoutStatus   string     `bson:"clientPayoutStatus" json:"clientPayoutStatus"`
	ReferrerPayoutStatus string     `bson:"referrerPayoutStatus,omitempty" json:"referrerPayoutStatus,omitempty"`
	PayoutExpiresAt      *time.Time `bson:"payoutExpiresAt,omitempty" json:"payoutExpiresAt,omitempty"`

	ClientPaidAt   *time.Time `bson:"clientPaidAt,omitempty" json:"clientPaidAt,omitempty"`
	ReferrerPaidAt *time.Time `bson:"referrerPaidAt,omitempty" json:"referrerPaidAt,omitempty"`
	VendorPaid     bool       `bson:"vendorPaid" json:"vendorPaid"`
	VendorPaidAt   *time.Time `bson:"vendorPaidAt,omitempty" json:"vendorPaidAt,omitempty"`

	GatewayTxnID string    `bson:"gatewayTxnId,omitempty" json:"gatewayTxnId,omitempty"`
	CashTxnID    string    `bson:"cashTxnId,omitempty" json:"cashTxnId,omitempty"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
}

// CommissionStatusSettled is the only overall status a commission record is
// created with; per-party payout statuses carry the lifecycle after that.
const CommissionStatusSettled = "settled"
