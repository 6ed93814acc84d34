package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Registration statuses
const (
	RegistrationStatusPending  = "pending"
	RegistrationStatusApproved = "approved"
	RegistrationStatusRejected = "rejected"
)

// VendorRegistration is a vendor onboarding request awaiting admin approval.
// The per-type name/location fields mirror what the signup form collects:
// only the fields matching VendorType are expected to be set.
type VendorRegistration struct {
	ID         primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID     primitive.ObjectID `json:"userId" bson:"userId"`
	VendorType string             `json:"vendorType" bson:"vendorType"` // "shop", "office", "freelancer"
	Category   string             `json:"category" bson:"category"`
	Phone      string             `json:"phone" bson:"phone"`

	// Shop variant
	ShopName    string `json:"shopName,omitempty" bson:"shopName,omitempty"`
	ShopAddress string `json:"shopAddress,omitempty" bson:"shopAddress,omitempty"`

	// Office variant
	OfficeName    string `json:"officeName,omitempty" bson:"officeName,omitempty"`
	OfficeAddress string `json:"officeAddress,omitempty" bson:"officeAddress,omitempty"`

	// Freelancer variant
	FullName    string `json:"fullName,omitempty" bson:"fullName,omitempty"`
	ServiceArea string `json:"serviceArea,omitempty" bson:"serviceArea,omitempty"`

	PayoutAddress string `json:"payoutAddress,omitempty" bson:"payoutAddress,omitempty"`

	Status                string              `json:"status" bson:"status"` // "pending", "approved", "rejected"
	CommissionRatePercent float64             `json:"commissionRatePercent,omitempty" bson:"commissionRatePercent,omitempty"`
	BonusRules            []string            `json:"bonusRules,omitempty" bson:"bonusRules,omitempty"`
	AdminID               *primitive.ObjectID `json:"adminId,omitempty" bson:"adminId,omitempty"`
	RejectionReason       string              `json:"rejectionReason,omitempty" bson:"rejectionReason,omitempty"`
	CreatedAt             time.Time           `json:"createdAt" bson:"createdAt"`
	ProcessedAt           *time.Time          `json:"processedAt,omitempty" bson:"processedAt,omitempty"`
}

// ApproveVendorRequest is the admin payload for approving a registration.
type ApproveVendorRequest struct {
	CommissionRatePercent float64  `json:"commissionRatePercent" validate:"gte=0,lte=100"`
	BonusRules            []string `json:"bonusRules,omitempty"`
}

// RejectVendorRequest is the admin payload for rejecting a registration.
type RejectVendorRequest struct {
	Reason string `json:"reason"`
}

// VendorRegistrationRequest is the vendor-submitted onboarding payload.
type VendorRegistrationRequest struct {
	VendorType    string `json:"vendorType" validate:"required,oneof=shop office freelancer"`
	Category      string `json:"category" validate:"required"`
	Phone         string `json:"phone" validate:"required"`
	ShopName      string `json:"shopName,omitempty"`
	ShopAddress   string `json:"shopAddress,omitempty"`
	OfficeName    string `json:"officeName,omitempty"`
	OfficeAddress string `json:"officeAddress,omitempty"`
	FullName      string `json:"fullName,omitempty"`
	ServiceArea   string `json:"serviceArea,omitempty"`
	PayoutAddress string `json:"payoutAddress,omitempty"`
}
