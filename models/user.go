// models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User types
const (
	UserTypeClient = "client"
	UserTypeVendor = "vendor"
	UserTypeAdmin  = "admin"
)

// Vendor types
const (
	VendorTypeShop       = "shop"
	VendorTypeOffice     = "office"
	VendorTypeFreelancer = "freelancer"
)

// User model
type User struct {
	ID            primitive.ObjectID   `json:"id,omitempty" bson:"_id,omitempty"`
	Phone         string               `json:"phone" bson:"phone"`
	Email         string               `json:"email,omitempty" bson:"email,omitempty"`
	Password      string               `json:"password,omitempty" bson:"password,omitempty"`
	FullName      string               `json:"fullName" bson:"fullName"`
	UserType      string               `json:"userType" bson:"userType"` // "client", "vendor", "admin"
	IsActive      bool                 `json:"isActive" bson:"isActive"`
	PhoneVerified bool                 `json:"phoneVerified,omitempty" bson:"phoneVerified,omitempty"`
	PayoutAddress string               `json:"payoutAddress,omitempty" bson:"payoutAddress,omitempty"`
	ReferralCode  string               `json:"referralCode,omitempty" bson:"referralCode,omitempty"`
	ReferredBy    *primitive.ObjectID  `json:"referredBy,omitempty" bson:"referredBy,omitempty"`
	Referrals     []primitive.ObjectID `json:"referrals,omitempty" bson:"referrals,omitempty"`
	Points        int                  `json:"points" bson:"points"`
	VendorInfo    *VendorInfo          `json:"vendorInfo,omitempty" bson:"vendorInfo,omitempty"`
	OTPInfo       *OTPInfo             `json:"otpInfo,omitempty" bson:"otpInfo,omitempty"`
	FCMToken      string               `json:"fcmToken,omitempty" bson:"fcmToken,omitempty"`
	CreatedAt     time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time            `json:"updatedAt" bson:"updatedAt"`
}

// VendorInfo is the denormalized vendor profile merged onto the user record
// by the approval flow. Name and Location are selected from the registration
// based on VendorType: shops use shopName/shopAddress, offices use
// officeName/officeAddress, freelancers use fullName/serviceArea.
type VendorInfo struct {
	VendorType     string     `json:"vendorType" bson:"vendorType"` // "shop", "office", "freelancer"
	Name           string     `json:"name" bson:"name"`
	Category       string     `json:"category" bson:"category"`
	Location       string     `json:"location" bson:"location"`
	PayoutAddress  string     `json:"payoutAddress,omitempty" bson:"payoutAddress,omitempty"`
	CommissionRate float64    `json:"commissionRate" bson:"commissionRate"` // percent
	IsActive       bool       `json:"isActive" bson:"isActive"`
	BonusRules     []string   `json:"bonusRules,omitempty" bson:"bonusRules,omitempty"`
	ApprovedAt     *time.Time `json:"approvedAt,omitempty" bson:"approvedAt,omitempty"`
}

type OTPInfo struct {
	OTP       string    `json:"otp" bson:"otp"`
	ExpiresAt time.Time `json:"expiresAt" bson:"expiresAt"`
}

// Response model
type Response struct {
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type RequestOTPRequest struct {
	Phone string `json:"phone" validate:"required"`
}

type VerifyOTPRequest struct {
	Phone        string `json:"phone" validate:"required"`
	OTP          string `json:"otp" validate:"required"`
	FullName     string `json:"fullName,omitempty"`
	ReferralCode string `json:"referralCode,omitempty"`
}

type AdminLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RegisterPayoutAddressRequest struct {
	PayoutAddress string `json:"payoutAddress" validate:"required"`
}

type ReferralRequest struct {
	ReferralCode string `json:"referralCode" validate:"required"`
}

type ReferralData struct {
	ReferralCode  string `json:"referralCode"`
	ReferralCount int    `json:"referralCount"`
	Points        int    `json:"points"`
	ReferralLink  string `json:"referralLink"`
	QRCode        string `json:"qrCode,omitempty"`
}
