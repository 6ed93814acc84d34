package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RateTier defines the referrer/client split shares for bill amounts up to
// MaxBillAmount inclusive. A zero MaxBillAmount means no upper bound and the
// tier catches everything above the previous one.
type RateTier struct {
	MaxBillAmount float64 `json:"maxBillAmount" bson:"maxBillAmount"`
	ReferrerShare float64 `json:"referrerShare" bson:"referrerShare"` // fraction of base commission
	ClientShare   float64 `json:"clientShare" bson:"clientShare"`     // fraction of base commission
}

// RateSchedule is a versioned, injectable tier table for the commission
// split calculator. Tiers must be ordered by ascending MaxBillAmount with
// the open-ended tier last.
type RateSchedule struct {
	ID                    primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Version               int                `json:"version" bson:"version"`
	Tiers                 []RateTier         `json:"tiers" bson:"tiers"`
	NoReferrerClientShare float64            `json:"noReferrerClientShare" bson:"noReferrerClientShare"`
	Active                bool               `json:"active" bson:"active"`
	CreatedAt             time.Time          `json:"createdAt" bson:"createdAt"`
}

// UpdateRateScheduleRequest replaces the active tier table with a new version.
type UpdateRateScheduleRequest struct {
	Tiers                 []RateTier `json:"tiers" validate:"required,min=1,dive"`
	NoReferrerClientShare float64    `json:"noReferrerClientShare" validate:"gte=0,lte=1"`
}

// UpdateVendorRateRequest changes a vendor's commission rate.
type UpdateVendorRateRequest struct {
	CommissionRatePercent float64 `json:"commissionRatePercent" validate:"gte=0,lte=100"`
}

// DefaultRateSchedule returns the built-in tier table: referrer share 50%,
// 40%, 30% as the bill tier rises, client cashback 10% of base with a
// referrer and 20% without. Boundary amounts belong to the lower tier.
func DefaultRateSchedule() RateSchedule {
	return RateSchedule{
		Version: 1,
		Tiers: []RateTier{
			{MaxBillAmount: 30000, ReferrerShare: 0.50, ClientShare: 0.10},
			{MaxBillAmount: 60000, ReferrerShare: 0.40, ClientShare: 0.10},
			{MaxBillAmount: 0, ReferrerShare: 0.30, ClientShare: 0.10},
		},
		NoReferrerClientShare: 0.20,
		Active:                true,
		CreatedAt:             time.Now(),
	}
}
