package services

import (
	"math"

	"github.com/taruns1620/connectify_hub_backend/models"
	"github.com/taruns1620/connectify_hub_backend/utils"
)

// SplitResult holds the computed commission splits for one settled
// transaction. All monetary fields are rounded to 2 decimal places and
// ReferrerPayout + ClientCashback + HubShare always equals
// BaseCommissionAmount exactly.
type SplitResult struct {
	BaseCommissionAmount float64
	ReferrerPayout       float64
	ClientCashback       float64
	HubShare             float64
	VendorPayout         float64
}

// ValidateSplitInputs rejects inputs the calculator itself does not guard
// against. Callers must run this before ComputeCommissionSplit.
func ValidateSplitInputs(billAmount, ratePercent float64) error {
	if billAmount <= 0 || math.IsNaN(billAmount) || math.IsInf(billAmount, 0) {
		return utils.AppErrorf(utils.ErrInvalidArgument, "bill amount must be a positive number, got %v", billAmount)
	}
	if ratePercent < 0 || math.IsNaN(ratePercent) || math.IsInf(ratePercent, 0) {
		return utils.AppErrorf(utils.ErrInvalidArgument, "commission rate must be zero or positive, got %v", ratePercent)
	}
	return nil
}

// ComputeCommissionSplit splits a bill amount into referrer, client, hub and
// vendor shares using the given rate schedule. The tier whose MaxBillAmount
// is >= billAmount applies; boundary amounts belong to the lower tier. The
// rounding residual between the rounded base commission and the three
// rounded splits is folded into the hub share.
func ComputeCommissionSplit(schedule models.RateSchedule, billAmount, ratePercent float64, hasReferrer bool) SplitResult {
	baseCommission := billAmount * ratePercent / 100

	tier := selectTier(schedule.Tiers, billAmount)

	var referrerShare, clientShare float64
	if hasReferrer {
		referrerShare = tier.ReferrerShare
		clientShare = tier.ClientShare
	} else {
		referrerShare = 0
		clientShare = schedule.NoReferrerClientShare
	}

	referrerPayout := baseCommission * referrerShare
	clientCashback := baseCommission * clientShare
	hubShare := baseCommission - referrerPayout - clientCashback

	base := round2(baseCommission)
	referrer := round2(referrerPayout)
	client := round2(clientCashback)
	hub := round2(hubShare)

	// Fold the rounding residual into the hub share so the three splits
	// sum exactly to the rounded base commission.
	residual := base - (referrer + client + hub)
	hub = round2(hub + residual)

	return SplitResult{
		BaseCommissionAmount: base,
		ReferrerPayout:       referrer,
		ClientCashback:       client,
		HubShare:             hub,
		VendorPayout:         round2(billAmount - baseCommission),
	}
}

// selectTier returns the first tier whose MaxBillAmount covers the bill.
// A tier with MaxBillAmount == 0 is open-ended and catches everything.
func selectTier(tiers []models.RateTier, billAmount float64) models.RateTier {
	for _, t := range tiers {
		if t.MaxBillAmount == 0 || billAmount <= t.MaxBillAmount {
			return t
		}
	}
	// Schedules always end with an open-ended tier; an empty schedule
	// yields a zero tier (all shares to the hub).
	return models.RateTier{}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
