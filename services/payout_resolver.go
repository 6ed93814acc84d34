package services

import (
	"time"

	"github.com/taruns1620/connectify_hub_backend/models"
)

// PayoutAddressWindow is how long a payee has to register a payout address
// before a pending cashback/referral payout is forfeited to the hub share.
const PayoutAddressWindow = 2 * time.Hour

// PartyPayout describes one payee leg of a commission for status resolution.
type PartyPayout struct {
	Amount           float64
	HasPayoutAddress bool
}

// PayoutResolution is the per-party payout status assignment plus the shared
// expiry instant, set only when at least one party is pending.
type PayoutResolution struct {
	ClientStatus   string
	ReferrerStatus string
	ExpiresAt      *time.Time
}

// ResolvePayoutStatuses assigns each party a payout status: pending a
// payment address iff its payout amount is strictly positive and it has no
// registered payout address, otherwise processing. referrer may be nil when
// the commission has no referrer leg.
func ResolvePayoutStatuses(client PartyPayout, referrer *PartyPayout, now time.Time) PayoutResolution {
	res := PayoutResolution{
		ClientStatus: resolvePartyStatus(client),
	}
	if referrer != nil {
		res.ReferrerStatus = resolvePartyStatus(*referrer)
	}

	if res.ClientStatus == models.PayoutStatusPendingAddress ||
		res.ReferrerStatus == models.PayoutStatusPendingAddress {
		expiry := now.Add(PayoutAddressWindow)
		res.ExpiresAt = &expiry
	}
	return res
}

func resolvePartyStatus(p PartyPayout) string {
	if p.Amount > 0 && !p.HasPayoutAddress {
		return models.PayoutStatusPendingAddress
	}
	return models.PayoutStatusProcessing
}
