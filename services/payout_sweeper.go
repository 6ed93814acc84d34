package services

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taruns1620/connectify_hub_backend/config"
	"github.com/taruns1620/connectify_hub_backend/models"
	"github.com/taruns1620/connectify_hub_backend/repositories"
)

// PayoutSweeper forfeits cashback/referral payouts whose payment-address
// registration window has lapsed: the leg moves to forfeited and its amount
// is reassigned to the hub share.
type PayoutSweeper struct {
	db   *mongo.Client
	repo *repositories.CommissionRepository
}

func NewPayoutSweeper(db *mongo.Client) *PayoutSweeper {
	return &PayoutSweeper{
		db:   db,
		repo: repositories.NewCommissionRepository(db),
	}
}

// Run sweeps on the given interval until the context is cancelled.
func (s *PayoutSweeper) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.Sweep(ctx); err != nil {
				log.Printf("Payout sweep failed: %v", err)
			}
		}
	}
}

// Sweep forfeits every expired pending payout leg. Each commission is
// updated in its own transaction so a re-read can confirm the leg is still
// pending before the hub share is adjusted.
func (s *PayoutSweeper) Sweep(ctx context.Context) error {
	now := time.Now()
	expired, err := s.repo.FindExpiredPending(ctx, now)
	if err != nil {
		return err
	}

	for _, commission := range expired {
		id := commission.ID
		_, err := repositories.WithTransaction(ctx, s.db, func(sc mongo.SessionContext) (interface{}, error) {
			current, err := s.repo.FindByID(sc, id)
			if err != nil {
				return nil, err
			}

			updated, changed := ForfeitExpiredLegs(*current, now)
			if !changed {
				return nil, nil
			}

			_, err = config.GetCollection(s.db, "commissions").UpdateByID(sc, id, bson.M{
				"$set": bson.M{
					"clientCashback":       updated.ClientCashback,
					"referrerPayout":       updated.ReferrerPayout,
					"hubShare":             updated.HubShare,
					"clientPayoutStatus":   updated.ClientPayoutStatus,
					"referrerPayoutStatus": updated.ReferrerPayoutStatus,
					"payoutExpiresAt":      updated.PayoutExpiresAt,
				},
			})
			return nil, err
		})
		if err != nil {
			log.Printf("Failed to forfeit expired payouts on commission %s: %v", id.Hex(), err)
			continue
		}
		log.Printf("Forfeited expired payout legs on commission %s", id.Hex())
	}

	return nil
}

// ForfeitExpiredLegs moves every pending payout leg past its window to
// forfeited, reassigning its amount to the hub share so the splits still
// sum to the base commission amount. The shared expiry is cleared once no
// leg remains pending.
func ForfeitExpiredLegs(c models.Commission, now time.Time) (models.Commission, bool) {
	if c.PayoutExpiresAt == nil || now.Before(*c.PayoutExpiresAt) {
		return c, false
	}

	changed := false

	if c.ClientPayoutStatus == models.PayoutStatusPendingAddress {
		c.HubShare = round2(c.HubShare + c.ClientCashback)
		c.ClientCashback = 0
		c.ClientPayoutStatus = models.PayoutStatusForfeited
		changed = true
	}

	if c.ReferrerPayoutStatus == models.PayoutStatusPendingAddress {
		c.HubShare = round2(c.HubShare + c.ReferrerPayout)
		c.ReferrerPayout = 0
		c.ReferrerPayoutStatus = models.PayoutStatusForfeited
		changed = true
	}

	if changed {
		c.PayoutExpiresAt = nil
	}

	return c, changed
}
