package services

import (
	"testing"
	"time"

	"github.com/taruns1620/connectify_hub_backend/models"
)

func TestForfeitExpiredLegs(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Minute)
	future := now.Add(time.Hour)

	t.Run("not yet expired", func(t *testing.T) {
		c := models.Commission{
			ClientCashback:     100,
			HubShare:           400,
			ClientPayoutStatus: models.PayoutStatusPendingAddress,
			PayoutExpiresAt:    &future,
		}
		got, changed := ForfeitExpiredLegs(c, now)
		if changed {
			t.Error("commission inside the window must not change")
		}
		if got.ClientPayoutStatus != models.PayoutStatusPendingAddress {
			t.Errorf("client status = %q, want still pending", got.ClientPayoutStatus)
		}
	})

	t.Run("no expiry set", func(t *testing.T) {
		c := models.Commission{ClientPayoutStatus: models.PayoutStatusProcessing}
		if _, changed := ForfeitExpiredLegs(c, now); changed {
			t.Error("commission without expiry must not change")
		}
	})

	t.Run("client leg forfeited to hub", func(t *testing.T) {
		c := models.Commission{
			ClientCashback:       100,
			ReferrerPayout:       250,
			HubShare:             400,
			ClientPayoutStatus:   models.PayoutStatusPendingAddress,
			ReferrerPayoutStatus: models.PayoutStatusProcessing,
			PayoutExpiresAt:      &past,
		}
		got, changed := ForfeitExpiredLegs(c, now)
		if !changed {
			t.Fatal("expired pending leg should change the commission")
		}
		if got.ClientPayoutStatus != models.PayoutStatusForfeited {
			t.Errorf("client status = %q, want forfeited", got.ClientPayoutStatus)
		}
		if got.ClientCashback != 0 {
			t.Errorf("client cashback = %v, want 0", got.ClientCashback)
		}
		if got.HubShare != 500 {
			t.Errorf("hub share = %v, want 500", got.HubShare)
		}
		if got.ReferrerPayout != 250 || got.ReferrerPayoutStatus != models.PayoutStatusProcessing {
			t.Errorf("referrer leg changed: %v %q", got.ReferrerPayout, got.ReferrerPayoutStatus)
		}
		if got.PayoutExpiresAt != nil {
			t.Error("expiry should be cleared after the sweep")
		}
	})

	t.Run("both legs forfeited", func(t *testing.T) {
		c := models.Commission{
			ClientCashback:       100,
			ReferrerPayout:       250,
			HubShare:             400,
			ClientPayoutStatus:   models.PayoutStatusPendingAddress,
			ReferrerPayoutStatus: models.PayoutStatusPendingAddress,
			PayoutExpiresAt:      &past,
		}
		got, changed := ForfeitExpiredLegs(c, now)
		if !changed {
			t.Fatal("expected both legs to forfeit")
		}
		if got.HubShare != 750 {
			t.Errorf("hub share = %v, want 750", got.HubShare)
		}
		if got.ClientPayoutStatus != models.PayoutStatusForfeited ||
			got.ReferrerPayoutStatus != models.PayoutStatusForfeited {
			t.Errorf("statuses = %q/%q, want forfeited/forfeited",
				got.ClientPayoutStatus, got.ReferrerPayoutStatus)
		}
	})

	t.Run("processing legs survive expiry", func(t *testing.T) {
		c := models.Commission{
			ClientCashback:       100,
			HubShare:             400,
			ClientPayoutStatus:   models.PayoutStatusProcessing,
			ReferrerPayoutStatus: models.PayoutStatusProcessing,
			PayoutExpiresAt:      &past,
		}
		got, changed := ForfeitExpiredLegs(c, now)
		if changed {
			t.Error("processing legs must never forfeit")
		}
		if got.ClientCashback != 100 || got.HubShare != 400 {
			t.Errorf("amounts changed: cashback=%v hub=%v", got.ClientCashback, got.HubShare)
		}
	})
}
