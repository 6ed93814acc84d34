package services

import (
	"testing"
	"time"

	"github.com/taruns1620/connectify_hub_backend/models"
)

func TestResolvePayoutStatuses(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		client       PartyPayout
		referrer     *PartyPayout
		wantClient   string
		wantReferrer string
		wantExpiry   bool
	}{
		{
			name:       "client with address goes straight to processing",
			client:     PartyPayout{Amount: 100, HasPayoutAddress: true},
			wantClient: models.PayoutStatusProcessing,
		},
		{
			name:       "client without address is pending",
			client:     PartyPayout{Amount: 100, HasPayoutAddress: false},
			wantClient: models.PayoutStatusPendingAddress,
			wantExpiry: true,
		},
		{
			name:       "zero amount never pends even without address",
			client:     PartyPayout{Amount: 0, HasPayoutAddress: false},
			wantClient: models.PayoutStatusProcessing,
		},
		{
			name:         "referrer leg resolved independently",
			client:       PartyPayout{Amount: 50, HasPayoutAddress: true},
			referrer:     &PartyPayout{Amount: 200, HasPayoutAddress: false},
			wantClient:   models.PayoutStatusProcessing,
			wantReferrer: models.PayoutStatusPendingAddress,
			wantExpiry:   true,
		},
		{
			name:         "both parties with addresses",
			client:       PartyPayout{Amount: 50, HasPayoutAddress: true},
			referrer:     &PartyPayout{Amount: 200, HasPayoutAddress: true},
			wantClient:   models.PayoutStatusProcessing,
			wantReferrer: models.PayoutStatusProcessing,
		},
		{
			name:       "no referrer leg leaves status empty",
			client:     PartyPayout{Amount: 50, HasPayoutAddress: true},
			wantClient: models.PayoutStatusProcessing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolvePayoutStatuses(tt.client, tt.referrer, now)

			if got.ClientStatus != tt.wantClient {
				t.Errorf("client status = %q, want %q", got.ClientStatus, tt.wantClient)
			}
			if got.ReferrerStatus != tt.wantReferrer {
				t.Errorf("referrer status = %q, want %q", got.ReferrerStatus, tt.wantReferrer)
			}
			if tt.wantExpiry {
				if got.ExpiresAt == nil {
					t.Fatal("expected an expiry instant, got nil")
				}
				want := now.Add(PayoutAddressWindow)
				if !got.ExpiresAt.Equal(want) {
					t.Errorf("expiry = %v, want %v", got.ExpiresAt, want)
				}
			} else if got.ExpiresAt != nil {
				t.Errorf("expected no expiry, got %v", got.ExpiresAt)
			}
		})
	}
}

func TestResolvePayoutStatusesSharedExpiry(t *testing.T) {
	now := time.Now()
	got := ResolvePayoutStatuses(
		PartyPayout{Amount: 10, HasPayoutAddress: false},
		&PartyPayout{Amount: 20, HasPayoutAddress: false},
		now)

	if got.ClientStatus != models.PayoutStatusPendingAddress {
		t.Errorf("client status = %q, want pending", got.ClientStatus)
	}
	if got.ReferrerStatus != models.PayoutStatusPendingAddress {
		t.Errorf("referrer status = %q, want pending", got.ReferrerStatus)
	}
	if got.ExpiresAt == nil {
		t.Fatal("expected a shared expiry")
	}
	if !got.ExpiresAt.Equal(now.Add(2 * time.Hour)) {
		t.Errorf("shared expiry = %v, want %v", got.ExpiresAt, now.Add(2*time.Hour))
	}
}
