package services

import (
	"testing"
	"time"

	"github.com/taruns1620/connectify_hub_backend/models"
	"github.com/taruns1620/connectify_hub_backend/utils"
)

func TestBuildVendorProfile(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name         string
		reg          models.VendorRegistration
		wantName     string
		wantLocation string
		wantErr      bool
	}{
		{
			name: "shop uses shop fields",
			reg: models.VendorRegistration{
				VendorType:  models.VendorTypeShop,
				Category:    "electronics",
				ShopName:    "Gadget World",
				ShopAddress: "12 Market Street",
				FullName:    "should be ignored",
			},
			wantName:     "Gadget World",
			wantLocation: "12 Market Street",
		},
		{
			name: "office uses office fields",
			reg: models.VendorRegistration{
				VendorType:    models.VendorTypeOffice,
				Category:      "legal",
				OfficeName:    "Lex & Partners",
				OfficeAddress: "4th Floor, Central Tower",
			},
			wantName:     "Lex & Partners",
			wantLocation: "4th Floor, Central Tower",
		},
		{
			name: "freelancer uses personal fields",
			reg: models.VendorRegistration{
				VendorType:  models.VendorTypeFreelancer,
				Category:    "photography",
				FullName:    "Sam Torres",
				ServiceArea: "Downtown",
			},
			wantName:     "Sam Torres",
			wantLocation: "Downtown",
		},
		{
			name: "unknown type is rejected",
			reg: models.VendorRegistration{
				VendorType: "warehouse",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile, err := BuildVendorProfile(tt.reg, 12.5, []string{"weekend-bonus"}, now)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				if utils.KindOf(err) != utils.ErrInvalidArgument {
					t.Errorf("error kind = %v, want invalid-argument", utils.KindOf(err))
				}
				return
			}
			if err != nil {
				t.Fatalf("BuildVendorProfile() error = %v", err)
			}
			if profile.Name != tt.wantName {
				t.Errorf("profile name = %q, want %q", profile.Name, tt.wantName)
			}
			if profile.Location != tt.wantLocation {
				t.Errorf("profile location = %q, want %q", profile.Location, tt.wantLocation)
			}
			if profile.CommissionRate != 12.5 {
				t.Errorf("commission rate = %v, want 12.5", profile.CommissionRate)
			}
			if !profile.IsActive {
				t.Error("approved profile should be active")
			}
			if profile.ApprovedAt == nil || !profile.ApprovedAt.Equal(now) {
				t.Errorf("approvedAt = %v, want %v", profile.ApprovedAt, now)
			}
		})
	}
}

func TestEnsurePending(t *testing.T) {
	if err := EnsurePending(models.RegistrationStatusPending, models.RegistrationStatusPending, "vendor registration"); err != nil {
		t.Errorf("pending record should pass, got %v", err)
	}

	err := EnsurePending(models.RegistrationStatusApproved, models.RegistrationStatusPending, "vendor registration")
	if err == nil {
		t.Fatal("already-approved record should fail")
	}
	if utils.KindOf(err) != utils.ErrFailedPrecondition {
		t.Errorf("error kind = %v, want failed-precondition", utils.KindOf(err))
	}
}

func TestDecideCashVerification(t *testing.T) {
	confirmed := true
	denied := false

	tests := []struct {
		name         string
		txn          models.CashTransaction
		wantApproved bool
		wantReason   bool
	}{
		{"no response", models.CashTransaction{}, false, true},
		{"denied", models.CashTransaction{ClientVerified: &denied}, false, true},
		{"confirmed", models.CashTransaction{ClientVerified: &confirmed}, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			approved, reason := DecideCashVerification(tt.txn)
			if approved != tt.wantApproved {
				t.Errorf("approved = %v, want %v", approved, tt.wantApproved)
			}
			if (reason != "") != tt.wantReason {
				t.Errorf("reason = %q, wantReason %v", reason, tt.wantReason)
			}
		})
	}
}
