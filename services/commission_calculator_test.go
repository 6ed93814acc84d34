package services

import (
	"math"
	"testing"

	"github.com/taruns1620/connectify_hub_backend/models"
	"github.com/taruns1620/connectify_hub_backend/utils"
)

func TestComputeCommissionSplitWorkedExamples(t *testing.T) {
	schedule := models.DefaultRateSchedule()

	tests := []struct {
		name        string
		billAmount  float64
		ratePercent float64
		hasReferrer bool
		want        SplitResult
	}{
		{
			name:        "mid tier with referrer",
			billAmount:  25000,
			ratePercent: 10,
			hasReferrer: true,
			want: SplitResult{
				BaseCommissionAmount: 2500,
				ReferrerPayout:       1250,
				ClientCashback:       250,
				HubShare:             1000,
				VendorPayout:         22500,
			},
		},
		{
			name:        "top tier without referrer",
			billAmount:  70000,
			ratePercent: 8,
			hasReferrer: false,
			want: SplitResult{
				BaseCommissionAmount: 5600,
				ReferrerPayout:       0,
				ClientCashback:       1120,
				HubShare:             4480,
				VendorPayout:         64400,
			},
		},
		{
			name:        "zero rate",
			billAmount:  1000,
			ratePercent: 0,
			hasReferrer: true,
			want: SplitResult{
				BaseCommissionAmount: 0,
				ReferrerPayout:       0,
				ClientCashback:       0,
				HubShare:             0,
				VendorPayout:         1000,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeCommissionSplit(schedule, tt.billAmount, tt.ratePercent, tt.hasReferrer)
			if got != tt.want {
				t.Errorf("ComputeCommissionSplit() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestComputeCommissionSplitTierBoundaries(t *testing.T) {
	schedule := models.DefaultRateSchedule()

	// 30000 belongs to the first tier (50% referrer share)
	atBoundary := ComputeCommissionSplit(schedule, 30000, 10, true)
	if atBoundary.ReferrerPayout != 1500 {
		t.Errorf("referrer payout at 30000 = %v, want 1500", atBoundary.ReferrerPayout)
	}

	// 30000.01 crosses into the second tier (40% referrer share)
	aboveBoundary := ComputeCommissionSplit(schedule, 30000.01, 10, true)
	wantReferrer := round2(30000.01 * 0.10 * 0.40)
	if aboveBoundary.ReferrerPayout != wantReferrer {
		t.Errorf("referrer payout at 30000.01 = %v, want %v", aboveBoundary.ReferrerPayout, wantReferrer)
	}

	// 60000 still second tier, 60000.01 falls into the open-ended tier
	atSecond := ComputeCommissionSplit(schedule, 60000, 10, true)
	if atSecond.ReferrerPayout != 2400 {
		t.Errorf("referrer payout at 60000 = %v, want 2400", atSecond.ReferrerPayout)
	}
	openEnded := ComputeCommissionSplit(schedule, 60000.01, 10, true)
	wantOpen := round2(60000.01 * 0.10 * 0.30)
	if openEnded.ReferrerPayout != wantOpen {
		t.Errorf("referrer payout at 60000.01 = %v, want %v", openEnded.ReferrerPayout, wantOpen)
	}
}

func TestComputeCommissionSplitSumsExactly(t *testing.T) {
	schedule := models.DefaultRateSchedule()

	// Amounts chosen to generate rounding residue
	bills := []float64{10.01, 33.33, 99.99, 12345.67, 29999.99, 30000.01, 123456.78}
	rates := []float64{2.5, 7.77, 10, 12.345}

	for _, bill := range bills {
		for _, rate := range rates {
			for _, hasReferrer := range []bool{true, false} {
				got := ComputeCommissionSplit(schedule, bill, rate, hasReferrer)
				sum := round2(got.ReferrerPayout + got.ClientCashback + got.HubShare)
				if sum != got.BaseCommissionAmount {
					t.Errorf("splits for bill=%v rate=%v referrer=%v sum to %v, want base %v",
						bill, rate, hasReferrer, sum, got.BaseCommissionAmount)
				}
			}
		}
	}
}

func TestComputeCommissionSplitNoReferrer(t *testing.T) {
	schedule := models.DefaultRateSchedule()

	got := ComputeCommissionSplit(schedule, 5000, 10, false)
	if got.ReferrerPayout != 0 {
		t.Errorf("referrer payout without referrer = %v, want 0", got.ReferrerPayout)
	}
	if got.ClientCashback != 100 {
		t.Errorf("client cashback without referrer = %v, want 100 (20%% of base)", got.ClientCashback)
	}
}

func TestComputeCommissionSplitIdempotent(t *testing.T) {
	schedule := models.DefaultRateSchedule()

	first := ComputeCommissionSplit(schedule, 12345.67, 7.77, true)
	second := ComputeCommissionSplit(schedule, 12345.67, 7.77, true)
	if first != second {
		t.Errorf("same inputs produced different splits: %+v vs %+v", first, second)
	}
}

func TestValidateSplitInputs(t *testing.T) {
	tests := []struct {
		name        string
		billAmount  float64
		ratePercent float64
		wantErr     bool
	}{
		{"valid", 100, 10, false},
		{"zero rate is valid", 100, 0, false},
		{"zero bill", 0, 10, true},
		{"negative bill", -5, 10, true},
		{"negative rate", 100, -1, true},
		{"NaN bill", math.NaN(), 10, true},
		{"NaN rate", 100, math.NaN(), true},
		{"infinite bill", math.Inf(1), 10, true},
		{"infinite rate", 100, math.Inf(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSplitInputs(tt.billAmount, tt.ratePercent)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSplitInputs(%v, %v) error = %v, wantErr %v",
					tt.billAmount, tt.ratePercent, err, tt.wantErr)
			}
			if err != nil && utils.KindOf(err) != utils.ErrInvalidArgument {
				t.Errorf("error kind = %v, want invalid-argument", utils.KindOf(err))
			}
		})
	}
}

func TestSelectTierEmptySchedule(t *testing.T) {
	tier := selectTier(nil, 100)
	if tier.ReferrerShare != 0 || tier.ClientShare != 0 {
		t.Errorf("empty schedule tier = %+v, want zero shares", tier)
	}
}
