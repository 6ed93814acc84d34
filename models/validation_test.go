package models

import (
	"testing"

	"github.com/go-playground/validator/v10"
)

func TestCommissionRateValidationAllowsZero(t *testing.T) {
	v := validator.New()

	tests := []struct {
		name    string
		payload interface{}
		wantErr bool
	}{
		{"approve at zero rate", &ApproveVendorRequest{CommissionRatePercent: 0}, false},
		{"approve at full rate", &ApproveVendorRequest{CommissionRatePercent: 100}, false},
		{"approve negative rate", &ApproveVendorRequest{CommissionRatePercent: -1}, true},
		{"approve rate above 100", &ApproveVendorRequest{CommissionRatePercent: 100.5}, true},
		{"rate edit to zero", &UpdateVendorRateRequest{CommissionRatePercent: 0}, false},
		{"rate edit negative", &UpdateVendorRateRequest{CommissionRatePercent: -0.5}, true},
		{"rate edit above 100", &UpdateVendorRateRequest{CommissionRatePercent: 101}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.payload)
			if (err != nil) != tt.wantErr {
				t.Errorf("validation error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
