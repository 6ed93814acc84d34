package utils

import (
	"regexp"
	"testing"
)

func TestGenerateReferralCodeFormat(t *testing.T) {
	clientPattern := regexp.MustCompile(`^CLT-[A-Z0-9]{6}$`)
	vendorPattern := regexp.MustCompile(`^VND-[A-Z0-9]{6}$`)

	for i := 0; i < 50; i++ {
		code, err := GenerateClientReferralCode()
		if err != nil {
			t.Fatalf("GenerateClientReferralCode() error = %v", err)
		}
		if !clientPattern.MatchString(code) {
			t.Errorf("client code %q does not match expected format", code)
		}

		code, err = GenerateVendorReferralCode()
		if err != nil {
			t.Fatalf("GenerateVendorReferralCode() error = %v", err)
		}
		if !vendorPattern.MatchString(code) {
			t.Errorf("vendor code %q does not match expected format", code)
		}
	}
}

func TestGenerateReferralCodeUniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		code, err := GenerateClientReferralCode()
		if err != nil {
			t.Fatalf("GenerateClientReferralCode() error = %v", err)
		}
		seen[code] = true
	}
	// 4 random bytes give ~4 billion combinations; 200 draws colliding
	// down to a handful would indicate broken randomness.
	if len(seen) < 190 {
		t.Errorf("only %d distinct codes out of 200", len(seen))
	}
}
