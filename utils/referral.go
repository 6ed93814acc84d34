package utils

import (
	"crypto/rand"
	"encoding/base32"
	"strings"
)

// ReferralType represents the type of entity for which a referral code is being generated
type ReferralType string

const (
	ClientReferralType ReferralType = "CLT"
	VendorReferralType ReferralType = "VND"
)

// GenerateReferralCode generates a unique referral code for the specified entity type
// Format: {TYPE}-{RANDOM} where RANDOM is 6 alphanumeric characters
// Example: CLT-ABC123, VND-XYZ789
func GenerateReferralCode(entityType ReferralType) (string, error) {
	randomBytes := make([]byte, 4)
	_, err := rand.Read(randomBytes)
	if err != nil {
		return "", err
	}

	randomStr := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(randomBytes)
	randomStr = randomStr[:6]

	randomStr = strings.ToUpper(randomStr)
	randomStr = strings.Map(func(r rune) rune {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			return r
		}
		return -1
	}, randomStr)

	if len(randomStr) < 6 {
		randomStr = randomStr + strings.Repeat("0", 6-len(randomStr))
	}

	return string(entityType) + "-" + randomStr, nil
}

// GenerateClientReferralCode generates a referral code for a client
func GenerateClientReferralCode() (string, error) {
	return GenerateReferralCode(ClientReferralType)
}

// GenerateVendorReferralCode generates a referral code for a vendor
func GenerateVendorReferralCode() (string, error) {
	return GenerateReferralCode(VendorReferralType)
}
