package services

import (
	"time"

	"github.com/taruns1620/connectify_hub_backend/models"
	"github.com/taruns1620/connectify_hub_backend/utils"
)

// BuildVendorProfile produces the denormalized vendor profile to merge onto
// the user record when a registration is approved. The name and location
// fields are selected by the registration's vendor type.
func BuildVendorProfile(reg models.VendorRegistration, ratePercent float64, bonusRules []string, now time.Time) (models.VendorInfo, error) {
	profile := models.VendorInfo{
		VendorType:     reg.VendorType,
		Category:       reg.Category,
		PayoutAddress:  reg.PayoutAddress,
		CommissionRate: ratePercent,
		BonusRules:     bonusRules,
		IsActive:       true,
		ApprovedAt:     &now,
	}

	switch reg.VendorType {
	case models.VendorTypeShop:
		profile.Name = reg.ShopName
		profile.Location = reg.ShopAddress
	case models.VendorTypeOffice:
		profile.Name = reg.OfficeName
		profile.Location = reg.OfficeAddress
	case models.VendorTypeFreelancer:
		profile.Name = reg.FullName
		profile.Location = reg.ServiceArea
	default:
		return models.VendorInfo{}, utils.AppErrorf(utils.ErrInvalidArgument, "unknown vendor type %q", reg.VendorType)
	}

	return profile, nil
}

// EnsurePending returns a failed-precondition error when a record is no
// longer in the expected pending state, so racing approvals fail cleanly
// instead of double-applying.
func EnsurePending(current, pending, what string) error {
	if current != pending {
		return utils.AppErrorf(utils.ErrFailedPrecondition, "%s is already %s", what, current)
	}
	return nil
}

// DecideCashVerification applies the client-verification rule to a cash
// transaction: an explicit denial or no response at all means the charge is
// rejected and no commission is created.
func DecideCashVerification(txn models.CashTransaction) (approved bool, reason string) {
	if txn.ClientVerified == nil {
		return false, "client never responded to the verification request"
	}
	if !*txn.ClientVerified {
		return false, "client denied the charge"
	}
	return true, ""
}
