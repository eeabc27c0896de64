// Package referral adapts the referral subsystem's tables for subscription-time
// code validation. Commission bookkeeping stays on the referral side.
package referral

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/abrigo-care/abrigo/internal/application/packages/usecases"
	"github.com/abrigo-care/abrigo/internal/shared/logger"
)

type referralRow struct {
	ID         uint
	StatusName string
}

type Validator struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewValidator(db *gorm.DB, logger logger.Interface) *Validator {
	return &Validator{db: db, logger: logger}
}

// ValidateReferralCode checks whether a referral code may grant a discount:
// the code must exist and must not be expired or already converted. The
// subscriber's email is logged for the referral audit trail.
func (v *Validator) ValidateReferralCode(ctx context.Context, code, email string) (usecases.ReferralValidation, error) {
	var row referralRow
	err := v.db.WithContext(ctx).
		Table("referrals").
		Select("referrals.id, status_types.name AS status_name").
		Joins("LEFT JOIN status_types ON status_types.id = referrals.status_type_id").
		Where("referrals.referral_code = ?", code).
		Scan(&row).Error
	if err != nil {
		v.logger.Errorw("failed to look up referral code", "error", err)
		return usecases.ReferralValidation{}, fmt.Errorf("failed to look up referral code: %w", err)
	}

	if row.ID == 0 {
		return usecases.ReferralValidation{Reason: "invalid referral code"}, nil
	}

	switch row.StatusName {
	case "expired":
		return usecases.ReferralValidation{Reason: "referral code expired"}, nil
	case "converted":
		return usecases.ReferralValidation{Reason: "referral code already used"}, nil
	}

	v.logger.Infow("referral code validated", "referral_id", row.ID, "email", email)
	return usecases.ReferralValidation{IsValid: true}, nil
}
