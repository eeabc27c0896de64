package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/abrigo-care/abrigo/internal/shared/constants"
)

// UserPackageModel is the database persistence model for the subscription
// ledger. Status is stored both as the catalog foreign key and as a
// denormalized name so statistics queries avoid the join.
type UserPackageModel struct {
	ID                        uint      `gorm:"primarykey"`
	UserID                    uint      `gorm:"not null;index:idx_user_package"`
	PackageID                 uint      `gorm:"not null;index:idx_package_subscription"`
	StartDate                 time.Time `gorm:"not null"`
	EndDate                   *time.Time
	AutoRenew                 bool      `gorm:"default:true"`
	BillingCycle              string    `gorm:"not null;size:10"`
	CurrentAmount             uint64    `gorm:"not null;comment:minor currency units"`
	NextBillingDate           time.Time `gorm:"not null;index:idx_next_billing"`
	StatusTypeID              uint      `gorm:"not null"`
	Status                    string    `gorm:"not null;size:20;index:idx_up_status"`
	CustomConfiguration       datatypes.JSON
	SelectedFeatures          datatypes.JSON
	CustomLimits              datatypes.JSON
	LegalCapacityVerified     bool `gorm:"default:false"`
	LegalRepresentativeID     *uint
	VerificationDate          *time.Time
	ReferralCodeUsed          *string `gorm:"size:50"`
	ReferralCommissionApplied bool    `gorm:"default:false"`
	Version                   int     `gorm:"not null;default:1"`
	CreatedAt                 time.Time
	UpdatedAt                 time.Time
}

// TableName specifies the table name for GORM
func (UserPackageModel) TableName() string {
	return constants.TableUserPackages
}

// BeforeCreate hook for GORM
func (u *UserPackageModel) BeforeCreate(tx *gorm.DB) error {
	if u.Version == 0 {
		u.Version = 1
	}
	return nil
}
