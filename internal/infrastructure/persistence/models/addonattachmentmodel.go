package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/abrigo-care/abrigo/internal/shared/constants"
)

// AddOnAttachmentModel is the database persistence model for add-ons attached
// to subscriptions.
type AddOnAttachmentModel struct {
	ID                  uint      `gorm:"primarykey"`
	UserPackageID       uint      `gorm:"not null;index:idx_attachment_subscription"`
	AddOnID             uint      `gorm:"not null;index:idx_attachment_addon"`
	Quantity            int       `gorm:"not null;default:1"`
	BillingCycle        string    `gorm:"not null;size:10"`
	CurrentAmount       uint64    `gorm:"not null;comment:minor currency units"`
	StatusTypeID        uint      `gorm:"not null"`
	Status              string    `gorm:"not null;size:20;index:idx_attachment_status"`
	CustomConfiguration datatypes.JSON
	AddedAt             time.Time `gorm:"not null"`
	Version             int       `gorm:"not null;default:1"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// TableName specifies the table name for GORM
func (AddOnAttachmentModel) TableName() string {
	return constants.TableUserPackageAddOns
}

// BeforeCreate hook for GORM
func (a *AddOnAttachmentModel) BeforeCreate(tx *gorm.DB) error {
	if a.Version == 0 {
		a.Version = 1
	}
	return nil
}
