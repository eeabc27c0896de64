package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/abrigo-care/abrigo/internal/shared/constants"
)

// AddOnModel is the database persistence model for catalog add-ons.
type AddOnModel struct {
	ID                 uint   `gorm:"primarykey"`
	Name               string `gorm:"not null;size:100"`
	Description        string `gorm:"type:text"`
	AddOnType          string `gorm:"not null;size:30;index:idx_addon_type"`
	PriceMonthly       uint64 `gorm:"not null;comment:minor currency units"`
	PriceYearly        *uint64
	Configuration      datatypes.JSON
	Limitations        datatypes.JSON
	CompatiblePackages datatypes.JSON `gorm:"comment:empty means all package types"`
	MaxQuantity        *int
	IsActive           bool `gorm:"default:true;index:idx_addon_active"`
	Version            int  `gorm:"not null;default:1"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// TableName specifies the table name for GORM
func (AddOnModel) TableName() string {
	return constants.TablePackageAddOns
}

// BeforeCreate hook for GORM
func (a *AddOnModel) BeforeCreate(tx *gorm.DB) error {
	if a.Version == 0 {
		a.Version = 1
	}
	return nil
}
