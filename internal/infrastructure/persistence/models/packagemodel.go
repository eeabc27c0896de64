package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/abrigo-care/abrigo/internal/shared/constants"
)

// PackageModel is the database persistence model for catalog packages.
// This is the anti-corruption layer between domain and database.
type PackageModel struct {
	ID                  uint   `gorm:"primarykey"`
	PackageType         string `gorm:"not null;size:30;index:idx_package_type"`
	Name                string `gorm:"not null;size:100"`
	Description         string `gorm:"type:text"`
	PriceMonthly        uint64 `gorm:"not null;comment:minor currency units"`
	PriceYearly         *uint64
	Currency            string `gorm:"not null;size:3;default:ARS"`
	MaxUsers            *int
	MaxDevices          *int
	MaxStorageGB        *int
	Features            datatypes.JSON
	Limitations         datatypes.JSON
	CustomizableOptions datatypes.JSON
	AddOnsAvailable     datatypes.JSON
	BaseConfiguration   datatypes.JSON
	IsCustomizable      bool    `gorm:"default:true"`
	SupportLevel        *string `gorm:"size:20"`
	ResponseTimeHours   *int
	IsActive            bool `gorm:"default:true;index:idx_package_active"`
	IsFeatured          bool `gorm:"default:false"`
	Version             int  `gorm:"not null;default:1"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// TableName specifies the table name for GORM
func (PackageModel) TableName() string {
	return constants.TablePackages
}

// BeforeCreate hook for GORM
func (p *PackageModel) BeforeCreate(tx *gorm.DB) error {
	if p.Version == 0 {
		p.Version = 1
	}
	return nil
}
