package models

import (
	"time"

	"github.com/abrigo-care/abrigo/internal/shared/constants"
)

// StatusTypeModel is the shared status catalog referenced by subscriptions and
// attachments.
type StatusTypeModel struct {
	ID          uint   `gorm:"primarykey"`
	Name        string `gorm:"uniqueIndex;not null;size:50"`
	Category    string `gorm:"not null;size:30;default:subscription"`
	Description string `gorm:"size:255"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName specifies the table name for GORM
func (StatusTypeModel) TableName() string {
	return constants.TableStatusTypes
}
