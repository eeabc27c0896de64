// Package identity adapts the platform's user and care-relationship tables
// into the read models the billing engine needs. The billing engine never
// writes these tables.
package identity

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/abrigo-care/abrigo/internal/application/packages/usecases"
	"github.com/abrigo-care/abrigo/internal/shared/logger"
)

type userRow struct {
	ID    uint
	Email string
}

func (userRow) TableName() string {
	return "users"
}

type Directory struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewDirectory(db *gorm.DB, logger logger.Interface) *Directory {
	return &Directory{db: db, logger: logger}
}

// GetUser returns the billing projection of a user, or (nil, nil) when the
// user does not exist.
func (d *Directory) GetUser(ctx context.Context, userID uint) (*usecases.User, error) {
	var row userRow
	if err := d.db.WithContext(ctx).First(&row, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		d.logger.Errorw("failed to get user", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	var roles []string
	if err := d.db.WithContext(ctx).
		Table("user_roles").
		Select("roles.name").
		Joins("JOIN roles ON roles.id = user_roles.role_id").
		Where("user_roles.user_id = ?", userID).
		Scan(&roles).Error; err != nil {
		d.logger.Errorw("failed to get user roles", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to get user roles: %w", err)
	}

	return &usecases.User{
		ID:    row.ID,
		Email: row.Email,
		Roles: roles,
	}, nil
}

// HasDelegatedCare reports whether the user is a cared person under an active
// delegated care relationship, which blocks direct contracting.
func (d *Directory) HasDelegatedCare(ctx context.Context, userID uint) (bool, error) {
	var count int64
	if err := d.db.WithContext(ctx).
		Table("care_relationships").
		Where("cared_person_id = ? AND relationship_type = ? AND is_active = ?",
			userID, "delegated", true).
		Count(&count).Error; err != nil {
		d.logger.Errorw("failed to check delegated care", "user_id", userID, "error", err)
		return false, fmt.Errorf("failed to check delegated care: %w", err)
	}
	return count > 0, nil
}
