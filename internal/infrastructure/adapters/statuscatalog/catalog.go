// Package statuscatalog resolves lifecycle status names against the shared
// status_types table. Billing writes require a resolved ID: a miss is an
// error, never a silent fallback.
package statuscatalog

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/abrigo-care/abrigo/internal/infrastructure/cache"
	"github.com/abrigo-care/abrigo/internal/infrastructure/persistence/models"
	"github.com/abrigo-care/abrigo/internal/shared/db"
	"github.com/abrigo-care/abrigo/internal/shared/logger"
)

type Catalog struct {
	db     *gorm.DB
	cache  cache.StatusTypeCache
	logger logger.Interface
}

// New builds a catalog. The cache is optional; pass nil to always hit the DB.
func New(gormDB *gorm.DB, statusCache cache.StatusTypeCache, logger logger.Interface) *Catalog {
	return &Catalog{
		db:     gormDB,
		cache:  statusCache,
		logger: logger,
	}
}

// GetStatusID resolves a status name to its catalog ID. A missing entry is an
// error so callers fail closed instead of writing unresolvable references.
func (c *Catalog) GetStatusID(ctx context.Context, name string) (uint, error) {
	if c.cache != nil {
		id, hit, err := c.cache.GetStatusID(ctx, name)
		if err != nil {
			c.logger.Warnw("status cache lookup failed, falling back to DB", "name", name, "error", err)
		} else if hit {
			if id == 0 {
				return 0, fmt.Errorf("status type %q not found", name)
			}
			return id, nil
		}
	}

	var model models.StatusTypeModel
	tx := db.GetTxFromContext(ctx, c.db)
	if err := tx.Where("name = ?", name).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			if c.cache != nil {
				if cacheErr := c.cache.SetNullMarker(ctx, name); cacheErr != nil {
					c.logger.Warnw("failed to cache status null marker", "name", name, "error", cacheErr)
				}
			}
			return 0, fmt.Errorf("status type %q not found", name)
		}
		return 0, fmt.Errorf("failed to look up status type %q: %w", name, err)
	}

	if c.cache != nil {
		if err := c.cache.SetStatusID(ctx, name, model.ID); err != nil {
			c.logger.Warnw("failed to cache status ID", "name", name, "error", err)
		}
	}

	return model.ID, nil
}
