package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/abrigo-care/abrigo/internal/domain/catalog"
	"github.com/abrigo-care/abrigo/internal/infrastructure/persistence/mappers"
	"github.com/abrigo-care/abrigo/internal/infrastructure/persistence/models"
	"github.com/abrigo-care/abrigo/internal/shared/db"
	"github.com/abrigo-care/abrigo/internal/shared/logger"
)

type AddOnRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.AddOnMapper
	logger logger.Interface
}

func NewAddOnRepository(db *gorm.DB, logger logger.Interface) catalog.AddOnRepository {
	return &AddOnRepositoryImpl{
		db:     db,
		mapper: mappers.NewAddOnMapper(),
		logger: logger,
	}
}

func (r *AddOnRepositoryImpl) Create(ctx context.Context, addOn *catalog.AddOn) error {
	model, err := r.mapper.ToModel(addOn)
	if err != nil {
		r.logger.Errorw("failed to map add-on entity to model", "error", err)
		return fmt.Errorf("failed to map add-on entity: %w", err)
	}

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(model).Error; err != nil {
		r.logger.Errorw("failed to create add-on in database", "error", err)
		return fmt.Errorf("failed to create add-on: %w", err)
	}

	if err := addOn.SetID(model.ID); err != nil {
		r.logger.Errorw("failed to set add-on ID", "error", err)
		return fmt.Errorf("failed to set add-on ID: %w", err)
	}

	r.logger.Infow("add-on created successfully", "id", model.ID, "name", model.Name)
	return nil
}

func (r *AddOnRepositoryImpl) GetByID(ctx context.Context, id uint) (*catalog.AddOn, error) {
	var model models.AddOnModel

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get add-on by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get add-on: %w", err)
	}

	entity, err := r.mapper.ToEntity(&model)
	if err != nil {
		r.logger.Errorw("failed to map add-on model to entity", "id", id, "error", err)
		return nil, fmt.Errorf("failed to map add-on: %w", err)
	}

	return entity, nil
}

func (r *AddOnRepositoryImpl) ListActive(ctx context.Context) ([]*catalog.AddOn, error) {
	var addOnModels []*models.AddOnModel

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("is_active = ?", true).Order("price_monthly ASC").Find(&addOnModels).Error; err != nil {
		r.logger.Errorw("failed to list active add-ons", "error", err)
		return nil, fmt.Errorf("failed to list add-ons: %w", err)
	}

	entities, err := r.mapper.ToEntities(addOnModels)
	if err != nil {
		r.logger.Errorw("failed to map add-on models to entities", "error", err)
		return nil, fmt.Errorf("failed to map add-ons: %w", err)
	}

	return entities, nil
}

func (r *AddOnRepositoryImpl) Update(ctx context.Context, addOn *catalog.AddOn) error {
	model, err := r.mapper.ToModel(addOn)
	if err != nil {
		r.logger.Errorw("failed to map add-on entity to model", "error", err)
		return fmt.Errorf("failed to map add-on entity: %w", err)
	}

	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Model(model).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"name":                model.Name,
			"description":         model.Description,
			"add_on_type":         model.AddOnType,
			"price_monthly":       model.PriceMonthly,
			"price_yearly":        model.PriceYearly,
			"configuration":       model.Configuration,
			"limitations":         model.Limitations,
			"compatible_packages": model.CompatiblePackages,
			"max_quantity":        model.MaxQuantity,
			"is_active":           model.IsActive,
			"version":             model.Version,
			"updated_at":          model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update add-on", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update add-on: %w", result.Error)
	}

	r.logger.Infow("add-on updated successfully", "id", model.ID)
	return nil
}
