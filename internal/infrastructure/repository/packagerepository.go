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

type PackageRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.PackageMapper
	logger logger.Interface
}

func NewPackageRepository(db *gorm.DB, logger logger.Interface) catalog.PackageRepository {
	return &PackageRepositoryImpl{
		db:     db,
		mapper: mappers.NewPackageMapper(),
		logger: logger,
	}
}

func (r *PackageRepositoryImpl) Create(ctx context.Context, pkg *catalog.Package) error {
	model, err := r.mapper.ToModel(pkg)
	if err != nil {
		r.logger.Errorw("failed to map package entity to model", "error", err)
		return fmt.Errorf("failed to map package entity: %w", err)
	}

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(model).Error; err != nil {
		r.logger.Errorw("failed to create package in database", "error", err)
		return fmt.Errorf("failed to create package: %w", err)
	}

	if err := pkg.SetID(model.ID); err != nil {
		r.logger.Errorw("failed to set package ID", "error", err)
		return fmt.Errorf("failed to set package ID: %w", err)
	}

	r.logger.Infow("package created successfully", "id", model.ID, "name", model.Name)
	return nil
}

func (r *PackageRepositoryImpl) GetByID(ctx context.Context, id uint) (*catalog.Package, error) {
	var model models.PackageModel

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get package by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get package: %w", err)
	}

	entity, err := r.mapper.ToEntity(&model)
	if err != nil {
		r.logger.Errorw("failed to map package model to entity", "id", id, "error", err)
		return nil, fmt.Errorf("failed to map package: %w", err)
	}

	return entity, nil
}

func (r *PackageRepositoryImpl) ListActive(ctx context.Context, filter catalog.PackageListFilter) ([]*catalog.Package, error) {
	var packageModels []*models.PackageModel

	query := db.GetTxFromContext(ctx, r.db).Where("is_active = ?", true)
	if filter.PackageType != nil {
		query = query.Where("package_type = ?", filter.PackageType.String())
	}
	if filter.IsFeatured != nil {
		query = query.Where("is_featured = ?", *filter.IsFeatured)
	}

	if err := query.Order("price_monthly ASC").Find(&packageModels).Error; err != nil {
		r.logger.Errorw("failed to list active packages", "error", err)
		return nil, fmt.Errorf("failed to list packages: %w", err)
	}

	entities, err := r.mapper.ToEntities(packageModels)
	if err != nil {
		r.logger.Errorw("failed to map package models to entities", "error", err)
		return nil, fmt.Errorf("failed to map packages: %w", err)
	}

	return entities, nil
}

func (r *PackageRepositoryImpl) Update(ctx context.Context, pkg *catalog.Package) error {
	model, err := r.mapper.ToModel(pkg)
	if err != nil {
		r.logger.Errorw("failed to map package entity to model", "error", err)
		return fmt.Errorf("failed to map package entity: %w", err)
	}

	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Model(model).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"package_type":         model.PackageType,
			"name":                 model.Name,
			"description":          model.Description,
			"price_monthly":        model.PriceMonthly,
			"price_yearly":         model.PriceYearly,
			"currency":             model.Currency,
			"max_users":            model.MaxUsers,
			"max_devices":          model.MaxDevices,
			"max_storage_gb":       model.MaxStorageGB,
			"features":             model.Features,
			"limitations":          model.Limitations,
			"customizable_options": model.CustomizableOptions,
			"add_ons_available":    model.AddOnsAvailable,
			"base_configuration":   model.BaseConfiguration,
			"is_customizable":      model.IsCustomizable,
			"support_level":        model.SupportLevel,
			"response_time_hours":  model.ResponseTimeHours,
			"is_active":            model.IsActive,
			"is_featured":          model.IsFeatured,
			"version":              model.Version,
			"updated_at":           model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update package", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update package: %w", result.Error)
	}

	r.logger.Infow("package updated successfully", "id", model.ID)
	return nil
}

func (r *PackageRepositoryImpl) CountActive(ctx context.Context) (int64, error) {
	var count int64

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Model(&models.PackageModel{}).Where("is_active = ?", true).Count(&count).Error; err != nil {
		r.logger.Errorw("failed to count active packages", "error", err)
		return 0, fmt.Errorf("failed to count packages: %w", err)
	}

	return count, nil
}
