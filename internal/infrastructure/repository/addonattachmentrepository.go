package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/abrigo-care/abrigo/internal/domain/subscription"
	vo "github.com/abrigo-care/abrigo/internal/domain/subscription/valueobjects"
	"github.com/abrigo-care/abrigo/internal/infrastructure/persistence/mappers"
	"github.com/abrigo-care/abrigo/internal/infrastructure/persistence/models"
	"github.com/abrigo-care/abrigo/internal/shared/db"
	"github.com/abrigo-care/abrigo/internal/shared/logger"
)

type AddOnAttachmentRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.AddOnAttachmentMapper
	logger logger.Interface
}

func NewAddOnAttachmentRepository(db *gorm.DB, logger logger.Interface) subscription.AddOnAttachmentRepository {
	return &AddOnAttachmentRepositoryImpl{
		db:     db,
		mapper: mappers.NewAddOnAttachmentMapper(),
		logger: logger,
	}
}

func (r *AddOnAttachmentRepositoryImpl) Create(ctx context.Context, attachment *subscription.AddOnAttachment) error {
	model, err := r.mapper.ToModel(attachment)
	if err != nil {
		r.logger.Errorw("failed to map attachment entity to model", "error", err)
		return fmt.Errorf("failed to map attachment entity: %w", err)
	}

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(model).Error; err != nil {
		r.logger.Errorw("failed to create attachment in database", "error", err)
		return fmt.Errorf("failed to create attachment: %w", err)
	}

	if err := attachment.SetID(model.ID); err != nil {
		r.logger.Errorw("failed to set attachment ID", "error", err)
		return fmt.Errorf("failed to set attachment ID: %w", err)
	}

	r.logger.Infow("add-on attached successfully",
		"id", model.ID, "subscription_id", model.UserPackageID, "add_on_id", model.AddOnID)
	return nil
}

func (r *AddOnAttachmentRepositoryImpl) GetByID(ctx context.Context, id uint) (*subscription.AddOnAttachment, error) {
	var model models.AddOnAttachmentModel

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get attachment by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get attachment: %w", err)
	}

	entity, err := r.mapper.ToEntity(&model)
	if err != nil {
		r.logger.Errorw("failed to map attachment model to entity", "id", id, "error", err)
		return nil, fmt.Errorf("failed to map attachment: %w", err)
	}

	return entity, nil
}

func (r *AddOnAttachmentRepositoryImpl) GetByUserPackageID(ctx context.Context, userPackageID uint) ([]*subscription.AddOnAttachment, error) {
	var attachmentModels []*models.AddOnAttachmentModel

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("user_package_id = ?", userPackageID).
		Order("added_at ASC").
		Find(&attachmentModels).Error; err != nil {
		r.logger.Errorw("failed to get attachments by subscription ID", "subscription_id", userPackageID, "error", err)
		return nil, fmt.Errorf("failed to get attachments: %w", err)
	}

	entities, err := r.mapper.ToEntities(attachmentModels)
	if err != nil {
		r.logger.Errorw("failed to map attachment models to entities", "subscription_id", userPackageID, "error", err)
		return nil, fmt.Errorf("failed to map attachments: %w", err)
	}

	return entities, nil
}

func (r *AddOnAttachmentRepositoryImpl) CountActiveByAddOn(ctx context.Context, userPackageID, addOnID uint) (int64, error) {
	var count int64

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Model(&models.AddOnAttachmentModel{}).
		Where("user_package_id = ? AND add_on_id = ? AND status <> ?",
			userPackageID, addOnID, vo.StatusCancelled.String()).
		Count(&count).Error; err != nil {
		r.logger.Errorw("failed to count active attachments",
			"subscription_id", userPackageID, "add_on_id", addOnID, "error", err)
		return 0, fmt.Errorf("failed to count attachments: %w", err)
	}

	return count, nil
}

func (r *AddOnAttachmentRepositoryImpl) Update(ctx context.Context, attachment *subscription.AddOnAttachment) error {
	model, err := r.mapper.ToModel(attachment)
	if err != nil {
		r.logger.Errorw("failed to map attachment entity to model", "id", attachment.ID(), "error", err)
		return fmt.Errorf("failed to map attachment entity: %w", err)
	}

	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Model(model).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"quantity":             model.Quantity,
			"billing_cycle":        model.BillingCycle,
			"current_amount":       model.CurrentAmount,
			"status_type_id":       model.StatusTypeID,
			"status":               model.Status,
			"custom_configuration": model.CustomConfiguration,
			"version":              model.Version,
			"updated_at":           model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update attachment", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update attachment: %w", result.Error)
	}

	r.logger.Infow("attachment updated successfully", "id", model.ID)
	return nil
}
