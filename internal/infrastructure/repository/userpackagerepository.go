package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/abrigo-care/abrigo/internal/domain/subscription"
	vo "github.com/abrigo-care/abrigo/internal/domain/subscription/valueobjects"
	"github.com/abrigo-care/abrigo/internal/infrastructure/persistence/mappers"
	"github.com/abrigo-care/abrigo/internal/infrastructure/persistence/models"
	"github.com/abrigo-care/abrigo/internal/shared/constants"
	"github.com/abrigo-care/abrigo/internal/shared/db"
	"github.com/abrigo-care/abrigo/internal/shared/logger"
)

type UserPackageRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.UserPackageMapper
	logger logger.Interface
}

func NewUserPackageRepository(db *gorm.DB, logger logger.Interface) subscription.UserPackageRepository {
	return &UserPackageRepositoryImpl{
		db:     db,
		mapper: mappers.NewUserPackageMapper(),
		logger: logger,
	}
}

func (r *UserPackageRepositoryImpl) Create(ctx context.Context, sub *subscription.UserPackage) error {
	model, err := r.mapper.ToModel(sub)
	if err != nil {
		r.logger.Errorw("failed to map subscription entity to model", "error", err)
		return fmt.Errorf("failed to map subscription entity: %w", err)
	}

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(model).Error; err != nil {
		r.logger.Errorw("failed to create subscription in database", "error", err)
		return fmt.Errorf("failed to create subscription: %w", err)
	}

	if err := sub.SetID(model.ID); err != nil {
		r.logger.Errorw("failed to set subscription ID", "error", err)
		return fmt.Errorf("failed to set subscription ID: %w", err)
	}

	r.logger.Infow("subscription created successfully", "id", model.ID, "user_id", model.UserID, "package_id", model.PackageID)
	return nil
}

func (r *UserPackageRepositoryImpl) GetByID(ctx context.Context, id uint) (*subscription.UserPackage, error) {
	return r.getByID(ctx, id, false)
}

// GetByIDForUpdate locks the subscription row for the duration of the
// surrounding transaction. Attach and referral mutations go through this
// lock so concurrent requests serialize instead of double-applying.
func (r *UserPackageRepositoryImpl) GetByIDForUpdate(ctx context.Context, id uint) (*subscription.UserPackage, error) {
	return r.getByID(ctx, id, true)
}

func (r *UserPackageRepositoryImpl) getByID(ctx context.Context, id uint, forUpdate bool) (*subscription.UserPackage, error) {
	var model models.UserPackageModel

	query := db.GetTxFromContext(ctx, r.db)
	if forUpdate {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	if err := query.First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get subscription by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}

	entity, err := r.mapper.ToEntity(&model)
	if err != nil {
		r.logger.Errorw("failed to map subscription model to entity", "id", id, "error", err)
		return nil, fmt.Errorf("failed to map subscription: %w", err)
	}

	return entity, nil
}

func (r *UserPackageRepositoryImpl) GetByUserID(ctx context.Context, userID uint, status *vo.SubscriptionStatus) ([]*subscription.UserPackage, error) {
	var subModels []*models.UserPackageModel

	query := db.GetTxFromContext(ctx, r.db).Where("user_id = ?", userID)
	if status != nil {
		query = query.Where("status = ?", status.String())
	}

	if err := query.Order("created_at DESC").Find(&subModels).Error; err != nil {
		r.logger.Errorw("failed to get subscriptions by user ID", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to get subscriptions: %w", err)
	}

	entities, err := r.mapper.ToEntities(subModels)
	if err != nil {
		r.logger.Errorw("failed to map subscription models to entities", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to map subscriptions: %w", err)
	}

	return entities, nil
}

func (r *UserPackageRepositoryImpl) Update(ctx context.Context, sub *subscription.UserPackage) error {
	model, err := r.mapper.ToModel(sub)
	if err != nil {
		r.logger.Errorw("failed to map subscription entity to model", "id", sub.ID(), "error", err)
		return fmt.Errorf("failed to map subscription entity: %w", err)
	}

	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Model(model).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"start_date":                  model.StartDate,
			"end_date":                    model.EndDate,
			"auto_renew":                  model.AutoRenew,
			"current_amount":              model.CurrentAmount,
			"next_billing_date":           model.NextBillingDate,
			"status_type_id":              model.StatusTypeID,
			"status":                      model.Status,
			"custom_configuration":        model.CustomConfiguration,
			"selected_features":           model.SelectedFeatures,
			"custom_limits":               model.CustomLimits,
			"legal_capacity_verified":     model.LegalCapacityVerified,
			"legal_representative_id":     model.LegalRepresentativeID,
			"verification_date":           model.VerificationDate,
			"referral_code_used":          model.ReferralCodeUsed,
			"referral_commission_applied": model.ReferralCommissionApplied,
			"version":                     model.Version,
			"updated_at":                  model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update subscription", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update subscription: %w", result.Error)
	}

	r.logger.Infow("subscription updated successfully", "id", model.ID)
	return nil
}

func (r *UserPackageRepositoryImpl) CountByStatus(ctx context.Context, status vo.SubscriptionStatus) (int64, error) {
	var count int64

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Model(&models.UserPackageModel{}).
		Where("status = ?", status.String()).
		Count(&count).Error; err != nil {
		r.logger.Errorw("failed to count subscriptions by status", "status", status, "error", err)
		return 0, fmt.Errorf("failed to count subscriptions: %w", err)
	}

	return count, nil
}

func (r *UserPackageRepositoryImpl) SumAmountByStatus(ctx context.Context, status vo.SubscriptionStatus) (uint64, error) {
	var total *uint64

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Model(&models.UserPackageModel{}).
		Select("SUM(current_amount)").
		Where("status = ?", status.String()).
		Scan(&total).Error; err != nil {
		r.logger.Errorw("failed to sum subscription amounts", "status", status, "error", err)
		return 0, fmt.Errorf("failed to sum subscription amounts: %w", err)
	}

	if total == nil {
		return 0, nil
	}
	return *total, nil
}

func (r *UserPackageRepositoryImpl) TypeDistributionByStatus(ctx context.Context, status vo.SubscriptionStatus) ([]subscription.TypeDistribution, error) {
	var rows []subscription.TypeDistribution

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Model(&models.UserPackageModel{}).
		Select("packages.package_type AS package_type, COUNT(*) AS count").
		Joins(fmt.Sprintf("JOIN %s ON %s.id = %s.package_id",
			constants.TablePackages, constants.TablePackages, constants.TableUserPackages)).
		Where(fmt.Sprintf("%s.status = ?", constants.TableUserPackages), status.String()).
		Group("packages.package_type").
		Scan(&rows).Error; err != nil {
		r.logger.Errorw("failed to compute package type distribution", "status", status, "error", err)
		return nil, fmt.Errorf("failed to compute type distribution: %w", err)
	}

	return rows, nil
}
