package mappers

import (
	"fmt"

	"github.com/abrigo-care/abrigo/internal/domain/subscription"
	vo "github.com/abrigo-care/abrigo/internal/domain/subscription/valueobjects"
	"github.com/abrigo-care/abrigo/internal/infrastructure/persistence/models"
)

type UserPackageMapper interface {
	ToEntity(model *models.UserPackageModel) (*subscription.UserPackage, error)
	ToModel(entity *subscription.UserPackage) (*models.UserPackageModel, error)
	ToEntities(models []*models.UserPackageModel) ([]*subscription.UserPackage, error)
}

type UserPackageMapperImpl struct{}

func NewUserPackageMapper() UserPackageMapper {
	return &UserPackageMapperImpl{}
}

func (m *UserPackageMapperImpl) ToEntity(model *models.UserPackageModel) (*subscription.UserPackage, error) {
	if model == nil {
		return nil, nil
	}

	status := vo.SubscriptionStatus(model.Status)
	if !vo.ValidStatuses[status] {
		return nil, fmt.Errorf("invalid subscription status: %s", model.Status)
	}
	cycle, err := vo.ParseBillingCycle(model.BillingCycle)
	if err != nil {
		return nil, fmt.Errorf("failed to parse billing cycle: %w", err)
	}

	customConfiguration, err := unmarshalMap(model.CustomConfiguration)
	if err != nil {
		return nil, err
	}
	selectedFeatures, err := unmarshalMap(model.SelectedFeatures)
	if err != nil {
		return nil, err
	}
	customLimits, err := unmarshalMap(model.CustomLimits)
	if err != nil {
		return nil, err
	}

	entity, err := subscription.ReconstructUserPackage(subscription.ReconstructUserPackageParams{
		ID:                        model.ID,
		UserID:                    model.UserID,
		PackageID:                 model.PackageID,
		StartDate:                 model.StartDate,
		EndDate:                   model.EndDate,
		AutoRenew:                 model.AutoRenew,
		BillingCycle:              cycle,
		CurrentAmount:             model.CurrentAmount,
		NextBillingDate:           model.NextBillingDate,
		Status:                    status,
		StatusTypeID:              model.StatusTypeID,
		CustomConfiguration:       customConfiguration,
		SelectedFeatures:          selectedFeatures,
		CustomLimits:              customLimits,
		LegalCapacityVerified:     model.LegalCapacityVerified,
		LegalRepresentativeID:     model.LegalRepresentativeID,
		VerificationDate:          model.VerificationDate,
		ReferralCodeUsed:          model.ReferralCodeUsed,
		ReferralCommissionApplied: model.ReferralCommissionApplied,
		Version:                   model.Version,
		CreatedAt:                 model.CreatedAt,
		UpdatedAt:                 model.UpdatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct subscription entity: %w", err)
	}

	return entity, nil
}

func (m *UserPackageMapperImpl) ToModel(entity *subscription.UserPackage) (*models.UserPackageModel, error) {
	if entity == nil {
		return nil, nil
	}

	customConfiguration, err := marshalMap(entity.CustomConfiguration())
	if err != nil {
		return nil, err
	}
	selectedFeatures, err := marshalMap(entity.SelectedFeatures())
	if err != nil {
		return nil, err
	}
	customLimits, err := marshalMap(entity.CustomLimits())
	if err != nil {
		return nil, err
	}

	return &models.UserPackageModel{
		ID:                        entity.ID(),
		UserID:                    entity.UserID(),
		PackageID:                 entity.PackageID(),
		StartDate:                 entity.StartDate(),
		EndDate:                   entity.EndDate(),
		AutoRenew:                 entity.AutoRenew(),
		BillingCycle:              entity.BillingCycle().String(),
		CurrentAmount:             entity.CurrentAmount(),
		NextBillingDate:           entity.NextBillingDate(),
		StatusTypeID:              entity.StatusTypeID(),
		Status:                    entity.Status().String(),
		CustomConfiguration:       customConfiguration,
		SelectedFeatures:          selectedFeatures,
		CustomLimits:              customLimits,
		LegalCapacityVerified:     entity.LegalCapacityVerified(),
		LegalRepresentativeID:     entity.LegalRepresentativeID(),
		VerificationDate:          entity.VerificationDate(),
		ReferralCodeUsed:          entity.ReferralCodeUsed(),
		ReferralCommissionApplied: entity.ReferralCommissionApplied(),
		Version:                   entity.Version(),
		CreatedAt:                 entity.CreatedAt(),
		UpdatedAt:                 entity.UpdatedAt(),
	}, nil
}

func (m *UserPackageMapperImpl) ToEntities(userPackageModels []*models.UserPackageModel) ([]*subscription.UserPackage, error) {
	entities := make([]*subscription.UserPackage, 0, len(userPackageModels))
	for _, model := range userPackageModels {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, err
		}
		if entity != nil {
			entities = append(entities, entity)
		}
	}
	return entities, nil
}
