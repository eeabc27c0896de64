package mappers

import (
	"fmt"

	"github.com/abrigo-care/abrigo/internal/domain/subscription"
	vo "github.com/abrigo-care/abrigo/internal/domain/subscription/valueobjects"
	"github.com/abrigo-care/abrigo/internal/infrastructure/persistence/models"
)

type AddOnAttachmentMapper interface {
	ToEntity(model *models.AddOnAttachmentModel) (*subscription.AddOnAttachment, error)
	ToModel(entity *subscription.AddOnAttachment) (*models.AddOnAttachmentModel, error)
	ToEntities(models []*models.AddOnAttachmentModel) ([]*subscription.AddOnAttachment, error)
}

type AddOnAttachmentMapperImpl struct{}

func NewAddOnAttachmentMapper() AddOnAttachmentMapper {
	return &AddOnAttachmentMapperImpl{}
}

func (m *AddOnAttachmentMapperImpl) ToEntity(model *models.AddOnAttachmentModel) (*subscription.AddOnAttachment, error) {
	if model == nil {
		return nil, nil
	}

	status := vo.SubscriptionStatus(model.Status)
	if !vo.ValidStatuses[status] {
		return nil, fmt.Errorf("invalid attachment status: %s", model.Status)
	}
	cycle, err := vo.ParseBillingCycle(model.BillingCycle)
	if err != nil {
		return nil, fmt.Errorf("failed to parse billing cycle: %w", err)
	}

	customConfiguration, err := unmarshalMap(model.CustomConfiguration)
	if err != nil {
		return nil, err
	}

	entity, err := subscription.ReconstructAddOnAttachment(
		model.ID,
		model.UserPackageID,
		model.AddOnID,
		model.Quantity,
		cycle,
		model.CurrentAmount,
		status,
		model.StatusTypeID,
		customConfiguration,
		model.AddedAt,
		model.Version,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct attachment entity: %w", err)
	}

	return entity, nil
}

func (m *AddOnAttachmentMapperImpl) ToModel(entity *subscription.AddOnAttachment) (*models.AddOnAttachmentModel, error) {
	if entity == nil {
		return nil, nil
	}

	customConfiguration, err := marshalMap(entity.CustomConfiguration())
	if err != nil {
		return nil, err
	}

	return &models.AddOnAttachmentModel{
		ID:                  entity.ID(),
		UserPackageID:       entity.UserPackageID(),
		AddOnID:             entity.AddOnID(),
		Quantity:            entity.Quantity(),
		BillingCycle:        entity.BillingCycle().String(),
		CurrentAmount:       entity.CurrentAmount(),
		StatusTypeID:        entity.StatusTypeID(),
		Status:              entity.Status().String(),
		CustomConfiguration: customConfiguration,
		AddedAt:             entity.AddedAt(),
		Version:             entity.Version(),
		CreatedAt:           entity.CreatedAt(),
		UpdatedAt:           entity.UpdatedAt(),
	}, nil
}

func (m *AddOnAttachmentMapperImpl) ToEntities(attachmentModels []*models.AddOnAttachmentModel) ([]*subscription.AddOnAttachment, error) {
	entities := make([]*subscription.AddOnAttachment, 0, len(attachmentModels))
	for _, model := range attachmentModels {
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
