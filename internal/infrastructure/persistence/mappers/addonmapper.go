package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"github.com/abrigo-care/abrigo/internal/domain/catalog"
	vo "github.com/abrigo-care/abrigo/internal/domain/catalog/valueobjects"
	"github.com/abrigo-care/abrigo/internal/infrastructure/persistence/models"
)

type AddOnMapper interface {
	ToEntity(model *models.AddOnModel) (*catalog.AddOn, error)
	ToModel(entity *catalog.AddOn) (*models.AddOnModel, error)
	ToEntities(models []*models.AddOnModel) ([]*catalog.AddOn, error)
}

type AddOnMapperImpl struct{}

func NewAddOnMapper() AddOnMapper {
	return &AddOnMapperImpl{}
}

func (m *AddOnMapperImpl) ToEntity(model *models.AddOnModel) (*catalog.AddOn, error) {
	if model == nil {
		return nil, nil
	}

	addOnType := vo.AddOnType(model.AddOnType)
	if !vo.ValidAddOnTypes[addOnType] {
		return nil, fmt.Errorf("invalid add-on type: %s", model.AddOnType)
	}

	configuration, err := unmarshalMap(model.Configuration)
	if err != nil {
		return nil, err
	}
	limitations, err := unmarshalMap(model.Limitations)
	if err != nil {
		return nil, err
	}

	var compatiblePackages []vo.PackageType
	if model.CompatiblePackages != nil {
		var names []string
		if err := json.Unmarshal(model.CompatiblePackages, &names); err != nil {
			return nil, fmt.Errorf("failed to unmarshal compatible packages: %w", err)
		}
		for _, name := range names {
			pt, err := vo.ParsePackageType(name)
			if err != nil {
				return nil, fmt.Errorf("failed to parse compatible package type: %w", err)
			}
			compatiblePackages = append(compatiblePackages, pt)
		}
	}

	entity, err := catalog.ReconstructAddOn(
		model.ID,
		model.Name,
		model.Description,
		addOnType,
		model.PriceMonthly,
		model.PriceYearly,
		configuration,
		limitations,
		compatiblePackages,
		model.MaxQuantity,
		model.IsActive,
		model.Version,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct add-on entity: %w", err)
	}

	return entity, nil
}

func (m *AddOnMapperImpl) ToModel(entity *catalog.AddOn) (*models.AddOnModel, error) {
	if entity == nil {
		return nil, nil
	}

	configuration, err := marshalMap(entity.Configuration())
	if err != nil {
		return nil, err
	}
	limitations, err := marshalMap(entity.Limitations())
	if err != nil {
		return nil, err
	}

	var compatiblePackages datatypes.JSON
	if pts := entity.CompatiblePackages(); len(pts) > 0 {
		names := make([]string, 0, len(pts))
		for _, pt := range pts {
			names = append(names, pt.String())
		}
		data, err := json.Marshal(names)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal compatible packages: %w", err)
		}
		compatiblePackages = data
	}

	return &models.AddOnModel{
		ID:                 entity.ID(),
		Name:               entity.Name(),
		Description:        entity.Description(),
		AddOnType:          entity.AddOnType().String(),
		PriceMonthly:       entity.PriceMonthly(),
		PriceYearly:        entity.PriceYearly(),
		Configuration:      configuration,
		Limitations:        limitations,
		CompatiblePackages: compatiblePackages,
		MaxQuantity:        entity.MaxQuantity(),
		IsActive:           entity.IsActive(),
		Version:            entity.Version(),
		CreatedAt:          entity.CreatedAt(),
		UpdatedAt:          entity.UpdatedAt(),
	}, nil
}

func (m *AddOnMapperImpl) ToEntities(addOnModels []*models.AddOnModel) ([]*catalog.AddOn, error) {
	entities := make([]*catalog.AddOn, 0, len(addOnModels))
	for _, model := range addOnModels {
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
