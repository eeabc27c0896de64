package mappers

import (
	"fmt"

	"github.com/abrigo-care/abrigo/internal/domain/catalog"
	vo "github.com/abrigo-care/abrigo/internal/domain/catalog/valueobjects"
	"github.com/abrigo-care/abrigo/internal/infrastructure/persistence/models"
)

type PackageMapper interface {
	ToEntity(model *models.PackageModel) (*catalog.Package, error)
	ToModel(entity *catalog.Package) (*models.PackageModel, error)
	ToEntities(models []*models.PackageModel) ([]*catalog.Package, error)
}

type PackageMapperImpl struct{}

func NewPackageMapper() PackageMapper {
	return &PackageMapperImpl{}
}

func (m *PackageMapperImpl) ToEntity(model *models.PackageModel) (*catalog.Package, error) {
	if model == nil {
		return nil, nil
	}

	packageType := vo.PackageType(model.PackageType)
	if !vo.ValidPackageTypes[packageType] {
		return nil, fmt.Errorf("invalid package type: %s", model.PackageType)
	}

	var supportLevel *vo.SupportLevel
	if model.SupportLevel != nil && *model.SupportLevel != "" {
		level, err := vo.ParseSupportLevel(*model.SupportLevel)
		if err != nil {
			return nil, fmt.Errorf("failed to parse support level: %w", err)
		}
		supportLevel = &level
	}

	features, err := unmarshalMap(model.Features)
	if err != nil {
		return nil, err
	}
	limitations, err := unmarshalMap(model.Limitations)
	if err != nil {
		return nil, err
	}
	customizableOptions, err := unmarshalMap(model.CustomizableOptions)
	if err != nil {
		return nil, err
	}
	addOnsAvailable, err := unmarshalMap(model.AddOnsAvailable)
	if err != nil {
		return nil, err
	}
	baseConfiguration, err := unmarshalMap(model.BaseConfiguration)
	if err != nil {
		return nil, err
	}

	entity, err := catalog.ReconstructPackage(
		model.ID,
		packageType,
		model.Name,
		model.Description,
		model.PriceMonthly,
		model.PriceYearly,
		model.Currency,
		model.MaxUsers,
		model.MaxDevices,
		model.MaxStorageGB,
		features,
		limitations,
		customizableOptions,
		addOnsAvailable,
		baseConfiguration,
		model.IsCustomizable,
		supportLevel,
		model.ResponseTimeHours,
		model.IsActive,
		model.IsFeatured,
		model.Version,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct package entity: %w", err)
	}

	return entity, nil
}

func (m *PackageMapperImpl) ToModel(entity *catalog.Package) (*models.PackageModel, error) {
	if entity == nil {
		return nil, nil
	}

	features, err := marshalMap(entity.Features())
	if err != nil {
		return nil, err
	}
	limitations, err := marshalMap(entity.Limitations())
	if err != nil {
		return nil, err
	}
	customizableOptions, err := marshalMap(entity.CustomizableOptions())
	if err != nil {
		return nil, err
	}
	addOnsAvailable, err := marshalMap(entity.AddOnsAvailable())
	if err != nil {
		return nil, err
	}
	baseConfiguration, err := marshalMap(entity.BaseConfiguration())
	if err != nil {
		return nil, err
	}

	var supportLevel *string
	if level := entity.SupportLevel(); level != nil {
		s := level.String()
		supportLevel = &s
	}

	return &models.PackageModel{
		ID:                  entity.ID(),
		PackageType:         entity.PackageType().String(),
		Name:                entity.Name(),
		Description:         entity.Description(),
		PriceMonthly:        entity.PriceMonthly(),
		PriceYearly:         entity.PriceYearly(),
		Currency:            entity.Currency(),
		MaxUsers:            entity.MaxUsers(),
		MaxDevices:          entity.MaxDevices(),
		MaxStorageGB:        entity.MaxStorageGB(),
		Features:            features,
		Limitations:         limitations,
		CustomizableOptions: customizableOptions,
		AddOnsAvailable:     addOnsAvailable,
		BaseConfiguration:   baseConfiguration,
		IsCustomizable:      entity.IsCustomizable(),
		SupportLevel:        supportLevel,
		ResponseTimeHours:   entity.ResponseTimeHours(),
		IsActive:            entity.IsActive(),
		IsFeatured:          entity.IsFeatured(),
		Version:             entity.Version(),
		CreatedAt:           entity.CreatedAt(),
		UpdatedAt:           entity.UpdatedAt(),
	}, nil
}

func (m *PackageMapperImpl) ToEntities(packageModels []*models.PackageModel) ([]*catalog.Package, error) {
	entities := make([]*catalog.Package, 0, len(packageModels))
	for _, model := range packageModels {
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
