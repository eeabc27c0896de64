package usecases

import (
	"context"
	"fmt"

	"github.com/abrigo-care/abrigo/internal/domain/catalog"
	catalogvo "github.com/abrigo-care/abrigo/internal/domain/catalog/valueobjects"
	apperrors "github.com/abrigo-care/abrigo/internal/shared/errors"
	"github.com/abrigo-care/abrigo/internal/shared/logger"
)

type CreatePackageCommand struct {
	PackageType         string
	Name                string
	Description         string
	PriceMonthly        uint64
	PriceYearly         *uint64
	Currency            string
	MaxUsers            *int
	MaxDevices          *int
	MaxStorageGB        *int
	Features            map[string]interface{}
	Limitations         map[string]interface{}
	CustomizableOptions map[string]interface{}
	AddOnsAvailable     map[string]interface{}
	BaseConfiguration   map[string]interface{}
	IsCustomizable      *bool
	SupportLevel        string
	ResponseTimeHours   *int
	IsFeatured          bool
}

type CreatePackageUseCase struct {
	packageRepo catalog.PackageRepository
	logger      logger.Interface
}

func NewCreatePackageUseCase(packageRepo catalog.PackageRepository, logger logger.Interface) *CreatePackageUseCase {
	return &CreatePackageUseCase{packageRepo: packageRepo, logger: logger}
}

func (uc *CreatePackageUseCase) Execute(ctx context.Context, cmd CreatePackageCommand) (*catalog.Package, error) {
	packageType, err := catalogvo.ParsePackageType(cmd.PackageType)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	if cmd.PriceMonthly == 0 {
		return nil, apperrors.NewValidationError("monthly price is required")
	}

	pkg, err := catalog.NewPackage(packageType, cmd.Name, cmd.Description, cmd.PriceMonthly, cmd.PriceYearly, cmd.Currency)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := pkg.UpdateLimits(cmd.MaxUsers, cmd.MaxDevices, cmd.MaxStorageGB); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	pkg.UpdateFeatures(cmd.Features)
	pkg.UpdateLimitations(cmd.Limitations)

	customizable := true
	if cmd.IsCustomizable != nil {
		customizable = *cmd.IsCustomizable
	}
	pkg.UpdateCustomization(cmd.CustomizableOptions, cmd.AddOnsAvailable, cmd.BaseConfiguration, customizable)

	if cmd.SupportLevel != "" {
		level, err := catalogvo.ParseSupportLevel(cmd.SupportLevel)
		if err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
		if err := pkg.UpdateSupport(&level, cmd.ResponseTimeHours); err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
	}
	pkg.SetFeatured(cmd.IsFeatured)

	if err := uc.packageRepo.Create(ctx, pkg); err != nil {
		uc.logger.Errorw("failed to create package", "error", err, "name", cmd.Name)
		return nil, fmt.Errorf("failed to create package: %w", err)
	}

	uc.logger.Infow("package created", "package_id", pkg.ID(), "type", packageType, "name", cmd.Name)
	return pkg, nil
}
