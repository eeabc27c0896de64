package usecases

import (
	"context"
	"fmt"

	"github.com/abrigo-care/abrigo/internal/domain/catalog"
	catalogvo "github.com/abrigo-care/abrigo/internal/domain/catalog/valueobjects"
	apperrors "github.com/abrigo-care/abrigo/internal/shared/errors"
	"github.com/abrigo-care/abrigo/internal/shared/logger"
)

// PackagePatch is a typed partial update: nil fields are left unchanged.
type PackagePatch struct {
	Name                *string
	Description         *string
	PriceMonthly        *uint64
	PriceYearly         *uint64
	MaxUsers            *int
	MaxDevices          *int
	MaxStorageGB        *int
	Features            *map[string]interface{}
	Limitations         *map[string]interface{}
	CustomizableOptions *map[string]interface{}
	AddOnsAvailable     *map[string]interface{}
	BaseConfiguration   *map[string]interface{}
	IsCustomizable      *bool
	SupportLevel        *string
	ResponseTimeHours   *int
	IsFeatured          *bool
	IsActive            *bool
}

type UpdatePackageCommand struct {
	PackageID uint
	Patch     PackagePatch
}

type UpdatePackageUseCase struct {
	packageRepo catalog.PackageRepository
	logger      logger.Interface
}

func NewUpdatePackageUseCase(packageRepo catalog.PackageRepository, logger logger.Interface) *UpdatePackageUseCase {
	return &UpdatePackageUseCase{packageRepo: packageRepo, logger: logger}
}

func (uc *UpdatePackageUseCase) Execute(ctx context.Context, cmd UpdatePackageCommand) (*catalog.Package, error) {
	pkg, err := uc.packageRepo.GetByID(ctx, cmd.PackageID)
	if err != nil {
		uc.logger.Errorw("failed to load package for update", "error", err, "package_id", cmd.PackageID)
		return nil, fmt.Errorf("failed to load package: %w", err)
	}
	if pkg == nil {
		return nil, apperrors.NewNotFoundError("package not found")
	}

	patch := cmd.Patch

	if patch.Name != nil {
		if err := pkg.UpdateName(*patch.Name); err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
	}
	if patch.Description != nil {
		pkg.UpdateDescription(*patch.Description)
	}
	if patch.PriceMonthly != nil || patch.PriceYearly != nil {
		monthly := pkg.PriceMonthly()
		if patch.PriceMonthly != nil {
			monthly = *patch.PriceMonthly
		}
		yearly := pkg.PriceYearly()
		if patch.PriceYearly != nil {
			yearly = patch.PriceYearly
		}
		if err := pkg.UpdatePricing(monthly, yearly); err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
	}
	if patch.MaxUsers != nil || patch.MaxDevices != nil || patch.MaxStorageGB != nil {
		maxUsers := pkg.MaxUsers()
		if patch.MaxUsers != nil {
			maxUsers = patch.MaxUsers
		}
		maxDevices := pkg.MaxDevices()
		if patch.MaxDevices != nil {
			maxDevices = patch.MaxDevices
		}
		maxStorage := pkg.MaxStorageGB()
		if patch.MaxStorageGB != nil {
			maxStorage = patch.MaxStorageGB
		}
		if err := pkg.UpdateLimits(maxUsers, maxDevices, maxStorage); err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
	}
	if patch.Features != nil {
		pkg.UpdateFeatures(*patch.Features)
	}
	if patch.Limitations != nil {
		pkg.UpdateLimitations(*patch.Limitations)
	}
	if patch.CustomizableOptions != nil || patch.AddOnsAvailable != nil ||
		patch.BaseConfiguration != nil || patch.IsCustomizable != nil {
		options := pkg.CustomizableOptions()
		if patch.CustomizableOptions != nil {
			options = *patch.CustomizableOptions
		}
		addOns := pkg.AddOnsAvailable()
		if patch.AddOnsAvailable != nil {
			addOns = *patch.AddOnsAvailable
		}
		baseConfig := pkg.BaseConfiguration()
		if patch.BaseConfiguration != nil {
			baseConfig = *patch.BaseConfiguration
		}
		customizable := pkg.IsCustomizable()
		if patch.IsCustomizable != nil {
			customizable = *patch.IsCustomizable
		}
		pkg.UpdateCustomization(options, addOns, baseConfig, customizable)
	}
	if patch.SupportLevel != nil || patch.ResponseTimeHours != nil {
		level := pkg.SupportLevel()
		if patch.SupportLevel != nil {
			parsed, err := catalogvo.ParseSupportLevel(*patch.SupportLevel)
			if err != nil {
				return nil, apperrors.NewValidationError(err.Error())
			}
			level = &parsed
		}
		responseTime := pkg.ResponseTimeHours()
		if patch.ResponseTimeHours != nil {
			responseTime = patch.ResponseTimeHours
		}
		if err := pkg.UpdateSupport(level, responseTime); err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
	}
	if patch.IsFeatured != nil {
		pkg.SetFeatured(*patch.IsFeatured)
	}
	if patch.IsActive != nil {
		if *patch.IsActive {
			pkg.Activate()
		} else {
			pkg.Deactivate()
		}
	}

	if err := uc.packageRepo.Update(ctx, pkg); err != nil {
		uc.logger.Errorw("failed to persist package update", "error", err, "package_id", cmd.PackageID)
		return nil, fmt.Errorf("failed to update package: %w", err)
	}

	uc.logger.Infow("package updated", "package_id", cmd.PackageID)
	return pkg, nil
}
