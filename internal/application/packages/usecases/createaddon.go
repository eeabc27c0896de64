package usecases

import (
	"context"
	"fmt"

	"github.com/abrigo-care/abrigo/internal/domain/catalog"
	catalogvo "github.com/abrigo-care/abrigo/internal/domain/catalog/valueobjects"
	apperrors "github.com/abrigo-care/abrigo/internal/shared/errors"
	"github.com/abrigo-care/abrigo/internal/shared/logger"
)

type CreateAddOnCommand struct {
	Name               string
	Description        string
	AddOnType          string
	PriceMonthly       uint64
	PriceYearly        *uint64
	CompatiblePackages []string
	MaxQuantity        *int
}

type CreateAddOnUseCase struct {
	addOnRepo catalog.AddOnRepository
	logger    logger.Interface
}

func NewCreateAddOnUseCase(addOnRepo catalog.AddOnRepository, logger logger.Interface) *CreateAddOnUseCase {
	return &CreateAddOnUseCase{addOnRepo: addOnRepo, logger: logger}
}

func (uc *CreateAddOnUseCase) Execute(ctx context.Context, cmd CreateAddOnCommand) (*catalog.AddOn, error) {
	addOnType, err := catalogvo.ParseAddOnType(cmd.AddOnType)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	compatible := make([]catalogvo.PackageType, 0, len(cmd.CompatiblePackages))
	for _, raw := range cmd.CompatiblePackages {
		packageType, err := catalogvo.ParsePackageType(raw)
		if err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
		compatible = append(compatible, packageType)
	}

	addOn, err := catalog.NewAddOn(cmd.Name, cmd.Description, addOnType,
		cmd.PriceMonthly, cmd.PriceYearly, compatible, cmd.MaxQuantity)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := uc.addOnRepo.Create(ctx, addOn); err != nil {
		uc.logger.Errorw("failed to create add-on", "error", err, "name", cmd.Name)
		return nil, fmt.Errorf("failed to create add-on: %w", err)
	}

	uc.logger.Infow("add-on created", "add_on_id", addOn.ID(), "type", addOnType, "name", cmd.Name)
	return addOn, nil
}

type ListAddOnsUseCase struct {
	addOnRepo catalog.AddOnRepository
	logger    logger.Interface
}

func NewListAddOnsUseCase(addOnRepo catalog.AddOnRepository, logger logger.Interface) *ListAddOnsUseCase {
	return &ListAddOnsUseCase{addOnRepo: addOnRepo, logger: logger}
}

func (uc *ListAddOnsUseCase) Execute(ctx context.Context) ([]*catalog.AddOn, error) {
	addOns, err := uc.addOnRepo.ListActive(ctx)
	if err != nil {
		uc.logger.Errorw("failed to list add-ons", "error", err)
		return nil, fmt.Errorf("failed to list add-ons: %w", err)
	}
	return addOns, nil
}
