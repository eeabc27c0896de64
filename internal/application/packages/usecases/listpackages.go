package usecases

import (
	"context"
	"fmt"

	"github.com/abrigo-care/abrigo/internal/domain/catalog"
	catalogvo "github.com/abrigo-care/abrigo/internal/domain/catalog/valueobjects"
	apperrors "github.com/abrigo-care/abrigo/internal/shared/errors"
	"github.com/abrigo-care/abrigo/internal/shared/logger"
)

type ListPackagesCommand struct {
	PackageType string
	IsFeatured  *bool
}

type ListPackagesUseCase struct {
	packageRepo catalog.PackageRepository
	logger      logger.Interface
}

func NewListPackagesUseCase(packageRepo catalog.PackageRepository, logger logger.Interface) *ListPackagesUseCase {
	return &ListPackagesUseCase{packageRepo: packageRepo, logger: logger}
}

// Execute lists active packages ordered by ascending monthly price.
func (uc *ListPackagesUseCase) Execute(ctx context.Context, cmd ListPackagesCommand) ([]*catalog.Package, error) {
	filter := catalog.PackageListFilter{IsFeatured: cmd.IsFeatured}
	if cmd.PackageType != "" {
		packageType, err := catalogvo.ParsePackageType(cmd.PackageType)
		if err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
		filter.PackageType = &packageType
	}

	packages, err := uc.packageRepo.ListActive(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list packages", "error", err)
		return nil, fmt.Errorf("failed to list packages: %w", err)
	}
	return packages, nil
}
