package usecases

import (
	"context"
	"fmt"

	"github.com/abrigo-care/abrigo/internal/domain/catalog"
	apperrors "github.com/abrigo-care/abrigo/internal/shared/errors"
	"github.com/abrigo-care/abrigo/internal/shared/logger"
)

type DeletePackageUseCase struct {
	packageRepo catalog.PackageRepository
	logger      logger.Interface
}

func NewDeletePackageUseCase(packageRepo catalog.PackageRepository, logger logger.Interface) *DeletePackageUseCase {
	return &DeletePackageUseCase{packageRepo: packageRepo, logger: logger}
}

// Execute soft-deactivates the package. The row is never removed while
// subscriptions may reference it.
func (uc *DeletePackageUseCase) Execute(ctx context.Context, packageID uint) error {
	pkg, err := uc.packageRepo.GetByID(ctx, packageID)
	if err != nil {
		uc.logger.Errorw("failed to load package for delete", "error", err, "package_id", packageID)
		return fmt.Errorf("failed to load package: %w", err)
	}
	if pkg == nil {
		return apperrors.NewNotFoundError("package not found")
	}

	pkg.Deactivate()

	if err := uc.packageRepo.Update(ctx, pkg); err != nil {
		uc.logger.Errorw("failed to deactivate package", "error", err, "package_id", packageID)
		return fmt.Errorf("failed to deactivate package: %w", err)
	}

	uc.logger.Infow("package deactivated", "package_id", packageID)
	return nil
}
