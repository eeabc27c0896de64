package usecases

import (
	"context"
	"fmt"

	"github.com/abrigo-care/abrigo/internal/domain/catalog"
	apperrors "github.com/abrigo-care/abrigo/internal/shared/errors"
	"github.com/abrigo-care/abrigo/internal/shared/logger"
)

type GetPackageUseCase struct {
	packageRepo catalog.PackageRepository
	logger      logger.Interface
}

func NewGetPackageUseCase(packageRepo catalog.PackageRepository, logger logger.Interface) *GetPackageUseCase {
	return &GetPackageUseCase{packageRepo: packageRepo, logger: logger}
}

// Execute returns the package regardless of its active flag: deactivated
// packages stay readable because subscriptions reference them.
func (uc *GetPackageUseCase) Execute(ctx context.Context, packageID uint) (*catalog.Package, error) {
	pkg, err := uc.packageRepo.GetByID(ctx, packageID)
	if err != nil {
		uc.logger.Errorw("failed to load package", "error", err, "package_id", packageID)
		return nil, fmt.Errorf("failed to load package: %w", err)
	}
	if pkg == nil {
		return nil, apperrors.NewNotFoundError("package not found")
	}
	return pkg, nil
}
