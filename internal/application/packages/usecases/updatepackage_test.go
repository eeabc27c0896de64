package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abrigo-care/abrigo/internal/domain/catalog"
	catalogvo "github.com/abrigo-care/abrigo/internal/domain/catalog/valueobjects"
	apperrors "github.com/abrigo-care/abrigo/internal/shared/errors"
)

func ptr[T any](v T) *T {
	return &v
}

func TestUpdatePackageUseCase_Execute_PartialPatch(t *testing.T) {
	pkg := newActivePackage(t, 10, catalogvo.PackageTypeIndividual, 500000, nil)

	var updated *catalog.Package
	pkgRepo := &mockPackageRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*catalog.Package, error) {
			return pkg, nil
		},
		UpdateFunc: func(ctx context.Context, p *catalog.Package) error {
			updated = p
			return nil
		},
	}

	useCase := NewUpdatePackageUseCase(pkgRepo, noopLogger{})

	result, err := useCase.Execute(context.Background(), UpdatePackageCommand{
		PackageID: 10,
		Patch: PackagePatch{
			Name:         ptr("Plan Renovado"),
			PriceMonthly: ptr(uint64(550000)),
			IsFeatured:   ptr(true),
		},
	})

	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "Plan Renovado", result.Name())
	assert.Equal(t, uint64(550000), result.PriceMonthly())
	assert.True(t, result.IsFeatured())
	// Untouched fields keep their values.
	assert.Equal(t, "care plan", result.Description())
	assert.True(t, result.IsActive())
}

func TestUpdatePackageUseCase_Execute_DeactivateViaPatch(t *testing.T) {
	pkg := newActivePackage(t, 10, catalogvo.PackageTypeIndividual, 500000, nil)
	pkgRepo := &mockPackageRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*catalog.Package, error) {
			return pkg, nil
		},
	}

	useCase := NewUpdatePackageUseCase(pkgRepo, noopLogger{})

	result, err := useCase.Execute(context.Background(), UpdatePackageCommand{
		PackageID: 10,
		Patch:     PackagePatch{IsActive: ptr(false)},
	})

	require.NoError(t, err)
	assert.False(t, result.IsActive())
}

func TestUpdatePackageUseCase_Execute_NotFound(t *testing.T) {
	useCase := NewUpdatePackageUseCase(&mockPackageRepository{}, noopLogger{})

	result, err := useCase.Execute(context.Background(), UpdatePackageCommand{
		PackageID: 99,
		Patch:     PackagePatch{Name: ptr("x")},
	})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestUpdatePackageUseCase_Execute_ValidationErrors(t *testing.T) {
	tests := []struct {
		name  string
		patch PackagePatch
	}{
		{
			name:  "empty name",
			patch: PackagePatch{Name: ptr("")},
		},
		{
			name:  "zero monthly price",
			patch: PackagePatch{PriceMonthly: ptr(uint64(0))},
		},
		{
			name:  "non-positive limit",
			patch: PackagePatch{MaxUsers: ptr(0)},
		},
		{
			name:  "invalid support level",
			patch: PackagePatch{SupportLevel: ptr("platinum")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pkg := newActivePackage(t, 10, catalogvo.PackageTypeIndividual, 500000, nil)
			pkgRepo := &mockPackageRepository{
				GetByIDFunc: func(ctx context.Context, id uint) (*catalog.Package, error) {
					return pkg, nil
				},
			}

			useCase := NewUpdatePackageUseCase(pkgRepo, noopLogger{})

			result, err := useCase.Execute(context.Background(), UpdatePackageCommand{
				PackageID: 10,
				Patch:     tt.patch,
			})

			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, apperrors.IsValidation(err))
		})
	}
}

func TestGetPackageUseCase_Execute(t *testing.T) {
	inactive := newActivePackage(t, 10, catalogvo.PackageTypeIndividual, 500000, nil)
	inactive.Deactivate()
	pkgRepo := &mockPackageRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*catalog.Package, error) {
			return inactive, nil
		},
	}

	useCase := NewGetPackageUseCase(pkgRepo, noopLogger{})

	// Deactivated packages stay readable.
	result, err := useCase.Execute(context.Background(), 10)

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.False(t, result.IsActive())
}

func TestGetPackageUseCase_Execute_NotFound(t *testing.T) {
	useCase := NewGetPackageUseCase(&mockPackageRepository{}, noopLogger{})

	result, err := useCase.Execute(context.Background(), 99)

	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestDeletePackageUseCase_Execute(t *testing.T) {
	pkg := newActivePackage(t, 10, catalogvo.PackageTypeIndividual, 500000, nil)
	var updated *catalog.Package
	pkgRepo := &mockPackageRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*catalog.Package, error) {
			return pkg, nil
		},
		UpdateFunc: func(ctx context.Context, p *catalog.Package) error {
			updated = p
			return nil
		},
	}

	useCase := NewDeletePackageUseCase(pkgRepo, noopLogger{})

	err := useCase.Execute(context.Background(), 10)

	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.False(t, updated.IsActive())
}

func TestDeletePackageUseCase_Execute_NotFound(t *testing.T) {
	useCase := NewDeletePackageUseCase(&mockPackageRepository{}, noopLogger{})

	err := useCase.Execute(context.Background(), 99)

	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestListPackagesUseCase_Execute(t *testing.T) {
	pkgRepo := &mockPackageRepository{
		ListActiveFunc: func(ctx context.Context, filter catalog.PackageListFilter) ([]*catalog.Package, error) {
			require.NotNil(t, filter.PackageType)
			assert.Equal(t, catalogvo.PackageTypeProfessional, *filter.PackageType)
			require.NotNil(t, filter.IsFeatured)
			assert.True(t, *filter.IsFeatured)
			return []*catalog.Package{newActivePackage(t, 1, catalogvo.PackageTypeProfessional, 400000, nil)}, nil
		},
	}

	useCase := NewListPackagesUseCase(pkgRepo, noopLogger{})

	packages, err := useCase.Execute(context.Background(), ListPackagesCommand{
		PackageType: "professional",
		IsFeatured:  ptr(true),
	})

	require.NoError(t, err)
	require.Len(t, packages, 1)
}

func TestListPackagesUseCase_Execute_InvalidType(t *testing.T) {
	useCase := NewListPackagesUseCase(&mockPackageRepository{}, noopLogger{})

	packages, err := useCase.Execute(context.Background(), ListPackagesCommand{PackageType: "corporate"})

	require.Error(t, err)
	assert.Nil(t, packages)
	assert.True(t, apperrors.IsValidation(err))
}
