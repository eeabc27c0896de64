package usecases

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abrigo-care/abrigo/internal/domain/catalog"
	catalogvo "github.com/abrigo-care/abrigo/internal/domain/catalog/valueobjects"
	apperrors "github.com/abrigo-care/abrigo/internal/shared/errors"
)

func TestCreatePackageUseCase_Execute_Success(t *testing.T) {
	yearly := uint64(5000000)
	maxUsers := 50
	responseTime := 4

	var created *catalog.Package
	pkgRepo := &mockPackageRepository{
		CreateFunc: func(ctx context.Context, pkg *catalog.Package) error {
			created = pkg
			return pkg.SetID(10)
		},
	}

	useCase := NewCreatePackageUseCase(pkgRepo, noopLogger{})

	result, err := useCase.Execute(context.Background(), CreatePackageCommand{
		PackageType:       "institutional",
		Name:              "Plan Geriátrico",
		Description:       "full institutional care",
		PriceMonthly:      500000,
		PriceYearly:       &yearly,
		MaxUsers:          &maxUsers,
		Features:          map[string]interface{}{"features": []interface{}{"monitoring"}},
		SupportLevel:      "premium",
		ResponseTimeHours: &responseTime,
		IsFeatured:        true,
	})

	require.NoError(t, err)
	require.NotNil(t, result)
	require.NotNil(t, created)
	assert.Equal(t, uint(10), result.ID())
	assert.Equal(t, catalogvo.PackageTypeInstitutional, created.PackageType())
	assert.Equal(t, "Plan Geriátrico", created.Name())
	assert.Equal(t, uint64(500000), created.PriceMonthly())
	require.NotNil(t, created.PriceYearly())
	assert.Equal(t, yearly, *created.PriceYearly())
	assert.Equal(t, "ARS", created.Currency())
	require.NotNil(t, created.MaxUsers())
	assert.Equal(t, 50, *created.MaxUsers())
	require.NotNil(t, created.SupportLevel())
	assert.Equal(t, catalogvo.SupportLevelPremium, *created.SupportLevel())
	assert.True(t, created.IsFeatured())
	assert.True(t, created.IsActive())
	assert.True(t, created.IsCustomizable())
}

func TestCreatePackageUseCase_Execute_ValidationErrors(t *testing.T) {
	maxUsers := -1
	tests := []struct {
		name    string
		command CreatePackageCommand
	}{
		{
			name: "invalid package type",
			command: CreatePackageCommand{
				PackageType:  "enterprise",
				Name:         "Plan",
				PriceMonthly: 500000,
			},
		},
		{
			name: "missing monthly price",
			command: CreatePackageCommand{
				PackageType: "individual",
				Name:        "Plan",
			},
		},
		{
			name: "empty name",
			command: CreatePackageCommand{
				PackageType:  "individual",
				PriceMonthly: 500000,
			},
		},
		{
			name: "invalid currency",
			command: CreatePackageCommand{
				PackageType:  "individual",
				Name:         "Plan",
				PriceMonthly: 500000,
				Currency:     "USD",
			},
		},
		{
			name: "non-positive limit",
			command: CreatePackageCommand{
				PackageType:  "individual",
				Name:         "Plan",
				PriceMonthly: 500000,
				MaxUsers:     &maxUsers,
			},
		},
		{
			name: "invalid support level",
			command: CreatePackageCommand{
				PackageType:  "individual",
				Name:         "Plan",
				PriceMonthly: 500000,
				SupportLevel: "platinum",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			createCalled := false
			pkgRepo := &mockPackageRepository{
				CreateFunc: func(ctx context.Context, pkg *catalog.Package) error {
					createCalled = true
					return nil
				},
			}

			useCase := NewCreatePackageUseCase(pkgRepo, noopLogger{})

			result, err := useCase.Execute(context.Background(), tt.command)

			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, apperrors.IsValidation(err))
			assert.False(t, createCalled)
		})
	}
}

func TestCreatePackageUseCase_Execute_RepositoryError(t *testing.T) {
	pkgRepo := &mockPackageRepository{
		CreateFunc: func(ctx context.Context, pkg *catalog.Package) error {
			return errors.New("duplicate entry")
		},
	}

	useCase := NewCreatePackageUseCase(pkgRepo, noopLogger{})

	result, err := useCase.Execute(context.Background(), CreatePackageCommand{
		PackageType:  "individual",
		Name:         "Plan",
		PriceMonthly: 500000,
	})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "duplicate entry")
}

func TestCreateAddOnUseCase_Execute(t *testing.T) {
	maxQuantity := 3

	var created *catalog.AddOn
	addOnRepo := &mockAddOnRepository{
		CreateFunc: func(ctx context.Context, addOn *catalog.AddOn) error {
			created = addOn
			return addOn.SetID(5)
		},
	}

	useCase := NewCreateAddOnUseCase(addOnRepo, noopLogger{})

	result, err := useCase.Execute(context.Background(), CreateAddOnCommand{
		Name:               "Telemedicina",
		Description:        "video consultations",
		AddOnType:          "features",
		PriceMonthly:       80000,
		CompatiblePackages: []string{"individual", "professional"},
		MaxQuantity:        &maxQuantity,
	})

	require.NoError(t, err)
	require.NotNil(t, result)
	require.NotNil(t, created)
	assert.Equal(t, uint(5), result.ID())
	assert.Equal(t, catalogvo.AddOnTypeFeatures, created.AddOnType())
	assert.Equal(t, []catalogvo.PackageType{
		catalogvo.PackageTypeIndividual,
		catalogvo.PackageTypeProfessional,
	}, created.CompatiblePackages())
	require.NotNil(t, created.MaxQuantity())
	assert.Equal(t, 3, *created.MaxQuantity())
	assert.True(t, created.IsActive())
}

func TestCreateAddOnUseCase_Execute_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		command CreateAddOnCommand
	}{
		{
			name:    "invalid add-on type",
			command: CreateAddOnCommand{Name: "X", AddOnType: "misc", PriceMonthly: 1000},
		},
		{
			name:    "invalid compatible package type",
			command: CreateAddOnCommand{Name: "X", AddOnType: "storage", PriceMonthly: 1000, CompatiblePackages: []string{"corporate"}},
		},
		{
			name:    "missing monthly price",
			command: CreateAddOnCommand{Name: "X", AddOnType: "storage"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			useCase := NewCreateAddOnUseCase(&mockAddOnRepository{}, noopLogger{})

			result, err := useCase.Execute(context.Background(), tt.command)

			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, apperrors.IsValidation(err))
		})
	}
}

func TestListAddOnsUseCase_Execute(t *testing.T) {
	addOnRepo := &mockAddOnRepository{
		ListActiveFunc: func(ctx context.Context) ([]*catalog.AddOn, error) {
			return []*catalog.AddOn{newStorageAddOn(t, 5, 30000, nil, nil)}, nil
		},
	}

	useCase := NewListAddOnsUseCase(addOnRepo, noopLogger{})

	addOns, err := useCase.Execute(context.Background())

	require.NoError(t, err)
	require.Len(t, addOns, 1)
	assert.Equal(t, uint(5), addOns[0].ID())
}
