package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abrigo-care/abrigo/internal/domain/catalog"
	catalogvo "github.com/abrigo-care/abrigo/internal/domain/catalog/valueobjects"
)

func newFeaturedPackage(t *testing.T, id uint, priceMonthly uint64, features []string) *catalog.Package {
	t.Helper()
	featureList := make([]interface{}, 0, len(features))
	for _, f := range features {
		featureList = append(featureList, f)
	}
	now := time.Now()
	pkg, err := catalog.ReconstructPackage(id, catalogvo.PackageTypeIndividual, "Plan", "plan",
		priceMonthly, nil, "ARS",
		nil, nil, nil,
		map[string]interface{}{"features": featureList}, nil, nil, nil, nil,
		true, nil, nil,
		true, false, 1, now, now)
	require.NoError(t, err)
	return pkg
}

func TestGetRecommendationsUseCase_Execute(t *testing.T) {
	// Ordered by ascending monthly price, as the repository returns them.
	cheap := newFeaturedPackage(t, 1, 300000, []string{"monitoring"})
	mid := newFeaturedPackage(t, 2, 600000, []string{"monitoring", "telemedicine"})
	expensive := newFeaturedPackage(t, 3, 900000, []string{"monitoring", "telemedicine", "analytics"})
	budget := uint64(650000)

	tests := []struct {
		name                 string
		command              GetRecommendationsCommand
		expectedID           uint
		expectedAlternatives int
	}{
		{
			name:                 "cheapest package wins by default",
			command:              GetRecommendationsCommand{UserType: "individual"},
			expectedID:           1,
			expectedAlternatives: 2,
		},
		{
			name:                 "budget keeps the cheapest entry within it",
			command:              GetRecommendationsCommand{UserType: "individual", BudgetMonthly: &budget},
			expectedID:           1,
			expectedAlternatives: 2,
		},
		{
			name: "required features pick the cheapest covering package",
			command: GetRecommendationsCommand{
				UserType:         "individual",
				RequiredFeatures: []string{"telemedicine"},
			},
			expectedID:           2,
			expectedAlternatives: 2,
		},
		{
			name: "feature match overrides the budget pick",
			command: GetRecommendationsCommand{
				UserType:         "individual",
				BudgetMonthly:    &budget,
				RequiredFeatures: []string{"analytics"},
			},
			expectedID:           3,
			expectedAlternatives: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pkgRepo := &mockPackageRepository{
				ListActiveFunc: func(ctx context.Context, filter catalog.PackageListFilter) ([]*catalog.Package, error) {
					require.NotNil(t, filter.PackageType)
					assert.Equal(t, catalogvo.PackageTypeIndividual, *filter.PackageType)
					return []*catalog.Package{cheap, mid, expensive}, nil
				},
			}

			useCase := NewGetRecommendationsUseCase(pkgRepo, noopLogger{})

			result, err := useCase.Execute(context.Background(), tt.command)

			require.NoError(t, err)
			require.NotNil(t, result)
			require.NotNil(t, result.RecommendedPackage)
			assert.Equal(t, tt.expectedID, result.RecommendedPackage.ID())
			assert.Len(t, result.AlternativePackages, tt.expectedAlternatives)
			for _, alt := range result.AlternativePackages {
				assert.NotEqual(t, tt.expectedID, alt.ID())
			}
		})
	}
}

func TestGetRecommendationsUseCase_Execute_NoMatches(t *testing.T) {
	tests := []struct {
		name     string
		command  GetRecommendationsCommand
		packages []*catalog.Package
	}{
		{
			name:     "unknown user type",
			command:  GetRecommendationsCommand{UserType: "alien"},
			packages: nil,
		},
		{
			name:     "no active packages",
			command:  GetRecommendationsCommand{UserType: "individual"},
			packages: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pkgRepo := &mockPackageRepository{
				ListActiveFunc: func(ctx context.Context, filter catalog.PackageListFilter) ([]*catalog.Package, error) {
					return tt.packages, nil
				},
			}

			useCase := NewGetRecommendationsUseCase(pkgRepo, noopLogger{})

			result, err := useCase.Execute(context.Background(), tt.command)

			require.NoError(t, err)
			require.NotNil(t, result)
			assert.Nil(t, result.RecommendedPackage)
			assert.Contains(t, result.Reasoning, "no packages available")
		})
	}
}

func TestGetRecommendationsUseCase_Execute_AlternativesCappedAtThree(t *testing.T) {
	packages := []*catalog.Package{
		newFeaturedPackage(t, 1, 100000, nil),
		newFeaturedPackage(t, 2, 200000, nil),
		newFeaturedPackage(t, 3, 300000, nil),
		newFeaturedPackage(t, 4, 400000, nil),
		newFeaturedPackage(t, 5, 500000, nil),
	}
	pkgRepo := &mockPackageRepository{
		ListActiveFunc: func(ctx context.Context, filter catalog.PackageListFilter) ([]*catalog.Package, error) {
			return packages, nil
		},
	}

	useCase := NewGetRecommendationsUseCase(pkgRepo, noopLogger{})

	result, err := useCase.Execute(context.Background(), GetRecommendationsCommand{UserType: "individual"})

	require.NoError(t, err)
	assert.Equal(t, uint(1), result.RecommendedPackage.ID())
	assert.Len(t, result.AlternativePackages, 3)
}
