package usecases

import (
	"context"
	"fmt"

	"github.com/abrigo-care/abrigo/internal/domain/catalog"
	catalogvo "github.com/abrigo-care/abrigo/internal/domain/catalog/valueobjects"
	"github.com/abrigo-care/abrigo/internal/shared/logger"
)

type GetRecommendationsCommand struct {
	UserType         string
	BudgetMonthly    *uint64
	RequiredFeatures []string
}

type RecommendationsResult struct {
	UserType            string             `json:"user_type"`
	RecommendedPackage  *catalog.Package   `json:"-"`
	AlternativePackages []*catalog.Package `json:"-"`
	Reasoning           string             `json:"reasoning"`
}

type GetRecommendationsUseCase struct {
	packageRepo catalog.PackageRepository
	logger      logger.Interface
}

func NewGetRecommendationsUseCase(
	packageRepo catalog.PackageRepository,
	logger logger.Interface,
) *GetRecommendationsUseCase {
	return &GetRecommendationsUseCase{
		packageRepo: packageRepo,
		logger:      logger,
	}
}

// Execute recommends the cheapest active package of the requested type,
// preferring entries within the monthly budget, then entries covering all
// required features. Up to three alternatives are returned.
func (uc *GetRecommendationsUseCase) Execute(ctx context.Context, cmd GetRecommendationsCommand) (*RecommendationsResult, error) {
	filter := catalog.PackageListFilter{}
	if cmd.UserType != "" {
		packageType, err := catalogvo.ParsePackageType(cmd.UserType)
		if err != nil {
			return &RecommendationsResult{
				UserType:  cmd.UserType,
				Reasoning: "no packages available for this user type",
			}, nil
		}
		filter.PackageType = &packageType
	}

	packages, err := uc.packageRepo.ListActive(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list packages for recommendation", "error", err)
		return nil, fmt.Errorf("failed to list packages: %w", err)
	}
	if len(packages) == 0 {
		return &RecommendationsResult{
			UserType:  cmd.UserType,
			Reasoning: "no packages available for this user type",
		}, nil
	}

	// Packages arrive ordered by ascending monthly price, so the first
	// surviving candidate is the cheapest.
	recommended := packages[0]

	if cmd.BudgetMonthly != nil {
		for _, pkg := range packages {
			if pkg.PriceMonthly() <= *cmd.BudgetMonthly {
				recommended = pkg
				break
			}
		}
	}

	if len(cmd.RequiredFeatures) > 0 {
		for _, pkg := range packages {
			if hasAllFeatures(pkg, cmd.RequiredFeatures) {
				recommended = pkg
				break
			}
		}
	}

	var alternatives []*catalog.Package
	for _, pkg := range packages {
		if pkg.ID() == recommended.ID() {
			continue
		}
		alternatives = append(alternatives, pkg)
		if len(alternatives) == 3 {
			break
		}
	}

	return &RecommendationsResult{
		UserType:            cmd.UserType,
		RecommendedPackage:  recommended,
		AlternativePackages: alternatives,
		Reasoning:           fmt.Sprintf("recommended for user type %q and the specified needs", cmd.UserType),
	}, nil
}

func hasAllFeatures(pkg *catalog.Package, required []string) bool {
	for _, feature := range required {
		if !pkg.HasFeature(feature) {
			return false
		}
	}
	return true
}
