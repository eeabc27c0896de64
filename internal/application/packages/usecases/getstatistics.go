package usecases

import (
	"context"
	"fmt"

	"github.com/abrigo-care/abrigo/internal/domain/catalog"
	"github.com/abrigo-care/abrigo/internal/domain/subscription"
	vo "github.com/abrigo-care/abrigo/internal/domain/subscription/valueobjects"
	"github.com/abrigo-care/abrigo/internal/shared/logger"
)

// StatisticsResult aggregates the active side of the ledger. Revenue is the
// sum of subscription current_amount only; add-on revenue is intentionally
// excluded, matching the established reporting behavior.
type StatisticsResult struct {
	TotalPackages           int64            `json:"total_packages"`
	TotalSubscriptions      int64            `json:"total_subscriptions"`
	TotalRevenueMinor       uint64           `json:"total_revenue_cents"`
	TotalRevenueMajor       float64          `json:"total_revenue_ars"`
	PackageTypeDistribution map[string]int64 `json:"package_type_distribution"`
}

type GetStatisticsUseCase struct {
	packageRepo catalog.PackageRepository
	ledgerRepo  subscription.UserPackageRepository
	logger      logger.Interface
}

func NewGetStatisticsUseCase(
	packageRepo catalog.PackageRepository,
	ledgerRepo subscription.UserPackageRepository,
	logger logger.Interface,
) *GetStatisticsUseCase {
	return &GetStatisticsUseCase{
		packageRepo: packageRepo,
		ledgerRepo:  ledgerRepo,
		logger:      logger,
	}
}

func (uc *GetStatisticsUseCase) Execute(ctx context.Context) (*StatisticsResult, error) {
	totalPackages, err := uc.packageRepo.CountActive(ctx)
	if err != nil {
		uc.logger.Errorw("failed to count active packages", "error", err)
		return nil, fmt.Errorf("failed to count packages: %w", err)
	}

	totalSubscriptions, err := uc.ledgerRepo.CountByStatus(ctx, vo.StatusActive)
	if err != nil {
		uc.logger.Errorw("failed to count active subscriptions", "error", err)
		return nil, fmt.Errorf("failed to count subscriptions: %w", err)
	}

	totalRevenue, err := uc.ledgerRepo.SumAmountByStatus(ctx, vo.StatusActive)
	if err != nil {
		uc.logger.Errorw("failed to sum subscription revenue", "error", err)
		return nil, fmt.Errorf("failed to sum revenue: %w", err)
	}

	distribution, err := uc.ledgerRepo.TypeDistributionByStatus(ctx, vo.StatusActive)
	if err != nil {
		uc.logger.Errorw("failed to compute package type distribution", "error", err)
		return nil, fmt.Errorf("failed to compute distribution: %w", err)
	}

	byType := make(map[string]int64, len(distribution))
	for _, row := range distribution {
		byType[row.PackageType] = row.Count
	}

	return &StatisticsResult{
		TotalPackages:           totalPackages,
		TotalSubscriptions:      totalSubscriptions,
		TotalRevenueMinor:       totalRevenue,
		TotalRevenueMajor:       float64(totalRevenue) / 100,
		PackageTypeDistribution: byType,
	}, nil
}
