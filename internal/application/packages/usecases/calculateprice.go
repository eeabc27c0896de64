package usecases

import (
	"context"
	"fmt"
	"math"

	"github.com/abrigo-care/abrigo/internal/domain/catalog"
	apperrors "github.com/abrigo-care/abrigo/internal/shared/errors"
	"github.com/abrigo-care/abrigo/internal/shared/logger"
)

// Customization multiplier surcharges. They stack additively on 1.0, which is
// the accepted billing behavior; do not convert to independent factors.
const (
	premiumSupportSurcharge    = 0.20
	advancedAnalyticsSurcharge = 0.15
)

type CalculatePriceAddOnInput struct {
	AddOnID  uint
	Quantity int
}

type CalculatePriceCommand struct {
	PackageID           uint
	CustomConfiguration map[string]interface{}
	AddOns              []CalculatePriceAddOnInput
}

// CalculatePriceResult is a monthly customization quote in minor units.
// FinalPriceMajor repeats the final price in whole currency units for
// display.
type CalculatePriceResult struct {
	BasePrice       uint64  `json:"base_price"`
	AddOnsPrice     uint64  `json:"add_ons_price"`
	Multiplier      float64 `json:"customization_multiplier"`
	FinalPrice      uint64  `json:"final_price"`
	FinalPriceMajor float64 `json:"final_price_ars"`
}

type CalculatePriceUseCase struct {
	packageRepo catalog.PackageRepository
	addOnRepo   catalog.AddOnRepository
	logger      logger.Interface
}

func NewCalculatePriceUseCase(
	packageRepo catalog.PackageRepository,
	addOnRepo catalog.AddOnRepository,
	logger logger.Interface,
) *CalculatePriceUseCase {
	return &CalculatePriceUseCase{
		packageRepo: packageRepo,
		addOnRepo:   addOnRepo,
		logger:      logger,
	}
}

// Execute quotes a customized package price. Pricing is monthly only; yearly
// customization quotes are not supported. Inactive or unknown add-ons are
// skipped rather than failing the quote.
func (uc *CalculatePriceUseCase) Execute(ctx context.Context, cmd CalculatePriceCommand) (*CalculatePriceResult, error) {
	pkg, err := uc.packageRepo.GetByID(ctx, cmd.PackageID)
	if err != nil {
		uc.logger.Errorw("failed to load package for quote", "error", err, "package_id", cmd.PackageID)
		return nil, fmt.Errorf("failed to load package: %w", err)
	}
	if pkg == nil {
		return nil, apperrors.NewBadRequestError("package not found")
	}

	basePrice := pkg.PriceMonthly()

	var addOnsPrice uint64
	for _, input := range cmd.AddOns {
		addOn, err := uc.addOnRepo.GetByID(ctx, input.AddOnID)
		if err != nil {
			uc.logger.Errorw("failed to load add-on for quote", "error", err, "add_on_id", input.AddOnID)
			return nil, fmt.Errorf("failed to load add-on: %w", err)
		}
		if addOn == nil || !addOn.IsActive() {
			continue
		}
		quantity := input.Quantity
		if quantity < 1 {
			quantity = 1
		}
		addOnsPrice += addOn.PriceMonthly() * uint64(quantity)
	}

	multiplier := 1.0
	if boolOption(cmd.CustomConfiguration, "premium_support") {
		multiplier += premiumSupportSurcharge
	}
	if boolOption(cmd.CustomConfiguration, "advanced_analytics") {
		multiplier += advancedAnalyticsSurcharge
	}

	finalPrice := uint64(math.Floor(float64(basePrice+addOnsPrice) * multiplier))

	return &CalculatePriceResult{
		BasePrice:       basePrice,
		AddOnsPrice:     addOnsPrice,
		Multiplier:      multiplier,
		FinalPrice:      finalPrice,
		FinalPriceMajor: float64(finalPrice) / 100,
	}, nil
}

func boolOption(config map[string]interface{}, key string) bool {
	if config == nil {
		return false
	}
	value, ok := config[key].(bool)
	return ok && value
}
