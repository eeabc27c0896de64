package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/abrigo-care/abrigo/internal/domain/subscription"
	apperrors "github.com/abrigo-care/abrigo/internal/shared/errors"
	"github.com/abrigo-care/abrigo/internal/shared/logger"
)

// SubscriptionPatch carries the mutable subscription fields. Nil pointers
// leave the current value untouched.
type SubscriptionPatch struct {
	AutoRenew           *bool
	EndDate             *time.Time
	CustomConfiguration map[string]any
	SelectedFeatures    map[string]any
	CustomLimits        map[string]any
}

type UpdateSubscriptionCommand struct {
	SubscriptionID uint
	Patch          SubscriptionPatch
}

type UpdateSubscriptionUseCase struct {
	ledgerRepo subscription.UserPackageRepository
	logger     logger.Interface
}

func NewUpdateSubscriptionUseCase(ledgerRepo subscription.UserPackageRepository, logger logger.Interface) *UpdateSubscriptionUseCase {
	return &UpdateSubscriptionUseCase{ledgerRepo: ledgerRepo, logger: logger}
}

func (uc *UpdateSubscriptionUseCase) Execute(ctx context.Context, cmd UpdateSubscriptionCommand) (*subscription.UserPackage, error) {
	sub, err := uc.ledgerRepo.GetByID(ctx, cmd.SubscriptionID)
	if err != nil {
		uc.logger.Errorw("failed to get subscription", "error", err, "subscription_id", cmd.SubscriptionID)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	if sub == nil {
		return nil, apperrors.NewNotFoundError("subscription not found")
	}

	if cmd.Patch.AutoRenew != nil {
		sub.SetAutoRenew(*cmd.Patch.AutoRenew)
	}
	if cmd.Patch.EndDate != nil {
		if err := sub.SetEndDate(cmd.Patch.EndDate); err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
	}
	if cmd.Patch.CustomConfiguration != nil {
		sub.UpdateCustomConfiguration(cmd.Patch.CustomConfiguration)
	}
	if cmd.Patch.SelectedFeatures != nil {
		sub.UpdateSelectedFeatures(cmd.Patch.SelectedFeatures)
	}
	if cmd.Patch.CustomLimits != nil {
		sub.UpdateCustomLimits(cmd.Patch.CustomLimits)
	}

	if err := uc.ledgerRepo.Update(ctx, sub); err != nil {
		uc.logger.Errorw("failed to update subscription", "error", err, "subscription_id", cmd.SubscriptionID)
		return nil, fmt.Errorf("failed to update subscription: %w", err)
	}

	uc.logger.Infow("subscription updated", "subscription_id", sub.ID())
	return sub, nil
}
