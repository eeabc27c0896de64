package usecases

import (
	"context"
	"fmt"

	"github.com/abrigo-care/abrigo/internal/domain/subscription"
	vo "github.com/abrigo-care/abrigo/internal/domain/subscription/valueobjects"
	apperrors "github.com/abrigo-care/abrigo/internal/shared/errors"
	"github.com/abrigo-care/abrigo/internal/shared/logger"
)

type CancelSubscriptionCommand struct {
	SubscriptionID uint
}

type CancelSubscriptionUseCase struct {
	ledgerRepo subscription.UserPackageRepository
	statuses   StatusCatalog
	logger     logger.Interface
}

func NewCancelSubscriptionUseCase(
	ledgerRepo subscription.UserPackageRepository,
	statuses StatusCatalog,
	logger logger.Interface,
) *CancelSubscriptionUseCase {
	return &CancelSubscriptionUseCase{ledgerRepo: ledgerRepo, statuses: statuses, logger: logger}
}

func (uc *CancelSubscriptionUseCase) Execute(ctx context.Context, cmd CancelSubscriptionCommand) (*subscription.UserPackage, error) {
	sub, err := uc.ledgerRepo.GetByID(ctx, cmd.SubscriptionID)
	if err != nil {
		uc.logger.Errorw("failed to get subscription", "error", err, "subscription_id", cmd.SubscriptionID)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	if sub == nil {
		return nil, apperrors.NewNotFoundError("subscription not found")
	}

	statusID, err := uc.statuses.GetStatusID(ctx, string(vo.StatusCancelled))
	if err != nil {
		uc.logger.Errorw("failed to resolve cancelled status", "error", err)
		return nil, fmt.Errorf("failed to resolve cancelled status: %w", err)
	}

	if err := sub.Cancel(statusID); err != nil {
		return nil, apperrors.NewConflictError(err.Error())
	}

	if err := uc.ledgerRepo.Update(ctx, sub); err != nil {
		uc.logger.Errorw("failed to cancel subscription", "error", err, "subscription_id", cmd.SubscriptionID)
		return nil, fmt.Errorf("failed to cancel subscription: %w", err)
	}

	uc.logger.Infow("subscription cancelled", "subscription_id", sub.ID(), "user_id", sub.UserID())
	return sub, nil
}
