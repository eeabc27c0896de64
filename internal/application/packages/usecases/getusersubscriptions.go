package usecases

import (
	"context"
	"fmt"

	"github.com/abrigo-care/abrigo/internal/domain/subscription"
	vo "github.com/abrigo-care/abrigo/internal/domain/subscription/valueobjects"
	apperrors "github.com/abrigo-care/abrigo/internal/shared/errors"
	"github.com/abrigo-care/abrigo/internal/shared/logger"
)

type GetUserSubscriptionsCommand struct {
	UserID uint
	Status string
}

type GetUserSubscriptionsUseCase struct {
	ledgerRepo subscription.UserPackageRepository
	logger     logger.Interface
}

func NewGetUserSubscriptionsUseCase(ledgerRepo subscription.UserPackageRepository, logger logger.Interface) *GetUserSubscriptionsUseCase {
	return &GetUserSubscriptionsUseCase{ledgerRepo: ledgerRepo, logger: logger}
}

func (uc *GetUserSubscriptionsUseCase) Execute(ctx context.Context, cmd GetUserSubscriptionsCommand) ([]*subscription.UserPackage, error) {
	var status *vo.SubscriptionStatus
	if cmd.Status != "" {
		parsed := vo.SubscriptionStatus(cmd.Status)
		if !parsed.IsValid() {
			return nil, apperrors.NewValidationError(fmt.Sprintf("invalid status: %s", cmd.Status))
		}
		status = &parsed
	}

	subs, err := uc.ledgerRepo.GetByUserID(ctx, cmd.UserID, status)
	if err != nil {
		uc.logger.Errorw("failed to list user subscriptions", "error", err, "user_id", cmd.UserID)
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	return subs, nil
}
