package usecases

import (
	"context"
	"fmt"

	"github.com/abrigo-care/abrigo/internal/shared/logger"
)

// Legal capacity verification statuses.
const (
	VerificationStatusVerified = "verified"
	VerificationStatusRequired = "required"
	VerificationStatusError    = "error"
)

type ValidateLegalCapacityCommand struct {
	UserID    uint
	PackageID uint
}

// LegalCapacityResult is advisory state: it is not persisted on its own, only
// reflected into UserPackage.legal_capacity_verified at subscribe time.
type LegalCapacityResult struct {
	CanContract            bool   `json:"can_contract"`
	RequiresRepresentative bool   `json:"requires_representative"`
	Status                 string `json:"verification_status"`
	Message                string `json:"message"`
}

type ValidateLegalCapacityUseCase struct {
	users  UserDirectory
	care   CareRelationships
	logger logger.Interface
}

func NewValidateLegalCapacityUseCase(
	users UserDirectory,
	care CareRelationships,
	logger logger.Interface,
) *ValidateLegalCapacityUseCase {
	return &ValidateLegalCapacityUseCase{
		users:  users,
		care:   care,
		logger: logger,
	}
}

func (uc *ValidateLegalCapacityUseCase) Execute(ctx context.Context, cmd ValidateLegalCapacityCommand) (*LegalCapacityResult, error) {
	user, err := uc.users.GetUser(ctx, cmd.UserID)
	if err != nil {
		uc.logger.Errorw("failed to look up user for legal capacity check", "error", err, "user_id", cmd.UserID)
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return &LegalCapacityResult{
			CanContract:            false,
			RequiresRepresentative: false,
			Status:                 VerificationStatusError,
			Message:                "user not found",
		}, nil
	}

	delegated, err := uc.care.HasDelegatedCare(ctx, cmd.UserID)
	if err != nil {
		uc.logger.Errorw("failed to check delegated care relationships", "error", err, "user_id", cmd.UserID)
		return nil, fmt.Errorf("failed to check care relationships: %w", err)
	}

	if delegated {
		return &LegalCapacityResult{
			CanContract:            false,
			RequiresRepresentative: true,
			Status:                 VerificationStatusRequired,
			Message:                "user is under delegated care and must contract through a legal representative",
		}, nil
	}

	return &LegalCapacityResult{
		CanContract:            true,
		RequiresRepresentative: false,
		Status:                 VerificationStatusVerified,
		Message:                "user may contract directly",
	}, nil
}
