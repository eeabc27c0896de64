package usecases

import (
	"context"
	"fmt"

	"github.com/abrigo-care/abrigo/internal/domain/subscription"
	vo "github.com/abrigo-care/abrigo/internal/domain/subscription/valueobjects"
	apperrors "github.com/abrigo-care/abrigo/internal/shared/errors"
	"github.com/abrigo-care/abrigo/internal/shared/logger"
)

type RemoveAddOnCommand struct {
	AttachmentID uint
}

type RemoveAddOnUseCase struct {
	attachmentRepo subscription.AddOnAttachmentRepository
	statuses       StatusCatalog
	logger         logger.Interface
}

func NewRemoveAddOnUseCase(
	attachmentRepo subscription.AddOnAttachmentRepository,
	statuses StatusCatalog,
	logger logger.Interface,
) *RemoveAddOnUseCase {
	return &RemoveAddOnUseCase{
		attachmentRepo: attachmentRepo,
		statuses:       statuses,
		logger:         logger,
	}
}

// Execute soft-removes an attachment: status moves to cancelled, the row is
// retained. A status catalog miss fails the operation instead of falling
// back to a legacy free-text status.
func (uc *RemoveAddOnUseCase) Execute(ctx context.Context, cmd RemoveAddOnCommand) error {
	attachment, err := uc.attachmentRepo.GetByID(ctx, cmd.AttachmentID)
	if err != nil {
		uc.logger.Errorw("failed to load attachment", "error", err, "attachment_id", cmd.AttachmentID)
		return fmt.Errorf("failed to load attachment: %w", err)
	}
	if attachment == nil {
		return apperrors.NewNotFoundError("add-on attachment not found")
	}

	cancelledStatusID, err := uc.statuses.GetStatusID(ctx, vo.StatusCancelled.String())
	if err != nil {
		uc.logger.Errorw("cancelled status not resolvable", "error", err)
		return fmt.Errorf("failed to resolve cancelled status: %w", err)
	}

	if err := attachment.Cancel(cancelledStatusID); err != nil {
		return apperrors.NewConflictError(err.Error())
	}

	if err := uc.attachmentRepo.Update(ctx, attachment); err != nil {
		uc.logger.Errorw("failed to persist attachment cancellation", "error", err, "attachment_id", cmd.AttachmentID)
		return fmt.Errorf("failed to update attachment: %w", err)
	}

	uc.logger.Infow("add-on attachment cancelled", "attachment_id", cmd.AttachmentID)
	return nil
}
