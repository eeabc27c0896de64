package usecases

import (
	"context"
	"fmt"

	"github.com/abrigo-care/abrigo/internal/domain/catalog"
	catalogvo "github.com/abrigo-care/abrigo/internal/domain/catalog/valueobjects"
	"github.com/abrigo-care/abrigo/internal/domain/subscription"
	vo "github.com/abrigo-care/abrigo/internal/domain/subscription/valueobjects"
	"github.com/abrigo-care/abrigo/internal/shared/db"
	"github.com/abrigo-care/abrigo/internal/shared/logger"
)

type AddAddOnCommand struct {
	SubscriptionID      uint
	AddOnID             uint
	Quantity            int
	BillingCycle        string
	CustomConfiguration map[string]interface{}
}

// AddAddOnResult mirrors the subscribe contract: business failures leave
// Attachment nil and carry the reason in Message.
type AddAddOnResult struct {
	Attachment *subscription.AddOnAttachment
	Message    string
}

func (r *AddAddOnResult) OK() bool {
	return r.Attachment != nil
}

type AddAddOnUseCase struct {
	packageRepo    catalog.PackageRepository
	addOnRepo      catalog.AddOnRepository
	ledgerRepo     subscription.UserPackageRepository
	attachmentRepo subscription.AddOnAttachmentRepository
	statuses       StatusCatalog
	txManager      *db.TransactionManager
	logger         logger.Interface
}

func NewAddAddOnUseCase(
	packageRepo catalog.PackageRepository,
	addOnRepo catalog.AddOnRepository,
	ledgerRepo subscription.UserPackageRepository,
	attachmentRepo subscription.AddOnAttachmentRepository,
	statuses StatusCatalog,
	txManager *db.TransactionManager,
	logger logger.Interface,
) *AddAddOnUseCase {
	return &AddAddOnUseCase{
		packageRepo:    packageRepo,
		addOnRepo:      addOnRepo,
		ledgerRepo:     ledgerRepo,
		attachmentRepo: attachmentRepo,
		statuses:       statuses,
		txManager:      txManager,
		logger:         logger,
	}
}

func (uc *AddAddOnUseCase) Execute(ctx context.Context, cmd AddAddOnCommand) (*AddAddOnResult, error) {
	var attachment *subscription.AddOnAttachment
	var failure string

	// The subscription row is locked for the duration of the transaction so
	// concurrent attach calls cannot both pass the quantity bound.
	txErr := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		sub, err := uc.ledgerRepo.GetByIDForUpdate(txCtx, cmd.SubscriptionID)
		if err != nil {
			return fmt.Errorf("failed to load subscription: %w", err)
		}
		if sub == nil {
			failure = "subscription not found"
			return errRollbackBusiness
		}

		pkg, err := uc.packageRepo.GetByID(txCtx, sub.PackageID())
		if err != nil {
			return fmt.Errorf("failed to load package: %w", err)
		}
		if pkg == nil {
			return fmt.Errorf("subscription references missing package %d", sub.PackageID())
		}

		result, reason, err := attachAddOn(txCtx, attachDeps{
			addOnRepo:      uc.addOnRepo,
			attachmentRepo: uc.attachmentRepo,
			statuses:       uc.statuses,
		}, sub, pkg.PackageType(), SubscribeAddOnInput{
			AddOnID:             cmd.AddOnID,
			Quantity:            cmd.Quantity,
			BillingCycle:        cmd.BillingCycle,
			CustomConfiguration: cmd.CustomConfiguration,
		})
		if err != nil {
			return err
		}
		if result == nil {
			failure = reason
			return errRollbackBusiness
		}
		attachment = result
		return nil
	})
	if txErr != nil {
		if txErr == errRollbackBusiness {
			return &AddAddOnResult{Message: failure}, nil
		}
		uc.logger.Errorw("add-on attach transaction failed", "error", txErr, "subscription_id", cmd.SubscriptionID)
		return nil, txErr
	}

	uc.logger.Infow("add-on attached",
		"subscription_id", cmd.SubscriptionID,
		"add_on_id", cmd.AddOnID,
		"quantity", attachment.Quantity(),
		"amount", attachment.CurrentAmount(),
	)

	return &AddAddOnResult{
		Attachment: attachment,
		Message:    "add-on attached successfully",
	}, nil
}

// attachDeps bundles what attachAddOn needs so Subscribe and AddAddOn share
// one attachment path.
type attachDeps struct {
	addOnRepo      catalog.AddOnRepository
	attachmentRepo subscription.AddOnAttachmentRepository
	statuses       StatusCatalog
}

// attachAddOn validates and persists one add-on attachment. It returns
// (nil, reason, nil) for expected business failures. Callers run it inside a
// transaction holding the subscription row lock.
func attachAddOn(ctx context.Context, deps attachDeps, sub *subscription.UserPackage,
	packageType catalogvo.PackageType, input SubscribeAddOnInput) (*subscription.AddOnAttachment, string, error) {

	addOn, err := deps.addOnRepo.GetByID(ctx, input.AddOnID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load add-on: %w", err)
	}
	if addOn == nil || !addOn.IsActive() {
		return nil, "add-on not found or not available", nil
	}

	if !addOn.IsCompatibleWith(packageType) {
		return nil, fmt.Sprintf("add-on %q is not compatible with %s packages", addOn.Name(), packageType), nil
	}

	quantity := input.Quantity
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 1 {
		return nil, "quantity must be at least 1", nil
	}
	if !addOn.AllowsQuantity(quantity) {
		return nil, fmt.Sprintf("quantity exceeds the maximum of %d for add-on %q", *addOn.MaxQuantity(), addOn.Name()), nil
	}

	cycleValue := input.BillingCycle
	if cycleValue == "" {
		cycleValue = vo.BillingCycleMonthly.String()
	}
	cycle, err := vo.ParseBillingCycle(cycleValue)
	if err != nil {
		return nil, fmt.Sprintf("invalid billing cycle: %s", input.BillingCycle), nil
	}

	unitPrice, ok := addOn.PriceFor(cycle.IsMonthly())
	if !ok {
		return nil, "add-on price not available for the selected billing cycle", nil
	}

	activeStatusID, err := deps.statuses.GetStatusID(ctx, vo.StatusActive.String())
	if err != nil {
		return nil, "", fmt.Errorf("failed to resolve active status: %w", err)
	}

	attachment, err := subscription.NewAddOnAttachment(
		sub.ID(),
		addOn.ID(),
		quantity,
		cycle,
		unitPrice*uint64(quantity),
		activeStatusID,
		input.CustomConfiguration,
	)
	if err != nil {
		return nil, "", fmt.Errorf("failed to build attachment: %w", err)
	}

	if err := deps.attachmentRepo.Create(ctx, attachment); err != nil {
		return nil, "", fmt.Errorf("failed to persist attachment: %w", err)
	}

	return attachment, "", nil
}
