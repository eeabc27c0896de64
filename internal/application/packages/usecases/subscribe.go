package usecases

import (
	"context"
	"fmt"

	"github.com/abrigo-care/abrigo/internal/domain/catalog"
	"github.com/abrigo-care/abrigo/internal/domain/subscription"
	vo "github.com/abrigo-care/abrigo/internal/domain/subscription/valueobjects"
	"github.com/abrigo-care/abrigo/internal/shared/biztime"
	"github.com/abrigo-care/abrigo/internal/shared/db"
	"github.com/abrigo-care/abrigo/internal/shared/logger"
)

// SubscribeAddOnInput is an add-on attached during subscription creation.
type SubscribeAddOnInput struct {
	AddOnID             uint
	Quantity            int
	BillingCycle        string
	CustomConfiguration map[string]interface{}
}

type SubscribeCommand struct {
	UserID                uint
	PackageID             uint
	BillingCycle          string
	ReferralCode          string
	AddOns                []SubscribeAddOnInput
	AutoRenew             bool
	LegalRepresentativeID *uint
	CustomConfiguration   map[string]interface{}
	SelectedFeatures      map[string]interface{}
	CustomLimits          map[string]interface{}
}

// SubscribeResult is the dual success/failure outcome: expected business
// failures leave Subscription nil and carry the reason in Message. Execute
// only returns a non-nil error for infrastructure failures.
type SubscribeResult struct {
	Subscription *subscription.UserPackage
	Attachments  []*subscription.AddOnAttachment
	Message      string
}

func (r *SubscribeResult) OK() bool {
	return r.Subscription != nil
}

func failSubscribe(message string) *SubscribeResult {
	return &SubscribeResult{Message: message}
}

type SubscribeUseCase struct {
	packageRepo    catalog.PackageRepository
	addOnRepo      catalog.AddOnRepository
	ledgerRepo     subscription.UserPackageRepository
	attachmentRepo subscription.AddOnAttachmentRepository
	users          UserDirectory
	legalGate      *ValidateLegalCapacityUseCase
	referrals      ReferralValidator
	statuses       StatusCatalog
	policy         BillingPolicy
	txManager      *db.TransactionManager
	logger         logger.Interface
}

func NewSubscribeUseCase(
	packageRepo catalog.PackageRepository,
	addOnRepo catalog.AddOnRepository,
	ledgerRepo subscription.UserPackageRepository,
	attachmentRepo subscription.AddOnAttachmentRepository,
	users UserDirectory,
	legalGate *ValidateLegalCapacityUseCase,
	referrals ReferralValidator,
	statuses StatusCatalog,
	policy BillingPolicy,
	txManager *db.TransactionManager,
	logger logger.Interface,
) *SubscribeUseCase {
	return &SubscribeUseCase{
		packageRepo:    packageRepo,
		addOnRepo:      addOnRepo,
		ledgerRepo:     ledgerRepo,
		attachmentRepo: attachmentRepo,
		users:          users,
		legalGate:      legalGate,
		referrals:      referrals,
		statuses:       statuses,
		policy:         policy,
		txManager:      txManager,
		logger:         logger,
	}
}

func (uc *SubscribeUseCase) Execute(ctx context.Context, cmd SubscribeCommand) (*SubscribeResult, error) {
	user, err := uc.users.GetUser(ctx, cmd.UserID)
	if err != nil {
		uc.logger.Errorw("failed to look up subscriber", "error", err, "user_id", cmd.UserID)
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return failSubscribe("user not found"), nil
	}

	// Staff exclusivity is checked before the generic allow-list: staff
	// without the admin role is rejected even when it also holds an
	// otherwise-allowed role.
	if uc.policy.IsViewOnlyStaff(user.Roles) {
		return failSubscribe("only the institution administrator may contract packages; staff may only view"), nil
	}
	if !uc.policy.AnyRoleAllowed(user.Roles) {
		return failSubscribe("only institutions (admin), self-caring persons and families may contract packages"), nil
	}

	gate, err := uc.legalGate.Execute(ctx, ValidateLegalCapacityCommand{
		UserID:    cmd.UserID,
		PackageID: cmd.PackageID,
	})
	if err != nil {
		return nil, err
	}
	if !gate.CanContract {
		return failSubscribe(gate.Message), nil
	}

	pkg, err := uc.packageRepo.GetByID(ctx, cmd.PackageID)
	if err != nil {
		uc.logger.Errorw("failed to load package", "error", err, "package_id", cmd.PackageID)
		return nil, fmt.Errorf("failed to load package: %w", err)
	}
	if pkg == nil {
		return failSubscribe("package not found"), nil
	}
	if !pkg.IsActive() {
		return failSubscribe("package is not available"), nil
	}

	cycle, err := vo.ParseBillingCycle(cmd.BillingCycle)
	if err != nil {
		return failSubscribe(fmt.Sprintf("invalid billing cycle: %s", cmd.BillingCycle)), nil
	}

	basePrice, ok := pkg.PriceFor(cycle.IsMonthly())
	if !ok {
		return failSubscribe("price not available for the selected billing cycle"), nil
	}

	finalPrice := basePrice
	referralApplied := false
	var referralCode *string
	if cmd.ReferralCode != "" {
		validation, err := uc.referrals.ValidateReferralCode(ctx, cmd.ReferralCode, user.Email)
		if err != nil {
			uc.logger.Errorw("referral validation failed", "error", err, "code", cmd.ReferralCode)
			return nil, fmt.Errorf("failed to validate referral code: %w", err)
		}
		if validation.IsValid {
			finalPrice = uc.policy.DiscountedPrice(basePrice)
			referralApplied = true
		}
		code := cmd.ReferralCode
		referralCode = &code
	}

	today := biztime.Today()
	nextBilling := cycle.NextBillingDate(today)

	activeStatusID, err := uc.statuses.GetStatusID(ctx, vo.StatusActive.String())
	if err != nil {
		uc.logger.Errorw("active status not resolvable", "error", err)
		return nil, fmt.Errorf("failed to resolve active status: %w", err)
	}

	sub, err := subscription.NewUserPackage(subscription.NewUserPackageParams{
		UserID:                cmd.UserID,
		PackageID:             cmd.PackageID,
		BillingCycle:          cycle,
		CurrentAmount:         finalPrice,
		StartDate:             today,
		NextBillingDate:       nextBilling,
		StatusTypeID:          activeStatusID,
		Status:                vo.StatusActive,
		AutoRenew:             cmd.AutoRenew,
		CustomConfiguration:   cmd.CustomConfiguration,
		SelectedFeatures:      cmd.SelectedFeatures,
		CustomLimits:          cmd.CustomLimits,
		LegalCapacityVerified: gate.Status == VerificationStatusVerified,
		LegalRepresentativeID: cmd.LegalRepresentativeID,
		ReferralCodeUsed:      referralCode,
		ReferralApplied:       referralApplied,
	})
	if err != nil {
		uc.logger.Errorw("failed to build subscription aggregate", "error", err)
		return nil, fmt.Errorf("failed to create subscription: %w", err)
	}

	var attachments []*subscription.AddOnAttachment
	var failure string

	// Subscription row and requested add-ons commit atomically.
	txErr := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.ledgerRepo.Create(txCtx, sub); err != nil {
			return fmt.Errorf("failed to create subscription: %w", err)
		}

		for _, input := range cmd.AddOns {
			attachment, reason, err := attachAddOn(txCtx, attachDeps{
				addOnRepo:      uc.addOnRepo,
				attachmentRepo: uc.attachmentRepo,
				statuses:       uc.statuses,
			}, sub, pkg.PackageType(), input)
			if err != nil {
				return err
			}
			if attachment == nil {
				failure = reason
				return errRollbackBusiness
			}
			attachments = append(attachments, attachment)
		}
		return nil
	})
	if txErr != nil {
		if txErr == errRollbackBusiness {
			return failSubscribe(failure), nil
		}
		uc.logger.Errorw("subscription transaction failed", "error", txErr, "user_id", cmd.UserID)
		return nil, txErr
	}

	uc.logger.Infow("subscription created",
		"subscription_id", sub.ID(),
		"user_id", cmd.UserID,
		"package_id", cmd.PackageID,
		"billing_cycle", cycle,
		"amount", finalPrice,
		"referral_applied", referralApplied,
	)

	return &SubscribeResult{
		Subscription: sub,
		Attachments:  attachments,
		Message:      "subscription created successfully",
	}, nil
}

// errRollbackBusiness aborts the transaction for an expected business
// failure; the caller converts it to a failure message instead of an error.
var errRollbackBusiness = fmt.Errorf("business rule failure")
