package subscription

import (
	"context"

	vo "github.com/abrigo-care/abrigo/internal/domain/subscription/valueobjects"
)

// TypeDistribution is one row of the statistics package-type breakdown.
type TypeDistribution struct {
	PackageType string
	Count       int64
}

// UserPackageRepository persists subscription ledger entries. Lookups return
// (nil, nil) when the row does not exist.
type UserPackageRepository interface {
	Create(ctx context.Context, sub *UserPackage) error
	GetByID(ctx context.Context, id uint) (*UserPackage, error)
	// GetByIDForUpdate loads the row under a row-level write lock. Callers
	// must be inside a transaction; the lock serializes the referral-discount
	// and add-on mutations for the same subscription.
	GetByIDForUpdate(ctx context.Context, id uint) (*UserPackage, error)
	GetByUserID(ctx context.Context, userID uint, status *vo.SubscriptionStatus) ([]*UserPackage, error)
	Update(ctx context.Context, sub *UserPackage) error

	CountByStatus(ctx context.Context, status vo.SubscriptionStatus) (int64, error)
	// SumAmountByStatus sums current_amount over subscriptions in the given
	// status. Add-on amounts are not included.
	SumAmountByStatus(ctx context.Context, status vo.SubscriptionStatus) (uint64, error)
	// TypeDistributionByStatus counts subscriptions in the given status
	// grouped by the subscribed package's type.
	TypeDistributionByStatus(ctx context.Context, status vo.SubscriptionStatus) ([]TypeDistribution, error)
}

// AddOnAttachmentRepository persists add-on attachments.
type AddOnAttachmentRepository interface {
	Create(ctx context.Context, attachment *AddOnAttachment) error
	GetByID(ctx context.Context, id uint) (*AddOnAttachment, error)
	GetByUserPackageID(ctx context.Context, userPackageID uint) ([]*AddOnAttachment, error)
	// CountActiveByAddOn counts non-cancelled attachments of one add-on on
	// one subscription, used for max_quantity enforcement under lock.
	CountActiveByAddOn(ctx context.Context, userPackageID, addOnID uint) (int64, error)
	Update(ctx context.Context, attachment *AddOnAttachment) error
}
