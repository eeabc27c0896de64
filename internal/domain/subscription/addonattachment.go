package subscription

import (
	"fmt"
	"time"

	vo "github.com/abrigo-care/abrigo/internal/domain/subscription/valueobjects"
)

// AddOnAttachment links a catalog add-on to a subscription with quantity and
// the price computed at attach time. The billing cycle is chosen per add-on
// and may differ from the parent subscription's cycle. Removal is a status
// transition to cancelled; rows are retained.
type AddOnAttachment struct {
	id                  uint
	userPackageID       uint
	addOnID             uint
	quantity            int
	billingCycle        vo.BillingCycle
	currentAmount       uint64
	status              vo.SubscriptionStatus
	statusTypeID        uint
	customConfiguration map[string]interface{}
	addedAt             time.Time
	version             int
	createdAt           time.Time
	updatedAt           time.Time
}

func NewAddOnAttachment(userPackageID, addOnID uint, quantity int,
	billingCycle vo.BillingCycle, currentAmount uint64, statusTypeID uint,
	customConfiguration map[string]interface{}) (*AddOnAttachment, error) {

	if userPackageID == 0 {
		return nil, fmt.Errorf("subscription ID is required")
	}
	if addOnID == 0 {
		return nil, fmt.Errorf("add-on ID is required")
	}
	if quantity < 1 {
		return nil, fmt.Errorf("quantity must be at least 1")
	}
	if !billingCycle.IsValid() {
		return nil, fmt.Errorf("invalid billing cycle: %s", billingCycle)
	}
	if currentAmount == 0 {
		return nil, fmt.Errorf("current amount is required")
	}
	if statusTypeID == 0 {
		return nil, fmt.Errorf("status type ID is required")
	}

	now := time.Now()
	return &AddOnAttachment{
		userPackageID:       userPackageID,
		addOnID:             addOnID,
		quantity:            quantity,
		billingCycle:        billingCycle,
		currentAmount:       currentAmount,
		status:              vo.StatusActive,
		statusTypeID:        statusTypeID,
		customConfiguration: customConfiguration,
		addedAt:             now,
		version:             1,
		createdAt:           now,
		updatedAt:           now,
	}, nil
}

func ReconstructAddOnAttachment(id, userPackageID, addOnID uint, quantity int,
	billingCycle vo.BillingCycle, currentAmount uint64,
	status vo.SubscriptionStatus, statusTypeID uint,
	customConfiguration map[string]interface{}, addedAt time.Time,
	version int, createdAt, updatedAt time.Time) (*AddOnAttachment, error) {

	if id == 0 {
		return nil, fmt.Errorf("attachment ID cannot be zero")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid attachment status: %s", status)
	}
	if !billingCycle.IsValid() {
		return nil, fmt.Errorf("invalid billing cycle: %s", billingCycle)
	}

	return &AddOnAttachment{
		id:                  id,
		userPackageID:       userPackageID,
		addOnID:             addOnID,
		quantity:            quantity,
		billingCycle:        billingCycle,
		currentAmount:       currentAmount,
		status:              status,
		statusTypeID:        statusTypeID,
		customConfiguration: customConfiguration,
		addedAt:             addedAt,
		version:             version,
		createdAt:           createdAt,
		updatedAt:           updatedAt,
	}, nil
}

func (a *AddOnAttachment) ID() uint {
	return a.id
}

// SetID sets the attachment ID (only for persistence layer use)
func (a *AddOnAttachment) SetID(id uint) error {
	if a.id != 0 {
		return fmt.Errorf("attachment ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("attachment ID cannot be zero")
	}
	a.id = id
	return nil
}

func (a *AddOnAttachment) UserPackageID() uint {
	return a.userPackageID
}

func (a *AddOnAttachment) AddOnID() uint {
	return a.addOnID
}

func (a *AddOnAttachment) Quantity() int {
	return a.quantity
}

func (a *AddOnAttachment) BillingCycle() vo.BillingCycle {
	return a.billingCycle
}

func (a *AddOnAttachment) CurrentAmount() uint64 {
	return a.currentAmount
}

func (a *AddOnAttachment) Status() vo.SubscriptionStatus {
	return a.status
}

func (a *AddOnAttachment) StatusTypeID() uint {
	return a.statusTypeID
}

func (a *AddOnAttachment) CustomConfiguration() map[string]interface{} {
	return a.customConfiguration
}

func (a *AddOnAttachment) AddedAt() time.Time {
	return a.addedAt
}

func (a *AddOnAttachment) Version() int {
	return a.version
}

func (a *AddOnAttachment) CreatedAt() time.Time {
	return a.createdAt
}

func (a *AddOnAttachment) UpdatedAt() time.Time {
	return a.updatedAt
}

func (a *AddOnAttachment) IsActive() bool {
	return a.status.CanUseService()
}

// Cancel soft-removes the attachment. A missing status catalog entry is the
// caller's problem: this method requires a resolved statusTypeID and fails
// closed on zero rather than writing a legacy free-text status.
func (a *AddOnAttachment) Cancel(statusTypeID uint) error {
	if a.status == vo.StatusCancelled {
		return nil
	}
	if statusTypeID == 0 {
		return fmt.Errorf("cancelled status type is not resolvable")
	}
	if !a.status.CanTransitionTo(vo.StatusCancelled) {
		return fmt.Errorf("cannot cancel attachment with status %s", a.status)
	}
	a.status = vo.StatusCancelled
	a.statusTypeID = statusTypeID
	a.touch()
	return nil
}

func (a *AddOnAttachment) touch() {
	a.updatedAt = time.Now()
	a.version++
}
