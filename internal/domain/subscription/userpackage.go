package subscription

import (
	"fmt"
	"time"

	vo "github.com/abrigo-care/abrigo/internal/domain/subscription/valueobjects"
)

// UserPackage is the subscription ledger aggregate: one row per user/package
// subscription. The package reference and billing cycle are fixed at creation.
// current_amount is the price actually charged, which may differ from the
// package list price when a referral discount was applied; it is set once and
// never recomputed automatically.
type UserPackage struct {
	id                        uint
	userID                    uint
	packageID                 uint
	startDate                 time.Time
	endDate                   *time.Time
	autoRenew                 bool
	billingCycle              vo.BillingCycle
	currentAmount             uint64
	nextBillingDate           time.Time
	status                    vo.SubscriptionStatus
	statusTypeID              uint
	customConfiguration       map[string]interface{}
	selectedFeatures          map[string]interface{}
	customLimits              map[string]interface{}
	legalCapacityVerified     bool
	legalRepresentativeID     *uint
	verificationDate          *time.Time
	referralCodeUsed          *string
	referralCommissionApplied bool
	version                   int
	createdAt                 time.Time
	updatedAt                 time.Time
}

// NewUserPackageParams carries the creation-time attributes of a subscription.
type NewUserPackageParams struct {
	UserID                uint
	PackageID             uint
	BillingCycle          vo.BillingCycle
	CurrentAmount         uint64
	StartDate             time.Time
	NextBillingDate       time.Time
	StatusTypeID          uint
	Status                vo.SubscriptionStatus
	AutoRenew             bool
	CustomConfiguration   map[string]interface{}
	SelectedFeatures      map[string]interface{}
	CustomLimits          map[string]interface{}
	LegalCapacityVerified bool
	LegalRepresentativeID *uint
	ReferralCodeUsed      *string
	ReferralApplied       bool
}

func NewUserPackage(p NewUserPackageParams) (*UserPackage, error) {
	if p.UserID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if p.PackageID == 0 {
		return nil, fmt.Errorf("package ID is required")
	}
	if !p.BillingCycle.IsValid() {
		return nil, fmt.Errorf("invalid billing cycle: %s", p.BillingCycle)
	}
	if p.CurrentAmount == 0 {
		return nil, fmt.Errorf("current amount is required")
	}
	if !p.Status.IsValid() {
		return nil, fmt.Errorf("invalid status: %s", p.Status)
	}
	if p.StatusTypeID == 0 {
		return nil, fmt.Errorf("status type ID is required")
	}
	if p.ReferralApplied && p.ReferralCodeUsed == nil {
		return nil, fmt.Errorf("referral code is required when commission is applied")
	}

	var verificationDate *time.Time
	if p.LegalCapacityVerified {
		now := time.Now()
		verificationDate = &now
	}

	now := time.Now()
	return &UserPackage{
		userID:                    p.UserID,
		packageID:                 p.PackageID,
		startDate:                 p.StartDate,
		autoRenew:                 p.AutoRenew,
		billingCycle:              p.BillingCycle,
		currentAmount:             p.CurrentAmount,
		nextBillingDate:           p.NextBillingDate,
		status:                    p.Status,
		statusTypeID:              p.StatusTypeID,
		customConfiguration:       p.CustomConfiguration,
		selectedFeatures:          p.SelectedFeatures,
		customLimits:              p.CustomLimits,
		legalCapacityVerified:     p.LegalCapacityVerified,
		legalRepresentativeID:     p.LegalRepresentativeID,
		verificationDate:          verificationDate,
		referralCodeUsed:          p.ReferralCodeUsed,
		referralCommissionApplied: p.ReferralApplied,
		version:                   1,
		createdAt:                 now,
		updatedAt:                 now,
	}, nil
}

// ReconstructUserPackageParams carries every persisted attribute.
type ReconstructUserPackageParams struct {
	ID                        uint
	UserID                    uint
	PackageID                 uint
	StartDate                 time.Time
	EndDate                   *time.Time
	AutoRenew                 bool
	BillingCycle              vo.BillingCycle
	CurrentAmount             uint64
	NextBillingDate           time.Time
	Status                    vo.SubscriptionStatus
	StatusTypeID              uint
	CustomConfiguration       map[string]interface{}
	SelectedFeatures          map[string]interface{}
	CustomLimits              map[string]interface{}
	LegalCapacityVerified     bool
	LegalRepresentativeID     *uint
	VerificationDate          *time.Time
	ReferralCodeUsed          *string
	ReferralCommissionApplied bool
	Version                   int
	CreatedAt                 time.Time
	UpdatedAt                 time.Time
}

func ReconstructUserPackage(p ReconstructUserPackageParams) (*UserPackage, error) {
	if p.ID == 0 {
		return nil, fmt.Errorf("subscription ID cannot be zero")
	}
	if p.UserID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if p.PackageID == 0 {
		return nil, fmt.Errorf("package ID is required")
	}
	if !p.Status.IsValid() {
		return nil, fmt.Errorf("invalid subscription status: %s", p.Status)
	}
	if !p.BillingCycle.IsValid() {
		return nil, fmt.Errorf("invalid billing cycle: %s", p.BillingCycle)
	}

	return &UserPackage{
		id:                        p.ID,
		userID:                    p.UserID,
		packageID:                 p.PackageID,
		startDate:                 p.StartDate,
		endDate:                   p.EndDate,
		autoRenew:                 p.AutoRenew,
		billingCycle:              p.BillingCycle,
		currentAmount:             p.CurrentAmount,
		nextBillingDate:           p.NextBillingDate,
		status:                    p.Status,
		statusTypeID:              p.StatusTypeID,
		customConfiguration:       p.CustomConfiguration,
		selectedFeatures:          p.SelectedFeatures,
		customLimits:              p.CustomLimits,
		legalCapacityVerified:     p.LegalCapacityVerified,
		legalRepresentativeID:     p.LegalRepresentativeID,
		verificationDate:          p.VerificationDate,
		referralCodeUsed:          p.ReferralCodeUsed,
		referralCommissionApplied: p.ReferralCommissionApplied,
		version:                   p.Version,
		createdAt:                 p.CreatedAt,
		updatedAt:                 p.UpdatedAt,
	}, nil
}

func (s *UserPackage) ID() uint {
	return s.id
}

// SetID sets the subscription ID (only for persistence layer use)
func (s *UserPackage) SetID(id uint) error {
	if s.id != 0 {
		return fmt.Errorf("subscription ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("subscription ID cannot be zero")
	}
	s.id = id
	return nil
}

func (s *UserPackage) UserID() uint {
	return s.userID
}

func (s *UserPackage) PackageID() uint {
	return s.packageID
}

func (s *UserPackage) StartDate() time.Time {
	return s.startDate
}

func (s *UserPackage) EndDate() *time.Time {
	return s.endDate
}

func (s *UserPackage) AutoRenew() bool {
	return s.autoRenew
}

func (s *UserPackage) BillingCycle() vo.BillingCycle {
	return s.billingCycle
}

func (s *UserPackage) CurrentAmount() uint64 {
	return s.currentAmount
}

func (s *UserPackage) NextBillingDate() time.Time {
	return s.nextBillingDate
}

func (s *UserPackage) Status() vo.SubscriptionStatus {
	return s.status
}

func (s *UserPackage) StatusTypeID() uint {
	return s.statusTypeID
}

func (s *UserPackage) CustomConfiguration() map[string]interface{} {
	return s.customConfiguration
}

func (s *UserPackage) SelectedFeatures() map[string]interface{} {
	return s.selectedFeatures
}

func (s *UserPackage) CustomLimits() map[string]interface{} {
	return s.customLimits
}

func (s *UserPackage) LegalCapacityVerified() bool {
	return s.legalCapacityVerified
}

func (s *UserPackage) LegalRepresentativeID() *uint {
	return s.legalRepresentativeID
}

func (s *UserPackage) VerificationDate() *time.Time {
	return s.verificationDate
}

func (s *UserPackage) ReferralCodeUsed() *string {
	return s.referralCodeUsed
}

func (s *UserPackage) ReferralCommissionApplied() bool {
	return s.referralCommissionApplied
}

// Version returns the aggregate version for optimistic locking
func (s *UserPackage) Version() int {
	return s.version
}

func (s *UserPackage) CreatedAt() time.Time {
	return s.createdAt
}

func (s *UserPackage) UpdatedAt() time.Time {
	return s.updatedAt
}

// IsActive reports whether the subscription can currently be used.
func (s *UserPackage) IsActive() bool {
	if !s.status.CanUseService() {
		return false
	}
	if s.endDate != nil && time.Now().After(*s.endDate) {
		return false
	}
	return true
}

// ApplyReferralDiscount records a referral discount at most once per
// subscription. A second attempt fails regardless of the code used.
func (s *UserPackage) ApplyReferralDiscount(code string, discountedAmount uint64) error {
	if s.referralCommissionApplied {
		return fmt.Errorf("referral discount already applied for this subscription")
	}
	if code == "" {
		return fmt.Errorf("referral code is required")
	}
	if discountedAmount == 0 || discountedAmount > s.currentAmount {
		return fmt.Errorf("invalid discounted amount")
	}
	s.currentAmount = discountedAmount
	s.referralCodeUsed = &code
	s.referralCommissionApplied = true
	s.touch()
	return nil
}

// Cancel transitions the subscription to cancelled; the row is retained.
func (s *UserPackage) Cancel(statusTypeID uint) error {
	if s.status == vo.StatusCancelled {
		return nil
	}
	if !s.status.CanTransitionTo(vo.StatusCancelled) {
		return fmt.Errorf("cannot cancel subscription with status %s", s.status)
	}
	now := time.Now()
	s.status = vo.StatusCancelled
	s.statusTypeID = statusTypeID
	s.endDate = &now
	s.autoRenew = false
	s.touch()
	return nil
}

// Suspend pauses an active subscription.
func (s *UserPackage) Suspend(statusTypeID uint) error {
	if s.status == vo.StatusSuspended {
		return nil
	}
	if !s.status.CanTransitionTo(vo.StatusSuspended) {
		return fmt.Errorf("cannot suspend subscription with status %s", s.status)
	}
	s.status = vo.StatusSuspended
	s.statusTypeID = statusTypeID
	s.touch()
	return nil
}

// Reactivate resumes a suspended or expired subscription.
func (s *UserPackage) Reactivate(statusTypeID uint) error {
	if s.status == vo.StatusActive {
		return nil
	}
	if !s.status.CanTransitionTo(vo.StatusActive) {
		return fmt.Errorf("cannot reactivate subscription with status %s", s.status)
	}
	s.status = vo.StatusActive
	s.statusTypeID = statusTypeID
	s.touch()
	return nil
}

// MarkAsExpired transitions the subscription to expired.
func (s *UserPackage) MarkAsExpired(statusTypeID uint) error {
	if s.status == vo.StatusExpired {
		return nil
	}
	if !s.status.CanTransitionTo(vo.StatusExpired) {
		return fmt.Errorf("cannot mark subscription as expired with status %s", s.status)
	}
	s.status = vo.StatusExpired
	s.statusTypeID = statusTypeID
	s.touch()
	return nil
}

func (s *UserPackage) SetAutoRenew(autoRenew bool) {
	if s.autoRenew == autoRenew {
		return
	}
	s.autoRenew = autoRenew
	s.touch()
}

func (s *UserPackage) SetEndDate(endDate *time.Time) error {
	if endDate != nil && endDate.Before(s.startDate) {
		return fmt.Errorf("end date must be after start date")
	}
	s.endDate = endDate
	s.touch()
	return nil
}

func (s *UserPackage) UpdateCustomConfiguration(config map[string]interface{}) {
	s.customConfiguration = config
	s.touch()
}

func (s *UserPackage) UpdateSelectedFeatures(features map[string]interface{}) {
	s.selectedFeatures = features
	s.touch()
}

func (s *UserPackage) UpdateCustomLimits(limits map[string]interface{}) {
	s.customLimits = limits
	s.touch()
}

func (s *UserPackage) touch() {
	s.updatedAt = time.Now()
	s.version++
}
