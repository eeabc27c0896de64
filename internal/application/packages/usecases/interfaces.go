package usecases

import (
	"context"
	"math"

	"github.com/abrigo-care/abrigo/internal/shared/config"
)

// User is the projection of a platform user the billing engine needs: enough
// for existence and role gating, nothing more.
type User struct {
	ID    uint
	Email string
	Roles []string
}

// UserDirectory looks platform users up. Implementations return (nil, nil)
// when the user does not exist.
type UserDirectory interface {
	GetUser(ctx context.Context, userID uint) (*User, error)
}

// CareRelationships answers whether a user has any dependent under delegated
// care, which blocks direct contracting.
type CareRelationships interface {
	HasDelegatedCare(ctx context.Context, userID uint) (bool, error)
}

// ReferralValidation is the outcome of validating a referral code. Commission
// bookkeeping stays on the referral side; the billing engine only consumes
// the validity bit.
type ReferralValidation struct {
	IsValid bool
	Reason  string
}

// ReferralValidator validates referral codes against the referral subsystem.
type ReferralValidator interface {
	ValidateReferralCode(ctx context.Context, code, email string) (ReferralValidation, error)
}

// StatusCatalog resolves lifecycle status names to their catalog IDs.
// Implementations must return an error when the name cannot be resolved;
// billing operations fail closed on catalog misses.
type StatusCatalog interface {
	GetStatusID(ctx context.Context, name string) (uint, error)
}

// BillingPolicy is the injected business policy: which roles may subscribe
// and how large the referral discount is.
type BillingPolicy struct {
	AllowedSubscriberRoles []string
	ViewOnlyRole           string
	AdminRole              string
	ReferralDiscount       float64
}

// NewBillingPolicy builds the policy from configuration, falling back to the
// platform defaults when fields are unset.
func NewBillingPolicy(cfg config.BillingConfig) BillingPolicy {
	policy := BillingPolicy{
		AllowedSubscriberRoles: cfg.AllowedSubscriberRoles,
		ViewOnlyRole:           cfg.ViewOnlyRole,
		AdminRole:              cfg.AdminRole,
		ReferralDiscount:       cfg.ReferralDiscountPercent,
	}
	if len(policy.AllowedSubscriberRoles) == 0 {
		policy.AllowedSubscriberRoles = []string{
			"institution_admin",
			"cared_person_self",
			"family",
			"family_member",
		}
	}
	if policy.ViewOnlyRole == "" {
		policy.ViewOnlyRole = "institution_staff"
	}
	if policy.AdminRole == "" {
		policy.AdminRole = "institution_admin"
	}
	if policy.ReferralDiscount == 0 {
		policy.ReferralDiscount = 0.10
	}
	return policy
}

// DiscountedPrice applies the referral discount to a minor-unit price,
// rounding down.
func (p BillingPolicy) DiscountedPrice(base uint64) uint64 {
	return uint64(math.Floor(float64(base) * (1 - p.ReferralDiscount)))
}

func (p BillingPolicy) roleAllowed(role string) bool {
	for _, allowed := range p.AllowedSubscriberRoles {
		if role == allowed {
			return true
		}
	}
	return false
}

// AnyRoleAllowed reports whether any of the user's roles may subscribe.
func (p BillingPolicy) AnyRoleAllowed(roles []string) bool {
	for _, role := range roles {
		if p.roleAllowed(role) {
			return true
		}
	}
	return false
}

// IsViewOnlyStaff reports whether the roles contain the view-only staff role
// without the admin role. This is evaluated before the generic allow-list
// check; staff-without-admin is always rejected.
func (p BillingPolicy) IsViewOnlyStaff(roles []string) bool {
	hasStaff := false
	hasAdmin := false
	for _, role := range roles {
		if role == p.ViewOnlyRole {
			hasStaff = true
		}
		if role == p.AdminRole {
			hasAdmin = true
		}
	}
	return hasStaff && !hasAdmin
}
