// Package dto holds the JSON projections of the billing aggregates. Domain
// entities keep their fields private; these shapes are what the HTTP layer
// serves.
package dto

import (
	"time"

	"github.com/abrigo-care/abrigo/internal/domain/catalog"
	"github.com/abrigo-care/abrigo/internal/domain/subscription"
)

type PackageDTO struct {
	ID                  uint                   `json:"id"`
	PackageType         string                 `json:"package_type"`
	Name                string                 `json:"name"`
	Description         string                 `json:"description"`
	PriceMonthly        uint64                 `json:"price_monthly"`
	PriceYearly         *uint64                `json:"price_yearly,omitempty"`
	Currency            string                 `json:"currency"`
	MaxUsers            *int                   `json:"max_users,omitempty"`
	MaxDevices          *int                   `json:"max_devices,omitempty"`
	MaxStorageGB        *int                   `json:"max_storage_gb,omitempty"`
	Features            map[string]interface{} `json:"features,omitempty"`
	Limitations         map[string]interface{} `json:"limitations,omitempty"`
	CustomizableOptions map[string]interface{} `json:"customizable_options,omitempty"`
	AddOnsAvailable     map[string]interface{} `json:"add_ons_available,omitempty"`
	BaseConfiguration   map[string]interface{} `json:"base_configuration,omitempty"`
	IsCustomizable      bool                   `json:"is_customizable"`
	SupportLevel        *string                `json:"support_level,omitempty"`
	ResponseTimeHours   *int                   `json:"response_time_hours,omitempty"`
	IsActive            bool                   `json:"is_active"`
	IsFeatured          bool                   `json:"is_featured"`
	CreatedAt           time.Time              `json:"created_at"`
	UpdatedAt           time.Time              `json:"updated_at"`
}

func FromPackage(pkg *catalog.Package) *PackageDTO {
	if pkg == nil {
		return nil
	}

	var supportLevel *string
	if level := pkg.SupportLevel(); level != nil {
		s := level.String()
		supportLevel = &s
	}

	return &PackageDTO{
		ID:                  pkg.ID(),
		PackageType:         pkg.PackageType().String(),
		Name:                pkg.Name(),
		Description:         pkg.Description(),
		PriceMonthly:        pkg.PriceMonthly(),
		PriceYearly:         pkg.PriceYearly(),
		Currency:            pkg.Currency(),
		MaxUsers:            pkg.MaxUsers(),
		MaxDevices:          pkg.MaxDevices(),
		MaxStorageGB:        pkg.MaxStorageGB(),
		Features:            pkg.Features(),
		Limitations:         pkg.Limitations(),
		CustomizableOptions: pkg.CustomizableOptions(),
		AddOnsAvailable:     pkg.AddOnsAvailable(),
		BaseConfiguration:   pkg.BaseConfiguration(),
		IsCustomizable:      pkg.IsCustomizable(),
		SupportLevel:        supportLevel,
		ResponseTimeHours:   pkg.ResponseTimeHours(),
		IsActive:            pkg.IsActive(),
		IsFeatured:          pkg.IsFeatured(),
		CreatedAt:           pkg.CreatedAt(),
		UpdatedAt:           pkg.UpdatedAt(),
	}
}

func FromPackages(pkgs []*catalog.Package) []*PackageDTO {
	out := make([]*PackageDTO, 0, len(pkgs))
	for _, pkg := range pkgs {
		out = append(out, FromPackage(pkg))
	}
	return out
}

type AddOnDTO struct {
	ID                 uint                   `json:"id"`
	Name               string                 `json:"name"`
	Description        string                 `json:"description"`
	AddOnType          string                 `json:"add_on_type"`
	PriceMonthly       uint64                 `json:"price_monthly"`
	PriceYearly        *uint64                `json:"price_yearly,omitempty"`
	Configuration      map[string]interface{} `json:"configuration,omitempty"`
	Limitations        map[string]interface{} `json:"limitations,omitempty"`
	CompatiblePackages []string               `json:"compatible_packages,omitempty"`
	MaxQuantity        *int                   `json:"max_quantity,omitempty"`
	IsActive           bool                   `json:"is_active"`
	CreatedAt          time.Time              `json:"created_at"`
	UpdatedAt          time.Time              `json:"updated_at"`
}

func FromAddOn(addOn *catalog.AddOn) *AddOnDTO {
	if addOn == nil {
		return nil
	}

	var compatible []string
	for _, pt := range addOn.CompatiblePackages() {
		compatible = append(compatible, pt.String())
	}

	return &AddOnDTO{
		ID:                 addOn.ID(),
		Name:               addOn.Name(),
		Description:        addOn.Description(),
		AddOnType:          addOn.AddOnType().String(),
		PriceMonthly:       addOn.PriceMonthly(),
		PriceYearly:        addOn.PriceYearly(),
		Configuration:      addOn.Configuration(),
		Limitations:        addOn.Limitations(),
		CompatiblePackages: compatible,
		MaxQuantity:        addOn.MaxQuantity(),
		IsActive:           addOn.IsActive(),
		CreatedAt:          addOn.CreatedAt(),
		UpdatedAt:          addOn.UpdatedAt(),
	}
}

func FromAddOns(addOns []*catalog.AddOn) []*AddOnDTO {
	out := make([]*AddOnDTO, 0, len(addOns))
	for _, addOn := range addOns {
		out = append(out, FromAddOn(addOn))
	}
	return out
}

type UserPackageDTO struct {
	ID                        uint                   `json:"id"`
	UserID                    uint                   `json:"user_id"`
	PackageID                 uint                   `json:"package_id"`
	StartDate                 time.Time              `json:"start_date"`
	EndDate                   *time.Time             `json:"end_date,omitempty"`
	AutoRenew                 bool                   `json:"auto_renew"`
	BillingCycle              string                 `json:"billing_cycle"`
	CurrentAmount             uint64                 `json:"current_amount"`
	NextBillingDate           time.Time              `json:"next_billing_date"`
	Status                    string                 `json:"status"`
	CustomConfiguration       map[string]interface{} `json:"custom_configuration,omitempty"`
	SelectedFeatures          map[string]interface{} `json:"selected_features,omitempty"`
	CustomLimits              map[string]interface{} `json:"custom_limits,omitempty"`
	LegalCapacityVerified     bool                   `json:"legal_capacity_verified"`
	LegalRepresentativeID     *uint                  `json:"legal_representative_id,omitempty"`
	VerificationDate          *time.Time             `json:"verification_date,omitempty"`
	ReferralCodeUsed          *string                `json:"referral_code_used,omitempty"`
	ReferralCommissionApplied bool                   `json:"referral_commission_applied"`
	CreatedAt                 time.Time              `json:"created_at"`
	UpdatedAt                 time.Time              `json:"updated_at"`
}

func FromUserPackage(sub *subscription.UserPackage) *UserPackageDTO {
	if sub == nil {
		return nil
	}

	return &UserPackageDTO{
		ID:                        sub.ID(),
		UserID:                    sub.UserID(),
		PackageID:                 sub.PackageID(),
		StartDate:                 sub.StartDate(),
		EndDate:                   sub.EndDate(),
		AutoRenew:                 sub.AutoRenew(),
		BillingCycle:              sub.BillingCycle().String(),
		CurrentAmount:             sub.CurrentAmount(),
		NextBillingDate:           sub.NextBillingDate(),
		Status:                    sub.Status().String(),
		CustomConfiguration:       sub.CustomConfiguration(),
		SelectedFeatures:          sub.SelectedFeatures(),
		CustomLimits:              sub.CustomLimits(),
		LegalCapacityVerified:     sub.LegalCapacityVerified(),
		LegalRepresentativeID:     sub.LegalRepresentativeID(),
		VerificationDate:          sub.VerificationDate(),
		ReferralCodeUsed:          sub.ReferralCodeUsed(),
		ReferralCommissionApplied: sub.ReferralCommissionApplied(),
		CreatedAt:                 sub.CreatedAt(),
		UpdatedAt:                 sub.UpdatedAt(),
	}
}

func FromUserPackages(subs []*subscription.UserPackage) []*UserPackageDTO {
	out := make([]*UserPackageDTO, 0, len(subs))
	for _, sub := range subs {
		out = append(out, FromUserPackage(sub))
	}
	return out
}

type AttachmentDTO struct {
	ID                  uint                   `json:"id"`
	UserPackageID       uint                   `json:"user_package_id"`
	AddOnID             uint                   `json:"add_on_id"`
	Quantity            int                    `json:"quantity"`
	BillingCycle        string                 `json:"billing_cycle"`
	CurrentAmount       uint64                 `json:"current_amount"`
	Status              string                 `json:"status"`
	CustomConfiguration map[string]interface{} `json:"custom_configuration,omitempty"`
	AddedAt             time.Time              `json:"added_at"`
}

func FromAttachment(attachment *subscription.AddOnAttachment) *AttachmentDTO {
	if attachment == nil {
		return nil
	}

	return &AttachmentDTO{
		ID:                  attachment.ID(),
		UserPackageID:       attachment.UserPackageID(),
		AddOnID:             attachment.AddOnID(),
		Quantity:            attachment.Quantity(),
		BillingCycle:        attachment.BillingCycle().String(),
		CurrentAmount:       attachment.CurrentAmount(),
		Status:              attachment.Status().String(),
		CustomConfiguration: attachment.CustomConfiguration(),
		AddedAt:             attachment.AddedAt(),
	}
}

func FromAttachments(attachments []*subscription.AddOnAttachment) []*AttachmentDTO {
	out := make([]*AttachmentDTO, 0, len(attachments))
	for _, attachment := range attachments {
		out = append(out, FromAttachment(attachment))
	}
	return out
}
