package catalog

import (
	"fmt"
	"time"

	vo "github.com/abrigo-care/abrigo/internal/domain/catalog/valueobjects"
)

// AddOn is an optional paid extension attachable to a subscription.
// compatiblePackages restricts which package types it may attach to;
// an empty set means compatible with all.
type AddOn struct {
	id                 uint
	name               string
	description        string
	addOnType          vo.AddOnType
	priceMonthly       uint64
	priceYearly        *uint64
	configuration      map[string]interface{}
	limitations        map[string]interface{}
	compatiblePackages []vo.PackageType
	maxQuantity        *int
	isActive           bool
	version            int
	createdAt          time.Time
	updatedAt          time.Time
}

func NewAddOn(name, description string, addOnType vo.AddOnType,
	priceMonthly uint64, priceYearly *uint64,
	compatiblePackages []vo.PackageType, maxQuantity *int) (*AddOn, error) {

	if name == "" {
		return nil, fmt.Errorf("add-on name is required")
	}
	if len(name) > 100 {
		return nil, fmt.Errorf("add-on name too long (max 100 characters)")
	}
	if !addOnType.IsValid() {
		return nil, fmt.Errorf("invalid add-on type: %s", addOnType)
	}
	if priceMonthly == 0 {
		return nil, fmt.Errorf("monthly price is required")
	}
	for _, pt := range compatiblePackages {
		if !pt.IsValid() {
			return nil, fmt.Errorf("invalid compatible package type: %s", pt)
		}
	}
	if maxQuantity != nil && *maxQuantity <= 0 {
		return nil, fmt.Errorf("max quantity must be positive when set")
	}

	now := time.Now()
	return &AddOn{
		name:               name,
		description:        description,
		addOnType:          addOnType,
		priceMonthly:       priceMonthly,
		priceYearly:        priceYearly,
		compatiblePackages: compatiblePackages,
		maxQuantity:        maxQuantity,
		isActive:           true,
		version:            1,
		createdAt:          now,
		updatedAt:          now,
	}, nil
}

func ReconstructAddOn(id uint, name, description string, addOnType vo.AddOnType,
	priceMonthly uint64, priceYearly *uint64,
	configuration, limitations map[string]interface{},
	compatiblePackages []vo.PackageType, maxQuantity *int,
	isActive bool, version int, createdAt, updatedAt time.Time) (*AddOn, error) {

	if id == 0 {
		return nil, fmt.Errorf("add-on ID cannot be zero")
	}
	if !addOnType.IsValid() {
		return nil, fmt.Errorf("invalid add-on type: %s", addOnType)
	}

	return &AddOn{
		id:                 id,
		name:               name,
		description:        description,
		addOnType:          addOnType,
		priceMonthly:       priceMonthly,
		priceYearly:        priceYearly,
		configuration:      configuration,
		limitations:        limitations,
		compatiblePackages: compatiblePackages,
		maxQuantity:        maxQuantity,
		isActive:           isActive,
		version:            version,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
	}, nil
}

func (a *AddOn) ID() uint {
	return a.id
}

// SetID sets the add-on ID (only for persistence layer use)
func (a *AddOn) SetID(id uint) error {
	if a.id != 0 {
		return fmt.Errorf("add-on ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("add-on ID cannot be zero")
	}
	a.id = id
	return nil
}

func (a *AddOn) Name() string {
	return a.name
}

func (a *AddOn) Description() string {
	return a.description
}

func (a *AddOn) AddOnType() vo.AddOnType {
	return a.addOnType
}

func (a *AddOn) PriceMonthly() uint64 {
	return a.priceMonthly
}

func (a *AddOn) PriceYearly() *uint64 {
	return a.priceYearly
}

func (a *AddOn) Configuration() map[string]interface{} {
	return a.configuration
}

func (a *AddOn) Limitations() map[string]interface{} {
	return a.limitations
}

func (a *AddOn) CompatiblePackages() []vo.PackageType {
	return a.compatiblePackages
}

func (a *AddOn) MaxQuantity() *int {
	return a.maxQuantity
}

func (a *AddOn) IsActive() bool {
	return a.isActive
}

func (a *AddOn) Version() int {
	return a.version
}

func (a *AddOn) CreatedAt() time.Time {
	return a.createdAt
}

func (a *AddOn) UpdatedAt() time.Time {
	return a.updatedAt
}

// PriceFor returns the unit price for the given billing cycle in minor units.
// The boolean is false when no price is configured for that cycle.
func (a *AddOn) PriceFor(monthly bool) (uint64, bool) {
	if monthly {
		if a.priceMonthly == 0 {
			return 0, false
		}
		return a.priceMonthly, true
	}
	if a.priceYearly == nil || *a.priceYearly == 0 {
		return 0, false
	}
	return *a.priceYearly, true
}

// IsCompatibleWith reports whether the add-on may attach to a package of the
// given type. An empty compatibility set allows every package type.
func (a *AddOn) IsCompatibleWith(packageType vo.PackageType) bool {
	if len(a.compatiblePackages) == 0 {
		return true
	}
	for _, pt := range a.compatiblePackages {
		if pt == packageType {
			return true
		}
	}
	return false
}

// AllowsQuantity reports whether the requested quantity is within the
// configured max_quantity bound.
func (a *AddOn) AllowsQuantity(quantity int) bool {
	if quantity < 1 {
		return false
	}
	if a.maxQuantity == nil {
		return true
	}
	return quantity <= *a.maxQuantity
}

func (a *AddOn) Activate() {
	if a.isActive {
		return
	}
	a.isActive = true
	a.touch()
}

// Deactivate soft-deletes the add-on.
func (a *AddOn) Deactivate() {
	if !a.isActive {
		return
	}
	a.isActive = false
	a.touch()
}

func (a *AddOn) UpdatePricing(priceMonthly uint64, priceYearly *uint64) error {
	if priceMonthly == 0 {
		return fmt.Errorf("monthly price is required")
	}
	a.priceMonthly = priceMonthly
	a.priceYearly = priceYearly
	a.touch()
	return nil
}

func (a *AddOn) UpdateCompatibility(compatiblePackages []vo.PackageType, maxQuantity *int) error {
	for _, pt := range compatiblePackages {
		if !pt.IsValid() {
			return fmt.Errorf("invalid compatible package type: %s", pt)
		}
	}
	if maxQuantity != nil && *maxQuantity <= 0 {
		return fmt.Errorf("max quantity must be positive when set")
	}
	a.compatiblePackages = compatiblePackages
	a.maxQuantity = maxQuantity
	a.touch()
	return nil
}

func (a *AddOn) touch() {
	a.updatedAt = time.Now()
	a.version++
}
