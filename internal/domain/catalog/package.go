package catalog

import (
	"fmt"
	"time"

	vo "github.com/abrigo-care/abrigo/internal/domain/catalog/valueobjects"
)

// Currency is fixed platform-wide. Monetary amounts are integer minor units.
const Currency = "ARS"

var validCurrencies = map[string]bool{
	Currency: true,
}

// Package is a subscribable care plan. Prices are minor currency units;
// nil limits mean unlimited. Packages are soft-deactivated, never deleted,
// because subscriptions keep referencing them.
type Package struct {
	id                  uint
	packageType         vo.PackageType
	name                string
	description         string
	priceMonthly        uint64
	priceYearly         *uint64
	currency            string
	maxUsers            *int
	maxDevices          *int
	maxStorageGB        *int
	features            map[string]interface{}
	limitations         map[string]interface{}
	customizableOptions map[string]interface{}
	addOnsAvailable     map[string]interface{}
	baseConfiguration   map[string]interface{}
	isCustomizable      bool
	supportLevel        *vo.SupportLevel
	responseTimeHours   *int
	isActive            bool
	isFeatured          bool
	version             int
	createdAt           time.Time
	updatedAt           time.Time
}

func NewPackage(packageType vo.PackageType, name, description string,
	priceMonthly uint64, priceYearly *uint64, currency string) (*Package, error) {

	if name == "" {
		return nil, fmt.Errorf("package name is required")
	}
	if len(name) > 100 {
		return nil, fmt.Errorf("package name too long (max 100 characters)")
	}
	if !packageType.IsValid() {
		return nil, fmt.Errorf("invalid package type: %s", packageType)
	}
	if currency == "" {
		currency = Currency
	}
	if !validCurrencies[currency] {
		return nil, fmt.Errorf("invalid currency code: %s", currency)
	}

	now := time.Now()
	return &Package{
		packageType:    packageType,
		name:           name,
		description:    description,
		priceMonthly:   priceMonthly,
		priceYearly:    priceYearly,
		currency:       currency,
		isCustomizable: true,
		isActive:       true,
		version:        1,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

func ReconstructPackage(id uint, packageType vo.PackageType, name, description string,
	priceMonthly uint64, priceYearly *uint64, currency string,
	maxUsers, maxDevices, maxStorageGB *int,
	features, limitations, customizableOptions, addOnsAvailable, baseConfiguration map[string]interface{},
	isCustomizable bool, supportLevel *vo.SupportLevel, responseTimeHours *int,
	isActive, isFeatured bool, version int, createdAt, updatedAt time.Time) (*Package, error) {

	if id == 0 {
		return nil, fmt.Errorf("package ID cannot be zero")
	}
	if !packageType.IsValid() {
		return nil, fmt.Errorf("invalid package type: %s", packageType)
	}
	if !validCurrencies[currency] {
		return nil, fmt.Errorf("invalid currency code: %s", currency)
	}
	if supportLevel != nil && !supportLevel.IsValid() {
		return nil, fmt.Errorf("invalid support level: %s", *supportLevel)
	}

	return &Package{
		id:                  id,
		packageType:         packageType,
		name:                name,
		description:         description,
		priceMonthly:        priceMonthly,
		priceYearly:         priceYearly,
		currency:            currency,
		maxUsers:            maxUsers,
		maxDevices:          maxDevices,
		maxStorageGB:        maxStorageGB,
		features:            features,
		limitations:         limitations,
		customizableOptions: customizableOptions,
		addOnsAvailable:     addOnsAvailable,
		baseConfiguration:   baseConfiguration,
		isCustomizable:      isCustomizable,
		supportLevel:        supportLevel,
		responseTimeHours:   responseTimeHours,
		isActive:            isActive,
		isFeatured:          isFeatured,
		version:             version,
		createdAt:           createdAt,
		updatedAt:           updatedAt,
	}, nil
}

func (p *Package) ID() uint {
	return p.id
}

// SetID sets the package ID (only for persistence layer use)
func (p *Package) SetID(id uint) error {
	if p.id != 0 {
		return fmt.Errorf("package ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("package ID cannot be zero")
	}
	p.id = id
	return nil
}

func (p *Package) PackageType() vo.PackageType {
	return p.packageType
}

func (p *Package) Name() string {
	return p.name
}

func (p *Package) Description() string {
	return p.description
}

func (p *Package) PriceMonthly() uint64 {
	return p.priceMonthly
}

func (p *Package) PriceYearly() *uint64 {
	return p.priceYearly
}

func (p *Package) Currency() string {
	return p.currency
}

func (p *Package) MaxUsers() *int {
	return p.maxUsers
}

func (p *Package) MaxDevices() *int {
	return p.maxDevices
}

func (p *Package) MaxStorageGB() *int {
	return p.maxStorageGB
}

func (p *Package) Features() map[string]interface{} {
	return p.features
}

func (p *Package) Limitations() map[string]interface{} {
	return p.limitations
}

func (p *Package) CustomizableOptions() map[string]interface{} {
	return p.customizableOptions
}

func (p *Package) AddOnsAvailable() map[string]interface{} {
	return p.addOnsAvailable
}

func (p *Package) BaseConfiguration() map[string]interface{} {
	return p.baseConfiguration
}

func (p *Package) IsCustomizable() bool {
	return p.isCustomizable
}

func (p *Package) SupportLevel() *vo.SupportLevel {
	return p.supportLevel
}

func (p *Package) ResponseTimeHours() *int {
	return p.responseTimeHours
}

func (p *Package) IsActive() bool {
	return p.isActive
}

func (p *Package) IsFeatured() bool {
	return p.isFeatured
}

// Version returns the aggregate version for optimistic locking
func (p *Package) Version() int {
	return p.version
}

func (p *Package) CreatedAt() time.Time {
	return p.createdAt
}

func (p *Package) UpdatedAt() time.Time {
	return p.updatedAt
}

// HasUnlimitedUsers reports whether the package has no user cap.
func (p *Package) HasUnlimitedUsers() bool {
	return p.maxUsers == nil
}

// HasUnlimitedDevices reports whether the package has no device cap.
func (p *Package) HasUnlimitedDevices() bool {
	return p.maxDevices == nil
}

// PriceFor returns the list price for the given billing cycle in minor units.
// The boolean is false when no price is configured for that cycle.
func (p *Package) PriceFor(monthly bool) (uint64, bool) {
	if monthly {
		if p.priceMonthly == 0 {
			return 0, false
		}
		return p.priceMonthly, true
	}
	if p.priceYearly == nil || *p.priceYearly == 0 {
		return 0, false
	}
	return *p.priceYearly, true
}

// FeatureList returns the "features" entry of the features document as a
// string slice, used by recommendation matching.
func (p *Package) FeatureList() []string {
	if p.features == nil {
		return nil
	}
	raw, ok := p.features["features"]
	if !ok {
		return nil
	}
	items, ok := raw.([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// HasFeature reports whether the feature list contains the given feature.
func (p *Package) HasFeature(feature string) bool {
	for _, f := range p.FeatureList() {
		if f == feature {
			return true
		}
	}
	return false
}

func (p *Package) Activate() {
	if p.isActive {
		return
	}
	p.isActive = true
	p.touch()
}

// Deactivate soft-deletes the package. Rows stay referenceable by existing
// subscriptions.
func (p *Package) Deactivate() {
	if !p.isActive {
		return
	}
	p.isActive = false
	p.touch()
}

func (p *Package) UpdateName(name string) error {
	if name == "" {
		return fmt.Errorf("package name is required")
	}
	if len(name) > 100 {
		return fmt.Errorf("package name too long (max 100 characters)")
	}
	p.name = name
	p.touch()
	return nil
}

func (p *Package) UpdateDescription(description string) {
	p.description = description
	p.touch()
}

func (p *Package) UpdatePricing(priceMonthly uint64, priceYearly *uint64) error {
	if priceMonthly == 0 {
		return fmt.Errorf("monthly price is required")
	}
	p.priceMonthly = priceMonthly
	p.priceYearly = priceYearly
	p.touch()
	return nil
}

func (p *Package) UpdateLimits(maxUsers, maxDevices, maxStorageGB *int) error {
	for _, limit := range []*int{maxUsers, maxDevices, maxStorageGB} {
		if limit != nil && *limit <= 0 {
			return fmt.Errorf("limits must be positive when set")
		}
	}
	p.maxUsers = maxUsers
	p.maxDevices = maxDevices
	p.maxStorageGB = maxStorageGB
	p.touch()
	return nil
}

func (p *Package) UpdateFeatures(features map[string]interface{}) {
	p.features = features
	p.touch()
}

func (p *Package) UpdateLimitations(limitations map[string]interface{}) {
	p.limitations = limitations
	p.touch()
}

func (p *Package) UpdateCustomization(options, addOns, baseConfig map[string]interface{}, customizable bool) {
	p.customizableOptions = options
	p.addOnsAvailable = addOns
	p.baseConfiguration = baseConfig
	p.isCustomizable = customizable
	p.touch()
}

func (p *Package) UpdateSupport(level *vo.SupportLevel, responseTimeHours *int) error {
	if level != nil && !level.IsValid() {
		return fmt.Errorf("invalid support level: %s", *level)
	}
	if responseTimeHours != nil && *responseTimeHours <= 0 {
		return fmt.Errorf("response time must be positive when set")
	}
	p.supportLevel = level
	p.responseTimeHours = responseTimeHours
	p.touch()
	return nil
}

func (p *Package) SetFeatured(featured bool) {
	if p.isFeatured == featured {
		return
	}
	p.isFeatured = featured
	p.touch()
}

func (p *Package) touch() {
	p.updatedAt = time.Now()
	p.version++
}
