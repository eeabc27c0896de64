package valueobjects

import (
	"fmt"
	"strings"
)

// AddOnType classifies what a package add-on extends.
type AddOnType string

const (
	AddOnTypeStorage     AddOnType = "storage"
	AddOnTypeUsers       AddOnType = "users"
	AddOnTypeDevices     AddOnType = "devices"
	AddOnTypeFeatures    AddOnType = "features"
	AddOnTypeSupport     AddOnType = "support"
	AddOnTypeAnalytics   AddOnType = "analytics"
	AddOnTypeIntegration AddOnType = "integration"
)

var ValidAddOnTypes = map[AddOnType]bool{
	AddOnTypeStorage:     true,
	AddOnTypeUsers:       true,
	AddOnTypeDevices:     true,
	AddOnTypeFeatures:    true,
	AddOnTypeSupport:     true,
	AddOnTypeAnalytics:   true,
	AddOnTypeIntegration: true,
}

func ParseAddOnType(value string) (AddOnType, error) {
	normalized := AddOnType(strings.ToLower(strings.TrimSpace(value)))
	if !ValidAddOnTypes[normalized] {
		return "", fmt.Errorf("invalid add-on type: %s", value)
	}
	return normalized, nil
}

func (t AddOnType) String() string {
	return string(t)
}

func (t AddOnType) IsValid() bool {
	return ValidAddOnTypes[t]
}
