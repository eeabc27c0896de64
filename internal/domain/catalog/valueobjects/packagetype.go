package valueobjects

import (
	"fmt"
	"strings"
)

// PackageType identifies who a care package is sold to.
type PackageType string

const (
	PackageTypeIndividual    PackageType = "individual"
	PackageTypeProfessional  PackageType = "professional"
	PackageTypeInstitutional PackageType = "institutional"
)

var ValidPackageTypes = map[PackageType]bool{
	PackageTypeIndividual:    true,
	PackageTypeProfessional:  true,
	PackageTypeInstitutional: true,
}

func ParsePackageType(value string) (PackageType, error) {
	normalized := PackageType(strings.ToLower(strings.TrimSpace(value)))
	if !ValidPackageTypes[normalized] {
		return "", fmt.Errorf("invalid package type: %s", value)
	}
	return normalized, nil
}

func (t PackageType) String() string {
	return string(t)
}

func (t PackageType) IsValid() bool {
	return ValidPackageTypes[t]
}
