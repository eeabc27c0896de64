package valueobjects

import (
	"fmt"
	"strings"
)

// SupportLevel is the service tier attached to a package.
type SupportLevel string

const (
	SupportLevelBasic      SupportLevel = "basic"
	SupportLevelStandard   SupportLevel = "standard"
	SupportLevelPremium    SupportLevel = "premium"
	SupportLevelEnterprise SupportLevel = "enterprise"
)

var ValidSupportLevels = map[SupportLevel]bool{
	SupportLevelBasic:      true,
	SupportLevelStandard:   true,
	SupportLevelPremium:    true,
	SupportLevelEnterprise: true,
}

func ParseSupportLevel(value string) (SupportLevel, error) {
	normalized := SupportLevel(strings.ToLower(strings.TrimSpace(value)))
	if !ValidSupportLevels[normalized] {
		return "", fmt.Errorf("invalid support level: %s", value)
	}
	return normalized, nil
}

func (s SupportLevel) String() string {
	return string(s)
}

func (s SupportLevel) IsValid() bool {
	return ValidSupportLevels[s]
}
