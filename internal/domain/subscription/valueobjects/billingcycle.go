package valueobjects

import (
	"fmt"
	"strings"
	"time"
)

type BillingCycle string

const (
	BillingCycleMonthly BillingCycle = "monthly"
	BillingCycleYearly  BillingCycle = "yearly"
)

var ValidBillingCycles = map[BillingCycle]bool{
	BillingCycleMonthly: true,
	BillingCycleYearly:  true,
}

// BillingCycleDays holds the fixed renewal interval per cycle. Fixed day
// counts keep billing dates from drifting across month boundaries.
var BillingCycleDays = map[BillingCycle]int{
	BillingCycleMonthly: 30,
	BillingCycleYearly:  365,
}

func ParseBillingCycle(value string) (BillingCycle, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	cycle := BillingCycle(normalized)

	if normalized == "" {
		return "", fmt.Errorf("billing cycle cannot be empty")
	}
	if !ValidBillingCycles[cycle] {
		return "", fmt.Errorf("invalid billing cycle: %s", value)
	}
	return cycle, nil
}

func (b BillingCycle) String() string {
	return string(b)
}

func (b BillingCycle) IsValid() bool {
	return ValidBillingCycles[b]
}

func (b BillingCycle) IsMonthly() bool {
	return b == BillingCycleMonthly
}

func (b BillingCycle) Days() int {
	return BillingCycleDays[b]
}

// NextBillingDate returns the renewal date for a period starting at from:
// +30 days for monthly, +365 days for yearly.
func (b BillingCycle) NextBillingDate(from time.Time) time.Time {
	return from.AddDate(0, 0, b.Days())
}

func (b BillingCycle) MarshalJSON() ([]byte, error) {
	return []byte(`"` + b.String() + `"`), nil
}

func (b *BillingCycle) UnmarshalJSON(data []byte) error {
	str := string(data)
	if len(str) >= 2 && str[0] == '"' && str[len(str)-1] == '"' {
		str = str[1 : len(str)-1]
	}

	cycle, err := ParseBillingCycle(str)
	if err != nil {
		return err
	}
	*b = cycle
	return nil
}
