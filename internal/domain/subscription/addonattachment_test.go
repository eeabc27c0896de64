package subscription

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/abrigo-care/abrigo/internal/domain/subscription/valueobjects"
)

func newValidAttachment(t *testing.T) *AddOnAttachment {
	t.Helper()
	attachment, err := NewAddOnAttachment(42, 5, 2, vo.BillingCycleMonthly, 60000, 3, nil)
	require.NoError(t, err)
	require.NotNil(t, attachment)
	return attachment
}

func TestNewAddOnAttachment_ValidInput(t *testing.T) {
	attachment := newValidAttachment(t)

	assert.Equal(t, uint(42), attachment.UserPackageID())
	assert.Equal(t, uint(5), attachment.AddOnID())
	assert.Equal(t, 2, attachment.Quantity())
	assert.Equal(t, vo.BillingCycleMonthly, attachment.BillingCycle())
	assert.Equal(t, uint64(60000), attachment.CurrentAmount())
	assert.Equal(t, vo.StatusActive, attachment.Status())
	assert.Equal(t, uint(3), attachment.StatusTypeID())
	assert.True(t, attachment.IsActive())
	assert.Equal(t, 1, attachment.Version())
	assert.False(t, attachment.AddedAt().IsZero())
}

func TestNewAddOnAttachment_ValidationErrors(t *testing.T) {
	tests := []struct {
		name          string
		userPackageID uint
		addOnID       uint
		quantity      int
		cycle         vo.BillingCycle
		amount        uint64
		statusTypeID  uint
		expected      string
	}{
		{"zero subscription", 0, 5, 1, vo.BillingCycleMonthly, 1000, 3, "subscription ID is required"},
		{"zero add-on", 42, 0, 1, vo.BillingCycleMonthly, 1000, 3, "add-on ID is required"},
		{"zero quantity", 42, 5, 0, vo.BillingCycleMonthly, 1000, 3, "quantity must be at least 1"},
		{"invalid cycle", 42, 5, 1, "weekly", 1000, 3, "invalid billing cycle"},
		{"zero amount", 42, 5, 1, vo.BillingCycleMonthly, 0, 3, "current amount is required"},
		{"zero status type", 42, 5, 1, vo.BillingCycleMonthly, 1000, 0, "status type ID is required"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			attachment, err := NewAddOnAttachment(tc.userPackageID, tc.addOnID, tc.quantity,
				tc.cycle, tc.amount, tc.statusTypeID, nil)

			require.Error(t, err)
			assert.Nil(t, attachment)
			assert.Contains(t, err.Error(), tc.expected)
		})
	}
}

func TestAddOnAttachment_Cancel(t *testing.T) {
	attachment := newValidAttachment(t)

	err := attachment.Cancel(5)

	require.NoError(t, err)
	assert.Equal(t, vo.StatusCancelled, attachment.Status())
	assert.Equal(t, uint(5), attachment.StatusTypeID())
	assert.False(t, attachment.IsActive())

	// Cancelling again is a no-op.
	require.NoError(t, attachment.Cancel(5))
}

func TestAddOnAttachment_Cancel_RequiresResolvedStatus(t *testing.T) {
	attachment := newValidAttachment(t)

	err := attachment.Cancel(0)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not resolvable")
	assert.Equal(t, vo.StatusActive, attachment.Status())
}

func TestAddOnAttachment_SetID(t *testing.T) {
	attachment := newValidAttachment(t)

	require.NoError(t, attachment.SetID(200))
	assert.Equal(t, uint(200), attachment.ID())
	assert.Error(t, attachment.SetID(201))
}
