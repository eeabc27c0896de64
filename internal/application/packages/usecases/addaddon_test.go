package usecases

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abrigo-care/abrigo/internal/domain/catalog"
	catalogvo "github.com/abrigo-care/abrigo/internal/domain/catalog/valueobjects"
	"github.com/abrigo-care/abrigo/internal/domain/subscription"
	vo "github.com/abrigo-care/abrigo/internal/domain/subscription/valueobjects"
)

func newActiveSubscription(t *testing.T, id, userID, packageID uint) *subscription.UserPackage {
	t.Helper()
	now := time.Now()
	start := now.AddDate(0, 0, -10)
	sub, err := subscription.ReconstructUserPackage(subscription.ReconstructUserPackageParams{
		ID:              id,
		UserID:          userID,
		PackageID:       packageID,
		StartDate:       start,
		AutoRenew:       true,
		BillingCycle:    vo.BillingCycleMonthly,
		CurrentAmount:   500000,
		NextBillingDate: start.AddDate(0, 0, 30),
		Status:          vo.StatusActive,
		StatusTypeID:    3,
		Version:         1,
		CreatedAt:       start,
		UpdatedAt:       now,
	})
	require.NoError(t, err)
	return sub
}

func newAddAddOnUseCase(t *testing.T, pkgRepo *mockPackageRepository, addOnRepo *mockAddOnRepository,
	ledger *mockUserPackageRepository, attachments *mockAttachmentRepository) *AddAddOnUseCase {
	t.Helper()
	return NewAddAddOnUseCase(pkgRepo, addOnRepo, ledger, attachments,
		statusIDs(), newTestTxManager(t), noopLogger{})
}

func TestAddAddOnUseCase_Execute_Success(t *testing.T) {
	pkg := newActivePackage(t, 10, catalogvo.PackageTypeInstitutional, 1000000, nil)
	maxQuantity := 5
	addOn := newStorageAddOn(t, 5, 30000, nil, &maxQuantity)
	sub := newActiveSubscription(t, 42, 1, 10)

	pkgRepo := &mockPackageRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*catalog.Package, error) {
			return pkg, nil
		},
	}
	addOnRepo := &mockAddOnRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*catalog.AddOn, error) {
			return addOn, nil
		},
	}
	lockedLoad := false
	ledger := &mockUserPackageRepository{
		GetByIDForUpdateFunc: func(ctx context.Context, id uint) (*subscription.UserPackage, error) {
			lockedLoad = true
			return sub, nil
		},
	}
	attachments := &mockAttachmentRepository{
		CreateFunc: func(ctx context.Context, attachment *subscription.AddOnAttachment) error {
			return attachment.SetID(200)
		},
	}

	useCase := newAddAddOnUseCase(t, pkgRepo, addOnRepo, ledger, attachments)

	result, err := useCase.Execute(context.Background(), AddAddOnCommand{
		SubscriptionID: 42,
		AddOnID:        5,
		Quantity:       3,
	})

	require.NoError(t, err)
	require.NotNil(t, result)
	require.True(t, result.OK())
	assert.True(t, lockedLoad)
	assert.Equal(t, uint(42), result.Attachment.UserPackageID())
	assert.Equal(t, 3, result.Attachment.Quantity())
	assert.Equal(t, uint64(90000), result.Attachment.CurrentAmount())
	assert.Equal(t, vo.StatusActive, result.Attachment.Status())
}

func TestAddAddOnUseCase_Execute_DefaultsQuantityAndCycle(t *testing.T) {
	pkg := newActivePackage(t, 10, catalogvo.PackageTypeIndividual, 500000, nil)
	addOn := newStorageAddOn(t, 5, 30000, nil, nil)
	sub := newActiveSubscription(t, 42, 1, 10)

	pkgRepo := &mockPackageRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*catalog.Package, error) {
			return pkg, nil
		},
	}
	addOnRepo := &mockAddOnRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*catalog.AddOn, error) {
			return addOn, nil
		},
	}
	ledger := &mockUserPackageRepository{
		GetByIDForUpdateFunc: func(ctx context.Context, id uint) (*subscription.UserPackage, error) {
			return sub, nil
		},
	}
	attachments := &mockAttachmentRepository{
		CreateFunc: func(ctx context.Context, attachment *subscription.AddOnAttachment) error {
			return attachment.SetID(201)
		},
	}

	useCase := newAddAddOnUseCase(t, pkgRepo, addOnRepo, ledger, attachments)

	result, err := useCase.Execute(context.Background(), AddAddOnCommand{
		SubscriptionID: 42,
		AddOnID:        5,
	})

	require.NoError(t, err)
	require.True(t, result.OK())
	assert.Equal(t, 1, result.Attachment.Quantity())
	assert.Equal(t, vo.BillingCycleMonthly, result.Attachment.BillingCycle())
	assert.Equal(t, uint64(30000), result.Attachment.CurrentAmount())
}

func TestAddAddOnUseCase_Execute_BusinessFailures(t *testing.T) {
	pkg := newActivePackage(t, 10, catalogvo.PackageTypeIndividual, 500000, nil)
	maxQuantity := 2
	inactiveAddOn := newStorageAddOn(t, 5, 30000, nil, nil)
	inactiveAddOn.Deactivate()

	tests := []struct {
		name            string
		subscription    *subscription.UserPackage
		addOn           *catalog.AddOn
		command         AddAddOnCommand
		expectedMessage string
	}{
		{
			name:            "subscription not found",
			subscription:    nil,
			addOn:           newStorageAddOn(t, 5, 30000, nil, nil),
			command:         AddAddOnCommand{SubscriptionID: 42, AddOnID: 5},
			expectedMessage: "subscription not found",
		},
		{
			name:            "add-on not found",
			subscription:    newActiveSubscription(t, 42, 1, 10),
			addOn:           nil,
			command:         AddAddOnCommand{SubscriptionID: 42, AddOnID: 5},
			expectedMessage: "add-on not found or not available",
		},
		{
			name:            "inactive add-on",
			subscription:    newActiveSubscription(t, 42, 1, 10),
			addOn:           inactiveAddOn,
			command:         AddAddOnCommand{SubscriptionID: 42, AddOnID: 5},
			expectedMessage: "add-on not found or not available",
		},
		{
			name:            "incompatible package type",
			subscription:    newActiveSubscription(t, 42, 1, 10),
			addOn:           newStorageAddOn(t, 5, 30000, []catalogvo.PackageType{catalogvo.PackageTypeInstitutional}, nil),
			command:         AddAddOnCommand{SubscriptionID: 42, AddOnID: 5},
			expectedMessage: "not compatible with individual packages",
		},
		{
			name:            "quantity above max_quantity",
			subscription:    newActiveSubscription(t, 42, 1, 10),
			addOn:           newStorageAddOn(t, 5, 30000, nil, &maxQuantity),
			command:         AddAddOnCommand{SubscriptionID: 42, AddOnID: 5, Quantity: 3},
			expectedMessage: "quantity exceeds the maximum of 2",
		},
		{
			name:            "negative quantity",
			subscription:    newActiveSubscription(t, 42, 1, 10),
			addOn:           newStorageAddOn(t, 5, 30000, nil, nil),
			command:         AddAddOnCommand{SubscriptionID: 42, AddOnID: 5, Quantity: -1},
			expectedMessage: "quantity must be at least 1",
		},
		{
			name:            "invalid billing cycle",
			subscription:    newActiveSubscription(t, 42, 1, 10),
			addOn:           newStorageAddOn(t, 5, 30000, nil, nil),
			command:         AddAddOnCommand{SubscriptionID: 42, AddOnID: 5, BillingCycle: "weekly"},
			expectedMessage: "invalid billing cycle",
		},
		{
			name:            "yearly cycle without a yearly price",
			subscription:    newActiveSubscription(t, 42, 1, 10),
			addOn:           newStorageAddOn(t, 5, 30000, nil, nil),
			command:         AddAddOnCommand{SubscriptionID: 42, AddOnID: 5, BillingCycle: "yearly"},
			expectedMessage: "price not available",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pkgRepo := &mockPackageRepository{
				GetByIDFunc: func(ctx context.Context, id uint) (*catalog.Package, error) {
					return pkg, nil
				},
			}
			addOnRepo := &mockAddOnRepository{
				GetByIDFunc: func(ctx context.Context, id uint) (*catalog.AddOn, error) {
					return tt.addOn, nil
				},
			}
			ledger := &mockUserPackageRepository{
				GetByIDForUpdateFunc: func(ctx context.Context, id uint) (*subscription.UserPackage, error) {
					return tt.subscription, nil
				},
			}
			attachmentCreated := false
			attachments := &mockAttachmentRepository{
				CreateFunc: func(ctx context.Context, attachment *subscription.AddOnAttachment) error {
					attachmentCreated = true
					return nil
				},
			}

			useCase := newAddAddOnUseCase(t, pkgRepo, addOnRepo, ledger, attachments)

			result, err := useCase.Execute(context.Background(), tt.command)

			require.NoError(t, err)
			require.NotNil(t, result)
			assert.False(t, result.OK())
			assert.Contains(t, result.Message, tt.expectedMessage)
			assert.False(t, attachmentCreated)
		})
	}
}

func TestAddAddOnUseCase_Execute_MissingPackageIsInfraError(t *testing.T) {
	sub := newActiveSubscription(t, 42, 1, 10)
	pkgRepo := &mockPackageRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*catalog.Package, error) {
			return nil, nil
		},
	}
	ledger := &mockUserPackageRepository{
		GetByIDForUpdateFunc: func(ctx context.Context, id uint) (*subscription.UserPackage, error) {
			return sub, nil
		},
	}

	useCase := newAddAddOnUseCase(t, pkgRepo, &mockAddOnRepository{}, ledger, &mockAttachmentRepository{})

	result, err := useCase.Execute(context.Background(), AddAddOnCommand{SubscriptionID: 42, AddOnID: 5})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "missing package")
}

func TestAddAddOnUseCase_Execute_RepositoryError(t *testing.T) {
	ledger := &mockUserPackageRepository{
		GetByIDForUpdateFunc: func(ctx context.Context, id uint) (*subscription.UserPackage, error) {
			return nil, errors.New("lock wait timeout")
		},
	}

	useCase := newAddAddOnUseCase(t, &mockPackageRepository{}, &mockAddOnRepository{}, ledger, &mockAttachmentRepository{})

	result, err := useCase.Execute(context.Background(), AddAddOnCommand{SubscriptionID: 42, AddOnID: 5})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "lock wait timeout")
}
