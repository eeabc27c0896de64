package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/abrigo-care/abrigo/internal/domain/catalog"
	"github.com/abrigo-care/abrigo/internal/domain/subscription"
	vo "github.com/abrigo-care/abrigo/internal/domain/subscription/valueobjects"
	"github.com/abrigo-care/abrigo/internal/shared/db"
	"github.com/abrigo-care/abrigo/internal/shared/logger"
)

type mockPackageRepository struct {
	CreateFunc      func(ctx context.Context, pkg *catalog.Package) error
	GetByIDFunc     func(ctx context.Context, id uint) (*catalog.Package, error)
	ListActiveFunc  func(ctx context.Context, filter catalog.PackageListFilter) ([]*catalog.Package, error)
	UpdateFunc      func(ctx context.Context, pkg *catalog.Package) error
	CountActiveFunc func(ctx context.Context) (int64, error)
}

func (m *mockPackageRepository) Create(ctx context.Context, pkg *catalog.Package) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, pkg)
	}
	return nil
}

func (m *mockPackageRepository) GetByID(ctx context.Context, id uint) (*catalog.Package, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockPackageRepository) ListActive(ctx context.Context, filter catalog.PackageListFilter) ([]*catalog.Package, error) {
	if m.ListActiveFunc != nil {
		return m.ListActiveFunc(ctx, filter)
	}
	return nil, nil
}

func (m *mockPackageRepository) Update(ctx context.Context, pkg *catalog.Package) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, pkg)
	}
	return nil
}

func (m *mockPackageRepository) CountActive(ctx context.Context) (int64, error) {
	if m.CountActiveFunc != nil {
		return m.CountActiveFunc(ctx)
	}
	return 0, nil
}

type mockAddOnRepository struct {
	CreateFunc     func(ctx context.Context, addOn *catalog.AddOn) error
	GetByIDFunc    func(ctx context.Context, id uint) (*catalog.AddOn, error)
	ListActiveFunc func(ctx context.Context) ([]*catalog.AddOn, error)
	UpdateFunc     func(ctx context.Context, addOn *catalog.AddOn) error
}

func (m *mockAddOnRepository) Create(ctx context.Context, addOn *catalog.AddOn) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, addOn)
	}
	return nil
}

func (m *mockAddOnRepository) GetByID(ctx context.Context, id uint) (*catalog.AddOn, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockAddOnRepository) ListActive(ctx context.Context) ([]*catalog.AddOn, error) {
	if m.ListActiveFunc != nil {
		return m.ListActiveFunc(ctx)
	}
	return nil, nil
}

func (m *mockAddOnRepository) Update(ctx context.Context, addOn *catalog.AddOn) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, addOn)
	}
	return nil
}

type mockUserPackageRepository struct {
	CreateFunc                   func(ctx context.Context, sub *subscription.UserPackage) error
	GetByIDFunc                  func(ctx context.Context, id uint) (*subscription.UserPackage, error)
	GetByIDForUpdateFunc         func(ctx context.Context, id uint) (*subscription.UserPackage, error)
	GetByUserIDFunc              func(ctx context.Context, userID uint, status *vo.SubscriptionStatus) ([]*subscription.UserPackage, error)
	UpdateFunc                   func(ctx context.Context, sub *subscription.UserPackage) error
	CountByStatusFunc            func(ctx context.Context, status vo.SubscriptionStatus) (int64, error)
	SumAmountByStatusFunc        func(ctx context.Context, status vo.SubscriptionStatus) (uint64, error)
	TypeDistributionByStatusFunc func(ctx context.Context, status vo.SubscriptionStatus) ([]subscription.TypeDistribution, error)
}

func (m *mockUserPackageRepository) Create(ctx context.Context, sub *subscription.UserPackage) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, sub)
	}
	return nil
}

func (m *mockUserPackageRepository) GetByID(ctx context.Context, id uint) (*subscription.UserPackage, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockUserPackageRepository) GetByIDForUpdate(ctx context.Context, id uint) (*subscription.UserPackage, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockUserPackageRepository) GetByUserID(ctx context.Context, userID uint, status *vo.SubscriptionStatus) ([]*subscription.UserPackage, error) {
	if m.GetByUserIDFunc != nil {
		return m.GetByUserIDFunc(ctx, userID, status)
	}
	return nil, nil
}

func (m *mockUserPackageRepository) Update(ctx context.Context, sub *subscription.UserPackage) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, sub)
	}
	return nil
}

func (m *mockUserPackageRepository) CountByStatus(ctx context.Context, status vo.SubscriptionStatus) (int64, error) {
	if m.CountByStatusFunc != nil {
		return m.CountByStatusFunc(ctx, status)
	}
	return 0, nil
}

func (m *mockUserPackageRepository) SumAmountByStatus(ctx context.Context, status vo.SubscriptionStatus) (uint64, error) {
	if m.SumAmountByStatusFunc != nil {
		return m.SumAmountByStatusFunc(ctx, status)
	}
	return 0, nil
}

func (m *mockUserPackageRepository) TypeDistributionByStatus(ctx context.Context, status vo.SubscriptionStatus) ([]subscription.TypeDistribution, error) {
	if m.TypeDistributionByStatusFunc != nil {
		return m.TypeDistributionByStatusFunc(ctx, status)
	}
	return nil, nil
}

type mockAttachmentRepository struct {
	CreateFunc             func(ctx context.Context, attachment *subscription.AddOnAttachment) error
	GetByIDFunc            func(ctx context.Context, id uint) (*subscription.AddOnAttachment, error)
	GetByUserPackageIDFunc func(ctx context.Context, userPackageID uint) ([]*subscription.AddOnAttachment, error)
	CountActiveByAddOnFunc func(ctx context.Context, userPackageID, addOnID uint) (int64, error)
	UpdateFunc             func(ctx context.Context, attachment *subscription.AddOnAttachment) error
}

func (m *mockAttachmentRepository) Create(ctx context.Context, attachment *subscription.AddOnAttachment) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, attachment)
	}
	return nil
}

func (m *mockAttachmentRepository) GetByID(ctx context.Context, id uint) (*subscription.AddOnAttachment, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockAttachmentRepository) GetByUserPackageID(ctx context.Context, userPackageID uint) ([]*subscription.AddOnAttachment, error) {
	if m.GetByUserPackageIDFunc != nil {
		return m.GetByUserPackageIDFunc(ctx, userPackageID)
	}
	return nil, nil
}

func (m *mockAttachmentRepository) CountActiveByAddOn(ctx context.Context, userPackageID, addOnID uint) (int64, error) {
	if m.CountActiveByAddOnFunc != nil {
		return m.CountActiveByAddOnFunc(ctx, userPackageID, addOnID)
	}
	return 0, nil
}

func (m *mockAttachmentRepository) Update(ctx context.Context, attachment *subscription.AddOnAttachment) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, attachment)
	}
	return nil
}

type mockUserDirectory struct {
	GetUserFunc func(ctx context.Context, userID uint) (*User, error)
}

func (m *mockUserDirectory) GetUser(ctx context.Context, userID uint) (*User, error) {
	if m.GetUserFunc != nil {
		return m.GetUserFunc(ctx, userID)
	}
	return nil, nil
}

type mockCareRelationships struct {
	HasDelegatedCareFunc func(ctx context.Context, userID uint) (bool, error)
}

func (m *mockCareRelationships) HasDelegatedCare(ctx context.Context, userID uint) (bool, error) {
	if m.HasDelegatedCareFunc != nil {
		return m.HasDelegatedCareFunc(ctx, userID)
	}
	return false, nil
}

type mockReferralValidator struct {
	ValidateFunc func(ctx context.Context, code, email string) (ReferralValidation, error)
}

func (m *mockReferralValidator) ValidateReferralCode(ctx context.Context, code, email string) (ReferralValidation, error) {
	if m.ValidateFunc != nil {
		return m.ValidateFunc(ctx, code, email)
	}
	return ReferralValidation{}, nil
}

type mockStatusCatalog struct {
	GetStatusIDFunc func(ctx context.Context, name string) (uint, error)
}

func (m *mockStatusCatalog) GetStatusID(ctx context.Context, name string) (uint, error) {
	if m.GetStatusIDFunc != nil {
		return m.GetStatusIDFunc(ctx, name)
	}
	return 1, nil
}

// statusIDs maps status names to fixed catalog IDs for tests.
func statusIDs() *mockStatusCatalog {
	ids := map[string]uint{
		"pending":   1,
		"trial":     2,
		"active":    3,
		"suspended": 4,
		"cancelled": 5,
		"expired":   6,
	}
	return &mockStatusCatalog{
		GetStatusIDFunc: func(ctx context.Context, name string) (uint, error) {
			return ids[name], nil
		},
	}
}

type noopLogger struct{}

func (noopLogger) Debug(msg string, args ...any)                   {}
func (noopLogger) Info(msg string, args ...any)                    {}
func (noopLogger) Warn(msg string, args ...any)                    {}
func (noopLogger) Error(msg string, args ...any)                   {}
func (l noopLogger) With(args ...any) logger.Interface             { return l }
func (l noopLogger) Named(name string) logger.Interface            { return l }
func (noopLogger) Debugw(msg string, keysAndValues ...interface{}) {}
func (noopLogger) Infow(msg string, keysAndValues ...interface{})  {}
func (noopLogger) Warnw(msg string, keysAndValues ...interface{})  {}
func (noopLogger) Errorw(msg string, keysAndValues ...interface{}) {}

// newTestTxManager backs the transaction manager with an in-memory database.
// The mocked repositories never touch it; only begin/commit/rollback run.
func newTestTxManager(t *testing.T) *db.TransactionManager {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	return db.NewTransactionManager(gdb)
}
