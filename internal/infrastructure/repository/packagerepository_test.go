package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/abrigo-care/abrigo/internal/domain/catalog"
	catalogvo "github.com/abrigo-care/abrigo/internal/domain/catalog/valueobjects"
	"github.com/abrigo-care/abrigo/internal/infrastructure/persistence/models"
	"github.com/abrigo-care/abrigo/internal/shared/logger"
)

type testLogger struct{}

func (testLogger) Debug(msg string, args ...any)                   {}
func (testLogger) Info(msg string, args ...any)                    {}
func (testLogger) Warn(msg string, args ...any)                    {}
func (testLogger) Error(msg string, args ...any)                   {}
func (l testLogger) With(args ...any) logger.Interface             { return l }
func (l testLogger) Named(name string) logger.Interface            { return l }
func (testLogger) Debugw(msg string, keysAndValues ...interface{}) {}
func (testLogger) Infow(msg string, keysAndValues ...interface{})  {}
func (testLogger) Warnw(msg string, keysAndValues ...interface{})  {}
func (testLogger) Errorw(msg string, keysAndValues ...interface{}) {}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	err = gdb.AutoMigrate(
		&models.StatusTypeModel{},
		&models.PackageModel{},
		&models.AddOnModel{},
		&models.UserPackageModel{},
		&models.AddOnAttachmentModel{},
	)
	require.NoError(t, err)

	return gdb
}

func createCatalogPackage(t *testing.T, packageType catalogvo.PackageType, name string, priceMonthly uint64) *catalog.Package {
	t.Helper()
	pkg, err := catalog.NewPackage(packageType, name, "test plan", priceMonthly, nil, "ARS")
	require.NoError(t, err)
	return pkg
}

func TestPackageRepository_CreateAndGet(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewPackageRepository(gdb, testLogger{})
	ctx := context.Background()

	pkg := createCatalogPackage(t, catalogvo.PackageTypeIndividual, "Plan Básico", 500000)
	pkg.UpdateFeatures(map[string]interface{}{"features": []interface{}{"monitoring"}})

	err := repo.Create(ctx, pkg)
	require.NoError(t, err)
	assert.NotZero(t, pkg.ID())

	found, err := repo.GetByID(ctx, pkg.ID())
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Plan Básico", found.Name())
	assert.Equal(t, catalogvo.PackageTypeIndividual, found.PackageType())
	assert.Equal(t, uint64(500000), found.PriceMonthly())
	assert.Equal(t, "ARS", found.Currency())
	assert.True(t, found.HasFeature("monitoring"))
}

func TestPackageRepository_GetByID_NotFound(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewPackageRepository(gdb, testLogger{})

	found, err := repo.GetByID(context.Background(), 999)

	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestPackageRepository_ListActive(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewPackageRepository(gdb, testLogger{})
	ctx := context.Background()

	expensive := createCatalogPackage(t, catalogvo.PackageTypeIndividual, "Plan Premium", 900000)
	cheap := createCatalogPackage(t, catalogvo.PackageTypeIndividual, "Plan Básico", 300000)
	cheap.SetFeatured(true)
	institutional := createCatalogPackage(t, catalogvo.PackageTypeInstitutional, "Plan Geriátrico", 1500000)
	inactive := createCatalogPackage(t, catalogvo.PackageTypeIndividual, "Plan Viejo", 100000)
	inactive.Deactivate()

	for _, pkg := range []*catalog.Package{expensive, cheap, institutional, inactive} {
		require.NoError(t, repo.Create(ctx, pkg))
	}

	t.Run("orders by ascending monthly price and skips inactive", func(t *testing.T) {
		packages, err := repo.ListActive(ctx, catalog.PackageListFilter{})
		require.NoError(t, err)
		require.Len(t, packages, 3)
		assert.Equal(t, "Plan Básico", packages[0].Name())
		assert.Equal(t, "Plan Premium", packages[1].Name())
		assert.Equal(t, "Plan Geriátrico", packages[2].Name())
	})

	t.Run("filters by package type", func(t *testing.T) {
		packageType := catalogvo.PackageTypeInstitutional
		packages, err := repo.ListActive(ctx, catalog.PackageListFilter{PackageType: &packageType})
		require.NoError(t, err)
		require.Len(t, packages, 1)
		assert.Equal(t, "Plan Geriátrico", packages[0].Name())
	})

	t.Run("filters by featured flag", func(t *testing.T) {
		featured := true
		packages, err := repo.ListActive(ctx, catalog.PackageListFilter{IsFeatured: &featured})
		require.NoError(t, err)
		require.Len(t, packages, 1)
		assert.Equal(t, "Plan Básico", packages[0].Name())
	})
}

func TestPackageRepository_Update(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewPackageRepository(gdb, testLogger{})
	ctx := context.Background()

	pkg := createCatalogPackage(t, catalogvo.PackageTypeIndividual, "Plan Básico", 500000)
	require.NoError(t, repo.Create(ctx, pkg))

	require.NoError(t, pkg.UpdateName("Plan Renovado"))
	require.NoError(t, pkg.UpdatePricing(550000, nil))
	pkg.Deactivate()

	err := repo.Update(ctx, pkg)
	require.NoError(t, err)

	found, err := repo.GetByID(ctx, pkg.ID())
	require.NoError(t, err)
	assert.Equal(t, "Plan Renovado", found.Name())
	assert.Equal(t, uint64(550000), found.PriceMonthly())
	assert.False(t, found.IsActive())
	assert.Equal(t, pkg.Version(), found.Version())
}

func TestPackageRepository_CountActive(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewPackageRepository(gdb, testLogger{})
	ctx := context.Background()

	active := createCatalogPackage(t, catalogvo.PackageTypeIndividual, "Plan Básico", 500000)
	inactive := createCatalogPackage(t, catalogvo.PackageTypeIndividual, "Plan Viejo", 100000)
	inactive.Deactivate()
	require.NoError(t, repo.Create(ctx, active))
	require.NoError(t, repo.Create(ctx, inactive))

	count, err := repo.CountActive(ctx)

	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestAddOnRepository_CreateAndGet(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewAddOnRepository(gdb, testLogger{})
	ctx := context.Background()

	maxQuantity := 3
	addOn, err := catalog.NewAddOn("Telemedicina", "video consultations", catalogvo.AddOnTypeFeatures,
		80000, nil, []catalogvo.PackageType{catalogvo.PackageTypeIndividual}, &maxQuantity)
	require.NoError(t, err)

	err = repo.Create(ctx, addOn)
	require.NoError(t, err)
	assert.NotZero(t, addOn.ID())

	found, err := repo.GetByID(ctx, addOn.ID())
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Telemedicina", found.Name())
	assert.Equal(t, catalogvo.AddOnTypeFeatures, found.AddOnType())
	assert.Equal(t, []catalogvo.PackageType{catalogvo.PackageTypeIndividual}, found.CompatiblePackages())
	require.NotNil(t, found.MaxQuantity())
	assert.Equal(t, 3, *found.MaxQuantity())
}

func TestAddOnRepository_EmptyCompatibilityRoundTrips(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewAddOnRepository(gdb, testLogger{})
	ctx := context.Background()

	addOn, err := catalog.NewAddOn("Extra Storage", "more storage", catalogvo.AddOnTypeStorage, 30000, nil, nil, nil)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, addOn))

	found, err := repo.GetByID(ctx, addOn.ID())
	require.NoError(t, err)
	assert.Empty(t, found.CompatiblePackages())
	assert.True(t, found.IsCompatibleWith(catalogvo.PackageTypeInstitutional))
}

func TestAddOnRepository_ListActive(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewAddOnRepository(gdb, testLogger{})
	ctx := context.Background()

	expensive, err := catalog.NewAddOn("Analytics", "reports", catalogvo.AddOnTypeAnalytics, 90000, nil, nil, nil)
	require.NoError(t, err)
	cheap, err := catalog.NewAddOn("Extra Storage", "more storage", catalogvo.AddOnTypeStorage, 30000, nil, nil, nil)
	require.NoError(t, err)
	retired, err := catalog.NewAddOn("Legacy", "old", catalogvo.AddOnTypeSupport, 10000, nil, nil, nil)
	require.NoError(t, err)
	retired.Deactivate()

	require.NoError(t, repo.Create(ctx, expensive))
	require.NoError(t, repo.Create(ctx, cheap))
	require.NoError(t, repo.Create(ctx, retired))

	addOns, err := repo.ListActive(ctx)

	require.NoError(t, err)
	require.Len(t, addOns, 2)
	assert.Equal(t, "Extra Storage", addOns[0].Name())
	assert.Equal(t, "Analytics", addOns[1].Name())
}

func TestAddOnRepository_Update(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewAddOnRepository(gdb, testLogger{})
	ctx := context.Background()

	addOn, err := catalog.NewAddOn("Extra Storage", "more storage", catalogvo.AddOnTypeStorage, 30000, nil, nil, nil)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, addOn))

	require.NoError(t, addOn.UpdatePricing(35000, nil))
	addOn.Deactivate()

	require.NoError(t, repo.Update(ctx, addOn))

	found, err := repo.GetByID(ctx, addOn.ID())
	require.NoError(t, err)
	assert.Equal(t, uint64(35000), found.PriceMonthly())
	assert.False(t, found.IsActive())
}
