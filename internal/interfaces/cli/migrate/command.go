package migrate

import (
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/abrigo-care/abrigo/internal/infrastructure/config"
	"github.com/abrigo-care/abrigo/internal/infrastructure/database"
	"github.com/abrigo-care/abrigo/internal/infrastructure/persistence/models"
	"github.com/abrigo-care/abrigo/internal/shared/logger"
)

var env string

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Run the billing schema migrations and seed the status catalog.`,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	cmd.AddCommand(
		newUpCommand(),
		newSeedCommand(),
	)

	return cmd
}

func newUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply the billing schema",
		RunE:  runUp,
	}
}

func newSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed the status catalog",
		RunE:  runSeed,
	}
}

func setup() error {
	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	return nil
}

func runUp(cmd *cobra.Command, args []string) error {
	if err := setup(); err != nil {
		return err
	}
	defer database.Close()

	logger.Info("running schema migration")
	if err := database.Get().AutoMigrate(
		&models.StatusTypeModel{},
		&models.PackageModel{},
		&models.AddOnModel{},
		&models.UserPackageModel{},
		&models.AddOnAttachmentModel{},
	); err != nil {
		return fmt.Errorf("schema migration failed: %w", err)
	}

	logger.Info("schema migration completed")
	return nil
}

// Lifecycle statuses the engine resolves at runtime. Writes fail when an
// entry is missing, so seeding must run before the first subscription.
var statusSeeds = []models.StatusTypeModel{
	{Name: "pending", Category: "subscription", Description: "Awaiting activation"},
	{Name: "trial", Category: "subscription", Description: "Trial period"},
	{Name: "active", Category: "subscription", Description: "Active subscription"},
	{Name: "suspended", Category: "subscription", Description: "Temporarily suspended"},
	{Name: "cancelled", Category: "subscription", Description: "Cancelled by user or admin"},
	{Name: "expired", Category: "subscription", Description: "Billing period ended"},
}

func runSeed(cmd *cobra.Command, args []string) error {
	if err := setup(); err != nil {
		return err
	}
	defer database.Close()

	gormDB := database.Get()
	for _, seed := range statusSeeds {
		var existing models.StatusTypeModel
		err := gormDB.Where("name = ?", seed.Name).First(&existing).Error
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return fmt.Errorf("failed to check status %q: %w", seed.Name, err)
		}
		if err := gormDB.Create(&seed).Error; err != nil {
			return fmt.Errorf("failed to seed status %q: %w", seed.Name, err)
		}
		logger.Info("seeded status type", "name", seed.Name)
	}

	logger.Info("status catalog seeding completed")
	return nil
}
