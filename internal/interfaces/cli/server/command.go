package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/abrigo-care/abrigo/internal/application/packages/usecases"
	"github.com/abrigo-care/abrigo/internal/infrastructure/adapters/identity"
	"github.com/abrigo-care/abrigo/internal/infrastructure/adapters/referral"
	"github.com/abrigo-care/abrigo/internal/infrastructure/adapters/statuscatalog"
	"github.com/abrigo-care/abrigo/internal/infrastructure/cache"
	"github.com/abrigo-care/abrigo/internal/infrastructure/config"
	"github.com/abrigo-care/abrigo/internal/infrastructure/database"
	"github.com/abrigo-care/abrigo/internal/infrastructure/repository"
	"github.com/abrigo-care/abrigo/internal/interfaces/http/handlers"
	"github.com/abrigo-care/abrigo/internal/interfaces/http/routes"
	"github.com/abrigo-care/abrigo/internal/shared/biztime"
	"github.com/abrigo-care/abrigo/internal/shared/db"
	"github.com/abrigo-care/abrigo/internal/shared/logger"
)

var env string

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Start the Abrigo billing HTTP server with the specified configuration.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg.Server.Mode = mapEnvToGinMode(env)

	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("starting server", "environment", env)

	if err := biztime.Init(cfg.Billing.Timezone); err != nil {
		return fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	gin.SetMode(cfg.Server.Mode)
	gin.DefaultWriter = io.Discard
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, nuHandlers int) {
	}

	if err := database.Init(&cfg.Database); err != nil {
		logger.Fatal("failed to initialize database", "error", err)
	}
	defer database.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	engine := buildEngine(cfg, redisClient)

	srv := &http.Server{
		Addr:         cfg.Server.GetAddr(),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Info("http server listening", "addr", cfg.Server.GetAddr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("http server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	logger.Info("server stopped")
	return nil
}

func buildEngine(cfg *config.Config, redisClient *redis.Client) *gin.Engine {
	gormDB := database.Get()
	appLogger := logger.NewLogger()
	txManager := db.NewTransactionManager(gormDB)

	packageRepo := repository.NewPackageRepository(gormDB, appLogger)
	addOnRepo := repository.NewAddOnRepository(gormDB, appLogger)
	ledgerRepo := repository.NewUserPackageRepository(gormDB, appLogger)
	attachmentRepo := repository.NewAddOnAttachmentRepository(gormDB, appLogger)

	statusCache := cache.NewRedisStatusTypeCache(redisClient, appLogger)
	statuses := statuscatalog.New(gormDB, statusCache, appLogger)
	directory := identity.NewDirectory(gormDB, appLogger)
	referrals := referral.NewValidator(gormDB, appLogger)
	policy := usecases.NewBillingPolicy(cfg.Billing)

	legalGate := usecases.NewValidateLegalCapacityUseCase(directory, directory, appLogger)

	packageHandler := handlers.NewPackageHandler(
		usecases.NewCreatePackageUseCase(packageRepo, appLogger),
		usecases.NewUpdatePackageUseCase(packageRepo, appLogger),
		usecases.NewGetPackageUseCase(packageRepo, appLogger),
		usecases.NewListPackagesUseCase(packageRepo, appLogger),
		usecases.NewDeletePackageUseCase(packageRepo, appLogger),
		usecases.NewCreateAddOnUseCase(addOnRepo, appLogger),
		usecases.NewListAddOnsUseCase(addOnRepo, appLogger),
		usecases.NewCalculatePriceUseCase(packageRepo, addOnRepo, appLogger),
		usecases.NewGetStatisticsUseCase(packageRepo, ledgerRepo, appLogger),
		usecases.NewGetRecommendationsUseCase(packageRepo, appLogger),
	)

	subscriptionHandler := handlers.NewSubscriptionHandler(
		usecases.NewSubscribeUseCase(
			packageRepo, addOnRepo, ledgerRepo, attachmentRepo,
			directory, legalGate, referrals, statuses, policy, txManager, appLogger,
		),
		usecases.NewGetUserSubscriptionsUseCase(ledgerRepo, appLogger),
		usecases.NewUpdateSubscriptionUseCase(ledgerRepo, appLogger),
		usecases.NewCancelSubscriptionUseCase(ledgerRepo, statuses, appLogger),
		usecases.NewAddAddOnUseCase(
			packageRepo, addOnRepo, ledgerRepo, attachmentRepo,
			statuses, txManager, appLogger,
		),
		usecases.NewRemoveAddOnUseCase(attachmentRepo, statuses, appLogger),
		legalGate,
	)

	engine := gin.New()
	engine.Use(gin.Recovery())

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.SetupPackageRoutes(engine, &routes.PackageRouteConfig{
		PackageHandler:      packageHandler,
		SubscriptionHandler: subscriptionHandler,
	})

	return engine
}

func mapEnvToGinMode(environment string) string {
	switch environment {
	case "production", "prod":
		return "release"
	case "test":
		return "test"
	default:
		return "debug"
	}
}
