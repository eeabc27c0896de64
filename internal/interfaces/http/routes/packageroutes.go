package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/abrigo-care/abrigo/internal/interfaces/http/handlers"
)

// PackageRouteConfig holds dependencies for package and subscription routes.
type PackageRouteConfig struct {
	PackageHandler      *handlers.PackageHandler
	SubscriptionHandler *handlers.SubscriptionHandler
}

// SetupPackageRoutes configures the billing engine routes.
func SetupPackageRoutes(engine *gin.Engine, cfg *PackageRouteConfig) {
	packages := engine.Group("/packages")
	{
		packages.GET("", cfg.PackageHandler.ListPackages)
		packages.GET("/recommendations", cfg.PackageHandler.GetRecommendations)
		packages.GET("/statistics", cfg.PackageHandler.GetStatistics)
		packages.GET("/add-ons", cfg.PackageHandler.ListAddOns)
		packages.GET("/:id", cfg.PackageHandler.GetPackage)

		packages.POST("", cfg.PackageHandler.CreatePackage)
		packages.PUT("/:id", cfg.PackageHandler.UpdatePackage)
		packages.DELETE("/:id", cfg.PackageHandler.DeletePackage)
		packages.POST("/add-ons", cfg.PackageHandler.CreateAddOn)
		packages.POST("/calculate-price", cfg.PackageHandler.CalculatePrice)
	}

	subscriptions := engine.Group("/subscriptions")
	{
		subscriptions.POST("", cfg.SubscriptionHandler.Subscribe)
		subscriptions.GET("/user/:user_id", cfg.SubscriptionHandler.GetUserSubscriptions)
		subscriptions.GET("/legal-capacity/:user_id/:package_id", cfg.SubscriptionHandler.ValidateLegalCapacity)
		subscriptions.PUT("/:id", cfg.SubscriptionHandler.UpdateSubscription)
		subscriptions.POST("/:id/cancel", cfg.SubscriptionHandler.CancelSubscription)
		subscriptions.POST("/:id/add-ons", cfg.SubscriptionHandler.AddAddOn)
		subscriptions.DELETE("/add-ons/:attachment_id", cfg.SubscriptionHandler.RemoveAddOn)
	}
}
