// internal/router/router.go
package router

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/juggernaut03/kalakritBackend/internal/config"
	"github.com/juggernaut03/kalakritBackend/internal/handlers"
	"github.com/juggernaut03/kalakritBackend/internal/metrics"
	"github.com/juggernaut03/kalakritBackend/internal/middleware"
	"github.com/juggernaut03/kalakritBackend/internal/models"
	"github.com/juggernaut03/kalakritBackend/internal/services"
	"github.com/juggernaut03/kalakritBackend/internal/utils"
)

// Dependencies are the stores and clients the routes are built on.
type Dependencies struct {
	Users         services.UserRepository
	Products      services.ProductRepository
	Orders        services.OrderRepository
	Notifications services.NotificationRepository
	Images        services.ImageStore
	JWT           *utils.JWTManager
	// AuthLimiter throttles register and login. A nil limiter is built from cfg.
	AuthLimiter *middleware.RateLimiter
	Clock       services.Clock
}

func Initialize(cfg *config.Config, deps Dependencies) *gin.Engine {
	now := deps.Clock
	if now == nil {
		now = time.Now
	}
	authLimiter := deps.AuthLimiter
	if authLimiter == nil {
		authLimiter = middleware.PerMinute(cfg.RateLimit.AuthPerMinute)
	}

	// Initialize services
	notificationService := services.NewNotificationService(deps.Notifications, now)
	authService := services.NewAuthService(deps.Users, deps.JWT, now)
	productService := services.NewProductService(deps.Products, deps.Images, now)
	orderService := services.NewOrderService(deps.Orders, deps.Products, notificationService, now)
	walletService := services.NewWalletService(deps.Users, notificationService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	productHandler := handlers.NewProductHandler(productService)
	orderHandler := handlers.NewOrderHandler(orderService)
	walletHandler := handlers.NewWalletHandler(walletService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)

	r := gin.New()

	// Global middleware
	r.Use(middleware.ExposeErrors(!cfg.IsProduction()))
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeaders(cfg))
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.BodyLimit(cfg.Server.BodyLimitMB))
	r.Use(middleware.RequestLogger(cfg.Log.Requests))
	r.Use(metrics.Middleware())

	r.NoRoute(middleware.NotFound())

	r.GET("/health", handlers.Health)
	r.GET("/metrics", metrics.Handler())

	if cfg.Storage.Driver == "local" {
		r.Static("/uploads", cfg.Storage.UploadDir)
	}

	authRequired := middleware.AuthRequired(deps.JWT)

	api := r.Group("/api")
	{
		// Authentication routes
		auth := api.Group("/auth")
		{
			auth.POST("/register", authLimiter.Middleware(), authHandler.Register)
			auth.POST("/login", authLimiter.Middleware(), authHandler.Login)
			auth.GET("/me", authRequired, authHandler.Me)
		}

		// Product routes
		products := api.Group("/products")
		{
			products.GET("", productHandler.GetProducts)
			products.GET("/:id", productHandler.GetProduct)
			products.POST("", authRequired, middleware.RequireRole(models.RoleArtisan), productHandler.CreateProduct)
		}

		api.GET("/categories", productHandler.GetCategories)

		// Order routes
		orders := api.Group("/orders")
		orders.Use(authRequired)
		{
			orders.GET("", orderHandler.GetOrders)
			orders.POST("", orderHandler.CreateOrder)
			orders.GET("/:id", orderHandler.GetOrder)
			orders.PATCH("/:id/status", orderHandler.UpdateStatus)
		}

		// Wallet routes
		wallet := api.Group("/wallet")
		wallet.Use(authRequired)
		{
			wallet.GET("/balance", walletHandler.GetBalance)
			wallet.POST("/add-funds", walletHandler.AddFunds)
		}

		// Notification routes
		notifications := api.Group("/notifications")
		notifications.Use(authRequired)
		{
			notifications.GET("", notificationHandler.GetNotifications)
			notifications.PATCH("/read-all", notificationHandler.MarkAllAsRead)
			notifications.PATCH("/:id/read", notificationHandler.MarkAsRead)
		}
	}

	return r
}
