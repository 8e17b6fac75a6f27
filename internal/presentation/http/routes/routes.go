package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zymoune/feedstore-api/internal/config"
	domainRepo "github.com/zymoune/feedstore-api/internal/domain/repository"
	"github.com/zymoune/feedstore-api/internal/presentation/http/handler"
	"github.com/zymoune/feedstore-api/internal/presentation/http/middleware"
	"github.com/zymoune/feedstore-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth      *handler.AuthHandler
	Product   *handler.ProductHandler
	Order     *handler.OrderHandler
	Sales     *handler.SalesHandler
	Staff     *handler.StaffHandler
	Dashboard *handler.DashboardHandler
	Settings  *handler.SettingsHandler
	QR        *handler.QRHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// Uploaded product images
	router.Static("/uploads", deps.Cfg.Storage.UploadPath)

	rateLimiter := middleware.NewClientRateLimiter(middleware.RateLimiterConfig{
		RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
		BurstSize:         deps.Cfg.RateLimit.Requests,
		CleanupInterval:   5 * time.Minute,
		EntryTTL:          10 * time.Minute,
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		registerAuthRoutes(v1, h)
		registerPublicRoutes(v1, h, rateLimiter)

		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/staff/login", h.Auth.StaffLogin)
		auth.POST("/register", h.Auth.Register)
		auth.POST("/refresh", h.Auth.RefreshToken)
		auth.POST("/forgot-password", h.Auth.ForgotPassword)
		auth.POST("/reset-password", h.Auth.ResetPassword)
		// Google OAuth routes
		auth.GET("/google", h.Auth.GoogleAuthURL)
		auth.POST("/google/callback", h.Auth.GoogleCallback)
	}
}

// registerPublicRoutes wires the storefront surface: product browsing
// and the QR self-serve flow need no account.
func registerPublicRoutes(v1 *gin.RouterGroup, h *Handlers, rl *middleware.ClientRateLimiter) {
	shop := v1.Group("/shop")
	{
		shop.GET("", h.Dashboard.Shop)
		shop.GET("/products", h.Product.ListShop)
		shop.GET("/products/:id", h.Product.Get)
		shop.GET("/products/:id/qr", h.QR.ProductQR)
	}

	// Unauthenticated writes are rate limited per client IP.
	selfServe := v1.Group("")
	selfServe.Use(rl.Middleware())
	{
		selfServe.POST("/sales", h.Sales.Record)
		selfServe.POST("/shop/products/:id/trigger", h.QR.Trigger)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Auth/Profile routes
	protected.GET("/auth/me", h.Auth.Me)
	protected.PUT("/profile", h.Auth.UpdateProfile)
	protected.PUT("/profile/password", h.Auth.ChangePassword)

	// Dashboards
	dashboard := protected.Group("/dashboard")
	dashboard.Use(middleware.RequirePermission("view-dashboard"))
	{
		dashboard.GET("", h.Dashboard.Admin)
		dashboard.GET("/triggers", h.QR.CheckTriggers)
	}

	registerProductRoutes(protected, h)
	registerOrderRoutes(protected, h, deps)
	registerSalesRoutes(protected, h)
	registerStaffRoutes(protected, h)
	registerSettingsRoutes(protected, h)
}

func registerProductRoutes(protected *gin.RouterGroup, h *Handlers) {
	products := protected.Group("/products")
	products.Use(middleware.RequirePermission("manage-products"))
	{
		products.GET("", h.Product.List)
		products.POST("", h.Product.Create)
		products.GET("/low-stock", h.Product.LowStock)
		products.PUT("/costs", h.Product.BulkUpdateCosts)
		products.GET("/:id", h.Product.Get)
		products.PUT("/:id", h.Product.Update)
		products.DELETE("/:id", h.Product.Delete)
		products.POST("/:id/image", h.Product.UploadImage)
	}
}

func registerOrderRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	orders := protected.Group("/orders")
	orders.Use(middleware.RequirePermission("manage-orders"))
	{
		orders.GET("", h.Order.List)
		// Order creation uses idempotency middleware to prevent duplicates
		orders.POST("", middleware.IdempotencyRequired(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Order.Create)
		orders.GET("/:id", h.Order.Get)
		orders.POST("/:id/complete", h.Order.Complete)
		orders.POST("/:id/cancel", h.Order.Cancel)
		orders.DELETE("/:id", h.Order.Delete)
	}
}

func registerSalesRoutes(protected *gin.RouterGroup, h *Handlers) {
	sales := protected.Group("/sales")
	sales.Use(middleware.RequirePermission("manage-sales"))
	{
		sales.GET("", h.Sales.List)
		sales.GET("/:id", h.Sales.Get)
		sales.POST("/recalculate", h.Sales.RecalculateAll)
		sales.POST("/recalculate/:product_id", h.Sales.RecalculateProduct)
		sales.DELETE("", h.Sales.Reset)
	}

	analytics := protected.Group("/analytics")
	analytics.Use(middleware.RequirePermission("view-analytics"))
	{
		analytics.GET("/sales", h.Sales.Analytics)
		analytics.GET("/sales/daily", h.Sales.Daily)
	}
}

func registerStaffRoutes(protected *gin.RouterGroup, h *Handlers) {
	staff := protected.Group("/staff")
	staff.Use(middleware.RequirePermission("manage-staff"))
	{
		staff.GET("", h.Staff.List)
		staff.POST("", h.Staff.Invite)
		staff.GET("/:id", h.Staff.Get)
		staff.PUT("/:id", h.Staff.Update)
		staff.POST("/:id/pause", h.Staff.Pause)
		staff.POST("/:id/activate", h.Staff.Activate)
		staff.POST("/:id/resend-invite", h.Staff.ResendInvite)
		staff.DELETE("/:id", h.Staff.Delete)
	}
}

func registerSettingsRoutes(protected *gin.RouterGroup, h *Handlers) {
	settings := protected.Group("/settings")
	settings.Use(middleware.RequirePermission("manage-settings"))
	{
		settings.GET("", h.Settings.GetSettings)
		settings.PUT("", h.Settings.UpdateSettings)
	}
}
