package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/zymoune/feedstore-api/internal/application/service"
	"github.com/zymoune/feedstore-api/internal/config"
	"github.com/zymoune/feedstore-api/internal/infrastructure/database"
	"github.com/zymoune/feedstore-api/internal/infrastructure/repository"
	"github.com/zymoune/feedstore-api/internal/presentation/http/handler"
	"github.com/zymoune/feedstore-api/internal/presentation/http/routes"
	"github.com/zymoune/feedstore-api/pkg/email"
	"github.com/zymoune/feedstore-api/pkg/oauth"
	"github.com/zymoune/feedstore-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed roles, permissions and the initial admin account
	if err := database.SeedDefaultData(db, &cfg.Admin); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)
	passwordResetRepo := repository.NewPasswordResetTokenRepository(db)

	// Initialize email service
	emailService := email.NewEmailService(email.EmailConfig{
		SMTPHost:     cfg.SMTP.Host,
		SMTPPort:     cfg.SMTP.Port,
		SMTPUsername: cfg.SMTP.Username,
		SMTPPassword: cfg.SMTP.Password,
		FromName:     cfg.SMTP.FromName,
		FromEmail:    cfg.SMTP.FromEmail,
		FrontendURL:  cfg.App.FrontendURL,
	})

	// Initialize Google OAuth service
	googleOAuthService := oauth.NewGoogleOAuthService(oauth.GoogleOAuthConfig{
		ClientID:           cfg.OAuth.GoogleClientID,
		ClientSecret:       cfg.OAuth.GoogleClientSecret,
		RedirectURL:        cfg.OAuth.GoogleRedirectURL,
		FrontendSuccessURL: cfg.App.FrontendURL,
		FrontendErrorURL:   cfg.App.FrontendURL + "/login",
	})

	// Initialize services. The sales service doubles as the cost
	// recalculator for product updates.
	stockAlertService := service.NewStockAlertService(productRepo, settingsRepo, emailService)
	salesService := service.NewSalesService(saleRepo, orderRepo, productRepo, stockAlertService)
	productService := service.NewProductService(productRepo, salesService)
	orderService := service.NewOrderService(orderRepo, productRepo, emailService, stockAlertService)
	authService := service.NewAuthService(userRepo, passwordResetRepo, jwtManager, emailService, googleOAuthService)
	staffService := service.NewStaffService(userRepo, roleRepo, emailService)
	settingsService := service.NewSettingsService(settingsRepo)
	dashboardService := service.NewDashboardService(productRepo, analyticsRepo)
	qrService := service.NewQRService(productRepo, cfg.App.BaseURL, service.NewTriggerQueue())

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Product:   handler.NewProductHandler(productService, cfg.Storage.UploadPath, cfg.Storage.UploadMaxSize),
		Order:     handler.NewOrderHandler(orderService),
		Sales:     handler.NewSalesHandler(salesService),
		Staff:     handler.NewStaffHandler(staffService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
		Settings:  handler.NewSettingsHandler(settingsService),
		QR:        handler.NewQRHandler(qrService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	port := cfg.App.Port
	if port == "" {
		port = "4000"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
