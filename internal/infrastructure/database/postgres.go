package database

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/zymoune/feedstore-api/internal/config"
	"github.com/zymoune/feedstore-api/internal/domain/entity"
	"github.com/zymoune/feedstore-api/internal/domain/enum"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Info

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		// Identity entities
		&entity.User{},
		&entity.Role{},
		&entity.Permission{},
		&entity.PasswordResetToken{},

		// Catalog entities
		&entity.Product{},

		// Transaction entities
		&entity.Order{},
		&entity.OrderItem{},
		&entity.Sale{},

		// System entities
		&entity.IdempotencyKey{},
		&entity.NotificationSettings{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData seeds roles, permissions, the notification settings
// singleton and the initial admin account.
func SeedDefaultData(db *gorm.DB, adminCfg *config.AdminConfig) error {
	log.Println("Seeding default data...")

	// Create default permissions
	permissions := []entity.Permission{
		{Name: "view-dashboard", GuardName: "web"},
		{Name: "manage-products", GuardName: "web"},
		{Name: "manage-orders", GuardName: "web"},
		{Name: "manage-sales", GuardName: "web"},
		{Name: "manage-staff", GuardName: "web"},
		{Name: "manage-settings", GuardName: "web"},
		{Name: "view-analytics", GuardName: "web"},
		{Name: "shop", GuardName: "web"},
	}

	for i := range permissions {
		var existing entity.Permission
		if err := db.Where("name = ?", permissions[i].Name).First(&existing).Error; err != nil {
			if err := db.Create(&permissions[i]).Error; err != nil {
				log.Printf("Warning: failed to create permission %s: %v", permissions[i].Name, err)
			}
		}
	}

	// Reload permissions with IDs
	var allPermissions []entity.Permission
	db.Find(&allPermissions)

	pick := func(names ...string) []entity.Permission {
		var out []entity.Permission
		for _, name := range names {
			for _, p := range allPermissions {
				if p.Name == name {
					out = append(out, p)
					break
				}
			}
		}
		return out
	}

	// Role set: admin gets everything, manager runs the floor, cashier and
	// staff capture orders, customer shops.
	roleDefs := []struct {
		name  string
		perms []entity.Permission
	}{
		{"admin", allPermissions},
		{"manager", pick("view-dashboard", "manage-products", "manage-orders", "manage-sales", "view-analytics")},
		{"cashier", pick("view-dashboard", "manage-orders")},
		{"staff", pick("view-dashboard", "manage-orders")},
		{"customer", pick("shop")},
	}

	for _, def := range roleDefs {
		var existing entity.Role
		if err := db.Where("name = ?", def.name).First(&existing).Error; err != nil {
			role := entity.Role{
				Name:        def.name,
				GuardName:   "web",
				Permissions: def.perms,
			}
			if err := db.Create(&role).Error; err != nil {
				log.Printf("Warning: failed to create %s role: %v", def.name, err)
			}
		}
	}

	// The notification settings singleton; the low-stock recipient defaults
	// to the admin address until changed via the settings endpoint.
	var settings entity.NotificationSettings
	if err := db.First(&settings).Error; err != nil {
		settings = entity.NotificationSettings{
			LowStockRecipient: adminCfg.Email,
			LowStockEnabled:   true,
		}
		if err := db.Create(&settings).Error; err != nil {
			log.Printf("Warning: failed to create notification settings: %v", err)
		}
	}

	// Create the initial admin account if configured
	if adminCfg.Email != "" && adminCfg.Password != "" {
		var existingAdmin entity.User
		if err := db.Where("email = ?", adminCfg.Email).First(&existingAdmin).Error; err != nil {
			hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminCfg.Password), bcrypt.DefaultCost)
			if err != nil {
				log.Printf("Warning: failed to hash admin password: %v", err)
			} else {
				var adminRole entity.Role
				if err := db.Where("name = ?", "admin").First(&adminRole).Error; err == nil {
					adminUser := entity.User{
						ID:        uuid.New(),
						FirstName: "Store",
						LastName:  "Admin",
						Email:     adminCfg.Email,
						Password:  string(hashedPassword),
						Status:    enum.AccountStatusActive,
						Roles:     []entity.Role{adminRole},
					}
					if err := db.Create(&adminUser).Error; err != nil {
						log.Printf("Warning: failed to create admin user: %v", err)
					} else {
						log.Printf("Admin user created: %s", adminCfg.Email)
					}
				}
			}
		} else {
			log.Printf("Admin user already exists: %s", adminCfg.Email)
		}
	}

	log.Println("Default data seeding completed")
	return nil
}
