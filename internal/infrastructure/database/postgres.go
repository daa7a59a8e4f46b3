package database

import (
	"fmt"

	"github.com/gestorplus/gestor-api/internal/config"
	"github.com/gestorplus/gestor-api/internal/domain/entity"
	"github.com/gestorplus/gestor-api/internal/domain/enum"
	"github.com/gestorplus/gestor-api/pkg/utils"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	logLevel := logger.Warn

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

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Info("connected to PostgreSQL database",
		zap.String("host", cfg.Host),
		zap.String("database", cfg.Name))
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB, log *zap.Logger) error {
	log.Info("running database migrations")

	err := db.AutoMigrate(
		// Tenancy and accounts
		&entity.Tenant{},
		&entity.User{},
		&entity.CompanySettings{},

		// Catalog and stock
		&entity.ProductCategory{},
		&entity.Product{},
		&entity.StockMovement{},

		// Registry
		&entity.Client{},

		// Sales
		&entity.Coupon{},
		&entity.Sale{},
		&entity.SaleItem{},

		// System entities
		&entity.IdempotencyKey{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("database migrations completed")
	return nil
}

// SeedDefaultData creates the bootstrap tenant and admin user when configured
// via ADMIN_EMAIL / ADMIN_PASSWORD. Safe to run on every startup.
func SeedDefaultData(db *gorm.DB, log *zap.Logger) error {
	adminEmail := viper.GetString("ADMIN_EMAIL")
	adminPassword := viper.GetString("ADMIN_PASSWORD")
	adminName := viper.GetString("ADMIN_NAME")
	tenantName := viper.GetString("DEFAULT_TENANT_NAME")

	if adminEmail == "" || adminPassword == "" {
		return nil
	}

	var existing entity.User
	if err := db.Where("email = ?", adminEmail).First(&existing).Error; err == nil {
		log.Info("admin user already exists", zap.String("email", adminEmail))
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	if adminName == "" {
		adminName = "Administrador"
	}
	firstName := adminName
	lastName := ""
	for i, c := range adminName {
		if c == ' ' {
			firstName = adminName[:i]
			lastName = adminName[i+1:]
			break
		}
	}

	if tenantName == "" {
		tenantName = "Minha Loja"
	}

	return db.Transaction(func(tx *gorm.DB) error {
		admin := entity.User{
			FirstName: firstName,
			LastName:  lastName,
			Email:     adminEmail,
			Password:  string(hashedPassword),
			Role:      entity.RoleAdmin,
			Provider:  "local",
		}
		if err := tx.Create(&admin).Error; err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}

		tenant := entity.Tenant{
			Name:     tenantName,
			Slug:     utils.Slugify(tenantName),
			Category: enum.BusinessCategoryRetail,
			OwnerID:  admin.ID,
			Active:   true,
		}
		if err := tx.Create(&tenant).Error; err != nil {
			return fmt.Errorf("failed to create default tenant: %w", err)
		}

		admin.TenantID = tenant.ID
		if err := tx.Save(&admin).Error; err != nil {
			return fmt.Errorf("failed to attach admin to tenant: %w", err)
		}

		settings := entity.CompanySettings{
			TenantID:     tenant.ID,
			TradeName:    tenantName,
			PaperWidthMM: 80,
		}
		if err := tx.Create(&settings).Error; err != nil {
			return fmt.Errorf("failed to create default settings: %w", err)
		}

		log.Info("seeded default tenant and admin user",
			zap.String("tenant", tenant.Slug),
			zap.String("email", adminEmail))
		return nil
	})
}
