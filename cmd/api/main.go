package main

import (
	"context"
	"log"

	"github.com/gestorplus/gestor-api/internal/application/service"
	"github.com/gestorplus/gestor-api/internal/config"
	"github.com/gestorplus/gestor-api/internal/infrastructure/database"
	infraRepo "github.com/gestorplus/gestor-api/internal/infrastructure/repository"
	"github.com/gestorplus/gestor-api/internal/presentation/http/handler"
	"github.com/gestorplus/gestor-api/internal/presentation/http/routes"
	"github.com/gestorplus/gestor-api/pkg/metrics"
	"github.com/gestorplus/gestor-api/pkg/oauth"
	"github.com/gestorplus/gestor-api/pkg/printer"
	"github.com/gestorplus/gestor-api/pkg/sheets"
	"github.com/gestorplus/gestor-api/pkg/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgresDB(&cfg.Database, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}

	if err := database.AutoMigrate(db, logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	if err := database.SeedDefaultData(db, logger); err != nil {
		logger.Fatal("Failed to seed default data", zap.Error(err))
	}

	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours, cfg.JWT.RefreshExpiryHours)

	// Repositories
	userRepo := infraRepo.NewUserRepository(db)
	tenantRepo := infraRepo.NewTenantRepository(db)
	productRepo := infraRepo.NewProductRepository(db)
	categoryRepo := infraRepo.NewProductCategoryRepository(db)
	clientRepo := infraRepo.NewClientRepository(db)
	saleRepo := infraRepo.NewSaleRepository(db)
	couponRepo := infraRepo.NewCouponRepository(db)
	movementRepo := infraRepo.NewStockMovementRepository(db)
	settingsRepo := infraRepo.NewSettingsRepository(db)
	idempotencyRepo := infraRepo.NewIdempotencyRepository(db)
	analyticsRepo := infraRepo.NewAnalyticsRepository(db)

	googleOAuthService := oauth.NewGoogleOAuthService(oauth.GoogleOAuthConfig{
		ClientID:           cfg.OAuth.GoogleClientID,
		ClientSecret:       cfg.OAuth.GoogleClientSecret,
		RedirectURL:        cfg.OAuth.GoogleRedirectURL,
		FrontendSuccessURL: cfg.OAuth.FrontendSuccessURL,
		FrontendErrorURL:   cfg.OAuth.FrontendErrorURL,
	})

	m := metrics.New()

	sheetSync, err := sheets.NewSyncer(context.Background(), sheets.Config{
		Enabled:         cfg.Sheets.Enabled,
		SpreadsheetID:   cfg.Sheets.SpreadsheetID,
		SheetName:       cfg.Sheets.SheetName,
		CredentialsJSON: cfg.Sheets.CredentialsJSON,
	})
	if err != nil {
		logger.Fatal("Failed to initialize sheets sync", zap.Error(err))
	}

	prn, err := printer.NewPrinterFromConfig(cfg.Printer.Type, cfg.Printer.USBPath, cfg.Printer.Address)
	if err != nil {
		logger.Warn("Printer unavailable, receipts will not print", zap.Error(err))
		prn = printer.NewNullPrinter()
	}

	// Services
	authService := service.NewAuthService(userRepo, tenantRepo, jwtManager)
	tenantService := service.NewTenantService(tenantRepo)
	settingsService := service.NewSettingsService(settingsRepo, tenantRepo)
	productService := service.NewProductService(productRepo, categoryRepo, movementRepo)
	clientService := service.NewClientService(clientRepo, saleRepo)
	couponService := service.NewCouponService(couponRepo)
	saleService := service.NewSaleService(saleRepo, productRepo, clientRepo, couponService, m, sheetSync, logger)
	cartService := service.NewCartService(productRepo, couponService, saleService)
	dashboardService := service.NewDashboardService(analyticsRepo, productRepo, clientRepo)
	receiptService := service.NewReceiptService(saleRepo, settingsService, prn, logger)
	reportService := service.NewReportService(saleRepo, productRepo)

	handlers := &routes.Handlers{
		Auth:      handler.NewAuthHandler(authService, googleOAuthService),
		Tenant:    handler.NewTenantHandler(tenantService),
		Product:   handler.NewProductHandler(productService),
		Client:    handler.NewClientHandler(clientService),
		Cart:      handler.NewCartHandler(cartService),
		Sale:      handler.NewSaleHandler(saleService),
		Coupon:    handler.NewCouponHandler(couponService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
		Settings:  handler.NewSettingsHandler(settingsService),
		Receipt:   handler.NewReceiptHandler(receiptService),
		Report:    handler.NewReportHandler(reportService),
	}

	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		TenantRepo:      tenantRepo,
		IdempotencyRepo: idempotencyRepo,
		Logger:          logger,
		Metrics:         m,
	})

	logger.Info("Starting server",
		zap.String("name", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)
	if err := router.Run(":" + cfg.App.Port); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.App.Debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
