package routes

import (
	"time"

	"github.com/gestorplus/gestor-api/internal/config"
	domainRepo "github.com/gestorplus/gestor-api/internal/domain/repository"
	"github.com/gestorplus/gestor-api/internal/presentation/http/handler"
	"github.com/gestorplus/gestor-api/internal/presentation/http/middleware"
	"github.com/gestorplus/gestor-api/pkg/metrics"
	"github.com/gestorplus/gestor-api/pkg/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth      *handler.AuthHandler
	Tenant    *handler.TenantHandler
	Product   *handler.ProductHandler
	Client    *handler.ClientHandler
	Cart      *handler.CartHandler
	Sale      *handler.SaleHandler
	Coupon    *handler.CouponHandler
	Dashboard *handler.DashboardHandler
	Settings  *handler.SettingsHandler
	Receipt   *handler.ReceiptHandler
	Report    *handler.ReportHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	TenantRepo      domainRepo.TenantRepository
	IdempotencyRepo domainRepo.IdempotencyRepository
	Logger          *zap.Logger
	Metrics         *metrics.Metrics
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Logger, deps.Metrics))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})
	router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))

	v1 := router.Group("/api/v1")
	{
		registerAuthRoutes(v1, h)

		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))
		protected.Use(middleware.TenantMiddleware(deps.TenantRepo))

		rateLimiter := middleware.NewTenantRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/register", h.Auth.Register)
		auth.POST("/refresh", h.Auth.Refresh)
		auth.GET("/google", h.Auth.GoogleLogin)
		auth.GET("/google/callback", h.Auth.GoogleCallback)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Profile
	protected.GET("/auth/me", h.Auth.Me)
	protected.PUT("/auth/me", h.Auth.UpdateProfile)
	protected.POST("/auth/change-password", h.Auth.ChangePassword)

	// Business profile and settings
	protected.GET("/tenant", h.Tenant.Get)
	protected.PUT("/tenant", middleware.RequireRole("admin"), h.Tenant.Update)
	protected.GET("/settings", h.Settings.Get)
	protected.PUT("/settings", middleware.RequireRole("admin"), h.Settings.Update)

	// Dashboard
	protected.GET("/dashboard", h.Dashboard.Stats)
	protected.GET("/dashboard/stock-alerts", h.Dashboard.StockAlerts)

	registerProductRoutes(protected, h)
	registerClientRoutes(protected, h)
	registerCartRoutes(protected, h, deps)
	registerSaleRoutes(protected, h)
	registerCouponRoutes(protected, h)
	registerReportRoutes(protected, h)

	// Printer
	protected.GET("/printer/status", h.Receipt.PrinterStatus)
}

func registerProductRoutes(protected *gin.RouterGroup, h *Handlers) {
	products := protected.Group("/products")
	{
		products.GET("", h.Product.List)
		products.POST("", h.Product.Create)
		products.GET("/low-stock", h.Product.LowStock)
		products.GET("/out-of-stock", h.Product.OutOfStock)
		products.GET("/expiring", h.Product.Expiring)
		products.GET("/barcode/:barcode", h.Product.GetByBarcode)
		products.GET("/:id", h.Product.Get)
		products.PUT("/:id", h.Product.Update)
		products.DELETE("/:id", h.Product.Delete)
		products.POST("/:id/stock", h.Product.AdjustStock)
		products.GET("/:id/movements", h.Product.Movements)
	}

	categories := protected.Group("/categories")
	{
		categories.GET("", h.Product.ListCategories)
		categories.POST("", h.Product.CreateCategory)
		categories.PUT("/:id", h.Product.UpdateCategory)
		categories.DELETE("/:id", h.Product.DeleteCategory)
	}
}

func registerClientRoutes(protected *gin.RouterGroup, h *Handlers) {
	clients := protected.Group("/clients")
	{
		clients.GET("", h.Client.List)
		clients.POST("", h.Client.Create)
		clients.GET("/:id", h.Client.Get)
		clients.PUT("/:id", h.Client.Update)
		clients.DELETE("/:id", h.Client.Delete)
		clients.GET("/:id/purchases", h.Client.Purchases)
	}
}

func registerCartRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	cart := protected.Group("/cart")
	{
		cart.GET("", h.Cart.Get)
		cart.PATCH("", h.Cart.UpdateSelections)
		cart.DELETE("", h.Cart.Clear)
		cart.POST("/items", h.Cart.AddItem)
		cart.POST("/items/barcode", h.Cart.AddItemByBarcode)
		cart.PUT("/items/:productId", h.Cart.UpdateItem)
		cart.DELETE("/items/:productId", h.Cart.RemoveItem)
		cart.POST("/coupon", h.Cart.ApplyCoupon)
		cart.DELETE("/coupon", h.Cart.RemoveCoupon)
		// Checkout requires an Idempotency-Key so a retried submission
		// cannot create a second sale.
		cart.POST("/checkout", middleware.IdempotencyRequired(deps.IdempotencyRepo), h.Cart.Checkout)
	}
}

func registerSaleRoutes(protected *gin.RouterGroup, h *Handlers) {
	sales := protected.Group("/sales")
	{
		sales.GET("", h.Sale.List)
		sales.GET("/:id", h.Sale.Get)
		sales.POST("/:id/cancel", middleware.RequireRole("admin"), h.Sale.Cancel)
		sales.GET("/:id/receipt", h.Receipt.Get)
		sales.GET("/:id/receipt/thermal", h.Receipt.Thermal)
		sales.GET("/:id/receipt/a4", h.Receipt.A4)
		sales.POST("/:id/receipt/print", h.Receipt.Print)
	}
}

func registerCouponRoutes(protected *gin.RouterGroup, h *Handlers) {
	coupons := protected.Group("/coupons")
	{
		coupons.GET("", h.Coupon.List)
		coupons.POST("", middleware.RequireRole("admin"), h.Coupon.Create)
		coupons.POST("/validate", h.Coupon.Validate)
		coupons.GET("/:id", h.Coupon.Get)
		coupons.PUT("/:id", middleware.RequireRole("admin"), h.Coupon.Update)
		coupons.DELETE("/:id", middleware.RequireRole("admin"), h.Coupon.Delete)
	}
}

func registerReportRoutes(protected *gin.RouterGroup, h *Handlers) {
	reports := protected.Group("/reports")
	{
		reports.GET("/sales", h.Report.ExportSales)
		reports.GET("/inventory", h.Report.ExportInventory)
	}
}
