package service

import (
	"context"
	"time"

	"github.com/gestorplus/gestor-api/internal/domain/entity"
	"github.com/gestorplus/gestor-api/internal/domain/repository"
)

// DashboardService aggregates dashboard statistics from the sale ledger
type DashboardService struct {
	analyticsRepo repository.AnalyticsRepository
	productRepo   repository.ProductRepository
	clientRepo    repository.ClientRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	analyticsRepo repository.AnalyticsRepository,
	productRepo repository.ProductRepository,
	clientRepo repository.ClientRepository,
) *DashboardService {
	return &DashboardService{
		analyticsRepo: analyticsRepo,
		productRepo:   productRepo,
		clientRepo:    clientRepo,
	}
}

// DashboardStats represents the dashboard summary
type DashboardStats struct {
	TotalRevenue    float64                              `json:"total_revenue"`
	MonthlyRevenue  float64                              `json:"monthly_revenue"`
	TotalSales      int64                                `json:"total_sales"`
	AverageTicket   float64                              `json:"average_ticket"`
	LowStockCount   int                                  `json:"low_stock_count"`
	OutOfStockCount int                                  `json:"out_of_stock_count"`
	DailySales      []repository.DailySalesResult        `json:"daily_sales"`
	TopProducts     []repository.TopProductResult        `json:"top_products"`
	TopClients      []repository.TopClientResult         `json:"top_clients"`
	PaymentMethods  []repository.PaymentMethodSalesResult `json:"payment_methods"`
}

// GetDashboardStats builds the dashboard summary for the tenant
func (s *DashboardService) GetDashboardStats(ctx context.Context, days int) (*DashboardStats, error) {
	if days <= 0 {
		days = 7
	}
	stats := &DashboardStats{}

	totalRevenue, err := s.analyticsRepo.GetTotalRevenue(ctx)
	if err != nil {
		return nil, err
	}
	stats.TotalRevenue = totalRevenue

	monthlyRevenue, err := s.analyticsRepo.GetMonthlyRevenue(ctx)
	if err != nil {
		return nil, err
	}
	stats.MonthlyRevenue = monthlyRevenue

	totalSales, err := s.analyticsRepo.CountSales(ctx)
	if err != nil {
		return nil, err
	}
	stats.TotalSales = totalSales
	if totalSales > 0 {
		stats.AverageTicket = totalRevenue / float64(totalSales)
	}

	lowStock, err := s.productRepo.GetLowStock(ctx)
	if err != nil {
		return nil, err
	}
	stats.LowStockCount = len(lowStock)

	outOfStock, err := s.productRepo.GetOutOfStock(ctx)
	if err != nil {
		return nil, err
	}
	stats.OutOfStockCount = len(outOfStock)

	dailySales, err := s.analyticsRepo.GetDailySales(ctx, days)
	if err != nil {
		return nil, err
	}
	stats.DailySales = dailySales

	topProducts, err := s.analyticsRepo.GetTopProducts(ctx, 5)
	if err != nil {
		return nil, err
	}
	stats.TopProducts = topProducts

	topClients, err := s.analyticsRepo.GetTopClients(ctx, 5)
	if err != nil {
		return nil, err
	}
	stats.TopClients = topClients

	paymentMethods, err := s.analyticsRepo.GetSalesByPaymentMethod(ctx)
	if err != nil {
		return nil, err
	}
	stats.PaymentMethods = paymentMethods

	return stats, nil
}

// GetStockAlerts returns low stock, out of stock and expiring products in one
// payload for the alerts panel.
type StockAlerts struct {
	LowStock   []entity.Product `json:"low_stock"`
	OutOfStock []entity.Product `json:"out_of_stock"`
	Expiring   []entity.Product `json:"expiring"`
}

// GetStockAlerts builds the stock alert panel data
func (s *DashboardService) GetStockAlerts(ctx context.Context, expiringDays int) (*StockAlerts, error) {
	if expiringDays <= 0 {
		expiringDays = 30
	}

	lowStock, err := s.productRepo.GetLowStock(ctx)
	if err != nil {
		return nil, err
	}
	outOfStock, err := s.productRepo.GetOutOfStock(ctx)
	if err != nil {
		return nil, err
	}
	expiring, err := s.productRepo.GetExpiring(ctx, time.Now().AddDate(0, 0, expiringDays))
	if err != nil {
		return nil, err
	}

	return &StockAlerts{
		LowStock:   lowStock,
		OutOfStock: outOfStock,
		Expiring:   expiring,
	}, nil
}
