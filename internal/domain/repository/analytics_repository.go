package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TopProductResult represents a product's sales performance
type TopProductResult struct {
	ProductID    uuid.UUID
	ProductName  string
	QuantitySold int
	Revenue      float64
}

// PaymentMethodSalesResult represents revenue aggregated by payment method
type PaymentMethodSalesResult struct {
	PaymentMethod string
	TotalSales    float64
	SaleCount     int
}

// TopClientResult represents a client's spending data
type TopClientResult struct {
	ClientID   uuid.UUID
	ClientName string
	TotalSpent float64
	SaleCount  int
}

// DailySalesResult represents sales data for a single day
type DailySalesResult struct {
	Date    time.Time
	Revenue float64
	Count   int
}

// AnalyticsRepository defines interface for dashboard aggregation queries
type AnalyticsRepository interface {
	// GetTopProducts returns top selling products by revenue
	GetTopProducts(ctx context.Context, limit int) ([]TopProductResult, error)

	// GetSalesByPaymentMethod returns revenue aggregated by payment method
	GetSalesByPaymentMethod(ctx context.Context) ([]PaymentMethodSalesResult, error)

	// GetTopClients returns top clients by total spending
	GetTopClients(ctx context.Context, limit int) ([]TopClientResult, error)

	// GetDailySales returns daily sales data for the last N days
	GetDailySales(ctx context.Context, days int) ([]DailySalesResult, error)

	// GetTotalRevenue returns total revenue from completed sales
	GetTotalRevenue(ctx context.Context) (float64, error)

	// GetMonthlyRevenue returns revenue for the current month
	GetMonthlyRevenue(ctx context.Context) (float64, error)

	// CountSales returns the number of completed sales
	CountSales(ctx context.Context) (int64, error)
}
