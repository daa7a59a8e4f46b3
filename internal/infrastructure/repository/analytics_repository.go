package repository

import (
	"context"
	"time"

	domainRepo "github.com/gestorplus/gestor-api/internal/domain/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *gorm.DB) domainRepo.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

// tenantID pulls the tenant from context for raw queries. Raw SQL bypasses
// GORM scopes, so every query here must filter explicitly.
func (r *analyticsRepository) tenantID(ctx context.Context) uuid.UUID {
	id, _ := GetTenantID(ctx)
	return id
}

func (r *analyticsRepository) GetTopProducts(ctx context.Context, limit int) ([]domainRepo.TopProductResult, error) {
	var results []domainRepo.TopProductResult

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			si.product_id as product_id,
			si.product_name as product_name,
			COALESCE(SUM(si.quantity), 0) as quantity_sold,
			COALESCE(SUM(si.total), 0) / 100.0 as revenue
		FROM sale_items si
		JOIN sales s ON s.id = si.sale_id
		WHERE s.tenant_id = ? AND s.status = 0 AND s.deleted_at IS NULL
		GROUP BY si.product_id, si.product_name
		ORDER BY revenue DESC
		LIMIT ?
	`, r.tenantID(ctx), limit).Scan(&results).Error

	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *analyticsRepository) GetSalesByPaymentMethod(ctx context.Context) ([]domainRepo.PaymentMethodSalesResult, error) {
	var results []domainRepo.PaymentMethodSalesResult

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			s.payment_method as payment_method,
			COALESCE(SUM(s.total), 0) / 100.0 as total_sales,
			COUNT(s.id) as sale_count
		FROM sales s
		WHERE s.tenant_id = ? AND s.status = 0 AND s.deleted_at IS NULL
		GROUP BY s.payment_method
		ORDER BY total_sales DESC
	`, r.tenantID(ctx)).Scan(&results).Error

	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *analyticsRepository) GetTopClients(ctx context.Context, limit int) ([]domainRepo.TopClientResult, error) {
	var results []domainRepo.TopClientResult

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			c.id as client_id,
			c.name as client_name,
			COALESCE(SUM(s.total), 0) / 100.0 as total_spent,
			COUNT(s.id) as sale_count
		FROM sales s
		JOIN clients c ON c.id = s.client_id
		WHERE s.tenant_id = ? AND s.status = 0 AND s.client_id IS NOT NULL AND s.deleted_at IS NULL
		GROUP BY c.id, c.name
		ORDER BY total_spent DESC
		LIMIT ?
	`, r.tenantID(ctx), limit).Scan(&results).Error

	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *analyticsRepository) GetDailySales(ctx context.Context, days int) ([]domainRepo.DailySalesResult, error) {
	if days <= 0 {
		days = 7
	}

	var rows []domainRepo.DailySalesResult
	since := time.Now().AddDate(0, 0, -days+1).Truncate(24 * time.Hour)

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			DATE_TRUNC('day', s.sale_date) as date,
			COALESCE(SUM(s.total), 0) / 100.0 as revenue,
			COUNT(s.id) as count
		FROM sales s
		WHERE s.tenant_id = ? AND s.status = 0 AND s.sale_date >= ? AND s.deleted_at IS NULL
		GROUP BY DATE_TRUNC('day', s.sale_date)
		ORDER BY date ASC
	`, r.tenantID(ctx), since).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	// Fill missing days with zeroes so charts render a continuous series.
	byDay := make(map[string]domainRepo.DailySalesResult, len(rows))
	for _, row := range rows {
		byDay[row.Date.Format("2006-01-02")] = row
	}

	results := make([]domainRepo.DailySalesResult, 0, days)
	for i := 0; i < days; i++ {
		day := since.AddDate(0, 0, i)
		if row, ok := byDay[day.Format("2006-01-02")]; ok {
			results = append(results, row)
		} else {
			results = append(results, domainRepo.DailySalesResult{Date: day})
		}
	}
	return results, nil
}

func (r *analyticsRepository) GetTotalRevenue(ctx context.Context) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(total), 0) / 100.0
		FROM sales
		WHERE tenant_id = ? AND status = 0 AND deleted_at IS NULL
	`, r.tenantID(ctx)).Scan(&total).Error
	return total, err
}

func (r *analyticsRepository) GetMonthlyRevenue(ctx context.Context) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(total), 0) / 100.0
		FROM sales
		WHERE tenant_id = ? AND status = 0 AND deleted_at IS NULL
		  AND sale_date >= DATE_TRUNC('month', CURRENT_DATE)
	`, r.tenantID(ctx)).Scan(&total).Error
	return total, err
}

func (r *analyticsRepository) CountSales(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COUNT(id)
		FROM sales
		WHERE tenant_id = ? AND status = 0 AND deleted_at IS NULL
	`, r.tenantID(ctx)).Scan(&count).Error
	return count, err
}
