package handler

import (
	"github.com/gestorplus/gestor-api/internal/application/service"
	"github.com/gestorplus/gestor-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// DashboardHandler handles dashboard HTTP requests
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Stats handles GET /dashboard
func (h *DashboardHandler) Stats(c *gin.Context) {
	days := queryInt(c, "days", 7)
	stats, err := h.dashboardService.GetDashboardStats(c.Request.Context(), days)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Dashboard retrieved", stats)
}

// StockAlerts handles GET /dashboard/stock-alerts
func (h *DashboardHandler) StockAlerts(c *gin.Context) {
	days := queryInt(c, "expiring_days", 30)
	alerts, err := h.dashboardService.GetStockAlerts(c.Request.Context(), days)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Stock alerts retrieved", alerts)
}
