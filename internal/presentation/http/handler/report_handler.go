package handler

import (
	"github.com/gestorplus/gestor-api/internal/application/service"
	"github.com/gestorplus/gestor-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler handles xlsx export HTTP requests
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// ExportSales handles GET /reports/sales
func (h *ReportHandler) ExportSales(c *gin.Context) {
	startDate := parseDate(c.Query("start_date"))
	endDate := endOfDay(parseDate(c.Query("end_date")))

	data, filename, err := h.reportService.ExportSales(c.Request.Context(), startDate, endDate)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.File(c, xlsxContentType, filename, data)
}

// ExportInventory handles GET /reports/inventory
func (h *ReportHandler) ExportInventory(c *gin.Context) {
	data, filename, err := h.reportService.ExportInventory(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.File(c, xlsxContentType, filename, data)
}
