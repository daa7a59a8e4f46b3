package handler

import (
	"github.com/gestorplus/gestor-api/internal/application/service"
	"github.com/gestorplus/gestor-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// ReceiptHandler handles receipt rendering and printing HTTP requests
type ReceiptHandler struct {
	receiptService *service.ReceiptService
}

// NewReceiptHandler creates a new receipt handler
func NewReceiptHandler(receiptService *service.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{receiptService: receiptService}
}

// Get handles GET /sales/:id/receipt. Returns the receipt as JSON so the
// frontend can render its own preview.
func (h *ReceiptHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	receipt, _, err := h.receiptService.BuildReceipt(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Receipt retrieved", receipt)
}

// Thermal handles GET /sales/:id/receipt/thermal. Returns raw ESC/POS bytes
// for clients that drive their own printer.
func (h *ReceiptHandler) Thermal(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	data, err := h.receiptService.RenderThermal(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Data(200, "application/octet-stream", data)
}

// A4 handles GET /sales/:id/receipt/a4. Returns a printable HTML document.
func (h *ReceiptHandler) A4(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	data, err := h.receiptService.RenderA4(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Data(200, "text/html; charset=utf-8", data)
}

// Print handles POST /sales/:id/receipt/print. Sends the receipt to the
// server-attached printer.
func (h *ReceiptHandler) Print(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	if err := h.receiptService.PrintThermal(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Receipt sent to printer", nil)
}

// PrinterStatus handles GET /printer/status
func (h *ReceiptHandler) PrinterStatus(c *gin.Context) {
	response.OK(c, "Printer status", gin.H{
		"connected": h.receiptService.PrinterStatus(),
	})
}
