package handler

import (
	"github.com/gestorplus/gestor-api/internal/application/service"
	"github.com/gestorplus/gestor-api/internal/presentation/http/dto/request"
	"github.com/gestorplus/gestor-api/internal/presentation/http/dto/response"
	"github.com/gestorplus/gestor-api/pkg/pagination"
	"github.com/gin-gonic/gin"
)

// CouponHandler handles coupon management HTTP requests
type CouponHandler struct {
	couponService *service.CouponService
}

// NewCouponHandler creates a new coupon handler
func NewCouponHandler(couponService *service.CouponService) *CouponHandler {
	return &CouponHandler{couponService: couponService}
}

// List handles GET /coupons
func (h *CouponHandler) List(c *gin.Context) {
	params := &pagination.Params{
		Page:    queryInt(c, "page", 1),
		PerPage: queryInt(c, "per_page", 15),
	}
	result, err := h.couponService.ListCoupons(c.Request.Context(), params, c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, 200, "Coupons retrieved", result)
}

// Get handles GET /coupons/:id
func (h *CouponHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid coupon ID")
		return
	}

	coupon, err := h.couponService.GetCoupon(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Coupon retrieved", coupon)
}

// Create handles POST /coupons
func (h *CouponHandler) Create(c *gin.Context) {
	var req request.CreateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	coupon, err := h.couponService.CreateCoupon(c.Request.Context(), &service.CreateCouponInput{
		Code:        req.Code,
		Type:        req.Type,
		Value:       req.Value,
		MinPurchase: req.MinPurchase,
		StartsAt:    req.StartsAt,
		ExpiresAt:   req.ExpiresAt,
		UsageLimit:  req.UsageLimit,
		Active:      req.Active,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Coupon created", coupon)
}

// Update handles PUT /coupons/:id
func (h *CouponHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid coupon ID")
		return
	}

	var req request.UpdateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	coupon, err := h.couponService.UpdateCoupon(c.Request.Context(), id, &service.UpdateCouponInput{
		MinPurchase: req.MinPurchase,
		StartsAt:    req.StartsAt,
		ExpiresAt:   req.ExpiresAt,
		UsageLimit:  req.UsageLimit,
		Active:      req.Active,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Coupon updated", coupon)
}

// Delete handles DELETE /coupons/:id
func (h *CouponHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid coupon ID")
		return
	}

	if err := h.couponService.DeleteCoupon(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Validate handles POST /coupons/validate. Lets the UI check a code against
// an arbitrary subtotal without touching the cart.
func (h *CouponHandler) Validate(c *gin.Context) {
	var req request.ValidateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	subtotalCents := int64(req.Subtotal*100 + 0.5)
	validation, err := h.couponService.Validate(c.Request.Context(), req.Code, subtotalCents)
	if err != nil {
		response.Error(c, err)
		return
	}

	if !validation.Valid() {
		response.OK(c, "Coupon rejected", gin.H{
			"valid":  false,
			"reason": validation.Reason,
		})
		return
	}
	response.OK(c, "Coupon valid", gin.H{
		"valid":    true,
		"discount": float64(validation.Discount) / 100,
		"coupon":   validation.Coupon,
	})
}
