package service

import (
	"context"
	"fmt"
	"time"

	"github.com/gestorplus/gestor-api/internal/domain/entity"
	"github.com/gestorplus/gestor-api/internal/domain/enum"
	"github.com/gestorplus/gestor-api/internal/domain/repository"
	infraRepo "github.com/gestorplus/gestor-api/internal/infrastructure/repository"
	"github.com/gestorplus/gestor-api/pkg/apperror"
	"github.com/gestorplus/gestor-api/pkg/pagination"
	"github.com/google/uuid"
)

// Coupon rejection reasons. Returned to the client so the UI can show a
// specific message, and used as the metric label on rejections.
const (
	CouponRejectionNotFound     = "not_found"
	CouponRejectionInactive     = "inactive"
	CouponRejectionNotStarted   = "not_started"
	CouponRejectionExpired      = "expired"
	CouponRejectionExhausted    = "exhausted"
	CouponRejectionBelowMinimum = "below_minimum"
)

// CouponService handles coupon management and validation
type CouponService struct {
	couponRepo repository.CouponRepository
}

// NewCouponService creates a new coupon service
func NewCouponService(couponRepo repository.CouponRepository) *CouponService {
	return &CouponService{couponRepo: couponRepo}
}

// CouponValidation is the outcome of validating a code against a subtotal.
type CouponValidation struct {
	Coupon   *entity.Coupon
	Discount int64  // cents
	Reason   string // empty when valid
}

// Valid reports whether the coupon was accepted
func (v *CouponValidation) Valid() bool {
	return v.Reason == ""
}

// Validate checks a coupon code against the given subtotal (in cents) and
// computes the discount it would grant. A rejected coupon is not an error;
// the rejection reason is part of the result.
func (s *CouponService) Validate(ctx context.Context, code string, subtotal int64) (*CouponValidation, error) {
	coupon, err := s.couponRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if coupon == nil {
		return &CouponValidation{Reason: CouponRejectionNotFound}, nil
	}

	now := time.Now()
	switch {
	case !coupon.Active:
		return &CouponValidation{Coupon: coupon, Reason: CouponRejectionInactive}, nil
	case coupon.StartsAt != nil && now.Before(*coupon.StartsAt):
		return &CouponValidation{Coupon: coupon, Reason: CouponRejectionNotStarted}, nil
	case coupon.ExpiresAt != nil && now.After(*coupon.ExpiresAt):
		return &CouponValidation{Coupon: coupon, Reason: CouponRejectionExpired}, nil
	case coupon.IsExhausted():
		return &CouponValidation{Coupon: coupon, Reason: CouponRejectionExhausted}, nil
	case subtotal < coupon.MinPurchase:
		return &CouponValidation{Coupon: coupon, Reason: CouponRejectionBelowMinimum}, nil
	}

	return &CouponValidation{
		Coupon:   coupon,
		Discount: coupon.DiscountFor(subtotal),
	}, nil
}

// CreateCouponInput represents the create coupon input
type CreateCouponInput struct {
	Code        string
	Type        string
	Value       float64 // percent for percentage coupons, decimal amount for fixed
	MinPurchase float64
	StartsAt    *time.Time
	ExpiresAt   *time.Time
	UsageLimit  int
	Active      bool
}

// CreateCoupon creates a new coupon
func (s *CouponService) CreateCoupon(ctx context.Context, input *CreateCouponInput) (*entity.Coupon, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}

	if input.Code == "" {
		return nil, apperror.NewBadRequestError("Coupon code is required")
	}

	existing, err := s.couponRepo.GetByCode(ctx, input.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError(fmt.Sprintf("Coupon %s already exists", input.Code))
	}

	couponType := enum.CouponType(input.Type)
	if !couponType.Valid() {
		return nil, apperror.NewBadRequestError(fmt.Sprintf("Invalid coupon type %q", input.Type))
	}

	// Percentage coupons store the percent directly; fixed coupons store cents.
	var value int64
	if couponType == enum.CouponTypePercentage {
		value = int64(input.Value + 0.5)
		if value <= 0 || value > 100 {
			return nil, apperror.NewBadRequestError("Percentage value must be between 1 and 100")
		}
	} else {
		value = int64(input.Value*100 + 0.5)
		if value <= 0 {
			return nil, apperror.NewBadRequestError("Coupon value must be positive")
		}
	}

	coupon := &entity.Coupon{
		TenantID:    tenantID,
		Code:        input.Code,
		Type:        couponType,
		Value:       value,
		UsageLimit:  input.UsageLimit,
		StartsAt:    input.StartsAt,
		ExpiresAt:   input.ExpiresAt,
		Active:      input.Active,
		MinPurchase: int64(input.MinPurchase*100 + 0.5),
	}

	if err := s.couponRepo.Create(ctx, coupon); err != nil {
		return nil, err
	}
	return coupon, nil
}

// UpdateCouponInput represents the update coupon input
type UpdateCouponInput struct {
	MinPurchase *float64
	StartsAt    *time.Time
	ExpiresAt   *time.Time
	UsageLimit  *int
	Active      *bool
}

// UpdateCoupon updates schedule, limits and active flag. Code, type and value
// are immutable once created; issue a new coupon instead.
func (s *CouponService) UpdateCoupon(ctx context.Context, id uuid.UUID, input *UpdateCouponInput) (*entity.Coupon, error) {
	coupon, err := s.couponRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if coupon == nil {
		return nil, apperror.NewNotFoundError("Coupon")
	}

	if input.MinPurchase != nil {
		coupon.MinPurchase = int64(*input.MinPurchase*100 + 0.5)
	}
	if input.StartsAt != nil {
		coupon.StartsAt = input.StartsAt
	}
	if input.ExpiresAt != nil {
		coupon.ExpiresAt = input.ExpiresAt
	}
	if input.UsageLimit != nil {
		coupon.UsageLimit = *input.UsageLimit
	}
	if input.Active != nil {
		coupon.Active = *input.Active
	}

	if err := s.couponRepo.Update(ctx, coupon); err != nil {
		return nil, err
	}
	return coupon, nil
}

// GetCoupon retrieves a coupon by ID
func (s *CouponService) GetCoupon(ctx context.Context, id uuid.UUID) (*entity.Coupon, error) {
	coupon, err := s.couponRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if coupon == nil {
		return nil, apperror.NewNotFoundError("Coupon")
	}
	return coupon, nil
}

// ListCoupons lists coupons with pagination
func (s *CouponService) ListCoupons(ctx context.Context, params *pagination.Params, search string) (*pagination.PaginatedResult[entity.Coupon], error) {
	coupons, total, err := s.couponRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(coupons, params, total), nil
}

// DeleteCoupon removes a coupon
func (s *CouponService) DeleteCoupon(ctx context.Context, id uuid.UUID) error {
	coupon, err := s.couponRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if coupon == nil {
		return apperror.NewNotFoundError("Coupon")
	}
	return s.couponRepo.Delete(ctx, id)
}
