package service

import (
	"testing"
	"time"

	"github.com/gestorplus/gestor-api/internal/domain/entity"
	"github.com/gestorplus/gestor-api/internal/domain/enum"
	"github.com/gestorplus/gestor-api/pkg/apperror"
)

func TestValidatePercentageCoupon(t *testing.T) {
	repo := newFakeCouponRepo(&entity.Coupon{
		Code:   "PROMO10",
		Type:   enum.CouponTypePercentage,
		Value:  10,
		Active: true,
	})
	svc := NewCouponService(repo)

	v, err := svc.Validate(testContext(), "PROMO10", 5000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !v.Valid() {
		t.Fatalf("expected valid coupon, got reason %q", v.Reason)
	}
	if v.Discount != 500 {
		t.Errorf("expected discount 500, got %d", v.Discount)
	}
}

func TestValidateFixedCouponClampedToSubtotal(t *testing.T) {
	repo := newFakeCouponRepo(&entity.Coupon{
		Code:   "MENOS20",
		Type:   enum.CouponTypeFixed,
		Value:  2000,
		Active: true,
	})
	svc := NewCouponService(repo)

	v, err := svc.Validate(testContext(), "MENOS20", 1500)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Discount != 1500 {
		t.Errorf("expected discount clamped to 1500, got %d", v.Discount)
	}
}

func TestValidateRejectionReasons(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(time.Hour)

	tests := []struct {
		name   string
		coupon *entity.Coupon
		code   string
		reason string
	}{
		{
			name:   "unknown code",
			coupon: &entity.Coupon{Code: "OUTRO", Active: true, Type: enum.CouponTypePercentage, Value: 5},
			code:   "NAOEXISTE",
			reason: CouponRejectionNotFound,
		},
		{
			name:   "inactive",
			coupon: &entity.Coupon{Code: "PROMO", Active: false, Type: enum.CouponTypePercentage, Value: 5},
			code:   "PROMO",
			reason: CouponRejectionInactive,
		},
		{
			name:   "not started",
			coupon: &entity.Coupon{Code: "PROMO", Active: true, Type: enum.CouponTypePercentage, Value: 5, StartsAt: &future},
			code:   "PROMO",
			reason: CouponRejectionNotStarted,
		},
		{
			name:   "expired",
			coupon: &entity.Coupon{Code: "PROMO", Active: true, Type: enum.CouponTypePercentage, Value: 5, ExpiresAt: &past},
			code:   "PROMO",
			reason: CouponRejectionExpired,
		},
		{
			name:   "exhausted",
			coupon: &entity.Coupon{Code: "PROMO", Active: true, Type: enum.CouponTypePercentage, Value: 5, UsageLimit: 3, UsedCount: 3},
			code:   "PROMO",
			reason: CouponRejectionExhausted,
		},
		{
			name:   "below minimum purchase",
			coupon: &entity.Coupon{Code: "PROMO", Active: true, Type: enum.CouponTypePercentage, Value: 5, MinPurchase: 10000},
			code:   "PROMO",
			reason: CouponRejectionBelowMinimum,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewCouponService(newFakeCouponRepo(tt.coupon))
			v, err := svc.Validate(testContext(), tt.code, 5000)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if v.Valid() {
				t.Fatal("expected rejection")
			}
			if v.Reason != tt.reason {
				t.Errorf("expected reason %q, got %q", tt.reason, v.Reason)
			}
			if v.Discount != 0 {
				t.Errorf("rejected coupon must not grant a discount, got %d", v.Discount)
			}
		})
	}
}

func TestCreateCouponStoresFixedValueInCents(t *testing.T) {
	repo := newFakeCouponRepo()
	svc := NewCouponService(repo)

	coupon, err := svc.CreateCoupon(testContext(), &CreateCouponInput{
		Code:        "MENOS5",
		Type:        "fixed",
		Value:       5.50,
		MinPurchase: 30,
		Active:      true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if coupon.Value != 550 {
		t.Errorf("expected value 550 cents, got %d", coupon.Value)
	}
	if coupon.MinPurchase != 3000 {
		t.Errorf("expected min purchase 3000 cents, got %d", coupon.MinPurchase)
	}
}

func TestCreateCouponRejectsDuplicateCode(t *testing.T) {
	repo := newFakeCouponRepo(&entity.Coupon{Code: "PROMO10", Type: enum.CouponTypePercentage, Value: 10, Active: true})
	svc := NewCouponService(repo)

	_, err := svc.CreateCoupon(testContext(), &CreateCouponInput{
		Code:   "PROMO10",
		Type:   "percentage",
		Value:  15,
		Active: true,
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if appErr := apperror.GetAppError(err); appErr.Code != 409 {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestCreateCouponRejectsPercentageOutOfRange(t *testing.T) {
	svc := NewCouponService(newFakeCouponRepo())

	for _, value := range []float64{0, 101} {
		_, err := svc.CreateCoupon(testContext(), &CreateCouponInput{
			Code:   "PROMO",
			Type:   "percentage",
			Value:  value,
			Active: true,
		})
		if err == nil {
			t.Errorf("expected error for percentage value %v", value)
		}
	}
}

func TestUpdateCouponKeepsCodeTypeValue(t *testing.T) {
	coupon := &entity.Coupon{Code: "PROMO10", Type: enum.CouponTypePercentage, Value: 10, Active: true}
	repo := newFakeCouponRepo(coupon)
	svc := NewCouponService(repo)

	inactive := false
	limit := 50
	updated, err := svc.UpdateCoupon(testContext(), coupon.ID, &UpdateCouponInput{
		Active:     &inactive,
		UsageLimit: &limit,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Active || updated.UsageLimit != 50 {
		t.Error("expected active flag and usage limit to change")
	}
	if updated.Code != "PROMO10" || updated.Type != enum.CouponTypePercentage || updated.Value != 10 {
		t.Error("code, type and value must not change on update")
	}
}
