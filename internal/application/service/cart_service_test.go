package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/gestorplus/gestor-api/internal/domain/entity"
	"github.com/gestorplus/gestor-api/internal/domain/enum"
	infraRepo "github.com/gestorplus/gestor-api/internal/infrastructure/repository"
	"github.com/gestorplus/gestor-api/pkg/apperror"
	"github.com/google/uuid"
)

func TestAddItemSnapshotsPrice(t *testing.T) {
	product := &entity.Product{Name: "Dipirona 500mg", SalePrice: 1250, Stock: 10}
	fx := newCheckoutFixture(product)
	ctx := testContext()

	c, err := fx.cartSvc.AddItem(ctx, product.ID, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(c.Items) != 1 || c.Items[0].UnitPrice != 1250 {
		t.Fatalf("expected one line at 1250 cents, got %+v", c.Items)
	}

	// A later catalog price change must not touch the cart line.
	product.SalePrice = 2000
	c, err = fx.cartSvc.GetCart(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Items[0].UnitPrice != 1250 {
		t.Errorf("cart line price drifted to %d", c.Items[0].UnitPrice)
	}
}

func TestAddItemUnknownProduct(t *testing.T) {
	fx := newCheckoutFixture()

	_, err := fx.cartSvc.AddItem(testContext(), uuid.New(), 1)
	if err == nil {
		t.Fatal("expected error")
	}
	if appErr := apperror.GetAppError(err); appErr.Code != 404 {
		t.Errorf("expected 404, got %d", appErr.Code)
	}
}

func TestAddItemByBarcode(t *testing.T) {
	barcode := "7891234567890"
	product := &entity.Product{Name: "Shampoo", SalePrice: 3000, Stock: 5, Barcode: &barcode}
	fx := newCheckoutFixture(product)

	c, err := fx.cartSvc.AddItemByBarcode(testContext(), barcode, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(c.Items) != 1 || c.Items[0].ProductID != product.ID {
		t.Fatalf("expected the scanned product in the cart, got %+v", c.Items)
	}

	if _, err := fx.cartSvc.AddItemByBarcode(testContext(), "0000000000000", 1); err == nil {
		t.Error("expected error for unknown barcode")
	}
}

func TestCartsAreIsolatedPerOperator(t *testing.T) {
	product := &entity.Product{Name: "Produto", SalePrice: 100, Stock: 10}
	fx := newCheckoutFixture(product)

	tenantID := uuid.New()
	ctxA := infraRepo.WithUser(infraRepo.WithTenant(context.Background(), tenantID), uuid.New())
	ctxB := infraRepo.WithUser(infraRepo.WithTenant(context.Background(), tenantID), uuid.New())

	if _, err := fx.cartSvc.AddItem(ctxA, product.ID, 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cartB, err := fx.cartSvc.GetCart(ctxB)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cartB.IsEmpty() {
		t.Error("another operator's cart must start empty")
	}
}

func TestUpdateSelectionsValidation(t *testing.T) {
	fx := newCheckoutFixture()
	ctx := testContext()

	bad := "cheque"
	if _, err := fx.cartSvc.UpdateSelections(ctx, &CheckoutSelections{PaymentMethod: &bad}); err == nil {
		t.Error("expected error for invalid payment method")
	}

	over := 150.0
	if _, err := fx.cartSvc.UpdateSelections(ctx, &CheckoutSelections{DiscountPercent: &over}); err == nil {
		t.Error("expected error for discount above 100")
	}

	pix := "pix"
	disc := 5.0
	c, err := fx.cartSvc.UpdateSelections(ctx, &CheckoutSelections{PaymentMethod: &pix, DiscountPercent: &disc})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.PaymentMethod != enum.PaymentMethodPix || c.DiscountPercent != 5 {
		t.Errorf("selections not applied: %+v", c)
	}
}

func TestUpdateSelectionsNilClientClears(t *testing.T) {
	fx := newCheckoutFixture()
	ctx := testContext()

	clientID := uuid.New()
	c, err := fx.cartSvc.UpdateSelections(ctx, &CheckoutSelections{ClientID: &clientID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.ClientID == nil || *c.ClientID != clientID {
		t.Fatal("expected client attached")
	}

	nilID := uuid.Nil
	c, err = fx.cartSvc.UpdateSelections(ctx, &CheckoutSelections{ClientID: &nilID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.ClientID != nil {
		t.Error("expected client detached")
	}
}

func TestApplyCouponAttachesDiscount(t *testing.T) {
	product := &entity.Product{Name: "Produto", SalePrice: 5000, Stock: 10}
	fx := newCheckoutFixture(product)
	fx.coupons.Create(context.Background(), &entity.Coupon{
		Code:   "PROMO10",
		Type:   enum.CouponTypePercentage,
		Value:  10,
		Active: true,
	})
	ctx := testContext()

	if _, err := fx.cartSvc.AddItem(ctx, product.ID, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c, err := fx.cartSvc.ApplyCoupon(ctx, "PROMO10")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.CouponCode != "PROMO10" || c.CouponDiscount != 500 {
		t.Errorf("expected PROMO10 with 500 cents off, got %q %d", c.CouponCode, c.CouponDiscount)
	}

	c, err = fx.cartSvc.RemoveCoupon(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.CouponCode != "" || c.CouponDiscount != 0 {
		t.Error("expected coupon detached")
	}
}

func TestApplyCouponRejected(t *testing.T) {
	product := &entity.Product{Name: "Produto", SalePrice: 1000, Stock: 10}
	fx := newCheckoutFixture(product)
	fx.coupons.Create(context.Background(), &entity.Coupon{
		Code:        "PROMO10",
		Type:        enum.CouponTypePercentage,
		Value:       10,
		Active:      true,
		MinPurchase: 5000,
	})
	ctx := testContext()

	if _, err := fx.cartSvc.AddItem(ctx, product.ID, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := fx.cartSvc.ApplyCoupon(ctx, "PROMO10")
	if err == nil {
		t.Fatal("expected rejection below minimum purchase")
	}
	if appErr := apperror.GetAppError(err); appErr.Code != 422 {
		t.Errorf("expected 422, got %d", appErr.Code)
	}
}

func TestCheckoutClearsCartOnSuccess(t *testing.T) {
	product := &entity.Product{Name: "Produto", SalePrice: 1000, Stock: 10}
	fx := newCheckoutFixture(product)
	ctx := testContext()

	if _, err := fx.cartSvc.AddItem(ctx, product.ID, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pay := "dinheiro"
	if _, err := fx.cartSvc.UpdateSelections(ctx, &CheckoutSelections{PaymentMethod: &pay}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sale, err := fx.cartSvc.Checkout(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sale.Total != 2000 {
		t.Errorf("expected total 2000, got %d", sale.Total)
	}

	c, err := fx.cartSvc.GetCart(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !c.IsEmpty() {
		t.Error("expected cart cleared after successful checkout")
	}
	if product.Stock != 8 {
		t.Errorf("expected stock 8 after sale, got %d", product.Stock)
	}
}

func TestCheckoutKeepsCartOnFailure(t *testing.T) {
	product := &entity.Product{Name: "Produto", SalePrice: 1000, Stock: 1}
	fx := newCheckoutFixture(product)
	ctx := testContext()

	if _, err := fx.cartSvc.AddItem(ctx, product.ID, 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pay := "pix"
	if _, err := fx.cartSvc.UpdateSelections(ctx, &CheckoutSelections{PaymentMethod: &pay}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := fx.cartSvc.Checkout(ctx); err == nil {
		t.Fatal("expected insufficient stock error")
	}

	c, err := fx.cartSvc.GetCart(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.IsEmpty() {
		t.Error("cart must survive a failed checkout")
	}
	if product.Stock != 1 {
		t.Errorf("stock must be untouched after rollback, got %d", product.Stock)
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	fx := newCheckoutFixture()

	_, err := fx.cartSvc.Checkout(testContext())
	if !errors.Is(err, apperror.ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
}

func TestConcurrentCheckoutProducesOneSale(t *testing.T) {
	product := &entity.Product{Name: "Produto", SalePrice: 1000, Stock: 100}
	fx := newCheckoutFixture(product)
	ctx := testContext()

	if _, err := fx.cartSvc.AddItem(ctx, product.ID, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pay := "dinheiro"
	if _, err := fx.cartSvc.UpdateSelections(ctx, &CheckoutSelections{PaymentMethod: &pay}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	const attempts = 8
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = fx.cartSvc.Checkout(ctx)
		}(i)
	}
	wg.Wait()

	var succeeded int
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, apperror.ErrCheckoutInProgress), errors.Is(err, apperror.ErrEmptyCart):
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	if succeeded != 1 {
		t.Errorf("expected exactly one successful checkout, got %d", succeeded)
	}
	if len(fx.sales.sales) != 1 {
		t.Errorf("expected one ledger entry, got %d", len(fx.sales.sales))
	}
}
