package service

import (
	"context"
	"strings"
	"testing"

	"github.com/gestorplus/gestor-api/internal/domain/cart"
	"github.com/gestorplus/gestor-api/internal/domain/entity"
	"github.com/gestorplus/gestor-api/internal/domain/enum"
	"github.com/gestorplus/gestor-api/pkg/apperror"
	"github.com/google/uuid"
)

func cartWith(items ...*entity.Product) *cart.Cart {
	c := cart.New()
	for _, p := range items {
		c.Add(p.ID, p.Name, p.SalePrice, 1)
	}
	c.PaymentMethod = enum.PaymentMethodCash
	return c
}

func TestProcessSaleComputesTotalsServerSide(t *testing.T) {
	product := &entity.Product{Name: "Produto", SalePrice: 1000, Stock: 10}
	fx := newCheckoutFixture(product)
	ctx := testContext()

	c := cart.New()
	c.Add(product.ID, product.Name, product.SalePrice, 3)
	c.PaymentMethod = enum.PaymentMethodPix
	c.DiscountPercent = 10

	sale, err := fx.saleSvc.ProcessSale(ctx, c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sale.SubTotal != 3000 {
		t.Errorf("expected subtotal 3000, got %d", sale.SubTotal)
	}
	if sale.DiscountAmount != 300 {
		t.Errorf("expected discount 300, got %d", sale.DiscountAmount)
	}
	if sale.Total != 2700 {
		t.Errorf("expected total 2700, got %d", sale.Total)
	}
	if sale.Status != enum.SaleStatusCompleted {
		t.Errorf("expected completed status, got %v", sale.Status)
	}
	if sale.ReceiptNo == "" {
		t.Error("expected a receipt number")
	}
	if sale.TotalItems != 3 {
		t.Errorf("expected 3 units, got %d", sale.TotalItems)
	}
}

func TestProcessSaleRequiresPaymentMethod(t *testing.T) {
	product := &entity.Product{Name: "Produto", SalePrice: 1000, Stock: 10}
	fx := newCheckoutFixture(product)

	c := cart.New()
	c.Add(product.ID, product.Name, product.SalePrice, 1)

	if _, err := fx.saleSvc.ProcessSale(testContext(), c); err == nil {
		t.Fatal("expected error for missing payment method")
	}
}

func TestProcessSaleInstallmentRules(t *testing.T) {
	product := &entity.Product{Name: "Produto", SalePrice: 1000, Stock: 100}
	fx := newCheckoutFixture(product)
	ctx := testContext()

	// Cash never supports installments.
	c := cartWith(product)
	c.Installments = 3
	if _, err := fx.saleSvc.ProcessSale(ctx, c); err == nil {
		t.Error("expected error for installments on cash payment")
	}

	// Credit card does, up to the cap.
	c = cartWith(product)
	c.PaymentMethod = enum.PaymentMethodCreditCard
	c.Installments = MaxInstallments + 1
	if _, err := fx.saleSvc.ProcessSale(ctx, c); err == nil {
		t.Error("expected error for installments above the cap")
	}

	c = cartWith(product)
	c.PaymentMethod = enum.PaymentMethodCreditCard
	c.Installments = 3
	sale, err := fx.saleSvc.ProcessSale(ctx, c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sale.Installments == nil || *sale.Installments != 3 {
		t.Errorf("expected 3 installments, got %v", sale.Installments)
	}

	// A single installment is not recorded.
	c = cartWith(product)
	sale, err = fx.saleSvc.ProcessSale(ctx, c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sale.Installments != nil {
		t.Errorf("expected no installments recorded, got %v", sale.Installments)
	}
}

func TestProcessSaleRevalidatesCoupon(t *testing.T) {
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

	// The cart carries an advisory discount, but the subtotal no longer meets
	// the coupon's minimum. Checkout must reject it.
	c := cartWith(product)
	c.CouponCode = "PROMO10"
	c.CouponDiscount = 100

	_, err := fx.saleSvc.ProcessSale(ctx, c)
	if err == nil {
		t.Fatal("expected coupon rejection at checkout")
	}
	if appErr := apperror.GetAppError(err); appErr.Code != 422 {
		t.Errorf("expected 422, got %d", appErr.Code)
	}
	if len(fx.sales.sales) != 0 {
		t.Error("no sale must be recorded on coupon rejection")
	}
}

func TestProcessSaleAppliesCouponAndIncrementsUsage(t *testing.T) {
	product := &entity.Product{Name: "Produto", SalePrice: 10000, Stock: 10}
	fx := newCheckoutFixture(product)
	coupon := &entity.Coupon{
		Code:       "MENOS20",
		Type:       enum.CouponTypeFixed,
		Value:      2000,
		Active:     true,
		UsageLimit: 5,
	}
	fx.coupons.Create(context.Background(), coupon)
	ctx := testContext()

	c := cartWith(product)
	c.CouponCode = "MENOS20"

	sale, err := fx.saleSvc.ProcessSale(ctx, c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sale.CouponDiscount != 2000 {
		t.Errorf("expected coupon discount 2000, got %d", sale.CouponDiscount)
	}
	if sale.Total != 8000 {
		t.Errorf("expected total 8000, got %d", sale.Total)
	}
	if coupon.UsedCount != 1 {
		t.Errorf("expected usage count 1, got %d", coupon.UsedCount)
	}
}

func TestProcessSaleProductRemovedBeforeCheckout(t *testing.T) {
	product := &entity.Product{Name: "Produto", SalePrice: 1000, Stock: 10}
	fx := newCheckoutFixture(product)
	ctx := testContext()

	c := cartWith(product)
	// Removed between add-to-cart and checkout. This is a missing product,
	// not a stock shortage.
	fx.products.Delete(ctx, product.ID)

	_, err := fx.saleSvc.ProcessSale(ctx, c)
	if err == nil {
		t.Fatal("expected error for a product removed before checkout")
	}
	appErr := apperror.GetAppError(err)
	if appErr.Code != 404 {
		t.Errorf("expected 404, got %d", appErr.Code)
	}
	if !strings.Contains(appErr.Message, product.Name) {
		t.Errorf("expected the message to name the product, got %q", appErr.Message)
	}
	if len(fx.sales.sales) != 0 {
		t.Error("no sale must be recorded")
	}
}

func TestProcessSaleUnknownClient(t *testing.T) {
	product := &entity.Product{Name: "Produto", SalePrice: 1000, Stock: 10}
	fx := newCheckoutFixture(product)

	unknown := uuid.New()
	c := cartWith(product)
	c.ClientID = &unknown

	_, err := fx.saleSvc.ProcessSale(testContext(), c)
	if err == nil {
		t.Fatal("expected error for unknown client")
	}
	if appErr := apperror.GetAppError(err); appErr.Code != 404 {
		t.Errorf("expected 404, got %d", appErr.Code)
	}
}

func TestProcessSaleAccumulatesClientSpending(t *testing.T) {
	product := &entity.Product{Name: "Produto", SalePrice: 2500, Stock: 10}
	fx := newCheckoutFixture(product)
	client := &entity.Client{Name: "Maria"}
	fx.clients.Create(context.Background(), client)
	ctx := testContext()

	c := cartWith(product)
	c.ClientID = &client.ID

	if _, err := fx.saleSvc.ProcessSale(ctx, c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.TotalSpent != 2500 {
		t.Errorf("expected total spent 2500, got %d", client.TotalSpent)
	}
}

func TestCancelSaleRestoresState(t *testing.T) {
	product := &entity.Product{Name: "Produto", SalePrice: 1000, Stock: 10}
	fx := newCheckoutFixture(product)
	client := &entity.Client{Name: "Maria"}
	fx.clients.Create(context.Background(), client)
	ctx := testContext()

	c := cart.New()
	c.Add(product.ID, product.Name, product.SalePrice, 4)
	c.PaymentMethod = enum.PaymentMethodCash
	c.ClientID = &client.ID

	sale, err := fx.saleSvc.ProcessSale(ctx, c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if product.Stock != 6 {
		t.Fatalf("expected stock 6 after sale, got %d", product.Stock)
	}

	if err := fx.saleSvc.CancelSale(ctx, sale.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if product.Stock != 10 {
		t.Errorf("expected stock restored to 10, got %d", product.Stock)
	}
	if client.TotalSpent != 0 {
		t.Errorf("expected client spending rolled back, got %d", client.TotalSpent)
	}

	got, _ := fx.sales.GetWithItems(ctx, sale.ID)
	if got == nil || got.Status != enum.SaleStatusCancelled {
		t.Error("expected sale kept in the ledger as cancelled")
	}

	// Cancellation leaves an inbound movement per line.
	if len(fx.moves.movements) == 0 {
		t.Fatal("expected stock movements recorded")
	}
	m := fx.moves.movements[len(fx.moves.movements)-1]
	if m.Type != enum.MovementTypeIn || m.Reason != enum.MovementReasonCancellation {
		t.Errorf("unexpected movement: %+v", m)
	}
}

func TestCancelSaleTwice(t *testing.T) {
	product := &entity.Product{Name: "Produto", SalePrice: 1000, Stock: 10}
	fx := newCheckoutFixture(product)
	ctx := testContext()

	sale, err := fx.saleSvc.ProcessSale(ctx, cartWith(product))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := fx.saleSvc.CancelSale(ctx, sale.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := fx.saleSvc.CancelSale(ctx, sale.ID); err == nil {
		t.Fatal("expected error cancelling an already cancelled sale")
	}
	if product.Stock != 10 {
		t.Errorf("stock must be restored exactly once, got %d", product.Stock)
	}
}

func TestCancelSaleRetryAfterFailure(t *testing.T) {
	product := &entity.Product{Name: "Produto", SalePrice: 1000, Stock: 10}
	fx := newCheckoutFixture(product)
	ctx := testContext()

	sale, err := fx.saleSvc.ProcessSale(ctx, cartWith(product))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if product.Stock != 9 {
		t.Fatalf("expected stock 9 after sale, got %d", product.Stock)
	}

	// A cancellation that rolls back must leave the sale completed and the
	// stock untouched, so a retry restores it exactly once.
	fx.sales.failNextCancel = true
	if err := fx.saleSvc.CancelSale(ctx, sale.ID); err == nil {
		t.Fatal("expected the first cancellation to fail")
	}
	if product.Stock != 9 {
		t.Fatalf("failed cancellation must not touch stock, got %d", product.Stock)
	}
	got, _ := fx.sales.GetWithItems(ctx, sale.ID)
	if got.Status != enum.SaleStatusCompleted {
		t.Fatalf("failed cancellation must leave the sale completed, got %v", got.Status)
	}

	if err := fx.saleSvc.CancelSale(ctx, sale.ID); err != nil {
		t.Fatalf("unexpected error on retry: %v", err)
	}
	if product.Stock != 10 {
		t.Errorf("stock must be restored exactly once, got %d", product.Stock)
	}
}

func TestCancelSaleUnknown(t *testing.T) {
	fx := newCheckoutFixture()

	err := fx.saleSvc.CancelSale(testContext(), uuid.New())
	if err == nil {
		t.Fatal("expected error")
	}
	if appErr := apperror.GetAppError(err); appErr.Code != 404 {
		t.Errorf("expected 404, got %d", appErr.Code)
	}
}
