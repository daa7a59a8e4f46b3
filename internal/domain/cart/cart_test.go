package cart

import (
	"testing"

	"github.com/google/uuid"
	"github.com/gestorplus/gestor-api/internal/domain/enum"
)

func TestAddMergesSameProduct(t *testing.T) {
	c := New()
	id := uuid.New()

	c.Add(id, "Dipirona 500mg", 1000, 1)
	c.Add(id, "Dipirona 500mg", 1000, 2)

	if len(c.Items) != 1 {
		t.Fatalf("expected 1 line, got %d", len(c.Items))
	}
	if c.Items[0].Quantity != 3 {
		t.Errorf("expected quantity 3, got %d", c.Items[0].Quantity)
	}
	if c.Items[0].Total != 3000 {
		t.Errorf("expected line total 3000, got %d", c.Items[0].Total)
	}
}

func TestSubTotalMatchesLineSum(t *testing.T) {
	c := New()
	a, b := uuid.New(), uuid.New()

	c.Add(a, "Product A", 1000, 2) // 20.00
	c.Add(b, "Product B", 500, 1)  // 5.00

	if got := c.SubTotal(); got != 2500 {
		t.Fatalf("expected subtotal 2500, got %d", got)
	}

	c.UpdateQuantity(a, 5)
	c.Remove(b)
	c.Add(b, "Product B", 500, 3)

	var want int64
	for _, it := range c.Items {
		if it.Quantity <= 0 {
			t.Errorf("item %s has non-positive quantity %d", it.ProductName, it.Quantity)
		}
		if it.Total != int64(it.Quantity)*it.UnitPrice {
			t.Errorf("item %s total drifted: %d != %d*%d", it.ProductName, it.Total, it.Quantity, it.UnitPrice)
		}
		want += it.Total
	}
	if got := c.SubTotal(); got != want {
		t.Errorf("subtotal %d does not match line sum %d", got, want)
	}
}

func TestUpdateQuantityZeroRemoves(t *testing.T) {
	c := New()
	id := uuid.New()
	c.Add(id, "Product", 700, 2)

	c.UpdateQuantity(id, 0)
	if !c.IsEmpty() {
		t.Fatal("expected empty cart after UpdateQuantity(id, 0)")
	}

	// Equivalent to Remove
	c.Add(id, "Product", 700, 2)
	c.Remove(id)
	if !c.IsEmpty() {
		t.Fatal("expected empty cart after Remove")
	}
}

func TestRemoveAbsentIsNoop(t *testing.T) {
	c := New()
	c.Add(uuid.New(), "Product", 100, 1)
	c.Remove(uuid.New())
	if len(c.Items) != 1 {
		t.Fatalf("expected 1 line, got %d", len(c.Items))
	}
}

func TestDiscountTotals(t *testing.T) {
	c := New()
	c.Add(uuid.New(), "Product A", 1000, 2) // 20.00
	c.Add(uuid.New(), "Product B", 500, 1)  // 5.00

	c.DiscountPercent = 10
	if got := c.Total(); got != 2250 {
		t.Errorf("expected total 2250 with 10%% discount, got %d", got)
	}

	c.DiscountPercent = 0
	if got := c.Total(); got != 2500 {
		t.Errorf("expected total 2500 without discount, got %d", got)
	}

	// Total never negative
	c.DiscountPercent = 100
	c.CouponDiscount = 1000
	if got := c.Total(); got != 0 {
		t.Errorf("expected total clamped at 0, got %d", got)
	}
}

func TestDiscountPercentClamped(t *testing.T) {
	c := New()
	c.Add(uuid.New(), "Product", 1000, 1)
	c.DiscountPercent = 150
	if got := c.DiscountAmount(); got != 1000 {
		t.Errorf("expected discount clamped to subtotal, got %d", got)
	}
}

func TestCouponDiscountSubtractedFromTotal(t *testing.T) {
	c := New()
	c.Add(uuid.New(), "Product", 5000, 1)
	c.CouponCode = "PROMO10"
	c.CouponDiscount = 500
	if got := c.Total(); got != 4500 {
		t.Errorf("expected total 4500, got %d", got)
	}
}

func TestClearResetsSelections(t *testing.T) {
	c := New()
	clientID := uuid.New()
	c.Add(uuid.New(), "Product", 1000, 1)
	c.ClientID = &clientID
	c.PaymentMethod = enum.PaymentMethodPix
	c.DiscountPercent = 5
	c.CouponCode = "PROMO10"
	c.CouponDiscount = 100
	c.Notes = "entrega"

	c.Clear()

	if !c.IsEmpty() {
		t.Error("expected empty cart after Clear")
	}
	if c.ClientID != nil || c.PaymentMethod != "" || c.DiscountPercent != 0 ||
		c.CouponCode != "" || c.CouponDiscount != 0 || c.Notes != "" || c.Installments != 0 {
		t.Error("expected all selections reset after Clear")
	}
}

func TestAddPreservesInsertionOrder(t *testing.T) {
	c := New()
	a, b, d := uuid.New(), uuid.New(), uuid.New()
	c.Add(a, "First", 100, 1)
	c.Add(b, "Second", 200, 1)
	c.Add(d, "Third", 300, 1)
	c.Add(b, "Second", 200, 1) // merge must not reorder

	names := []string{c.Items[0].ProductName, c.Items[1].ProductName, c.Items[2].ProductName}
	if names[0] != "First" || names[1] != "Second" || names[2] != "Third" {
		t.Errorf("unexpected order: %v", names)
	}
}

func TestAddClampsQuantityToOne(t *testing.T) {
	c := New()
	c.Add(uuid.New(), "Product", 100, 0)
	if c.Items[0].Quantity != 1 {
		t.Errorf("expected quantity 1, got %d", c.Items[0].Quantity)
	}
}
