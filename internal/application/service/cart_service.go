package service

import (
	"context"
	"sync"
	"time"

	"github.com/gestorplus/gestor-api/internal/domain/cart"
	"github.com/gestorplus/gestor-api/internal/domain/entity"
	"github.com/gestorplus/gestor-api/internal/domain/enum"
	"github.com/gestorplus/gestor-api/internal/domain/repository"
	infraRepo "github.com/gestorplus/gestor-api/internal/infrastructure/repository"
	"github.com/gestorplus/gestor-api/pkg/apperror"
	"github.com/google/uuid"
)

// cartTTL is how long an untouched cart survives before being dropped.
const cartTTL = 12 * time.Hour

type cartKey struct {
	tenantID uuid.UUID
	userID   uuid.UUID
}

type cartSession struct {
	cart       *cart.Cart
	submitting bool
	touchedAt  time.Time
}

// CartService holds one in-memory cart per operator. Carts never touch the
// database; only a successful checkout produces persistent state.
type CartService struct {
	mu       sync.Mutex
	sessions map[cartKey]*cartSession

	productRepo repository.ProductRepository
	couponSvc   *CouponService
	saleSvc     *SaleService
}

// NewCartService creates a new cart service
func NewCartService(productRepo repository.ProductRepository, couponSvc *CouponService, saleSvc *SaleService) *CartService {
	return &CartService{
		sessions:    make(map[cartKey]*cartSession),
		productRepo: productRepo,
		couponSvc:   couponSvc,
		saleSvc:     saleSvc,
	}
}

func (s *CartService) key(ctx context.Context) (cartKey, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return cartKey{}, apperror.NewBadRequestError("Tenant context required")
	}
	userID, ok := infraRepo.GetUserID(ctx)
	if !ok {
		return cartKey{}, apperror.NewBadRequestError("User context required")
	}
	return cartKey{tenantID: tenantID, userID: userID}, nil
}

// session returns the operator's cart session, creating it when absent.
// Callers must hold s.mu.
func (s *CartService) session(key cartKey) *cartSession {
	now := time.Now()
	for k, sess := range s.sessions {
		if now.Sub(sess.touchedAt) > cartTTL && !sess.submitting {
			delete(s.sessions, k)
		}
	}

	sess, ok := s.sessions[key]
	if !ok {
		sess = &cartSession{cart: cart.New(), touchedAt: now}
		s.sessions[key] = sess
	}
	sess.touchedAt = now
	return sess
}

// snapshot returns a copy safe to marshal after the lock is released.
func snapshot(c *cart.Cart) *cart.Cart {
	cp := *c
	cp.Items = make([]cart.Item, len(c.Items))
	copy(cp.Items, c.Items)
	return &cp
}

// GetCart returns the operator's current cart.
func (s *CartService) GetCart(ctx context.Context) (*cart.Cart, error) {
	key, err := s.key(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot(s.session(key).cart), nil
}

// AddItem puts qty units of a product into the cart, snapshotting its name
// and current sale price.
func (s *CartService) AddItem(ctx context.Context, productID uuid.UUID, qty int) (*cart.Cart, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return s.addProduct(ctx, product, qty)
}

// AddItemByBarcode resolves a scanned barcode and adds one unit (or qty).
func (s *CartService) AddItemByBarcode(ctx context.Context, barcode string, qty int) (*cart.Cart, error) {
	product, err := s.productRepo.GetByBarcode(ctx, barcode)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product with barcode " + barcode)
	}
	return s.addProduct(ctx, product, qty)
}

func (s *CartService) addProduct(ctx context.Context, product *entity.Product, qty int) (*cart.Cart, error) {
	key, err := s.key(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.session(key)
	sess.cart.Add(product.ID, product.Name, product.SalePrice, qty)
	return snapshot(sess.cart), nil
}

// UpdateItem sets the quantity of a cart line. Zero removes the line.
func (s *CartService) UpdateItem(ctx context.Context, productID uuid.UUID, qty int) (*cart.Cart, error) {
	key, err := s.key(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.session(key)
	sess.cart.UpdateQuantity(productID, qty)
	return snapshot(sess.cart), nil
}

// RemoveItem deletes a cart line.
func (s *CartService) RemoveItem(ctx context.Context, productID uuid.UUID) (*cart.Cart, error) {
	key, err := s.key(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.session(key)
	sess.cart.Remove(productID)
	return snapshot(sess.cart), nil
}

// ClearCart empties the cart and resets all selections.
func (s *CartService) ClearCart(ctx context.Context) (*cart.Cart, error) {
	key, err := s.key(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.session(key)
	sess.cart.Clear()
	return snapshot(sess.cart), nil
}

// CheckoutSelections carries the non-item state set before submission.
type CheckoutSelections struct {
	ClientID        *uuid.UUID
	PaymentMethod   *string
	Installments    *int
	DiscountPercent *float64
	Notes           *string
}

// UpdateSelections applies client, payment, discount and notes changes to the
// cart. Only non-nil fields are touched.
func (s *CartService) UpdateSelections(ctx context.Context, input *CheckoutSelections) (*cart.Cart, error) {
	key, err := s.key(ctx)
	if err != nil {
		return nil, err
	}

	if input.PaymentMethod != nil && *input.PaymentMethod != "" {
		if !enum.PaymentMethod(*input.PaymentMethod).Valid() {
			return nil, apperror.NewBadRequestError("Invalid payment method")
		}
	}
	if input.DiscountPercent != nil && (*input.DiscountPercent < 0 || *input.DiscountPercent > 100) {
		return nil, apperror.NewBadRequestError("Discount percent must be between 0 and 100")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.session(key)
	c := sess.cart

	if input.ClientID != nil {
		if *input.ClientID == uuid.Nil {
			c.ClientID = nil
		} else {
			c.ClientID = input.ClientID
		}
	}
	if input.PaymentMethod != nil {
		c.PaymentMethod = enum.PaymentMethod(*input.PaymentMethod)
	}
	if input.Installments != nil {
		c.Installments = *input.Installments
	}
	if input.DiscountPercent != nil {
		c.DiscountPercent = *input.DiscountPercent
	}
	if input.Notes != nil {
		c.Notes = *input.Notes
	}
	return snapshot(c), nil
}

// ApplyCoupon validates a code against the current subtotal and attaches it
// to the cart. The stored discount is advisory; checkout revalidates.
func (s *CartService) ApplyCoupon(ctx context.Context, code string) (*cart.Cart, error) {
	key, err := s.key(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	subtotal := s.session(key).cart.SubTotal()
	s.mu.Unlock()

	validation, err := s.couponSvc.Validate(ctx, code, subtotal)
	if err != nil {
		return nil, err
	}
	if !validation.Valid() {
		return nil, apperror.NewCouponRejectedError(validation.Reason)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.session(key)
	sess.cart.CouponCode = validation.Coupon.Code
	sess.cart.CouponDiscount = validation.Discount
	return snapshot(sess.cart), nil
}

// RemoveCoupon detaches any applied coupon from the cart.
func (s *CartService) RemoveCoupon(ctx context.Context) (*cart.Cart, error) {
	key, err := s.key(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.session(key)
	sess.cart.CouponCode = ""
	sess.cart.CouponDiscount = 0
	return snapshot(sess.cart), nil
}

// Checkout submits the cart as a sale. A submitting flag per session blocks
// concurrent double submissions; the cart is cleared only on success.
func (s *CartService) Checkout(ctx context.Context) (*entity.Sale, error) {
	key, err := s.key(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	sess := s.session(key)
	if sess.submitting {
		s.mu.Unlock()
		return nil, apperror.ErrCheckoutInProgress
	}
	if sess.cart.IsEmpty() {
		s.mu.Unlock()
		return nil, apperror.ErrEmptyCart
	}
	sess.submitting = true
	submitted := snapshot(sess.cart)
	s.mu.Unlock()

	sale, err := s.saleSvc.ProcessSale(ctx, submitted)

	s.mu.Lock()
	sess.submitting = false
	if err == nil {
		sess.cart.Clear()
	}
	s.mu.Unlock()

	return sale, err
}
