package service

import (
	"context"
	"errors"
	"time"

	"github.com/gestorplus/gestor-api/internal/domain/entity"
	"github.com/gestorplus/gestor-api/internal/domain/enum"
	"github.com/gestorplus/gestor-api/internal/domain/repository"
	infraRepo "github.com/gestorplus/gestor-api/internal/infrastructure/repository"
	"github.com/gestorplus/gestor-api/pkg/metrics"
	"github.com/gestorplus/gestor-api/pkg/pagination"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// testContext returns a context carrying a tenant and user, the way the auth
// middleware prepares it for every authenticated request.
func testContext() context.Context {
	ctx := infraRepo.WithTenant(context.Background(), uuid.New())
	return infraRepo.WithUser(ctx, uuid.New())
}

type fakeProductRepo struct {
	products map[uuid.UUID]*entity.Product
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: make(map[uuid.UUID]*entity.Product)}
	for _, p := range products {
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		r.products[p.ID] = p
	}
	return r
}

func (r *fakeProductRepo) Create(ctx context.Context, p *entity.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	return r.products[id], nil
}

func (r *fakeProductRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	out := make([]entity.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) GetBySlug(ctx context.Context, slug string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.Slug == slug {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) GetByBarcode(ctx context.Context, barcode string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.Barcode != nil && *p.Barcode == barcode {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) Update(ctx context.Context, p *entity.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) List(ctx context.Context, params *repository.ProductFilterParams) ([]entity.Product, int64, error) {
	out := make([]entity.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *fakeProductRepo) GetLowStock(ctx context.Context) ([]entity.Product, error) {
	var out []entity.Product
	for _, p := range r.products {
		if p.Stock > 0 && p.IsLowStock() {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) GetOutOfStock(ctx context.Context) ([]entity.Product, error) {
	var out []entity.Product
	for _, p := range r.products {
		if p.IsOutOfStock() {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) GetExpiring(ctx context.Context, before time.Time) ([]entity.Product, error) {
	var out []entity.Product
	for _, p := range r.products {
		if p.Perishable && p.ExpiresAt != nil && p.ExpiresAt.Before(before) {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) AdjustStock(ctx context.Context, id uuid.UUID, delta int) (bool, error) {
	p, ok := r.products[id]
	if !ok {
		return false, nil
	}
	if p.Stock+delta < 0 {
		return false, nil
	}
	p.Stock += delta
	return true, nil
}

type fakeCouponRepo struct {
	coupons map[uuid.UUID]*entity.Coupon
}

func newFakeCouponRepo(coupons ...*entity.Coupon) *fakeCouponRepo {
	r := &fakeCouponRepo{coupons: make(map[uuid.UUID]*entity.Coupon)}
	for _, c := range coupons {
		if c.ID == uuid.Nil {
			c.ID = uuid.New()
		}
		r.coupons[c.ID] = c
	}
	return r
}

func (r *fakeCouponRepo) Create(ctx context.Context, c *entity.Coupon) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.coupons[c.ID] = c
	return nil
}

func (r *fakeCouponRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Coupon, error) {
	return r.coupons[id], nil
}

func (r *fakeCouponRepo) GetByCode(ctx context.Context, code string) (*entity.Coupon, error) {
	for _, c := range r.coupons {
		if c.Code == code {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeCouponRepo) Update(ctx context.Context, c *entity.Coupon) error {
	r.coupons[c.ID] = c
	return nil
}

func (r *fakeCouponRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.coupons, id)
	return nil
}

func (r *fakeCouponRepo) List(ctx context.Context, params *pagination.Params, search string) ([]entity.Coupon, int64, error) {
	out := make([]entity.Coupon, 0, len(r.coupons))
	for _, c := range r.coupons {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

type fakeClientRepo struct {
	clients map[uuid.UUID]*entity.Client
}

func newFakeClientRepo(clients ...*entity.Client) *fakeClientRepo {
	r := &fakeClientRepo{clients: make(map[uuid.UUID]*entity.Client)}
	for _, c := range clients {
		if c.ID == uuid.Nil {
			c.ID = uuid.New()
		}
		r.clients[c.ID] = c
	}
	return r
}

func (r *fakeClientRepo) Create(ctx context.Context, c *entity.Client) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.clients[c.ID] = c
	return nil
}

func (r *fakeClientRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Client, error) {
	return r.clients[id], nil
}

func (r *fakeClientRepo) GetByDocument(ctx context.Context, document string) (*entity.Client, error) {
	for _, c := range r.clients {
		if c.Document != nil && *c.Document == document {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeClientRepo) Update(ctx context.Context, c *entity.Client) error {
	r.clients[c.ID] = c
	return nil
}

func (r *fakeClientRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.clients, id)
	return nil
}

func (r *fakeClientRepo) List(ctx context.Context, params *pagination.Params, search string) ([]entity.Client, int64, error) {
	out := make([]entity.Client, 0, len(r.clients))
	for _, c := range r.clients {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (r *fakeClientRepo) TopSpenders(ctx context.Context, limit int) ([]entity.Client, error) {
	return nil, nil
}

type fakeMovementRepo struct {
	movements []*entity.StockMovement
}

func (r *fakeMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	r.movements = append(r.movements, m)
	return nil
}

func (r *fakeMovementRepo) ListByProduct(ctx context.Context, productID uuid.UUID, params *pagination.Params) ([]entity.StockMovement, int64, error) {
	return nil, 0, nil
}

func (r *fakeMovementRepo) List(ctx context.Context, params *pagination.Params) ([]entity.StockMovement, int64, error) {
	return nil, 0, nil
}

// fakeSaleRepo mimics the transactional checkout and cancellation: stock is
// decremented per line, the whole submission is rejected when any line cannot
// be covered, and a cancellation applies in full or not at all.
type fakeSaleRepo struct {
	products *fakeProductRepo
	coupons  *fakeCouponRepo
	clients  *fakeClientRepo
	moves    *fakeMovementRepo
	sales    map[uuid.UUID]*entity.Sale

	// failNextCancel makes the next CancelAndRestore fail before applying
	// anything, the way a rolled-back transaction leaves the database.
	failNextCancel bool
}

func newFakeSaleRepo(products *fakeProductRepo, coupons *fakeCouponRepo, clients *fakeClientRepo, moves *fakeMovementRepo) *fakeSaleRepo {
	return &fakeSaleRepo{
		products: products,
		coupons:  coupons,
		clients:  clients,
		moves:    moves,
		sales:    make(map[uuid.UUID]*entity.Sale),
	}
}

func (r *fakeSaleRepo) CreateWithItems(ctx context.Context, sale *entity.Sale, items []entity.SaleItem, couponID *uuid.UUID) ([]uuid.UUID, error) {
	var insufficient []uuid.UUID
	for _, item := range items {
		p, ok := r.products.products[item.ProductID]
		if !ok || p.Stock < item.Quantity {
			insufficient = append(insufficient, item.ProductID)
		}
	}
	if len(insufficient) > 0 {
		return insufficient, nil
	}

	for _, item := range items {
		r.products.products[item.ProductID].Stock -= item.Quantity
	}
	if couponID != nil {
		if c, ok := r.coupons.coupons[*couponID]; ok {
			c.UsedCount++
		}
	}
	if sale.ClientID != nil {
		if c, ok := r.clients.clients[*sale.ClientID]; ok {
			c.TotalSpent += sale.Total
		}
	}

	sale.ID = uuid.New()
	sale.Items = items
	r.sales[sale.ID] = sale
	return nil, nil
}

func (r *fakeSaleRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	return r.sales[id], nil
}

func (r *fakeSaleRepo) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	return r.sales[id], nil
}

func (r *fakeSaleRepo) GetByReceiptNo(ctx context.Context, receiptNo string) (*entity.Sale, error) {
	for _, s := range r.sales {
		if s.ReceiptNo == receiptNo {
			return s, nil
		}
	}
	return nil, nil
}

func (r *fakeSaleRepo) List(ctx context.Context, params *repository.SaleFilterParams) ([]entity.Sale, int64, error) {
	out := make([]entity.Sale, 0, len(r.sales))
	for _, s := range r.sales {
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

func (r *fakeSaleRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.SaleStatus) error {
	if s, ok := r.sales[id]; ok {
		s.Status = status
	}
	return nil
}

func (r *fakeSaleRepo) CancelAndRestore(ctx context.Context, sale *entity.Sale, userID uuid.UUID) (bool, error) {
	if r.failNextCancel {
		r.failNextCancel = false
		return false, errors.New("transaction rolled back")
	}

	stored, ok := r.sales[sale.ID]
	if !ok || stored.Status != enum.SaleStatusCompleted {
		return false, nil
	}
	stored.Status = enum.SaleStatusCancelled

	for _, item := range stored.Items {
		if p, ok := r.products.products[item.ProductID]; ok {
			p.Stock += item.Quantity
		}
		r.moves.Create(ctx, &entity.StockMovement{
			TenantID:  stored.TenantID,
			ProductID: item.ProductID,
			UserID:    userID,
			SaleID:    &stored.ID,
			Type:      enum.MovementTypeIn,
			Quantity:  item.Quantity,
			Reason:    enum.MovementReasonCancellation,
		})
	}

	if stored.ClientID != nil {
		if c, ok := r.clients.clients[*stored.ClientID]; ok {
			c.TotalSpent -= stored.Total
			if c.TotalSpent < 0 {
				c.TotalSpent = 0
			}
		}
	}

	return true, nil
}

// checkoutFixture wires a sale service plus its cart service over fakes.
type checkoutFixture struct {
	products *fakeProductRepo
	coupons  *fakeCouponRepo
	clients  *fakeClientRepo
	moves    *fakeMovementRepo
	sales    *fakeSaleRepo
	saleSvc  *SaleService
	cartSvc  *CartService
}

func newCheckoutFixture(products ...*entity.Product) *checkoutFixture {
	productRepo := newFakeProductRepo(products...)
	couponRepo := newFakeCouponRepo()
	clientRepo := newFakeClientRepo()
	moveRepo := &fakeMovementRepo{}
	saleRepo := newFakeSaleRepo(productRepo, couponRepo, clientRepo, moveRepo)

	couponSvc := NewCouponService(couponRepo)
	saleSvc := NewSaleService(saleRepo, productRepo, clientRepo, couponSvc, metrics.New(), nil, zap.NewNop())
	cartSvc := NewCartService(productRepo, couponSvc, saleSvc)

	return &checkoutFixture{
		products: productRepo,
		coupons:  couponRepo,
		clients:  clientRepo,
		moves:    moveRepo,
		sales:    saleRepo,
		saleSvc:  saleSvc,
		cartSvc:  cartSvc,
	}
}
