package service

import (
	"context"
	"time"

	"github.com/gestorplus/gestor-api/internal/domain/cart"
	"github.com/gestorplus/gestor-api/internal/domain/entity"
	"github.com/gestorplus/gestor-api/internal/domain/enum"
	"github.com/gestorplus/gestor-api/internal/domain/repository"
	infraRepo "github.com/gestorplus/gestor-api/internal/infrastructure/repository"
	"github.com/gestorplus/gestor-api/pkg/apperror"
	"github.com/gestorplus/gestor-api/pkg/metrics"
	"github.com/gestorplus/gestor-api/pkg/pagination"
	"github.com/gestorplus/gestor-api/pkg/sheets"
	"github.com/gestorplus/gestor-api/pkg/utils"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MaxInstallments caps installment counts for credit card and bank slip sales.
const MaxInstallments = 12

// SaleService turns carts into ledger entries and manages the sale ledger
type SaleService struct {
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
	clientRepo  repository.ClientRepository
	couponSvc   *CouponService
	metrics     *metrics.Metrics
	sheetSync   *sheets.Syncer
	logger      *zap.Logger
}

// NewSaleService creates a new sale service
func NewSaleService(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	clientRepo repository.ClientRepository,
	couponSvc *CouponService,
	m *metrics.Metrics,
	sheetSync *sheets.Syncer,
	logger *zap.Logger,
) *SaleService {
	return &SaleService{
		saleRepo:    saleRepo,
		productRepo: productRepo,
		clientRepo:  clientRepo,
		couponSvc:   couponSvc,
		metrics:     m,
		sheetSync:   sheetSync,
		logger:      logger,
	}
}

// ProcessSale submits a cart as a sale. Every client-supplied figure is
// recomputed server-side: the coupon is revalidated against the current
// subtotal and stock is decremented conditionally inside one transaction.
func (s *SaleService) ProcessSale(ctx context.Context, c *cart.Cart) (*entity.Sale, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}
	userID, ok := infraRepo.GetUserID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("User context required")
	}

	if c.IsEmpty() {
		s.metrics.CheckoutFailed.WithLabelValues("empty_cart").Inc()
		return nil, apperror.ErrEmptyCart
	}

	if !c.PaymentMethod.Valid() {
		s.metrics.CheckoutFailed.WithLabelValues("invalid_payment").Inc()
		return nil, apperror.NewBadRequestError("A valid payment method is required")
	}

	installments := c.Installments
	if installments <= 0 {
		installments = 1
	}
	if installments > 1 && !c.PaymentMethod.AllowsInstallments() {
		s.metrics.CheckoutFailed.WithLabelValues("invalid_payment").Inc()
		return nil, apperror.NewBadRequestError("Payment method does not support installments")
	}
	if installments > MaxInstallments {
		s.metrics.CheckoutFailed.WithLabelValues("invalid_payment").Inc()
		return nil, apperror.NewBadRequestError("Too many installments")
	}

	if c.ClientID != nil {
		client, err := s.clientRepo.GetByID(ctx, *c.ClientID)
		if err != nil {
			return nil, err
		}
		if client == nil {
			return nil, apperror.NewNotFoundError("Client")
		}
	}

	// Every line must resolve to a live product before the transaction runs;
	// a product deleted after add-to-cart is a missing product, not a
	// stock shortage.
	ids := make([]uuid.UUID, 0, len(c.Items))
	for _, line := range c.Items {
		ids = append(ids, line.ProductID)
	}
	resolved, err := s.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	nameByID := make(map[uuid.UUID]string, len(resolved))
	for _, p := range resolved {
		nameByID[p.ID] = p.Name
	}
	for _, line := range c.Items {
		if _, ok := nameByID[line.ProductID]; !ok {
			s.metrics.CheckoutFailed.WithLabelValues("unknown_product").Inc()
			return nil, apperror.NewNotFoundError("Product " + line.ProductName)
		}
	}

	subTotal := c.SubTotal()
	discountAmount := c.DiscountAmount()

	// The cart's coupon discount is advisory only. Revalidate against the
	// subtotal the server computed.
	var couponID *uuid.UUID
	var couponCode *string
	var couponDiscount int64
	if c.CouponCode != "" {
		validation, err := s.couponSvc.Validate(ctx, c.CouponCode, subTotal)
		if err != nil {
			return nil, err
		}
		if !validation.Valid() {
			s.metrics.CheckoutFailed.WithLabelValues("coupon_rejected").Inc()
			s.metrics.CouponsRejected.WithLabelValues(validation.Reason).Inc()
			return nil, apperror.NewCouponRejectedError(validation.Reason)
		}
		couponID = &validation.Coupon.ID
		code := validation.Coupon.Code
		couponCode = &code
		couponDiscount = validation.Discount
	}

	total := subTotal - discountAmount - couponDiscount
	if total < 0 {
		total = 0
	}

	var clientNotes *string
	if c.Notes != "" {
		notes := c.Notes
		clientNotes = &notes
	}

	sale := &entity.Sale{
		TenantID:        tenantID,
		UserID:          userID,
		ClientID:        c.ClientID,
		ReceiptNo:       utils.GenerateReceiptNo(),
		SaleDate:        time.Now(),
		Status:          enum.SaleStatusCompleted,
		TotalItems:      c.TotalUnits(),
		SubTotal:        subTotal,
		DiscountPercent: c.DiscountPercent,
		DiscountAmount:  discountAmount,
		CouponCode:      couponCode,
		CouponDiscount:  couponDiscount,
		Total:           total,
		PaymentMethod:   c.PaymentMethod,
		Notes:           clientNotes,
	}
	if installments > 1 {
		sale.Installments = &installments
	}

	items := make([]entity.SaleItem, 0, len(c.Items))
	for _, line := range c.Items {
		items = append(items, entity.SaleItem{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			Total:       line.Total,
		})
	}

	insufficient, err := s.saleRepo.CreateWithItems(ctx, sale, items, couponID)
	if err != nil {
		s.metrics.CheckoutFailed.WithLabelValues("database").Inc()
		return nil, err
	}
	if len(insufficient) > 0 {
		s.metrics.CheckoutFailed.WithLabelValues("insufficient_stock").Inc()
		names := make([]string, 0, len(insufficient))
		for _, pid := range insufficient {
			if name := nameByID[pid]; name != "" {
				names = append(names, name)
			} else {
				names = append(names, pid.String())
			}
		}
		return nil, apperror.NewInsufficientStockError(names)
	}

	s.metrics.SalesCompleted.WithLabelValues(sale.PaymentMethod.String()).Inc()
	s.metrics.SaleTotalCents.Observe(float64(sale.Total))

	s.logger.Info("sale completed",
		zap.String("receipt_no", sale.ReceiptNo),
		zap.Int("items", sale.TotalItems),
		zap.Int64("total_cents", sale.Total))

	s.syncToSheet(sale)

	return s.saleRepo.GetWithItems(ctx, sale.ID)
}

// syncToSheet appends the sale to the configured spreadsheet. Best effort:
// a sync failure never fails the checkout.
func (s *SaleService) syncToSheet(sale *entity.Sale) {
	if s.sheetSync == nil || !s.sheetSync.Enabled() {
		return
	}

	row := sheets.SaleRow{
		ReceiptNo:     sale.ReceiptNo,
		Date:          sale.SaleDate.Format("2006-01-02 15:04:05"),
		PaymentMethod: sale.PaymentMethod.String(),
		TotalItems:    sale.TotalItems,
		Total:         sale.GetTotalDecimal(),
		Status:        sale.Status.String(),
	}
	if sale.Client != nil {
		row.Client = sale.Client.Name
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := s.sheetSync.AppendSale(ctx, row); err != nil {
			s.logger.Warn("sheet sync failed",
				zap.String("receipt_no", row.ReceiptNo),
				zap.Error(err))
		}
	}()
}

// GetSale retrieves a sale with its items
func (s *SaleService) GetSale(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return sale, nil
}

// ListSales lists ledger entries with filtering
func (s *SaleService) ListSales(ctx context.Context, params *repository.SaleFilterParams) (*pagination.PaginatedResult[entity.Sale], error) {
	sales, total, err := s.saleRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(sales, params.Pagination, total), nil
}

// CancelSale cancels a completed sale, restoring stock and rolling back the
// client's accumulated spending. The sale row itself stays in the ledger.
// The reversal runs inside a single repository transaction, so a failed or
// retried cancellation can never restore stock twice.
func (s *SaleService) CancelSale(ctx context.Context, id uuid.UUID) error {
	userID, _ := infraRepo.GetUserID(ctx)

	sale, err := s.saleRepo.GetWithItems(ctx, id)
	if err != nil {
		return err
	}
	if sale == nil {
		return apperror.NewNotFoundError("Sale")
	}
	if sale.Status == enum.SaleStatusCancelled {
		return apperror.NewBadRequestError("Sale is already cancelled")
	}

	cancelled, err := s.saleRepo.CancelAndRestore(ctx, sale, userID)
	if err != nil {
		return err
	}
	if !cancelled {
		return apperror.NewBadRequestError("Sale is already cancelled")
	}

	s.metrics.SalesCancelled.Inc()
	s.logger.Info("sale cancelled", zap.String("receipt_no", sale.ReceiptNo))
	return nil
}
