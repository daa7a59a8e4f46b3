package service

import (
	"context"

	"github.com/gestorplus/gestor-api/internal/domain/entity"
	"github.com/gestorplus/gestor-api/internal/domain/repository"
	"github.com/gestorplus/gestor-api/pkg/apperror"
	"github.com/gestorplus/gestor-api/pkg/printer"
	"github.com/gestorplus/gestor-api/pkg/receipt"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReceiptService composes printable receipts from sales and company settings
type ReceiptService struct {
	saleRepo    repository.SaleRepository
	settingsSvc *SettingsService
	printer     printer.Printer
	logger      *zap.Logger
}

// NewReceiptService creates a new receipt service
func NewReceiptService(
	saleRepo repository.SaleRepository,
	settingsSvc *SettingsService,
	prn printer.Printer,
	logger *zap.Logger,
) *ReceiptService {
	return &ReceiptService{
		saleRepo:    saleRepo,
		settingsSvc: settingsSvc,
		printer:     prn,
		logger:      logger,
	}
}

// BuildReceipt assembles the receipt value object for a sale. The receipt is
// never stored; it is recomposed on every render so settings changes apply to
// reprints.
func (s *ReceiptService) BuildReceipt(ctx context.Context, saleID uuid.UUID) (*entity.Receipt, *entity.CompanySettings, error) {
	sale, err := s.saleRepo.GetWithItems(ctx, saleID)
	if err != nil {
		return nil, nil, err
	}
	if sale == nil {
		return nil, nil, apperror.NewNotFoundError("Sale")
	}

	settings, err := s.settingsSvc.GetSettings(ctx)
	if err != nil {
		return nil, nil, err
	}

	r := &entity.Receipt{
		Header: entity.ReceiptHeader{
			StoreName: settings.TradeName,
		},
		ReceiptNo:      sale.ReceiptNo,
		Date:           sale.SaleDate.Format("02/01/2006 15:04"),
		Seller:         sale.User.FullName(),
		PaymentMethod:  sale.PaymentMethod.Label(),
		SubTotal:       sale.GetSubTotalDecimal(),
		Discount:       float64(sale.DiscountAmount) / 100,
		CouponDiscount: float64(sale.CouponDiscount) / 100,
		Total:          sale.GetTotalDecimal(),
	}
	if settings.Address != nil {
		r.Header.Address = *settings.Address
	}
	if settings.Phone != nil {
		r.Header.Phone = *settings.Phone
	}
	if settings.TaxID != nil {
		r.Header.TaxID = *settings.TaxID
	}
	if settings.ReceiptFooter != nil {
		r.Footer = *settings.ReceiptFooter
	}
	if sale.CouponCode != nil {
		r.CouponCode = *sale.CouponCode
	}
	if sale.Installments != nil {
		r.Installments = *sale.Installments
	}
	if sale.Client != nil {
		r.Client = sale.Client.Name
		if sale.Client.Document != nil {
			r.ClientDocument = *sale.Client.Document
		}
	}

	r.Items = make([]entity.ReceiptItem, 0, len(sale.Items))
	for _, item := range sale.Items {
		r.Items = append(r.Items, entity.ReceiptItem{
			Name:      item.ProductName,
			Quantity:  item.Quantity,
			UnitPrice: float64(item.UnitPrice) / 100,
			Total:     float64(item.Total) / 100,
		})
	}

	return r, settings, nil
}

// RenderThermal renders the sale's receipt as raw ESC/POS bytes at the
// tenant's configured paper width.
func (s *ReceiptService) RenderThermal(ctx context.Context, saleID uuid.UUID) ([]byte, error) {
	r, settings, err := s.BuildReceipt(ctx, saleID)
	if err != nil {
		return nil, err
	}
	return receipt.RenderThermal(r, settings.PaperWidthMM), nil
}

// RenderA4 renders the sale's receipt as an A4 HTML document.
func (s *ReceiptService) RenderA4(ctx context.Context, saleID uuid.UUID) ([]byte, error) {
	r, _, err := s.BuildReceipt(ctx, saleID)
	if err != nil {
		return nil, err
	}
	return receipt.RenderA4(r)
}

// PrintThermal sends the sale's receipt to the configured printer.
func (s *ReceiptService) PrintThermal(ctx context.Context, saleID uuid.UUID) error {
	data, err := s.RenderThermal(ctx, saleID)
	if err != nil {
		return err
	}
	if err := s.printer.Print(data); err != nil {
		s.logger.Warn("receipt print failed", zap.Error(err))
		return apperror.NewAppError(503, "Printer unavailable")
	}
	return nil
}

// PrinterStatus reports whether the configured printer is reachable.
func (s *ReceiptService) PrinterStatus() bool {
	return s.printer.IsConnected()
}
