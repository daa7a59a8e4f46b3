package service

import (
	"context"
	"fmt"
	"time"

	"github.com/gestorplus/gestor-api/internal/domain/repository"
	"github.com/gestorplus/gestor-api/pkg/pagination"
	"github.com/xuri/excelize/v2"
)

// exportPageSize is the batch size used when walking a full table for export.
const exportPageSize = 500

// ReportService builds xlsx exports of the sale ledger and inventory
type ReportService struct {
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
}

// NewReportService creates a new report service
func NewReportService(saleRepo repository.SaleRepository, productRepo repository.ProductRepository) *ReportService {
	return &ReportService{saleRepo: saleRepo, productRepo: productRepo}
}

// ExportSales writes the tenant's sale ledger for the period to an xlsx file
// and returns its bytes plus a suggested filename.
func (s *ReportService) ExportSales(ctx context.Context, startDate, endDate *time.Time) ([]byte, string, error) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	headers := []string{"Cupom", "Data", "Cliente", "Vendedor", "Itens", "Subtotal", "Desconto", "Cupom Desc.", "Total", "Pagamento", "Parcelas", "Status"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	row := 2
	page := 1
	for {
		params := &repository.SaleFilterParams{
			Pagination: &pagination.Params{Page: page, PerPage: exportPageSize},
			StartDate:  startDate,
			EndDate:    endDate,
			SortBy:     "sale_date",
			SortOrder:  "asc",
		}
		sales, total, err := s.saleRepo.List(ctx, params)
		if err != nil {
			return nil, "", err
		}

		for _, sale := range sales {
			clientName := ""
			if sale.Client != nil {
				clientName = sale.Client.Name
			}
			installments := 1
			if sale.Installments != nil {
				installments = *sale.Installments
			}
			couponDiscount := float64(sale.CouponDiscount) / 100
			values := []interface{}{
				sale.ReceiptNo,
				sale.SaleDate.Format("02/01/2006 15:04"),
				clientName,
				sale.User.FullName(),
				sale.TotalItems,
				sale.GetSubTotalDecimal(),
				float64(sale.DiscountAmount) / 100,
				couponDiscount,
				sale.GetTotalDecimal(),
				sale.PaymentMethod.Label(),
				installments,
				sale.Status.String(),
			}
			for i, v := range values {
				cell, _ := excelize.CoordinatesToCellName(i+1, row)
				f.SetCellValue(sheet, cell, v)
			}
			row++
		}

		if int64(page*exportPageSize) >= total || len(sales) == 0 {
			break
		}
		page++
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("vendas-%s.xlsx", time.Now().Format("20060102"))
	return buf.Bytes(), filename, nil
}

// ExportInventory writes the tenant's current catalog and stock position to
// an xlsx file.
func (s *ReportService) ExportInventory(ctx context.Context) ([]byte, string, error) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	headers := []string{"Produto", "Codigo de Barras", "Categoria", "Estoque", "Estoque Minimo", "Preco de Custo", "Preco de Venda", "Validade", "Situacao"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	row := 2
	page := 1
	for {
		params := &repository.ProductFilterParams{
			Pagination: &pagination.Params{Page: page, PerPage: exportPageSize},
			SortBy:     "name",
			SortOrder:  "asc",
		}
		products, total, err := s.productRepo.List(ctx, params)
		if err != nil {
			return nil, "", err
		}

		for _, p := range products {
			barcode := ""
			if p.Barcode != nil {
				barcode = *p.Barcode
			}
			category := ""
			if p.Category != nil {
				category = p.Category.Name
			}
			expiresAt := ""
			if p.ExpiresAt != nil {
				expiresAt = p.ExpiresAt.Format("02/01/2006")
			}
			situation := "OK"
			switch {
			case p.IsOutOfStock():
				situation = "Sem estoque"
			case p.IsLowStock():
				situation = "Estoque baixo"
			}
			values := []interface{}{
				p.Name,
				barcode,
				category,
				p.Stock,
				p.MinStock,
				p.GetCostPriceDecimal(),
				p.GetSalePriceDecimal(),
				expiresAt,
				situation,
			}
			for i, v := range values {
				cell, _ := excelize.CoordinatesToCellName(i+1, row)
				f.SetCellValue(sheet, cell, v)
			}
			row++
		}

		if int64(page*exportPageSize) >= total || len(products) == 0 {
			break
		}
		page++
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("estoque-%s.xlsx", time.Now().Format("20060102"))
	return buf.Bytes(), filename, nil
}
