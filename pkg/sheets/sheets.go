package sheets

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Config holds the settings for the Google Sheets sale sync.
type Config struct {
	Enabled         bool
	SpreadsheetID   string
	SheetName       string
	CredentialsJSON string
}

// SaleRow is one exported sale line appended to the spreadsheet.
type SaleRow struct {
	ReceiptNo     string
	Date          string
	Client        string
	PaymentMethod string
	TotalItems    int
	Total         float64
	Status        string
}

// Syncer appends completed sales to a Google Sheets spreadsheet.
type Syncer struct {
	cfg Config
	svc *sheets.Service
}

// NewSyncer creates a sheet syncer. Returns a disabled no-op syncer when the
// feature is off; credential resolution falls back to ADC when no explicit
// JSON is configured.
func NewSyncer(ctx context.Context, cfg Config) (*Syncer, error) {
	if !cfg.Enabled {
		return &Syncer{cfg: cfg}, nil
	}
	if cfg.SpreadsheetID == "" {
		return nil, fmt.Errorf("sheets: spreadsheet ID is required when sync is enabled")
	}
	if cfg.SheetName == "" {
		cfg.SheetName = "Vendas"
	}

	var opts []option.ClientOption
	if strings.TrimSpace(cfg.CredentialsJSON) != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)))
	}

	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("sheets: failed to create service: %w", err)
	}
	return &Syncer{cfg: cfg, svc: svc}, nil
}

// Enabled reports whether the syncer will actually write to a spreadsheet.
func (s *Syncer) Enabled() bool {
	return s.cfg.Enabled && s.svc != nil
}

// AppendSale appends one sale row to the configured sheet.
func (s *Syncer) AppendSale(ctx context.Context, row SaleRow) error {
	if !s.Enabled() {
		return nil
	}

	values := &sheets.ValueRange{
		Values: [][]interface{}{{
			row.ReceiptNo,
			row.Date,
			row.Client,
			row.PaymentMethod,
			row.TotalItems,
			row.Total,
			row.Status,
		}},
	}

	_, err := s.svc.Spreadsheets.Values.
		Append(s.cfg.SpreadsheetID, s.cfg.SheetName+"!A:G", values).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("sheets: failed to append sale %s: %w", row.ReceiptNo, err)
	}
	return nil
}
