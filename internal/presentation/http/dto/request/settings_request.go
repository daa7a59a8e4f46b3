package request

// UpdateSettingsRequest represents a company settings update request
type UpdateSettingsRequest struct {
	TradeName     *string `json:"trade_name" binding:"omitempty,min=2,max=255"`
	Address       *string `json:"address"`
	Phone         *string `json:"phone" binding:"omitempty,max=50"`
	TaxID         *string `json:"tax_id" binding:"omitempty,max=20"`
	ReceiptFooter *string `json:"receipt_footer"`
	PaperWidthMM  *int    `json:"paper_width_mm" binding:"omitempty,oneof=58 80"`
}

// UpdateTenantRequest represents a business profile update request
type UpdateTenantRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=2,max=255"`
	Category *string `json:"category"`
	Document *string `json:"document" binding:"omitempty,max=20"`
}
