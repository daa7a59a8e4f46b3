package request

// SaleFilterRequest represents sale ledger filter parameters
type SaleFilterRequest struct {
	Search        string `form:"search"`
	Status        string `form:"status" binding:"omitempty,oneof=completed cancelled"`
	ClientID      string `form:"client_id"`
	PaymentMethod string `form:"payment_method"`
	StartDate     string `form:"start_date"` // YYYY-MM-DD
	EndDate       string `form:"end_date"`   // YYYY-MM-DD
	SortBy        string `form:"sort_by"`
	SortOrder     string `form:"sort_order"`
	Page          int    `form:"page"`
	PerPage       int    `form:"per_page"`
}
