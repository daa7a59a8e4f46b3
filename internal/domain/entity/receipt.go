package entity

// ReceiptHeader holds the business identity printed at the top of a receipt.
type ReceiptHeader struct {
	StoreName string `json:"store_name"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
	TaxID     string `json:"tax_id,omitempty"`
}

// ReceiptItem represents a single line item on a receipt.
type ReceiptItem struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Total     float64 `json:"total"`
}

// Receipt is a value object representing a printable receipt. It is NOT a
// database entity; it is composed from a sale plus company settings at print
// time.
type Receipt struct {
	Header         ReceiptHeader `json:"header"`
	ReceiptNo      string        `json:"receipt_no"`
	Date           string        `json:"date"`
	Seller         string        `json:"seller,omitempty"`
	Client         string        `json:"client,omitempty"`
	ClientDocument string        `json:"client_document,omitempty"`
	PaymentMethod  string        `json:"payment_method,omitempty"`
	Installments   int           `json:"installments,omitempty"`
	Items          []ReceiptItem `json:"items"`
	SubTotal       float64       `json:"sub_total"`
	Discount       float64       `json:"discount"`
	CouponCode     string        `json:"coupon_code,omitempty"`
	CouponDiscount float64       `json:"coupon_discount"`
	Total          float64       `json:"total"`
	Footer         string        `json:"footer,omitempty"`
}
