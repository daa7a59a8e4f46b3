package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CompanySettings holds the per-tenant identity printed on receipts and used
// by report headers.
type CompanySettings struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	TenantID      uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"tenant_id"`
	TradeName     string         `gorm:"size:255" json:"trade_name"`
	Address       *string        `gorm:"type:text" json:"address,omitempty"`
	Phone         *string        `gorm:"size:50" json:"phone,omitempty"`
	TaxID         *string        `gorm:"size:20" json:"tax_id,omitempty"` // CNPJ
	ReceiptFooter *string        `gorm:"type:text" json:"receipt_footer,omitempty"`
	PaperWidthMM  int            `gorm:"default:80" json:"paper_width_mm"` // 58 or 80
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Tenant Tenant `gorm:"foreignKey:TenantID" json:"-"`
}

// BeforeCreate generates a UUID before creating new settings
func (s *CompanySettings) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the CompanySettings model
func (CompanySettings) TableName() string {
	return "company_settings"
}
