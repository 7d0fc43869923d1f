// Package domain contains persistence models and the derived-total
// rules for invoicing.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Invoice is the central billing entity. Totals are derived once at
// write time and stored; reads never recompute them.
type Invoice struct {
	ID            snowflake.ID      `gorm:"primaryKey" json:"id"`
	UserID        snowflake.ID      `gorm:"not null;index" json:"user_id"`
	ClientID      snowflake.ID      `gorm:"not null;index" json:"client_id"`
	InvoiceNumber string            `gorm:"not null;uniqueIndex:ux_invoices_number" json:"invoice_number"`
	Status        InvoiceStatus     `gorm:"type:text;not null;default:'pending'" json:"status"`
	IssueDate     time.Time         `gorm:"not null" json:"issue_date"`
	DueDate       time.Time         `gorm:"not null" json:"due_date"`
	PaymentTerms  PaymentTerms      `gorm:"type:text;not null" json:"payment_terms"`
	Subtotal      decimal.Decimal   `gorm:"type:numeric(12,2);not null" json:"subtotal"`
	TaxRate       decimal.Decimal   `gorm:"type:numeric(5,2);not null" json:"tax_rate"`
	TaxAmount     decimal.Decimal   `gorm:"type:numeric(12,2);not null" json:"tax_amount"`
	Total         decimal.Decimal   `gorm:"type:numeric(12,2);not null" json:"total"`
	Notes         string            `gorm:"type:text" json:"notes,omitempty"`
	Metadata      datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'" json:"metadata,omitempty"`
	CreatedAt     time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Invoice) TableName() string { return "invoices" }

// LineItem is one billable row belonging to exactly one invoice.
// Position is the display order; the full set is replaced on every
// invoice update.
type LineItem struct {
	ID          snowflake.ID    `gorm:"primaryKey" json:"id"`
	InvoiceID   snowflake.ID    `gorm:"not null;index" json:"invoice_id"`
	Position    int             `gorm:"not null" json:"position"`
	Description string          `gorm:"type:text;not null" json:"description"`
	Quantity    decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"quantity"`
	Rate        decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"rate"`
	Amount      decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	CreatedAt   time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (LineItem) TableName() string { return "invoice_line_items" }

// PaymentTerms is the agreed interval between issue date and due date.
type PaymentTerms string

const (
	TermsDueOnReceipt PaymentTerms = "due_on_receipt"
	TermsNet15        PaymentTerms = "net_15"
	TermsNet30        PaymentTerms = "net_30"
	TermsNet60        PaymentTerms = "net_60"
)

// ParsePaymentTerms validates a payment-terms token.
func ParsePaymentTerms(raw string) (PaymentTerms, error) {
	switch PaymentTerms(raw) {
	case TermsDueOnReceipt, TermsNet15, TermsNet30, TermsNet60:
		return PaymentTerms(raw), nil
	default:
		return "", ErrInvalidPaymentTerms
	}
}
