package domain

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	clientdomain "github.com/solobill/solobill/internal/client/domain"
)

// InvoiceForm is the create/update request body. InvoiceNumber is
// honored on creation only; updates never renumber.
type InvoiceForm struct {
	ClientID      string          `json:"client_id"`
	InvoiceNumber string          `json:"invoice_number"`
	IssueDate     time.Time       `json:"issue_date"`
	DueDate       time.Time       `json:"due_date"`
	PaymentTerms  string          `json:"payment_terms"`
	TaxRate       decimal.Decimal `json:"tax_rate"`
	Notes         string          `json:"notes"`
	LineItems     []LineItemInput `json:"line_items"`
}

// InvoiceDetail is the invoice together with its client and line items.
type InvoiceDetail struct {
	Invoice   Invoice             `json:"invoice"`
	Client    clientdomain.Client `json:"client"`
	LineItems []LineItem          `json:"line_items"`
}

// InvoiceWithClient is one row of the invoice list, joined with the
// client's display fields.
type InvoiceWithClient struct {
	Invoice
	ClientName    string `gorm:"column:client_name" json:"client_name"`
	ClientCompany string `gorm:"column:client_company" json:"client_company,omitempty"`
}

type Service interface {
	Create(ctx context.Context, form InvoiceForm) (InvoiceDetail, error)
	Update(ctx context.Context, id string, form InvoiceForm) (InvoiceDetail, error)
	UpdateStatus(ctx context.Context, id string, status string) (Invoice, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (InvoiceDetail, error)
	List(ctx context.Context) ([]InvoiceWithClient, error)
	NextNumber(ctx context.Context) (string, error)
}

var (
	ErrInvalidUser         = errors.New("invalid_user")
	ErrInvalidID           = errors.New("invalid_id")
	ErrInvalidClient       = errors.New("invalid_client")
	ErrInvalidStatus       = errors.New("invalid_status")
	ErrInvalidPaymentTerms = errors.New("invalid_payment_terms")
	ErrInvalidTaxRate      = errors.New("invalid_tax_rate")
	ErrEmptyLineItems      = errors.New("invalid_line_items")
	ErrInvalidDescription  = errors.New("invalid_description")
	ErrInvalidQuantity     = errors.New("invalid_quantity")
	ErrInvalidRate         = errors.New("invalid_rate")
	ErrAmountMismatch      = errors.New("invalid_amount")
	ErrNotFound            = errors.New("not_found")
	ErrForbidden           = errors.New("forbidden")
	ErrNumberConflict      = errors.New("number_conflict")
)
