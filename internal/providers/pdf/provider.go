package pdf

import (
	"context"
	"io"
)

// Provider renders a finished invoice document.
type Provider interface {
	GenerateInvoice(ctx context.Context, data InvoiceData) (io.Reader, error)
}

type InvoiceData struct {
	InvoiceNumber string
	Status        string
	IssueDate     string
	DueDate       string
	PaymentTerms  string

	FromName string

	BillToName    string
	BillToCompany string
	BillToEmail   string
	BillToAddress string

	Items []InvoiceItem

	Subtotal string
	TaxLabel string
	Tax      string
	Total    string

	Notes string
}

type InvoiceItem struct {
	Description string
	Quantity    string
	Rate        string
	Amount      string
}
