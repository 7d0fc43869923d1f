// Package csvexport writes an invoice and its line items as CSV.
package csvexport

import (
	"context"
	"encoding/csv"
	"io"
)

type InvoiceData struct {
	InvoiceNumber string
	Status        string
	IssueDate     string
	DueDate       string
	PaymentTerms  string

	ClientName    string
	ClientCompany string
	ClientEmail   string

	Items []InvoiceItem

	Subtotal string
	TaxRate  string
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

type Provider interface {
	GenerateInvoice(ctx context.Context, w io.Writer, data InvoiceData) error
}

type CSVProvider struct{}

func New() Provider {
	return &CSVProvider{}
}

// GenerateInvoice emits a header block describing the invoice followed by
// one row per line item and the totals.
func (p *CSVProvider) GenerateInvoice(ctx context.Context, w io.Writer, data InvoiceData) error {
	cw := csv.NewWriter(w)

	header := [][]string{
		{"invoice_number", data.InvoiceNumber},
		{"status", data.Status},
		{"issue_date", data.IssueDate},
		{"due_date", data.DueDate},
		{"payment_terms", data.PaymentTerms},
		{"client_name", data.ClientName},
		{"client_company", data.ClientCompany},
		{"client_email", data.ClientEmail},
		{},
	}
	for _, rec := range header {
		if err := cw.Write(rec); err != nil {
			return err
		}
	}

	if err := cw.Write([]string{"description", "quantity", "rate", "amount"}); err != nil {
		return err
	}
	for _, item := range data.Items {
		if err := cw.Write([]string{item.Description, item.Quantity, item.Rate, item.Amount}); err != nil {
			return err
		}
	}

	footer := [][]string{
		{},
		{"subtotal", data.Subtotal},
		{"tax_rate", data.TaxRate},
		{"tax", data.Tax},
		{"total", data.Total},
	}
	if data.Notes != "" {
		footer = append(footer, []string{"notes", data.Notes})
	}
	for _, rec := range footer {
		if err := cw.Write(rec); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
