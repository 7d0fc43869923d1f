package domain

import (
	"github.com/shopspring/decimal"
	"github.com/solobill/solobill/internal/money"
)

// Totals are the derived monetary fields of an invoice.
type Totals struct {
	Subtotal  decimal.Decimal `json:"subtotal"`
	TaxAmount decimal.Decimal `json:"tax_amount"`
	Total     decimal.Decimal `json:"total"`
}

// ComputeTotals derives subtotal, tax amount and total from a line-item
// collection and a tax rate percentage.
//
// This function is PURE:
// - No side effects
// - No DB access
// - Fully deterministic: identical inputs yield identical outputs
//
// An empty collection is rejected upstream by ValidateLineItems, not
// here; computing over zero items yields all-zero totals. The whole
// derivation stays in the decimal domain so repeated calls cannot
// accumulate floating drift.
func ComputeTotals(items []LineItemInput, taxRate decimal.Decimal) (Totals, error) {
	if err := money.ValidateTaxRate(taxRate); err != nil {
		return Totals{}, ErrInvalidTaxRate
	}

	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(DeriveAmount(item.Quantity, item.Rate))
	}
	subtotal = money.Round(subtotal)

	taxAmount := money.Round(subtotal.Mul(taxRate).Div(money.Hundred))

	// Operands are already rounded; the sum needs no further rounding.
	return Totals{
		Subtotal:  subtotal,
		TaxAmount: taxAmount,
		Total:     subtotal.Add(taxAmount),
	}, nil
}
