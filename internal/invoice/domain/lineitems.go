package domain

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/solobill/solobill/internal/money"
)

// LineItemInput is one submitted billable row. Amount is optional: the
// server derives it from quantity and rate, and rejects a submitted
// amount that disagrees with the derivation beyond rounding tolerance.
type LineItemInput struct {
	Description string           `json:"description"`
	Quantity    decimal.Decimal  `json:"quantity"`
	Rate        decimal.Decimal  `json:"rate"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
}

// DeriveAmount returns round(quantity * rate, 2), the authoritative
// amount for a line item.
func DeriveAmount(quantity, rate decimal.Decimal) decimal.Decimal {
	return money.Round(quantity.Mul(rate))
}

// ValidateLineItems checks a submitted collection: it must be
// non-empty, every description non-blank, every quantity positive,
// every rate non-negative, and any submitted amount must agree with
// the derived one. Input order is display order and is preserved.
func ValidateLineItems(items []LineItemInput) error {
	if len(items) == 0 {
		return ErrEmptyLineItems
	}
	for _, item := range items {
		if strings.TrimSpace(item.Description) == "" {
			return ErrInvalidDescription
		}
		if !item.Quantity.IsPositive() {
			return ErrInvalidQuantity
		}
		if item.Rate.IsNegative() {
			return ErrInvalidRate
		}
		if item.Amount != nil && !money.WithinCent(*item.Amount, DeriveAmount(item.Quantity, item.Rate)) {
			return ErrAmountMismatch
		}
	}
	return nil
}
