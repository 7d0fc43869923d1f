// Package domain defines the payment-processor seam. The invoicing
// core hands over an amount and an invoice reference and receives an
// opaque client secret; webhook verification happens elsewhere.
package domain

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// IntentRequest describes the payment to collect.
type IntentRequest struct {
	InvoiceID     string
	InvoiceNumber string
	Amount        decimal.Decimal
	Currency      string
}

// Intent is the processor's handle for a created payment.
type Intent struct {
	ClientSecret string `json:"client_secret"`
	ProviderRef  string `json:"provider_ref,omitempty"`
}

type Provider interface {
	Name() string
	CreateIntent(ctx context.Context, req IntentRequest) (*Intent, error)
}

var (
	ErrInvalidConfig       = errors.New("invalid_provider_config")
	ErrInvalidAmount       = errors.New("invalid_amount")
	ErrProviderUnavailable = errors.New("provider_unavailable")
)
