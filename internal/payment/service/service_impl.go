package service

import (
	"context"
	"strings"

	invoicedomain "github.com/solobill/solobill/internal/invoice/domain"
	paymentdomain "github.com/solobill/solobill/internal/payment/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log        *zap.Logger
	Provider   paymentdomain.Provider `optional:"true"`
	InvoiceSvc invoicedomain.Service
	Currency   string `name:"payment_currency"`
}

// Service turns an owned invoice into a provider payment intent.
type Service struct {
	log        *zap.Logger
	provider   paymentdomain.Provider
	invoiceSvc invoicedomain.Service
	currency   string
}

func New(p Params) *Service {
	currency := strings.ToLower(strings.TrimSpace(p.Currency))
	if currency == "" {
		currency = "usd"
	}
	return &Service{
		log:        p.Log.Named("payment.service"),
		provider:   p.Provider,
		invoiceSvc: p.InvoiceSvc,
		currency:   currency,
	}
}

// CreateIntent loads the invoice (ownership enforced by the invoice
// service) and asks the processor for a client secret.
func (s *Service) CreateIntent(ctx context.Context, invoiceID string) (*paymentdomain.Intent, error) {
	if s.provider == nil {
		return nil, paymentdomain.ErrProviderUnavailable
	}

	detail, err := s.invoiceSvc.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	intent, err := s.provider.CreateIntent(ctx, paymentdomain.IntentRequest{
		InvoiceID:     detail.Invoice.ID.String(),
		InvoiceNumber: detail.Invoice.InvoiceNumber,
		Amount:        detail.Invoice.Total,
		Currency:      s.currency,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("payment intent created",
		zap.String("invoice_id", detail.Invoice.ID.String()),
		zap.String("provider", s.provider.Name()),
		zap.String("provider_ref", intent.ProviderRef),
	)
	return intent, nil
}
