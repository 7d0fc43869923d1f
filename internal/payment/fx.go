package payment

import (
	"github.com/solobill/solobill/internal/config"
	paymentdomain "github.com/solobill/solobill/internal/payment/domain"
	"github.com/solobill/solobill/internal/payment/service"
	"github.com/solobill/solobill/internal/payment/stripe"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("payment.service",
	fx.Provide(provideProvider),
	fx.Provide(fx.Annotate(provideCurrency, fx.ResultTags(`name:"payment_currency"`))),
	fx.Provide(service.New),
)

func provideCurrency(cfg config.Config) string {
	return cfg.PaymentCurrency
}

// provideProvider returns nil when no processor is configured; the
// payment service reports the processor as unavailable in that case.
func provideProvider(cfg config.Config, log *zap.Logger) paymentdomain.Provider {
	adapter, err := stripe.NewFactory().NewAdapter(cfg.StripeSecretKey)
	if err != nil {
		log.Named("payment").Warn("stripe not configured; payment intents disabled")
		return nil
	}
	return adapter
}
