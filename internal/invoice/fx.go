package invoice

import (
	"context"

	"github.com/solobill/solobill/internal/clock"
	"github.com/solobill/solobill/internal/invoice/number"
	"github.com/solobill/solobill/internal/invoice/repository"
	"github.com/solobill/solobill/internal/invoice/service"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("invoice.service",
	fx.Provide(provideGenerator),
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
	fx.Invoke(seedGenerator),
)

func provideGenerator(db *gorm.DB, clk clock.Clock) *number.Generator {
	return number.NewGenerator(db, clk)
}

func seedGenerator(lc fx.Lifecycle, gen *number.Generator) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return gen.Seed(ctx)
		},
	})
}
