package client

import (
	"github.com/solobill/solobill/internal/client/repository"
	"github.com/solobill/solobill/internal/client/service"
	"go.uber.org/fx"
)

var Module = fx.Module("client.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
