package auth

import (
	"github.com/solobill/solobill/internal/auth/session"
	"go.uber.org/fx"
)

var Module = fx.Module("auth.session",
	fx.Provide(session.NewManager),
)
