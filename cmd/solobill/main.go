package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/solobill/solobill/internal/clock"
	"github.com/solobill/solobill/internal/config"
	"github.com/solobill/solobill/internal/migration"
	"github.com/solobill/solobill/internal/observability"
	"github.com/solobill/solobill/internal/server"
	"github.com/solobill/solobill/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migration.Module,

		// Domain modules are wired by the server module.
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
