package main

import (
	"github.com/fortuna-labs/fortuna/internal/config"
	"github.com/fortuna-labs/fortuna/internal/migration"
	"github.com/fortuna-labs/fortuna/internal/observability"
	"github.com/fortuna-labs/fortuna/internal/server"
	"github.com/fortuna-labs/fortuna/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		db.Module,
		migration.Module,
		server.Module,
	)
	app.Run()
}
