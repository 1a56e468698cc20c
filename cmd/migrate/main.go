// Comando migrate: aplica o revierte las migraciones SQL embebidas.
//
//	go run ./cmd/migrate up
//	go run ./cmd/migrate down
//	go run ./cmd/migrate version
package main

import (
	"fmt"
	"os"

	"github.com/jhoicas/Backoffice-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Backoffice-api/pkg/config"
	"github.com/jhoicas/Backoffice-api/pkg/logger"
)

func main() {
	cmd := "up"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Component("migrate")

	m, err := postgres.NewMigrator(cfg.DB.ConnectionString())
	if err != nil {
		log.Fatal().Err(err).Msg("abrir migrador")
	}
	defer m.Close()

	switch cmd {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	case "version":
		v, dirty, verr := m.Version()
		if verr == nil {
			log.Info().Uint("version", v).Bool("dirty", dirty).Msg("versión actual")
		}
		err = verr
	default:
		fmt.Fprintf(os.Stderr, "comando desconocido %q (up | down | version)\n", cmd)
		os.Exit(2)
	}
	if err != nil {
		log.Error().Err(err).Str("cmd", cmd).Msg("migración fallida")
		os.Exit(1)
	}
}
