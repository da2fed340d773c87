package main

import (
	"flag"
	"os"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/tu-usuario/autosqp-api/pkg/config"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	var (
		command = flag.String("command", "up", "Comando de migración (up, down, force)")
		version = flag.Int("version", 1, "Versión para force")
		source  = flag.String("source", "file://migrations", "Origen de las migraciones")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Error cargando configuración")
	}

	pgxCfg, err := pgx.ParseConfig(cfg.DB.ConnectionString())
	if err != nil {
		log.Fatal().Err(err).Msg("Error parseando el DSN")
	}
	db := stdlib.OpenDB(*pgxCfg)
	defer db.Close()

	driver, err := migratepg.WithInstance(db, &migratepg.Config{})
	if err != nil {
		log.Fatal().Err(err).Msg("Error creando el driver de migraciones")
	}

	m, err := migrate.NewWithDatabaseInstance(*source, "postgres", driver)
	if err != nil {
		log.Fatal().Err(err).Msg("Error creando el migrador")
	}

	switch *command {
	case "up":
		log.Info().Msg("Aplicando migraciones...")
		if err := m.Up(); err != nil && err != migrate.ErrNoChange {
			log.Fatal().Err(err).Msg("Error aplicando migraciones")
		}
		log.Info().Msg("Migraciones aplicadas")
	case "down":
		log.Info().Msg("Revirtiendo migraciones...")
		if err := m.Down(); err != nil && err != migrate.ErrNoChange {
			log.Fatal().Err(err).Msg("Error revirtiendo migraciones")
		}
		log.Info().Msg("Migraciones revertidas")
	case "force":
		log.Info().Int("version", *version).Msg("Forzando versión de migración...")
		if err := m.Force(*version); err != nil {
			log.Fatal().Err(err).Msg("Error forzando la versión")
		}
		log.Info().Msg("Versión forzada")
	default:
		log.Fatal().Msgf("Comando desconocido: %s", *command)
	}
}
