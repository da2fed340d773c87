// Carga el catálogo compartido de marcas y modelos. Es idempotente: se puede
// correr las veces que haga falta sin duplicar filas.
package main

import (
	"context"

	"github.com/tu-usuario/autosqp-api/internal/application/usecase"
	"github.com/tu-usuario/autosqp-api/internal/infrastructure/postgres"
	"github.com/tu-usuario/autosqp-api/pkg/config"
	"github.com/tu-usuario/autosqp-api/pkg/logger"
)

// catalogSeed marcas y modelos comunes del mercado colombiano.
var catalogSeed = map[string][]string{
	"Chevrolet":  {"Spark", "Onix", "Tracker", "Captiva", "Colorado"},
	"Renault":    {"Kwid", "Logan", "Sandero", "Duster", "Koleos"},
	"Mazda":      {"Mazda 2", "Mazda 3", "CX-30", "CX-5"},
	"Toyota":     {"Corolla", "Corolla Cross", "Hilux", "Fortuner", "Prado"},
	"Kia":        {"Picanto", "Rio", "Sportage", "Sorento"},
	"Hyundai":    {"i10", "Accent", "Tucson", "Santa Fe"},
	"Nissan":     {"Versa", "Kicks", "Frontier", "X-Trail"},
	"Ford":       {"Fiesta", "Escape", "Ranger", "Explorer"},
	"Volkswagen": {"Gol", "Polo", "T-Cross", "Tiguan", "Amarok"},
	"Suzuki":     {"Swift", "Vitara", "Jimny", "S-Cross"},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	pool, err := postgres.NewPool(context.Background(), cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	catalogUC := usecase.NewCatalogUseCase(postgres.NewCatalogRepository(pool))
	created, err := catalogUC.Seed(catalogSeed)
	if err != nil {
		log.Fatal().Err(err).Int("created", created).Msg("Error sembrando el catálogo")
	}
	log.Info().Int("created", created).Msg("Catálogo de marcas y modelos sembrado")
}
