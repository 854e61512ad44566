// Package app wires configuration, storage and the calculator into a CalculationService.
package app

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/jengzang/pollinator-abundance/internal/cache"
	"github.com/jengzang/pollinator-abundance/internal/config"
	"github.com/jengzang/pollinator-abundance/internal/database"
	"github.com/jengzang/pollinator-abundance/internal/fixture"
	"github.com/jengzang/pollinator-abundance/internal/models"
	"github.com/jengzang/pollinator-abundance/internal/pollination"
	"github.com/jengzang/pollinator-abundance/internal/repository"
	"github.com/jengzang/pollinator-abundance/internal/service"
)

// App holds the wired calculation service and the resources behind it
type App struct {
	Service *service.CalculationService
	DB      *database.DB // nil when backed by the fixture dataset
	Cache   *cache.GeometryCache
}

// Open connects to the configured database, applies pending migrations and wires the service
func Open(cfg *config.Config, logger *zap.Logger) (*App, error) {
	db, err := database.Open(database.Config{Path: cfg.DBPath}, logger)
	if err != nil {
		return nil, err
	}
	if err := db.MigrateUp(database.Migrations(), logger); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	a := build(cfg, repository.NewZoneRepository(db), repository.NewSurfaceRepository(db), logger)
	a.DB = db
	return a, nil
}

// OpenFixture wires the service over the in-memory reference dataset
func OpenFixture(cfg *config.Config, logger *zap.Logger) *App {
	store := fixture.Default()
	return build(cfg, store, store, logger)
}

func build(cfg *config.Config, geometry pollination.GeometryResolver, surfaces pollination.SurfaceProvider, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}

	a := &App{}
	if cfg.CacheGeometry {
		a.Cache = cache.NewGeometryCache(geometry)
		geometry = a.Cache
	}

	calc := pollination.NewCalculator(geometry, surfaces, pollination.Config{
		CellSizeKm: cfg.Calculation.CellSizeKm,
		Logger:     logger.Named("calculator"),
	})
	a.Service = service.NewCalculationService(calc, DefaultRequest(cfg), logger.Named("service"))
	return a
}

// DefaultRequest returns the configured default scenario
func DefaultRequest(cfg *config.Config) models.CalculationRequest {
	return models.CalculationRequest{
		PlantationID: cfg.Calculation.DefaultPlantationID,
		ROIID:        cfg.Calculation.DefaultROIID,
		CAID:         cfg.Calculation.DefaultCAID,
	}
}

// Close releases the database, if any
func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
