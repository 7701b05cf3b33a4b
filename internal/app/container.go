package app

import (
	"context"
	"log"
	"time"

	"jobradar/internal/aggregator"
	"jobradar/internal/config"
	"jobradar/internal/database"
	dbpostgres "jobradar/internal/database/postgres"
	"jobradar/internal/infrastructure/cache"
	"jobradar/internal/repository"
	"jobradar/internal/ws"
)

// Container wires the process-wide singletons: one engine instance owns the
// reentrancy guard, and both the scheduler and the admin route share it.
type Container struct {
	Config    config.Config
	DB        database.DB
	Cache     *cache.Redis
	Repo      *repository.PostgresListingRepository
	Sources   []aggregator.Source
	Engine    *aggregator.Engine
	Scheduler *aggregator.Scheduler
	Hub       *ws.Hub
	Logger    *log.Logger
}

func NewContainer(cfg config.Config, logger *log.Logger) (*Container, error) {
	if logger == nil {
		logger = log.Default()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	rdb := cache.NewRedis(cfg.Redis, logger)
	repo := repository.NewPostgresListingRepository(db)

	sources := []aggregator.Source{
		aggregator.NewRemotiveSource(cfg.Aggregator.HTTPTimeout),
		aggregator.NewArbeitnowSource(cfg.Aggregator.HTTPTimeout),
	}

	engine := aggregator.NewEngine(repo, sources, cfg.Aggregator.StaleAfter, logger)
	engine.SetCache(rdb)

	hub := ws.NewHub(logger)
	engine.SetNotifier(ws.NewNotifier(hub))

	scheduler := aggregator.NewScheduler(engine, cfg.Aggregator.IntervalHours, logger)

	return &Container{
		Config:    cfg,
		DB:        db,
		Cache:     rdb,
		Repo:      repo,
		Sources:   sources,
		Engine:    engine,
		Scheduler: scheduler,
		Hub:       hub,
		Logger:    logger,
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
