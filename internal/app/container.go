package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"job-connect/internal/config"
	"job-connect/internal/database"
	"job-connect/internal/database/migration"
	dbpostgres "job-connect/internal/database/postgres"
	"job-connect/internal/infrastructure/cache"
	"job-connect/internal/infrastructure/storage"
	"job-connect/internal/ws"
)

// Container owns every process-wide dependency the HTTP layer hangs off.
type Container struct {
	Config config.Config
	DB     database.DB
	Cache  *cache.Redis
	Store  storage.Store
	Hub    *ws.Hub
	Logger *log.Logger
}

func NewContainer(cfg config.Config) (*Container, error) {
	logger := log.New(os.Stdout, "", log.LstdFlags)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if err := migration.Run(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	store, err := storage.New(cfg.Storage)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init storage: %w", err)
	}

	hub := ws.NewHub(logger)
	go hub.Run()

	return &Container{
		Config: cfg,
		DB:     db,
		Cache:  cache.NewRedis(logger),
		Store:  store,
		Hub:    hub,
		Logger: logger,
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
