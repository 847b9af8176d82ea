package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/secretkeeper/pkg/config"
	"github.com/dmitrymomot/secretkeeper/pkg/httpserver"
	"github.com/dmitrymomot/secretkeeper/pkg/logger"
	"github.com/dmitrymomot/secretkeeper/pkg/mongo"
	"github.com/dmitrymomot/secretkeeper/pkg/pg"
	"github.com/dmitrymomot/secretkeeper/pkg/users"
)

// Store drivers accepted by STORE_DRIVER.
const (
	driverMemory   = "memory"
	driverMongo    = "mongo"
	driverPostgres = "postgres"
)

var errUnknownDriver = errors.New("unknown store driver")

type mongoUsersConfig struct {
	Collection string `env:"MONGODB_USERS_COLLECTION" envDefault:"users"`
}

type appConfig struct {
	Env           string `env:"APP_ENV" envDefault:"development"`
	Name          string `env:"APP_NAME" envDefault:"secretkeeper"`
	StoreDriver   string `env:"STORE_DRIVER" envDefault:"mongo"`
	GoogleEnabled bool   `env:"GOOGLE_OAUTH_ENABLED" envDefault:"true"`
}

func loadAppConfig() (appConfig, *slog.Logger, error) {
	var cfg appConfig
	if err := config.Load(&cfg); err != nil {
		return cfg, nil, err
	}
	log := logger.New(
		logger.WithEnvironment(cfg.Env, cfg.Name),
		logger.WithContextExtractors(logger.RequestIDExtractor(middleware.GetReqID)),
	)
	return cfg, log, nil
}

// credentialStore is an opened users.Storage with its readiness probe and
// teardown.
type credentialStore struct {
	users.Storage
	check httpserver.Check
	close func()
}

func openStore(ctx context.Context, driver string, log *slog.Logger) (*credentialStore, error) {
	switch driver {
	case driverMemory:
		log.WarnContext(ctx, "using in-memory credential store, data is lost on restart")
		return &credentialStore{
			Storage: users.NewMemoryStorage(),
			check:   httpserver.Check{Name: driverMemory, Fn: func(context.Context) error { return nil }},
			close:   func() {},
		}, nil

	case driverMongo:
		var cfg mongo.Config
		if err := config.Load(&cfg); err != nil {
			return nil, err
		}
		var usersCfg mongoUsersConfig
		if err := config.Load(&usersCfg); err != nil {
			return nil, err
		}
		db, err := mongo.NewWithDatabase(ctx, cfg)
		if err != nil {
			return nil, err
		}
		storage := users.NewMongoStorage(db, users.WithCollection(usersCfg.Collection))
		if err := storage.EnsureIndexes(ctx); err != nil {
			_ = db.Client().Disconnect(context.Background())
			return nil, err
		}
		return &credentialStore{
			Storage: storage,
			check:   httpserver.Check{Name: driverMongo, Fn: mongo.Healthcheck(db.Client())},
			close: func() {
				if err := db.Client().Disconnect(context.Background()); err != nil {
					log.Error("failed to disconnect from mongo", logger.Error(err))
				}
			},
		}, nil

	case driverPostgres:
		var cfg pg.Config
		if err := config.Load(&cfg); err != nil {
			return nil, err
		}
		pool, err := pg.Connect(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return &credentialStore{
			Storage: users.NewPostgresStorage(pool),
			check:   httpserver.Check{Name: driverPostgres, Fn: pg.Healthcheck(pool)},
			close:   pool.Close,
		}, nil
	}

	return nil, fmt.Errorf("%w: %q", errUnknownDriver, driver)
}
