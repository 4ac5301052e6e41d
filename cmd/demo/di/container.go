package di

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"user-demo/cmd/demo/infrastructure"
	"user-demo/internal/adapter/cache"
	"user-demo/internal/adapter/db/sqlstore"
	"user-demo/internal/adapter/httpjson"
	"user-demo/internal/adapter/repository/cached"
	"user-demo/internal/config"
	"user-demo/internal/usecase/demo"
	"user-demo/internal/usecase/history"
	"user-demo/pkg/delay"
	redisclient "user-demo/pkg/redis"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *zap.Logger
	DB          *gorm.DB
	RedisClient *redisclient.Client
	Runner      demo.Runner
	History     *history.Usecase // nil when the run history store is disabled
}

// NewContainer creates and initializes all application dependencies
func NewContainer(ctx context.Context, cfg *config.Config, l *zap.Logger) (*Container, error) {
	// Validate configuration before initializing any dependencies
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	fetcher := httpjson.New(cfg.Demo.FetchTimeout(), l)
	runner := demo.New(fetcher, delay.Sleep, demo.Options{
		UserName:       cfg.Demo.UserName,
		UserAge:        cfg.Demo.UserAge,
		UserEmail:      cfg.Demo.UserEmail,
		NewEmail:       cfg.Demo.NewEmail,
		Delay:          cfg.Demo.Delay(),
		FetchURL:       cfg.Demo.FetchURL,
		PreviewCount:   cfg.Demo.PreviewCount,
		FactorialInput: cfg.Demo.FactorialInput,
	}, l)

	c := &Container{
		Config: cfg,
		Logger: l,
		Runner: runner,
	}

	db, err := infrastructure.NewDatabase(cfg, l)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	if db == nil {
		if cfg.Redis.Enabled {
			l.Warn("redis is enabled but the run history store is not; skipping redis")
		}
		return c, nil
	}
	c.DB = db

	var runCache cache.RunCache
	rdb, err := infrastructure.NewRedisClient(ctx, cfg, l)
	if err != nil {
		_ = infrastructure.CloseDatabase(db)
		return nil, err
	}
	if rdb != nil {
		c.RedisClient = rdb
		runCache = cache.NewRedisRunCache(rdb.Client, cfg.Redis.CacheTTLDuration(), l)
	}

	dbRepo := sqlstore.NewRunRepo(db, l)
	repo := cached.NewRunRepository(dbRepo, runCache, l)
	c.History = history.New(repo, l)

	return c, nil
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	var errs []error

	// Close Redis connection
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close Redis: %w", err))
		}
	}

	// Close database connection
	if c.DB != nil {
		if err := infrastructure.CloseDatabase(c.DB); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("container close errors: %v", errs)
	}

	return nil
}
