package app

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"user-demo/cmd/demo/di"
	"user-demo/internal/config"
	"user-demo/internal/usecase/demo"
	apperrors "user-demo/pkg/errors"
	"user-demo/pkg/logger"
)

// App represents the application
type App struct {
	Config    *config.Config
	Logger    *zap.Logger
	Container *di.Container
}

// New creates a new application instance
func New(ctx context.Context) (*App, error) {
	// Load configuration
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	l, err := initLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	// Create DI container
	container, err := di.NewContainer(ctx, cfg, l)
	if err != nil {
		_ = l.Sync()
		return nil, fmt.Errorf("failed to create container: %w", err)
	}

	return &App{
		Config:    cfg,
		Logger:    l,
		Container: container,
	}, nil
}

// Run executes the demo routine once. A failing routine is logged and
// swallowed. Run returns an error only when closing the store, closing Redis
// or syncing the logger fails, and main turns that into a non-zero exit.
func (a *App) Run(ctx context.Context) error {
	ctx = logger.WithRunID(ctx)
	log := logger.WithContext(ctx, a.Logger)

	log.Info("starting application",
		zap.String("service", a.Config.Logger.ServiceName),
		zap.String("version", a.Config.Logger.ServiceVersion),
		zap.String("environment", a.Config.App.Env),
	)

	a.logPreviousRun(ctx, log)

	startedAt := time.Now()
	res, err := a.runRoutine(ctx, log)
	if err != nil {
		log.Error("an error occurred", zap.String("error", err.Error()))
	}

	a.recordRun(ctx, startedAt, res, err)

	return a.shutdown()
}

// runRoutine calls the runner and turns a panic into an error.
func (a *App) runRoutine(ctx context.Context, log *zap.Logger) (res *demo.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("panic recovered in application",
				zap.Any("panic", r),
				zap.Stack("stack"),
			)
			res, err = nil, apperrors.NewInternalError("panic", fmt.Errorf("%v", r))
		}
	}()

	return a.Container.Runner.Run(ctx)
}

func (a *App) logPreviousRun(ctx context.Context, log *zap.Logger) {
	if a.Container.History == nil {
		return
	}

	prev, err := a.Container.History.Latest(ctx)
	if err != nil || prev == nil {
		return
	}

	log.Info("previous run",
		zap.String("previous_run_id", prev.RunID),
		zap.String("status", string(prev.Status)),
		zap.Time("finished_at", prev.FinishedAt),
		zap.Duration("duration", prev.Duration()),
	)
}

// recordRun stores the outcome even when ctx was canceled mid-run.
func (a *App) recordRun(ctx context.Context, startedAt time.Time, res *demo.Result, runErr error) {
	if a.Container.History == nil {
		return
	}

	recordCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.shutdownTimeout())
	defer cancel()

	// Failures are logged by the history usecase.
	_, _ = a.Container.History.Record(recordCtx, startedAt, res, runErr)
}

// shutdown releases container resources and flushes the logger
func (a *App) shutdown() error {
	var errs []error

	// Close container resources
	if a.Container != nil {
		a.Logger.Debug("closing container resources...")
		if err := a.Container.Close(); err != nil {
			a.Logger.Error("failed to close container", zap.Error(err))
			errs = append(errs, fmt.Errorf("container close: %w", err))
		}
	}

	a.Logger.Info("application finished")

	// Sync logger
	if err := a.Logger.Sync(); err != nil && !isStdSyncError(err) {
		errs = append(errs, fmt.Errorf("logger sync: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("shutdown errors: %v", errs)
	}

	return nil
}

func (a *App) shutdownTimeout() time.Duration {
	if a.Config.App.ShutdownTimeoutSeconds <= 0 {
		return 5 * time.Second
	}
	return time.Duration(a.Config.App.ShutdownTimeoutSeconds) * time.Second
}

// isStdSyncError reports the error fsync returns for terminals and pipes.
func isStdSyncError(err error) bool {
	msg := err.Error()
	return strings.HasPrefix(msg, "sync /dev/stdout") || strings.HasPrefix(msg, "sync /dev/stderr")
}

// loadConfig loads application configuration
func loadConfig() (*config.Config, error) {
	return config.LoadConfig(getConfigPath())
}

// initLogger initializes the application logger
func initLogger(cfg *config.Config) (*zap.Logger, error) {
	loggerCfg := logger.Config{
		Level:          cfg.Logger.Level,
		Format:         cfg.Logger.Format,
		OutputPath:     cfg.Logger.OutputPath,
		EnableSampling: cfg.Logger.EnableSampling,
		ServiceName:    cfg.Logger.ServiceName,
		ServiceVersion: cfg.Logger.ServiceVersion,
		Environment:    cfg.App.Env,
	}

	return logger.NewWithConfig(loggerCfg)
}

// getConfigPath returns the configuration path
func getConfigPath() string {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return path
	}
	return "."
}
