package infrastructure

import (
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"user-demo/internal/adapter/db/sqlstore"
	"user-demo/internal/config"
	"user-demo/pkg/logger"
)

// NewDatabase opens the run history database and migrates its schema.
// It returns nil, nil when the store is disabled.
func NewDatabase(cfg *config.Config, l *zap.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Store.Driver {
	case "none", "":
		return nil, nil
	case "sqlite":
		dialector = sqlite.Open(cfg.Store.SQLitePath)
	case "postgres":
		dialector = pgdriver.Open(cfg.Store.DSN())
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.Store.Driver)
	}

	slow := time.Duration(cfg.Logger.SlowQuerySeconds * float64(time.Second))
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.NewGormLogger(l, slow, cfg.Logger.Level),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := sqlstore.Migrate(db); err != nil {
		_ = CloseDatabase(db)
		return nil, err
	}

	l.Info("database connected", zap.String("driver", cfg.Store.Driver))
	return db, nil
}

// CloseDatabase closes the database connection
func CloseDatabase(db *gorm.DB) error {
	if db == nil {
		return nil
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	return nil
}
