package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"user-demo/internal/domain/run"
)

// RunRepo implements history.Repository using GORM.
// It works with any GORM dialector; the application uses PostgreSQL or SQLite.
type RunRepo struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewRunRepo creates a new instance of RunRepo.
func NewRunRepo(db *gorm.DB, log *zap.Logger) *RunRepo {
	return &RunRepo{db: db, log: log}
}

// RunSchema represents the database schema for the demo_runs table.
type RunSchema struct {
	ID             int64     `gorm:"primaryKey;autoIncrement"`
	RunID          string    `gorm:"size:36;not null;index"`
	Status         string    `gorm:"size:16;not null"`
	UserDetails    string    `gorm:"type:text"`
	ItemCount      int       `gorm:"not null;default:0"`
	FactorialInput int64     `gorm:"not null;default:0"`
	Factorial      string    `gorm:"type:text"`
	Error          string    `gorm:"type:text"`
	StartedAt      time.Time `gorm:"not null"`
	FinishedAt     time.Time `gorm:"not null;index"`
}

// TableName specifies the table name for the RunSchema model.
func (RunSchema) TableName() string {
	return "demo_runs"
}

// Migrate creates or updates the demo_runs table.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&RunSchema{}); err != nil {
		return fmt.Errorf("failed to migrate demo_runs: %w", err)
	}
	return nil
}

// Create inserts a run record and returns its ID.
func (r *RunRepo) Create(ctx context.Context, rec *run.Record) (int64, error) {
	if rec == nil {
		return 0, errors.New("run record cannot be nil")
	}

	model := toSchema(rec)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		r.log.Error("failed to create run in db", zap.Error(err), zap.String("run_id", rec.RunID))
		return 0, fmt.Errorf("failed to create run: %w", err)
	}

	r.log.Debug("run created in db", zap.Int64("id", model.ID))
	return model.ID, nil
}

// Latest returns the most recent run by ID, or nil if the table is empty.
func (r *RunRepo) Latest(ctx context.Context) (*run.Record, error) {
	var model RunSchema
	if err := r.db.WithContext(ctx).Order("id DESC").First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Debug("no runs recorded yet")
			return nil, nil
		}
		r.log.Error("failed to get latest run from db", zap.Error(err))
		return nil, fmt.Errorf("failed to get latest run: %w", err)
	}

	return fromSchema(&model), nil
}

func toSchema(rec *run.Record) RunSchema {
	return RunSchema{
		RunID:          rec.RunID,
		Status:         string(rec.Status),
		UserDetails:    rec.UserDetails,
		ItemCount:      rec.ItemCount,
		FactorialInput: rec.FactorialInput,
		Factorial:      rec.Factorial,
		Error:          rec.Error,
		StartedAt:      rec.StartedAt,
		FinishedAt:     rec.FinishedAt,
	}
}

func fromSchema(m *RunSchema) *run.Record {
	return &run.Record{
		ID:             m.ID,
		RunID:          m.RunID,
		Status:         run.Status(m.Status),
		UserDetails:    m.UserDetails,
		ItemCount:      m.ItemCount,
		FactorialInput: m.FactorialInput,
		Factorial:      m.Factorial,
		Error:          m.Error,
		StartedAt:      m.StartedAt,
		FinishedAt:     m.FinishedAt,
	}
}
