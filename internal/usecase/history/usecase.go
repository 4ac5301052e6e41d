package history

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"user-demo/internal/domain/run"
	"user-demo/internal/usecase/demo"
	"user-demo/pkg/logger"
)

// Repository defines the interface for run record storage.
type Repository interface {
	Create(ctx context.Context, r *run.Record) (int64, error) // Store a finished run
	Latest(ctx context.Context) (*run.Record, error)          // Most recent run, nil if none
}

// Usecase records demo run outcomes.
type Usecase struct {
	repo Repository
	log  *zap.Logger
	now  func() time.Time
}

// New creates a new history Usecase.
func New(r Repository, log *zap.Logger) *Usecase {
	return &Usecase{repo: r, log: log, now: time.Now}
}

// Record stores the outcome of a run that started at startedAt.
// Exactly one of res and runErr is expected to be non-nil.
func (uc *Usecase) Record(ctx context.Context, startedAt time.Time, res *demo.Result, runErr error) (*run.Record, error) {
	if res == nil && runErr == nil {
		return nil, errors.New("run outcome is empty")
	}

	rec := &run.Record{
		RunID:      logger.GetRunID(ctx),
		StartedAt:  startedAt,
		FinishedAt: uc.now(),
	}

	if runErr != nil {
		rec.Status = run.StatusFailed
		rec.Error = runErr.Error()
	} else {
		rec.Status = run.StatusSucceeded
		rec.UserDetails = res.UserDetails
		rec.ItemCount = res.ItemCount
		rec.FactorialInput = res.FactorialInput
		if res.Factorial != nil {
			rec.Factorial = res.Factorial.String()
		}
	}

	id, err := uc.repo.Create(ctx, rec)
	if err != nil {
		logger.WithContext(ctx, uc.log).Error("failed to record run", zap.Error(err))
		return nil, err
	}
	rec.ID = id

	logger.WithContext(ctx, uc.log).Debug("run recorded",
		zap.Int64("id", id),
		zap.String("status", string(rec.Status)),
		zap.Duration("duration", rec.Duration()),
	)
	return rec, nil
}

// Latest returns the most recently recorded run, or nil if there is none.
func (uc *Usecase) Latest(ctx context.Context) (*run.Record, error) {
	rec, err := uc.repo.Latest(ctx)
	if err != nil {
		logger.WithContext(ctx, uc.log).Error("failed to load latest run", zap.Error(err))
		return nil, err
	}
	return rec, nil
}
