package cached

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"user-demo/internal/adapter/cache"
	"user-demo/internal/domain/run"
	"user-demo/internal/usecase/history"
)

// RunRepository implements history.Repository with caching support.
// It wraps a persistent repository (DB) and a cache implementation.
type RunRepository struct {
	dbRepo history.Repository
	cache  cache.RunCache
	log    *zap.Logger
	group  singleflight.Group
}

// NewRunRepository creates a new instance of RunRepository.
// A nil cache makes every call go straight to dbRepo.
func NewRunRepository(dbRepo history.Repository, c cache.RunCache, log *zap.Logger) *RunRepository {
	return &RunRepository{
		dbRepo: dbRepo,
		cache:  c,
		log:    log,
	}
}

// Create stores the run in the DB and invalidates the cached latest run.
func (r *RunRepository) Create(ctx context.Context, rec *run.Record) (int64, error) {
	id, err := r.dbRepo.Create(ctx, rec)
	if err != nil {
		return 0, err
	}

	if r.cache != nil {
		if err := r.cache.DeleteLatest(ctx); err != nil {
			r.log.Warn("failed to invalidate cache after create", zap.Int64("id", id), zap.Error(err))
		}
	}

	return id, nil
}

// Latest retrieves the most recent run using the cache-aside pattern.
func (r *RunRepository) Latest(ctx context.Context) (*run.Record, error) {
	if r.cache != nil {
		cached, err := r.cache.GetLatest(ctx)
		if err != nil {
			r.log.Warn("cache get error, falling back to database", zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	result, err, _ := r.group.Do("latest", func() (any, error) {
		rec, err := r.dbRepo.Latest(ctx)
		if err != nil {
			return nil, err
		}

		if rec != nil && r.cache != nil {
			if err := r.cache.SetLatest(ctx, rec); err != nil {
				r.log.Warn("failed to cache latest run", zap.Int64("id", rec.ID), zap.Error(err))
			}
		}
		return rec, nil
	})
	if err != nil {
		return nil, err
	}

	return result.(*run.Record), nil
}
