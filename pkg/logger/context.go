package logger

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ContextKey is the type for context keys
type ContextKey string

// RunIDKey is the context key for the id of the current demo run
const RunIDKey ContextKey = "run_id"

// WithRunID returns a context carrying a freshly generated run ID.
// An existing run ID is kept.
func WithRunID(ctx context.Context) context.Context {
	if GetRunID(ctx) != "" {
		return ctx
	}
	return context.WithValue(ctx, RunIDKey, uuid.New().String())
}

// GetRunID extracts the run ID from context
func GetRunID(ctx context.Context) string {
	if runID := ctx.Value(RunIDKey); runID != nil {
		if id, ok := runID.(string); ok {
			return id
		}
	}
	return ""
}

// WithContext creates a logger with context fields (run_id)
func WithContext(ctx context.Context, logger *zap.Logger) *zap.Logger {
	if id := GetRunID(ctx); id != "" {
		return logger.With(zap.String("run_id", id))
	}
	return logger
}
