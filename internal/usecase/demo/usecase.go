package demo

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"user-demo/internal/calc"
	"user-demo/internal/domain/user"
	apperrors "user-demo/pkg/errors"
	"user-demo/pkg/logger"
)

// Fetcher retrieves and decodes a JSON document.
type Fetcher interface {
	FetchJSON(ctx context.Context, url string) (any, error)
}

// SleepFunc suspends the caller for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Usecase runs the demo steps strictly in sequence.
type Usecase struct {
	fetcher Fetcher
	sleep   SleepFunc
	opts    Options
	log     *zap.Logger
}

// New creates a new demo Usecase.
func New(f Fetcher, sleep SleepFunc, opts Options, log *zap.Logger) *Usecase {
	return &Usecase{fetcher: f, sleep: sleep, opts: opts, log: log}
}

// Run executes every step once. The first failing step ends the run and its
// error is returned; Run never recovers from a step failure itself.
func (uc *Usecase) Run(ctx context.Context) (*Result, error) {
	log := logger.WithContext(ctx, uc.log)
	log.Info("starting main routine")

	u, err := user.NewUser(uc.opts.UserName, uc.opts.UserAge, uc.opts.UserEmail)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	log.Info("user created", zap.String("details", u.Details()))

	log.Info("updating email", zap.Duration("delay", uc.opts.Delay))
	if err := uc.sleep(ctx, uc.opts.Delay); err != nil {
		return nil, fmt.Errorf("delay interrupted: %w", err)
	}
	if err := u.UpdateEmail(uc.opts.NewEmail); err != nil {
		return nil, fmt.Errorf("failed to update email: %w", err)
	}
	log.Info("updated user", zap.String("details", u.Details()))

	log.Info("fetching data from API", zap.String("url", uc.opts.FetchURL))
	data, err := uc.fetcher.FetchJSON(ctx, uc.opts.FetchURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch data: %w", err)
	}

	items, err := asArray(data)
	if err != nil {
		return nil, err
	}
	preview := Preview(items, uc.opts.PreviewCount)
	log.Info("fetched API data",
		zap.Int("total", len(items)),
		zap.Int("shown", len(preview)),
		zap.Any("preview", preview),
	)

	log.Info("calculating factorial", zap.Int64("input", uc.opts.FactorialInput))
	fact, err := calc.Factorial(uc.opts.FactorialInput)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate factorial: %w", err)
	}
	log.Info(fmt.Sprintf("factorial of %d: %s", uc.opts.FactorialInput, fact))

	return &Result{
		UserDetails:    u.Details(),
		Preview:        preview,
		ItemCount:      len(items),
		FactorialInput: uc.opts.FactorialInput,
		Factorial:      fact,
	}, nil
}

// Preview returns the first n items in their original order.
// It returns all items when there are fewer than n.
func Preview(items []any, n int) []any {
	if n < 0 {
		n = 0
	}
	if n > len(items) {
		n = len(items)
	}
	out := make([]any, n)
	copy(out, items[:n])
	return out
}

func asArray(data any) ([]any, error) {
	items, ok := data.([]any)
	if !ok {
		return nil, apperrors.NewUnexpectedShapeError("array", jsonKind(data))
	}
	return items, nil
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	default:
		return fmt.Sprintf("%T", v)
	}
}
