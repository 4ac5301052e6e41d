package history

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"user-demo/internal/domain/run"
	"user-demo/internal/usecase/demo"
	"user-demo/pkg/logger"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, r *run.Record) (int64, error) {
	args := m.Called(ctx, r)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) Latest(ctx context.Context) (*run.Record, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*run.Record), args.Error(1)
}

var fixedNow = time.Date(2026, 5, 6, 7, 8, 9, 0, time.UTC)

func setupTestUsecase(t *testing.T) (*Usecase, *MockRepository) {
	repo := new(MockRepository)
	uc := New(repo, zaptest.NewLogger(t))
	uc.now = func() time.Time { return fixedNow }
	return uc, repo
}

func TestRecord_Success(t *testing.T) {
	uc, repo := setupTestUsecase(t)
	ctx := context.WithValue(context.Background(), logger.RunIDKey, "run-42")
	started := fixedNow.Add(-2 * time.Second)

	res := &demo.Result{
		UserDetails:    "Name: Alice, Age: 28, Email: newalice@example.com",
		Preview:        []any{1, 2, 3},
		ItemCount:      100,
		FactorialInput: 5,
		Factorial:      big.NewInt(120),
	}

	repo.On("Create", ctx, mock.MatchedBy(func(r *run.Record) bool {
		return r.RunID == "run-42" &&
			r.Status == run.StatusSucceeded &&
			r.UserDetails == res.UserDetails &&
			r.ItemCount == 100 &&
			r.Factorial == "120" &&
			r.Error == ""
	})).Return(int64(1), nil)

	rec, err := uc.Record(ctx, started, res, nil)

	require.NoError(t, err)
	assert.Equal(t, int64(1), rec.ID)
	assert.Equal(t, 2*time.Second, rec.Duration())
	repo.AssertExpectations(t)
}

func TestRecord_Failure(t *testing.T) {
	uc, repo := setupTestUsecase(t)
	ctx := context.Background()
	runErr := errors.New("failed to fetch data: boom")

	repo.On("Create", ctx, mock.MatchedBy(func(r *run.Record) bool {
		return r.Status == run.StatusFailed && r.Error == runErr.Error() && r.Factorial == ""
	})).Return(int64(2), nil)

	rec, err := uc.Record(ctx, fixedNow, nil, runErr)

	require.NoError(t, err)
	assert.Equal(t, run.StatusFailed, rec.Status)
	repo.AssertExpectations(t)
}

func TestRecord_EmptyOutcome(t *testing.T) {
	uc, repo := setupTestUsecase(t)

	_, err := uc.Record(context.Background(), fixedNow, nil, nil)

	assert.Error(t, err)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRecord_RepositoryError(t *testing.T) {
	uc, repo := setupTestUsecase(t)
	dbErr := errors.New("insert failed")

	repo.On("Create", mock.Anything, mock.Anything).Return(int64(0), dbErr)

	rec, err := uc.Record(context.Background(), fixedNow, nil, errors.New("x"))

	assert.Nil(t, rec)
	assert.ErrorIs(t, err, dbErr)
}

func TestLatest(t *testing.T) {
	uc, repo := setupTestUsecase(t)
	want := &run.Record{ID: 5}

	repo.On("Latest", mock.Anything).Return(want, nil).Once()
	repo.On("Latest", mock.Anything).Return(nil, errors.New("db down")).Once()

	got, err := uc.Latest(context.Background())
	require.NoError(t, err)
	assert.Same(t, want, got)

	_, err = uc.Latest(context.Background())
	assert.Error(t, err)
}

func TestLatest_ErrorLogCarriesRunID(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	repo := new(MockRepository)
	uc := New(repo, zap.New(core))
	ctx := context.WithValue(context.Background(), logger.RunIDKey, "run-7")

	repo.On("Latest", ctx).Return(nil, errors.New("db down"))

	_, err := uc.Latest(ctx)
	require.Error(t, err)

	entries := logs.FilterMessage("failed to load latest run").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "run-7", entries[0].ContextMap()["run_id"])
}
