package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
	"github.com/m04kA/SMC-MarketplaceBooking/pkg/logger"
	"github.com/m04kA/SMC-MarketplaceBooking/pkg/types"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) Create(ctx context.Context, s *domain.Service) (*domain.Service, error) {
	args := m.Called(ctx, s)
	if v := args.Get(0); v != nil {
		return v.(*domain.Service), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*domain.Service), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Service, error) {
	args := m.Called(ctx, ownerID)
	if v := args.Get(0); v != nil {
		return v.([]*domain.Service), args.Error(1)
	}
	return nil, args.Error(1)
}

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func sampleService() *domain.Service {
	return &domain.Service{
		ID:             5,
		OwnerID:        7,
		Kind:           domain.KindLocal,
		Title:          "Loft",
		PricePerHour:   40,
		StartDate:      types.MustParseDate("2024-06-01"),
		EndDate:        types.MustParseDate("2024-06-30"),
		Interval:       domain.IntervalMonthly,
		ExceptionDates: []types.Date{types.MustParseDate("2024-06-15")},
	}
}

func TestCachedRepository_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("miss then hit", func(t *testing.T) {
		mr, client := newRedis(t)
		repo := &mockRepo{}
		repo.On("GetByID", mock.Anything, int64(5)).Return(sampleService(), nil).Once()

		cached := NewCachedRepository(repo, client, time.Minute, logger.Nop())

		first, err := cached.GetByID(ctx, 5)
		require.NoError(t, err)
		second, err := cached.GetByID(ctx, 5)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, []types.Date{types.MustParseDate("2024-06-15")}, second.ExceptionDates)
		assert.True(t, mr.Exists("service:5"))
		repo.AssertExpectations(t)
	})

	t.Run("expired entry reloads", func(t *testing.T) {
		mr, client := newRedis(t)
		repo := &mockRepo{}
		repo.On("GetByID", mock.Anything, int64(5)).Return(sampleService(), nil).Twice()

		cached := NewCachedRepository(repo, client, time.Minute, logger.Nop())

		_, err := cached.GetByID(ctx, 5)
		require.NoError(t, err)
		mr.FastForward(2 * time.Minute)
		_, err = cached.GetByID(ctx, 5)
		require.NoError(t, err)

		repo.AssertExpectations(t)
	})

	t.Run("not found is not cached", func(t *testing.T) {
		mr, client := newRedis(t)
		notFound := errors.New("not found")
		repo := &mockRepo{}
		repo.On("GetByID", mock.Anything, int64(9)).Return(nil, notFound)

		cached := NewCachedRepository(repo, client, time.Minute, logger.Nop())

		_, err := cached.GetByID(ctx, 9)
		assert.ErrorIs(t, err, notFound)
		assert.False(t, mr.Exists("service:9"))
	})

	t.Run("redis down falls back to repository", func(t *testing.T) {
		mr, client := newRedis(t)
		mr.Close()
		repo := &mockRepo{}
		repo.On("GetByID", mock.Anything, int64(5)).Return(sampleService(), nil)

		cached := NewCachedRepository(repo, client, time.Minute, logger.Nop())

		got, err := cached.GetByID(ctx, 5)
		require.NoError(t, err)
		assert.Equal(t, "Loft", got.Title)
	})

	t.Run("disabled without client", func(t *testing.T) {
		repo := &mockRepo{}
		repo.On("GetByID", mock.Anything, int64(5)).Return(sampleService(), nil).Twice()

		cached := NewCachedRepository(repo, nil, time.Minute, logger.Nop())

		_, _ = cached.GetByID(ctx, 5)
		_, _ = cached.GetByID(ctx, 5)
		repo.AssertExpectations(t)
	})
}
