package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
	"github.com/m04kA/SMC-MarketplaceBooking/pkg/types"
)

const keyPrefix = "service:"

// CachedRepository read-through кэш услуг в Redis.
// Услуги не меняются после создания, поэтому инвалидация не нужна, только TTL.
type CachedRepository struct {
	next   ServiceRepository
	redis  *redis.Client
	ttl    time.Duration
	logger Logger
}

// NewCachedRepository оборачивает репозиторий. При redisClient == nil или ttl <= 0 работает как next.
func NewCachedRepository(next ServiceRepository, redisClient *redis.Client, ttl time.Duration, logger Logger) *CachedRepository {
	return &CachedRepository{
		next:   next,
		redis:  redisClient,
		ttl:    ttl,
		logger: logger,
	}
}

// Create пробрасывает вызов в репозиторий. Кэш заполняется при первом чтении,
// так как создание идет в транзакции, которая еще может откатиться.
func (r *CachedRepository) Create(ctx context.Context, service *domain.Service) (*domain.Service, error) {
	return r.next.Create(ctx, service)
}

// GetByID сначала смотрит в Redis, затем в репозиторий
func (r *CachedRepository) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	if cached, ok := r.read(ctx, id); ok {
		return cached, nil
	}

	service, err := r.next.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	r.write(ctx, service)
	return service, nil
}

// ListByOwner не кэшируется: список меняется при каждом создании услуги
func (r *CachedRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Service, error) {
	return r.next.ListByOwner(ctx, ownerID)
}

func (r *CachedRepository) enabled() bool {
	return r.redis != nil && r.ttl > 0
}

func (r *CachedRepository) read(ctx context.Context, id int64) (*domain.Service, bool) {
	if !r.enabled() {
		return nil, false
	}

	val, err := r.redis.Get(ctx, cacheKey(id)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.logger.Warn("ServiceCache: get id=%d failed: %v", id, err)
		}
		return nil, false
	}

	var entry cachedService
	if err := json.Unmarshal(val, &entry); err != nil {
		r.logger.Warn("ServiceCache: corrupted entry id=%d: %v", id, err)
		return nil, false
	}
	return entry.toDomain(), true
}

func (r *CachedRepository) write(ctx context.Context, service *domain.Service) {
	if !r.enabled() {
		return
	}

	data, err := json.Marshal(fromDomain(service))
	if err != nil {
		r.logger.Error("ServiceCache: marshal id=%d failed: %v", service.ID, err)
		return
	}
	if err := r.redis.Set(ctx, cacheKey(service.ID), data, r.ttl).Err(); err != nil {
		r.logger.Warn("ServiceCache: set id=%d failed: %v", service.ID, err)
	}
}

func cacheKey(id int64) string {
	return fmt.Sprintf("%s%d", keyPrefix, id)
}

type cachedService struct {
	ID             int64        `json:"id"`
	OwnerID        int64        `json:"ownerId"`
	Kind           string       `json:"kind"`
	Title          string       `json:"title"`
	PricePerHour   float64      `json:"pricePerHour"`
	StartDate      types.Date   `json:"startDate"`
	EndDate        types.Date   `json:"endDate"`
	Interval       string       `json:"interval"`
	ExceptionDates []types.Date `json:"exceptionDates"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`
}

func fromDomain(s *domain.Service) cachedService {
	return cachedService{
		ID:             s.ID,
		OwnerID:        s.OwnerID,
		Kind:           string(s.Kind),
		Title:          s.Title,
		PricePerHour:   s.PricePerHour,
		StartDate:      s.StartDate,
		EndDate:        s.EndDate,
		Interval:       string(s.Interval),
		ExceptionDates: s.ExceptionDates,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

func (c cachedService) toDomain() *domain.Service {
	return &domain.Service{
		ID:             c.ID,
		OwnerID:        c.OwnerID,
		Kind:           domain.ServiceKind(c.Kind),
		Title:          c.Title,
		PricePerHour:   c.PricePerHour,
		StartDate:      c.StartDate,
		EndDate:        c.EndDate,
		Interval:       domain.Interval(c.Interval),
		ExceptionDates: c.ExceptionDates,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}
