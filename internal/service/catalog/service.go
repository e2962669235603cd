package catalog

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
	servicesRepo "github.com/m04kA/SMC-MarketplaceBooking/internal/infra/storage/services"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/schedule"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/service/catalog/models"
	"github.com/m04kA/SMC-MarketplaceBooking/pkg/types"
)

// Service сервис каталога услуг провайдеров
type Service struct {
	serviceRepo      ServiceRepository
	availabilityRepo AvailabilityRepository
	txManager        TransactionManager
	maxWindowDays    int
	logger           Logger
}

// NewService создает новый экземпляр сервиса каталога.
// maxWindowDays ограничивает окно услуги (<= 0 - значение по умолчанию).
func NewService(
	serviceRepo ServiceRepository,
	availabilityRepo AvailabilityRepository,
	txManager TransactionManager,
	maxWindowDays int,
	logger Logger,
) *Service {
	return &Service{
		serviceRepo:      serviceRepo,
		availabilityRepo: availabilityRepo,
		txManager:        txManager,
		maxWindowDays:    maxWindowDays,
		logger:           logger,
	}
}

// Create создает услугу и записи exception на ее даты-исключения.
// Конец окна выводится из интервала, если не задан явно.
func (s *Service) Create(ctx context.Context, req *models.CreateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("Create: creating service %q (kind=%s, interval=%s) by user=%d",
		req.Title, req.Kind, req.Interval, req.OwnerID)

	// 1. Валидируем поля услуги
	service := req.ToDomain()
	if err := service.Validate(); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 2. Определяем конец окна
	if req.EndDate != nil {
		service.EndDate = *req.EndDate
	} else {
		end, err := schedule.EndDateFor(service.StartDate, service.Interval)
		if err != nil {
			s.logger.Warn("Create: cannot derive end date: %v", err)
			return nil, s.windowError(err)
		}
		service.EndDate = end
	}

	// 3. Проверяем окно и нормализуем даты-исключения
	window, err := schedule.Expand(service.StartDate, service.EndDate, service.Interval, service.ExceptionDates, s.maxWindowDays)
	if err != nil {
		s.logger.Warn("Create: invalid window %s..%s: %v", service.StartDate, service.EndDate, err)
		return nil, s.windowError(err)
	}
	service.ExceptionDates = normalizeExceptions(window, service.ExceptionDates)

	// 4. Услуга и ее exception записи создаются атомарно
	var created *domain.Service
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		created, err = s.serviceRepo.Create(txCtx, service)
		if err != nil {
			return fmt.Errorf("create service: %w", err)
		}
		if len(created.ExceptionDates) == 0 {
			return nil
		}
		if err := s.availabilityRepo.CreateExceptions(txCtx, created.ID, created.ExceptionDates); err != nil {
			return fmt.Errorf("create exceptions: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created service id=%d, window %s..%s, %d exception dates",
		created.ID, created.StartDate, created.EndDate, len(created.ExceptionDates))
	return models.FromDomainService(created), nil
}

// GetByID получает услугу по ID
// Публичный метод - доступен всем
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ServiceResponse, error) {
	s.logger.Info("GetByID: fetching service id=%d", id)

	service, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, servicesRepo.ErrServiceNotFound) {
			s.logger.Warn("GetByID: service id=%d not found", id)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("GetByID: repository error for service id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainService(service), nil
}

// ListByOwner получает услуги провайдера
// Публичный метод - витрина провайдера
func (s *Service) ListByOwner(ctx context.Context, ownerID int64) (*models.ServiceListResponse, error) {
	s.logger.Info("ListByOwner: fetching services of user=%d", ownerID)

	if ownerID <= 0 {
		return nil, fmt.Errorf("%w: owner id must be positive", ErrInvalidInput)
	}

	services, err := s.serviceRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		s.logger.Error("ListByOwner: repository error for user=%d: %v", ownerID, err)
		return nil, fmt.Errorf("%w: ListByOwner - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByOwner: successfully fetched %d services of user=%d", len(services), ownerID)
	return models.FromDomainServiceList(services), nil
}

func (s *Service) windowError(err error) error {
	switch {
	case errors.Is(err, schedule.ErrInvalidInterval):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	case errors.Is(err, schedule.ErrInvalidRange):
		return fmt.Errorf("%w: %v", ErrInvalidRange, err)
	default:
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}

// normalizeExceptions оставляет уникальные даты-исключения внутри окна по возрастанию
func normalizeExceptions(window *schedule.Domain, dates []types.Date) []types.Date {
	out := make([]types.Date, 0, len(dates))
	for _, d := range dates {
		if window.Contains(d) && window.IsException(d) && !slices.Contains(out, d) {
			out = append(out, d)
		}
	}
	slices.SortFunc(out, types.Date.Compare)
	return out
}
