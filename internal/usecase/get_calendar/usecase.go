package get_calendar

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/availability"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
	servicesRepo "github.com/m04kA/SMC-MarketplaceBooking/internal/infra/storage/services"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/schedule"
	"github.com/m04kA/SMC-MarketplaceBooking/pkg/ptr"
	"github.com/m04kA/SMC-MarketplaceBooking/pkg/types"
)

// DefaultSpanDays длина диапазона, если To не задан (видимый месяц)
const DefaultSpanDays = 30

// UseCase use case получения календаря доступности услуги
type UseCase struct {
	serviceRepo      ServiceRepository
	availabilityRepo AvailabilityRepository
	requestRepo      RequestRepository
	timeProvider     TimeProvider
	maxDays          int
	logger           Logger
}

// NewUseCase создает новый экземпляр use case.
// maxDays ограничивает длину запрашиваемого диапазона (<= 0 - значение по умолчанию).
func NewUseCase(
	serviceRepo ServiceRepository,
	availabilityRepo AvailabilityRepository,
	requestRepo RequestRepository,
	maxDays int,
	logger Logger,
) *UseCase {
	if maxDays <= 0 {
		maxDays = domain.DefaultMaxCalendarDays
	}
	return &UseCase{
		serviceRepo:      serviceRepo,
		availabilityRepo: availabilityRepo,
		requestRepo:      requestRepo,
		timeProvider:     &RealTimeProvider{},
		maxDays:          maxDays,
		logger:           logger,
	}
}

// WithTimeProvider подменяет источник текущего времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute возвращает статус каждой даты диапазона [From, To] для зрителя
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req == nil || req.ServiceID <= 0 || req.ViewerID < 0 {
		return nil, fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	from, to, err := uc.resolveRange(req.From, req.To)
	if err != nil {
		uc.logger.Warn("GetCalendar: invalid range for service id=%d: %v", req.ServiceID, err)
		return nil, err
	}

	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, servicesRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetCalendar: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetCalendar: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	records, err := uc.availabilityRepo.ListByServiceAndRange(ctx, service.ID, from, to)
	if err != nil {
		uc.logger.Error("GetCalendar: failed to list availability for service id=%d: %v", service.ID, err)
		return nil, fmt.Errorf("%w: failed to list availability: %v", ErrInternal, err)
	}

	var pending []*domain.BookingRequest
	if req.ViewerID > 0 {
		pending, err = uc.requestRepo.List(ctx, domain.RequestFilter{
			ServiceID:   ptr.Ptr(service.ID),
			RequesterID: ptr.Ptr(req.ViewerID),
			Statuses:    []domain.RequestStatus{domain.RequestPending},
			From:        &from,
			To:          &to,
		})
		if err != nil {
			uc.logger.Error("GetCalendar: failed to list pending requests of user=%d: %v", req.ViewerID, err)
			return nil, fmt.Errorf("%w: failed to list requests: %v", ErrInternal, err)
		}
	}

	statuses := availability.Resolve(service, req.ViewerID, schedule.Dates(from, to), records, pending)

	days := make([]Day, 0, len(statuses))
	for d := range schedule.Dates(from, to) {
		status := statuses[d]
		days = append(days, Day{
			Date:     d,
			Weekday:  d.Weekday().String(),
			Status:   status,
			Bookable: status.Bookable(),
		})
	}

	uc.logger.Info("GetCalendar: service id=%d, %s..%s, %d days", service.ID, from, to, len(days))

	return &Response{
		ServiceID: service.ID,
		From:      from,
		To:        to,
		Days:      days,
	}, nil
}

func (uc *UseCase) resolveRange(from, to types.Date) (types.Date, types.Date, error) {
	if from.IsZero() {
		from = types.NewDate(uc.timeProvider.Now())
	}
	if to.IsZero() {
		to = from.AddDays(DefaultSpanDays)
	}
	if !from.IsValid() || !to.IsValid() {
		return from, to, fmt.Errorf("%w: malformed date", ErrInvalidInput)
	}
	if to.Before(from) {
		return from, to, fmt.Errorf("%w: to %s is before from %s", ErrInvalidRange, to, from)
	}
	if days := from.DaysUntil(to) + 1; days > uc.maxDays {
		return from, to, fmt.Errorf("%w: %d days requested, at most %d allowed", ErrInvalidRange, days, uc.maxDays)
	}
	return from, to, nil
}
