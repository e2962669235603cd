package submit_request

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/availability"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
	availabilityRepo "github.com/m04kA/SMC-MarketplaceBooking/internal/infra/storage/availability"
	requestRepo "github.com/m04kA/SMC-MarketplaceBooking/internal/infra/storage/request"
	servicesRepo "github.com/m04kA/SMC-MarketplaceBooking/internal/infra/storage/services"
	"github.com/m04kA/SMC-MarketplaceBooking/pkg/pgerr"
)

// DefaultTimeout таймаут создания заявки по умолчанию
const DefaultTimeout = 5 * time.Second

// Исходы для метрик
const (
	outcomeCreated     = "created"
	outcomeInvalid     = "invalid"
	outcomeUnavailable = "unavailable"
	outcomeTimeout     = "timeout"
	outcomeFailed      = "failed"
)

// UseCase use case создания заявки на бронирование
type UseCase struct {
	serviceRepo      ServiceRepository
	availabilityRepo AvailabilityRepository
	requestRepo      RequestRepository
	paymentClient    PaymentClient
	txManager        TransactionManager
	metrics          Metrics
	logger           Logger
	timeout          time.Duration
	newCorrelationID func() string
}

// NewUseCase создает новый экземпляр use case. timeout <= 0 означает DefaultTimeout.
func NewUseCase(
	serviceRepo ServiceRepository,
	availabilityRepo AvailabilityRepository,
	requestRepo RequestRepository,
	paymentClient PaymentClient,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
	timeout time.Duration,
) *UseCase {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &UseCase{
		serviceRepo:      serviceRepo,
		availabilityRepo: availabilityRepo,
		requestRepo:      requestRepo,
		paymentClient:    paymentClient,
		txManager:        txManager,
		metrics:          metrics,
		logger:           logger,
		timeout:          timeout,
		newCorrelationID: uuid.NewString,
	}
}

// Execute создает заявку в статусе pending.
// Проверка свободного слота и запись трех связанных строк идут в одной сериализуемой транзакции.
// Повторов нет: конфликт возвращается как ErrSlotUnavailable.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация без обращения к хранилищу
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("SubmitRequest: validation failed: %v", err)
		uc.metrics.IncBookingRequest(outcomeInvalid)
		return nil, err
	}

	uc.logger.Info("SubmitRequest: requester=%d, service=%d, date=%s, time=%s-%s",
		req.RequesterID, req.ServiceID, req.Date, req.StartTime, req.EndTime)

	hours, err := validateTimeRange(req)
	if err != nil {
		uc.logger.Warn("SubmitRequest: %v", err)
		uc.metrics.IncBookingRequest(outcomeInvalid)
		return nil, err
	}

	opCtx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	created, err := uc.submit(opCtx, req, hours)
	if err != nil {
		err = uc.classify(opCtx, err)
		uc.metrics.IncBookingRequest(outcomeOf(err))
		return nil, err
	}

	uc.metrics.IncBookingRequest(outcomeCreated)
	uc.logger.Info("SubmitRequest: created request id=%d, total=%.2f, deposit=%.2f, correlation_id=%s",
		created.ID, created.TotalPrice, created.DepositAmount, created.PaymentCorrelationID)

	resp := toResponse(created)

	// 2. Передача депозита платежному провайдеру уже после фиксации
	deposit, err := uc.paymentClient.RequestDeposit(ctx, created.PaymentCorrelationID, created.DepositAmount)
	if err != nil {
		uc.metrics.IncPaymentHandoff("deposit", "error")
		uc.logger.Error("SubmitRequest: payment handoff failed for request id=%d, correlation_id=%s, request stays pending: %v",
			created.ID, created.PaymentCorrelationID, err)
		return resp, nil
	}

	uc.metrics.IncPaymentHandoff("deposit", "ok")
	resp.PaymentToken = &deposit.Token
	if deposit.RedirectURL != "" {
		resp.PaymentRedirectURL = &deposit.RedirectURL
	}

	return resp, nil
}

func (uc *UseCase) submit(ctx context.Context, req *Request, hours int) (*domain.BookingRequest, error) {
	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, servicesRepo.ErrServiceNotFound) {
			uc.logger.Warn("SubmitRequest: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("get service: %w", err)
	}

	quote := domain.QuoteFor(service.PricePerHour, hours)

	var result *domain.BookingRequest

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3. Свежее чтение внутри транзакции: дата должна быть available для заявителя
		records, err := uc.availabilityRepo.ListByServiceAndRange(txCtx, service.ID, req.Date, req.Date)
		if err != nil {
			return fmt.Errorf("list availability: %w", err)
		}

		ownPending, err := uc.requestRepo.List(txCtx, domain.RequestFilter{
			ServiceID:   &service.ID,
			RequesterID: &req.RequesterID,
			Statuses:    []domain.RequestStatus{domain.RequestPending},
			From:        &req.Date,
			To:          &req.Date,
		})
		if err != nil {
			return fmt.Errorf("list own pending requests: %w", err)
		}

		status := availability.ResolveDate(service, req.RequesterID, req.Date, records, ownPending)
		if !status.Bookable() {
			uc.logger.Warn("SubmitRequest: date %s of service id=%d is %s", req.Date, service.ID, status)
			return fmt.Errorf("%w: date is %s", ErrSlotUnavailable, status)
		}

		// 4. Запись о дате создается при отсутствии и блокируется до конца транзакции
		record, err := uc.availabilityRepo.EnsureForUpdate(txCtx, service.ID, req.Date)
		if err != nil {
			return fmt.Errorf("ensure availability record: %w", err)
		}
		if record.Status != domain.AvailabilityAvailable {
			return fmt.Errorf("%w: record is %s", ErrSlotUnavailable, record.Status)
		}

		// 5. Никаких активных заявок, пересекающихся по часам
		active, err := uc.requestRepo.List(txCtx, domain.RequestFilter{
			ServiceID: &service.ID,
			Statuses:  domain.ActiveRequestStatuses,
			From:      &req.Date,
			To:        &req.Date,
		})
		if err != nil {
			return fmt.Errorf("list active requests: %w", err)
		}
		for _, other := range active {
			if other.Overlaps(req.Date, req.StartTime, req.EndTime) {
				uc.logger.Warn("SubmitRequest: %s-%s on %s overlaps request id=%d",
					req.StartTime, req.EndTime, req.Date, other.ID)
				return fmt.Errorf("%w: overlaps an active request", ErrSlotUnavailable)
			}
		}

		// 6. Заявка и связь заявителя со слотом
		created, err := uc.requestRepo.Create(txCtx, &domain.BookingRequest{
			ServiceID:            service.ID,
			RequesterID:          req.RequesterID,
			AvailabilityID:       record.ID,
			BookingDate:          req.Date,
			StartTime:            req.StartTime,
			EndTime:              req.EndTime,
			Hours:                quote.Hours,
			TotalPrice:           quote.TotalPrice,
			DepositAmount:        quote.DepositAmount,
			Status:               domain.RequestPending,
			PaymentCorrelationID: uc.newCorrelationID(),
		})
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}

		if _, err := uc.requestRepo.CreateRequester(txCtx, &domain.SlotRequester{
			AvailabilityID: record.ID,
			RequestID:      created.ID,
			RequesterID:    req.RequesterID,
			Status:         domain.RequestPending,
		}); err != nil {
			return fmt.Errorf("create slot requester: %w", err)
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// classify приводит ошибку к таксономии use case
func (uc *UseCase) classify(opCtx context.Context, err error) error {
	switch {
	case errors.Is(err, ErrServiceNotFound), errors.Is(err, ErrSlotUnavailable):
		return err
	case errors.Is(err, requestRepo.ErrSlotConflict),
		errors.Is(err, availabilityRepo.ErrConflict),
		pgerr.IsConflict(err):
		uc.logger.Warn("SubmitRequest: slot taken concurrently: %v", err)
		return fmt.Errorf("%w: taken by a concurrent request", ErrSlotUnavailable)
	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled),
		opCtx.Err() != nil:
		uc.logger.Warn("SubmitRequest: aborted after %s: %v", uc.timeout, err)
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	default:
		uc.logger.Error("SubmitRequest: storage failure: %v", err)
		return fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}
}

func outcomeOf(err error) string {
	switch {
	case errors.Is(err, ErrSlotUnavailable):
		return outcomeUnavailable
	case errors.Is(err, ErrServiceNotFound):
		return outcomeInvalid
	case errors.Is(err, ErrTimeout):
		return outcomeTimeout
	default:
		return outcomeFailed
	}
}

func toResponse(r *domain.BookingRequest) *Response {
	return &Response{
		ID:                   r.ID,
		ServiceID:            r.ServiceID,
		RequesterID:          r.RequesterID,
		AvailabilityID:       r.AvailabilityID,
		Date:                 r.BookingDate,
		StartTime:            r.StartTime,
		EndTime:              r.EndTime,
		Hours:                r.Hours,
		TotalPrice:           r.TotalPrice,
		DepositAmount:        r.DepositAmount,
		Status:               string(r.Status),
		PaymentCorrelationID: r.PaymentCorrelationID,
		CreatedAt:            r.CreatedAt,
	}
}
