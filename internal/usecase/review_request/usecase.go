package review_request

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
	availabilityRepo "github.com/m04kA/SMC-MarketplaceBooking/internal/infra/storage/availability"
	requestRepo "github.com/m04kA/SMC-MarketplaceBooking/internal/infra/storage/request"
	servicesRepo "github.com/m04kA/SMC-MarketplaceBooking/internal/infra/storage/services"
	"github.com/m04kA/SMC-MarketplaceBooking/pkg/pgerr"
)

// UseCase use case решения провайдера по заявке: confirm или reject
type UseCase struct {
	serviceRepo      ServiceRepository
	availabilityRepo AvailabilityRepository
	requestRepo      RequestRepository
	paymentClient    PaymentClient
	txManager        TransactionManager
	metrics          Metrics
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	serviceRepo ServiceRepository,
	availabilityRepo AvailabilityRepository,
	requestRepo RequestRepository,
	paymentClient PaymentClient,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		serviceRepo:      serviceRepo,
		availabilityRepo: availabilityRepo,
		requestRepo:      requestRepo,
		paymentClient:    paymentClient,
		txManager:        txManager,
		metrics:          metrics,
		logger:           logger,
	}
}

// Confirm подтверждает заявку: запись даты становится reserved, остаток разблокируется к списанию
func (uc *UseCase) Confirm(ctx context.Context, req *Request) (*Response, error) {
	return uc.resolve(ctx, req, domain.RequestConfirmed)
}

// Reject отклоняет заявку. Запись даты остается available.
func (uc *UseCase) Reject(ctx context.Context, req *Request) (*Response, error) {
	return uc.resolve(ctx, req, domain.RequestRejected)
}

func (uc *UseCase) resolve(ctx context.Context, req *Request, to domain.RequestStatus) (*Response, error) {
	decision := string(to)

	if req == nil || req.RequestID <= 0 || req.ActorID <= 0 {
		uc.metrics.IncRequestDecision(decision, "invalid")
		return nil, fmt.Errorf("%w: requestID and actorID must be positive", ErrInvalidInput)
	}

	uc.logger.Info("ReviewRequest: %s request id=%d by user=%d", decision, req.RequestID, req.ActorID)

	effects := domain.EffectsOf(to)

	var resolved *domain.BookingRequest

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Блокируем заявку
		current, err := uc.requestRepo.GetByID(txCtx, req.RequestID)
		if err != nil {
			if errors.Is(err, requestRepo.ErrRequestNotFound) {
				return ErrRequestNotFound
			}
			return fmt.Errorf("get request: %w", err)
		}

		// 2. Решение принимает только владелец услуги
		service, err := uc.serviceRepo.GetByID(txCtx, current.ServiceID)
		if err != nil {
			if errors.Is(err, servicesRepo.ErrServiceNotFound) {
				return fmt.Errorf("%w: service id=%d of request id=%d is missing", ErrStorageFailure, current.ServiceID, current.ID)
			}
			return fmt.Errorf("get service: %w", err)
		}
		if !service.IsOwner(req.ActorID) {
			uc.logger.Warn("ReviewRequest: user=%d is not the owner of service id=%d", req.ActorID, service.ID)
			return ErrNotAuthorized
		}

		// 3. Только pending -> confirmed | rejected
		if err := current.Status.Transition(to); err != nil {
			uc.logger.Warn("ReviewRequest: request id=%d is already %s", current.ID, current.Status)
			return fmt.Errorf("%w: status is %s", ErrAlreadyResolved, current.Status)
		}

		// 4. Подтверждение резервирует дату
		if effects.ReserveSlot {
			if err := uc.reserve(txCtx, current); err != nil {
				return err
			}
		}

		// 5. Условное обновление: если статус успели поменять, это повторное решение
		if err := uc.requestRepo.UpdateStatus(txCtx, current.ID, current.Status, to); err != nil {
			if errors.Is(err, requestRepo.ErrStatusConflict) {
				return fmt.Errorf("%w: status changed concurrently", ErrAlreadyResolved)
			}
			return fmt.Errorf("update request status: %w", err)
		}
		if err := uc.requestRepo.UpdateRequesterStatus(txCtx, current.ID, to); err != nil {
			return fmt.Errorf("update requester status: %w", err)
		}

		updated, err := uc.requestRepo.GetByID(txCtx, current.ID)
		if err != nil {
			return fmt.Errorf("reload request: %w", err)
		}
		resolved = updated
		return nil
	})
	if err != nil {
		err = uc.classify(err)
		uc.metrics.IncRequestDecision(decision, outcomeOf(err))
		return nil, err
	}

	uc.metrics.IncRequestDecision(decision, "ok")
	uc.logger.Info("ReviewRequest: request id=%d is %s", resolved.ID, resolved.Status)

	resp := &Response{
		ID:             resolved.ID,
		ServiceID:      resolved.ServiceID,
		RequesterID:    resolved.RequesterID,
		AvailabilityID: resolved.AvailabilityID,
		Date:           resolved.BookingDate,
		StartTime:      resolved.StartTime,
		EndTime:        resolved.EndTime,
		Status:         string(resolved.Status),
		SlotReserved:   effects.ReserveSlot,
		ResolvedAt:     resolved.ResolvedAt,
	}

	// 6. Разблокировка списания остатка после фиксации. Ошибка не откатывает решение.
	if effects.UnlockPayment {
		amount := domain.RoundMoney(resolved.TotalPrice - resolved.DepositAmount)
		resp.CaptureAmount = amount
		if err := uc.paymentClient.UnlockCapture(ctx, resolved.PaymentCorrelationID, amount); err != nil {
			uc.metrics.IncPaymentHandoff("unlock", "error")
			uc.logger.Error("ReviewRequest: unlock capture failed for request id=%d, correlation_id=%s: %v",
				resolved.ID, resolved.PaymentCorrelationID, err)
		} else {
			uc.metrics.IncPaymentHandoff("unlock", "ok")
		}
	}

	return resp, nil
}

// reserve переводит запись даты заявки в reserved, если дата не закрыта и еще свободна
func (uc *UseCase) reserve(ctx context.Context, req *domain.BookingRequest) error {
	record, err := uc.availabilityRepo.GetByID(ctx, req.AvailabilityID)
	if err != nil {
		return fmt.Errorf("get availability record: %w", err)
	}
	if record.Status != domain.AvailabilityAvailable {
		uc.logger.Warn("ReviewRequest: record id=%d for %s is already %s", record.ID, record.Date, record.Status)
		return fmt.Errorf("%w: date is %s", ErrSlotUnavailable, record.Status)
	}

	// exception записи на дату могли появиться после подачи заявки
	sameDay, err := uc.availabilityRepo.ListByServiceAndRange(ctx, req.ServiceID, req.BookingDate, req.BookingDate)
	if err != nil {
		return fmt.Errorf("list availability: %w", err)
	}
	for _, r := range sameDay {
		if r.Status == domain.AvailabilityException {
			return fmt.Errorf("%w: date is an exception", ErrSlotUnavailable)
		}
	}

	if err := uc.availabilityRepo.MarkReserved(ctx, record.ID, req.StartTime, req.EndTime); err != nil {
		if errors.Is(err, availabilityRepo.ErrRecordNotFound) {
			return fmt.Errorf("%w: record changed concurrently", ErrSlotUnavailable)
		}
		return fmt.Errorf("mark reserved: %w", err)
	}
	return nil
}

func (uc *UseCase) classify(err error) error {
	switch {
	case errors.Is(err, ErrRequestNotFound),
		errors.Is(err, ErrNotAuthorized),
		errors.Is(err, ErrAlreadyResolved),
		errors.Is(err, ErrSlotUnavailable),
		errors.Is(err, ErrStorageFailure):
		return err
	case errors.Is(err, requestRepo.ErrSlotConflict),
		errors.Is(err, availabilityRepo.ErrConflict),
		pgerr.IsConflict(err):
		uc.logger.Warn("ReviewRequest: concurrent decision: %v", err)
		return fmt.Errorf("%w: concurrent decision", ErrAlreadyResolved)
	default:
		uc.logger.Error("ReviewRequest: storage failure: %v", err)
		return fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}
}

func outcomeOf(err error) string {
	switch {
	case errors.Is(err, ErrRequestNotFound):
		return "not_found"
	case errors.Is(err, ErrNotAuthorized):
		return "forbidden"
	case errors.Is(err, ErrAlreadyResolved):
		return "already_resolved"
	case errors.Is(err, ErrSlotUnavailable):
		return "unavailable"
	default:
		return "failed"
	}
}
