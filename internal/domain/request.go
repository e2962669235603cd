package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-MarketplaceBooking/pkg/types"
)

// ErrTransitionNotAllowed возвращается при переходе из терминального статуса
var ErrTransitionNotAllowed = errors.New("domain: request status transition not allowed")

// RequestStatus статус заявки на бронирование
type RequestStatus string

const (
	RequestPending   RequestStatus = "pending"
	RequestConfirmed RequestStatus = "confirmed"
	RequestRejected  RequestStatus = "rejected"
)

// ActiveRequestStatuses статусы, занимающие слот
var ActiveRequestStatuses = []RequestStatus{RequestPending, RequestConfirmed}

// Valid проверяет, что статус известен
func (s RequestStatus) Valid() bool {
	switch s {
	case RequestPending, RequestConfirmed, RequestRejected:
		return true
	default:
		return false
	}
}

// IsTerminal возвращает true для разрешенных заявок
func (s RequestStatus) IsTerminal() bool {
	switch s {
	case RequestConfirmed, RequestRejected:
		return true
	case RequestPending:
		return false
	default:
		return false
	}
}

// IsActive возвращает true, если заявка занимает слот
func (s RequestStatus) IsActive() bool {
	switch s {
	case RequestPending, RequestConfirmed:
		return true
	case RequestRejected:
		return false
	default:
		return false
	}
}

// Transition проверяет переход s -> to.
// Допустимы только pending -> confirmed и pending -> rejected.
func (s RequestStatus) Transition(to RequestStatus) error {
	switch s {
	case RequestPending:
		switch to {
		case RequestConfirmed, RequestRejected:
			return nil
		case RequestPending:
			return fmt.Errorf("%w: %s -> %s", ErrTransitionNotAllowed, s, to)
		}
		return fmt.Errorf("%w: unknown target status %q", ErrTransitionNotAllowed, to)
	case RequestConfirmed, RequestRejected:
		return fmt.Errorf("%w: %s is terminal", ErrTransitionNotAllowed, s)
	default:
		return fmt.Errorf("%w: unknown status %q", ErrTransitionNotAllowed, s)
	}
}

// Effects побочные эффекты перехода в статус
type Effects struct {
	ReserveSlot   bool // запись даты становится reserved
	UnlockPayment bool // разблокировать списание остатка у платежного провайдера
}

// EffectsOf возвращает эффекты перехода в статус
func EffectsOf(status RequestStatus) Effects {
	switch status {
	case RequestConfirmed:
		return Effects{ReserveSlot: true, UnlockPayment: true}
	case RequestPending, RequestRejected:
		return Effects{}
	default:
		return Effects{}
	}
}

// BookingRequest заявка клиента на дату и диапазон часов услуги
type BookingRequest struct {
	ID                   int64
	ServiceID            int64
	RequesterID          int64
	AvailabilityID       int64
	BookingDate          types.Date
	StartTime            types.TimeString
	EndTime              types.TimeString
	Hours                int
	TotalPrice           float64
	DepositAmount        float64
	Status               RequestStatus
	PaymentCorrelationID string

	CreatedAt  time.Time
	UpdatedAt  time.Time
	ResolvedAt *time.Time
}

// Overlaps возвращает true, если диапазоны часов [start, end) пересекаются
func (r *BookingRequest) Overlaps(date types.Date, start, end types.TimeString) bool {
	if r.BookingDate != date {
		return false
	}
	return start.IsBefore(r.EndTime) && r.StartTime.IsBefore(end)
}

// SlotRequester связь заявителя с записью даты
type SlotRequester struct {
	ID             int64
	AvailabilityID int64
	RequestID      int64
	RequesterID    int64
	Status         RequestStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// RequestFilter фильтр списка заявок
type RequestFilter struct {
	ServiceID   *int64          // по услуге (опционально)
	RequesterID *int64          // по заявителю (опционально)
	Statuses    []RequestStatus // пусто - все статусы
	From        *types.Date     // начало периода включительно
	To          *types.Date     // конец периода включительно
}
