package review_request

import (
	"context"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
	"github.com/m04kA/SMC-MarketplaceBooking/pkg/types"
)

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

// AvailabilityRepository интерфейс репозитория записей о датах
type AvailabilityRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.AvailabilityRecord, error)
	ListByServiceAndRange(ctx context.Context, serviceID int64, from, to types.Date) ([]*domain.AvailabilityRecord, error)
	MarkReserved(ctx context.Context, id int64, start, end types.TimeString) error
}

// RequestRepository интерфейс репозитория заявок
type RequestRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.BookingRequest, error)
	UpdateStatus(ctx context.Context, id int64, from, to domain.RequestStatus) error
	UpdateRequesterStatus(ctx context.Context, requestID int64, status domain.RequestStatus) error
}

// PaymentClient интерфейс клиента платежного провайдера
type PaymentClient interface {
	UnlockCapture(ctx context.Context, correlationID string, amount float64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics бизнес-метрики
type Metrics interface {
	IncRequestDecision(decision, outcome string)
	IncPaymentHandoff(operation, result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
