package submit_request

import (
	"context"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/integrations/payment"
	"github.com/m04kA/SMC-MarketplaceBooking/pkg/types"
)

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

// AvailabilityRepository интерфейс репозитория записей о датах
type AvailabilityRepository interface {
	ListByServiceAndRange(ctx context.Context, serviceID int64, from, to types.Date) ([]*domain.AvailabilityRecord, error)
	EnsureForUpdate(ctx context.Context, serviceID int64, date types.Date) (*domain.AvailabilityRecord, error)
}

// RequestRepository интерфейс репозитория заявок
type RequestRepository interface {
	List(ctx context.Context, filter domain.RequestFilter) ([]*domain.BookingRequest, error)
	Create(ctx context.Context, req *domain.BookingRequest) (*domain.BookingRequest, error)
	CreateRequester(ctx context.Context, sr *domain.SlotRequester) (*domain.SlotRequester, error)
}

// PaymentClient интерфейс клиента платежного провайдера
type PaymentClient interface {
	RequestDeposit(ctx context.Context, correlationID string, amount float64) (*payment.DepositResponse, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics бизнес-метрики
type Metrics interface {
	IncBookingRequest(outcome string)
	IncPaymentHandoff(operation, result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
