package services

import (
	"context"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
)

// ServiceRepository источник истины для услуг
type ServiceRepository interface {
	Create(ctx context.Context, service *domain.Service) (*domain.Service, error)
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Service, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
