package models

import (
	"time"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
	"github.com/m04kA/SMC-MarketplaceBooking/pkg/types"
)

// Request модели

// CreateServiceRequest запрос на создание услуги
type CreateServiceRequest struct {
	OwnerID        int64        `json:"-"` // из X-User-ID, не из тела
	Kind           string       `json:"kind"`
	Title          string       `json:"title"`
	PricePerHour   float64      `json:"pricePerHour"`
	StartDate      types.Date   `json:"startDate"`
	EndDate        *types.Date  `json:"endDate,omitempty"` // nil = выводится из interval
	Interval       string       `json:"interval"`
	ExceptionDates []types.Date `json:"exceptionDates,omitempty"`
}

// ToDomain конвертирует запрос в domain модель (без конца окна)
func (r *CreateServiceRequest) ToDomain() *domain.Service {
	return &domain.Service{
		OwnerID:        r.OwnerID,
		Kind:           domain.ServiceKind(r.Kind),
		Title:          r.Title,
		PricePerHour:   r.PricePerHour,
		StartDate:      r.StartDate,
		Interval:       domain.Interval(r.Interval),
		ExceptionDates: r.ExceptionDates,
	}
}

// Response модели

// ServiceResponse ответ с данными услуги
type ServiceResponse struct {
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

// ServiceListResponse ответ со списком услуг
type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
}

// Методы конвертации

// FromDomainService конвертирует domain модель в DTO
func FromDomainService(s *domain.Service) *ServiceResponse {
	if s == nil {
		return nil
	}

	exceptions := s.ExceptionDates
	if exceptions == nil {
		exceptions = []types.Date{}
	}

	return &ServiceResponse{
		ID:             s.ID,
		OwnerID:        s.OwnerID,
		Kind:           string(s.Kind),
		Title:          s.Title,
		PricePerHour:   s.PricePerHour,
		StartDate:      s.StartDate,
		EndDate:        s.EndDate,
		Interval:       string(s.Interval),
		ExceptionDates: exceptions,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

// FromDomainServiceList конвертирует список domain моделей в DTO
func FromDomainServiceList(services []*domain.Service) *ServiceListResponse {
	result := make([]ServiceResponse, 0, len(services))
	for _, s := range services {
		result = append(result, *FromDomainService(s))
	}
	return &ServiceListResponse{Services: result}
}
