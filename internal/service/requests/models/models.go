package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
	"github.com/m04kA/SMC-MarketplaceBooking/pkg/types"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid request status")
)

// Request модели

// GetUserRequestsRequest запрос на получение заявок пользователя
type GetUserRequestsRequest struct {
	UserID int64   `json:"userId"`
	Status *string `json:"status,omitempty"`
}

// GetServiceRequestsRequest запрос на получение входящих заявок услуги
type GetServiceRequestsRequest struct {
	UserID    int64       `json:"userId"` // должен быть владельцем услуги
	ServiceID int64       `json:"serviceId"`
	Status    *string     `json:"status,omitempty"`
	From      *types.Date `json:"from,omitempty"`
	To        *types.Date `json:"to,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetServiceRequestsRequest) ToDomainFilter() (domain.RequestFilter, error) {
	filter := domain.RequestFilter{
		ServiceID: &r.ServiceID,
		From:      r.From,
		To:        r.To,
	}

	if r.Status != nil {
		status, err := ToDomainRequestStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Statuses = []domain.RequestStatus{status}
	}

	if r.From != nil && r.To != nil && r.To.Before(*r.From) {
		return filter, fmt.Errorf("to %s is before from %s", r.To, r.From)
	}

	return filter, nil
}

// Response модели

// BookingRequestResponse ответ с данными заявки
type BookingRequestResponse struct {
	ID                   int64            `json:"id"`
	ServiceID            int64            `json:"serviceId"`
	RequesterID          int64            `json:"requesterId"`
	AvailabilityID       int64            `json:"availabilityId"`
	BookingDate          types.Date       `json:"bookingDate"` // "2024-06-10"
	StartTime            types.TimeString `json:"startTime"`   // "10:00"
	EndTime              types.TimeString `json:"endTime"`
	Hours                int              `json:"hours"`
	TotalPrice           float64          `json:"totalPrice"`
	DepositAmount        float64          `json:"depositAmount"`
	Status               string           `json:"status"`
	PaymentCorrelationID string           `json:"paymentCorrelationId"`
	ResolvedAt           *time.Time       `json:"resolvedAt,omitempty"`
	CreatedAt            time.Time        `json:"createdAt"`
	UpdatedAt            time.Time        `json:"updatedAt"`
}

// BookingRequestListResponse ответ со списком заявок
type BookingRequestListResponse struct {
	Requests []BookingRequestResponse `json:"requests"`
}

// Методы конвертации

// FromDomainRequest конвертирует domain модель в DTO
func FromDomainRequest(r *domain.BookingRequest) *BookingRequestResponse {
	if r == nil {
		return nil
	}

	return &BookingRequestResponse{
		ID:                   r.ID,
		ServiceID:            r.ServiceID,
		RequesterID:          r.RequesterID,
		AvailabilityID:       r.AvailabilityID,
		BookingDate:          r.BookingDate,
		StartTime:            r.StartTime,
		EndTime:              r.EndTime,
		Hours:                r.Hours,
		TotalPrice:           r.TotalPrice,
		DepositAmount:        r.DepositAmount,
		Status:               string(r.Status),
		PaymentCorrelationID: r.PaymentCorrelationID,
		ResolvedAt:           r.ResolvedAt,
		CreatedAt:            r.CreatedAt,
		UpdatedAt:            r.UpdatedAt,
	}
}

// FromDomainRequestList конвертирует список domain моделей в DTO
func FromDomainRequestList(requests []*domain.BookingRequest) *BookingRequestListResponse {
	result := make([]BookingRequestResponse, 0, len(requests))
	for _, r := range requests {
		result = append(result, *FromDomainRequest(r))
	}
	return &BookingRequestListResponse{Requests: result}
}

// ToDomainRequestStatus конвертирует строку в статус заявки
func ToDomainRequestStatus(s string) (domain.RequestStatus, error) {
	status := domain.RequestStatus(s)
	if !status.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return status, nil
}
