package submit_request

import (
	"time"

	submitRequest "github.com/m04kA/SMC-MarketplaceBooking/internal/usecase/submit_request"
	"github.com/m04kA/SMC-MarketplaceBooking/pkg/types"
)

// SubmitRequestBody HTTP request model. Заявитель берется из X-User-ID, услуга из пути.
type SubmitRequestBody struct {
	Date      string `json:"date"`      // "2024-06-10"
	StartTime string `json:"startTime"` // "10:00"
	EndTime   string `json:"endTime"`   // "13:00"
}

// BookingRequestResponse HTTP response model
type BookingRequestResponse struct {
	ID                   int64   `json:"id"`
	ServiceID            int64   `json:"serviceId"`
	RequesterID          int64   `json:"requesterId"`
	AvailabilityID       int64   `json:"availabilityId"`
	Date                 string  `json:"date"`
	StartTime            string  `json:"startTime"`
	EndTime              string  `json:"endTime"`
	Hours                int     `json:"hours"`
	TotalPrice           float64 `json:"totalPrice"`
	DepositAmount        float64 `json:"depositAmount"`
	Status               string  `json:"status"`
	PaymentCorrelationID string  `json:"paymentCorrelationId"`
	PaymentToken         *string `json:"paymentToken,omitempty"`
	PaymentRedirectURL   *string `json:"paymentRedirectUrl,omitempty"`
	CreatedAt            string  `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case.
// Формат времени проверяет use case.
func (b *SubmitRequestBody) ToUseCaseRequest(serviceID, requesterID int64) (*submitRequest.Request, error) {
	date, err := types.ParseDate(b.Date)
	if err != nil {
		return nil, err
	}

	return &submitRequest.Request{
		ServiceID:   serviceID,
		RequesterID: requesterID,
		Date:        date,
		StartTime:   types.TimeString(b.StartTime),
		EndTime:     types.TimeString(b.EndTime),
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *submitRequest.Response) *BookingRequestResponse {
	return &BookingRequestResponse{
		ID:                   resp.ID,
		ServiceID:            resp.ServiceID,
		RequesterID:          resp.RequesterID,
		AvailabilityID:       resp.AvailabilityID,
		Date:                 resp.Date.String(),
		StartTime:            resp.StartTime.String(),
		EndTime:              resp.EndTime.String(),
		Hours:                resp.Hours,
		TotalPrice:           resp.TotalPrice,
		DepositAmount:        resp.DepositAmount,
		Status:               resp.Status,
		PaymentCorrelationID: resp.PaymentCorrelationID,
		PaymentToken:         resp.PaymentToken,
		PaymentRedirectURL:   resp.PaymentRedirectURL,
		CreatedAt:            resp.CreatedAt.Format(time.RFC3339),
	}
}
