package review_request

import (
	"time"

	reviewRequest "github.com/m04kA/SMC-MarketplaceBooking/internal/usecase/review_request"
)

// DecisionResponse HTTP response model
type DecisionResponse struct {
	ID            int64   `json:"id"`
	ServiceID     int64   `json:"serviceId"`
	RequesterID   int64   `json:"requesterId"`
	Date          string  `json:"date"`
	StartTime     string  `json:"startTime"`
	EndTime       string  `json:"endTime"`
	Status        string  `json:"status"`
	SlotReserved  bool    `json:"slotReserved"`
	CaptureAmount float64 `json:"captureAmount,omitempty"`
	ResolvedAt    *string `json:"resolvedAt,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *reviewRequest.Response) *DecisionResponse {
	out := &DecisionResponse{
		ID:            resp.ID,
		ServiceID:     resp.ServiceID,
		RequesterID:   resp.RequesterID,
		Date:          resp.Date.String(),
		StartTime:     resp.StartTime.String(),
		EndTime:       resp.EndTime.String(),
		Status:        resp.Status,
		SlotReserved:  resp.SlotReserved,
		CaptureAmount: resp.CaptureAmount,
	}
	if resp.ResolvedAt != nil {
		s := resp.ResolvedAt.Format(time.RFC3339)
		out.ResolvedAt = &s
	}
	return out
}
