package review_request

import (
	"time"

	"github.com/m04kA/SMC-MarketplaceBooking/pkg/types"
)

// Request решение провайдера по заявке
type Request struct {
	RequestID int64 // ID заявки
	ActorID   int64 // ID пользователя, принимающего решение (должен быть владельцем услуги)
}

// Response заявка после решения
type Response struct {
	ID             int64
	ServiceID      int64
	RequesterID    int64
	AvailabilityID int64
	Date           types.Date
	StartTime      types.TimeString
	EndTime        types.TimeString
	Status         string
	SlotReserved   bool // запись даты переведена в reserved
	CaptureAmount  float64
	ResolvedAt     *time.Time
}
