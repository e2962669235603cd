package submit_request

import (
	"time"

	"github.com/m04kA/SMC-MarketplaceBooking/pkg/types"
)

// Request модель запроса на создание заявки
type Request struct {
	ServiceID   int64            // ID услуги
	RequesterID int64            // ID заявителя (из аутентификации, не из тела запроса)
	Date        types.Date       // Дата бронирования
	StartTime   types.TimeString // Начало, например "10:00"
	EndTime     types.TimeString // Конец, строго позже начала
}

// Response модель ответа с созданной заявкой
type Response struct {
	ID             int64
	ServiceID      int64
	RequesterID    int64
	AvailabilityID int64
	Date           types.Date
	StartTime      types.TimeString
	EndTime        types.TimeString
	Hours          int
	TotalPrice     float64
	DepositAmount  float64
	Status         string

	PaymentCorrelationID string
	PaymentToken         *string // nil, если платежный провайдер недоступен
	PaymentRedirectURL   *string

	CreatedAt time.Time
}
