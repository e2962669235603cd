package domain

import (
	"time"

	"github.com/m04kA/SMC-MarketplaceBooking/pkg/types"
)

// AvailabilityStatus хранимый статус даты услуги
type AvailabilityStatus string

const (
	AvailabilityAvailable AvailabilityStatus = "available"
	AvailabilityReserved  AvailabilityStatus = "reserved"
	AvailabilityException AvailabilityStatus = "exception"
)

// Valid проверяет, что статус известен
func (s AvailabilityStatus) Valid() bool {
	switch s {
	case AvailabilityAvailable, AvailabilityReserved, AvailabilityException:
		return true
	default:
		return false
	}
}

// AvailabilityRecord запись о дате услуги.
// На пару (услуга, дата) приходится не более одной записи не-exception.
// Записи не удаляются.
type AvailabilityRecord struct {
	ID        int64
	ServiceID int64
	Date      types.Date
	Status    AvailabilityStatus
	StartTime *types.TimeString
	EndTime   *types.TimeString
	Weekday   string // производное, только для отображения

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewAvailabilityRecord создает запись с заполненным днем недели
func NewAvailabilityRecord(serviceID int64, date types.Date, status AvailabilityStatus) *AvailabilityRecord {
	return &AvailabilityRecord{
		ServiceID: serviceID,
		Date:      date,
		Status:    status,
		Weekday:   date.Weekday().String(),
	}
}

// DateStatus производный статус даты для конкретного зрителя. Никогда не хранится.
type DateStatus string

const (
	DateAvailable DateStatus = "available"
	DateReserved  DateStatus = "reserved"
	DateException DateStatus = "exception"
	DatePending   DateStatus = "pending"
	DateDisabled  DateStatus = "disabled"
)

// Bookable возвращает true, если на дату можно подать заявку
func (s DateStatus) Bookable() bool {
	switch s {
	case DateAvailable:
		return true
	case DateReserved, DateException, DatePending, DateDisabled:
		return false
	default:
		return false
	}
}
