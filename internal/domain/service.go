package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-MarketplaceBooking/pkg/types"
)

// ServiceKind вид услуги
type ServiceKind string

const (
	KindPersonal ServiceKind = "personal" // выездная бригада
	KindLocal    ServiceKind = "local"    // площадка
	KindMaterial ServiceKind = "material" // аренда материалов
)

// Valid проверяет, что вид услуги известен
func (k ServiceKind) Valid() bool {
	switch k {
	case KindPersonal, KindLocal, KindMaterial:
		return true
	default:
		return false
	}
}

// Interval интервал, из которого выводится конец окна услуги
type Interval string

const (
	IntervalWeekly  Interval = "weekly"
	IntervalMonthly Interval = "monthly"
	IntervalYearly  Interval = "yearly"
)

// Valid проверяет, что интервал известен
func (i Interval) Valid() bool {
	switch i {
	case IntervalWeekly, IntervalMonthly, IntervalYearly:
		return true
	default:
		return false
	}
}

// Service бронируемая услуга провайдера
type Service struct {
	ID             int64
	OwnerID        int64
	Kind           ServiceKind
	Title          string
	PricePerHour   float64
	StartDate      types.Date
	EndDate        types.Date
	Interval       Interval
	ExceptionDates []types.Date

	CreatedAt time.Time
	UpdatedAt time.Time
}

// InWindow возвращает true, если дата попадает в окно [StartDate, EndDate]
func (s *Service) InWindow(d types.Date) bool {
	return !d.Before(s.StartDate) && !d.After(s.EndDate)
}

// IsExceptionDate возвращает true, если дата объявлена исключением при создании услуги
func (s *Service) IsExceptionDate(d types.Date) bool {
	for _, e := range s.ExceptionDates {
		if e == d {
			return true
		}
	}
	return false
}

// IsOwner проверяет владельца услуги
func (s *Service) IsOwner(userID int64) bool {
	return s.OwnerID == userID
}

// Validate проверяет поля услуги, не зависящие от окна
func (s *Service) Validate() error {
	switch {
	case s.OwnerID <= 0:
		return fmt.Errorf("owner id must be positive")
	case !s.Kind.Valid():
		return fmt.Errorf("unknown service kind %q", s.Kind)
	case s.Title == "" || len(s.Title) > MaxTitleLength:
		return fmt.Errorf("title must be 1..%d characters", MaxTitleLength)
	case s.PricePerHour < 0 || s.PricePerHour > MaxPricePerHour:
		return fmt.Errorf("price per hour must be in [0, %d]", MaxPricePerHour)
	}
	return nil
}
