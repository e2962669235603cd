package schedule

import (
	"fmt"
	"iter"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
	"github.com/m04kA/SMC-MarketplaceBooking/pkg/types"
)

// Domain календарная область услуги: все даты окна [start, end] и даты-исключения.
// Последовательности ленивые и могут обходиться повторно.
type Domain struct {
	start      types.Date
	end        types.Date
	exceptions map[types.Date]struct{}
}

// Expand строит календарную область окна услуги.
// Интервал не влияет на то, какие дни активны: кандидатами являются все дни окна,
// кроме exceptions. maxWindowDays <= 0 означает domain.DefaultMaxWindowDays.
func Expand(start, end types.Date, interval domain.Interval, exceptions []types.Date, maxWindowDays int) (*Domain, error) {
	if !interval.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidInterval, interval)
	}
	if !start.IsValid() || !end.IsValid() {
		return nil, fmt.Errorf("%w: start=%s end=%s", ErrInvalidRange, start, end)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end %s is before start %s", ErrInvalidRange, end, start)
	}

	if maxWindowDays <= 0 {
		maxWindowDays = domain.DefaultMaxWindowDays
	}
	if days := start.DaysUntil(end) + 1; days > maxWindowDays {
		return nil, fmt.Errorf("%w: window of %d days exceeds maximum of %d", ErrInvalidRange, days, maxWindowDays)
	}

	set := make(map[types.Date]struct{}, len(exceptions))
	for _, e := range exceptions {
		if e.IsValid() {
			set[e] = struct{}{}
		}
	}

	return &Domain{start: start, end: end, exceptions: set}, nil
}

// EndDateFor выводит конец окна из начала и интервала:
// weekly +7 дней, monthly +1 месяц, yearly +1 год.
func EndDateFor(start types.Date, interval domain.Interval) (types.Date, error) {
	if !start.IsValid() {
		return types.Date{}, fmt.Errorf("%w: invalid start %s", ErrInvalidRange, start)
	}
	switch interval {
	case domain.IntervalWeekly:
		return start.AddDays(7), nil
	case domain.IntervalMonthly:
		return start.AddMonths(1), nil
	case domain.IntervalYearly:
		return start.AddYears(1), nil
	default:
		return types.Date{}, fmt.Errorf("%w: %q", ErrInvalidInterval, interval)
	}
}

// Start первая дата окна
func (d *Domain) Start() types.Date { return d.start }

// End последняя дата окна
func (d *Domain) End() types.Date { return d.end }

// Len количество дат в окне
func (d *Domain) Len() int {
	return d.start.DaysUntil(d.end) + 1
}

// Contains возвращает true, если дата в окне
func (d *Domain) Contains(date types.Date) bool {
	return !date.Before(d.start) && !date.After(d.end)
}

// IsException возвращает true, если дата объявлена исключением
func (d *Domain) IsException(date types.Date) bool {
	_, ok := d.exceptions[date]
	return ok
}

// All перебирает все даты окна по возрастанию
func (d *Domain) All() iter.Seq[types.Date] {
	return d.Between(d.start, d.end)
}

// Candidates перебирает даты окна, кроме исключений
func (d *Domain) Candidates() iter.Seq[types.Date] {
	return func(yield func(types.Date) bool) {
		for date := range d.All() {
			if d.IsException(date) {
				continue
			}
			if !yield(date) {
				return
			}
		}
	}
}

// Between перебирает даты [from, to] без ограничения окном.
// Используется календарем, которому нужны и даты вне окна (они будут disabled).
func (d *Domain) Between(from, to types.Date) iter.Seq[types.Date] {
	return Dates(from, to)
}

// Dates перебирает даты [from, to] по возрастанию. Пустая последовательность, если to < from.
func Dates(from, to types.Date) iter.Seq[types.Date] {
	return func(yield func(types.Date) bool) {
		if !from.IsValid() || !to.IsValid() {
			return
		}
		for date := from; !date.After(to); date = date.AddDays(1) {
			if !yield(date) {
				return
			}
		}
	}
}
