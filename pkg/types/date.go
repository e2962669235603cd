package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

// DateLayout формат календарной даты
const DateLayout = "2006-01-02"

// ErrInvalidDate возвращается при некорректной дате
var ErrInvalidDate = errors.New("invalid date format")

// Date календарная дата без времени и часового пояса.
// Сравнима через ==, поэтому может использоваться как ключ map.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate берет календарную дату из t в его собственном часовом поясе
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate парсит дату в формате YYYY-MM-DD
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return NewDate(t), nil
}

// MustParseDate как ParseDate, но паникует при ошибке. Для тестов и констант.
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// IsZero возвращает true для нулевого значения
func (d Date) IsZero() bool {
	return d == Date{}
}

// IsValid проверяет, что дата существует в календаре (например, не 2024-02-30)
func (d Date) IsValid() bool {
	if d.IsZero() {
		return false
	}
	return NewDate(d.Time()) == d
}

// Time возвращает полночь даты в UTC
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// AddDays сдвигает дату на n дней
func (d Date) AddDays(n int) Date {
	return NewDate(d.Time().AddDate(0, 0, n))
}

// AddMonths сдвигает дату на n месяцев.
// День обрезается до последнего дня целевого месяца: 2024-01-31 + 1 месяц = 2024-02-29.
func (d Date) AddMonths(n int) Date {
	first := time.Date(d.Year, d.Month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, n, 0)
	day := d.Day
	if last := daysIn(first.Year(), first.Month()); day > last {
		day = last
	}
	return Date{Year: first.Year(), Month: first.Month(), Day: day}
}

// AddYears сдвигает дату на n лет (29 февраля превращается в 28 февраля)
func (d Date) AddYears(n int) Date {
	return d.AddMonths(12 * n)
}

// DaysUntil возвращает количество дней от d до other (отрицательное, если other раньше)
func (d Date) DaysUntil(other Date) int {
	return int(other.Time().Sub(d.Time()).Hours() / 24)
}

// Compare возвращает -1, 0 или 1
func (d Date) Compare(other Date) int {
	return d.Time().Compare(other.Time())
}

// Before возвращает true, если d строго раньше other
func (d Date) Before(other Date) bool {
	return d.Compare(other) < 0
}

// After возвращает true, если d строго позже other
func (d Date) After(other Date) bool {
	return d.Compare(other) > 0
}

// Weekday возвращает день недели
func (d Date) Weekday() time.Weekday {
	return d.Time().Weekday()
}

// String возвращает YYYY-MM-DD
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Time().Format(DateLayout)
}

// MarshalText реализует encoding.TextMarshaler (JSON и ключи map)
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText реализует encoding.TextUnmarshaler
func (d *Date) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Scan реализует sql.Scanner (lib/pq отдает DATE как time.Time)
func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*d = Date{}
		return nil
	case time.Time:
		*d = NewDate(v)
		return nil
	case []byte:
		return d.UnmarshalText(v)
	case string:
		return d.UnmarshalText([]byte(v))
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrInvalidDate, src)
	}
}

// Value реализует driver.Valuer
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.String(), nil
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
