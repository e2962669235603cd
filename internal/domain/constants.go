package domain

// Значения по умолчанию
const (
	// DefaultMaxWindowDays максимальная длина окна услуги (~2 года)
	DefaultMaxWindowDays = 731

	// DefaultMaxCalendarDays максимальный диапазон календаря за один запрос
	DefaultMaxCalendarDays = 62
)

// Ограничения валидации
const (
	MaxTitleLength  = 200
	MaxPricePerHour = 1_000_000
)

// Форматы
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
