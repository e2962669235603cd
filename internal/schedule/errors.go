package schedule

import "errors"

var (
	// ErrInvalidRange возвращается, когда конец окна раньше начала или окно длиннее допустимого
	ErrInvalidRange = errors.New("schedule: invalid date range")

	// ErrInvalidInterval возвращается для интервала вне weekly/monthly/yearly
	ErrInvalidInterval = errors.New("schedule: invalid interval")
)
