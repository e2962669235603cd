package domain

import (
	"errors"
	"math"

	"github.com/m04kA/SMC-MarketplaceBooking/pkg/types"
)

// DepositRate доля депозита от итоговой стоимости, одинакова для всех видов услуг
const DepositRate = 0.25

// ErrInvalidHours возвращается, если диапазон часов пуст или некорректен
var ErrInvalidHours = errors.New("domain: invalid hour range")

// Quote расчет стоимости заявки
type Quote struct {
	Hours         int
	TotalPrice    float64
	DepositAmount float64
}

// HoursBetween возвращает длительность диапазона в целых часах (округление до ближайшего).
// end должен быть строго позже start.
func HoursBetween(start, end types.TimeString) (int, error) {
	startMin, err := start.Minutes()
	if err != nil {
		return 0, err
	}
	endMin, err := end.Minutes()
	if err != nil {
		return 0, err
	}
	if endMin <= startMin {
		return 0, ErrInvalidHours
	}
	hours := int(math.Round(float64(endMin-startMin) / 60))
	if hours <= 0 {
		return 0, ErrInvalidHours
	}
	return hours, nil
}

// QuoteFor считает стоимость и депозит
func QuoteFor(pricePerHour float64, hours int) Quote {
	total := pricePerHour * float64(hours)
	return Quote{
		Hours:         hours,
		TotalPrice:    RoundMoney(total),
		DepositAmount: RoundMoney(total * DepositRate),
	}
}

// RoundMoney округляет сумму до двух знаков
func RoundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
