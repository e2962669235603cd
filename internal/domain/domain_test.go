package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MarketplaceBooking/pkg/types"
)

func TestRequestStatus_Transition(t *testing.T) {
	tests := []struct {
		name    string
		from    RequestStatus
		to      RequestStatus
		allowed bool
	}{
		{"pending to confirmed", RequestPending, RequestConfirmed, true},
		{"pending to rejected", RequestPending, RequestRejected, true},
		{"pending to pending", RequestPending, RequestPending, false},
		{"confirmed to rejected", RequestConfirmed, RequestRejected, false},
		{"confirmed to confirmed", RequestConfirmed, RequestConfirmed, false},
		{"rejected to confirmed", RequestRejected, RequestConfirmed, false},
		{"unknown source", RequestStatus("cancelled"), RequestConfirmed, false},
		{"unknown target", RequestPending, RequestStatus("cancelled"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.from.Transition(tt.to)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrTransitionNotAllowed)
			}
		})
	}
}

func TestEffectsOf(t *testing.T) {
	assert.Equal(t, Effects{ReserveSlot: true, UnlockPayment: true}, EffectsOf(RequestConfirmed))
	assert.Equal(t, Effects{}, EffectsOf(RequestRejected))
	assert.Equal(t, Effects{}, EffectsOf(RequestPending))
}

func TestQuote(t *testing.T) {
	t.Run("40 per hour for 10:00-13:00", func(t *testing.T) {
		hours, err := HoursBetween("10:00", "13:00")
		require.NoError(t, err)
		q := QuoteFor(40, hours)

		assert.Equal(t, 3, q.Hours)
		assert.Equal(t, 120.0, q.TotalPrice)
		assert.Equal(t, 30.0, q.DepositAmount)
	})

	t.Run("deposit rounded to cents", func(t *testing.T) {
		for _, price := range []float64{0, 0.01, 12.34, 33.33, 99.99, 1234.57} {
			for hours := 1; hours <= 12; hours++ {
				q := QuoteFor(price, hours)
				assert.Equal(t, RoundMoney(price*float64(hours)*DepositRate), q.DepositAmount)
			}
		}
	})

	t.Run("rounding of partial hours", func(t *testing.T) {
		hours, err := HoursBetween("10:00", "11:29")
		require.NoError(t, err)
		assert.Equal(t, 1, hours)

		hours, err = HoursBetween("10:00", "11:30")
		require.NoError(t, err)
		assert.Equal(t, 2, hours)
	})

	t.Run("empty range", func(t *testing.T) {
		_, err := HoursBetween("10:00", "10:00")
		assert.ErrorIs(t, err, ErrInvalidHours)

		_, err = HoursBetween("10:00", "10:20")
		assert.ErrorIs(t, err, ErrInvalidHours)

		_, err = HoursBetween("13:00", "10:00")
		assert.ErrorIs(t, err, ErrInvalidHours)
	})
}

func TestBookingRequest_Overlaps(t *testing.T) {
	date := types.MustParseDate("2024-06-10")
	r := &BookingRequest{BookingDate: date, StartTime: "10:00", EndTime: "13:00"}

	assert.True(t, r.Overlaps(date, "10:00", "13:00"))
	assert.True(t, r.Overlaps(date, "12:00", "14:00"))
	assert.True(t, r.Overlaps(date, "09:00", "10:30"))
	assert.False(t, r.Overlaps(date, "13:00", "15:00"))
	assert.False(t, r.Overlaps(date, "08:00", "10:00"))
	assert.False(t, r.Overlaps(date.AddDays(1), "10:00", "13:00"))
}

func TestService_Window(t *testing.T) {
	s := &Service{
		StartDate:      types.MustParseDate("2024-06-01"),
		EndDate:        types.MustParseDate("2024-06-30"),
		ExceptionDates: []types.Date{types.MustParseDate("2024-06-15")},
	}

	assert.True(t, s.InWindow(types.MustParseDate("2024-06-01")))
	assert.True(t, s.InWindow(types.MustParseDate("2024-06-30")))
	assert.False(t, s.InWindow(types.MustParseDate("2024-07-01")))
	assert.False(t, s.InWindow(types.MustParseDate("2024-05-31")))
	assert.True(t, s.IsExceptionDate(types.MustParseDate("2024-06-15")))
	assert.False(t, s.IsExceptionDate(types.MustParseDate("2024-06-16")))
}

func TestDateStatus_Bookable(t *testing.T) {
	assert.True(t, DateAvailable.Bookable())
	for _, s := range []DateStatus{DateReserved, DateException, DatePending, DateDisabled} {
		assert.False(t, s.Bookable(), s)
	}
}
