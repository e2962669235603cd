package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeString(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		ts, err := NewTimeStringFromString("10:30")
		require.NoError(t, err)
		minutes, err := ts.Minutes()
		require.NoError(t, err)
		assert.Equal(t, 630, minutes)
	})

	t.Run("invalid format", func(t *testing.T) {
		for _, s := range []string{"", "9:00", "25:00", "10:60", "10-00", "10:00:00"} {
			_, err := NewTimeStringFromString(s)
			assert.ErrorIs(t, err, ErrInvalidTimeString, s)
		}
	})

	t.Run("add minutes", func(t *testing.T) {
		end, err := TimeString("10:00").AddMinutes(180)
		require.NoError(t, err)
		assert.Equal(t, TimeString("13:00"), end)

		_, err = TimeString("23:30").AddMinutes(60)
		assert.ErrorIs(t, err, ErrTimeOverflow)
	})

	t.Run("compare", func(t *testing.T) {
		assert.True(t, TimeString("09:00").IsBefore("10:00"))
		assert.False(t, TimeString("10:00").IsBefore("10:00"))
		assert.True(t, TimeString("11:00").IsAfter("10:59"))
		assert.False(t, TimeString("bad").IsAfter("10:00"))
	})

	t.Run("scan", func(t *testing.T) {
		var ts TimeString
		require.NoError(t, ts.Scan(time.Date(0, 1, 1, 14, 5, 0, 0, time.UTC)))
		assert.Equal(t, TimeString("14:05"), ts)

		require.NoError(t, ts.Scan([]byte("08:15:00")))
		assert.Equal(t, TimeString("08:15"), ts)

		assert.Error(t, ts.Scan(42))
	})
}

func TestDate(t *testing.T) {
	t.Run("parse and format", func(t *testing.T) {
		d, err := ParseDate("2024-06-15")
		require.NoError(t, err)
		assert.Equal(t, Date{Year: 2024, Month: time.June, Day: 15}, d)
		assert.Equal(t, "2024-06-15", d.String())
		assert.Equal(t, time.Saturday, d.Weekday())

		_, err = ParseDate("2024-02-30")
		assert.ErrorIs(t, err, ErrInvalidDate)
	})

	t.Run("arithmetic", func(t *testing.T) {
		d := MustParseDate("2024-06-30")
		assert.Equal(t, MustParseDate("2024-07-01"), d.AddDays(1))
		assert.Equal(t, MustParseDate("2024-02-29"), MustParseDate("2024-01-31").AddMonths(1))
		assert.Equal(t, MustParseDate("2025-02-28"), MustParseDate("2024-02-29").AddYears(1))
		assert.Equal(t, 29, MustParseDate("2024-06-01").DaysUntil(d))
	})

	t.Run("compare", func(t *testing.T) {
		a, b := MustParseDate("2024-06-01"), MustParseDate("2024-06-02")
		assert.True(t, a.Before(b))
		assert.True(t, b.After(a))
		assert.Equal(t, 0, a.Compare(a))
	})

	t.Run("validity", func(t *testing.T) {
		assert.False(t, Date{}.IsValid())
		assert.False(t, Date{Year: 2024, Month: time.February, Day: 30}.IsValid())
		assert.True(t, MustParseDate("2024-02-29").IsValid())
	})

	t.Run("json map key", func(t *testing.T) {
		data, err := json.Marshal(map[Date]string{MustParseDate("2024-06-10"): "available"})
		require.NoError(t, err)
		assert.JSONEq(t, `{"2024-06-10":"available"}`, string(data))

		var back map[Date]string
		require.NoError(t, json.Unmarshal(data, &back))
		assert.Equal(t, "available", back[MustParseDate("2024-06-10")])
	})

	t.Run("scan", func(t *testing.T) {
		var d Date
		require.NoError(t, d.Scan(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)))
		assert.Equal(t, MustParseDate("2024-06-01"), d)
		require.NoError(t, d.Scan(nil))
		assert.True(t, d.IsZero())
	})
}
