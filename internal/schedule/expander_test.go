package schedule

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
	"github.com/m04kA/SMC-MarketplaceBooking/pkg/types"
)

func d(s string) types.Date { return types.MustParseDate(s) }

func TestExpand(t *testing.T) {
	t.Run("every day of the window regardless of interval", func(t *testing.T) {
		for _, interval := range []domain.Interval{domain.IntervalWeekly, domain.IntervalMonthly, domain.IntervalYearly} {
			dom, err := Expand(d("2024-06-01"), d("2024-06-30"), interval, nil, 0)
			require.NoError(t, err)

			dates := slices.Collect(dom.All())
			assert.Len(t, dates, 30)
			assert.Equal(t, d("2024-06-01"), dates[0])
			assert.Equal(t, d("2024-06-30"), dates[29])
			assert.Equal(t, 30, dom.Len())
		}
	})

	t.Run("exceptions carved out of candidates", func(t *testing.T) {
		dom, err := Expand(d("2024-06-01"), d("2024-06-30"), domain.IntervalMonthly, []types.Date{d("2024-06-15")}, 0)
		require.NoError(t, err)

		candidates := slices.Collect(dom.Candidates())
		assert.Len(t, candidates, 29)
		assert.NotContains(t, candidates, d("2024-06-15"))
		assert.True(t, dom.IsException(d("2024-06-15")))
		assert.Contains(t, slices.Collect(dom.All()), d("2024-06-15"))
	})

	t.Run("restartable", func(t *testing.T) {
		dom, err := Expand(d("2024-06-01"), d("2024-06-07"), domain.IntervalWeekly, nil, 0)
		require.NoError(t, err)

		first := slices.Collect(dom.Candidates())
		second := slices.Collect(dom.Candidates())
		assert.Equal(t, first, second)
	})

	t.Run("early stop", func(t *testing.T) {
		dom, err := Expand(d("2024-01-01"), d("2024-12-31"), domain.IntervalYearly, nil, 0)
		require.NoError(t, err)

		var got []types.Date
		for date := range dom.All() {
			if len(got) == 3 {
				break
			}
			got = append(got, date)
		}
		assert.Equal(t, []types.Date{d("2024-01-01"), d("2024-01-02"), d("2024-01-03")}, got)
	})

	t.Run("single day window", func(t *testing.T) {
		dom, err := Expand(d("2024-06-01"), d("2024-06-01"), domain.IntervalWeekly, nil, 0)
		require.NoError(t, err)
		assert.Equal(t, []types.Date{d("2024-06-01")}, slices.Collect(dom.All()))
	})

	t.Run("end before start", func(t *testing.T) {
		_, err := Expand(d("2024-06-30"), d("2024-06-01"), domain.IntervalMonthly, nil, 0)
		assert.ErrorIs(t, err, ErrInvalidRange)
	})

	t.Run("window too long", func(t *testing.T) {
		_, err := Expand(d("2024-01-01"), d("2026-12-31"), domain.IntervalYearly, nil, 0)
		assert.ErrorIs(t, err, ErrInvalidRange)

		_, err = Expand(d("2024-06-01"), d("2024-06-30"), domain.IntervalMonthly, nil, 10)
		assert.ErrorIs(t, err, ErrInvalidRange)
	})

	t.Run("invalid interval", func(t *testing.T) {
		_, err := Expand(d("2024-06-01"), d("2024-06-30"), domain.Interval("daily"), nil, 0)
		assert.ErrorIs(t, err, ErrInvalidInterval)
	})
}

func TestEndDateFor(t *testing.T) {
	tests := []struct {
		start    string
		interval domain.Interval
		want     string
	}{
		{"2024-06-01", domain.IntervalWeekly, "2024-06-08"},
		{"2024-06-01", domain.IntervalMonthly, "2024-07-01"},
		{"2024-01-31", domain.IntervalMonthly, "2024-02-29"},
		{"2024-06-01", domain.IntervalYearly, "2025-06-01"},
		{"2024-02-29", domain.IntervalYearly, "2025-02-28"},
	}

	for _, tt := range tests {
		t.Run(tt.start+" "+string(tt.interval), func(t *testing.T) {
			got, err := EndDateFor(d(tt.start), tt.interval)
			require.NoError(t, err)
			assert.Equal(t, d(tt.want), got)
		})
	}

	_, err := EndDateFor(d("2024-06-01"), domain.Interval(""))
	assert.ErrorIs(t, err, ErrInvalidInterval)
}

func TestDates_Empty(t *testing.T) {
	assert.Empty(t, slices.Collect(Dates(d("2024-06-02"), d("2024-06-01"))))
	assert.Empty(t, slices.Collect(Dates(types.Date{}, d("2024-06-01"))))
}
