package availability

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/schedule"
	"github.com/m04kA/SMC-MarketplaceBooking/pkg/types"
)

const viewer int64 = 42

func d(s string) types.Date { return types.MustParseDate(s) }

func juneService() *domain.Service {
	return &domain.Service{
		ID:             1,
		OwnerID:        7,
		StartDate:      d("2024-06-01"),
		EndDate:        d("2024-06-30"),
		Interval:       domain.IntervalMonthly,
		ExceptionDates: []types.Date{d("2024-06-15")},
	}
}

func record(date string, status domain.AvailabilityStatus) *domain.AvailabilityRecord {
	return domain.NewAvailabilityRecord(1, d(date), status)
}

func TestResolve_JuneScenario(t *testing.T) {
	svc := juneService()
	dates := slices.Values([]types.Date{d("2024-06-15"), d("2024-07-01"), d("2024-06-10")})

	got := Resolve(svc, viewer, dates, nil, nil)

	assert.Equal(t, map[types.Date]domain.DateStatus{
		d("2024-06-15"): domain.DateException,
		d("2024-07-01"): domain.DateDisabled,
		d("2024-06-10"): domain.DateAvailable,
	}, got)
}

func TestResolve_DisabledOutsideWindow(t *testing.T) {
	svc := juneService()
	records := []*domain.AvailabilityRecord{
		record("2024-05-31", domain.AvailabilityAvailable),
		record("2024-07-01", domain.AvailabilityReserved),
	}

	got := Resolve(svc, viewer, schedule.Dates(d("2024-05-01"), d("2024-08-31")), records, nil)

	for date, status := range got {
		if svc.InWindow(date) {
			continue
		}
		assert.Equal(t, domain.DateDisabled, status, date.String())
	}
	assert.Len(t, got, 31+30+31+31)
}

func TestResolve_ExceptionOverridesRecords(t *testing.T) {
	svc := juneService()
	svc.ExceptionDates = nil

	records := []*domain.AvailabilityRecord{
		record("2024-06-05", domain.AvailabilityReserved),
		record("2024-06-05", domain.AvailabilityException),
		record("2024-06-06", domain.AvailabilityException),
		record("2024-06-06", domain.AvailabilityAvailable),
	}
	pending := []*domain.BookingRequest{
		{RequesterID: viewer, BookingDate: d("2024-06-06"), Status: domain.RequestPending},
	}

	got := Resolve(svc, viewer, schedule.Dates(d("2024-06-05"), d("2024-06-06")), records, pending)

	assert.Equal(t, domain.DateException, got[d("2024-06-05")])
	assert.Equal(t, domain.DateException, got[d("2024-06-06")])
}

func TestResolve_ServiceExceptionDateWinsOverReserved(t *testing.T) {
	svc := juneService()
	records := []*domain.AvailabilityRecord{record("2024-06-15", domain.AvailabilityReserved)}

	assert.Equal(t, domain.DateException, ResolveDate(svc, viewer, d("2024-06-15"), records, nil))
}

func TestResolve_ReservedAndPending(t *testing.T) {
	svc := juneService()
	records := []*domain.AvailabilityRecord{
		record("2024-06-10", domain.AvailabilityReserved),
		record("2024-06-11", domain.AvailabilityAvailable),
	}
	pending := []*domain.BookingRequest{
		{RequesterID: viewer, BookingDate: d("2024-06-10"), Status: domain.RequestPending},
		{RequesterID: viewer, BookingDate: d("2024-06-11"), Status: domain.RequestPending},
		{RequesterID: 99, BookingDate: d("2024-06-12"), Status: domain.RequestPending},
		{RequesterID: viewer, BookingDate: d("2024-06-13"), Status: domain.RequestRejected},
	}

	got := Resolve(svc, viewer, schedule.Dates(d("2024-06-10"), d("2024-06-13")), records, pending)

	assert.Equal(t, domain.DateReserved, got[d("2024-06-10")])
	assert.Equal(t, domain.DatePending, got[d("2024-06-11")])
	assert.Equal(t, domain.DateAvailable, got[d("2024-06-12")], "other viewers' pending requests are not visible")
	assert.Equal(t, domain.DateAvailable, got[d("2024-06-13")])
}

func TestResolve_MalformedDatesOmitted(t *testing.T) {
	svc := juneService()
	dates := slices.Values([]types.Date{{}, {Year: 2024, Month: 2, Day: 30}, d("2024-06-10")})

	got := Resolve(svc, viewer, dates, nil, nil)

	assert.Len(t, got, 1)
	assert.Equal(t, domain.DateAvailable, got[d("2024-06-10")])
}
