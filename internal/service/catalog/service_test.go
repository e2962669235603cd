package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/service/catalog/models"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/testutil/memstore"
	"github.com/m04kA/SMC-MarketplaceBooking/pkg/logger"
	"github.com/m04kA/SMC-MarketplaceBooking/pkg/ptr"
	"github.com/m04kA/SMC-MarketplaceBooking/pkg/types"
)

func newTestService(t *testing.T) (*Service, *memstore.Store) {
	t.Helper()
	store := memstore.New()
	return NewService(store.Services(), store.Availability(), store.TxManager(), 0, logger.Nop()), store
}

func validRequest() *models.CreateServiceRequest {
	return &models.CreateServiceRequest{
		OwnerID:      7,
		Kind:         string(domain.KindLocal),
		Title:        "Loft",
		PricePerHour: 40,
		StartDate:    types.MustParseDate("2024-06-01"),
		EndDate:      ptr.Ptr(types.MustParseDate("2024-06-30")),
		Interval:     string(domain.IntervalMonthly),
		ExceptionDates: []types.Date{
			types.MustParseDate("2024-06-20"),
			types.MustParseDate("2024-06-15"),
			types.MustParseDate("2024-06-15"),
			types.MustParseDate("2024-07-15"), // вне окна
		},
	}
}

func TestCreate(t *testing.T) {
	svc, store := newTestService(t)

	resp, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	assert.NotZero(t, resp.ID)
	assert.Equal(t, int64(7), resp.OwnerID)
	assert.Equal(t, types.MustParseDate("2024-06-30"), resp.EndDate)
	assert.Equal(t, []types.Date{types.MustParseDate("2024-06-15"), types.MustParseDate("2024-06-20")}, resp.ExceptionDates)

	records := store.AllRecords()
	require.Len(t, records, 2)
	for _, r := range records {
		assert.Equal(t, resp.ID, r.ServiceID)
		assert.Equal(t, domain.AvailabilityException, r.Status)
	}
}

func TestCreate_DerivesEndDate(t *testing.T) {
	tests := []struct {
		interval domain.Interval
		start    string
		wantEnd  string
	}{
		{domain.IntervalWeekly, "2024-06-01", "2024-06-08"},
		{domain.IntervalMonthly, "2024-01-31", "2024-02-29"},
		{domain.IntervalYearly, "2024-02-29", "2025-02-28"},
	}

	for _, tt := range tests {
		t.Run(string(tt.interval), func(t *testing.T) {
			svc, _ := newTestService(t)
			req := validRequest()
			req.Interval = string(tt.interval)
			req.StartDate = types.MustParseDate(tt.start)
			req.EndDate = nil
			req.ExceptionDates = nil

			resp, err := svc.Create(context.Background(), req)
			require.NoError(t, err)
			assert.Equal(t, types.MustParseDate(tt.wantEnd), resp.EndDate)
			assert.Empty(t, resp.ExceptionDates)
		})
	}
}

func TestCreate_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *models.CreateServiceRequest)
		wantErr error
	}{
		{"unknown kind", func(r *models.CreateServiceRequest) { r.Kind = "virtual" }, ErrInvalidInput},
		{"empty title", func(r *models.CreateServiceRequest) { r.Title = "" }, ErrInvalidInput},
		{"negative price", func(r *models.CreateServiceRequest) { r.PricePerHour = -1 }, ErrInvalidInput},
		{"no owner", func(r *models.CreateServiceRequest) { r.OwnerID = 0 }, ErrInvalidInput},
		{"unknown interval", func(r *models.CreateServiceRequest) { r.Interval = "daily" }, ErrInvalidInput},
		{"end before start", func(r *models.CreateServiceRequest) {
			r.EndDate = ptr.Ptr(types.MustParseDate("2024-05-01"))
		}, ErrInvalidRange},
		{"window too long", func(r *models.CreateServiceRequest) {
			r.EndDate = ptr.Ptr(types.MustParseDate("2027-06-01"))
		}, ErrInvalidRange},
		{"missing start", func(r *models.CreateServiceRequest) {
			r.StartDate = types.Date{}
			r.EndDate = nil
		}, ErrInvalidRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store := newTestService(t)
			req := validRequest()
			tt.mutate(req)

			_, err := svc.Create(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, store.AllRecords())
		})
	}
}

func TestCreate_RollsBackOnExceptionFailure(t *testing.T) {
	svc, store := newTestService(t)
	store.SetHook(func(_ context.Context, op string) error {
		if op == "availability.CreateExceptions" {
			return errors.New("disk full")
		}
		return nil
	})

	_, err := svc.Create(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInternal)

	list, err := store.Services().ListByOwner(context.Background(), 7)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestGetByID(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	got, err := svc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Title, got.Title)
	assert.Equal(t, created.ExceptionDates, got.ExceptionDates)

	_, err = svc.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestListByOwner(t *testing.T) {
	svc, _ := newTestService(t)

	first := validRequest()
	second := validRequest()
	second.StartDate = types.MustParseDate("2024-09-01")
	second.EndDate = nil
	foreign := validRequest()
	foreign.OwnerID = 8

	for _, r := range []*models.CreateServiceRequest{first, second, foreign} {
		_, err := svc.Create(context.Background(), r)
		require.NoError(t, err)
	}

	resp, err := svc.ListByOwner(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, resp.Services, 2)
	assert.Equal(t, types.MustParseDate("2024-09-01"), resp.Services[0].StartDate)

	_, err = svc.ListByOwner(context.Background(), 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
