package requests

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/service/requests/models"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/testutil/memstore"
	"github.com/m04kA/SMC-MarketplaceBooking/pkg/logger"
	"github.com/m04kA/SMC-MarketplaceBooking/pkg/ptr"
	"github.com/m04kA/SMC-MarketplaceBooking/pkg/types"
)

const (
	ownerID    int64 = 7
	customerA  int64 = 42
	customerB  int64 = 43
	strangerID int64 = 99
)

type fixture struct {
	svc     *Service
	service *domain.Service
	reqA    *domain.BookingRequest
	reqB    *domain.BookingRequest
	reqA2   *domain.BookingRequest
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memstore.New()
	service := store.Services().Put(domain.Service{
		OwnerID:      ownerID,
		Kind:         domain.KindPersonal,
		Title:        "Cleaning crew",
		PricePerHour: 25,
		StartDate:    types.MustParseDate("2024-06-01"),
		EndDate:      types.MustParseDate("2024-06-30"),
		Interval:     domain.IntervalMonthly,
	})

	put := func(requester int64, date string, status domain.RequestStatus) *domain.BookingRequest {
		return store.Requests().Put(domain.BookingRequest{
			ServiceID:   service.ID,
			RequesterID: requester,
			BookingDate: types.MustParseDate(date),
			StartTime:   "10:00",
			EndTime:     "12:00",
			Hours:       2,
			TotalPrice:  50,
			Status:      status,
		})
	}

	return &fixture{
		svc:     NewService(store.Requests(), store.Services(), logger.Nop()),
		service: service,
		reqA:    put(customerA, "2024-06-10", domain.RequestPending),
		reqB:    put(customerB, "2024-06-11", domain.RequestConfirmed),
		reqA2:   put(customerA, "2024-06-20", domain.RequestRejected),
	}
}

func TestGetByID_Access(t *testing.T) {
	f := newFixture(t)

	got, err := f.svc.GetByID(context.Background(), f.reqA.ID, customerA)
	require.NoError(t, err)
	assert.Equal(t, f.reqA.ID, got.ID)
	assert.Equal(t, "pending", got.Status)

	_, err = f.svc.GetByID(context.Background(), f.reqA.ID, ownerID)
	require.NoError(t, err)

	_, err = f.svc.GetByID(context.Background(), f.reqA.ID, customerB)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = f.svc.GetByID(context.Background(), 404, customerA)
	assert.ErrorIs(t, err, ErrRequestNotFound)
}

func TestGetUserRequests(t *testing.T) {
	f := newFixture(t)

	all, err := f.svc.GetUserRequests(context.Background(), &models.GetUserRequestsRequest{UserID: customerA})
	require.NoError(t, err)
	require.Len(t, all.Requests, 2)
	for _, r := range all.Requests {
		assert.Equal(t, customerA, r.RequesterID)
	}

	pending, err := f.svc.GetUserRequests(context.Background(), &models.GetUserRequestsRequest{
		UserID: customerA,
		Status: ptr.Ptr("pending"),
	})
	require.NoError(t, err)
	require.Len(t, pending.Requests, 1)
	assert.Equal(t, f.reqA.ID, pending.Requests[0].ID)

	_, err = f.svc.GetUserRequests(context.Background(), &models.GetUserRequestsRequest{
		UserID: customerA,
		Status: ptr.Ptr("cancelled"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetServiceRequests(t *testing.T) {
	f := newFixture(t)

	t.Run("owner sees the inbox", func(t *testing.T) {
		resp, err := f.svc.GetServiceRequests(context.Background(), &models.GetServiceRequestsRequest{
			UserID:    ownerID,
			ServiceID: f.service.ID,
		})
		require.NoError(t, err)
		assert.Len(t, resp.Requests, 3)
	})

	t.Run("status and period filter", func(t *testing.T) {
		resp, err := f.svc.GetServiceRequests(context.Background(), &models.GetServiceRequestsRequest{
			UserID:    ownerID,
			ServiceID: f.service.ID,
			Status:    ptr.Ptr("confirmed"),
			From:      ptr.Ptr(types.MustParseDate("2024-06-01")),
			To:        ptr.Ptr(types.MustParseDate("2024-06-15")),
		})
		require.NoError(t, err)
		require.Len(t, resp.Requests, 1)
		assert.Equal(t, f.reqB.ID, resp.Requests[0].ID)
	})

	t.Run("not the owner", func(t *testing.T) {
		_, err := f.svc.GetServiceRequests(context.Background(), &models.GetServiceRequestsRequest{
			UserID:    strangerID,
			ServiceID: f.service.ID,
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("unknown service", func(t *testing.T) {
		_, err := f.svc.GetServiceRequests(context.Background(), &models.GetServiceRequestsRequest{
			UserID:    ownerID,
			ServiceID: 404,
		})
		assert.ErrorIs(t, err, ErrServiceNotFound)
	})

	t.Run("inverted period", func(t *testing.T) {
		_, err := f.svc.GetServiceRequests(context.Background(), &models.GetServiceRequestsRequest{
			UserID:    ownerID,
			ServiceID: f.service.ID,
			From:      ptr.Ptr(types.MustParseDate("2024-06-15")),
			To:        ptr.Ptr(types.MustParseDate("2024-06-01")),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
