package submit_request

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/integrations/payment"
	requestRepo "github.com/m04kA/SMC-MarketplaceBooking/internal/infra/storage/request"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/testutil/memstore"
	"github.com/m04kA/SMC-MarketplaceBooking/pkg/logger"
	"github.com/m04kA/SMC-MarketplaceBooking/pkg/metrics"
	"github.com/m04kA/SMC-MarketplaceBooking/pkg/types"
)

const ownerID int64 = 7

type fakePayment struct {
	mu    sync.Mutex
	err   error
	calls []float64
}

func (p *fakePayment) RequestDeposit(_ context.Context, correlationID string, amount float64) (*payment.DepositResponse, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, amount)
	if p.err != nil {
		return nil, p.err
	}
	return &payment.DepositResponse{Token: "tok-" + correlationID, RedirectURL: "https://pay/" + correlationID}, nil
}

type fixture struct {
	store   *memstore.Store
	payment *fakePayment
	uc      *UseCase
	service *domain.Service
}

func newFixture(t *testing.T, timeout time.Duration) *fixture {
	t.Helper()

	store := memstore.New()
	service := store.Services().Put(domain.Service{
		OwnerID:        ownerID,
		Kind:           domain.KindLocal,
		Title:          "Loft",
		PricePerHour:   40,
		StartDate:      types.MustParseDate("2024-06-01"),
		EndDate:        types.MustParseDate("2024-06-30"),
		Interval:       domain.IntervalMonthly,
		ExceptionDates: []types.Date{types.MustParseDate("2024-06-15")},
	})
	pay := &fakePayment{}

	uc := NewUseCase(
		store.Services(),
		store.Availability(),
		store.Requests(),
		pay,
		store.TxManager(),
		metrics.Nop{},
		logger.Nop(),
		timeout,
	)

	return &fixture{store: store, payment: pay, uc: uc, service: service}
}

func (f *fixture) request(requester int64, date string, start, end types.TimeString) *Request {
	return &Request{
		ServiceID:   f.service.ID,
		RequesterID: requester,
		Date:        types.MustParseDate(date),
		StartTime:   start,
		EndTime:     end,
	}
}

func TestExecute_PriceAndDeposit(t *testing.T) {
	f := newFixture(t, time.Second)

	resp, err := f.uc.Execute(context.Background(), f.request(42, "2024-06-10", "10:00", "13:00"))
	require.NoError(t, err)

	assert.Equal(t, 3, resp.Hours)
	assert.Equal(t, 120.0, resp.TotalPrice)
	assert.Equal(t, 30.0, resp.DepositAmount)
	assert.Equal(t, string(domain.RequestPending), resp.Status)
	assert.NotEmpty(t, resp.PaymentCorrelationID)
	require.NotNil(t, resp.PaymentToken)
	assert.Equal(t, "tok-"+resp.PaymentCorrelationID, *resp.PaymentToken)
	assert.Equal(t, []float64{30}, f.payment.calls)

	records := f.store.AllRecords()
	require.Len(t, records, 1)
	assert.Equal(t, domain.AvailabilityAvailable, records[0].Status, "record stays available until confirmation")
	assert.Equal(t, "Monday", records[0].Weekday)

	requests := f.store.AllRequests()
	require.Len(t, requests, 1)
	assert.Equal(t, records[0].ID, requests[0].AvailabilityID)

	requesters := f.store.AllRequesters()
	require.Len(t, requesters, 1)
	assert.Equal(t, requests[0].ID, requesters[0].RequestID)
	assert.Equal(t, domain.RequestPending, requesters[0].Status)
}

func TestExecute_ValidationBeforeStorage(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *Request)
		wantErr error
	}{
		{"end equals start", func(r *Request) { r.EndTime = r.StartTime }, ErrInvalidTimeRange},
		{"end before start", func(r *Request) { r.StartTime, r.EndTime = "13:00", "10:00" }, ErrInvalidTimeRange},
		{"rounds to zero hours", func(r *Request) { r.StartTime, r.EndTime = "10:00", "10:15" }, ErrInvalidTimeRange},
		{"missing date", func(r *Request) { r.Date = types.Date{} }, ErrInvalidInput},
		{"bad time format", func(r *Request) { r.StartTime = "10am" }, ErrInvalidInput},
		{"missing requester", func(r *Request) { r.RequesterID = 0 }, ErrInvalidInput},
		{"missing service", func(r *Request) { r.ServiceID = 0 }, ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, time.Second)
			f.store.SetHook(func(_ context.Context, op string) error {
				t.Errorf("storage touched before validation: %s", op)
				return nil
			})

			req := f.request(42, "2024-06-10", "10:00", "13:00")
			tt.mutate(req)

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, f.payment.calls)
		})
	}
}

func TestExecute_SlotUnavailable(t *testing.T) {
	t.Run("exception date", func(t *testing.T) {
		f := newFixture(t, time.Second)
		_, err := f.uc.Execute(context.Background(), f.request(42, "2024-06-15", "10:00", "12:00"))
		assert.ErrorIs(t, err, ErrSlotUnavailable)
	})

	t.Run("outside window", func(t *testing.T) {
		f := newFixture(t, time.Second)
		_, err := f.uc.Execute(context.Background(), f.request(42, "2024-07-01", "10:00", "12:00"))
		assert.ErrorIs(t, err, ErrSlotUnavailable)
	})

	t.Run("reserved date", func(t *testing.T) {
		f := newFixture(t, time.Second)
		f.store.Availability().Put(*domain.NewAvailabilityRecord(f.service.ID, types.MustParseDate("2024-06-10"), domain.AvailabilityReserved))

		_, err := f.uc.Execute(context.Background(), f.request(42, "2024-06-10", "15:00", "17:00"))
		assert.ErrorIs(t, err, ErrSlotUnavailable)
	})

	t.Run("own pending request on the date", func(t *testing.T) {
		f := newFixture(t, time.Second)
		_, err := f.uc.Execute(context.Background(), f.request(42, "2024-06-10", "10:00", "12:00"))
		require.NoError(t, err)

		_, err = f.uc.Execute(context.Background(), f.request(42, "2024-06-10", "14:00", "16:00"))
		assert.ErrorIs(t, err, ErrSlotUnavailable)
	})

	t.Run("overlapping request of another customer", func(t *testing.T) {
		f := newFixture(t, time.Second)
		_, err := f.uc.Execute(context.Background(), f.request(42, "2024-06-10", "10:00", "13:00"))
		require.NoError(t, err)

		_, err = f.uc.Execute(context.Background(), f.request(43, "2024-06-10", "12:00", "14:00"))
		assert.ErrorIs(t, err, ErrSlotUnavailable)
		assert.Len(t, f.store.AllRequests(), 1)
	})

	t.Run("non-overlapping request of another customer is allowed", func(t *testing.T) {
		f := newFixture(t, time.Second)
		_, err := f.uc.Execute(context.Background(), f.request(42, "2024-06-10", "10:00", "13:00"))
		require.NoError(t, err)

		_, err = f.uc.Execute(context.Background(), f.request(43, "2024-06-10", "13:00", "15:00"))
		require.NoError(t, err)

		assert.Len(t, f.store.AllRequests(), 2)
		assert.Len(t, f.store.AllRecords(), 1, "both requests share the date record")
	})

	t.Run("unique index conflict", func(t *testing.T) {
		f := newFixture(t, time.Second)
		f.store.SetHook(func(_ context.Context, op string) error {
			if op == "requests.Create" {
				return requestRepo.ErrSlotConflict
			}
			return nil
		})

		_, err := f.uc.Execute(context.Background(), f.request(42, "2024-06-10", "10:00", "12:00"))
		assert.ErrorIs(t, err, ErrSlotUnavailable)
		assert.Empty(t, f.store.AllRecords())
	})
}

func TestExecute_ServiceNotFound(t *testing.T) {
	f := newFixture(t, time.Second)
	req := f.request(42, "2024-06-10", "10:00", "12:00")
	req.ServiceID = 999

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_ConcurrentIdenticalSubmits(t *testing.T) {
	const workers = 8

	f := newFixture(t, 5*time.Second)

	var (
		wg      sync.WaitGroup
		start   = make(chan struct{})
		errs    = make([]error, workers)
		success int
		taken   int
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, errs[i] = f.uc.Execute(context.Background(), f.request(int64(100+i), "2024-06-10", "10:00", "13:00"))
		}(i)
	}
	close(start)
	wg.Wait()

	for _, err := range errs {
		switch {
		case err == nil:
			success++
		case errors.Is(err, ErrSlotUnavailable):
			taken++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, success)
	assert.Equal(t, workers-1, taken)

	pending := 0
	for _, r := range f.store.AllRequests() {
		if r.Status == domain.RequestPending {
			pending++
		}
	}
	assert.Equal(t, 1, pending)
	assert.Len(t, f.store.AllRecords(), 1)
}

func TestExecute_TimeoutLeavesNoPartialWrites(t *testing.T) {
	f := newFixture(t, 50*time.Millisecond)
	f.store.SetHook(func(ctx context.Context, op string) error {
		if op == "requests.CreateRequester" {
			<-ctx.Done()
			return ctx.Err()
		}
		return nil
	})

	_, err := f.uc.Execute(context.Background(), f.request(42, "2024-06-10", "10:00", "13:00"))

	assert.ErrorIs(t, err, ErrTimeout)
	assert.Empty(t, f.store.AllRecords())
	assert.Empty(t, f.store.AllRequests())
	assert.Empty(t, f.store.AllRequesters())
	assert.Empty(t, f.payment.calls)
}

func TestExecute_StorageFailureRollsBack(t *testing.T) {
	f := newFixture(t, time.Second)
	f.store.SetHook(func(_ context.Context, op string) error {
		if op == "requests.CreateRequester" {
			return errors.New("connection reset by peer")
		}
		return nil
	})

	_, err := f.uc.Execute(context.Background(), f.request(42, "2024-06-10", "10:00", "13:00"))

	assert.ErrorIs(t, err, ErrStorageFailure)
	assert.Empty(t, f.store.AllRecords())
	assert.Empty(t, f.store.AllRequests())
}

func TestExecute_PaymentDegradation(t *testing.T) {
	f := newFixture(t, time.Second)
	f.payment.err = payment.ErrInternal

	resp, err := f.uc.Execute(context.Background(), f.request(42, "2024-06-10", "10:00", "13:00"))
	require.NoError(t, err)

	assert.Nil(t, resp.PaymentToken)
	assert.Nil(t, resp.PaymentRedirectURL)
	require.Len(t, f.store.AllRequests(), 1)
	assert.Equal(t, domain.RequestPending, f.store.AllRequests()[0].Status)
}
