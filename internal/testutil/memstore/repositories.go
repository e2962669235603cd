package memstore

import (
	"context"
	"slices"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
	availabilityRepo "github.com/m04kA/SMC-MarketplaceBooking/internal/infra/storage/availability"
	requestRepo "github.com/m04kA/SMC-MarketplaceBooking/internal/infra/storage/request"
	servicesRepo "github.com/m04kA/SMC-MarketplaceBooking/internal/infra/storage/services"
	"github.com/m04kA/SMC-MarketplaceBooking/pkg/types"
)

// Services репозиторий услуг в памяти
type Services struct {
	s *Store
}

func (r *Services) Create(ctx context.Context, service *domain.Service) (*domain.Service, error) {
	err := r.s.run(ctx, "services.Create", func(st *state) error {
		service.ID = st.nextID()
		service.CreatedAt = r.s.now()
		service.UpdatedAt = service.CreatedAt
		stored := *service
		stored.ExceptionDates = slices.Clone(service.ExceptionDates)
		st.services[service.ID] = stored
		return nil
	})
	if err != nil {
		return nil, err
	}
	return service, nil
}

func (r *Services) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	var out *domain.Service
	err := r.s.run(ctx, "services.GetByID", func(st *state) error {
		svc, ok := st.services[id]
		if !ok {
			return servicesRepo.ErrServiceNotFound
		}
		svc.ExceptionDates = slices.Clone(svc.ExceptionDates)
		out = &svc
		return nil
	})
	return out, err
}

// Put кладет услугу как есть (для подготовки тестовых данных)
func (r *Services) Put(service domain.Service) *domain.Service {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if service.ID == 0 {
		service.ID = r.s.state.nextID()
	} else if service.ID > r.s.state.seq {
		r.s.state.seq = service.ID
	}
	r.s.state.services[service.ID] = service
	return &service
}

// Availability репозиторий записей о датах в памяти
type Availability struct {
	s *Store
}

func (r *Availability) ListByServiceAndRange(ctx context.Context, serviceID int64, from, to types.Date) ([]*domain.AvailabilityRecord, error) {
	out := make([]*domain.AvailabilityRecord, 0)
	err := r.s.run(ctx, "availability.ListByServiceAndRange", func(st *state) error {
		for _, rec := range sortedValues(st.records, func(r domain.AvailabilityRecord) int64 { return r.ID }) {
			if rec.ServiceID != serviceID || rec.Date.Before(from) || rec.Date.After(to) {
				continue
			}
			rec := rec
			out = append(out, &rec)
		}
		return nil
	})
	return out, err
}

func (r *Availability) EnsureForUpdate(ctx context.Context, serviceID int64, date types.Date) (*domain.AvailabilityRecord, error) {
	var out *domain.AvailabilityRecord
	err := r.s.run(ctx, "availability.EnsureForUpdate", func(st *state) error {
		for _, rec := range st.records {
			if rec.ServiceID == serviceID && rec.Date == date && rec.Status != domain.AvailabilityException {
				out = &rec
				return nil
			}
		}
		rec := *domain.NewAvailabilityRecord(serviceID, date, domain.AvailabilityAvailable)
		rec.ID = st.nextID()
		rec.CreatedAt = r.s.now()
		rec.UpdatedAt = rec.CreatedAt
		st.records[rec.ID] = rec
		out = &rec
		return nil
	})
	return out, err
}

func (r *Availability) GetByID(ctx context.Context, id int64) (*domain.AvailabilityRecord, error) {
	var out *domain.AvailabilityRecord
	err := r.s.run(ctx, "availability.GetByID", func(st *state) error {
		rec, ok := st.records[id]
		if !ok {
			return availabilityRepo.ErrRecordNotFound
		}
		out = &rec
		return nil
	})
	return out, err
}

func (r *Availability) MarkReserved(ctx context.Context, id int64, start, end types.TimeString) error {
	return r.s.run(ctx, "availability.MarkReserved", func(st *state) error {
		rec, ok := st.records[id]
		if !ok || rec.Status != domain.AvailabilityAvailable {
			return availabilityRepo.ErrRecordNotFound
		}
		rec.Status = domain.AvailabilityReserved
		rec.StartTime = start.OrNil()
		rec.EndTime = end.OrNil()
		rec.UpdatedAt = r.s.now()
		st.records[id] = rec
		return nil
	})
}

func (r *Availability) CreateExceptions(ctx context.Context, serviceID int64, dates []types.Date) error {
	return r.s.run(ctx, "availability.CreateExceptions", func(st *state) error {
		for _, d := range dates {
			rec := *domain.NewAvailabilityRecord(serviceID, d, domain.AvailabilityException)
			rec.ID = st.nextID()
			rec.CreatedAt = r.s.now()
			rec.UpdatedAt = rec.CreatedAt
			st.records[rec.ID] = rec
		}
		return nil
	})
}

// Put кладет запись как есть (для подготовки тестовых данных)
func (r *Availability) Put(rec domain.AvailabilityRecord) *domain.AvailabilityRecord {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec.ID = r.s.state.nextID()
	r.s.state.records[rec.ID] = rec
	return &rec
}

// Requests репозиторий заявок в памяти
type Requests struct {
	s *Store
}

func (r *Requests) Create(ctx context.Context, req *domain.BookingRequest) (*domain.BookingRequest, error) {
	err := r.s.run(ctx, "requests.Create", func(st *state) error {
		// uq_booking_requests_active_slot
		if req.Status.IsActive() {
			for _, existing := range st.requests {
				if existing.ServiceID == req.ServiceID &&
					existing.BookingDate == req.BookingDate &&
					existing.StartTime == req.StartTime &&
					existing.Status.IsActive() {
					return requestRepo.ErrSlotConflict
				}
			}
		}
		req.ID = st.nextID()
		req.CreatedAt = r.s.now()
		req.UpdatedAt = req.CreatedAt
		st.requests[req.ID] = *req
		return nil
	})
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (r *Requests) GetByID(ctx context.Context, id int64) (*domain.BookingRequest, error) {
	var out *domain.BookingRequest
	err := r.s.run(ctx, "requests.GetByID", func(st *state) error {
		req, ok := st.requests[id]
		if !ok {
			return requestRepo.ErrRequestNotFound
		}
		out = &req
		return nil
	})
	return out, err
}

func (r *Requests) List(ctx context.Context, filter domain.RequestFilter) ([]*domain.BookingRequest, error) {
	out := make([]*domain.BookingRequest, 0)
	err := r.s.run(ctx, "requests.List", func(st *state) error {
		for _, req := range sortedValues(st.requests, func(r domain.BookingRequest) int64 { return r.ID }) {
			if !matches(req, filter) {
				continue
			}
			req := req
			out = append(out, &req)
		}
		return nil
	})
	return out, err
}

func (r *Requests) UpdateStatus(ctx context.Context, id int64, from, to domain.RequestStatus) error {
	return r.s.run(ctx, "requests.UpdateStatus", func(st *state) error {
		req, ok := st.requests[id]
		if !ok || req.Status != from {
			return requestRepo.ErrStatusConflict
		}
		req.Status = to
		req.UpdatedAt = r.s.now()
		if to.IsTerminal() {
			t := req.UpdatedAt
			req.ResolvedAt = &t
		}
		st.requests[id] = req
		return nil
	})
}

func (r *Requests) CreateRequester(ctx context.Context, sr *domain.SlotRequester) (*domain.SlotRequester, error) {
	err := r.s.run(ctx, "requests.CreateRequester", func(st *state) error {
		for _, existing := range st.requesters {
			if existing.RequestID == sr.RequestID {
				return requestRepo.ErrSlotConflict
			}
		}
		sr.ID = st.nextID()
		sr.CreatedAt = r.s.now()
		sr.UpdatedAt = sr.CreatedAt
		st.requesters[sr.ID] = *sr
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sr, nil
}

func (r *Requests) UpdateRequesterStatus(ctx context.Context, requestID int64, status domain.RequestStatus) error {
	return r.s.run(ctx, "requests.UpdateRequesterStatus", func(st *state) error {
		for id, sr := range st.requesters {
			if sr.RequestID == requestID {
				sr.Status = status
				sr.UpdatedAt = r.s.now()
				st.requesters[id] = sr
				return nil
			}
		}
		return requestRepo.ErrRequestNotFound
	})
}

// Put кладет заявку как есть (для подготовки тестовых данных)
func (r *Requests) Put(req domain.BookingRequest) *domain.BookingRequest {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	req.ID = r.s.state.nextID()
	r.s.state.requests[req.ID] = req
	return &req
}

func matches(req domain.BookingRequest, f domain.RequestFilter) bool {
	if f.ServiceID != nil && req.ServiceID != *f.ServiceID {
		return false
	}
	if f.RequesterID != nil && req.RequesterID != *f.RequesterID {
		return false
	}
	if len(f.Statuses) > 0 && !slices.Contains(f.Statuses, req.Status) {
		return false
	}
	if f.From != nil && req.BookingDate.Before(*f.From) {
		return false
	}
	if f.To != nil && req.BookingDate.After(*f.To) {
		return false
	}
	return true
}

// PutRequester кладет связь заявителя как есть (для подготовки тестовых данных)
func (r *Requests) PutRequester(sr domain.SlotRequester) *domain.SlotRequester {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sr.ID = r.s.state.nextID()
	r.s.state.requesters[sr.ID] = sr
	return &sr
}

func (r *Services) ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Service, error) {
	out := make([]*domain.Service, 0)
	err := r.s.run(ctx, "services.ListByOwner", func(st *state) error {
		for _, svc := range sortedValues(st.services, func(s domain.Service) int64 { return s.ID }) {
			if svc.OwnerID != ownerID {
				continue
			}
			svc.ExceptionDates = slices.Clone(svc.ExceptionDates)
			out = append(out, &svc)
		}
		// как в SQL: start_date DESC, id DESC
		slices.SortStableFunc(out, func(a, b *domain.Service) int {
			if c := b.StartDate.Compare(a.StartDate); c != 0 {
				return c
			}
			return int(b.ID - a.ID)
		})
		return nil
	})
	return out, err
}
