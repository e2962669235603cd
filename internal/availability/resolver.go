package availability

import (
	"iter"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
	"github.com/m04kA/SMC-MarketplaceBooking/pkg/types"
)

// Resolve классифицирует каждую дату из dates для зрителя viewerID.
//
// Порядок правил для даты d:
//  1. вне окна услуги -> disabled
//  2. запись exception или дата-исключение услуги -> exception (перекрывает любые другие записи)
//  3. запись reserved -> reserved
//  4. у зрителя есть pending заявка на d -> pending
//  5. иначе available
//
// Некорректные даты в результат не попадают. Чужие pending заявки дату не блокируют.
func Resolve(
	service *domain.Service,
	viewerID int64,
	dates iter.Seq[types.Date],
	records []*domain.AvailabilityRecord,
	viewerPending []*domain.BookingRequest,
) map[types.Date]domain.DateStatus {
	idx := newIndex(records, viewerID, viewerPending)

	result := make(map[types.Date]domain.DateStatus)
	for d := range dates {
		if !d.IsValid() {
			continue
		}
		result[d] = idx.resolve(service, d)
	}
	return result
}

// ResolveDate классифицирует одну дату
func ResolveDate(
	service *domain.Service,
	viewerID int64,
	date types.Date,
	records []*domain.AvailabilityRecord,
	viewerPending []*domain.BookingRequest,
) domain.DateStatus {
	if !date.IsValid() {
		return domain.DateDisabled
	}
	return newIndex(records, viewerID, viewerPending).resolve(service, date)
}

type index struct {
	exception map[types.Date]bool
	reserved  map[types.Date]bool
	pending   map[types.Date]bool
}

func newIndex(records []*domain.AvailabilityRecord, viewerID int64, viewerPending []*domain.BookingRequest) *index {
	idx := &index{
		exception: make(map[types.Date]bool),
		reserved:  make(map[types.Date]bool),
		pending:   make(map[types.Date]bool),
	}

	for _, r := range records {
		if r == nil {
			continue
		}
		switch r.Status {
		case domain.AvailabilityException:
			idx.exception[r.Date] = true
		case domain.AvailabilityReserved:
			idx.reserved[r.Date] = true
		case domain.AvailabilityAvailable:
		}
	}

	for _, req := range viewerPending {
		if req == nil || req.RequesterID != viewerID || req.Status != domain.RequestPending {
			continue
		}
		idx.pending[req.BookingDate] = true
	}

	return idx
}

func (idx *index) resolve(service *domain.Service, d types.Date) domain.DateStatus {
	switch {
	case !service.InWindow(d):
		return domain.DateDisabled
	case idx.exception[d] || service.IsExceptionDate(d):
		return domain.DateException
	case idx.reserved[d]:
		return domain.DateReserved
	case idx.pending[d]:
		return domain.DatePending
	default:
		return domain.DateAvailable
	}
}
