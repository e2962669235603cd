package submit_request

import (
	"fmt"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
)

// validateRequest валидирует форму входных данных
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: empty request", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.RequesterID <= 0 {
		return fmt.Errorf("%w: requesterID must be positive", ErrInvalidInput)
	}

	if !req.Date.IsValid() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: startTime must be HH:MM", ErrInvalidInput)
	}

	if err := req.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: endTime must be HH:MM", ErrInvalidInput)
	}

	return nil
}

// validateTimeRange проверяет, что конец позже начала, и возвращает длительность в целых часах
func validateTimeRange(req *Request) (int, error) {
	if !req.EndTime.IsAfter(req.StartTime) {
		return 0, fmt.Errorf("%w: end %s must be after start %s", ErrInvalidTimeRange, req.EndTime, req.StartTime)
	}

	hours, err := domain.HoursBetween(req.StartTime, req.EndTime)
	if err != nil {
		return 0, fmt.Errorf("%w: %s-%s rounds to zero hours", ErrInvalidTimeRange, req.StartTime, req.EndTime)
	}

	return hours, nil
}
