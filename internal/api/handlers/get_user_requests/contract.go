package get_user_requests

import (
	"context"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/service/requests/models"
)

type RequestService interface {
	GetUserRequests(ctx context.Context, req *models.GetUserRequestsRequest) (*models.BookingRequestListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
