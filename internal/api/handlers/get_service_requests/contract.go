package get_service_requests

import (
	"context"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/service/requests/models"
)

type RequestService interface {
	GetServiceRequests(ctx context.Context, req *models.GetServiceRequestsRequest) (*models.BookingRequestListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
