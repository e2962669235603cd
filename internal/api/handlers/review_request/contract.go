package review_request

import (
	"context"

	reviewRequest "github.com/m04kA/SMC-MarketplaceBooking/internal/usecase/review_request"
)

type ReviewRequestUseCase interface {
	Confirm(ctx context.Context, req *reviewRequest.Request) (*reviewRequest.Response, error)
	Reject(ctx context.Context, req *reviewRequest.Request) (*reviewRequest.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
