package get_service_requests

import (
	"github.com/m04kA/SMC-MarketplaceBooking/internal/service/requests/models"
	"github.com/m04kA/SMC-MarketplaceBooking/pkg/types"
)

// ToServiceRequest собирает запрос к сервису из параметров пути и query
func ToServiceRequest(serviceID, userID int64, statusStr, fromStr, toStr string) (*models.GetServiceRequestsRequest, error) {
	req := &models.GetServiceRequestsRequest{
		UserID:    userID,
		ServiceID: serviceID,
	}

	if statusStr != "" {
		if _, err := models.ToDomainRequestStatus(statusStr); err != nil {
			return nil, err
		}
		req.Status = &statusStr
	}

	if fromStr != "" {
		from, err := types.ParseDate(fromStr)
		if err != nil {
			return nil, err
		}
		req.From = &from
	}

	if toStr != "" {
		to, err := types.ParseDate(toStr)
		if err != nil {
			return nil, err
		}
		req.To = &to
	}

	return req, nil
}
