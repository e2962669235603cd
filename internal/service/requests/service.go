package requests

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
	requestRepo "github.com/m04kA/SMC-MarketplaceBooking/internal/infra/storage/request"
	servicesRepo "github.com/m04kA/SMC-MarketplaceBooking/internal/infra/storage/services"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/service/requests/models"
)

// Service сервис чтения заявок на бронирование
type Service struct {
	requestRepo RequestRepository
	serviceRepo ServiceRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса заявок
func NewService(
	requestRepo RequestRepository,
	serviceRepo ServiceRepository,
	logger Logger,
) *Service {
	return &Service{
		requestRepo: requestRepo,
		serviceRepo: serviceRepo,
		logger:      logger,
	}
}

// GetByID получает заявку по ID
// Видна заявителю и владельцу услуги
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingRequestResponse, error) {
	s.logger.Info("GetByID: fetching request id=%d for user=%d", id, userID)

	req, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, requestRepo.ErrRequestNotFound) {
			s.logger.Warn("GetByID: request id=%d not found", id)
			return nil, ErrRequestNotFound
		}
		s.logger.Error("GetByID: repository error for request id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if req.RequesterID != userID {
		if err := s.checkOwnerAccess(ctx, req.ServiceID, userID); err != nil {
			s.logger.Warn("GetByID: access denied for user=%d to request id=%d", userID, id)
			return nil, err
		}
	}

	return models.FromDomainRequest(req), nil
}

// GetUserRequests получает историю заявок пользователя
// Опционально фильтрует по статусу
func (s *Service) GetUserRequests(ctx context.Context, req *models.GetUserRequestsRequest) (*models.BookingRequestListResponse, error) {
	s.logger.Info("GetUserRequests: fetching requests for user=%d, status=%v", req.UserID, req.Status)

	filter := domain.RequestFilter{RequesterID: &req.UserID}
	if req.Status != nil {
		status, err := models.ToDomainRequestStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserRequests: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Statuses = []domain.RequestStatus{status}
	}

	list, err := s.requestRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("GetUserRequests: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserRequests - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserRequests: successfully fetched %d requests for user=%d", len(list), req.UserID)
	return models.FromDomainRequestList(list), nil
}

// GetServiceRequests получает входящие заявки услуги с фильтрацией по статусу и периоду
// Доступно только владельцу услуги
func (s *Service) GetServiceRequests(ctx context.Context, req *models.GetServiceRequestsRequest) (*models.BookingRequestListResponse, error) {
	s.logger.Info("GetServiceRequests: fetching requests for service=%d by user=%d, status=%v",
		req.ServiceID, req.UserID, req.Status)

	if err := s.checkOwnerAccess(ctx, req.ServiceID, req.UserID); err != nil {
		return nil, err
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetServiceRequests: invalid filter for service=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	list, err := s.requestRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("GetServiceRequests: repository error for service=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: GetServiceRequests - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetServiceRequests: successfully fetched %d requests for service=%d", len(list), req.ServiceID)
	return models.FromDomainRequestList(list), nil
}

// Вспомогательные методы

// checkOwnerAccess проверяет, что пользователь является владельцем услуги
func (s *Service) checkOwnerAccess(ctx context.Context, serviceID, userID int64) error {
	service, err := s.serviceRepo.GetByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, servicesRepo.ErrServiceNotFound) {
			s.logger.Warn("checkOwnerAccess: service id=%d not found", serviceID)
			return ErrServiceNotFound
		}
		s.logger.Error("checkOwnerAccess: failed to get service id=%d: %v", serviceID, err)
		return fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if !service.IsOwner(userID) {
		s.logger.Warn("checkOwnerAccess: user=%d is not the owner of service=%d", userID, serviceID)
		return ErrAccessDenied
	}
	return nil
}
