package review_request

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/api/handlers"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/api/middleware"
	reviewRequest "github.com/m04kA/SMC-MarketplaceBooking/internal/usecase/review_request"
)

const (
	msgInvalidRequestID = "некорректный ID заявки"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgNotFound         = "заявка не найдена"
	msgForbidden        = "решение по заявке может принять только владелец услуги"
	msgAlreadyResolved  = "по заявке уже принято решение"
	msgSlotUnavailable  = "дата уже зарезервирована или закрыта, заявку можно только отклонить"
	msgStorageFailure   = "хранилище временно недоступно, попробуйте позже"
)

type Handler struct {
	useCase ReviewRequestUseCase
	logger  Logger
}

func NewHandler(useCase ReviewRequestUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

type decideFunc func(ctx context.Context, req *reviewRequest.Request) (*reviewRequest.Response, error)

// HandleConfirm PATCH /api/v1/requests/{requestId}/confirm
func (h *Handler) HandleConfirm(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, "confirm", h.useCase.Confirm)
}

// HandleReject PATCH /api/v1/requests/{requestId}/reject
func (h *Handler) HandleReject(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, "reject", h.useCase.Reject)
}

func (h *Handler) handle(w http.ResponseWriter, r *http.Request, action string, decide decideFunc) {
	requestID, err := strconv.ParseInt(mux.Vars(r)["requestId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /requests/{id}/%s - Invalid request ID: %v", action, err)
		handlers.RespondBadRequest(w, msgInvalidRequestID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /requests/{id}/%s - Missing user ID", action)
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := decide(r.Context(), &reviewRequest.Request{RequestID: requestID, ActorID: userID})
	if err != nil {
		switch {
		case errors.Is(err, reviewRequest.ErrInvalidInput):
			h.logger.Warn("PATCH /requests/{id}/%s - Invalid input: %v", action, err)
			handlers.RespondBadRequest(w, msgInvalidRequestID)

		case errors.Is(err, reviewRequest.ErrRequestNotFound):
			h.logger.Warn("PATCH /requests/{id}/%s - Request not found: request_id=%d", action, requestID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, reviewRequest.ErrNotAuthorized):
			h.logger.Warn("PATCH /requests/{id}/%s - Not the owner: request_id=%d, user_id=%d", action, requestID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, reviewRequest.ErrAlreadyResolved):
			h.logger.Warn("PATCH /requests/{id}/%s - Already resolved: request_id=%d", action, requestID)
			handlers.RespondConflict(w, msgAlreadyResolved)

		case errors.Is(err, reviewRequest.ErrSlotUnavailable):
			h.logger.Warn("PATCH /requests/{id}/%s - Slot unavailable: request_id=%d", action, requestID)
			handlers.RespondConflict(w, msgSlotUnavailable)

		case errors.Is(err, reviewRequest.ErrStorageFailure):
			h.logger.Error("PATCH /requests/{id}/%s - Storage failure: request_id=%d, error=%v", action, requestID, err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgStorageFailure)

		default:
			h.logger.Error("PATCH /requests/{id}/%s - Failed: request_id=%d, error=%v", action, requestID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /requests/{id}/%s - Request resolved: request_id=%d, status=%s, user_id=%d",
		action, requestID, result.Status, userID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
