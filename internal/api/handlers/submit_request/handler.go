package submit_request

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/api/handlers"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/api/middleware"
	submitRequest "github.com/m04kA/SMC-MarketplaceBooking/internal/usecase/submit_request"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidServiceID   = "некорректный ID услуги"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidInput       = "некорректные данные заявки, время ожидается в формате HH:MM"
	msgInvalidTimeRange   = "время окончания должно быть позже времени начала минимум на час"
	msgServiceNotFound    = "услуга не найдена"
	msgSlotUnavailable    = "этот слот только что заняли или он недоступен, выберите другую дату или время"
	msgTimeout            = "сервис не успел обработать заявку, попробуйте еще раз"
	msgStorageFailure     = "хранилище временно недоступно, попробуйте позже"
)

type Handler struct {
	useCase SubmitRequestUseCase
	logger  Logger
}

func NewHandler(useCase SubmitRequestUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/services/{serviceId}/requests
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceID, err := strconv.ParseInt(mux.Vars(r)["serviceId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /services/{id}/requests - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /services/{id}/requests - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var body SubmitRequestBody
	if err := handlers.DecodeJSON(r, &body); err != nil {
		h.logger.Warn("POST /services/{id}/requests - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := body.ToUseCaseRequest(serviceID, userID)
	if err != nil {
		h.logger.Warn("POST /services/{id}/requests - Failed to parse date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, submitRequest.ErrInvalidInput):
			h.logger.Warn("POST /services/{id}/requests - Invalid input: service_id=%d, user_id=%d: %v", serviceID, userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, submitRequest.ErrInvalidTimeRange):
			h.logger.Warn("POST /services/{id}/requests - Invalid time range: service_id=%d, user_id=%d", serviceID, userID)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgInvalidTimeRange)

		case errors.Is(err, submitRequest.ErrServiceNotFound):
			h.logger.Warn("POST /services/{id}/requests - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, submitRequest.ErrSlotUnavailable):
			h.logger.Warn("POST /services/{id}/requests - Slot unavailable: service_id=%d, user_id=%d, date=%s",
				serviceID, userID, body.Date)
			handlers.RespondConflict(w, msgSlotUnavailable)

		case errors.Is(err, submitRequest.ErrTimeout):
			h.logger.Error("POST /services/{id}/requests - Timeout: service_id=%d, user_id=%d", serviceID, userID)
			handlers.RespondError(w, http.StatusGatewayTimeout, msgTimeout)

		case errors.Is(err, submitRequest.ErrStorageFailure):
			h.logger.Error("POST /services/{id}/requests - Storage failure: service_id=%d, error=%v", serviceID, err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgStorageFailure)

		default:
			h.logger.Error("POST /services/{id}/requests - Failed to submit request: service_id=%d, user_id=%d, error=%v",
				serviceID, userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /services/{id}/requests - Request submitted: request_id=%d, service_id=%d, user_id=%d",
		result.ID, serviceID, userID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
