package payment

// DepositRequest запрос на сбор депозита
type DepositRequest struct {
	CorrelationID string  `json:"correlation_id"`
	Amount        float64 `json:"amount"`
}

// DepositResponse ответ провайдера с токеном для перехода на оплату
type DepositResponse struct {
	Token       string `json:"token"`
	RedirectURL string `json:"redirect_url"`
}

// UnlockRequest разблокировка списания остатка после подтверждения заявки
type UnlockRequest struct {
	Amount float64 `json:"amount"`
}

// ErrorResponse модель ошибки от платежного провайдера
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
