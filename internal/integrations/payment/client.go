package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client клиент платежного провайдера
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента платежного провайдера
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// RequestDeposit передает провайдеру сумму депозита и correlation id заявки.
// Возвращает токен/redirect для перехода клиента к оплате.
func (c *Client) RequestDeposit(ctx context.Context, correlationID string, amount float64) (*DepositResponse, error) {
	if amount < 0 {
		return nil, fmt.Errorf("%w: %.2f", ErrInvalidAmount, amount)
	}

	endpoint := fmt.Sprintf("%s/internal/deposits", c.baseURL)

	var out DepositResponse
	if err := c.post(ctx, endpoint, DepositRequest{CorrelationID: correlationID, Amount: amount}, &out); err != nil {
		return nil, err
	}
	if out.Token == "" {
		return nil, fmt.Errorf("%w: empty token", ErrInvalidResponse)
	}

	c.log.Info("Payment: deposit requested correlation_id=%s amount=%.2f", correlationID, amount)
	return &out, nil
}

// UnlockCapture разрешает провайдеру списать остаток после подтверждения заявки
func (c *Client) UnlockCapture(ctx context.Context, correlationID string, amount float64) error {
	if amount < 0 {
		return fmt.Errorf("%w: %.2f", ErrInvalidAmount, amount)
	}

	endpoint := fmt.Sprintf("%s/internal/captures/%s/unlock", c.baseURL, url.PathEscape(correlationID))

	if err := c.post(ctx, endpoint, UnlockRequest{Amount: amount}, nil); err != nil {
		return err
	}

	c.log.Info("Payment: capture unlocked correlation_id=%s amount=%.2f", correlationID, amount)
	return nil
}

func (c *Client) post(ctx context.Context, endpoint string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusAccepted:
		// Продолжаем обработку
	case http.StatusNoContent:
		return nil
	case http.StatusBadRequest, http.StatusConflict, http.StatusUnprocessableEntity:
		var errResp ErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&errResp)
		return fmt.Errorf("%w: status %d: %s", ErrRejected, resp.StatusCode, errResp.Message)
	default:
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(raw))
	}

	if out == nil {
		return nil
	}

	// Парсим ответ
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}
