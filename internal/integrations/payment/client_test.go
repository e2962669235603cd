package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MarketplaceBooking/pkg/logger"
)

func TestClient_RequestDeposit(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/internal/deposits", r.URL.Path)

			var body DepositRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "corr-1", body.CorrelationID)
			assert.Equal(t, 30.0, body.Amount)

			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(DepositResponse{Token: "tok-1", RedirectURL: "https://pay/tok-1"})
		}))
		defer srv.Close()

		c := NewClient(srv.URL, time.Second, logger.Nop())
		resp, err := c.RequestDeposit(context.Background(), "corr-1", 30)

		require.NoError(t, err)
		assert.Equal(t, "tok-1", resp.Token)
		assert.Equal(t, "https://pay/tok-1", resp.RedirectURL)
	})

	t.Run("rejected", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_ = json.NewEncoder(w).Encode(ErrorResponse{Code: 422, Message: "amount too small"})
		}))
		defer srv.Close()

		c := NewClient(srv.URL, time.Second, logger.Nop())
		_, err := c.RequestDeposit(context.Background(), "corr-1", 0.01)

		assert.ErrorIs(t, err, ErrRejected)
		assert.Contains(t, err.Error(), "amount too small")
	})

	t.Run("server error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		c := NewClient(srv.URL, time.Second, logger.Nop())
		_, err := c.RequestDeposit(context.Background(), "corr-1", 30)

		assert.ErrorIs(t, err, ErrInvalidResponse)
	})

	t.Run("empty token", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_ = json.NewEncoder(w).Encode(DepositResponse{})
		}))
		defer srv.Close()

		c := NewClient(srv.URL, time.Second, logger.Nop())
		_, err := c.RequestDeposit(context.Background(), "corr-1", 30)

		assert.ErrorIs(t, err, ErrInvalidResponse)
	})

	t.Run("timeout", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		defer srv.Close()

		c := NewClient(srv.URL, 20*time.Millisecond, logger.Nop())
		_, err := c.RequestDeposit(context.Background(), "corr-1", 30)

		assert.ErrorIs(t, err, ErrInternal)
	})

	t.Run("negative amount", func(t *testing.T) {
		c := NewClient("http://unused", time.Second, logger.Nop())
		_, err := c.RequestDeposit(context.Background(), "corr-1", -1)
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})
}

func TestClient_UnlockCapture(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/internal/captures/corr-9/unlock", r.URL.Path)

		var body UnlockRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, 90.0, body.Amount)

		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, logger.Nop())
	require.NoError(t, c.UnlockCapture(context.Background(), "corr-9", 90))
}
