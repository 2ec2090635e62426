package mercadopago

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/girafadepapel/storefront-service/internal/config"
	"github.com/girafadepapel/storefront-service/internal/domain/errors"
	"github.com/girafadepapel/storefront-service/internal/domain/payment"
	"github.com/girafadepapel/storefront-service/internal/infrastructure/monitoring"
	"github.com/girafadepapel/storefront-service/internal/pkg/logger"
)

// Client talks to the Mercado Pago REST API. It implements
// ports.PaymentGateway.
type Client struct {
	baseURL     string
	accessToken string
	httpClient  *http.Client
	log         *logger.Logger
}

func NewClient(cfg config.MercadoPagoConfig, log *logger.Logger) *Client {
	return &Client{
		baseURL:     cfg.BaseURL,
		accessToken: cfg.AccessToken,
		httpClient:  &http.Client{Timeout: cfg.Timeout()},
		log:         log,
	}
}

// CreatePreference registers a hosted checkout page and returns its id and
// redirect URLs.
func (c *Client) CreatePreference(ctx context.Context, req *payment.PreferenceRequest) (*payment.Preference, error) {
	end := monitoring.TimeGatewayRequest("create_preference")

	var preference payment.Preference
	if err := c.do(ctx, http.MethodPost, "/checkout/preferences", req, &preference); err != nil {
		end("error")
		return nil, err
	}
	end("ok")
	if preference.ID == "" {
		return nil, fmt.Errorf("mercadopago: preference response missing id")
	}
	return &preference, nil
}

// GetPayment fetches the canonical state of a payment by its gateway id.
func (c *Client) GetPayment(ctx context.Context, paymentID string) (*payment.GatewayPayment, error) {
	end := monitoring.TimeGatewayRequest("get_payment")

	var details payment.GatewayPayment
	if err := c.do(ctx, http.MethodGet, "/v1/payments/"+paymentID, nil, &details); err != nil {
		end("error")
		return nil, err
	}
	end("ok")
	return &details, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("mercadopago: encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("mercadopago: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
		// The gateway dedupes retried creations on this key.
		req.Header.Set("X-Idempotency-Key", uuid.NewString())
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("Mercado Pago request failed", "method", method, "path", path, "error", err.Error())
		return errors.ErrGatewayUnavailable
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("mercadopago: read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return errors.ErrPaymentNotFound
	case resp.StatusCode >= 500:
		c.log.Error("Mercado Pago server error",
			"method", method,
			"path", path,
			"status", resp.StatusCode,
			"body", string(raw),
		)
		return errors.ErrGatewayUnavailable
	case resp.StatusCode >= 400:
		c.log.Warn("Mercado Pago rejected request",
			"method", method,
			"path", path,
			"status", resp.StatusCode,
			"body", string(raw),
		)
		return fmt.Errorf("%w: status %d", errors.ErrGatewayRejected, resp.StatusCode)
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("mercadopago: decode response: %w", err)
		}
	}
	return nil
}
