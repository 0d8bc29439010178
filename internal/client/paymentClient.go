package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"shoppingcart-backend/internal/checkout"
	"shoppingcart-backend/internal/config"
	"shoppingcart-backend/internal/dto"
)

// paymentClientImpl talks to the upstream payment-processing API: card
// charges, cash-on-delivery orders and order-status lookups. It implements
// checkout.PaymentClient.
type paymentClientImpl struct {
	httpClient *http.Client
	baseApiURL string
}

func NewPaymentClient(paymentCfg *config.Payment) checkout.PaymentClient {
	timeout := paymentCfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &paymentClientImpl{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseApiURL: paymentCfg.BaseApiURL,
	}
}

func (c *paymentClientImpl) ProcessCardPayment(ctx context.Context, cardID int64, req *dto.PaymentRequest, token string) (*dto.OrderResult, error) {
	url := fmt.Sprintf("%s/api/v1/payments/cards/%d/process", c.baseApiURL, cardID)
	return c.postPayment(ctx, url, req, token)
}

func (c *paymentClientImpl) CreateCODOrder(ctx context.Context, req *dto.PaymentRequest, token string) (*dto.OrderResult, error) {
	url := fmt.Sprintf("%s/api/v1/orders/cod", c.baseApiURL)
	return c.postPayment(ctx, url, req, token)
}

func (c *paymentClientImpl) GetOrderStatus(ctx context.Context, idempotencyKey, token string) (*dto.OrderResult, error) {
	url := fmt.Sprintf("%s/api/v1/payments/status?idempotency_key=%s", c.baseApiURL, idempotencyKey)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("http new request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("payment status request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		// the upstream never saw this key
		return &dto.OrderResult{Success: false, PaymentStatus: "unknown"}, nil
	}
	return decodeResult(resp)
}

func (c *paymentClientImpl) postPayment(ctx context.Context, url string, req *dto.PaymentRequest, token string) (*dto.OrderResult, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal payment request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("http new request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+token)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Idempotency-Key", req.IdempotencyKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("payment request: %w", err)
	}
	defer resp.Body.Close()

	return decodeResult(resp)
}

// decodeResult maps the HTTP response onto the checkout error taxonomy.
// 401 means the bearer token is missing or expired; any other non-2xx status
// is a server rejection surfaced with the server's own message.
func decodeResult(resp *http.Response) (*dto.OrderResult, error) {
	if resp.StatusCode == http.StatusUnauthorized {
		return nil, checkout.ErrUnauthenticated
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		message := serverMessage(raw)
		if message == "" {
			message = fmt.Sprintf("payment service returned status %d", resp.StatusCode)
		}
		return nil, checkout.NewError(checkout.KindServerRejected, message, nil)
	}

	var result dto.OrderResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode payment response: %w", err)
	}
	return &result, nil
}

func serverMessage(raw []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return string(raw)
	}
	if body.Message != "" {
		return body.Message
	}
	return body.Error
}
