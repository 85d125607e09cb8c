package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/Sqr400Flashfund/sqr400flashfund/internal/domain"
)

// HTTPGateway talks to the backend order API over REST/JSON. Requests run
// through a circuit breaker so a dead backend fails fast instead of having
// every checkout wait out the timeout.
type HTTPGateway struct {
	baseURL string
	client  *http.Client
	timeout time.Duration
	breaker *gobreaker.CircuitBreaker[*http.Response]
}

func NewHTTPGateway(baseURL string, timeout time.Duration) *HTTPGateway {
	return &HTTPGateway{
		baseURL: baseURL,
		client:  &http.Client{},
		timeout: timeout,
		breaker: gobreaker.NewCircuitBreaker[*http.Response](gobreaker.Settings{
			Name:    "order-backend",
			Timeout: 30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
		}),
	}
}

func (g *HTTPGateway) CreateOrder(ctx context.Context, req CreateOrderRequest) (*domain.Order, error) {
	var order domain.Order
	err := g.do(ctx, http.MethodPost, "/api/orders/", req, &order)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (g *HTTPGateway) ConfirmPayment(ctx context.Context, orderID string) (*PaymentStatus, error) {
	// The backend has no separate "payment sent" endpoint; asserting payment
	// maps onto the verification poll.
	return g.VerifyPayment(ctx, orderID)
}

func (g *HTTPGateway) VerifyPayment(ctx context.Context, orderID string) (*PaymentStatus, error) {
	var status PaymentStatus
	err := g.do(ctx, http.MethodPost, "/api/orders/"+orderID+"/verify-payment", nil, &status)
	if err != nil {
		return nil, err
	}
	return &status, nil
}

func (g *HTTPGateway) Download(ctx context.Context, orderID, token string) (*DownloadInfo, error) {
	var info DownloadInfo
	err := g.do(ctx, http.MethodGet, "/api/orders/"+orderID+"/download/"+token, nil, &info)
	if err != nil {
		return nil, err
	}
	return &info, nil
}

func (g *HTTPGateway) do(ctx context.Context, method, path string, body, out interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request failed: %w", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request failed: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.breaker.Execute(func() (*http.Response, error) {
		return g.client.Do(req)
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrGatewayUnreachable, err)
	}
	defer resp.Body.Close()

	if err := mapStatus(resp.StatusCode); err != nil {
		return err
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response failed: %w", err)
		}
	}
	return nil
}

func mapStatus(code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusNotFound:
		return ErrOrderNotFound
	case code == http.StatusForbidden:
		return ErrPaymentRequired
	case code == http.StatusBadRequest:
		return ErrOutOfStock
	default:
		return fmt.Errorf("%w: backend returned %d", ErrGatewayUnreachable, code)
	}
}
