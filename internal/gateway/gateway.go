package gateway

import (
	"context"
	"errors"
	"time"

	"github.com/Sqr400Flashfund/sqr400flashfund/internal/domain"
)

// OrderGateway creates order records, quotes the Bitcoin payment for them
// and later verifies the payment.
type OrderGateway interface {
	// CreateOrder registers a new order and returns it together with the
	// payment address, amount and expiry window.
	CreateOrder(ctx context.Context, req CreateOrderRequest) (*domain.Order, error)
	// ConfirmPayment records that the customer asserted the payment was sent.
	ConfirmPayment(ctx context.Context, orderID string) (*PaymentStatus, error)
	// VerifyPayment polls whether the payment has been detected on-chain.
	VerifyPayment(ctx context.Context, orderID string) (*PaymentStatus, error)
	// Download resolves the download link once payment is confirmed.
	Download(ctx context.Context, orderID, token string) (*DownloadInfo, error)
}

type CreateOrderRequest struct {
	ProductID     string `json:"product_id"`
	CustomerEmail string `json:"customer_email"`
	CustomerName  string `json:"customer_name"`
	AcceptTerms   bool   `json:"accept_terms"`
}

type PaymentStatus struct {
	Status  domain.OrderStatus `json:"status"`
	Message string             `json:"message"`
}

type DownloadInfo struct {
	DownloadURL  string    `json:"download_url"`
	ExpiresAt    time.Time `json:"expires_at"`
	Instructions string    `json:"instructions"`
}

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrProductNotFound    = errors.New("product not found")
	ErrOutOfStock         = errors.New("product is out of stock")
	ErrPaymentRequired    = errors.New("payment not confirmed")
	ErrInvalidToken       = errors.New("invalid download token")
	ErrGatewayUnreachable = errors.New("order gateway unreachable")
)
