package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderDraft is the customer+product record being assembled during one
// checkout session. ProductID is fixed when checkout starts; the customer
// fields stay mutable until the session advances past review.
type OrderDraft struct {
	ProductID     string `json:"product_id"`
	CustomerEmail string `json:"customer_email"`
	CustomerName  string `json:"customer_name"`
	TermsAccepted bool   `json:"terms_accepted"`
}

// PaymentQuote is the address/amount/expiry tuple issued for one checkout
// attempt. Immutable once issued.
type PaymentQuote struct {
	OrderID   string          `json:"order_id"`
	Address   string          `json:"address"`
	Amount    decimal.Decimal `json:"amount"`
	IssuedAt  time.Time       `json:"issued_at"`
	ExpiresIn int64           `json:"expires_in"` // seconds, fixed at issuance
}

type OrderStatus string

const (
	OrderStatusPending     OrderStatus = "pending"
	OrderStatusPaymentSent OrderStatus = "payment_sent"
	OrderStatusConfirmed   OrderStatus = "confirmed"
	OrderStatusCompleted   OrderStatus = "completed"
	OrderStatusExpired     OrderStatus = "expired"
)

// Order is the gateway-side order record backing a quote.
type Order struct {
	ID              string          `json:"id"`
	CustomerEmail   string          `json:"customer_email"`
	CustomerName    string          `json:"customer_name"`
	ProductID       string          `json:"product_id"`
	AmountUSD       decimal.Decimal `json:"amount_usd"`
	AmountBTC       decimal.Decimal `json:"amount_btc"`
	Status          OrderStatus     `json:"status"`
	BTCAddress      string          `json:"btc_address"`
	PaymentReceived bool            `json:"payment_received"`
	DownloadToken   string          `json:"download_token"`
	ExpiresAt       time.Time       `json:"expires_at"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
