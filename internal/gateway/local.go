package gateway

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Sqr400Flashfund/sqr400flashfund/internal/catalog"
	"github.com/Sqr400Flashfund/sqr400flashfund/internal/domain"
)

// DefaultQuoteTTL matches the backend's 30 minute payment window.
const DefaultQuoteTTL = 30 * time.Minute

// ReceivingAddress is the storefront's Bitcoin receiving address, issued on
// every quote the same way the backend does.
const ReceivingAddress = "bc1pxkf6z5nut9v62cy3ufcvcugj5uqra75nxz589swfh0knxadtdmuqkrt6u3"

// LocalGateway issues quotes locally against the catalog, without a backend
// round-trip. Used in dev mode and tests.
type LocalGateway struct {
	mu       sync.RWMutex
	catalog  catalog.Catalog
	orders   map[string]*domain.Order
	quoteTTL time.Duration
	now      func() time.Time
}

func NewLocalGateway(c catalog.Catalog) *LocalGateway {
	return &LocalGateway{
		catalog:  c,
		orders:   make(map[string]*domain.Order),
		quoteTTL: DefaultQuoteTTL,
		now:      time.Now,
	}
}

func (g *LocalGateway) CreateOrder(ctx context.Context, req CreateOrderRequest) (*domain.Order, error) {
	product, err := g.catalog.GetByID(ctx, req.ProductID)
	if err != nil {
		return nil, ErrProductNotFound
	}
	if !product.InStock {
		return nil, ErrOutOfStock
	}

	now := g.now().UTC()
	order := &domain.Order{
		ID:            uuid.New().String(),
		CustomerEmail: req.CustomerEmail,
		CustomerName:  req.CustomerName,
		ProductID:     req.ProductID,
		AmountUSD:     product.Price,
		AmountBTC:     product.BTCPrice,
		Status:        domain.OrderStatusPending,
		BTCAddress:    ReceivingAddress,
		DownloadToken: uuid.New().String(),
		ExpiresAt:     now.Add(g.quoteTTL),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	g.mu.Lock()
	g.orders[order.ID] = order
	g.mu.Unlock()

	copied := *order
	return &copied, nil
}

func (g *LocalGateway) ConfirmPayment(_ context.Context, orderID string) (*PaymentStatus, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	order, exists := g.orders[orderID]
	if !exists {
		return nil, ErrOrderNotFound
	}

	order.Status = domain.OrderStatusPaymentSent
	order.UpdatedAt = g.now().UTC()
	return &PaymentStatus{
		Status:  order.Status,
		Message: "payment asserted, waiting for confirmation",
	}, nil
}

func (g *LocalGateway) VerifyPayment(_ context.Context, orderID string) (*PaymentStatus, error) {
	g.mu.RLock()
	order, exists := g.orders[orderID]
	g.mu.RUnlock()
	if !exists {
		return nil, ErrOrderNotFound
	}

	if order.PaymentReceived {
		return &PaymentStatus{Status: domain.OrderStatusConfirmed, Message: "payment verified"}, nil
	}
	return &PaymentStatus{Status: order.Status, Message: "payment not yet detected"}, nil
}

func (g *LocalGateway) Download(_ context.Context, orderID, token string) (*DownloadInfo, error) {
	g.mu.RLock()
	order, exists := g.orders[orderID]
	g.mu.RUnlock()
	if !exists {
		return nil, ErrOrderNotFound
	}
	if order.DownloadToken != token {
		return nil, ErrInvalidToken
	}
	if order.Status != domain.OrderStatusConfirmed || !order.PaymentReceived {
		return nil, ErrPaymentRequired
	}

	return &DownloadInfo{
		DownloadURL:  "/downloads/" + orderID + "/" + token + "/software.zip",
		ExpiresAt:    g.now().UTC().Add(24 * time.Hour),
		Instructions: "Download expires in 24 hours.",
	}, nil
}

// MarkPaid flags an order as paid. Test and ops hook, not part of the
// OrderGateway contract.
func (g *LocalGateway) MarkPaid(orderID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if order, exists := g.orders[orderID]; exists {
		order.Status = domain.OrderStatusConfirmed
		order.PaymentReceived = true
		order.UpdatedAt = g.now().UTC()
	}
}
