package checkout

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Sqr400Flashfund/sqr400flashfund/internal/catalog"
	"github.com/Sqr400Flashfund/sqr400flashfund/internal/domain"
	"github.com/Sqr400Flashfund/sqr400flashfund/internal/gateway"
)

// MockGateway implements gateway.OrderGateway for testing
type MockGateway struct {
	mu                 sync.Mutex
	CreateCalls        int
	ConfirmCalls       int
	CreateErr          error
	ConfirmErr         error
	CreateDelay        time.Duration // simulates a slow backend
	ConfirmDelay       time.Duration
	QuoteTTL           time.Duration
	Paid               bool // drives VerifyPayment and Download
	LastConfirmedOrder string
}

func (m *MockGateway) CreateOrder(_ context.Context, req gateway.CreateOrderRequest) (*domain.Order, error) {
	m.mu.Lock()
	m.CreateCalls++
	delay := m.CreateDelay
	createErr := m.CreateErr
	ttl := m.QuoteTTL
	m.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}
	if createErr != nil {
		return nil, createErr
	}
	if ttl <= 0 {
		ttl = gateway.DefaultQuoteTTL
	}

	amount := decimal.RequireFromString("0.030")
	now := time.Now().UTC()
	return &domain.Order{
		ID:            uuid.New().String(),
		CustomerEmail: req.CustomerEmail,
		CustomerName:  req.CustomerName,
		ProductID:     req.ProductID,
		AmountUSD:     decimal.NewFromInt(2000),
		AmountBTC:     amount,
		Status:        domain.OrderStatusPending,
		BTCAddress:    gateway.ReceivingAddress,
		DownloadToken: uuid.New().String(),
		ExpiresAt:     now.Add(ttl),
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

func (m *MockGateway) ConfirmPayment(_ context.Context, orderID string) (*gateway.PaymentStatus, error) {
	m.mu.Lock()
	m.ConfirmCalls++
	delay := m.ConfirmDelay
	confirmErr := m.ConfirmErr
	m.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}
	if confirmErr != nil {
		return nil, confirmErr
	}

	m.mu.Lock()
	m.LastConfirmedOrder = orderID
	m.mu.Unlock()
	return &gateway.PaymentStatus{Status: domain.OrderStatusPaymentSent}, nil
}

func (m *MockGateway) VerifyPayment(context.Context, string) (*gateway.PaymentStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Paid {
		return &gateway.PaymentStatus{Status: domain.OrderStatusConfirmed, Message: "payment verified"}, nil
	}
	return &gateway.PaymentStatus{Status: domain.OrderStatusPending}, nil
}

func (m *MockGateway) Download(context.Context, string, string) (*gateway.DownloadInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.Paid {
		return nil, gateway.ErrPaymentRequired
	}
	return &gateway.DownloadInfo{DownloadURL: "/downloads/software.zip"}, nil
}

func (m *MockGateway) Creates() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.CreateCalls
}

func (m *MockGateway) Confirms() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ConfirmCalls
}

func (m *MockGateway) SetPaid(paid bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Paid = paid
}

// MockClipboard records copied text
type MockClipboard struct {
	mu     sync.Mutex
	Copied []string
	Err    error
}

func (m *MockClipboard) Write(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Copied = append(m.Copied, text)
	return nil
}

// MockSink captures published confirmed events
type MockSink struct {
	mu     sync.Mutex
	Events []ConfirmedEvent
}

func (m *MockSink) PublishConfirmed(_ context.Context, event ConfirmedEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, event)
	return nil
}

func (m *MockSink) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Events)
}

func newSeededCatalog() *catalog.MemoryCatalog {
	return catalog.NewMemoryCatalog(catalog.SeedProducts())
}

// newTestController opens a review-stage session over the seeded catalog
func newTestController(gw gateway.OrderGateway, extras ...func(*Deps)) (*Controller, error) {
	deps := Deps{
		Catalog: catalog.NewMemoryCatalog(catalog.SeedProducts()),
		Gateway: gw,
	}
	for _, extra := range extras {
		extra(&deps)
	}
	return StartCheckout(context.Background(), deps, "sqr400-v58-pro")
}

// fillValidDraft enters valid customer info
func fillValidDraft(c *Controller) {
	_ = c.UpdateCustomerInfo(FieldEmail, "jane@x.com")
	_ = c.UpdateCustomerInfo(FieldName, "Jane Doe")
	_ = c.SetTermsAccepted(true)
}
