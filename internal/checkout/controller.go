package checkout

import (
	"context"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/Sqr400Flashfund/sqr400flashfund/internal/catalog"
	"github.com/Sqr400Flashfund/sqr400flashfund/internal/domain"
	"github.com/Sqr400Flashfund/sqr400flashfund/internal/gateway"
)

// Clipboard receives the text of a copy action. The HTTP layer hands the
// text back to the browser; tests plug in a recorder.
type Clipboard interface {
	Write(text string) error
}

// ConfirmedSink is notified once when a session reaches the confirmed
// stage. Publish failures must not fail the checkout.
type ConfirmedSink interface {
	PublishConfirmed(ctx context.Context, event ConfirmedEvent) error
}

// ConfirmedEvent is emitted when the customer asserts payment and the
// gateway accepts it.
type ConfirmedEvent struct {
	SessionID     string    `json:"session_id"`
	OrderID       string    `json:"order_id"`
	ProductID     string    `json:"product_id"`
	CustomerEmail string    `json:"customer_email"`
	AmountBTC     string    `json:"amount_btc"`
	ConfirmedAt   time.Time `json:"confirmed_at"`
}

// Deps is everything a checkout session talks to.
type Deps struct {
	Catalog   catalog.Catalog
	Gateway   gateway.OrderGateway
	Clipboard Clipboard     // optional
	Events    ConfirmedSink // optional
	// TickInterval overrides the one-second countdown tick. Tests only.
	TickInterval time.Duration
}

// Controller owns one checkout session: the order draft, the wizard stage,
// the payment quote and its countdown.
type Controller struct {
	mu   sync.Mutex
	deps Deps

	id            string
	product       domain.Product
	draft         domain.OrderDraft
	stage         domain.Stage
	quote         *domain.PaymentQuote
	downloadToken string

	remaining  int64 // countdown seconds, meaningful in StagePayment only
	inFlight   bool  // gateway request in flight
	gatewayErr error // last recoverable gateway failure

	stopTicker chan struct{}
	tickerWG   sync.WaitGroup

	lastTouched time.Time
	validate    *validator.Validate
}

// StartCheckout opens a session for a product. The product must resolve
// and be in stock.
func StartCheckout(ctx context.Context, deps Deps, productID string) (*Controller, error) {
	product, err := deps.Catalog.GetByID(ctx, productID)
	if err != nil {
		return nil, ErrProductNotFound
	}
	if !product.InStock {
		return nil, ErrProductNotFound
	}

	if deps.TickInterval <= 0 {
		deps.TickInterval = time.Second
	}

	return &Controller{
		deps:        deps,
		id:          uuid.New().String(),
		product:     *product,
		draft:       domain.OrderDraft{ProductID: product.ID},
		stage:       domain.StageReview,
		lastTouched: time.Now(),
		validate:    validator.New(validator.WithRequiredStructEnabled()),
	}, nil
}

// ID is the session identifier.
func (c *Controller) ID() string {
	return c.id
}

// Close stops the countdown if it is running. Safe to call more than once.
func (c *Controller) Close() {
	c.mu.Lock()
	c.stopCountdownLocked()
	c.mu.Unlock()
	c.tickerWG.Wait()
}

func (c *Controller) touchLocked() {
	c.lastTouched = time.Now()
}

// IdleSince reports the last time an operation touched the session.
func (c *Controller) IdleSince() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastTouched
}
