package checkout

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Sqr400Flashfund/sqr400flashfund/internal/domain"
	"github.com/Sqr400Flashfund/sqr400flashfund/internal/gateway"
)

// Advance moves the session to the next stage.
//
// From review it validates the draft, creates the order and enters the
// payment stage with a fresh quote. From payment it asserts the customer
// sent the funds; an expired quote fails closed with ErrQuoteExpired.
// On a confirmed session it returns ErrAlreadyConfirmed and changes
// nothing.
func (c *Controller) Advance(ctx context.Context) error {
	c.mu.Lock()

	switch c.stage {
	case domain.StageConfirmed:
		c.mu.Unlock()
		return ErrAlreadyConfirmed
	case domain.StagePayment:
		return c.advanceFromPayment(ctx) // unlocks itself around the gateway call
	default:
		return c.advanceFromReview(ctx) // unlocks itself around the gateway call
	}
}

// advanceFromReview is entered holding the lock and releases it around the
// order creation request so ticks and reads stay responsive. The inFlight
// flag keeps a concurrent Advance from creating a second order.
func (c *Controller) advanceFromReview(ctx context.Context) error {
	if c.inFlight {
		c.mu.Unlock()
		return ErrAdvanceInFlight
	}
	c.touchLocked()

	if verr := c.validateDraftLocked(); verr != nil {
		c.mu.Unlock()
		return verr
	}

	c.inFlight = true
	req := gateway.CreateOrderRequest{
		ProductID:     c.draft.ProductID,
		CustomerEmail: c.draft.CustomerEmail,
		CustomerName:  c.draft.CustomerName,
		AcceptTerms:   c.draft.TermsAccepted,
	}
	c.mu.Unlock()

	order, err := c.deps.Gateway.CreateOrder(ctx, req)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight = false

	if err != nil {
		c.gatewayErr = err
		return fmt.Errorf("%w: %v", ErrGateway, err)
	}

	expiresIn := int64(time.Until(order.ExpiresAt).Round(time.Second) / time.Second)
	if expiresIn <= 0 {
		expiresIn = int64(gateway.DefaultQuoteTTL / time.Second)
	}

	c.quote = &domain.PaymentQuote{
		OrderID:   order.ID,
		Address:   order.BTCAddress,
		Amount:    order.AmountBTC,
		IssuedAt:  order.CreatedAt,
		ExpiresIn: expiresIn,
	}
	c.remaining = expiresIn
	c.downloadToken = order.DownloadToken
	c.gatewayErr = nil
	c.stage = domain.StagePayment
	c.startCountdownLocked()
	return nil
}

// advanceFromPayment is entered holding the lock and releases it around the
// payment assertion so ticks and reads stay responsive during the request.
func (c *Controller) advanceFromPayment(ctx context.Context) error {
	if c.inFlight {
		c.mu.Unlock()
		return ErrAdvanceInFlight
	}
	c.touchLocked()

	if c.remaining <= 0 {
		c.mu.Unlock()
		return ErrQuoteExpired
	}

	c.inFlight = true
	orderID := c.quote.OrderID
	c.mu.Unlock()

	status, err := c.deps.Gateway.ConfirmPayment(ctx, orderID)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight = false

	if err != nil {
		c.gatewayErr = err
		return fmt.Errorf("%w: %v", ErrGateway, err)
	}
	if c.stage != domain.StagePayment {
		// the session left payment while the lock was released
		return fmt.Errorf("%w: session is in stage %s", ErrIllegalTransition, c.stage)
	}

	c.gatewayErr = nil
	c.stage = domain.StageConfirmed
	c.stopCountdownLocked()
	c.publishConfirmedLocked(status)
	return nil
}

// Back returns a payment-stage session to review, discarding the quote.
func (c *Controller) Back() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !domain.CanTransitionTo(c.stage, domain.StageReview) {
		return fmt.Errorf("%w: cannot go back from stage %s", ErrIllegalTransition, c.stage)
	}
	if c.inFlight {
		return ErrAdvanceInFlight
	}
	c.touchLocked()

	c.quote = nil
	c.remaining = 0
	c.stage = domain.StageReview
	c.stopCountdownLocked()
	return nil
}

func (c *Controller) publishConfirmedLocked(status *gateway.PaymentStatus) {
	if c.deps.Events == nil {
		return
	}

	event := ConfirmedEvent{
		SessionID:     c.id,
		OrderID:       c.quote.OrderID,
		ProductID:     c.draft.ProductID,
		CustomerEmail: c.draft.CustomerEmail,
		AmountBTC:     c.quote.Amount.String(),
		ConfirmedAt:   time.Now().UTC(),
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := c.deps.Events.PublishConfirmed(ctx, event); err != nil {
			slog.Error("failed to publish confirmed event",
				"session_id", event.SessionID, "order_id", event.OrderID,
				"gateway_status", status.Status, "error", err)
		}
	}()
}
