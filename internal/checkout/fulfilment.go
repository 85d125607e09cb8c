package checkout

import (
	"context"
	"fmt"

	"github.com/Sqr400Flashfund/sqr400flashfund/internal/domain"
	"github.com/Sqr400Flashfund/sqr400flashfund/internal/gateway"
)

// VerifyPayment polls the gateway for the on-chain status of the session's
// order. Read-only with respect to the state machine; gateway errors pass
// through unwrapped so callers can map them.
func (c *Controller) VerifyPayment(ctx context.Context) (*gateway.PaymentStatus, error) {
	c.mu.Lock()
	quote := c.quote
	c.touchLocked()
	c.mu.Unlock()

	if quote == nil {
		return nil, ErrNoQuote
	}
	return c.deps.Gateway.VerifyPayment(ctx, quote.OrderID)
}

// Download resolves the download link for a confirmed session. The token
// is the one handed out with the confirmation snapshot; the gateway
// re-checks it against the order.
func (c *Controller) Download(ctx context.Context, token string) (*gateway.DownloadInfo, error) {
	c.mu.Lock()
	quote := c.quote
	stage := c.stage
	c.touchLocked()
	c.mu.Unlock()

	if quote == nil {
		return nil, ErrNoQuote
	}
	if stage != domain.StageConfirmed {
		return nil, fmt.Errorf("%w: download requires a confirmed session, not stage %s", ErrIllegalTransition, stage)
	}
	return c.deps.Gateway.Download(ctx, quote.OrderID, token)
}
