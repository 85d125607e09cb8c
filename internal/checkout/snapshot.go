package checkout

import (
	"github.com/shopspring/decimal"

	"github.com/Sqr400Flashfund/sqr400flashfund/internal/domain"
)

// PaymentView is the quote as the presentation layer sees it. Present only
// once a quote has been issued.
type PaymentView struct {
	OrderID          string          `json:"order_id"`
	Address          string          `json:"address"`
	Amount           decimal.Decimal `json:"amount"`
	ExpiresIn        int64           `json:"expires_in"`
	SecondsRemaining int64           `json:"seconds_remaining"`
	Remaining        string          `json:"remaining"`
	Expired          bool            `json:"expired"`
}

// Snapshot is a read-only view of the session, recomputed per call.
type Snapshot struct {
	SessionID        string             `json:"session_id"`
	Stage            domain.Stage       `json:"stage"`
	Product          domain.Product     `json:"product"`
	Draft            domain.OrderDraft  `json:"draft"`
	Payment          *PaymentView       `json:"payment,omitempty"`
	DownloadToken    string             `json:"download_token,omitempty"`
	ValidationErrors []FieldError       `json:"validation_errors,omitempty"`
	GatewayError     string             `json:"gateway_error,omitempty"`
	Retryable        bool               `json:"retryable,omitempty"`
}

// Snapshot returns the current read-only view of the session.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := Snapshot{
		SessionID: c.id,
		Stage:     c.stage,
		Product:   c.product,
		Draft:     c.draft,
	}

	if c.stage == domain.StageReview {
		if verr := c.validateDraftLocked(); verr != nil {
			snap.ValidationErrors = verr.Fields
		}
	}

	if c.quote != nil {
		snap.Payment = &PaymentView{
			OrderID:          c.quote.OrderID,
			Address:          c.quote.Address,
			Amount:           c.quote.Amount,
			ExpiresIn:        c.quote.ExpiresIn,
			SecondsRemaining: c.remaining,
			Remaining:        formatSeconds(c.remaining),
			Expired:          c.stage == domain.StagePayment && c.remaining <= 0,
		}
	}

	if c.stage == domain.StageConfirmed {
		snap.DownloadToken = c.downloadToken
	}

	if c.gatewayErr != nil {
		snap.GatewayError = c.gatewayErr.Error()
		snap.Retryable = true
	}

	return snap
}

// Stage reports the current wizard stage.
func (c *Controller) Stage() domain.Stage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stage
}
