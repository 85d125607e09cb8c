package checkout

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrProductNotFound ends the session before it starts; the caller
	// redirects back to the catalog.
	ErrProductNotFound = errors.New("product not found or out of stock")
	// ErrIllegalTransition flags an operation that is not valid in the
	// session's current stage.
	ErrIllegalTransition = errors.New("illegal transition of checkout stage")
	// ErrQuoteExpired means the payment window closed; a fresh quote is
	// required before the session can be confirmed.
	ErrQuoteExpired = errors.New("payment quote expired, re-quote required")
	// ErrAlreadyConfirmed is returned by Advance on a confirmed session.
	ErrAlreadyConfirmed = errors.New("checkout already confirmed")
	// ErrAdvanceInFlight rejects a second Advance (or Back) while a gateway
	// request is still pending.
	ErrAdvanceInFlight = errors.New("advance already in flight")
	// ErrGateway wraps order-gateway failures. The draft survives so the
	// customer can retry without re-entering anything.
	ErrGateway = errors.New("order gateway error")
	// ErrNoQuote is returned by CopyField before a quote has been issued.
	ErrNoQuote = errors.New("no payment quote issued")
	// ErrSessionNotFound is returned by the manager for unknown session ids.
	ErrSessionNotFound = errors.New("checkout session not found")
)

// FieldError names one customer-info constraint that failed.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError collects every constraint the order draft misses, so the
// UI can annotate all controls at once.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	reasons := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		reasons[i] = f.Field + ": " + f.Reason
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(reasons, "; "))
}
