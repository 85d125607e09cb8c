package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Sqr400Flashfund/sqr400flashfund/internal/checkout"
	"github.com/Sqr400Flashfund/sqr400flashfund/internal/gateway"
)

type ErrorResponse struct {
	Error   string                `json:"error"`
	Code    string                `json:"code,omitempty"`
	Details string                `json:"details,omitempty"`
	Fields  []checkout.FieldError `json:"fields,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// handleCheckoutError maps checkout and gateway failures onto HTTP codes.
func handleCheckoutError(w http.ResponseWriter, err error) {
	var verr *checkout.ValidationError
	if errors.As(err, &verr) {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:  "validation failed",
			Code:   "validation_error",
			Fields: verr.Fields,
		})
		return
	}

	switch {
	case errors.Is(err, checkout.ErrProductNotFound):
		respondError(w, http.StatusNotFound, "product_not_found", err.Error())
	case errors.Is(err, checkout.ErrSessionNotFound):
		respondError(w, http.StatusNotFound, "session_not_found", err.Error())
	case errors.Is(err, checkout.ErrQuoteExpired):
		respondError(w, http.StatusConflict, "quote_expired", err.Error())
	case errors.Is(err, checkout.ErrAlreadyConfirmed):
		respondError(w, http.StatusConflict, "already_confirmed", err.Error())
	case errors.Is(err, checkout.ErrAdvanceInFlight):
		respondError(w, http.StatusConflict, "advance_in_flight", err.Error())
	case errors.Is(err, checkout.ErrIllegalTransition):
		respondError(w, http.StatusConflict, "illegal_transition", err.Error())
	case errors.Is(err, checkout.ErrNoQuote):
		respondError(w, http.StatusConflict, "no_quote", err.Error())
	case errors.Is(err, gateway.ErrOrderNotFound):
		respondError(w, http.StatusNotFound, "order_not_found", err.Error())
	case errors.Is(err, gateway.ErrInvalidToken):
		respondError(w, http.StatusForbidden, "invalid_token", err.Error())
	case errors.Is(err, gateway.ErrPaymentRequired):
		respondError(w, http.StatusForbidden, "payment_required", err.Error())
	case errors.Is(err, checkout.ErrGateway), errors.Is(err, gateway.ErrGatewayUnreachable):
		respondError(w, http.StatusBadGateway, "gateway_error", err.Error())
	default:
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
