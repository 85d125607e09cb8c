package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/Sqr400Flashfund/sqr400flashfund/internal/contact"
)

type ContactHandler struct {
	contact *contact.Service
}

func NewContactHandler(c *contact.Service) *ContactHandler {
	return &ContactHandler{contact: c}
}

type SubscribeRequestDTO struct {
	Email string `json:"email"`
}

type MessageResponseDTO struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

func (h *ContactHandler) SubmitMessage(w http.ResponseWriter, r *http.Request) {
	var input contact.MessageInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_body", "invalid request body")
		return
	}

	msg, err := h.contact.SubmitMessage(r.Context(), input)
	if err != nil {
		handleContactError(w, err)
		return
	}

	slog.Info("contact message received", "message_id", msg.ID, "request_id", getRequestID(r.Context()))
	respondJSON(w, http.StatusCreated, MessageResponseDTO{
		ID:      msg.ID,
		Message: "message received",
	})
}

func (h *ContactHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req SubscribeRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_body", "invalid request body")
		return
	}

	if err := h.contact.Subscribe(r.Context(), req.Email); err != nil {
		handleContactError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{"message": "subscribed"})
}

func handleContactError(w http.ResponseWriter, err error) {
	var verrs validator.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		respondError(w, http.StatusBadRequest, "validation_error", verrs.Error())
	case errors.Is(err, contact.ErrAlreadySubscribed):
		respondError(w, http.StatusConflict, "already_subscribed", err.Error())
	default:
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
