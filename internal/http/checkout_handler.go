package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Sqr400Flashfund/sqr400flashfund/internal/checkout"
)

type CheckoutHandler struct {
	manager *checkout.Manager
}

func NewCheckoutHandler(manager *checkout.Manager) *CheckoutHandler {
	return &CheckoutHandler{manager: manager}
}

type StartCheckoutRequestDTO struct {
	ProductID string `json:"product_id"`
}

type CustomerInfoRequestDTO struct {
	Email       string `json:"email"`
	Name        string `json:"name"`
	AcceptTerms bool   `json:"accept_terms"`
}

type CopyRequestDTO struct {
	Field string `json:"field"`
}

type CopyResponseDTO struct {
	Field string `json:"field"`
	Text  string `json:"text"`
}

// POST /api/v1/checkout
func (h *CheckoutHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req StartCheckoutRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "missing_product_id", "product_id is required")
		return
	}

	session, err := h.manager.Start(r.Context(), req.ProductID)
	if err != nil {
		handleCheckoutError(w, err)
		return
	}

	slog.Info("checkout started",
		"session_id", session.ID(), "product_id", req.ProductID,
		"request_id", getRequestID(r.Context()))
	respondJSON(w, http.StatusCreated, session.Snapshot())
}

// GET /api/v1/checkout/{session_id}
func (h *CheckoutHandler) Get(w http.ResponseWriter, r *http.Request) {
	session, err := h.manager.Get(chi.URLParam(r, "session_id"))
	if err != nil {
		handleCheckoutError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, session.Snapshot())
}

// PUT /api/v1/checkout/{session_id}/customer
func (h *CheckoutHandler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	session, err := h.manager.Get(chi.URLParam(r, "session_id"))
	if err != nil {
		handleCheckoutError(w, err)
		return
	}

	var req CustomerInfoRequestDTO
	if errDecode := json.NewDecoder(r.Body).Decode(&req); errDecode != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if errUpdate := session.UpdateCustomerInfo(checkout.FieldEmail, req.Email); errUpdate != nil {
		handleCheckoutError(w, errUpdate)
		return
	}
	if errUpdate := session.UpdateCustomerInfo(checkout.FieldName, req.Name); errUpdate != nil {
		handleCheckoutError(w, errUpdate)
		return
	}
	if errUpdate := session.SetTermsAccepted(req.AcceptTerms); errUpdate != nil {
		handleCheckoutError(w, errUpdate)
		return
	}

	respondJSON(w, http.StatusOK, session.Snapshot())
}

// POST /api/v1/checkout/{session_id}/advance
func (h *CheckoutHandler) Advance(w http.ResponseWriter, r *http.Request) {
	session, err := h.manager.Get(chi.URLParam(r, "session_id"))
	if err != nil {
		handleCheckoutError(w, err)
		return
	}

	if errAdvance := session.Advance(r.Context()); errAdvance != nil {
		handleCheckoutError(w, errAdvance)
		return
	}

	slog.Info("checkout advanced",
		"session_id", session.ID(), "stage", session.Stage(),
		"request_id", getRequestID(r.Context()))
	respondJSON(w, http.StatusOK, session.Snapshot())
}

// POST /api/v1/checkout/{session_id}/back
func (h *CheckoutHandler) Back(w http.ResponseWriter, r *http.Request) {
	session, err := h.manager.Get(chi.URLParam(r, "session_id"))
	if err != nil {
		handleCheckoutError(w, err)
		return
	}

	if errBack := session.Back(); errBack != nil {
		handleCheckoutError(w, errBack)
		return
	}
	respondJSON(w, http.StatusOK, session.Snapshot())
}

// GET /api/v1/checkout/{session_id}/verify
func (h *CheckoutHandler) Verify(w http.ResponseWriter, r *http.Request) {
	session, err := h.manager.Get(chi.URLParam(r, "session_id"))
	if err != nil {
		handleCheckoutError(w, err)
		return
	}

	status, errVerify := session.VerifyPayment(r.Context())
	if errVerify != nil {
		handleCheckoutError(w, errVerify)
		return
	}
	respondJSON(w, http.StatusOK, status)
}

// GET /api/v1/checkout/{session_id}/download/{token}
func (h *CheckoutHandler) Download(w http.ResponseWriter, r *http.Request) {
	session, err := h.manager.Get(chi.URLParam(r, "session_id"))
	if err != nil {
		handleCheckoutError(w, err)
		return
	}

	info, errDownload := session.Download(r.Context(), chi.URLParam(r, "token"))
	if errDownload != nil {
		handleCheckoutError(w, errDownload)
		return
	}

	slog.Info("download link issued",
		"session_id", session.ID(), "request_id", getRequestID(r.Context()))
	respondJSON(w, http.StatusOK, info)
}

// POST /api/v1/checkout/{session_id}/copy
func (h *CheckoutHandler) Copy(w http.ResponseWriter, r *http.Request) {
	session, err := h.manager.Get(chi.URLParam(r, "session_id"))
	if err != nil {
		handleCheckoutError(w, err)
		return
	}

	var req CopyRequestDTO
	if errDecode := json.NewDecoder(r.Body).Decode(&req); errDecode != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	text, errCopy := session.CopyField(req.Field)
	if errCopy != nil {
		handleCheckoutError(w, errCopy)
		return
	}
	respondJSON(w, http.StatusOK, CopyResponseDTO{Field: req.Field, Text: text})
}
