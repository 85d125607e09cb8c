package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sqr400Flashfund/sqr400flashfund/internal/catalog"
	"github.com/Sqr400Flashfund/sqr400flashfund/internal/checkout"
	"github.com/Sqr400Flashfund/sqr400flashfund/internal/domain"
	"github.com/Sqr400Flashfund/sqr400flashfund/internal/gateway"
)

func newCheckoutRouter(t *testing.T) (*chi.Mux, *gateway.LocalGateway) {
	t.Helper()

	cat := catalog.NewMemoryCatalog(catalog.SeedProducts())
	gw := gateway.NewLocalGateway(cat)
	manager := checkout.NewManager(checkout.Deps{
		Catalog:      cat,
		Gateway:      gw,
		TickInterval: time.Hour, // keep the countdown still during assertions
	}, time.Hour)
	t.Cleanup(manager.Close)

	handler := NewCheckoutHandler(manager)
	r := chi.NewRouter()
	r.Post("/checkout", handler.Start)
	r.Route("/checkout/{session_id}", func(r chi.Router) {
		r.Get("/", handler.Get)
		r.Put("/customer", handler.UpdateCustomer)
		r.Post("/advance", handler.Advance)
		r.Post("/back", handler.Back)
		r.Post("/copy", handler.Copy)
		r.Get("/verify", handler.Verify)
		r.Get("/download/{token}", handler.Download)
	})
	return r, gw
}

func doJSON(t *testing.T, router *chi.Mux, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(method, path, reader))
	return recorder
}

func decodeSnapshot(t *testing.T, recorder *httptest.ResponseRecorder) checkout.Snapshot {
	t.Helper()
	var snap checkout.Snapshot
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&snap))
	return snap
}

func TestCheckoutHandler_StartSuccess(t *testing.T) {
	router, _ := newCheckoutRouter(t)

	recorder := doJSON(t, router, "POST", "/checkout", StartCheckoutRequestDTO{ProductID: "sqr400-v58-pro"})

	require.Equal(t, http.StatusCreated, recorder.Code)
	snap := decodeSnapshot(t, recorder)
	assert.NotEmpty(t, snap.SessionID)
	assert.Equal(t, domain.StageReview, snap.Stage)
	assert.Equal(t, "sqr400-v58-pro", snap.Product.ID)
	assert.NotEmpty(t, snap.ValidationErrors)
}

func TestCheckoutHandler_StartUnknownProduct(t *testing.T) {
	router, _ := newCheckoutRouter(t)

	recorder := doJSON(t, router, "POST", "/checkout", StartCheckoutRequestDTO{ProductID: "no-such"})

	require.Equal(t, http.StatusNotFound, recorder.Code)
	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
	assert.Equal(t, "product_not_found", resp.Code)
}

func TestCheckoutHandler_StartMissingProductID(t *testing.T) {
	router, _ := newCheckoutRouter(t)

	recorder := doJSON(t, router, "POST", "/checkout", StartCheckoutRequestDTO{})

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestCheckoutHandler_GetUnknownSession(t *testing.T) {
	router, _ := newCheckoutRouter(t)

	recorder := doJSON(t, router, "GET", "/checkout/missing", nil)

	require.Equal(t, http.StatusNotFound, recorder.Code)
	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
	assert.Equal(t, "session_not_found", resp.Code)
}

func TestCheckoutHandler_FullFlow(t *testing.T) {
	router, gw := newCheckoutRouter(t)

	recorder := doJSON(t, router, "POST", "/checkout", StartCheckoutRequestDTO{ProductID: "sqr400-v58-pro"})
	require.Equal(t, http.StatusCreated, recorder.Code)
	sessionID := decodeSnapshot(t, recorder).SessionID
	base := "/checkout/" + sessionID

	// advancing before the form is filled fails validation
	recorder = doJSON(t, router, "POST", base+"/advance", nil)
	require.Equal(t, http.StatusBadRequest, recorder.Code)
	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
	assert.Equal(t, "validation_error", resp.Code)
	assert.NotEmpty(t, resp.Fields)

	recorder = doJSON(t, router, "PUT", base+"/customer", CustomerInfoRequestDTO{
		Email:       "jane@example.com",
		Name:        "Jane Doe",
		AcceptTerms: true,
	})
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Empty(t, decodeSnapshot(t, recorder).ValidationErrors)

	recorder = doJSON(t, router, "POST", base+"/advance", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	snap := decodeSnapshot(t, recorder)
	assert.Equal(t, domain.StagePayment, snap.Stage)
	require.NotNil(t, snap.Payment)
	assert.Equal(t, gateway.ReceivingAddress, snap.Payment.Address)
	assert.Equal(t, "0.03", snap.Payment.Amount.String())
	assert.Equal(t, "30:00", snap.Payment.Remaining)

	recorder = doJSON(t, router, "POST", base+"/copy", CopyRequestDTO{Field: checkout.FieldAddress})
	require.Equal(t, http.StatusOK, recorder.Code)
	var copied CopyResponseDTO
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&copied))
	assert.Equal(t, gateway.ReceivingAddress, copied.Text)

	orderID := snap.Payment.OrderID

	recorder = doJSON(t, router, "POST", base+"/advance", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	confirmed := decodeSnapshot(t, recorder)
	assert.Equal(t, domain.StageConfirmed, confirmed.Stage)
	require.NotEmpty(t, confirmed.DownloadToken)

	// repeated confirm is a conflict
	recorder = doJSON(t, router, "POST", base+"/advance", nil)
	require.Equal(t, http.StatusConflict, recorder.Code)
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
	assert.Equal(t, "already_confirmed", resp.Code)

	// payment not yet detected on-chain
	recorder = doJSON(t, router, "GET", base+"/verify", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	var status gateway.PaymentStatus
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&status))
	assert.NotEqual(t, domain.OrderStatusConfirmed, status.Status)

	// download stays locked until the payment lands
	recorder = doJSON(t, router, "GET", base+"/download/"+confirmed.DownloadToken, nil)
	require.Equal(t, http.StatusForbidden, recorder.Code)
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
	assert.Equal(t, "payment_required", resp.Code)

	gw.MarkPaid(orderID)

	recorder = doJSON(t, router, "GET", base+"/verify", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&status))
	assert.Equal(t, domain.OrderStatusConfirmed, status.Status)

	recorder = doJSON(t, router, "GET", base+"/download/"+confirmed.DownloadToken, nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	var info gateway.DownloadInfo
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&info))
	assert.Contains(t, info.DownloadURL, orderID)
}

func TestCheckoutHandler_DownloadInvalidToken(t *testing.T) {
	router, gw := newCheckoutRouter(t)

	recorder := doJSON(t, router, "POST", "/checkout", StartCheckoutRequestDTO{ProductID: "sqr400-v58-lite"})
	require.Equal(t, http.StatusCreated, recorder.Code)
	base := "/checkout/" + decodeSnapshot(t, recorder).SessionID

	doJSON(t, router, "PUT", base+"/customer", CustomerInfoRequestDTO{
		Email: "jane@example.com", Name: "Jane Doe", AcceptTerms: true,
	})
	recorder = doJSON(t, router, "POST", base+"/advance", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	orderID := decodeSnapshot(t, recorder).Payment.OrderID

	// verify is available as soon as a quote exists
	recorder = doJSON(t, router, "GET", base+"/verify", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	recorder = doJSON(t, router, "POST", base+"/advance", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	gw.MarkPaid(orderID)

	recorder = doJSON(t, router, "GET", base+"/download/wrong-token", nil)
	require.Equal(t, http.StatusForbidden, recorder.Code)
	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
	assert.Equal(t, "invalid_token", resp.Code)
}

func TestCheckoutHandler_BackDiscardsQuote(t *testing.T) {
	router, _ := newCheckoutRouter(t)

	recorder := doJSON(t, router, "POST", "/checkout", StartCheckoutRequestDTO{ProductID: "sqr400-v58-lite"})
	require.Equal(t, http.StatusCreated, recorder.Code)
	base := "/checkout/" + decodeSnapshot(t, recorder).SessionID

	doJSON(t, router, "PUT", base+"/customer", CustomerInfoRequestDTO{
		Email: "jane@example.com", Name: "Jane Doe", AcceptTerms: true,
	})
	recorder = doJSON(t, router, "POST", base+"/advance", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	recorder = doJSON(t, router, "POST", base+"/back", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	snap := decodeSnapshot(t, recorder)
	assert.Equal(t, domain.StageReview, snap.Stage)
	assert.Nil(t, snap.Payment)

	// copy has nothing to copy once the quote is gone
	recorder = doJSON(t, router, "POST", base+"/copy", CopyRequestDTO{Field: checkout.FieldAddress})
	assert.Equal(t, http.StatusConflict, recorder.Code)
}

func TestCheckoutHandler_BackFromReviewConflicts(t *testing.T) {
	router, _ := newCheckoutRouter(t)

	recorder := doJSON(t, router, "POST", "/checkout", StartCheckoutRequestDTO{ProductID: "sqr400-v784"})
	require.Equal(t, http.StatusCreated, recorder.Code)
	base := "/checkout/" + decodeSnapshot(t, recorder).SessionID

	recorder = doJSON(t, router, "POST", base+"/back", nil)
	require.Equal(t, http.StatusConflict, recorder.Code)
	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
	assert.Equal(t, "illegal_transition", resp.Code)
}
