package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/Sqr400Flashfund/sqr400flashfund/internal/catalog"
	"github.com/Sqr400Flashfund/sqr400flashfund/internal/domain"
)

type ProductHandler struct {
	catalog catalog.Catalog
}

func NewProductHandler(c catalog.Catalog) *ProductHandler {
	return &ProductHandler{catalog: c}
}

type ProductResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Version       string          `json:"version"`
	Tier          string          `json:"tier"`
	Price         decimal.Decimal `json:"price"`
	OriginalPrice decimal.Decimal `json:"original_price"`
	Currency      string          `json:"currency"`
	BTCPrice      decimal.Decimal `json:"btc_price"`
	Description   string          `json:"description"`
	Features      []string        `json:"features"`
	Limitations   []string        `json:"limitations"`
	Badge         string          `json:"badge"`
	InStock       bool            `json:"in_stock"`
}

type ProductsResponse struct {
	Products []ProductResponse `json:"products"`
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.List(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to list products")
		return
	}

	out := make([]ProductResponse, len(products))
	for i, p := range products {
		out[i] = toProductResponse(p)
	}
	respondJSON(w, http.StatusOK, &ProductsResponse{Products: out})
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	product, err := h.catalog.GetByID(r.Context(), chi.URLParam(r, "product_id"))
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			respondError(w, http.StatusNotFound, "product_not_found", "product not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load product")
		return
	}
	respondJSON(w, http.StatusOK, toProductResponse(*product))
}

func toProductResponse(p domain.Product) ProductResponse {
	return ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Version:       p.Version,
		Tier:          p.Tier,
		Price:         p.Price,
		OriginalPrice: p.OriginalPrice,
		Currency:      p.Currency,
		BTCPrice:      p.BTCPrice,
		Description:   p.Description,
		Features:      p.Features,
		Limitations:   p.Limitations,
		Badge:         p.Badge,
		InStock:       p.InStock,
	}
}
