package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry. Prices are kept as decimals so the BTC
// amount survives quoting without float drift.
type Product struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Version       string          `json:"version"`
	Tier          string          `json:"tier"` // 'lite', 'pro', 'ultimate'
	Price         decimal.Decimal `json:"price"`
	OriginalPrice decimal.Decimal `json:"original_price"`
	Currency      string          `json:"currency"`
	BTCPrice      decimal.Decimal `json:"btc_price"`
	Description   string          `json:"description"`
	Features      []string        `json:"features"`
	Limitations   []string        `json:"limitations"`
	Badge         string          `json:"badge"`
	InStock       bool            `json:"in_stock"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// Discount is the difference between the list price and the current price,
// zero when the product is not discounted.
func (p Product) Discount() decimal.Decimal {
	if p.OriginalPrice.GreaterThan(p.Price) {
		return p.OriginalPrice.Sub(p.Price)
	}
	return decimal.Zero
}
