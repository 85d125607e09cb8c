package catalog

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Sqr400Flashfund/sqr400flashfund/internal/domain"
)

// SeedProducts returns the storefront's product line-up. Prices and BTC
// amounts must stay in sync with the backend's product collection.
func SeedProducts() []domain.Product {
	now := time.Now().UTC()
	return []domain.Product{
		{
			ID:            "sqr400-v58-lite",
			Name:          "SQR400 v5.8 Lite",
			Version:       "5.8",
			Tier:          "lite",
			Price:         decimal.NewFromInt(1200),
			OriginalPrice: decimal.NewFromInt(1500),
			Currency:      "USD",
			BTCPrice:      decimal.RequireFromString("0.018"),
			Description:   "Entry edition with the core feature set.",
			Features: []string{
				"Core feature set",
				"Standard interface",
				"Email support",
				"30-day money back guarantee",
			},
			Limitations: []string{
				"Limited daily usage",
				"No advanced customization",
			},
			Badge:     "Most Popular",
			InStock:   true,
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:            "sqr400-v58-pro",
			Name:          "SQR400 v5.8 Pro",
			Version:       "5.8",
			Tier:          "pro",
			Price:         decimal.NewFromInt(2000),
			OriginalPrice: decimal.NewFromInt(2500),
			Currency:      "USD",
			BTCPrice:      decimal.RequireFromString("0.030"),
			Description:   "Professional edition with unrestricted usage.",
			Features: []string{
				"Unlimited usage",
				"Professional interface",
				"Batch processing",
				"Priority support (24/7)",
				"Lifetime updates",
			},
			Limitations: []string{},
			Badge:       "Professional",
			InStock:     true,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:            "sqr400-v784",
			Name:          "SQR400 v7.8.4",
			Version:       "7.8.4",
			Tier:          "ultimate",
			Price:         decimal.NewFromInt(2500),
			OriginalPrice: decimal.NewFromInt(3000),
			Currency:      "USD",
			BTCPrice:      decimal.RequireFromString("0.037"),
			Description:   "Latest release with the full feature set and beta access.",
			Features: []string{
				"Full feature set",
				"Scripting support",
				"Analytics dashboard",
				"VIP support",
				"Lifetime updates + beta access",
			},
			Limitations: []string{},
			Badge:       "Latest Version",
			InStock:     true,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
	}
}
