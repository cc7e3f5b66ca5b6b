package types

import "github.com/shopspring/decimal"

// MarketQuote is a transient per-request quote in the caller's display
// currency, sourced fresh from the provider or from the snapshot cache.
type MarketQuote struct {
	ID           string          `json:"id"`
	Symbol       string          `json:"symbol"`
	Name         string          `json:"name"`
	Image        string          `json:"image"`
	CurrentPrice decimal.Decimal `json:"currentPrice"`
	Change24h    float64         `json:"change24h"`
	Sparkline    []float64       `json:"sparkline,omitempty"`
}

// SimplePrice is the lightweight price-only quote used by the dashboard path.
type SimplePrice struct {
	Price     decimal.Decimal `json:"price"`
	Change24h float64         `json:"change24h"`
}
