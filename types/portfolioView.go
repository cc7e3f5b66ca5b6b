package types

// PositionView is the rendered state of a single holding: market value, cost
// basis and P/L in the user's display currency. Values are plain floats for
// serialization; the ledger itself computes in decimals.
type PositionView struct {
	ID          int       `json:"id"`
	Symbol      string    `json:"symbol"`
	Name        string    `json:"name"`
	Image       string    `json:"image"`
	Quantity    float64   `json:"quantity"`
	Price       float64   `json:"price"`
	Value       float64   `json:"value"`
	AvgBuyPrice float64   `json:"avgBuyPrice"`
	PLAmount    float64   `json:"plAmount"`
	PLPercent   float64   `json:"plPercent"`
	Change24h   float64   `json:"change24h"`
	Sparkline   []float64 `json:"sparkline,omitempty"`
}

// PortfolioTotals aggregates per-position value and cost. ROIPercent is 0,
// not NaN, when the aggregate cost basis is zero.
type PortfolioTotals struct {
	Value      float64 `json:"value"`
	Cost       float64 `json:"cost"`
	PL         float64 `json:"pl"`
	ROIPercent float64 `json:"roiPercent"`
}
