package types

import "github.com/shopspring/decimal"

// Holding is one row per (user, symbol): the net open position and its
// weighted-average buy price. The symbol is stored as the user entered it
// (normalized to lower case), not as a provider identifier.
type Holding struct {
	ID          int             `json:"id"`
	UserID      int             `json:"userId"`
	Symbol      string          `json:"symbol"`
	Quantity    decimal.Decimal `json:"quantity"`
	AvgBuyPrice decimal.Decimal `json:"avgBuyPrice"`
}
