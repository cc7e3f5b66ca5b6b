package types

import (
	"time"

	"github.com/shopspring/decimal"
)

type TradeType string

const (
	TradeTypeBuy  TradeType = "BUY"
	TradeTypeSell TradeType = "SELL"
)

// Transaction is an immutable, append-only trade log entry. Rows are written
// once per trade (or forced position removal) and never updated.
type Transaction struct {
	ID       int             `json:"id"`
	UserID   int             `json:"userId"`
	Symbol   string          `json:"symbol"`
	Type     TradeType       `json:"type"`
	Quantity decimal.Decimal `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Date     time.Time       `json:"date"`
}
