package portfolio

import (
	"context"

	"github.com/gab-8323/crypto-portfolio-manager/types"
)

// Store is the persistence collaborator the ledger reads and writes through.
// Implemented by repository.Database and repository.Memory.
type Store interface {
	GetHolding(ctx context.Context, userID int, symbol string) (types.Holding, error)
	GetHoldingByID(ctx context.Context, userID, id int) (types.Holding, error)
	ListHoldings(ctx context.Context, userID int) ([]types.Holding, error)
	UpsertHolding(ctx context.Context, h types.Holding) error
	DeleteHolding(ctx context.Context, id int) error
	AppendTransaction(ctx context.Context, tx types.Transaction) error
	ListTransactions(ctx context.Context, userID int) ([]types.Transaction, error)
}

// MarketGateway is the market-data provider boundary. Every call is a single
// upstream request; failures are absorbed by the caller, never retried.
type MarketGateway interface {
	Markets(ctx context.Context, ids []string, currency string, sparkline bool) (map[string]types.MarketQuote, error)
	SimplePrices(ctx context.Context, ids []string, currency string) (map[string]types.SimplePrice, error)
	TopMarkets(ctx context.Context, currency string, limit int) ([]types.MarketQuote, error)
}

// SymbolResolver maps user-entered terms to canonical provider ids.
type SymbolResolver interface {
	Resolve(term string) string
}

// NewsSource yields headline items from the external feed.
type NewsSource interface {
	Fetch(ctx context.Context) ([]types.NewsItem, error)
}
