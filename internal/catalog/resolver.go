package catalog

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/gab-8323/crypto-portfolio-manager/types"
)

const catalogSize = 250

// Source yields the provider's coin catalog, ordered by market cap.
type Source interface {
	Catalog(ctx context.Context, limit int) ([]types.CatalogCoin, error)
}

// Resolver maps user-entered tickers, ids and names to the canonical provider
// identifier. Lookup maps are built once at startup; when the catalog fetch
// fails the resolver passes every term through unchanged and quotes for those
// terms come back zero-valued.
type Resolver struct {
	coins    []types.CatalogCoin
	byID     map[string]string
	bySymbol map[string]string
	byName   map[string]string
}

func NewResolver(ctx context.Context, src Source, log zerolog.Logger) *Resolver {
	r := &Resolver{
		byID:     make(map[string]string),
		bySymbol: make(map[string]string),
		byName:   make(map[string]string),
	}
	coins, err := src.Catalog(ctx, catalogSize)
	if err != nil {
		log.Warn().Err(err).Msg("coin catalog unavailable, resolver degraded to pass-through")
		return r
	}
	r.coins = coins
	for _, c := range coins {
		r.byID[c.ID] = c.ID
		r.bySymbol[strings.ToLower(c.Symbol)] = c.ID
		r.byName[strings.ToLower(c.Name)] = c.ID
	}
	log.Info().Int("coins", len(coins)).Msg("coin catalog loaded")
	return r
}

// Resolve returns the canonical id for a user-entered term. Precedence: exact
// catalog id, then ticker symbol, then display name (case-insensitive).
// Unknown terms pass through unchanged.
func (r *Resolver) Resolve(term string) string {
	term = strings.ToLower(strings.TrimSpace(term))
	if id, ok := r.byID[term]; ok {
		return id
	}
	if id, ok := r.bySymbol[term]; ok {
		return id
	}
	if id, ok := r.byName[term]; ok {
		return id
	}
	return term
}

// Coins returns the catalog snapshot, used for autocomplete payloads.
func (r *Resolver) Coins() []types.CatalogCoin { return r.coins }
