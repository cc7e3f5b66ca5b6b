package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/gab-8323/crypto-portfolio-manager/types"
)

type stubSource struct {
	coins []types.CatalogCoin
	err   error
}

func (s stubSource) Catalog(_ context.Context, _ int) ([]types.CatalogCoin, error) {
	return s.coins, s.err
}

func TestResolverPrecedence(t *testing.T) {
	src := stubSource{coins: []types.CatalogCoin{
		{ID: "bitcoin", Symbol: "btc", Name: "Bitcoin"},
		{ID: "ethereum", Symbol: "eth", Name: "Ethereum"},
		// id of one coin colliding with the symbol of another: id wins
		{ID: "btc", Symbol: "xbt", Name: "Wrapped BTC Index"},
	}}
	r := NewResolver(context.Background(), src, zerolog.Nop())

	tests := []struct {
		name string
		term string
		want string
	}{
		{"exact id", "bitcoin", "bitcoin"},
		{"ticker symbol", "BTC", "btc"}, // id match beats symbol match
		{"ticker symbol eth", "ETH", "ethereum"},
		{"display name", "Bitcoin", "bitcoin"},
		{"trimmed and lowered", "  Ethereum  ", "ethereum"},
		{"unknown passes through", "dogecoin-but-typo", "dogecoin-but-typo"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Resolve(tt.term); got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.term, got, tt.want)
			}
		})
	}
}

func TestResolverDegradesToPassThrough(t *testing.T) {
	src := stubSource{err: errors.New("provider down")}
	r := NewResolver(context.Background(), src, zerolog.Nop())

	if got := r.Resolve("BTC"); got != "btc" {
		t.Errorf("degraded Resolve(BTC) = %q, want pass-through %q", got, "btc")
	}
	if coins := r.Coins(); len(coins) != 0 {
		t.Errorf("degraded resolver should expose an empty catalog, got %d coins", len(coins))
	}
}
