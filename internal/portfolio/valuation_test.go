package portfolio

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/gab-8323/crypto-portfolio-manager/types"
)

func TestValuateZeroCostYieldsZeroPercent(t *testing.T) {
	holdings := []types.Holding{
		{ID: 1, Symbol: "btc", Quantity: d("2"), AvgBuyPrice: decimal.Zero},
	}
	quotes := map[string]types.MarketQuote{
		"bitcoin": {ID: "bitcoin", Symbol: "btc", CurrentPrice: d("15000")},
	}
	positions, totals := Valuate(holdings, quotes, map[string]string{"btc": "bitcoin"})

	if positions[0].PLPercent != 0 {
		t.Errorf("plPercent = %v, want 0 for a costless position", positions[0].PLPercent)
	}
	if positions[0].Value != 30000 {
		t.Errorf("value = %v, want 30000", positions[0].Value)
	}
	if totals.ROIPercent != 0 {
		t.Errorf("roi = %v, want 0 when total cost is zero", totals.ROIPercent)
	}
}

func TestValuateSecondaryScanBySymbol(t *testing.T) {
	holdings := []types.Holding{
		{ID: 1, Symbol: "ada", Quantity: d("10"), AvgBuyPrice: d("1")},
	}
	// Quote keyed under an id that differs from what the resolver produced.
	quotes := map[string]types.MarketQuote{
		"cardano": {ID: "cardano", Symbol: "ada", Name: "Cardano", CurrentPrice: d("2")},
	}
	positions, _ := Valuate(holdings, quotes, map[string]string{"ada": "ada-token"})

	if positions[0].Price != 2 {
		t.Errorf("price = %v, want 2 via symbol scan", positions[0].Price)
	}
	if positions[0].Name != "Cardano" {
		t.Errorf("name = %q, want quote name", positions[0].Name)
	}
}

func TestValuateMissingQuote(t *testing.T) {
	holdings := []types.Holding{
		{ID: 1, Symbol: "obscurecoin", Quantity: d("5"), AvgBuyPrice: d("3")},
	}
	positions, totals := Valuate(holdings, nil, map[string]string{"obscurecoin": "obscurecoin"})

	p := positions[0]
	if p.Price != 0 || p.Value != 0 {
		t.Errorf("unquoted position priced: %+v", p)
	}
	if p.Name != "Obscurecoin" {
		t.Errorf("name = %q, want capitalized symbol fallback", p.Name)
	}
	if p.PLAmount != -15 {
		t.Errorf("pl = %v, want -15", p.PLAmount)
	}
	if totals.Cost != 15 || totals.Value != 0 {
		t.Errorf("totals = %+v", totals)
	}
}

func TestWeightedAvg(t *testing.T) {
	tests := []struct {
		name                       string
		oldAvg, oldQty, price, qty string
		want                       string
	}{
		{"first lot", "0", "0", "10000", "2", "10000"},
		{"second lot", "10000", "2", "13000", "1", "11000"},
		{"fractional", "100", "1", "200", "1", "150"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := weightedAvg(d(tt.oldAvg), d(tt.oldQty), d(tt.price), d(tt.qty))
			if !got.Equal(d(tt.want)) {
				t.Errorf("weightedAvg = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestSymbolFor(t *testing.T) {
	if got := SymbolFor("USD"); got != "$" {
		t.Errorf("SymbolFor(USD) = %q", got)
	}
	if got := SymbolFor("chf"); got != "CHF " {
		t.Errorf("SymbolFor(chf) = %q", got)
	}
}
