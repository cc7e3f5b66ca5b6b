package portfolio

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/gab-8323/crypto-portfolio-manager/types"
)

var hundred = decimal.NewFromInt(100)

// Valuate combines holdings with fetched quotes into per-position views and
// aggregate totals. resolved maps each holding symbol to the provider id its
// quote was requested under. Holdings without a quote are valued at zero.
func Valuate(holdings []types.Holding, quotes map[string]types.MarketQuote, resolved map[string]string) ([]types.PositionView, types.PortfolioTotals) {
	var totalValue, totalCost decimal.Decimal
	positions := make([]types.PositionView, 0, len(holdings))

	for _, h := range holdings {
		id, ok := resolved[h.Symbol]
		if !ok {
			id = h.Symbol
		}
		quote, found := quotes[id]
		if !found {
			// The id accepted by the markets endpoint occasionally differs
			// from the catalog id. Scan for a quote matching the raw symbol
			// before giving up on the position.
			for _, q := range quotes {
				if q.Symbol == h.Symbol || q.ID == h.Symbol {
					quote, found = q, true
					break
				}
			}
		}

		price := decimal.Zero
		name := capitalize(h.Symbol)
		var image string
		var change float64
		var spark []float64
		if found {
			price = quote.CurrentPrice
			if quote.Name != "" {
				name = quote.Name
			}
			image = quote.Image
			change = quote.Change24h
			spark = quote.Sparkline
		}

		value := h.Quantity.Mul(price)
		cost := h.Quantity.Mul(h.AvgBuyPrice)
		pl := value.Sub(cost)
		plPct := decimal.Zero
		if cost.IsPositive() {
			plPct = pl.Div(cost).Mul(hundred)
		}

		totalValue = totalValue.Add(value)
		totalCost = totalCost.Add(cost)

		positions = append(positions, types.PositionView{
			ID:          h.ID,
			Symbol:      h.Symbol,
			Name:        name,
			Image:       image,
			Quantity:    h.Quantity.InexactFloat64(),
			Price:       price.InexactFloat64(),
			Value:       value.InexactFloat64(),
			AvgBuyPrice: h.AvgBuyPrice.InexactFloat64(),
			PLAmount:    pl.InexactFloat64(),
			PLPercent:   plPct.InexactFloat64(),
			Change24h:   change,
			Sparkline:   spark,
		})
	}

	totalPL := totalValue.Sub(totalCost)
	roi := decimal.Zero
	if totalCost.IsPositive() {
		roi = totalPL.Div(totalCost).Mul(hundred)
	}

	return positions, types.PortfolioTotals{
		Value:      totalValue.InexactFloat64(),
		Cost:       totalCost.InexactFloat64(),
		PL:         totalPL.InexactFloat64(),
		ROIPercent: roi.InexactFloat64(),
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
