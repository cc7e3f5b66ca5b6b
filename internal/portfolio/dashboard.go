package portfolio

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/gab-8323/crypto-portfolio-manager/types"
)

// summarize builds the dashboard rows and per-coin notification lines from
// simple price lookups. Unpriced positions contribute zero value and no
// notification.
func summarize(
	holdings []types.Holding,
	prices map[string]types.SimplePrice,
	resolved map[string]string,
	currencySymbol string,
) ([]types.DashboardPosition, []string, float64, float64, float64) {
	var totalValue, totalCost decimal.Decimal
	positions := make([]types.DashboardPosition, 0, len(holdings))
	notifications := make([]string, 0, len(holdings))

	for _, h := range holdings {
		var sp types.SimplePrice
		if id, ok := resolved[h.Symbol]; ok {
			sp = prices[id]
		}

		value := h.Quantity.Mul(sp.Price)
		cost := h.Quantity.Mul(h.AvgBuyPrice)
		pl := value.Sub(cost)
		roi := decimal.Zero
		if cost.IsPositive() {
			roi = pl.Div(cost).Mul(hundred)
		}
		totalValue = totalValue.Add(value)
		totalCost = totalCost.Add(cost)

		positions = append(positions, types.DashboardPosition{
			Symbol:    h.Symbol,
			Name:      capitalize(h.Symbol),
			Price:     sp.Price.InexactFloat64(),
			Value:     value.InexactFloat64(),
			PL:        pl.InexactFloat64(),
			ROI:       roi.InexactFloat64(),
			Change24h: sp.Change24h,
		})
		if sp.Price.IsPositive() {
			notifications = append(notifications, fmt.Sprintf("%s: %s%.2f (%+.2f%%)",
				strings.ToUpper(h.Symbol), currencySymbol, sp.Price.InexactFloat64(), sp.Change24h))
		}
	}

	totalPL := totalValue.Sub(totalCost)
	totalROI := decimal.Zero
	if totalCost.IsPositive() {
		totalROI = totalPL.Div(totalCost).Mul(hundred)
	}
	return positions, notifications,
		totalValue.InexactFloat64(), totalPL.InexactFloat64(), totalROI.InexactFloat64()
}
