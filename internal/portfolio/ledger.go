package portfolio

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gab-8323/crypto-portfolio-manager/internal/repository"
	"github.com/gab-8323/crypto-portfolio-manager/types"
)

// Buy records a purchase and folds it into the holding at the weighted
// average cost. The transaction is appended before the holding is touched so
// history always reflects an accepted trade.
func (s *Service) Buy(ctx context.Context, userID int, symbol string, quantity, price decimal.Decimal) error {
	symbol = normalizeSymbol(symbol)
	if err := validateTrade(symbol, quantity, price); err != nil {
		return err
	}

	tx := types.Transaction{
		UserID:   userID,
		Symbol:   symbol,
		Type:     types.TradeTypeBuy,
		Quantity: quantity,
		Price:    price,
		Date:     time.Now(),
	}
	if err := s.store.AppendTransaction(ctx, tx); err != nil {
		return err
	}

	h, err := s.store.GetHolding(ctx, userID, symbol)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		h = types.Holding{UserID: userID, Symbol: symbol, Quantity: quantity, AvgBuyPrice: price}
	case err != nil:
		return err
	default:
		h.AvgBuyPrice = weightedAvg(h.AvgBuyPrice, h.Quantity, price, quantity)
		h.Quantity = h.Quantity.Add(quantity)
	}
	return s.store.UpsertHolding(ctx, h)
}

// Sell records a disposal. The average buy price is left untouched so
// realised gains never distort the cost basis of the remainder. Selling the
// entire quantity removes the holding row.
func (s *Service) Sell(ctx context.Context, userID int, symbol string, quantity, price decimal.Decimal) error {
	symbol = normalizeSymbol(symbol)
	if err := validateTrade(symbol, quantity, price); err != nil {
		return err
	}

	h, err := s.store.GetHolding(ctx, userID, symbol)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrInsufficientQuantity
	}
	if err != nil {
		return err
	}
	if h.Quantity.LessThan(quantity) {
		return ErrInsufficientQuantity
	}

	tx := types.Transaction{
		UserID:   userID,
		Symbol:   symbol,
		Type:     types.TradeTypeSell,
		Quantity: quantity,
		Price:    price,
		Date:     time.Now(),
	}
	if err := s.store.AppendTransaction(ctx, tx); err != nil {
		return err
	}

	remaining := h.Quantity.Sub(quantity)
	if remaining.Sign() <= 0 {
		return s.store.DeleteHolding(ctx, h.ID)
	}
	h.Quantity = remaining
	return s.store.UpsertHolding(ctx, h)
}

// RemovePosition liquidates a holding by id, logging a sell of the full
// quantity at the current base-currency price. Price lookup is best effort;
// when the provider is down the exit is recorded at zero.
func (s *Service) RemovePosition(ctx context.Context, userID, holdingID int) error {
	h, err := s.store.GetHoldingByID(ctx, userID, holdingID)
	if err != nil {
		return err
	}

	price := decimal.Zero
	id := s.resolver.Resolve(h.Symbol)
	prices, err := s.market.SimplePrices(ctx, []string{id}, s.baseCurrency)
	if err != nil {
		s.log.Warn().Err(err).Str("symbol", h.Symbol).Msg("exit price unavailable, recording zero")
	} else if sp, ok := prices[id]; ok {
		price = sp.Price
	}

	tx := types.Transaction{
		UserID:   userID,
		Symbol:   h.Symbol,
		Type:     types.TradeTypeSell,
		Quantity: h.Quantity,
		Price:    price,
		Date:     time.Now(),
	}
	if err := s.store.AppendTransaction(ctx, tx); err != nil {
		return err
	}
	return s.store.DeleteHolding(ctx, h.ID)
}

// weightedAvg computes the new average buy price after adding quantity units
// at price to an existing position.
func weightedAvg(oldAvg, oldQty, price, quantity decimal.Decimal) decimal.Decimal {
	total := oldQty.Add(quantity)
	if total.IsZero() {
		return decimal.Zero
	}
	return oldQty.Mul(oldAvg).Add(quantity.Mul(price)).Div(total)
}

func validateTrade(symbol string, quantity, price decimal.Decimal) error {
	if symbol == "" || !quantity.IsPositive() || price.IsNegative() {
		return ErrInvalidTrade
	}
	return nil
}

func normalizeSymbol(symbol string) string {
	return trimLower(symbol)
}
