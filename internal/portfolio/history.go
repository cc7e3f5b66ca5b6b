package portfolio

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gab-8323/crypto-portfolio-manager/types"
)

// History returns a user's transactions, newest first.
func (s *Service) History(ctx context.Context, userID int) ([]types.Transaction, error) {
	return s.store.ListTransactions(ctx, userID)
}

// WriteHistoryCSV streams a user's trade history as CSV to w.
func (s *Service) WriteHistoryCSV(ctx context.Context, w io.Writer, userID int) error {
	txs, err := s.store.ListTransactions(ctx, userID)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Date", "Symbol", "Type", "Quantity", "Price"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, tx := range txs {
		record := []string{
			tx.Date.Format(time.RFC3339),
			strings.ToUpper(tx.Symbol),
			string(tx.Type),
			tx.Quantity.String(),
			tx.Price.String(),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv record: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
