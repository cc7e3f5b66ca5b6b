package repository

import (
	"context"

	"github.com/gab-8323/crypto-portfolio-manager/types"
)

// AppendTransaction writes one immutable trade log entry. Rows are never
// updated or deleted afterwards.
func (db *Database) AppendTransaction(ctx context.Context, tx types.Transaction) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO transactions (user_id, symbol, type, quantity, price, date) VALUES ($1, $2, $3, $4, $5, $6)`,
		tx.UserID, tx.Symbol, string(tx.Type), tx.Quantity, tx.Price, tx.Date)
	return err
}

// ListTransactions returns the user's trade history, newest first.
func (db *Database) ListTransactions(ctx context.Context, userID int) ([]types.Transaction, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, symbol, type, quantity, price, date FROM transactions WHERE user_id = $1 ORDER BY date DESC, id DESC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txs []types.Transaction
	for rows.Next() {
		var tx types.Transaction
		var kind string
		if err := rows.Scan(&tx.ID, &tx.UserID, &tx.Symbol, &kind, &tx.Quantity, &tx.Price, &tx.Date); err != nil {
			return nil, err
		}
		tx.Type = types.TradeType(kind)
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}
