package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/gab-8323/crypto-portfolio-manager/types"
)

// GetHolding returns the holding for (user, symbol), or ErrNotFound.
func (db *Database) GetHolding(ctx context.Context, userID int, symbol string) (types.Holding, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT id, user_id, symbol, quantity, avg_buy_price FROM portfolio WHERE user_id = $1 AND symbol = $2`,
		userID, symbol)
	return scanHolding(row)
}

// GetHoldingByID returns one of the user's holdings by row id, or ErrNotFound.
func (db *Database) GetHoldingByID(ctx context.Context, userID, id int) (types.Holding, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT id, user_id, symbol, quantity, avg_buy_price FROM portfolio WHERE id = $1 AND user_id = $2`,
		id, userID)
	return scanHolding(row)
}

func (db *Database) ListHoldings(ctx context.Context, userID int) ([]types.Holding, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, symbol, quantity, avg_buy_price FROM portfolio WHERE user_id = $1 ORDER BY id`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var holdings []types.Holding
	for rows.Next() {
		var h types.Holding
		if err := rows.Scan(&h.ID, &h.UserID, &h.Symbol, &h.Quantity, &h.AvgBuyPrice); err != nil {
			return nil, err
		}
		holdings = append(holdings, h)
	}
	return holdings, rows.Err()
}

// UpsertHolding inserts a new holding (ID zero) or updates an existing one.
// The surrounding read-compute-write in the ledger is not wrapped in a
// transaction; concurrent trades on the same symbol can lose an update.
func (db *Database) UpsertHolding(ctx context.Context, h types.Holding) error {
	if h.ID == 0 {
		_, err := db.pool.Exec(ctx,
			`INSERT INTO portfolio (user_id, symbol, quantity, avg_buy_price) VALUES ($1, $2, $3, $4)`,
			h.UserID, h.Symbol, h.Quantity, h.AvgBuyPrice)
		return err
	}
	_, err := db.pool.Exec(ctx,
		`UPDATE portfolio SET quantity = $1, avg_buy_price = $2 WHERE id = $3`,
		h.Quantity, h.AvgBuyPrice, h.ID)
	return err
}

func (db *Database) DeleteHolding(ctx context.Context, id int) error {
	_, err := db.pool.Exec(ctx, `DELETE FROM portfolio WHERE id = $1`, id)
	return err
}

func scanHolding(row pgx.Row) (types.Holding, error) {
	var h types.Holding
	if err := row.Scan(&h.ID, &h.UserID, &h.Symbol, &h.Quantity, &h.AvgBuyPrice); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return types.Holding{}, ErrNotFound
		}
		return types.Holding{}, err
	}
	return h, nil
}
