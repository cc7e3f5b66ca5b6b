package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/gab-8323/crypto-portfolio-manager/types"
)

const uniqueViolation = "23505"

// CreateUser inserts a new user and returns it with its assigned id. A phone
// number collision maps to ErrDuplicateUser.
func (db *Database) CreateUser(ctx context.Context, u types.User) (types.User, error) {
	row := db.pool.QueryRow(ctx,
		`INSERT INTO users (name, phone, password_hash, currency) VALUES ($1, $2, $3, $4) RETURNING id`,
		u.Name, u.Phone, u.PasswordHash, u.Currency)
	if err := row.Scan(&u.ID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return types.User{}, ErrDuplicateUser
		}
		return types.User{}, err
	}
	return u, nil
}

func (db *Database) GetUserByName(ctx context.Context, name string) (types.User, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT id, name, phone, password_hash, currency FROM users WHERE name = $1`, name)
	return scanUser(row)
}

func (db *Database) GetUserByID(ctx context.Context, id int) (types.User, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT id, name, phone, password_hash, currency FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (db *Database) UpdateUserCurrency(ctx context.Context, userID int, currency string) error {
	_, err := db.pool.Exec(ctx, `UPDATE users SET currency = $1 WHERE id = $2`, currency, userID)
	return err
}

func scanUser(row pgx.Row) (types.User, error) {
	var u types.User
	if err := row.Scan(&u.ID, &u.Name, &u.Phone, &u.PasswordHash, &u.Currency); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return types.User{}, ErrNotFound
		}
		return types.User{}, err
	}
	return u, nil
}
