package users

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/scoinhq/scoin-backend/internal/repos/users"
)

// LockAndGetBalance reads the balance under FOR UPDATE, serializing all
// concurrent balance work for this user behind the caller's transaction.
func (r *usersRepo) LockAndGetBalance(tx *sql.Tx, id int64) (int64, error) {
	var balance int64

	err := tx.QueryRow(`
		SELECT balance
		FROM users
		WHERE id = $1
		FOR UPDATE
	`, id).Scan(&balance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, users.ErrUserNotFound
		}

		return 0, fmt.Errorf("lock/get balance: %w", err)
	}

	return balance, nil
}

// DecreaseBalance debits only when the balance covers the amount, so a stale
// pre-check can never push a user negative.
func (r *usersRepo) DecreaseBalance(tx *sql.Tx, id int64, amount int64) error {
	res, err := tx.Exec(`
		UPDATE users
		SET balance = balance - $2
		WHERE id = $1
		  AND balance >= $2
	`, id, amount)
	if err != nil {
		return fmt.Errorf("decrease balance: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}

	if affected == 0 {
		return users.ErrInsufficientFunds
	}

	return nil
}

// ApplyDelta applies a signed net change in a single statement. Used by the
// spin flow where bet and win settle together; callers must have verified the
// balance covers any net debit under the same lock.
func (r *usersRepo) ApplyDelta(tx *sql.Tx, id int64, delta int64) error {
	res, err := tx.Exec(`
		UPDATE users
		SET balance = balance + $2
		WHERE id = $1
		  AND balance + $2 >= 0
	`, id, delta)
	if err != nil {
		return fmt.Errorf("apply delta: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}

	if affected == 0 {
		return users.ErrInsufficientFunds
	}

	return nil
}
