package ledger

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/scoinhq/scoin-backend/internal/repos/ledger"
)

var _ ledger.Ledger = (*ledgerRepo)(nil)

type ledgerRepo struct{ db *sql.DB }

func New(db *sql.DB) *ledgerRepo {
	return &ledgerRepo{db: db}
}

func (r *ledgerRepo) Append(tx *sql.Tx, userID int64, amount int64, reason string) error {
	_, err := tx.Exec(`
		INSERT INTO transactions (user_id, amount, reason)
		VALUES ($1, $2, $3)
	`, userID, amount, reason)
	if err != nil {
		return fmt.Errorf("append ledger entry: %w", err)
	}

	return nil
}

func (r *ledgerRepo) ListByUser(ctx context.Context, userID int64, limit int) ([]ledger.Entry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, amount, reason, created_at
		FROM transactions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list ledger entries: %w", err)
	}
	defer rows.Close()

	var out []ledger.Entry

	for rows.Next() {
		var e ledger.Entry

		err := rows.Scan(&e.ID, &e.UserID, &e.Amount, &e.Reason, &e.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}

		out = append(out, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ledger entries: %w", err)
	}

	return out, nil
}

// FindDrift returns every user whose stored balance disagrees with the sum
// of their ledger entries. An empty result means the reconciliation
// invariant holds.
func (r *ledgerRepo) FindDrift(ctx context.Context) ([]ledger.Drift, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT u.id, u.balance, COALESCE(SUM(t.amount), 0) AS ledger_sum
		FROM users u
		LEFT JOIN transactions t ON t.user_id = u.id
		GROUP BY u.id, u.balance
		HAVING u.balance <> COALESCE(SUM(t.amount), 0)
	`)
	if err != nil {
		return nil, fmt.Errorf("find drift: %w", err)
	}
	defer rows.Close()

	var out []ledger.Drift

	for rows.Next() {
		var d ledger.Drift

		err := rows.Scan(&d.UserID, &d.Balance, &d.LedgerSum)
		if err != nil {
			return nil, fmt.Errorf("scan drift row: %w", err)
		}

		out = append(out, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate drift rows: %w", err)
	}

	return out, nil
}
