package purchases

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/scoinhq/scoin-backend/internal/repos/purchases"
)

var _ purchases.Purchases = (*purchasesRepo)(nil)

type purchasesRepo struct{ db *sql.DB }

func New(db *sql.DB) *purchasesRepo {
	return &purchasesRepo{db: db}
}

func (r *purchasesRepo) Insert(tx *sql.Tx, userID, itemID int64) error {
	_, err := tx.Exec(`
		INSERT INTO purchases (user_id, item_id)
		VALUES ($1, $2)
	`, userID, itemID)
	if err != nil {
		return fmt.Errorf("insert purchase: %w", err)
	}

	return nil
}

func (r *purchasesRepo) HistoryByUser(ctx context.Context, userID int64) ([]purchases.HistoryEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT i.name, i.price, COALESCE(i.image_url, ''), p.created_at
		FROM purchases p
		JOIN items i ON i.id = p.item_id
		WHERE p.user_id = $1
		ORDER BY p.created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("purchase history: %w", err)
	}
	defer rows.Close()

	var out []purchases.HistoryEntry

	for rows.Next() {
		var e purchases.HistoryEntry

		err := rows.Scan(&e.ItemName, &e.Price, &e.ImageURL, &e.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}

		out = append(out, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history rows: %w", err)
	}

	return out, nil
}
