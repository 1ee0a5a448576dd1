package items

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/scoinhq/scoin-backend/internal/infra/pgutils"
	"github.com/scoinhq/scoin-backend/internal/repos/items"
)

var _ items.Items = (*itemsRepo)(nil)

type itemsRepo struct{ db *sql.DB }

func New(db *sql.DB) *itemsRepo {
	return &itemsRepo{db: db}
}

func (r *itemsRepo) Get(tx *sql.Tx, id int64) (*items.Item, error) {
	var it items.Item

	err := tx.QueryRow(`
		SELECT id, name, price, COALESCE(description, ''), COALESCE(image_url, ''), created_at
		FROM items
		WHERE id = $1
	`, id).Scan(&it.ID, &it.Name, &it.Price, &it.Description, &it.ImageURL, &it.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, items.ErrItemNotFound
		}

		return nil, fmt.Errorf("get item: %w", err)
	}

	return &it, nil
}

func (r *itemsRepo) List(ctx context.Context) ([]items.Item, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, price, COALESCE(description, ''), COALESCE(image_url, ''), created_at
		FROM items
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var out []items.Item

	for rows.Next() {
		var it items.Item

		err := rows.Scan(&it.ID, &it.Name, &it.Price, &it.Description, &it.ImageURL, &it.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}

		out = append(out, it)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}

	return out, nil
}

func (r *itemsRepo) Create(ctx context.Context, it *items.Item) (int64, error) {
	var id int64

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO items (name, price, description, image_url)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, it.Name, it.Price, it.Description, it.ImageURL).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert item: %w", err)
	}

	return id, nil
}

// Delete removes an item from the catalog. Purchase records are kept
// forever, so an item that was ever sold cannot be deleted; the foreign key
// surfaces that as ErrItemInUse.
func (r *itemsRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		if pgutils.IsForeignKeyViolation(err) {
			return items.ErrItemInUse
		}

		return fmt.Errorf("delete item: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}

	if affected == 0 {
		return items.ErrItemNotFound
	}

	return nil
}
