package items

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

var (
	ErrItemNotFound = errors.New("item not found")
	ErrItemInUse    = errors.New("item has purchase history")
)

type Item struct {
	ID          int64
	Name        string
	Price       int64
	Description string
	ImageURL    string
	CreatedAt   time.Time
}

// Items is the catalog. The engine only ever reads it; lifecycle operations
// belong to the admin surface.
type Items interface {
	Get(tx *sql.Tx, id int64) (*Item, error)
	List(ctx context.Context) ([]Item, error)
	Create(ctx context.Context, it *Item) (int64, error)
	Delete(ctx context.Context, id int64) error
}
