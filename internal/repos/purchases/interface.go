package purchases

import (
	"context"
	"database/sql"
	"time"
)

// HistoryEntry is one row of a user's purchase history, joined with the
// catalog data that was bought.
type HistoryEntry struct {
	ItemName  string
	Price     int64
	ImageURL  string
	CreatedAt time.Time
}

type Purchases interface {
	// Insert records a purchase inside the caller's transaction, atomically
	// with the debit it belongs to.
	Insert(tx *sql.Tx, userID, itemID int64) error
	HistoryByUser(ctx context.Context, userID int64) ([]HistoryEntry, error)
}
