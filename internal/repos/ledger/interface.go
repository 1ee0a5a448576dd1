package ledger

import (
	"context"
	"database/sql"
	"time"
)

// Entry is one immutable balance-affecting event. Amount is positive for
// credits and negative for debits. Rows are only ever inserted; the sum of a
// user's amounts always equals their current balance.
type Entry struct {
	ID        int64
	UserID    int64
	Amount    int64
	Reason    string
	CreatedAt time.Time
}

// Drift is a reconciliation finding: a user whose ledger no longer adds up
// to their stored balance.
type Drift struct {
	UserID    int64
	Balance   int64
	LedgerSum int64
}

type Ledger interface {
	// Append inserts one entry inside the caller's transaction, atomically
	// with the balance mutation it records.
	Append(tx *sql.Tx, userID int64, amount int64, reason string) error
	ListByUser(ctx context.Context, userID int64, limit int) ([]Entry, error)
	FindDrift(ctx context.Context) ([]Drift, error)
}
