package symbols

import (
	"context"
	"database/sql"
	"errors"
)

var ErrNoSymbols = errors.New("no casino symbols configured")

// Symbol parameterizes the weighted draw: Weight sets how often the symbol
// lands, Multiplier what a triple of it pays.
type Symbol struct {
	ID         int64
	Icon       string
	Multiplier float64
	Weight     int64
}

type Symbols interface {
	// ListForSpin returns all symbols ordered ascending by id, the fixed
	// walk order of the draw. Runs inside the spin's transaction so the
	// weight table cannot change mid-spin.
	ListForSpin(tx *sql.Tx) ([]Symbol, error)
	List(ctx context.Context) ([]Symbol, error)
	// Save upserts a batch atomically: rows with an id update, the rest
	// insert.
	Save(ctx context.Context, batch []Symbol) error
}
