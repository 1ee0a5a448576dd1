// Package engine implements the ledger and wager core: every balance change
// goes through here, paired with its ledger entry inside one database
// transaction.
package engine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/scoinhq/scoin-backend/internal/infra/pgutils"
	"github.com/scoinhq/scoin-backend/internal/repos/items"
	pgitems "github.com/scoinhq/scoin-backend/internal/repos/items/postgres"
	"github.com/scoinhq/scoin-backend/internal/repos/ledger"
	pgledger "github.com/scoinhq/scoin-backend/internal/repos/ledger/postgres"
	"github.com/scoinhq/scoin-backend/internal/repos/purchases"
	pgpurchases "github.com/scoinhq/scoin-backend/internal/repos/purchases/postgres"
	"github.com/scoinhq/scoin-backend/internal/repos/symbols"
	pgsymbols "github.com/scoinhq/scoin-backend/internal/repos/symbols/postgres"
	"github.com/scoinhq/scoin-backend/internal/repos/users"
	pgusers "github.com/scoinhq/scoin-backend/internal/repos/users/postgres"
	"github.com/scoinhq/scoin-backend/internal/services/draw"
)

var (
	ErrInvalidBet    = errors.New("bet amount out of range")
	ErrInvalidAmount = errors.New("amount must not be zero")
	ErrConflict      = errors.New("storage conflict")
)

// maxAttempts bounds the transparent retry on transactional conflicts.
const maxAttempts = 3

type Engine struct {
	db        *sql.DB
	users     users.Users
	ledger    ledger.Ledger
	items     items.Items
	purchases purchases.Purchases
	symbols   symbols.Symbols
	src       draw.Source

	minBet int64
	maxBet int64
}

type Option func(*Engine)

// WithDrawSource substitutes the random source, used by tests to force
// specific draws.
func WithDrawSource(src draw.Source) Option {
	return func(e *Engine) { e.src = src }
}

func WithBetLimits(minBet, maxBet int64) Option {
	return func(e *Engine) {
		e.minBet = minBet
		e.maxBet = maxBet
	}
}

func New(db *sql.DB, opts ...Option) *Engine {
	e := &Engine{
		db:        db,
		users:     pgusers.New(db),
		ledger:    pgledger.New(db),
		items:     pgitems.New(db),
		purchases: pgpurchases.New(db),
		symbols:   pgsymbols.New(db),
		src:       draw.Default,
		minBet:    10,
		maxBet:    1000,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// withRetry runs fn inside a transaction, retrying the whole unit on
// serialization failures and deadlocks. fn re-reads all state on each
// attempt, so every retry is validated against the store as it is now.
func (e *Engine) withRetry(ctx context.Context, fn func(*sql.Tx) error) error {
	var err error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err = pgutils.WithTx(ctx, e.db, fn)
		if err == nil || !pgutils.IsRetryable(err) {
			return err
		}

		log.WithError(err).WithField("attempt", attempt).Warn("transactional conflict, retrying")
	}

	return fmt.Errorf("%w: gave up after %d attempts: %v", ErrConflict, maxAttempts, err)
}
