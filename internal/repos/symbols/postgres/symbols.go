package symbols

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/scoinhq/scoin-backend/internal/infra/pgutils"
	"github.com/scoinhq/scoin-backend/internal/repos/symbols"
)

var _ symbols.Symbols = (*symbolsRepo)(nil)

type symbolsRepo struct{ db *sql.DB }

func New(db *sql.DB) *symbolsRepo {
	return &symbolsRepo{db: db}
}

const listQuery = `
	SELECT id, icon, multiplier, weight
	FROM casino_symbols
	ORDER BY id ASC
`

func scanSymbols(rows *sql.Rows) ([]symbols.Symbol, error) {
	defer rows.Close()

	var out []symbols.Symbol

	for rows.Next() {
		var s symbols.Symbol

		err := rows.Scan(&s.ID, &s.Icon, &s.Multiplier, &s.Weight)
		if err != nil {
			return nil, fmt.Errorf("scan symbol: %w", err)
		}

		out = append(out, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate symbols: %w", err)
	}

	return out, nil
}

func (r *symbolsRepo) ListForSpin(tx *sql.Tx) ([]symbols.Symbol, error) {
	rows, err := tx.Query(listQuery)
	if err != nil {
		return nil, fmt.Errorf("list symbols: %w", err)
	}

	return scanSymbols(rows)
}

func (r *symbolsRepo) List(ctx context.Context) ([]symbols.Symbol, error) {
	rows, err := r.db.QueryContext(ctx, listQuery)
	if err != nil {
		return nil, fmt.Errorf("list symbols: %w", err)
	}

	return scanSymbols(rows)
}

func (r *symbolsRepo) Save(ctx context.Context, batch []symbols.Symbol) error {
	return pgutils.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		for _, s := range batch {
			var err error

			if s.ID != 0 {
				_, err = tx.Exec(`
					UPDATE casino_symbols
					SET icon = $1, multiplier = $2, weight = $3
					WHERE id = $4
				`, s.Icon, s.Multiplier, s.Weight, s.ID)
			} else {
				_, err = tx.Exec(`
					INSERT INTO casino_symbols (icon, multiplier, weight)
					VALUES ($1, $2, $3)
				`, s.Icon, s.Multiplier, s.Weight)
			}

			if err != nil {
				return fmt.Errorf("save symbol %q: %w", s.Icon, err)
			}
		}

		return nil
	})
}
