package engine

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/scoinhq/scoin-backend/internal/services/draw"
)

// sequenceSource returns the given values in order, repeating the last one.
func sequenceSource(values ...float64) draw.Source {
	i := 0
	return func() float64 {
		v := values[i]
		if i < len(values)-1 {
			i++
		}
		return v
	}
}

func newTestEngine(t *testing.T, opts ...Option) (*Engine, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })

	return New(db, opts...), mock, db
}

func symbolRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "icon", "multiplier", "weight"})
}
