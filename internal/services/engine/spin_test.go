package engine

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scoinhq/scoin-backend/internal/repos/symbols"
	"github.com/scoinhq/scoin-backend/internal/repos/users"
)

// expectSpinTx scripts one full successful spin transaction.
func expectSpinTx(mock sqlmock.Sqlmock, userID, balance int64, table *sqlmock.Rows, net int64, reason string) {
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT balance").
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow(balance))
	mock.ExpectQuery("SELECT id, icon, multiplier, weight").
		WillReturnRows(table)
	mock.ExpectExec("UPDATE users").
		WithArgs(userID, net).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO transactions").
		WithArgs(userID, net, reason).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()
}

func TestSpin_TripleMatchPaysMultiplier(t *testing.T) {
	t.Parallel()

	// Source pinned to 0 draws the first symbol three times.
	e, mock, _ := newTestEngine(t, WithDrawSource(sequenceSource(0)))

	table := symbolRows().
		AddRow(1, "7", 5.0, 1).
		AddRow(2, "cherry", 1.5, 3)

	// bet 100 at x5: win 500, net +400.
	expectSpinTx(mock, 7, 1_000, table, 400, "Casino: 7 | 7 | 7")

	res, err := e.Spin(context.Background(), 7, 100)
	require.NoError(t, err)

	assert.Equal(t, [3]string{"7", "7", "7"}, res.Icons)
	assert.Equal(t, 5.0, res.Multiplier)
	assert.Equal(t, int64(500), res.Win)
	assert.Equal(t, int64(400), res.Net)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSpin_MixedIconsLoseBet(t *testing.T) {
	t.Parallel()

	// Weights 1,1,2 (total 4): 0 -> idx 0, 0.3 -> idx 1, 0.99 -> idx 2.
	e, mock, _ := newTestEngine(t, WithDrawSource(sequenceSource(0, 0.3, 0.99)))

	table := symbolRows().
		AddRow(1, "lemon", 2.0, 1).
		AddRow(2, "grape", 3.0, 1).
		AddRow(3, "cherry", 1.5, 2)

	expectSpinTx(mock, 7, 1_000, table, -100, "Casino: lemon | grape | cherry")

	res, err := e.Spin(context.Background(), 7, 100)
	require.NoError(t, err)

	assert.Equal(t, 0.0, res.Multiplier)
	assert.Equal(t, int64(0), res.Win)
	assert.Equal(t, int64(-100), res.Net)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSpin_FractionalMultiplierRounding(t *testing.T) {
	t.Parallel()

	e, mock, _ := newTestEngine(t, WithDrawSource(sequenceSource(0)))

	// x1.5 triple on a bet of 25: 37.5 rounds away from zero to 38.
	table := symbolRows().AddRow(1, "cherry", 1.5, 1)

	expectSpinTx(mock, 7, 1_000, table, 13, "Casino: cherry | cherry | cherry")

	res, err := e.Spin(context.Background(), 7, 25)
	require.NoError(t, err)

	assert.Equal(t, int64(38), res.Win)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSpin_BetBounds(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		bet  int64
		ok   bool
	}{
		{name: "below_minimum", bet: 9, ok: false},
		{name: "at_minimum", bet: 10, ok: true},
		{name: "at_maximum", bet: 1000, ok: true},
		{name: "above_maximum", bet: 1001, ok: false},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e, mock, _ := newTestEngine(t, WithDrawSource(sequenceSource(0)))

			if tt.ok {
				table := symbolRows().AddRow(1, "7", 0.0, 1)
				expectSpinTx(mock, 7, 10_000, table, -tt.bet, "Casino: 7 | 7 | 7")
			}

			_, err := e.Spin(context.Background(), 7, tt.bet)

			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidBet)
			}

			// A rejected bet must not touch storage at all.
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSpin_InsufficientFunds(t *testing.T) {
	t.Parallel()

	e, mock, _ := newTestEngine(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT balance").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow(50))
	mock.ExpectRollback()

	_, err := e.Spin(context.Background(), 7, 100)

	assert.ErrorIs(t, err, users.ErrInsufficientFunds)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSpin_NoSymbolsConfigured(t *testing.T) {
	t.Parallel()

	e, mock, _ := newTestEngine(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT balance").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow(1_000))
	mock.ExpectQuery("SELECT id, icon, multiplier, weight").
		WillReturnRows(symbolRows())
	mock.ExpectRollback()

	_, err := e.Spin(context.Background(), 7, 100)

	assert.ErrorIs(t, err, symbols.ErrNoSymbols)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSpin_LedgerFailureRollsBack(t *testing.T) {
	t.Parallel()

	e, mock, _ := newTestEngine(t, WithDrawSource(sequenceSource(0)))

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT balance").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow(1_000))
	mock.ExpectQuery("SELECT id, icon, multiplier, weight").
		WillReturnRows(symbolRows().AddRow(1, "7", 5.0, 1))
	mock.ExpectExec("UPDATE users").
		WithArgs(int64(7), int64(400)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO transactions").
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	_, err := e.Spin(context.Background(), 7, 100)

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSpin_ConflictRetriedThenSucceeds(t *testing.T) {
	t.Parallel()

	e, mock, _ := newTestEngine(t, WithDrawSource(sequenceSource(0)))

	serialization := &pgconn.PgError{Code: "40001"}

	// First two attempts lose the row lock race, third settles.
	for range 2 {
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT balance").
			WithArgs(int64(7)).
			WillReturnError(serialization)
		mock.ExpectRollback()
	}

	table := symbolRows().AddRow(1, "7", 5.0, 1)
	expectSpinTx(mock, 7, 1_000, table, 400, "Casino: 7 | 7 | 7")

	res, err := e.Spin(context.Background(), 7, 100)
	require.NoError(t, err)

	assert.Equal(t, int64(500), res.Win)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSpin_ConflictExhaustsRetries(t *testing.T) {
	t.Parallel()

	e, mock, _ := newTestEngine(t)

	serialization := &pgconn.PgError{Code: "40001"}

	for range maxAttempts {
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT balance").
			WithArgs(int64(7)).
			WillReturnError(serialization)
		mock.ExpectRollback()
	}

	_, err := e.Spin(context.Background(), 7, 100)

	assert.ErrorIs(t, err, ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}
