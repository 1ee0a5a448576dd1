package engine

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"github.com/scoinhq/scoin-backend/internal/repos/users"
)

func TestCredit_AppliesDeltaWithLedgerRow(t *testing.T) {
	t.Parallel()

	e, mock, _ := newTestEngine(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT balance").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow(100))
	mock.ExpectExec("UPDATE users").
		WithArgs(int64(7), int64(250)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO transactions").
		WithArgs(int64(7), int64(250), "Event prize").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := e.Credit(context.Background(), 7, 250, "Event prize")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCredit_ZeroAmountRejected(t *testing.T) {
	t.Parallel()

	e, mock, _ := newTestEngine(t)

	err := e.Credit(context.Background(), 7, 0, "noop")

	assert.ErrorIs(t, err, ErrInvalidAmount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCredit_NegativeAdjustmentCannotOverdraw(t *testing.T) {
	t.Parallel()

	e, mock, _ := newTestEngine(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT balance").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow(100))
	mock.ExpectExec("UPDATE users").
		WithArgs(int64(7), int64(-200)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := e.Credit(context.Background(), 7, -200, "Correction")

	assert.ErrorIs(t, err, users.ErrInsufficientFunds)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCredit_UnknownUser(t *testing.T) {
	t.Parallel()

	e, mock, _ := newTestEngine(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT balance").
		WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows([]string{"balance"}))
	mock.ExpectRollback()

	err := e.Credit(context.Background(), 404, 50, "")

	assert.ErrorIs(t, err, users.ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
