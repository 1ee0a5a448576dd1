package auth

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pgusers "github.com/scoinhq/scoin-backend/internal/repos/users/postgres"
)

func newTestService(t *testing.T) (*Service, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })

	return New(pgusers.New(db), "test-secret", time.Hour), mock
}

func userRow(t *testing.T, id int64, login, password string, isAdmin bool) *sqlmock.Rows {
	t.Helper()

	hash, err := HashPassword(password)
	require.NoError(t, err)

	return sqlmock.NewRows([]string{
		"id", "login", "password_hash", "name", "is_admin", "role", "balance", "avatar_url", "created_at",
	}).AddRow(id, login, hash, "Test User", isAdmin, "member", 100, "", time.Now())
}

func TestLogin_IssuesParsableToken(t *testing.T) {
	t.Parallel()

	svc, mock := newTestService(t)

	mock.ExpectQuery("SELECT id, login, password_hash").
		WithArgs("alice").
		WillReturnRows(userRow(t, 7, "alice", "hunter2", true))

	token, u, err := svc.Login(context.Background(), "alice", "hunter2")
	require.NoError(t, err)
	require.Equal(t, int64(7), u.ID)

	claims, err := svc.ParseToken(token)
	require.NoError(t, err)

	assert.Equal(t, int64(7), claims.UserID)
	assert.True(t, claims.IsAdmin)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLogin_WrongPassword(t *testing.T) {
	t.Parallel()

	svc, mock := newTestService(t)

	mock.ExpectQuery("SELECT id, login, password_hash").
		WithArgs("alice").
		WillReturnRows(userRow(t, 7, "alice", "hunter2", false))

	_, _, err := svc.Login(context.Background(), "alice", "not-hunter2")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownUserSameError(t *testing.T) {
	t.Parallel()

	svc, mock := newTestService(t)

	mock.ExpectQuery("SELECT id, login, password_hash").
		WithArgs("nobody").
		WillReturnError(sql.ErrNoRows)

	_, _, err := svc.Login(context.Background(), "nobody", "whatever")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestParseToken_RejectsTamperedToken(t *testing.T) {
	t.Parallel()

	svc, mock := newTestService(t)

	mock.ExpectQuery("SELECT id, login, password_hash").
		WithArgs("alice").
		WillReturnRows(userRow(t, 7, "alice", "hunter2", false))

	token, _, err := svc.Login(context.Background(), "alice", "hunter2")
	require.NoError(t, err)

	_, err = svc.ParseToken(token + "x")

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_RejectsForeignSecret(t *testing.T) {
	t.Parallel()

	svc, mock := newTestService(t)

	mock.ExpectQuery("SELECT id, login, password_hash").
		WithArgs("alice").
		WillReturnRows(userRow(t, 7, "alice", "hunter2", false))

	token, _, err := svc.Login(context.Background(), "alice", "hunter2")
	require.NoError(t, err)

	other := New(nil, "other-secret", time.Hour)

	_, err = other.ParseToken(token)

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestChangePassword_VerifiesCurrent(t *testing.T) {
	t.Parallel()

	svc, mock := newTestService(t)

	mock.ExpectQuery("SELECT id, login, password_hash").
		WithArgs(int64(7)).
		WillReturnRows(userRow(t, 7, "alice", "hunter2", false))

	err := svc.ChangePassword(context.Background(), 7, "wrong-current", "next")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestChangePassword_UpdatesHash(t *testing.T) {
	t.Parallel()

	svc, mock := newTestService(t)

	mock.ExpectQuery("SELECT id, login, password_hash").
		WithArgs(int64(7)).
		WillReturnRows(userRow(t, 7, "alice", "hunter2", false))
	mock.ExpectExec("UPDATE users").
		WithArgs(int64(7), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := svc.ChangePassword(context.Background(), 7, "hunter2", "correct-horse")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
