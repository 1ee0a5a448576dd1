package users

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrLoginTaken        = errors.New("login already taken")
)

type User struct {
	ID           int64
	Login        string
	PasswordHash string
	Name         string
	IsAdmin      bool
	Role         string
	Balance      int64
	AvatarURL    string
	CreatedAt    time.Time
}

// Users is the account store. Balance mutations take a *sql.Tx because they
// are only meaningful inside an engine-owned transaction; plain reads go
// through the pool.
type Users interface {
	Create(ctx context.Context, u *User) (int64, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByLogin(ctx context.Context, login string) (*User, error)
	List(ctx context.Context) ([]User, error)
	Delete(ctx context.Context, id int64) error
	UpdateProfile(ctx context.Context, id int64, name, avatarURL string) (*User, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error

	LockAndGetBalance(tx *sql.Tx, id int64) (int64, error)
	DecreaseBalance(tx *sql.Tx, id int64, amount int64) error
	ApplyDelta(tx *sql.Tx, id int64, delta int64) error
}
