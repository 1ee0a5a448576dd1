package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/scoinhq/scoin-backend/internal/infra/pgutils"
	"github.com/scoinhq/scoin-backend/internal/repos/users"
)

const userColumns = `id, login, password_hash, name, is_admin, role, balance, COALESCE(avatar_url, ''), created_at`

func scanUser(row *sql.Row) (*users.User, error) {
	var u users.User

	err := row.Scan(
		&u.ID, &u.Login, &u.PasswordHash, &u.Name,
		&u.IsAdmin, &u.Role, &u.Balance, &u.AvatarURL, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, users.ErrUserNotFound
		}

		return nil, fmt.Errorf("scan user: %w", err)
	}

	return &u, nil
}

func (r *usersRepo) Create(ctx context.Context, u *users.User) (int64, error) {
	var id int64

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO users (login, password_hash, name, is_admin, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, u.Login, u.PasswordHash, u.Name, u.IsAdmin, u.Role).Scan(&id)
	if err != nil {
		if pgutils.IsUniqueViolation(err) {
			return 0, users.ErrLoginTaken
		}

		return 0, fmt.Errorf("insert user: %w", err)
	}

	return id, nil
}

func (r *usersRepo) GetByID(ctx context.Context, id int64) (*users.User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1
	`, id)

	return scanUser(row)
}

func (r *usersRepo) GetByLogin(ctx context.Context, login string) (*users.User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE login = $1
	`, login)

	return scanUser(row)
}

func (r *usersRepo) List(ctx context.Context) ([]users.User, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+userColumns+`
		FROM users
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var out []users.User

	for rows.Next() {
		var u users.User

		err := rows.Scan(
			&u.ID, &u.Login, &u.PasswordHash, &u.Name,
			&u.IsAdmin, &u.Role, &u.Balance, &u.AvatarURL, &u.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan user row: %w", err)
		}

		out = append(out, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}

	return out, nil
}

func (r *usersRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}

	if affected == 0 {
		return users.ErrUserNotFound
	}

	return nil
}

func (r *usersRepo) UpdateProfile(ctx context.Context, id int64, name, avatarURL string) (*users.User, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE users
		SET name = $2, avatar_url = $3
		WHERE id = $1
		RETURNING `+userColumns+`
	`, id, name, avatarURL)

	return scanUser(row)
}

func (r *usersRepo) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET password_hash = $2
		WHERE id = $1
	`, id, passwordHash)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}

	if affected == 0 {
		return users.ErrUserNotFound
	}

	return nil
}
