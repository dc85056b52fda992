package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/prajayganiga-design/Mini-project/internal/domain/accounts"
)

var _ accounts.Repository = (*AccountRepository)(nil)

type AccountRepository struct {
	pool *pgxpool.Pool
	tx   pgx.Tx
}

func (r *AccountRepository) Create(ctx context.Context, account accounts.Account) (int64, error) {
	var id int64
	err := r.queryer().QueryRow(ctx, `
INSERT INTO users (email, password_hash, role)
VALUES ($1, $2, $3)
RETURNING id
`, account.Email, account.PasswordHash, string(account.Role)).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return 0, accounts.ErrEmailTaken
		}
		return 0, fmt.Errorf("create account: %w", err)
	}
	return id, nil
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*accounts.Account, error) {
	var account accounts.Account
	err := r.queryer().QueryRow(ctx, `
SELECT id, email, password_hash, role, created_at
  FROM users
 WHERE email = $1
`, email).Scan(
		&account.ID,
		&account.Email,
		&account.PasswordHash,
		&account.Role,
		&account.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, accounts.ErrNotFound
		}
		return nil, fmt.Errorf("get account: %w", err)
	}
	account.CreatedAt = account.CreatedAt.UTC()
	return &account, nil
}

func (r *AccountRepository) queryer() queryer {
	if r.tx != nil {
		return r.tx
	}
	return r.pool
}
