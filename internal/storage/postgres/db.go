package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/prajayganiga-design/Mini-project/internal/domain/accounts"
	"github.com/prajayganiga-design/Mini-project/internal/domain/events"
	"github.com/prajayganiga-design/Mini-project/internal/domain/registrations"
	"github.com/prajayganiga-design/Mini-project/internal/storage"
)

// Repository is the PostgreSQL-backed implementation of storage.Repository.
type Repository struct {
	pool *pgxpool.Pool
}

var _ storage.Repository = (*Repository)(nil)

func NewRepository(pool *pgxpool.Pool) (*Repository, error) {
	if pool == nil {
		return nil, fmt.Errorf("postgres repository: pool is nil")
	}
	return &Repository{pool: pool}, nil
}

// NewPool connects and pings so a bad DATABASE_URL fails at startup
// rather than on the first request.
func NewPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return pool, nil
}

func (r *Repository) Events() events.Repository {
	return &EventRepository{pool: r.pool}
}

func (r *Repository) Registrations() registrations.Repository {
	return &RegistrationRepository{pool: r.pool}
}

func (r *Repository) Accounts() accounts.Repository {
	return &AccountRepository{pool: r.pool}
}

// queryer is the subset of pgx shared by *pgxpool.Pool and pgx.Tx, so
// repository methods run identically inside and outside a transaction.
type queryer interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// runInTx begins a transaction, invokes fn, and commits; fn errors roll
// back. Nested calls (tx already bound) just run fn in place.
func runInTx(ctx context.Context, pool *pgxpool.Pool, tx pgx.Tx, fn func(pgx.Tx) error) error {
	if tx != nil {
		return fn(tx)
	}

	started, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	if err := fn(started); err != nil {
		_ = started.Rollback(ctx)
		return err
	}

	if err := started.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
