package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/prajayganiga-design/Mini-project/internal/domain/registrations"
)

var _ registrations.Repository = (*RegistrationRepository)(nil)

type RegistrationRepository struct {
	pool *pgxpool.Pool
	tx   pgx.Tx
}

// LockEvent row-locks the event so concurrent admissions for the same
// event serialize behind the count-then-insert sequence.
func (r *RegistrationRepository) LockEvent(ctx context.Context, eventID string) (*registrations.EventCapacity, error) {
	var capacity registrations.EventCapacity
	err := r.queryer().QueryRow(ctx, `
SELECT event_id, event_name, max_participants
  FROM events
 WHERE event_id = $1
   FOR UPDATE
`, eventID).Scan(&capacity.EventID, &capacity.Name, &capacity.MaxParticipants)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, registrations.ErrEventNotFound
		}
		return nil, fmt.Errorf("lock event: %w", err)
	}
	return &capacity, nil
}

func (r *RegistrationRepository) Exists(ctx context.Context, eventID, userEmail string) (bool, error) {
	var exists bool
	err := r.queryer().QueryRow(ctx, `
SELECT EXISTS (
  SELECT 1 FROM registrations WHERE event_id = $1 AND user_email = $2
)
`, eventID, userEmail).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("registration exists: %w", err)
	}
	return exists, nil
}

func (r *RegistrationRepository) CountForEvent(ctx context.Context, eventID string) (int, error) {
	var count int
	err := r.queryer().QueryRow(ctx,
		`SELECT COUNT(*) FROM registrations WHERE event_id = $1`, eventID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count registrations: %w", err)
	}
	return count, nil
}

func (r *RegistrationRepository) Create(ctx context.Context, reg registrations.Registration) (int64, error) {
	var id int64
	err := r.queryer().QueryRow(ctx, `
INSERT INTO registrations (event_id, user_name, user_email, user_phone)
VALUES ($1, $2, $3, $4)
RETURNING id
`, reg.EventID, reg.UserName, reg.UserEmail, reg.UserPhone).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return 0, registrations.ErrAlreadyRegistered
			case "23503":
				return 0, registrations.ErrEventNotFound
			}
		}
		return 0, fmt.Errorf("create registration: %w", err)
	}
	return id, nil
}

func (r *RegistrationRepository) ListForEvent(ctx context.Context, eventID string) ([]registrations.Registration, error) {
	rows, err := r.queryer().Query(ctx, `
SELECT id, event_id, user_name, user_email, user_phone, registration_date
  FROM registrations
 WHERE event_id = $1
 ORDER BY registration_date DESC, id DESC
`, eventID)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	defer rows.Close()

	items := make([]registrations.Registration, 0)
	for rows.Next() {
		var reg registrations.Registration
		if err := rows.Scan(
			&reg.ID,
			&reg.EventID,
			&reg.UserName,
			&reg.UserEmail,
			&reg.UserPhone,
			&reg.RegistrationDate,
		); err != nil {
			return nil, fmt.Errorf("scan registration: %w", err)
		}
		reg.RegistrationDate = reg.RegistrationDate.UTC()
		items = append(items, reg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate registrations: %w", err)
	}
	return items, nil
}

func (r *RegistrationRepository) WithTx(ctx context.Context, fn func(context.Context, registrations.Repository) error) error {
	return runInTx(ctx, r.pool, r.tx, func(tx pgx.Tx) error {
		return fn(ctx, &RegistrationRepository{pool: r.pool, tx: tx})
	})
}

func (r *RegistrationRepository) queryer() queryer {
	if r.tx != nil {
		return r.tx
	}
	return r.pool
}
