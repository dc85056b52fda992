package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/prajayganiga-design/Mini-project/internal/domain/events"
)

var _ events.Repository = (*EventRepository)(nil)

type EventRepository struct {
	pool *pgxpool.Pool
	tx   pgx.Tx
}

type eventRow struct {
	ID              int64
	EventID         string
	Name            string
	Description     string
	StartDate       pgtype.Date
	EndDate         pgtype.Date
	StartTime       pgtype.Time
	EndTime         pgtype.Time
	Venue           string
	MaxParticipants *int
	CreatedAt       pgtype.Timestamptz
}

const eventColumns = `id, event_id, event_name, description,
       start_date, end_date, start_time, end_time,
       venue, max_participants, created_at`

func (r *EventRepository) List(ctx context.Context) ([]events.Event, error) {
	rows, err := r.queryer().Query(ctx, `
SELECT `+eventColumns+`
  FROM events
 ORDER BY start_date ASC, start_time ASC, id ASC
`)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	items := make([]events.Event, 0)
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		items = append(items, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return items, nil
}

func (r *EventRepository) Get(ctx context.Context, eventID string) (*events.Event, error) {
	row := r.queryer().QueryRow(ctx, `
SELECT `+eventColumns+`
  FROM events
 WHERE event_id = $1
`, eventID)

	event, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, events.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return &event, nil
}

// Spans returns the occupied interval of every stored event, optionally
// skipping one event so updates do not collide with themselves.
func (r *EventRepository) Spans(ctx context.Context, excludeEventID string) ([]events.EventSpan, error) {
	rows, err := r.queryer().Query(ctx, `
SELECT event_id,
       start_date + start_time AS span_start,
       end_date + end_time     AS span_end
  FROM events
 WHERE $1 = '' OR event_id <> $1
`, excludeEventID)
	if err != nil {
		return nil, fmt.Errorf("event spans: %w", err)
	}
	defer rows.Close()

	spans := make([]events.EventSpan, 0)
	for rows.Next() {
		var (
			eventID    string
			start, end pgtype.Timestamp
		)
		if err := rows.Scan(&eventID, &start, &end); err != nil {
			return nil, fmt.Errorf("scan span: %w", err)
		}
		spans = append(spans, events.EventSpan{
			EventID: eventID,
			Span: events.Span{
				Start: start.Time.UTC(),
				End:   end.Time.UTC(),
			},
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate spans: %w", err)
	}
	return spans, nil
}

func (r *EventRepository) Create(ctx context.Context, event events.Event) (int64, error) {
	var id int64
	err := r.queryer().QueryRow(ctx, `
INSERT INTO events (event_id, event_name, description,
                    start_date, end_date, start_time, end_time,
                    venue, max_participants)
VALUES ($1, $2, $3, $4::date, $5::date, $6::time, $7::time, $8, $9)
RETURNING id
`,
		event.EventID,
		event.Name,
		event.Description,
		event.StartDate,
		event.EndDate,
		event.StartTime,
		event.EndTime,
		event.Venue,
		event.MaxParticipants,
	).Scan(&id)
	if err != nil {
		return 0, mapEventWriteError(err, "create event")
	}
	return id, nil
}

func (r *EventRepository) Update(ctx context.Context, event events.Event) error {
	tag, err := r.queryer().Exec(ctx, `
UPDATE events
   SET event_name = $2,
       description = $3,
       start_date = $4::date,
       end_date = $5::date,
       start_time = $6::time,
       end_time = $7::time,
       venue = $8,
       max_participants = $9
 WHERE event_id = $1
`,
		event.EventID,
		event.Name,
		event.Description,
		event.StartDate,
		event.EndDate,
		event.StartTime,
		event.EndTime,
		event.Venue,
		event.MaxParticipants,
	)
	if err != nil {
		return mapEventWriteError(err, "update event")
	}
	if tag.RowsAffected() == 0 {
		return events.ErrNotFound
	}
	return nil
}

func (r *EventRepository) Delete(ctx context.Context, eventID string) error {
	tag, err := r.queryer().Exec(ctx, `DELETE FROM events WHERE event_id = $1`, eventID)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return events.ErrNotFound
	}
	return nil
}

func (r *EventRepository) WithTx(ctx context.Context, fn func(context.Context, events.Repository) error) error {
	return runInTx(ctx, r.pool, r.tx, func(tx pgx.Tx) error {
		return fn(ctx, &EventRepository{pool: r.pool, tx: tx})
	})
}

func (r *EventRepository) queryer() queryer {
	if r.tx != nil {
		return r.tx
	}
	return r.pool
}

// mapEventWriteError translates schema violations into domain errors.
// 23505 is the unique event_id constraint, 23P01 the no-overlap
// exclusion constraint.
func mapEventWriteError(err error, op string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return events.ErrDuplicateID
		case "23P01":
			return events.ErrOverlap
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

func scanEvent(row pgx.Row) (events.Event, error) {
	var r eventRow
	if err := row.Scan(
		&r.ID,
		&r.EventID,
		&r.Name,
		&r.Description,
		&r.StartDate,
		&r.EndDate,
		&r.StartTime,
		&r.EndTime,
		&r.Venue,
		&r.MaxParticipants,
		&r.CreatedAt,
	); err != nil {
		return events.Event{}, err
	}

	return events.Event{
		ID:              r.ID,
		EventID:         r.EventID,
		Name:            r.Name,
		Description:     r.Description,
		StartDate:       r.StartDate.Time.Format("2006-01-02"),
		EndDate:         r.EndDate.Time.Format("2006-01-02"),
		StartTime:       events.FormatTimeOfDay(clockFromMicroseconds(r.StartTime.Microseconds)),
		EndTime:         events.FormatTimeOfDay(clockFromMicroseconds(r.EndTime.Microseconds)),
		Venue:           r.Venue,
		MaxParticipants: r.MaxParticipants,
		CreatedAt:       r.CreatedAt.Time.UTC(),
	}, nil
}

func clockFromMicroseconds(us int64) time.Time {
	return time.Date(0, time.January, 1, 0, 0, 0, 0, time.UTC).
		Add(time.Duration(us) * time.Microsecond)
}
