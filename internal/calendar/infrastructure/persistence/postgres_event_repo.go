package persistence

import (
	"context"
	"time"

	"github.com/focusmirror/focusmirror/internal/calendar/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresEventRepository implements domain.EventRepository for PostgreSQL.
type PostgresEventRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresEventRepository creates a new PostgreSQL event repository.
func NewPostgresEventRepository(pool *pgxpool.Pool) *PostgresEventRepository {
	return &PostgresEventRepository{pool: pool}
}

// ReplaceWindow atomically swaps the provider's events in [start, end).
func (r *PostgresEventRepository) ReplaceWindow(ctx context.Context, userID uuid.UUID, provider domain.Provider, start, end time.Time, events []*domain.CalendarEvent) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		DELETE FROM calendar_events
		WHERE user_id = $1 AND provider = $2 AND start_time >= $3 AND start_time < $4`,
		userID, string(provider), start, end)
	if err != nil {
		return err
	}

	for _, e := range events {
		_, err = tx.Exec(ctx, `
			INSERT INTO calendar_events (id, user_id, provider, external_id, title, start_time, end_time, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (user_id, provider, external_id) DO UPDATE SET
				title = EXCLUDED.title,
				start_time = EXCLUDED.start_time,
				end_time = EXCLUDED.end_time`,
			e.ID, e.UserID, string(e.Provider), e.ExternalID, e.Title, e.StartTime, e.EndTime, e.CreatedAt)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// ListWindow returns events starting within [start, end) across all
// providers.
func (r *PostgresEventRepository) ListWindow(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*domain.CalendarEvent, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, provider, external_id, title, start_time, end_time, created_at
		FROM calendar_events
		WHERE user_id = $1 AND start_time >= $2 AND start_time < $3
		ORDER BY start_time`,
		userID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*domain.CalendarEvent
	for rows.Next() {
		var e domain.CalendarEvent
		var providerStr string
		if err := rows.Scan(&e.ID, &e.UserID, &providerStr, &e.ExternalID, &e.Title, &e.StartTime, &e.EndTime, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Provider = domain.Provider(providerStr)
		events = append(events, &e)
	}
	return events, rows.Err()
}
