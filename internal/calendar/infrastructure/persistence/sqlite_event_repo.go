package persistence

import (
	"context"
	"database/sql"
	"time"

	"github.com/focusmirror/focusmirror/internal/calendar/domain"
	"github.com/google/uuid"
)

// SQLiteEventRepository implements domain.EventRepository for SQLite.
type SQLiteEventRepository struct {
	db *sql.DB
}

// NewSQLiteEventRepository creates a new SQLite event repository.
func NewSQLiteEventRepository(db *sql.DB) *SQLiteEventRepository {
	return &SQLiteEventRepository{db: db}
}

// ReplaceWindow atomically swaps the provider's events in [start, end).
func (r *SQLiteEventRepository) ReplaceWindow(ctx context.Context, userID uuid.UUID, provider domain.Provider, start, end time.Time, events []*domain.CalendarEvent) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		DELETE FROM calendar_events
		WHERE user_id = ? AND provider = ? AND start_time >= ? AND start_time < ?`,
		userID.String(),
		string(provider),
		start.UTC().Format(time.RFC3339),
		end.UTC().Format(time.RFC3339))
	if err != nil {
		return err
	}

	for _, e := range events {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO calendar_events (id, user_id, provider, external_id, title, start_time, end_time, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(user_id, provider, external_id) DO UPDATE SET
				title = excluded.title,
				start_time = excluded.start_time,
				end_time = excluded.end_time`,
			e.ID.String(),
			e.UserID.String(),
			string(e.Provider),
			e.ExternalID,
			e.Title,
			e.StartTime.UTC().Format(time.RFC3339),
			e.EndTime.UTC().Format(time.RFC3339),
			e.CreatedAt.UTC().Format(time.RFC3339))
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// ListWindow returns events starting within [start, end) across all
// providers.
func (r *SQLiteEventRepository) ListWindow(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*domain.CalendarEvent, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, provider, external_id, title, start_time, end_time, created_at
		FROM calendar_events
		WHERE user_id = ? AND start_time >= ? AND start_time < ?
		ORDER BY start_time`,
		userID.String(),
		start.UTC().Format(time.RFC3339),
		end.UTC().Format(time.RFC3339))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*domain.CalendarEvent
	for rows.Next() {
		var idStr, userIDStr, providerStr, externalID, title, startStr, endStr, createdStr string
		if err := rows.Scan(&idStr, &userIDStr, &providerStr, &externalID, &title, &startStr, &endStr, &createdStr); err != nil {
			return nil, err
		}
		event, err := rehydrateEvent(idStr, userIDStr, providerStr, externalID, title, startStr, endStr, createdStr)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

func rehydrateEvent(idStr, userIDStr, providerStr, externalID, title, startStr, endStr, createdStr string) (*domain.CalendarEvent, error) {
	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, err
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, err
	}
	startTime, err := time.Parse(time.RFC3339, startStr)
	if err != nil {
		return nil, err
	}
	endTime, err := time.Parse(time.RFC3339, endStr)
	if err != nil {
		return nil, err
	}
	createdAt, err := time.Parse(time.RFC3339, createdStr)
	if err != nil {
		return nil, err
	}
	return &domain.CalendarEvent{
		ID:         id,
		UserID:     userID,
		Provider:   domain.Provider(providerStr),
		ExternalID: externalID,
		Title:      title,
		StartTime:  startTime,
		EndTime:    endTime,
		CreatedAt:  createdAt,
	}, nil
}
