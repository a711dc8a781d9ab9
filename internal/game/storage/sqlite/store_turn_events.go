package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/louisbranch/ringfall/internal/game/storage"
)

// AppendTurnEvent inserts one turn event record.
func (s *Store) AppendTurnEvent(ctx context.Context, record storage.TurnEvent) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if err := validateTurnEvent(record); err != nil {
		return err
	}

	_, err := s.sqlDB.ExecContext(ctx, appendTurnEventSQL, appendTurnEventArgs(record)...)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("append turn event: %w", err)
	}
	return nil
}

// ListTurnEvents returns one page of turn events for a session in append
// order.
func (s *Store) ListTurnEvents(ctx context.Context, sessionID string, pageSize int, pageToken string) (storage.TurnEventPage, error) {
	if err := s.ready(ctx); err != nil {
		return storage.TurnEventPage{}, err
	}
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return storage.TurnEventPage{}, fmt.Errorf("session id is required")
	}
	if pageSize <= 0 {
		return storage.TurnEventPage{}, fmt.Errorf("page size must be greater than zero")
	}
	pageToken = strings.TrimSpace(pageToken)

	page := storage.TurnEventPage{
		Events: make([]storage.TurnEvent, 0, pageSize),
	}

	var (
		rows *sql.Rows
		err  error
	)
	if pageToken == "" {
		rows, err = s.sqlDB.QueryContext(
			ctx,
			`SELECT id, session_id, turn, player_number, kind, payload, created_at
			   FROM turn_events
			  WHERE session_id = ?
			  ORDER BY id ASC
			  LIMIT ?`,
			sessionID,
			pageSize+1,
		)
	} else {
		rows, err = s.sqlDB.QueryContext(
			ctx,
			`SELECT id, session_id, turn, player_number, kind, payload, created_at
			   FROM turn_events
			  WHERE session_id = ? AND id > ?
			  ORDER BY id ASC
			  LIMIT ?`,
			sessionID,
			pageToken,
			pageSize+1,
		)
	}
	if err != nil {
		return storage.TurnEventPage{}, fmt.Errorf("list turn events: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var record storage.TurnEvent
		var createdAt int64
		if err := rows.Scan(
			&record.ID,
			&record.SessionID,
			&record.Turn,
			&record.PlayerNumber,
			&record.Kind,
			&record.Payload,
			&createdAt,
		); err != nil {
			return storage.TurnEventPage{}, fmt.Errorf("list turn events: %w", err)
		}
		record.CreatedAt = fromMillis(createdAt)
		page.Events = append(page.Events, record)
	}
	if err := rows.Err(); err != nil {
		return storage.TurnEventPage{}, fmt.Errorf("list turn events: %w", err)
	}
	if len(page.Events) > pageSize {
		page.NextPageToken = page.Events[pageSize-1].ID
		page.Events = page.Events[:pageSize]
	}

	return page, nil
}

const appendTurnEventSQL = `INSERT INTO turn_events (
	id, session_id, turn, player_number, kind, payload, created_at
) VALUES (?, ?, ?, ?, ?, ?, ?)`

func appendTurnEventArgs(record storage.TurnEvent) []any {
	return []any{
		record.ID,
		record.SessionID,
		record.Turn,
		record.PlayerNumber,
		record.Kind,
		record.Payload,
		toMillis(record.CreatedAt),
	}
}

func validateTurnEvent(record storage.TurnEvent) error {
	if strings.TrimSpace(record.ID) == "" {
		return fmt.Errorf("turn event id is required")
	}
	if strings.TrimSpace(record.SessionID) == "" {
		return fmt.Errorf("session id is required")
	}
	if strings.TrimSpace(record.Kind) == "" {
		return fmt.Errorf("turn event kind is required")
	}
	if record.CreatedAt.IsZero() {
		return fmt.Errorf("created at is required")
	}
	return nil
}
