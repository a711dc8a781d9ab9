package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/louisbranch/ringfall/internal/game/storage"
)

// AppendTelemetryEvent inserts one telemetry sample.
func (s *Store) AppendTelemetryEvent(ctx context.Context, record storage.TelemetryEvent) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(record.ID) == "" {
		return fmt.Errorf("telemetry event id is required")
	}
	if strings.TrimSpace(record.Name) == "" {
		return fmt.Errorf("telemetry event name is required")
	}
	if record.CreatedAt.IsZero() {
		return fmt.Errorf("created at is required")
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO telemetry_events (id, session_id, name, attributes, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		record.ID,
		record.SessionID,
		record.Name,
		record.Attributes,
		toMillis(record.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("append telemetry event: %w", err)
	}
	return nil
}
