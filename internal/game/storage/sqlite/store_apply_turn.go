package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/louisbranch/ringfall/internal/game/storage"
)

// ApplyTurn commits one resolved turn operation in a single transaction:
// the advanced session row, the touched player rows, and the appended
// event. Either everything lands or nothing does.
func (s *Store) ApplyTurn(ctx context.Context, write storage.TurnWrite) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(write.Session.ID) == "" {
		return fmt.Errorf("session id is required")
	}
	if err := validateTurnEvent(write.Event); err != nil {
		return err
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("apply turn: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.ExecContext(ctx, updateSessionSQL, updateSessionArgs(write.Session)...)
	if err != nil {
		return fmt.Errorf("apply turn session: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("apply turn session: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}

	for _, record := range write.Players {
		args, err := updatePlayerArgs(record)
		if err != nil {
			return fmt.Errorf("apply turn player %d: %w", record.Number, err)
		}
		result, err := tx.ExecContext(ctx, updatePlayerSQL, args...)
		if err != nil {
			return fmt.Errorf("apply turn player %d: %w", record.Number, err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("apply turn player %d: %w", record.Number, err)
		}
		if affected == 0 {
			return storage.ErrNotFound
		}
	}

	if _, err := tx.ExecContext(ctx, appendTurnEventSQL, appendTurnEventArgs(write.Event)...); err != nil {
		if isUniqueViolation(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("apply turn event: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("apply turn: %w", err)
	}
	return nil
}
