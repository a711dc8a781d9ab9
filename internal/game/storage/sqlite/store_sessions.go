package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/louisbranch/ringfall/internal/game/domain/session"
	"github.com/louisbranch/ringfall/internal/game/storage"
)

// CreateSession inserts one session record.
func (s *Store) CreateSession(ctx context.Context, record session.Session) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(record.ID) == "" {
		return fmt.Errorf("session id is required")
	}
	if strings.TrimSpace(record.Name) == "" {
		return fmt.Errorf("session name is required")
	}

	var endedAt any
	if record.EndedAt != nil {
		endedAt = toMillis(*record.EndedAt)
	}
	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO sessions (
		   id, name, status, current_player, current_turn,
		   phase, board_size, created_at, updated_at, ended_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID,
		record.Name,
		string(record.Status),
		record.CurrentPlayer,
		record.CurrentTurn,
		string(record.Phase),
		record.BoardSize,
		toMillis(record.CreatedAt),
		toMillis(record.UpdatedAt),
		endedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

// GetSession returns one session by ID.
func (s *Store) GetSession(ctx context.Context, sessionID string) (session.Session, error) {
	if err := s.ready(ctx); err != nil {
		return session.Session{}, err
	}
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return session.Session{}, fmt.Errorf("session id is required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, name, status, current_player, current_turn,
		        phase, board_size, created_at, updated_at, ended_at
		   FROM sessions
		  WHERE id = ?`,
		sessionID,
	)
	record, err := scanSession(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return session.Session{}, storage.ErrNotFound
		}
		return session.Session{}, fmt.Errorf("get session: %w", err)
	}
	return record, nil
}

// UpdateSession overwrites the mutable fields of one session record.
func (s *Store) UpdateSession(ctx context.Context, record session.Session) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(record.ID) == "" {
		return fmt.Errorf("session id is required")
	}

	result, err := s.sqlDB.ExecContext(ctx, updateSessionSQL, updateSessionArgs(record)...)
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// ListSessions returns one page of session records ordered by ID.
func (s *Store) ListSessions(ctx context.Context, pageSize int, pageToken string) (storage.SessionPage, error) {
	if err := s.ready(ctx); err != nil {
		return storage.SessionPage{}, err
	}
	if pageSize <= 0 {
		return storage.SessionPage{}, fmt.Errorf("page size must be greater than zero")
	}
	pageToken = strings.TrimSpace(pageToken)

	page := storage.SessionPage{
		Sessions: make([]session.Session, 0, pageSize),
	}

	var (
		rows *sql.Rows
		err  error
	)
	if pageToken == "" {
		rows, err = s.sqlDB.QueryContext(
			ctx,
			`SELECT id, name, status, current_player, current_turn,
			        phase, board_size, created_at, updated_at, ended_at
			   FROM sessions
			  ORDER BY id ASC
			  LIMIT ?`,
			pageSize+1,
		)
	} else {
		rows, err = s.sqlDB.QueryContext(
			ctx,
			`SELECT id, name, status, current_player, current_turn,
			        phase, board_size, created_at, updated_at, ended_at
			   FROM sessions
			  WHERE id > ?
			  ORDER BY id ASC
			  LIMIT ?`,
			pageToken,
			pageSize+1,
		)
	}
	if err != nil {
		return storage.SessionPage{}, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		record, err := scanSession(rows)
		if err != nil {
			return storage.SessionPage{}, fmt.Errorf("list sessions: %w", err)
		}
		page.Sessions = append(page.Sessions, record)
	}
	if err := rows.Err(); err != nil {
		return storage.SessionPage{}, fmt.Errorf("list sessions: %w", err)
	}
	if len(page.Sessions) > pageSize {
		page.NextPageToken = page.Sessions[pageSize-1].ID
		page.Sessions = page.Sessions[:pageSize]
	}

	return page, nil
}

const updateSessionSQL = `UPDATE sessions
   SET status = ?, current_player = ?, current_turn = ?,
       phase = ?, updated_at = ?, ended_at = ?
 WHERE id = ?`

func updateSessionArgs(record session.Session) []any {
	var endedAt any
	if record.EndedAt != nil {
		endedAt = toMillis(*record.EndedAt)
	}
	return []any{
		string(record.Status),
		record.CurrentPlayer,
		record.CurrentTurn,
		string(record.Phase),
		toMillis(record.UpdatedAt),
		endedAt,
		record.ID,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (session.Session, error) {
	var record session.Session
	var status string
	var phase string
	var createdAt int64
	var updatedAt int64
	var endedAt sql.NullInt64
	if err := row.Scan(
		&record.ID,
		&record.Name,
		&status,
		&record.CurrentPlayer,
		&record.CurrentTurn,
		&phase,
		&record.BoardSize,
		&createdAt,
		&updatedAt,
		&endedAt,
	); err != nil {
		return session.Session{}, err
	}
	record.Status = session.Status(status)
	record.Phase = session.TurnPhase(phase)
	record.CreatedAt = fromMillis(createdAt)
	record.UpdatedAt = fromMillis(updatedAt)
	if endedAt.Valid {
		value := fromMillis(endedAt.Int64)
		record.EndedAt = &value
	}
	return record, nil
}
