package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/louisbranch/ringfall/internal/game/domain/player"
	"github.com/louisbranch/ringfall/internal/game/storage"
)

// CreatePlayer inserts one player record.
func (s *Store) CreatePlayer(ctx context.Context, record player.Player) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(record.ID) == "" {
		return fmt.Errorf("player id is required")
	}
	if strings.TrimSpace(record.SessionID) == "" {
		return fmt.Errorf("session id is required")
	}
	if record.Number < 1 {
		return fmt.Errorf("player number must be 1-based")
	}
	if strings.TrimSpace(record.Name) == "" {
		return fmt.Errorf("player name is required")
	}

	inventory, properties, err := encodePlayerLists(record)
	if err != nil {
		return fmt.Errorf("create player: %w", err)
	}

	_, err = s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO players (
		   id, session_id, number, name, class,
		   position, health, gold, ai, inventory, properties
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID,
		record.SessionID,
		record.Number,
		record.Name,
		record.Class,
		record.Position,
		record.Health,
		record.Gold,
		boolToInt(record.AI),
		inventory,
		properties,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("create player: %w", err)
	}
	return nil
}

// GetPlayer returns one player by session and seat number.
func (s *Store) GetPlayer(ctx context.Context, sessionID string, number int) (player.Player, error) {
	if err := s.ready(ctx); err != nil {
		return player.Player{}, err
	}
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return player.Player{}, fmt.Errorf("session id is required")
	}
	if number < 1 {
		return player.Player{}, fmt.Errorf("player number must be 1-based")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, session_id, number, name, class,
		        position, health, gold, ai, inventory, properties
		   FROM players
		  WHERE session_id = ? AND number = ?`,
		sessionID,
		number,
	)
	record, err := scanPlayer(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return player.Player{}, storage.ErrNotFound
		}
		return player.Player{}, fmt.Errorf("get player: %w", err)
	}
	return record, nil
}

// ListPlayers returns the full roster for one session ordered by seat.
func (s *Store) ListPlayers(ctx context.Context, sessionID string) ([]player.Player, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, fmt.Errorf("session id is required")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, session_id, number, name, class,
		        position, health, gold, ai, inventory, properties
		   FROM players
		  WHERE session_id = ?
		  ORDER BY number ASC`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	defer rows.Close()

	var players []player.Player
	for rows.Next() {
		record, err := scanPlayer(rows)
		if err != nil {
			return nil, fmt.Errorf("list players: %w", err)
		}
		players = append(players, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	return players, nil
}

// UpdatePlayer overwrites the mutable fields of one player record.
func (s *Store) UpdatePlayer(ctx context.Context, record player.Player) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(record.ID) == "" {
		return fmt.Errorf("player id is required")
	}

	args, err := updatePlayerArgs(record)
	if err != nil {
		return fmt.Errorf("update player: %w", err)
	}
	result, err := s.sqlDB.ExecContext(ctx, updatePlayerSQL, args...)
	if err != nil {
		return fmt.Errorf("update player: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update player: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

const updatePlayerSQL = `UPDATE players
   SET position = ?, health = ?, gold = ?, inventory = ?, properties = ?
 WHERE id = ?`

func updatePlayerArgs(record player.Player) ([]any, error) {
	inventory, properties, err := encodePlayerLists(record)
	if err != nil {
		return nil, err
	}
	return []any{
		record.Position,
		record.Health,
		record.Gold,
		inventory,
		properties,
		record.ID,
	}, nil
}

func encodePlayerLists(record player.Player) (string, string, error) {
	inventory := record.Inventory
	if inventory == nil {
		inventory = []string{}
	}
	properties := record.Properties
	if properties == nil {
		properties = []int{}
	}
	inventoryJSON, err := json.Marshal(inventory)
	if err != nil {
		return "", "", fmt.Errorf("encode inventory: %w", err)
	}
	propertiesJSON, err := json.Marshal(properties)
	if err != nil {
		return "", "", fmt.Errorf("encode properties: %w", err)
	}
	return string(inventoryJSON), string(propertiesJSON), nil
}

func scanPlayer(row rowScanner) (player.Player, error) {
	var record player.Player
	var ai int
	var inventory string
	var properties string
	if err := row.Scan(
		&record.ID,
		&record.SessionID,
		&record.Number,
		&record.Name,
		&record.Class,
		&record.Position,
		&record.Health,
		&record.Gold,
		&ai,
		&inventory,
		&properties,
	); err != nil {
		return player.Player{}, err
	}
	record.AI = ai != 0
	if inventory != "" {
		if err := json.Unmarshal([]byte(inventory), &record.Inventory); err != nil {
			return player.Player{}, fmt.Errorf("decode inventory: %w", err)
		}
	}
	if properties != "" {
		if err := json.Unmarshal([]byte(properties), &record.Properties); err != nil {
			return player.Player{}, fmt.Errorf("decode properties: %w", err)
		}
	}
	return record, nil
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}
