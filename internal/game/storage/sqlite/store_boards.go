package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/louisbranch/ringfall/internal/game/domain/board"
	"github.com/louisbranch/ringfall/internal/game/storage"
)

// PutBoard stores the full tile ring for one session, replacing any
// previous board.
func (s *Store) PutBoard(ctx context.Context, sessionID string, tiles []board.Tile) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return fmt.Errorf("session id is required")
	}
	if len(tiles) == 0 {
		return fmt.Errorf("tiles are required")
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("put board: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM board_tiles WHERE session_id = ?`, sessionID); err != nil {
		return fmt.Errorf("put board: %w", err)
	}
	for _, tile := range tiles {
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO board_tiles (session_id, position, type, purchase_price, rent_price)
			 VALUES (?, ?, ?, ?, ?)`,
			sessionID,
			tile.Position,
			string(tile.Type),
			tile.PurchasePrice,
			tile.RentPrice,
		); err != nil {
			return fmt.Errorf("put board tile %d: %w", tile.Position, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("put board: %w", err)
	}
	return nil
}

// GetBoard returns the tile ring for one session ordered by position.
func (s *Store) GetBoard(ctx context.Context, sessionID string) ([]board.Tile, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, fmt.Errorf("session id is required")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT position, type, purchase_price, rent_price
		   FROM board_tiles
		  WHERE session_id = ?
		  ORDER BY position ASC`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("get board: %w", err)
	}
	defer rows.Close()

	var tiles []board.Tile
	for rows.Next() {
		var tile board.Tile
		var tileType string
		if err := rows.Scan(&tile.Position, &tileType, &tile.PurchasePrice, &tile.RentPrice); err != nil {
			return nil, fmt.Errorf("get board: %w", err)
		}
		tile.Type = board.TileType(tileType)
		tiles = append(tiles, tile)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get board: %w", err)
	}
	if len(tiles) == 0 {
		return nil, storage.ErrNotFound
	}
	return tiles, nil
}
