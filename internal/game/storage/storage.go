// Package storage defines persistence contracts for game session state.
package storage

import (
	"context"
	"time"

	"github.com/louisbranch/ringfall/internal/game/domain/board"
	"github.com/louisbranch/ringfall/internal/game/domain/player"
	"github.com/louisbranch/ringfall/internal/game/domain/session"
	apperrors "github.com/louisbranch/ringfall/internal/platform/errors"
)

var (
	// ErrNotFound indicates a requested record is missing.
	ErrNotFound = apperrors.New(apperrors.CodeNotFound, "record not found")
	// ErrAlreadyExists indicates a uniqueness-constrained record already exists.
	ErrAlreadyExists = apperrors.New(apperrors.CodeAlreadyExists, "record already exists")
)

// SessionPage stores one page of session records.
type SessionPage struct {
	Sessions      []session.Session
	NextPageToken string
}

// TurnEvent stores one resolved turn operation for replay and audit.
type TurnEvent struct {
	ID           string
	SessionID    string
	Turn         int
	PlayerNumber int
	Kind         string
	Payload      string
	CreatedAt    time.Time
}

// TurnEventPage stores one page of turn event records.
type TurnEventPage struct {
	Events        []TurnEvent
	NextPageToken string
}

// TelemetryEvent stores one operational telemetry sample.
type TelemetryEvent struct {
	ID         string
	SessionID  string
	Name       string
	Attributes string
	CreatedAt  time.Time
}

// SessionStore persists session aggregates.
type SessionStore interface {
	CreateSession(ctx context.Context, record session.Session) error
	GetSession(ctx context.Context, sessionID string) (session.Session, error)
	UpdateSession(ctx context.Context, record session.Session) error
	ListSessions(ctx context.Context, pageSize int, pageToken string) (SessionPage, error)
}

// PlayerStore persists session rosters.
type PlayerStore interface {
	CreatePlayer(ctx context.Context, record player.Player) error
	GetPlayer(ctx context.Context, sessionID string, number int) (player.Player, error)
	ListPlayers(ctx context.Context, sessionID string) ([]player.Player, error)
	UpdatePlayer(ctx context.Context, record player.Player) error
}

// BoardStore persists the tile ring generated for each session.
type BoardStore interface {
	PutBoard(ctx context.Context, sessionID string, tiles []board.Tile) error
	GetBoard(ctx context.Context, sessionID string) ([]board.Tile, error)
}

// TurnEventStore persists the append-only turn history.
type TurnEventStore interface {
	AppendTurnEvent(ctx context.Context, record TurnEvent) error
	ListTurnEvents(ctx context.Context, sessionID string, pageSize int, pageToken string) (TurnEventPage, error)
}

// TelemetryStore persists operational telemetry samples.
type TelemetryStore interface {
	AppendTelemetryEvent(ctx context.Context, record TelemetryEvent) error
}

// TurnWrite bundles everything one turn operation persists atomically:
// the advanced session, the touched players, and the event record.
type TurnWrite struct {
	Session session.Session
	Players []player.Player
	Event   TurnEvent
}

// TurnApplier commits one turn operation in a single transaction.
type TurnApplier interface {
	ApplyTurn(ctx context.Context, write TurnWrite) error
}

// Store aggregates every persistence contract the game service needs.
type Store interface {
	SessionStore
	PlayerStore
	BoardStore
	TurnEventStore
	TelemetryStore
	TurnApplier
	Close() error
}
