// Package narrative defines the structured events the engine emits for
// narration and chat collaborators.
//
// The engine never depends on narration output: events describe what
// happened in a turn, and the orchestration layer decides whether and how
// to dispatch them.
package narrative

import (
	"context"
	"log"
)

// EventKind identifies the type of a turn event.
type EventKind string

const (
	// EventKindMovement records a movement roll and the resulting position.
	EventKindMovement EventKind = "MOVEMENT_ROLLED"
	// EventKindAction records an action roll and the tile effect applied.
	EventKindAction EventKind = "ACTION_RESOLVED"
	// EventKindTurnEnded records the hand-off to the next seat.
	EventKindTurnEnded EventKind = "TURN_ENDED"
)

// Event captures one resolved engine operation for narration.
type Event struct {
	SessionID    string
	Turn         int
	PlayerNumber int
	PlayerName   string
	Kind         EventKind

	// Movement fields
	Dice        []int
	MoveTotal   int
	NewPosition int
	WrapBonus   int

	// Action fields
	Roll        int
	TileType    string
	TilePos     int
	HealthDelta int
	GoldDelta   int

	// Turn hand-off fields
	NextPlayer int
	NextTurn   int
}

// Narrator turns structured events into human-readable descriptions.
// Implementations must tolerate being called concurrently across sessions.
type Narrator interface {
	Describe(ctx context.Context, event Event) error
}

// LogNarrator writes one log line per event. It is the default narrator
// for commands that have no external narration collaborator.
type LogNarrator struct {
	Logger *log.Logger
}

// Describe implements Narrator.
func (n LogNarrator) Describe(_ context.Context, event Event) error {
	logger := n.Logger
	if logger == nil {
		logger = log.Default()
	}
	switch event.Kind {
	case EventKindMovement:
		logger.Printf("session %s turn %d: player %d rolled %v and moved to %d (wrap bonus %d)",
			event.SessionID, event.Turn, event.PlayerNumber, event.Dice, event.NewPosition, event.WrapBonus)
	case EventKindAction:
		logger.Printf("session %s turn %d: player %d rolled %d on %s tile %d (health %+d, gold %+d)",
			event.SessionID, event.Turn, event.PlayerNumber, event.Roll, event.TileType, event.TilePos,
			event.HealthDelta, event.GoldDelta)
	case EventKindTurnEnded:
		logger.Printf("session %s: player %d ended their turn; player %d is up (turn %d)",
			event.SessionID, event.PlayerNumber, event.NextPlayer, event.NextTurn)
	default:
		logger.Printf("session %s: %s event from player %d", event.SessionID, event.Kind, event.PlayerNumber)
	}
	return nil
}

// Dispatch sends an event to the narrator, tolerating a nil collaborator.
func Dispatch(ctx context.Context, narrator Narrator, event Event) error {
	if narrator == nil {
		return nil
	}
	return narrator.Describe(ctx, event)
}
