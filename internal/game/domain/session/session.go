// Package session defines the session aggregate observed by storage and
// presentation collaborators: the roster pointer, the turn counter, the
// lifecycle status, and the current turn phase.
package session

import (
	"fmt"
	"strings"
	"time"

	apperrors "github.com/louisbranch/ringfall/internal/platform/errors"
	"github.com/louisbranch/ringfall/internal/platform/id"
)

var (
	// ErrEmptyName indicates a missing session name.
	ErrEmptyName = apperrors.New(apperrors.CodeSessionEmptyName, "session name is required")
	// ErrNotActive indicates an engine operation on a non-active session.
	ErrNotActive = apperrors.New(apperrors.CodeSessionNotActive, "session is not active")
	// ErrInvalidTransition indicates a disallowed lifecycle change.
	ErrInvalidTransition = apperrors.New(apperrors.CodeSessionInvalidTransition, "session status transition is not allowed")
)

// Session aggregates the mutable turn state for one game.
type Session struct {
	ID     string
	Name   string
	Status Status
	// CurrentPlayer is the 1-based seat whose turn it is. It always names
	// a registered player number.
	CurrentPlayer int
	// CurrentTurn counts full cycles through the roster, starting at 1.
	// It increments exactly when the pointer wraps back to seat 1.
	CurrentTurn int
	Phase       TurnPhase
	BoardSize   int
	CreatedAt   time.Time
	UpdatedAt   time.Time
	EndedAt     *time.Time // nil while the session has not ended
}

// CreateSessionInput describes the metadata needed to create a session.
type CreateSessionInput struct {
	Name      string
	BoardSize int
}

// Create builds a new session in the waiting state with a generated ID.
// The turn pointer starts at seat 1 awaiting its movement roll.
func Create(input CreateSessionInput, now func() time.Time, idGenerator func() (string, error)) (Session, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.NewID
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return Session{}, ErrEmptyName
	}
	if input.BoardSize <= 0 {
		return Session{}, apperrors.WithMetadata(
			apperrors.CodeBoardInvalid,
			fmt.Sprintf("board size %d is not positive", input.BoardSize),
			map[string]string{"reason": "board size must be positive"},
		)
	}

	sessionID, err := idGenerator()
	if err != nil {
		return Session{}, fmt.Errorf("generate session id: %w", err)
	}

	createdAt := now().UTC()
	return Session{
		ID:            sessionID,
		Name:          name,
		Status:        StatusWaiting,
		CurrentPlayer: 1,
		CurrentTurn:   1,
		Phase:         PhaseAwaitingMovement,
		BoardSize:     input.BoardSize,
		CreatedAt:     createdAt,
		UpdatedAt:     createdAt,
		EndedAt:       nil,
	}, nil
}

// Transition moves the session to a new lifecycle status, enforcing
// waiting → active → ended.
func (s Session) Transition(to Status, now func() time.Time) (Session, error) {
	if now == nil {
		now = time.Now
	}
	if !isTransitionAllowed(s.Status, to) {
		return Session{}, apperrors.WithMetadata(
			apperrors.CodeSessionInvalidTransition,
			fmt.Sprintf("cannot transition session from %s to %s", s.Status, to),
			map[string]string{"from": string(s.Status), "to": string(to)},
		)
	}

	s.Status = to
	s.UpdatedAt = now().UTC()
	if to == StatusEnded {
		endedAt := s.UpdatedAt
		s.EndedAt = &endedAt
	}
	return s, nil
}
