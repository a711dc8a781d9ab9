package session

import "strings"

// TurnPhase is the per-player-per-turn sub-state. Each turn walks
// AwaitingMovement → AwaitingAction → TurnComplete exactly once.
type TurnPhase string

const (
	PhaseUnspecified      TurnPhase = ""
	PhaseAwaitingMovement TurnPhase = "awaiting_movement"
	PhaseAwaitingAction   TurnPhase = "awaiting_action"
	PhaseTurnComplete     TurnPhase = "turn_complete"
)

// IsValid reports whether the phase is a supported turn phase.
func (p TurnPhase) IsValid() bool {
	switch p {
	case PhaseAwaitingMovement, PhaseAwaitingAction, PhaseTurnComplete:
		return true
	default:
		return false
	}
}

func (p TurnPhase) String() string {
	if p == PhaseUnspecified {
		return "unspecified"
	}
	return string(p)
}

// ParseTurnPhase canonicalizes a phase label.
func ParseTurnPhase(value string) (TurnPhase, bool) {
	phase := TurnPhase(strings.ToLower(strings.TrimSpace(value)))
	if !phase.IsValid() {
		return PhaseUnspecified, false
	}
	return phase, true
}
