// Package engine implements the turn/movement/effect state machine.
//
// The engine is pure with respect to its inputs: every operation takes the
// current state, validates the turn protocol, and returns a new state plus
// a structured event. On failure nothing is mutated — callers persist the
// returned state only on success, which keeps operations atomic.
package engine

import (
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/louisbranch/ringfall/internal/core/dice"
	"github.com/louisbranch/ringfall/internal/game/domain/board"
	"github.com/louisbranch/ringfall/internal/game/domain/player"
	"github.com/louisbranch/ringfall/internal/game/domain/session"
	"github.com/louisbranch/ringfall/internal/game/narrative"
	apperrors "github.com/louisbranch/ringfall/internal/platform/errors"
)

// State bundles the session aggregate with its roster for one operation.
type State struct {
	Session session.Session
	Players []player.Player
}

// MovementResult reports a resolved movement roll.
type MovementResult struct {
	Dice        []int
	Total       int
	NewPosition int
	WrapBonus   int
}

// ActionResult reports a resolved action roll.
type ActionResult struct {
	Roll            int
	Tile            board.Tile
	HealthDelta     int
	GoldDelta       int
	ResultingHealth int
	ResultingGold   int
}

// EndTurnResult reports the hand-off to the next seat.
type EndTurnResult struct {
	NextPlayer     int
	NextTurnNumber int
}

// Engine executes turn operations against session state.
//
// The rng is injected so tests (and replays) can drive deterministic
// rolls. An Engine must not be shared across sessions without external
// serialization; the service layer owns one mutation at a time per
// session.
type Engine struct {
	policy Policy
	rng    *rand.Rand
	clock  func() time.Time
}

// New creates an engine with the given policy and random source.
func New(policy Policy, rng *rand.Rand) *Engine {
	return &Engine{policy: policy, rng: rng, clock: time.Now}
}

// WithClock overrides the engine clock, primarily for tests.
func (e *Engine) WithClock(clock func() time.Time) *Engine {
	if clock != nil {
		e.clock = clock
	}
	return e
}

// Policy returns the rule constants the engine was built with.
func (e *Engine) Policy() Policy {
	return e.policy
}

// RollMovement draws the movement dice for the active player, applies the
// wrap bonus when the path crosses or lands on the wrap point, and moves
// the turn to the action phase.
func (e *Engine) RollMovement(state State, seat int) (State, MovementResult, narrative.Event, error) {
	next, idx, err := e.guard(state, seat, session.PhaseAwaitingMovement)
	if err != nil {
		return State{}, MovementResult{}, narrative.Event{}, err
	}

	result, err := dice.RollWithRng(e.rng, []dice.Spec{{
		Sides: e.policy.MovementSides,
		Count: e.policy.MovementDice,
	}})
	if err != nil {
		return State{}, MovementResult{}, narrative.Event{}, fmt.Errorf("roll movement dice: %w", err)
	}

	p := next.Players[idx]
	total := result.Total
	boardSize := next.Session.BoardSize

	// Wrap bonus uses the pre-roll position plus the raw total: crossing
	// or landing exactly on the wrap point both qualify, exactly once.
	wrapBonus := 0
	if p.Position+total >= boardSize {
		wrapBonus = e.policy.WrapBonus
	}

	p.Position = (p.Position + total) % boardSize
	p.Gold = clampGold(p.Gold + wrapBonus)
	next.Players[idx] = p

	next.Session.Phase = session.PhaseAwaitingAction
	next.Session.UpdatedAt = e.clock().UTC()

	movement := MovementResult{
		Dice:        result.Rolls[0].Results,
		Total:       total,
		NewPosition: p.Position,
		WrapBonus:   wrapBonus,
	}
	event := narrative.Event{
		SessionID:    next.Session.ID,
		Turn:         next.Session.CurrentTurn,
		PlayerNumber: p.Number,
		PlayerName:   p.Name,
		Kind:         narrative.EventKindMovement,
		Dice:         movement.Dice,
		MoveTotal:    total,
		NewPosition:  p.Position,
		WrapBonus:    wrapBonus,
	}
	return next, movement, event, nil
}

// RollAction draws the action die for the active player, resolves the
// effect of the tile the player stands on, and completes the turn's action
// phase. Health and gold are clamped once, after all deltas are summed.
func (e *Engine) RollAction(state State, topology *board.Topology, seat int) (State, ActionResult, narrative.Event, error) {
	next, idx, err := e.guard(state, seat, session.PhaseAwaitingAction)
	if err != nil {
		return State{}, ActionResult{}, narrative.Event{}, err
	}

	p := next.Players[idx]
	tile, err := topology.TileAt(p.Position)
	if err != nil {
		// Topology inconsistency is reported, never silently ignored.
		return State{}, ActionResult{}, narrative.Event{}, err
	}

	result, err := dice.RollWithRng(e.rng, []dice.Spec{{
		Sides: e.policy.ActionSides,
		Count: 1,
	}})
	if err != nil {
		return State{}, ActionResult{}, narrative.Event{}, fmt.Errorf("roll action die: %w", err)
	}
	roll := result.Total

	effect := ResolveTileEffect(tile.Type, roll, e.policy)
	p.Health = clampHealth(p.Health+effect.HealthDelta, e.policy.MaxHealth)
	p.Gold = clampGold(p.Gold + effect.GoldDelta)
	next.Players[idx] = p

	next.Session.Phase = session.PhaseTurnComplete
	next.Session.UpdatedAt = e.clock().UTC()

	action := ActionResult{
		Roll:            roll,
		Tile:            tile,
		HealthDelta:     effect.HealthDelta,
		GoldDelta:       effect.GoldDelta,
		ResultingHealth: p.Health,
		ResultingGold:   p.Gold,
	}
	event := narrative.Event{
		SessionID:    next.Session.ID,
		Turn:         next.Session.CurrentTurn,
		PlayerNumber: p.Number,
		PlayerName:   p.Name,
		Kind:         narrative.EventKindAction,
		Roll:         roll,
		TileType:     tile.Type.String(),
		TilePos:      tile.Position,
		HealthDelta:  effect.HealthDelta,
		GoldDelta:    effect.GoldDelta,
	}
	return next, action, event, nil
}

// EndTurn advances the turn pointer cyclically through the roster and
// increments the turn counter when the pointer wraps back to seat 1.
func (e *Engine) EndTurn(state State, seat int) (State, EndTurnResult, narrative.Event, error) {
	next, idx, err := e.guard(state, seat, session.PhaseTurnComplete)
	if err != nil {
		return State{}, EndTurnResult{}, narrative.Event{}, err
	}

	rosterSize := len(next.Players)
	endingTurn := next.Session.CurrentTurn
	nextSeat := (next.Session.CurrentPlayer % rosterSize) + 1
	if nextSeat == 1 {
		next.Session.CurrentTurn++
	}
	next.Session.CurrentPlayer = nextSeat
	next.Session.Phase = session.PhaseAwaitingMovement
	next.Session.UpdatedAt = e.clock().UTC()

	result := EndTurnResult{
		NextPlayer:     nextSeat,
		NextTurnNumber: next.Session.CurrentTurn,
	}
	// The event belongs to the turn it closes; the incremented counter
	// only shows up in NextTurn.
	event := narrative.Event{
		SessionID:    next.Session.ID,
		Turn:         endingTurn,
		PlayerNumber: next.Players[idx].Number,
		PlayerName:   next.Players[idx].Name,
		Kind:         narrative.EventKindTurnEnded,
		NextPlayer:   nextSeat,
		NextTurn:     next.Session.CurrentTurn,
	}
	return next, result, event, nil
}

// guard validates the turn protocol and returns a deep-enough copy of the
// state for the operation to mutate safely.
func (e *Engine) guard(state State, seat int, phase session.TurnPhase) (State, int, error) {
	if state.Session.Status != session.StatusActive {
		return State{}, 0, apperrors.WithMetadata(
			apperrors.CodeSessionNotActive,
			fmt.Sprintf("session %s is %s", state.Session.ID, state.Session.Status),
			map[string]string{"status": state.Session.Status.String()},
		)
	}
	if err := player.ValidateRoster(state.Players); err != nil {
		return State{}, 0, err
	}

	idx := player.ByNumber(state.Players, seat)
	if idx < 0 {
		return State{}, 0, apperrors.WithMetadata(
			apperrors.CodePlayerNotFound,
			fmt.Sprintf("no player with seat %d", seat),
			map[string]string{"player": strconv.Itoa(seat)},
		)
	}
	if state.Session.CurrentPlayer != seat {
		return State{}, 0, apperrors.WithMetadata(
			apperrors.CodeNotYourTurn,
			fmt.Sprintf("seat %d acted during seat %d's turn", seat, state.Session.CurrentPlayer),
			map[string]string{"player": strconv.Itoa(state.Session.CurrentPlayer)},
		)
	}
	if state.Session.Phase != phase {
		return State{}, 0, apperrors.WithMetadata(
			apperrors.CodeInvalidPhase,
			fmt.Sprintf("operation requires %s but turn is in %s", phase, state.Session.Phase),
			map[string]string{"phase": state.Session.Phase.String()},
		)
	}

	players := make([]player.Player, len(state.Players))
	copy(players, state.Players)
	return State{Session: state.Session, Players: players}, idx, nil
}

func clampHealth(health, maxHealth int) int {
	if health < 0 {
		return 0
	}
	if health > maxHealth {
		return maxHealth
	}
	return health
}

func clampGold(gold int) int {
	if gold < 0 {
		return 0
	}
	return gold
}
