// Package service orchestrates game sessions: it loads state, runs engine
// operations, persists the outcome atomically, and dispatches narration
// and telemetry events.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/louisbranch/ringfall/internal/game/domain/board"
	"github.com/louisbranch/ringfall/internal/game/domain/player"
	"github.com/louisbranch/ringfall/internal/game/domain/session"
	"github.com/louisbranch/ringfall/internal/game/engine"
	"github.com/louisbranch/ringfall/internal/game/narrative"
	"github.com/louisbranch/ringfall/internal/game/storage"
	"github.com/louisbranch/ringfall/internal/platform/id"
	"github.com/louisbranch/ringfall/internal/random"
	"github.com/louisbranch/ringfall/internal/telemetry"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// Service coordinates engine operations against persistent session state.
//
// Turn operations are serialized per session: the engine is pure, so the
// lock only covers the load-run-persist window.
type Service struct {
	store       storage.Store
	engine      *engine.Engine
	narrator    narrative.Narrator
	emitter     *telemetry.Emitter
	clock       func() time.Time
	idGenerator func() (string, error)
	boardRng    *rand.Rand
	tracer      trace.Tracer

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New creates a Service with default dependencies. The dice and board
// sources are mutex-guarded: sessions serialize their own turns, but
// distinct sessions roll concurrently against the same rng.
func New(store storage.Store) *Service {
	seed, err := random.NewSeed()
	if err != nil {
		seed = time.Now().UnixNano()
	}
	return &Service{
		store:       store,
		engine:      engine.New(engine.DefaultPolicy(), rand.New(random.NewLockedSource(seed))),
		clock:       time.Now,
		idGenerator: id.NewID,
		boardRng:    rand.New(random.NewLockedSource(seed + 1)),
		tracer:      otel.Tracer("github.com/louisbranch/ringfall/internal/game/service"),
		locks:       make(map[string]*sync.Mutex),
	}
}

// WithEngine overrides the turn engine, primarily for tests.
func (s *Service) WithEngine(e *engine.Engine) *Service {
	if e != nil {
		s.engine = e
	}
	return s
}

// WithNarrator sets the narration collaborator.
func (s *Service) WithNarrator(narrator narrative.Narrator) *Service {
	s.narrator = narrator
	return s
}

// WithEmitter sets the telemetry collaborator.
func (s *Service) WithEmitter(emitter *telemetry.Emitter) *Service {
	s.emitter = emitter
	return s
}

// WithClock overrides the service clock, primarily for tests.
func (s *Service) WithClock(clock func() time.Time) *Service {
	if clock != nil {
		s.clock = clock
	}
	return s
}

// WithIDGenerator overrides ID generation, primarily for tests.
func (s *Service) WithIDGenerator(idGenerator func() (string, error)) *Service {
	if idGenerator != nil {
		s.idGenerator = idGenerator
	}
	return s
}

// WithBoardRng overrides the board generation source, primarily for tests.
func (s *Service) WithBoardRng(rng *rand.Rand) *Service {
	if rng != nil {
		s.boardRng = rng
	}
	return s
}

// SeatInput describes one seat in a new session's roster, in turn order.
type SeatInput struct {
	Name  string
	Class string
	AI    bool
}

// CreateSessionInput describes a new session and its full roster.
type CreateSessionInput struct {
	Name      string
	BoardSize int
	Seats     []SeatInput
}

// SessionView bundles a session with its roster and board for callers.
type SessionView struct {
	Session session.Session
	Players []player.Player
	Tiles   []board.Tile
}

// CreateSession creates a session in the waiting state with its roster and
// a generated board. The roster is fixed at creation.
func (s *Service) CreateSession(ctx context.Context, input CreateSessionInput) (SessionView, error) {
	ctx, span := s.tracer.Start(ctx, "game.CreateSession")
	defer span.End()

	boardSize := input.BoardSize
	if boardSize == 0 {
		boardSize = board.DefaultSize
	}

	sess, err := session.Create(session.CreateSessionInput{
		Name:      input.Name,
		BoardSize: boardSize,
	}, s.clock, s.idGenerator)
	if err != nil {
		return SessionView{}, spanErr(span, err)
	}

	players := make([]player.Player, 0, len(input.Seats))
	for i, seat := range input.Seats {
		p, err := player.Create(player.CreatePlayerInput{
			SessionID: sess.ID,
			Number:    i + 1,
			Name:      seat.Name,
			Class:     seat.Class,
			AI:        seat.AI,
		}, s.idGenerator)
		if err != nil {
			return SessionView{}, spanErr(span, err)
		}
		players = append(players, p)
	}
	if err := player.ValidateRoster(players); err != nil {
		return SessionView{}, spanErr(span, err)
	}

	topology, err := board.Generate(boardSize, s.boardRng)
	if err != nil {
		return SessionView{}, spanErr(span, err)
	}
	tiles := topology.Tiles()

	if err := s.store.CreateSession(ctx, sess); err != nil {
		return SessionView{}, spanErr(span, fmt.Errorf("persist session: %w", err))
	}
	for _, p := range players {
		if err := s.store.CreatePlayer(ctx, p); err != nil {
			return SessionView{}, spanErr(span, fmt.Errorf("persist player %d: %w", p.Number, err))
		}
	}
	if err := s.store.PutBoard(ctx, sess.ID, tiles); err != nil {
		return SessionView{}, spanErr(span, fmt.Errorf("persist board: %w", err))
	}

	return SessionView{Session: sess, Players: players, Tiles: tiles}, nil
}

// StartSession activates a waiting session so turn operations may run.
func (s *Service) StartSession(ctx context.Context, sessionID string) (session.Session, error) {
	ctx, span := s.tracer.Start(ctx, "game.StartSession")
	defer span.End()

	unlock := s.lockSession(sessionID)
	defer unlock()

	sess, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return session.Session{}, spanErr(span, err)
	}
	players, err := s.store.ListPlayers(ctx, sessionID)
	if err != nil {
		return session.Session{}, spanErr(span, err)
	}
	if err := player.ValidateRoster(players); err != nil {
		return session.Session{}, spanErr(span, err)
	}

	sess, err = sess.Transition(session.StatusActive, s.clock)
	if err != nil {
		return session.Session{}, spanErr(span, err)
	}
	if err := s.store.UpdateSession(ctx, sess); err != nil {
		return session.Session{}, spanErr(span, fmt.Errorf("persist session: %w", err))
	}
	return sess, nil
}

// EndSession ends an active session. Further turn operations are rejected.
func (s *Service) EndSession(ctx context.Context, sessionID string) (session.Session, error) {
	ctx, span := s.tracer.Start(ctx, "game.EndSession")
	defer span.End()

	unlock := s.lockSession(sessionID)
	defer unlock()

	sess, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return session.Session{}, spanErr(span, err)
	}
	sess, err = sess.Transition(session.StatusEnded, s.clock)
	if err != nil {
		return session.Session{}, spanErr(span, err)
	}
	if err := s.store.UpdateSession(ctx, sess); err != nil {
		return session.Session{}, spanErr(span, fmt.Errorf("persist session: %w", err))
	}
	s.releaseSession(sessionID)
	return sess, nil
}

// GetSession returns a session with its roster and board.
func (s *Service) GetSession(ctx context.Context, sessionID string) (SessionView, error) {
	sess, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return SessionView{}, err
	}
	players, err := s.store.ListPlayers(ctx, sessionID)
	if err != nil {
		return SessionView{}, err
	}
	tiles, err := s.store.GetBoard(ctx, sessionID)
	if err != nil {
		return SessionView{}, err
	}
	return SessionView{Session: sess, Players: players, Tiles: tiles}, nil
}

// StartTurn reports which phase the session's current turn is in. It is
// a read-only query; callers use it to decide which roll to submit next.
func (s *Service) StartTurn(ctx context.Context, sessionID string) (session.TurnPhase, error) {
	sess, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return session.PhaseUnspecified, err
	}
	return sess.Phase, nil
}

// ListSessions returns one page of sessions.
func (s *Service) ListSessions(ctx context.Context, pageSize int, pageToken string) (storage.SessionPage, error) {
	return s.store.ListSessions(ctx, pageSize, pageToken)
}

// ListTurnEvents returns one page of a session's turn history.
func (s *Service) ListTurnEvents(ctx context.Context, sessionID string, pageSize int, pageToken string) (storage.TurnEventPage, error) {
	return s.store.ListTurnEvents(ctx, sessionID, pageSize, pageToken)
}

// RollMovement rolls the movement dice for the given seat.
func (s *Service) RollMovement(ctx context.Context, sessionID string, seat int) (engine.MovementResult, error) {
	ctx, span := s.tracer.Start(ctx, "game.RollMovement")
	defer span.End()

	unlock := s.lockSession(sessionID)
	defer unlock()

	state, err := s.loadState(ctx, sessionID)
	if err != nil {
		return engine.MovementResult{}, spanErr(span, err)
	}

	next, result, event, err := s.engine.RollMovement(state, seat)
	if err != nil {
		return engine.MovementResult{}, spanErr(span, err)
	}
	if err := s.persistTurn(ctx, next, event, seat); err != nil {
		return engine.MovementResult{}, spanErr(span, err)
	}
	s.dispatch(ctx, event, "turn.movement")
	return result, nil
}

// RollAction rolls the action die for the given seat and resolves the
// effect of the tile the player stands on.
func (s *Service) RollAction(ctx context.Context, sessionID string, seat int) (engine.ActionResult, error) {
	ctx, span := s.tracer.Start(ctx, "game.RollAction")
	defer span.End()

	unlock := s.lockSession(sessionID)
	defer unlock()

	state, err := s.loadState(ctx, sessionID)
	if err != nil {
		return engine.ActionResult{}, spanErr(span, err)
	}
	tiles, err := s.store.GetBoard(ctx, sessionID)
	if err != nil {
		return engine.ActionResult{}, spanErr(span, err)
	}
	topology, err := board.New(tiles)
	if err != nil {
		return engine.ActionResult{}, spanErr(span, err)
	}

	next, result, event, err := s.engine.RollAction(state, topology, seat)
	if err != nil {
		return engine.ActionResult{}, spanErr(span, err)
	}
	if err := s.persistTurn(ctx, next, event, seat); err != nil {
		return engine.ActionResult{}, spanErr(span, err)
	}
	s.dispatch(ctx, event, "turn.action")
	return result, nil
}

// EndTurn completes the given seat's turn and advances the roster pointer.
func (s *Service) EndTurn(ctx context.Context, sessionID string, seat int) (engine.EndTurnResult, error) {
	ctx, span := s.tracer.Start(ctx, "game.EndTurn")
	defer span.End()

	unlock := s.lockSession(sessionID)
	defer unlock()

	state, err := s.loadState(ctx, sessionID)
	if err != nil {
		return engine.EndTurnResult{}, spanErr(span, err)
	}

	next, result, event, err := s.engine.EndTurn(state, seat)
	if err != nil {
		return engine.EndTurnResult{}, spanErr(span, err)
	}
	if err := s.persistTurn(ctx, next, event, seat); err != nil {
		return engine.EndTurnResult{}, spanErr(span, err)
	}
	s.dispatch(ctx, event, "turn.end")
	return result, nil
}

func (s *Service) loadState(ctx context.Context, sessionID string) (engine.State, error) {
	sess, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return engine.State{}, err
	}
	players, err := s.store.ListPlayers(ctx, sessionID)
	if err != nil {
		return engine.State{}, err
	}
	return engine.State{Session: sess, Players: players}, nil
}

// persistTurn commits the engine outcome in one transaction. Only the
// acting seat's player row can change in a single operation.
func (s *Service) persistTurn(ctx context.Context, next engine.State, event narrative.Event, seat int) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode turn event: %w", err)
	}
	eventID, err := s.idGenerator()
	if err != nil {
		return fmt.Errorf("generate event id: %w", err)
	}

	var touched []player.Player
	if idx := player.ByNumber(next.Players, seat); idx >= 0 {
		touched = next.Players[idx : idx+1]
	}

	return s.store.ApplyTurn(ctx, storage.TurnWrite{
		Session: next.Session,
		Players: touched,
		Event: storage.TurnEvent{
			ID:           eventID,
			SessionID:    next.Session.ID,
			Turn:         event.Turn,
			PlayerNumber: seat,
			Kind:         string(event.Kind),
			Payload:      string(payload),
			CreatedAt:    s.clock().UTC(),
		},
	})
}

// dispatch forwards the event to narration and telemetry. Neither failure
// affects the already-committed turn; they are logged by the collaborators.
func (s *Service) dispatch(ctx context.Context, event narrative.Event, name string) {
	_ = narrative.Dispatch(ctx, s.narrator, event)
	attributes, err := json.Marshal(event)
	if err != nil {
		return
	}
	_ = s.emitter.Emit(ctx, storage.TelemetryEvent{
		SessionID:  event.SessionID,
		Name:       name,
		Attributes: string(attributes),
	})
}

func (s *Service) lockSession(sessionID string) func() {
	s.mu.Lock()
	lock, ok := s.locks[sessionID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[sessionID] = lock
	}
	s.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}

// releaseSession drops an ended session's mutex so the map does not grow
// with the session count. Callers that already hold a reference finish on
// the old mutex; their operations fail the active-status guard anyway.
func (s *Service) releaseSession(sessionID string) {
	s.mu.Lock()
	delete(s.locks, sessionID)
	s.mu.Unlock()
}

func spanErr(span trace.Span, err error) error {
	span.RecordError(err)
	return err
}
