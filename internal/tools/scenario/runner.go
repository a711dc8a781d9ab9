package scenario

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/louisbranch/ringfall/internal/game/service"
)

// Config controls scenario execution.
type Config struct {
	Timeout time.Duration
	Verbose bool
	Logger  *log.Logger
}

// DefaultConfig returns default runner configuration.
func DefaultConfig() Config {
	return Config{
		Timeout: 10 * time.Second,
		Verbose: false,
	}
}

// Runner executes Lua scenarios against an in-process game service.
type Runner struct {
	svc     *service.Service
	logger  *log.Logger
	verbose bool
	timeout time.Duration
}

// NewRunner prepares a scenario runner.
func NewRunner(svc *service.Service, cfg Config) (*Runner, error) {
	if svc == nil {
		return nil, errors.New("game service is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.New(os.Stderr, "", 0)
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	return &Runner{
		svc:     svc,
		logger:  logger,
		verbose: cfg.Verbose,
		timeout: timeout,
	}, nil
}

// RunFile loads and executes a scenario file.
func (r *Runner) RunFile(ctx context.Context, path string) error {
	scenario, err := LoadScenarioFromFile(path)
	if err != nil {
		return err
	}
	return r.RunScenario(ctx, scenario)
}

// RunScenario executes the scenario steps in order. The first failing
// step aborts the run.
func (r *Runner) RunScenario(ctx context.Context, scenario *Scenario) error {
	if scenario == nil {
		return errors.New("scenario is required")
	}
	r.logf("scenario start: %s (%d steps)", scenario.Name, len(scenario.Steps))

	state := &scenarioState{}
	for index, step := range scenario.Steps {
		stepNumber := index + 1
		r.logf("step %d/%d start: %s", stepNumber, len(scenario.Steps), step.Kind)
		stepStart := time.Now()
		stepCtx, cancel := context.WithTimeout(ctx, r.timeout)
		err := r.runStep(stepCtx, state, step)
		cancel()
		if err != nil {
			return fmt.Errorf("step %d (%s): %w", stepNumber, step.Kind, err)
		}
		r.logf("step %d/%d done: %s (%s)", stepNumber, len(scenario.Steps), step.Kind, time.Since(stepStart))
	}
	r.logf("scenario done: %s", scenario.Name)
	return nil
}

// scenarioState carries the pending roster before the session exists and
// the session identity afterwards.
type scenarioState struct {
	sessionName string
	boardSize   int
	seats       []service.SeatInput
	sessionID   string
}

func (r *Runner) runStep(ctx context.Context, state *scenarioState, step Step) error {
	switch step.Kind {
	case "session":
		state.sessionName = stringArg(step.Args, "name")
		state.boardSize = intArg(step.Args, "board_size")
		return nil
	case "seat":
		state.seats = append(state.seats, service.SeatInput{
			Name:  stringArg(step.Args, "name"),
			Class: stringArg(step.Args, "class"),
			AI:    boolArg(step.Args, "ai"),
		})
		return nil
	case "start":
		return r.startSession(ctx, state)
	case "end_session":
		if state.sessionID == "" {
			return errors.New("no session started")
		}
		_, err := r.svc.EndSession(ctx, state.sessionID)
		return err
	case "roll_movement":
		if state.sessionID == "" {
			return errors.New("no session started")
		}
		result, err := r.svc.RollMovement(ctx, state.sessionID, intArg(step.Args, "seat"))
		if err != nil {
			return err
		}
		r.logf("movement: dice %v total %d position %d wrap %d",
			result.Dice, result.Total, result.NewPosition, result.WrapBonus)
		return nil
	case "roll_action":
		if state.sessionID == "" {
			return errors.New("no session started")
		}
		result, err := r.svc.RollAction(ctx, state.sessionID, intArg(step.Args, "seat"))
		if err != nil {
			return err
		}
		r.logf("action: roll %d on %s tile %d (health %+d, gold %+d)",
			result.Roll, result.Tile.Type, result.Tile.Position, result.HealthDelta, result.GoldDelta)
		return nil
	case "end_turn":
		if state.sessionID == "" {
			return errors.New("no session started")
		}
		result, err := r.svc.EndTurn(ctx, state.sessionID, intArg(step.Args, "seat"))
		if err != nil {
			return err
		}
		r.logf("turn ended: player %d is up (turn %d)", result.NextPlayer, result.NextTurnNumber)
		return nil
	case "assert_position":
		return r.assertSeatField(ctx, state, step, "position")
	case "assert_health":
		return r.assertSeatField(ctx, state, step, "health")
	case "assert_gold":
		return r.assertSeatField(ctx, state, step, "gold")
	case "assert_current_player":
		return r.assertSession(ctx, state, func(current, _ int) error {
			want := intArg(step.Args, "seat")
			if current != want {
				return fmt.Errorf("current player = %d, want %d", current, want)
			}
			return nil
		})
	case "assert_turn":
		return r.assertSession(ctx, state, func(_, turn int) error {
			want := intArg(step.Args, "number")
			if turn != want {
				return fmt.Errorf("turn = %d, want %d", turn, want)
			}
			return nil
		})
	default:
		return fmt.Errorf("unknown step kind %q", step.Kind)
	}
}

func (r *Runner) startSession(ctx context.Context, state *scenarioState) error {
	if state.sessionID != "" {
		return errors.New("session already started")
	}
	name := state.sessionName
	if name == "" {
		name = "Scenario Session"
	}

	view, err := r.svc.CreateSession(ctx, service.CreateSessionInput{
		Name:      name,
		BoardSize: state.boardSize,
		Seats:     state.seats,
	})
	if err != nil {
		return err
	}
	state.sessionID = view.Session.ID

	if _, err := r.svc.StartSession(ctx, state.sessionID); err != nil {
		return err
	}
	r.logf("session started: %s (%d seats, board %d)",
		state.sessionID, len(view.Players), view.Session.BoardSize)
	return nil
}

func (r *Runner) assertSeatField(ctx context.Context, state *scenarioState, step Step, field string) error {
	if state.sessionID == "" {
		return errors.New("no session started")
	}
	seat := intArg(step.Args, "seat")
	want := intArg(step.Args, field)

	view, err := r.svc.GetSession(ctx, state.sessionID)
	if err != nil {
		return err
	}
	for _, p := range view.Players {
		if p.Number != seat {
			continue
		}
		var got int
		switch field {
		case "position":
			got = p.Position
		case "health":
			got = p.Health
		case "gold":
			got = p.Gold
		}
		if got != want {
			return fmt.Errorf("seat %d %s = %d, want %d", seat, field, got, want)
		}
		return nil
	}
	return fmt.Errorf("seat %d not found", seat)
}

func (r *Runner) assertSession(ctx context.Context, state *scenarioState, check func(current, turn int) error) error {
	if state.sessionID == "" {
		return errors.New("no session started")
	}
	view, err := r.svc.GetSession(ctx, state.sessionID)
	if err != nil {
		return err
	}
	return check(view.Session.CurrentPlayer, view.Session.CurrentTurn)
}

func (r *Runner) logf(format string, args ...any) {
	if !r.verbose || r.logger == nil {
		return
	}
	r.logger.Printf(format, args...)
}

func stringArg(args map[string]any, key string) string {
	if value, ok := args[key].(string); ok {
		return value
	}
	return ""
}

func intArg(args map[string]any, key string) int {
	switch value := args[key].(type) {
	case int:
		return value
	case float64:
		return int(value)
	default:
		return 0
	}
}

func boolArg(args map[string]any, key string) bool {
	if value, ok := args[key].(bool); ok {
		return value
	}
	return false
}
