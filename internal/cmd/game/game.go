// Package game parses game command flags and runs a self-playing session
// against a SQLite store.
package game

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"strconv"

	"github.com/louisbranch/ringfall/internal/game/domain/session"
	"github.com/louisbranch/ringfall/internal/game/narrative"
	"github.com/louisbranch/ringfall/internal/game/service"
	"github.com/louisbranch/ringfall/internal/game/storage/sqlite"
	entrypoint "github.com/louisbranch/ringfall/internal/platform/cmd"
	"github.com/louisbranch/ringfall/internal/telemetry"
)

// Config holds game command configuration.
type Config struct {
	DBPath      string `env:"RINGFALL_GAME_DB"         envDefault:"ringfall.db"`
	SessionName string `env:"RINGFALL_GAME_SESSION"    envDefault:"Ringfall Session"`
	Players     int    `env:"RINGFALL_GAME_PLAYERS"    envDefault:"4"`
	BoardSize   int    `env:"RINGFALL_GAME_BOARD_SIZE" envDefault:"100"`
	Turns       int    `env:"RINGFALL_GAME_TURNS"      envDefault:"20"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "path to the SQLite database")
	fs.StringVar(&cfg.SessionName, "session", cfg.SessionName, "name of the session to play")
	fs.IntVar(&cfg.Players, "players", cfg.Players, "number of AI seats")
	fs.IntVar(&cfg.BoardSize, "board-size", cfg.BoardSize, "number of tiles on the ring")
	fs.IntVar(&cfg.Turns, "turns", cfg.Turns, "number of full roster cycles to play")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run creates a session with AI seats and plays it to the configured turn
// count, narrating every operation.
func Run(ctx context.Context, cfg Config) error {
	if cfg.Players < 2 {
		return errors.New("at least 2 players are required")
	}
	if cfg.Turns < 1 {
		return errors.New("at least 1 turn is required")
	}

	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceGame, func(ctx context.Context) error {
		store, err := sqlite.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer func() {
			if err := store.Close(); err != nil {
				log.Printf("close store: %v", err)
			}
		}()

		svc := service.New(store).
			WithNarrator(narrative.LogNarrator{}).
			WithEmitter(telemetry.NewEmitter(store))

		return play(ctx, svc, cfg)
	})
}

func play(ctx context.Context, svc *service.Service, cfg Config) error {
	seats := make([]service.SeatInput, 0, cfg.Players)
	for i := 0; i < cfg.Players; i++ {
		seats = append(seats, service.SeatInput{
			Name: "Player " + strconv.Itoa(i+1),
			AI:   true,
		})
	}

	view, err := svc.CreateSession(ctx, service.CreateSessionInput{
		Name:      cfg.SessionName,
		BoardSize: cfg.BoardSize,
		Seats:     seats,
	})
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	sessionID := view.Session.ID
	log.Printf("session %s created: %d seats on a %d-tile ring",
		sessionID, len(view.Players), view.Session.BoardSize)

	if _, err := svc.StartSession(ctx, sessionID); err != nil {
		return fmt.Errorf("start session: %w", err)
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		current, err := svc.GetSession(ctx, sessionID)
		if err != nil {
			return err
		}
		if current.Session.CurrentTurn > cfg.Turns {
			break
		}

		seat := current.Session.CurrentPlayer
		if _, err := svc.RollMovement(ctx, sessionID, seat); err != nil {
			return fmt.Errorf("roll movement for seat %d: %w", seat, err)
		}
		if _, err := svc.RollAction(ctx, sessionID, seat); err != nil {
			return fmt.Errorf("roll action for seat %d: %w", seat, err)
		}
		if _, err := svc.EndTurn(ctx, sessionID, seat); err != nil {
			return fmt.Errorf("end turn for seat %d: %w", seat, err)
		}
	}

	ended, err := svc.EndSession(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("end session: %w", err)
	}
	logStandings(ctx, svc, ended)
	return nil
}

func logStandings(ctx context.Context, svc *service.Service, ended session.Session) {
	view, err := svc.GetSession(ctx, ended.ID)
	if err != nil {
		log.Printf("load standings: %v", err)
		return
	}
	log.Printf("session %s ended after %d turns", ended.ID, ended.CurrentTurn-1)
	for _, p := range view.Players {
		log.Printf("  seat %d %s: position %d, health %d, gold %d",
			p.Number, p.Name, p.Position, p.Health, p.Gold)
	}
}
