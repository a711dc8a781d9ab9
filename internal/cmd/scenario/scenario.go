// Package scenario parses scenario command flags and runs Lua scripts
// against an in-process game service.
package scenario

import (
	"context"
	"errors"
	"flag"
	"io"
	"log"
	"time"

	"github.com/louisbranch/ringfall/internal/game/narrative"
	"github.com/louisbranch/ringfall/internal/game/service"
	"github.com/louisbranch/ringfall/internal/game/storage/sqlite"
	entrypoint "github.com/louisbranch/ringfall/internal/platform/cmd"
	"github.com/louisbranch/ringfall/internal/telemetry"
	"github.com/louisbranch/ringfall/internal/tools/scenario"
)

// Config holds scenario command configuration.
type Config struct {
	DBPath   string        `env:"RINGFALL_SCENARIO_DB"      envDefault:"scenario.db"`
	Scenario string        `env:"RINGFALL_SCENARIO_FILE"`
	Verbose  bool          `env:"RINGFALL_SCENARIO_VERBOSE"`
	Timeout  time.Duration `env:"RINGFALL_SCENARIO_TIMEOUT" envDefault:"10s"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "path to the SQLite database")
	fs.StringVar(&cfg.Scenario, "scenario", cfg.Scenario, "path to scenario lua file")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "enable verbose logging")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "timeout per step")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run executes the scenario command.
func Run(ctx context.Context, cfg Config, out io.Writer, errOut io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}
	if cfg.Scenario == "" {
		return errors.New("scenario path is required")
	}

	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceScenario, func(ctx context.Context) error {
		store, err := sqlite.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		logger := log.New(errOut, "", 0)
		svc := service.New(store).
			WithNarrator(narrative.LogNarrator{Logger: log.New(out, "", 0)}).
			WithEmitter(telemetry.NewEmitter(store))

		runner, err := scenario.NewRunner(svc, scenario.Config{
			Timeout: cfg.Timeout,
			Verbose: cfg.Verbose,
			Logger:  logger,
		})
		if err != nil {
			return err
		}
		return runner.RunFile(ctx, cfg.Scenario)
	})
}
