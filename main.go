package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pthm-cable/foodweb/config"
	"github.com/pthm-cable/foodweb/game"
)

// randomSeed asks for a seed taken from the clock.
const randomSeed = -1

func resolveSeed(flagSeed int64, now func() time.Time) int64 {
	if flagSeed == randomSeed {
		return now().UnixNano()
	}
	return flagSeed
}

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	seed := flag.Int64("seed", 0, "RNG seed (default: world.seed from config, -1 = time-based)")
	maxTicks := flag.Int64("max-ticks", 0, "Stop after N ticks (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	logStats := flag.Bool("log-stats", false, "Output window stats via slog")
	interval := flag.Duration("interval", 0, "Time between ticks (default: session.tick_interval_ms, 0 = flat out)")
	mode := flag.String("mode", "", "Rule mode: normal or inverted (default: config)")
	rows := flag.Int("rows", 0, "Grid rows (0 = use config)")
	cols := flag.Int("cols", 0, "Grid columns (0 = use config)")
	eventLog := flag.Bool("event-log", false, "Write a compressed event log into the output directory")
	verbose := flag.Bool("v", false, "Debug logging")

	flag.Parse()

	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	// Set up slog (JSON to stdout for structured logging)
	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Command-line overrides
	if *mode != "" {
		cfg.Rules.Mode = *mode
	}
	if *rows > 0 {
		cfg.World.Rows = *rows
	}
	if *cols > 0 {
		cfg.World.Cols = *cols
	}
	if err := cfg.Recompute(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	rngSeed := cfg.World.Seed
	if set["seed"] {
		rngSeed = resolveSeed(*seed, time.Now)
		cfg.World.Seed = rngSeed
	}
	tickInterval := cfg.Derived.TickInterval
	if set["interval"] {
		tickInterval = *interval
	}

	g, err := game.NewGameWithOptions(game.Options{
		Seed:      rngSeed,
		Config:    cfg,
		LogStats:  *logStats,
		OutputDir: *outputDir,
		EventLog:  *eventLog,
		MaxTicks:  *maxTicks,
	})
	if err != nil {
		slog.Error("failed to start session", "error", err)
		os.Exit(1)
	}

	slog.Info("starting headless simulation",
		"seed", rngSeed,
		"rows", cfg.World.Rows,
		"cols", cfg.World.Cols,
		"mode", cfg.Derived.Mode.String(),
		"interval", tickInterval.String(),
		"max_ticks", g.MaxTicks(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	runErr := g.Run(ctx, tickInterval)
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		slog.Error("simulation stopped", "error", runErr)
	}

	g.LogState()
	if err := g.Unload(); err != nil {
		slog.Error("failed to close outputs", "error", err)
	}

	c := g.World().Census()
	fmt.Printf("tick %d: %s (grass %d, prey %d, predator %d) in %s\n",
		g.Tick(), g.Status(), c.Grass, c.Prey, c.Predator, time.Since(start).Round(time.Millisecond))
}
