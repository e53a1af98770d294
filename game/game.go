// Package game drives a simulation session: it owns the current world, the
// session's random source, and the telemetry wired around each tick.
package game

import (
	"context"
	"fmt"
	"time"

	"github.com/pthm-cable/foodweb/config"
	"github.com/pthm-cable/foodweb/model"
	"github.com/pthm-cable/foodweb/rng"
	"github.com/pthm-cable/foodweb/rules"
	"github.com/pthm-cable/foodweb/status"
	"github.com/pthm-cable/foodweb/systems"
	"github.com/pthm-cable/foodweb/telemetry"
)

// Options configures a game instance.
type Options struct {
	Seed          int64
	Config        *config.Config // nil uses config.Cfg()
	LogStats      bool           // log window stats and bookmarks via slog
	StatsWindow   int            // ticks per telemetry window (0 = use config)
	OutputDir     string         // CSV/config output directory (empty = disabled)
	EventLog      bool           // write events.jsonl.zst into OutputDir
	MaxTicks      int64          // stop after N ticks (0 = use config)
	StatsCallback func(telemetry.WindowStats)
}

// Game holds one session. It is not safe for concurrent use.
type Game struct {
	cfg   *config.Config
	rules rules.RuleSet
	proc  *systems.Processor
	src   *rng.Source

	world      model.World
	status     status.Status
	running    bool
	lastReport systems.TickReport

	maxTicks       int64
	stopOnCollapse bool
	statsWindow    int

	// Telemetry
	logStats         bool
	statsCallback    func(telemetry.WindowStats)
	collector        *telemetry.Collector
	perfCollector    *telemetry.PerfCollector
	bookmarkDetector *telemetry.BookmarkDetector
	hallOfFame       *telemetry.HallOfFame
	outputManager    *telemetry.OutputManager
}

// NewGameWithOptions builds the initial world for opts.Seed and sets up
// telemetry. The session starts paused.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	g := &Game{
		cfg:            cfg,
		rules:          cfg.RuleSet(),
		maxTicks:       cfg.Session.MaxTicks,
		stopOnCollapse: cfg.Session.StopOnCollapse,
		statsWindow:    cfg.Telemetry.StatsWindow,
		logStats:       opts.LogStats,
		statsCallback:  opts.StatsCallback,
		perfCollector:  telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
	}
	if opts.MaxTicks > 0 {
		g.maxTicks = opts.MaxTicks
	}
	if opts.StatsWindow > 0 {
		g.statsWindow = opts.StatsWindow
	}

	g.proc = systems.NewProcessor(g.rules)
	g.proc.SetTimer(g.perfCollector)

	if err := g.Reset(opts.Seed); err != nil {
		return nil, err
	}

	if err := g.openOutputs(opts.OutputDir, opts.EventLog || cfg.Telemetry.EventLog); err != nil {
		return nil, err
	}
	return g, nil
}

// Play starts (or resumes) the session.
func (g *Game) Play() { g.running = true }

// Pause halts the session without discarding state.
func (g *Game) Pause() { g.running = false }

// Running reports whether the session is playing.
func (g *Game) Running() bool { return g.running }

// Step advances exactly one tick regardless of the pause state.
func (g *Game) Step() systems.TickReport {
	next, report := g.proc.Step(g.world, g.src)
	g.recordTick(report, next)
	return report
}

// UpdateHeadless advances one tick if the session is playing, and pauses
// it once Done reports true.
func (g *Game) UpdateHeadless() {
	if !g.running {
		return
	}
	g.Step()
	if g.Done() {
		g.Pause()
	}
}

// Done reports whether the session reached its tick limit or, with
// stop-on-collapse enabled, an empty world.
func (g *Game) Done() bool {
	if g.maxTicks > 0 && g.world.Tick() >= g.maxTicks {
		return true
	}
	return g.stopOnCollapse && g.status == status.Empty
}

// Run plays the session, advancing once per interval until Done or ctx is
// cancelled. A non-positive interval runs ticks back to back. Ticks are
// never interrupted part way.
func (g *Game) Run(ctx context.Context, interval time.Duration) error {
	g.Play()
	defer g.Pause()

	if interval <= 0 {
		for !g.Done() {
			if err := ctx.Err(); err != nil {
				return err
			}
			g.UpdateHeadless()
		}
		return nil
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for !g.Done() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			g.UpdateHeadless()
		}
	}
	return nil
}

// World returns the current snapshot.
func (g *Game) World() model.World { return g.world }

// Status returns the classification of the current snapshot.
func (g *Game) Status() status.Status { return g.status }

// Tick returns the current world tick.
func (g *Game) Tick() int64 { return g.world.Tick() }

// Seed returns the seed the current session was built from.
func (g *Game) Seed() int64 { return g.src.Seed() }

// MaxTicks returns the tick limit in effect; 0 means unlimited.
func (g *Game) MaxTicks() int64 { return g.maxTicks }

// Rules returns the session's rule set.
func (g *Game) Rules() rules.RuleSet { return g.rules }

// PreyCount returns the number of live prey.
func (g *Game) PreyCount() int { return g.world.Census().Prey }

// PredCount returns the number of live predators.
func (g *Game) PredCount() int { return g.world.Census().Predator }

// LastReport returns what happened during the most recent tick.
func (g *Game) LastReport() systems.TickReport { return g.lastReport }

// HallOfFame returns the session's hall of fame.
func (g *Game) HallOfFame() *telemetry.HallOfFame { return g.hallOfFame }

// Unload writes the hall of fame and closes all output files.
func (g *Game) Unload() error {
	err := g.outputManager.Close(g.hallOfFame)
	g.outputManager = nil
	if err != nil {
		return fmt.Errorf("closing outputs: %w", err)
	}
	return nil
}
