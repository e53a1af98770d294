package game

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/foodweb/presets"
	"github.com/pthm-cable/foodweb/rng"
	"github.com/pthm-cable/foodweb/status"
	"github.com/pthm-cable/foodweb/systems"
	"github.com/pthm-cable/foodweb/telemetry"
)

// Reset discards the current session and builds a fresh world from seed.
// The session is left paused. Window statistics, bookmarks and the hall of
// fame start over; output files stay open.
func (g *Game) Reset(seed int64) error {
	src := rng.New(seed)
	d := g.cfg.Densities()
	w, err := presets.BuildInitialWorld(g.cfg.World.Rows, g.cfg.World.Cols, d.Grass, d.Prey, d.Predator, src)
	if err != nil {
		return fmt.Errorf("building initial world: %w", err)
	}

	g.src = src
	g.world = w
	g.status = status.Classify(w)
	g.running = false
	g.lastReport = systems.TickReport{}

	g.hallOfFame = telemetry.NewHallOfFame(g.cfg.HallOfFame)
	g.collector = telemetry.NewCollector(g.statsWindow, w, g.hallOfFame)
	g.bookmarkDetector = telemetry.NewBookmarkDetector(g.cfg.Telemetry.BookmarkHistorySize, g.cfg.Bookmarks)

	slog.Debug("session reset", "seed", seed, "status", g.status.String(), "census", w.Census())
	g.writeEvents(telemetry.NewStatusEvent(w.Tick(), g.status))
	return nil
}

// openOutputs hands the output directory to an OutputManager and records
// the opening status in the event log. With dir empty nothing is written.
func (g *Game) openOutputs(dir string, eventLog bool) error {
	om, err := telemetry.NewOutputManager(dir, g.cfg, eventLog)
	if err != nil {
		return err
	}
	switch {
	case om != nil:
		slog.Debug("writing outputs", "dir", om.Dir(), "event_log", om.EventLogEnabled())
	case eventLog:
		slog.Warn("event log requested without an output directory; skipping")
	}
	g.outputManager = om
	g.writeEvents(telemetry.NewStatusEvent(g.world.Tick(), g.status))
	return nil
}
