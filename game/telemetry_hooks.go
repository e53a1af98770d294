package game

import (
	"log/slog"

	"github.com/pthm-cable/foodweb/model"
	"github.com/pthm-cable/foodweb/status"
	"github.com/pthm-cable/foodweb/systems"
	"github.com/pthm-cable/foodweb/telemetry"
)

// recordTick installs next as the current world and feeds the tick's
// report to every telemetry sink.
func (g *Game) recordTick(report systems.TickReport, next model.World) {
	g.collector.Record(report, next)
	g.world = next
	g.lastReport = report

	events := telemetry.EventsFromReport(report)
	prev := g.status
	g.status = status.Classify(next)
	if g.status != prev {
		slog.Info("status changed",
			"tick", next.Tick(),
			"from", prev.String(),
			"to", g.status.String(),
		)
		events = append(events, telemetry.NewStatusEvent(next.Tick(), g.status))
	}
	g.writeEvents(events...)
	g.logTick()

	g.flushTelemetry()
}

// writeEvents appends to the event log if one is open.
func (g *Game) writeEvents(events ...telemetry.Event) {
	if err := g.outputManager.WriteEvents(events...); err != nil {
		slog.Error("failed to write events", "error", err)
	}
}

// flushTelemetry checks if the stats window should be flushed and handles bookmarks.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.world.Tick()) {
		return
	}

	stats := g.collector.Flush(g.world)
	perfStats := g.perfCollector.Stats()

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if err := g.outputManager.WriteWindow(stats, perfStats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}

	bookmarks := g.bookmarkDetector.Check(stats)
	if g.logStats {
		for _, bm := range bookmarks {
			bm.LogBookmark()
		}
	}
	if err := g.outputManager.WriteBookmarks(bookmarks...); err != nil {
		slog.Error("failed to write bookmarks", "error", err)
	}
}
