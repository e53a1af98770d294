package game

import "log/slog"

// LogState logs the current world state.
func (g *Game) LogState() {
	slog.Info("world",
		"tick", g.world.Tick(),
		"seed", g.Seed(),
		"status", g.status.String(),
		"census", g.world.Census(),
		"last_id", g.world.LastID(),
		"running", g.running,
	)
}

// logTick logs a single tick's report at debug level.
func (g *Game) logTick() {
	slog.Debug("tick", "report", g.lastReport)
}
