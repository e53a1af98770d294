package telemetry

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/foodweb/config"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkStatusChange     BookmarkType = "status_change"
	BookmarkPredatorRecovery BookmarkType = "predator_recovery"
	BookmarkPreyCrash        BookmarkType = "prey_crash"
	BookmarkStableEcosystem  BookmarkType = "stable_ecosystem"
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Tick        int64        `csv:"tick"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// BookmarkDetector detects interesting moments in the simulation.
type BookmarkDetector struct {
	cfg config.BookmarksConfig

	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	// State tracking
	lastStatus         string
	recentPredMin      int  // minimum predator count since the last recovery
	predMinSeen        bool // recentPredMin holds a sample
	recentPreyPeak     int  // peak prey count since the last crash
	stableWindowsCount int  // consecutive windows with stable populations
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int, cfg config.BookmarksConfig) *BookmarkDetector {
	if cfg.StableEcosystem.StableWindows < 1 {
		cfg.StableEcosystem.StableWindows = 1
	}
	if historySize < cfg.StableEcosystem.StableWindows {
		historySize = cfg.StableEcosystem.StableWindows
	}
	return &BookmarkDetector{
		cfg:         cfg,
		history:     make([]WindowStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	if b := bd.checkStatusChange(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkPredatorRecovery(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkPreyCrash(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	bd.addToHistory(stats)

	// Checked after the window joins the history it is judged on.
	if b := bd.checkStableEcosystem(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	if !bd.predMinSeen || stats.PredCount < bd.recentPredMin {
		bd.recentPredMin = stats.PredCount
		bd.predMinSeen = true
	}
	if stats.PreyCount > bd.recentPreyPeak {
		bd.recentPreyPeak = stats.PreyCount
	}

	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

// recent returns up to n of the latest windows, oldest first.
func (bd *BookmarkDetector) recent(n int) []WindowStats {
	size := bd.historyIdx
	if bd.historyFull {
		size = bd.historySize
	}
	n = min(n, size)
	out := make([]WindowStats, 0, n)
	for i := n; i > 0; i-- {
		out = append(out, bd.history[(bd.historyIdx-i+bd.historySize)%bd.historySize])
	}
	return out
}

func (bd *BookmarkDetector) checkStatusChange(stats WindowStats) *Bookmark {
	prev := bd.lastStatus
	bd.lastStatus = stats.Status
	if prev == "" || prev == stats.Status {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkStatusChange,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Status changed from %s to %s", prev, stats.Status),
	}
}

func (bd *BookmarkDetector) checkPredatorRecovery(stats WindowStats) *Bookmark {
	cfg := bd.cfg.PredatorRecovery
	if !bd.predMinSeen || bd.recentPredMin == 0 {
		return nil
	}

	threshold := int(float64(bd.recentPredMin) * cfg.Multiplier)
	if stats.PredCount >= threshold && stats.PredCount >= cfg.MinPredators && stats.PredCount > bd.recentPredMin {
		// Reset the minimum after triggering
		oldMin := bd.recentPredMin
		bd.recentPredMin = stats.PredCount

		return &Bookmark{
			Type:        BookmarkPredatorRecovery,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Predator population recovered from %d to %d", oldMin, stats.PredCount),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkPreyCrash(stats WindowStats) *Bookmark {
	cfg := bd.cfg.PreyCrash
	if bd.recentPreyPeak == 0 || bd.recentPreyPeak < cfg.MinPeak {
		return nil
	}

	dropPercent := 1.0 - float64(stats.PreyCount)/float64(bd.recentPreyPeak)
	if dropPercent > cfg.DropPercent {
		// Reset peak after crash
		oldPeak := bd.recentPreyPeak
		bd.recentPreyPeak = stats.PreyCount

		return &Bookmark{
			Type:        BookmarkPreyCrash,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Prey crashed %.0f%% from peak %d to %d", dropPercent*100, oldPeak, stats.PreyCount),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkStableEcosystem(stats WindowStats) *Bookmark {
	cfg := bd.cfg.StableEcosystem
	if stats.PreyCount == 0 || stats.PredCount == 0 {
		bd.stableWindowsCount = 0
		return nil
	}

	window := bd.recent(cfg.StableWindows)
	if len(window) < cfg.StableWindows {
		return nil
	}

	prey := make([]float64, len(window))
	pred := make([]float64, len(window))
	for i, h := range window {
		prey[i] = float64(h.PreyCount)
		pred[i] = float64(h.PredCount)
	}

	if CoefficientOfVariation(prey) < cfg.CVThreshold && CoefficientOfVariation(pred) < cfg.CVThreshold {
		bd.stableWindowsCount++
	} else {
		bd.stableWindowsCount = 0
	}

	if bd.stableWindowsCount == 1 { // trigger once per stable stretch
		return &Bookmark{
			Type:        BookmarkStableEcosystem,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Stable ecosystem with %d prey, %d predators over %d windows", stats.PreyCount, stats.PredCount, cfg.StableWindows),
		}
	}
	return nil
}
