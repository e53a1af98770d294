package telemetry

import (
	"testing"

	"github.com/pthm-cable/foodweb/config"
)

func testBookmarks(t *testing.T) config.BookmarksConfig {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	return cfg.Bookmarks
}

func hasBookmark(bms []Bookmark, typ BookmarkType) bool {
	for _, bm := range bms {
		if bm.Type == typ {
			return true
		}
	}
	return false
}

func TestBookmarkDetector_StatusChange(t *testing.T) {
	bd := NewBookmarkDetector(10, testBookmarks(t))

	if bms := bd.Check(WindowStats{WindowEndTick: 50, Status: "balanced", PreyCount: 20, PredCount: 5}); hasBookmark(bms, BookmarkStatusChange) {
		t.Error("first window should not report a change")
	}
	if bms := bd.Check(WindowStats{WindowEndTick: 100, Status: "balanced", PreyCount: 20, PredCount: 5}); hasBookmark(bms, BookmarkStatusChange) {
		t.Error("unchanged status reported")
	}
	bms := bd.Check(WindowStats{WindowEndTick: 150, Status: "predator_extinction", PreyCount: 20})
	if !hasBookmark(bms, BookmarkStatusChange) {
		t.Fatal("expected status change bookmark")
	}
}

func TestBookmarkDetector_PreyCrash(t *testing.T) {
	bd := NewBookmarkDetector(10, testBookmarks(t))

	for i, prey := range []int{40, 60, 80} {
		bd.Check(WindowStats{WindowEndTick: int64(i * 50), PreyCount: prey, PredCount: 5})
	}
	bms := bd.Check(WindowStats{WindowEndTick: 200, PreyCount: 30, PredCount: 5})
	if !hasBookmark(bms, BookmarkPreyCrash) {
		t.Fatal("expected prey crash bookmark after 80 -> 30")
	}

	// Peak resets, so the same level does not fire again.
	bms = bd.Check(WindowStats{WindowEndTick: 250, PreyCount: 30, PredCount: 5})
	if hasBookmark(bms, BookmarkPreyCrash) {
		t.Error("crash reported twice")
	}
}

func TestBookmarkDetector_PreyCrashNeedsPeak(t *testing.T) {
	bd := NewBookmarkDetector(10, testBookmarks(t))
	bd.Check(WindowStats{PreyCount: 6})
	if bms := bd.Check(WindowStats{PreyCount: 1}); hasBookmark(bms, BookmarkPreyCrash) {
		t.Error("crash reported below min_peak")
	}
}

func TestBookmarkDetector_PredatorRecovery(t *testing.T) {
	bd := NewBookmarkDetector(10, testBookmarks(t))

	for i, pred := range []int{6, 2, 3} {
		bd.Check(WindowStats{WindowEndTick: int64(i * 50), PreyCount: 30, PredCount: pred})
	}
	bms := bd.Check(WindowStats{WindowEndTick: 200, PreyCount: 30, PredCount: 5})
	if !hasBookmark(bms, BookmarkPredatorRecovery) {
		t.Fatal("expected predator recovery from 2 to 5")
	}
}

func TestBookmarkDetector_StableEcosystem(t *testing.T) {
	bd := NewBookmarkDetector(10, testBookmarks(t))

	var fired int
	for i := 0; i < 8; i++ {
		bms := bd.Check(WindowStats{WindowEndTick: int64(i * 50), PreyCount: 40 + i%2, PredCount: 8})
		if hasBookmark(bms, BookmarkStableEcosystem) {
			fired++
		}
	}
	if fired != 1 {
		t.Errorf("stable ecosystem fired %d times, want 1", fired)
	}
}

func TestBookmarkDetector_UnstableNeverStable(t *testing.T) {
	bd := NewBookmarkDetector(10, testBookmarks(t))
	for i := 0; i < 8; i++ {
		prey := 10
		if i%2 == 0 {
			prey = 60
		}
		if bms := bd.Check(WindowStats{PreyCount: prey, PredCount: 8}); hasBookmark(bms, BookmarkStableEcosystem) {
			t.Fatal("oscillating populations reported stable")
		}
	}
}
