package telemetry

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/foodweb/config"
	"github.com/pthm-cable/foodweb/model"
	"github.com/pthm-cable/foodweb/status"
)

func defaultConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	return cfg
}

func TestOutputManager_Disabled(t *testing.T) {
	om, err := NewOutputManager("", defaultConfig(t), true)
	if err != nil || om != nil {
		t.Fatalf("got %v, %v; want nil, nil", om, err)
	}
	if om.EventLogEnabled() || om.Dir() != "" {
		t.Error("disabled manager reports output")
	}
	if err := om.WriteWindow(WindowStats{}, PerfStats{}); err != nil {
		t.Error(err)
	}
	if err := om.WriteEvents(NewStatusEvent(0, status.Empty)); err != nil {
		t.Error(err)
	}
	if err := om.Close(NewHallOfFame(testHallConfig())); err != nil {
		t.Error(err)
	}
}

func TestOutputManager_WritesFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir, defaultConfig(t), true)
	if err != nil {
		t.Fatal(err)
	}
	if !om.EventLogEnabled() {
		t.Fatal("event log not opened")
	}

	for i := 1; i <= 3; i++ {
		if err := om.WriteWindow(WindowStats{WindowEndTick: int64(i * 50), Status: "balanced", PreyCount: i}, PerfStats{}); err != nil {
			t.Fatal(err)
		}
	}
	if err := om.WriteBookmarks(); err != nil {
		t.Fatal(err)
	}
	if err := om.WriteBookmarks(Bookmark{Type: BookmarkPreyCrash, Tick: 100, Description: "crash"}); err != nil {
		t.Fatal(err)
	}
	if err := om.WriteEvents(NewStatusEvent(0, status.Balanced), NewStatusEvent(150, status.Empty)); err != nil {
		t.Fatal(err)
	}
	hof := NewHallOfFame(testHallConfig())
	hof.Consider(2, &LifetimeStats{Kind: model.KindPrey, Children: 3, BirthTick: 0, EndTick: 40})
	if err := om.Close(hof); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(filepath.Join(dir, TelemetryFileName))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	var rows []WindowStats
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("read %d rows, want 3 (header written once)", len(rows))
	}
	if rows[2].WindowEndTick != 150 || rows[2].PreyCount != 3 || rows[2].Status != "balanced" {
		t.Errorf("last row = %+v", rows[2])
	}

	pf, err := os.Open(filepath.Join(dir, PerfFileName))
	if err != nil {
		t.Fatal(err)
	}
	defer pf.Close()
	var perf []PerfStatsCSV
	if err := gocsv.UnmarshalFile(pf, &perf); err != nil {
		t.Fatal(err)
	}
	if len(perf) != 3 {
		t.Errorf("read %d perf rows, want one per window", len(perf))
	}

	data, err := os.ReadFile(filepath.Join(dir, BookmarksFileName))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "type,tick,description") || !strings.Contains(string(data), "prey_crash,100,crash") {
		t.Errorf("bookmarks.csv = %q", data)
	}

	if _, err := config.Load(filepath.Join(dir, ConfigFileName)); err != nil {
		t.Errorf("config snapshot does not load: %v", err)
	}

	events, err := ReadEventLog(filepath.Join(dir, EventLogName))
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 2 || events[1].Tick != 150 {
		t.Errorf("events = %+v", events)
	}

	back, err := LoadHallOfFameFromFile(filepath.Join(dir, HallOfFameFileName), testHallConfig())
	if err != nil {
		t.Fatal(err)
	}
	if len(back.Entries(model.KindPrey)) != 1 {
		t.Errorf("hall of fame = %+v", back.Entries(model.KindPrey))
	}
}

func TestOutputManager_ClosedRejectsWrites(t *testing.T) {
	om, err := NewOutputManager(t.TempDir(), defaultConfig(t), false)
	if err != nil {
		t.Fatal(err)
	}
	if om.EventLogEnabled() {
		t.Error("event log opened without being asked for")
	}
	// Without an event log, events are dropped.
	if err := om.WriteEvents(NewStatusEvent(0, status.Empty)); err != nil {
		t.Error(err)
	}
	if err := om.Close(nil); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(om.Dir(), HallOfFameFileName)); !os.IsNotExist(err) {
		t.Errorf("hall of fame written without one: %v", err)
	}

	if err := om.WriteWindow(WindowStats{}, PerfStats{}); !errors.Is(err, ErrOutputClosed) {
		t.Errorf("WriteWindow after Close = %v", err)
	}
	if err := om.WriteBookmarks(Bookmark{}); !errors.Is(err, ErrOutputClosed) {
		t.Errorf("WriteBookmarks after Close = %v", err)
	}
	if err := om.WriteEvents(); !errors.Is(err, ErrOutputClosed) {
		t.Errorf("WriteEvents after Close = %v", err)
	}
	if err := om.Close(nil); err != nil {
		t.Errorf("second Close = %v", err)
	}
}
