package telemetry

import (
	"testing"
	"time"

	"github.com/pthm-cable/foodweb/presets"
	"github.com/pthm-cable/foodweb/rng"
	"github.com/pthm-cable/foodweb/rules"
	"github.com/pthm-cable/foodweb/systems"
)

func TestPerfCollector_BasicTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartTick()
		pc.StartPhase(systems.PhaseEating)
		time.Sleep(100 * time.Microsecond)
		pc.StartPhase(systems.PhaseMovement)
		time.Sleep(200 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()
	if stats.AvgTickDuration <= 0 {
		t.Error("expected positive average tick duration")
	}
	if len(stats.PhaseAvg) != 2 {
		t.Errorf("expected 2 phases, got %d", len(stats.PhaseAvg))
	}
	if stats.PhaseAvg[systems.PhaseMovement] < stats.PhaseAvg[systems.PhaseEating] {
		t.Error("expected movement to take longer than eating")
	}
	if stats.TicksPerSecond <= 0 {
		t.Error("expected positive ticks per second")
	}
}

func TestPerfCollector_Empty(t *testing.T) {
	stats := NewPerfCollector(0).Stats()
	if stats.AvgTickDuration != 0 || stats.PhaseAvg == nil || stats.PhasePct == nil {
		t.Errorf("unexpected empty stats: %+v", stats)
	}
}

func TestPerfCollector_WindowWraps(t *testing.T) {
	pc := NewPerfCollector(3)
	for i := 0; i < 7; i++ {
		pc.StartTick()
		pc.EndTick()
	}
	if pc.sampleCount != 3 {
		t.Errorf("sampleCount = %d, want 3", pc.sampleCount)
	}
}

func TestPerfCollector_AsPhaseTimer(t *testing.T) {
	w, err := presets.BuildInitialWorld(10, 10, presets.Medium, presets.Medium, presets.Medium, rng.New(1))
	if err != nil {
		t.Fatal(err)
	}
	pc := NewPerfCollector(4)
	p := systems.NewProcessor(rules.Normal())
	p.SetTimer(pc)

	src := rng.New(1)
	for range 3 {
		w, _ = p.Step(w, src)
	}

	stats := pc.Stats()
	for _, phase := range systems.Phases {
		if _, ok := stats.PhaseAvg[phase.ID]; !ok {
			t.Errorf("phase %s not timed", phase.ID)
		}
	}
	csv := stats.ToCSV(w.Tick())
	if csv.WindowEnd != 3 {
		t.Errorf("window end = %d", csv.WindowEnd)
	}
}
