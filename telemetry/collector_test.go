package telemetry

import (
	"testing"

	"github.com/pthm-cable/foodweb/model"
	"github.com/pthm-cable/foodweb/presets"
	"github.com/pthm-cable/foodweb/rng"
	"github.com/pthm-cable/foodweb/rules"
	"github.com/pthm-cable/foodweb/systems"
)

func TestCollector_CountsMatchReports(t *testing.T) {
	src := rng.New(9)
	w, err := presets.BuildInitialWorld(15, 15, presets.High, presets.High, presets.High, src)
	if err != nil {
		t.Fatal(err)
	}
	rs := rules.Normal()
	c := NewCollector(10, w, nil)

	var births, eaten, regrown int
	for range 10 {
		next, r := systems.AdvanceReport(w, rs, src)
		c.Record(r, next)
		births += len(r.Births)
		eaten += len(r.Kills)
		regrown += r.Regrown
		w = next
	}

	if !c.ShouldFlush(w.Tick()) {
		t.Fatal("expected window to be due after 10 ticks")
	}
	stats := c.Flush(w)

	if got := stats.PreyBirths + stats.PredBirths; got != births {
		t.Errorf("births = %d, want %d", got, births)
	}
	if got := stats.GrassEaten + stats.PreyEaten + stats.PredEaten; got != eaten {
		t.Errorf("eaten = %d, want %d", got, eaten)
	}
	if stats.GrassRegrown != regrown {
		t.Errorf("regrown = %d, want %d", stats.GrassRegrown, regrown)
	}
	census := w.Census()
	if stats.GrassCount != census.Grass || stats.PreyCount != census.Prey || stats.PredCount != census.Predator {
		t.Errorf("counts %d/%d/%d, census %+v", stats.GrassCount, stats.PreyCount, stats.PredCount, census)
	}
	if stats.WindowStartTick != 0 || stats.WindowEndTick != 10 {
		t.Errorf("window [%d, %d]", stats.WindowStartTick, stats.WindowEndTick)
	}
	if stats.Status == "" {
		t.Error("status not set")
	}
	if c.Lifetimes().Count() != census.Prey+census.Predator {
		t.Errorf("tracking %d animals, world has %d", c.Lifetimes().Count(), census.Prey+census.Predator)
	}

	// Counters reset for the next window.
	next := c.Flush(w)
	if next.PreyBirths+next.PredBirths+next.GrassRegrown+next.Moves != 0 {
		t.Errorf("counters not reset: %+v", next)
	}
	if c.ShouldFlush(w.Tick()) {
		t.Error("fresh window reported due")
	}
}

func TestCollector_LifespanAndHallOfFame(t *testing.T) {
	w := model.MustNew(1, 3, []model.Entity{
		{ID: 1, Kind: model.KindPredator, Pos: model.Position{Row: 0, Col: 0}, Energy: 20, Age: 10},
		{ID: 2, Kind: model.KindPrey, Pos: model.Position{Row: 0, Col: 1}, Energy: 10},
	})
	w = w.Successor(w.Entities(), w.LastID())

	hof := NewHallOfFame(testHallConfig())
	c := NewCollector(5, w, hof)
	next, r := systems.AdvanceReport(w, rules.Normal(), rng.New(1))
	c.Record(r, next)

	if len(r.Kills) != 1 || len(r.Births) != 1 {
		t.Fatalf("setup: kills %d births %d", len(r.Kills), len(r.Births))
	}
	if s := c.Lifetimes().Get(1); s == nil || s.Kills != 1 || s.Children != 1 {
		t.Errorf("predator stats = %+v", s)
	}
	if c.Lifetimes().Get(r.Births[0].ChildID) == nil {
		t.Error("newborn not tracked")
	}
	stats := c.Flush(next)
	if stats.PreyEaten != 1 || stats.PreyLifespanMean != 1 {
		t.Errorf("prey eaten %d lifespan %v", stats.PreyEaten, stats.PreyLifespanMean)
	}
}
