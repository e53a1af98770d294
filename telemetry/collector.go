package telemetry

import (
	"github.com/pthm-cable/foodweb/model"
	"github.com/pthm-cable/foodweb/status"
	"github.com/pthm-cable/foodweb/systems"
)

// Collector accumulates tick reports within windows and produces WindowStats.
type Collector struct {
	windowTicks int64

	// Current window tracking
	windowStart int64

	lifetimes *LifetimeTracker
	hof       *HallOfFame

	// Event counters for current window
	births    [len(model.Kinds)]int
	starved   [len(model.Kinds)]int
	oldAge    [len(model.Kinds)]int
	eaten     [len(model.Kinds)]int
	regrown   int
	moves     int
	lifespans [len(model.Kinds)][]float64
}

// NewCollector creates a stats collector for windows of windowTicks ticks,
// starting from the founders of w. hof may be nil.
func NewCollector(windowTicks int, w model.World, hof *HallOfFame) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	c := &Collector{
		windowTicks: int64(windowTicks),
		windowStart: w.Tick(),
		lifetimes:   NewLifetimeTracker(),
		hof:         hof,
	}
	for _, e := range w.All {
		c.lifetimes.Register(e, w.Tick(), 0)
	}
	return c
}

// Record folds one tick's report into the current window. next is the
// world the tick produced.
func (c *Collector) Record(r systems.TickReport, next model.World) {
	end := r.Tick + 1

	for _, k := range r.Kills {
		c.eaten[k.Victim]++
		c.lifetimes.RecordKill(k.EaterID)
		c.retire(k.VictimID, end)
	}
	for _, d := range r.Deaths {
		switch d.Cause {
		case systems.CauseOldAge:
			c.oldAge[d.Kind]++
		default:
			c.starved[d.Kind]++
		}
		c.retire(d.ID, end)
	}
	for _, b := range r.Births {
		c.births[b.Kind]++
		c.lifetimes.RecordChild(b.ParentID)
	}
	if len(r.Births) > 0 {
		born := make(map[int]int, len(r.Births))
		for _, b := range r.Births {
			born[b.ChildID] = b.ParentID
		}
		for _, e := range next.All {
			if parent, ok := born[e.ID]; ok {
				c.lifetimes.Register(e, r.Tick, parent)
			}
		}
	}
	for _, e := range next.All {
		c.lifetimes.UpdateEnergy(e.ID, e.Energy)
	}
	c.regrown += r.Regrown
	c.moves += r.Moves
}

func (c *Collector) retire(id int, tick int64) {
	s := c.lifetimes.Remove(id, tick)
	if s == nil {
		return
	}
	c.lifespans[s.Kind] = append(c.lifespans[s.Kind], float64(s.Lifespan()))
	c.hof.Consider(id, s)
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int64) bool {
	return currentTick-c.windowStart >= c.windowTicks
}

// Flush produces a WindowStats for the window ending at w and resets
// counters for the next window.
func (c *Collector) Flush(w model.World) WindowStats {
	var prey, pred []float64
	for _, e := range w.All {
		switch e.Kind {
		case model.KindPrey:
			prey = append(prey, float64(e.Energy))
		case model.KindPredator:
			pred = append(pred, float64(e.Energy))
		}
	}
	preyMean, preyP10, preyP50, preyP90 := ComputeEnergyStats(prey)
	predMean, predP10, predP50, predP90 := ComputeEnergyStats(pred)

	census := w.Census()
	stats := WindowStats{
		WindowStartTick: c.windowStart,
		WindowEndTick:   w.Tick(),
		Status:          status.FromCensus(census).String(),

		GrassCount: census.Grass,
		PreyCount:  census.Prey,
		PredCount:  census.Predator,

		PreyBirths:   c.births[model.KindPrey],
		PredBirths:   c.births[model.KindPredator],
		PreyStarved:  c.starved[model.KindPrey],
		PredStarved:  c.starved[model.KindPredator],
		PreyOldAge:   c.oldAge[model.KindPrey],
		PredOldAge:   c.oldAge[model.KindPredator],
		GrassEaten:   c.eaten[model.KindGrass],
		PreyEaten:    c.eaten[model.KindPrey],
		PredEaten:    c.eaten[model.KindPredator],
		GrassRegrown: c.regrown,
		Moves:        c.moves,

		PreyEnergyMean: preyMean,
		PreyEnergyP10:  preyP10,
		PreyEnergyP50:  preyP50,
		PreyEnergyP90:  preyP90,

		PredEnergyMean: predMean,
		PredEnergyP10:  predP10,
		PredEnergyP50:  predP50,
		PredEnergyP90:  predP90,

		PreyLifespanMean: meanOf(c.lifespans[model.KindPrey]),
		PredLifespanMean: meanOf(c.lifespans[model.KindPredator]),
	}

	// Reset for next window
	c.windowStart = w.Tick()
	c.births = [len(model.Kinds)]int{}
	c.starved = [len(model.Kinds)]int{}
	c.oldAge = [len(model.Kinds)]int{}
	c.eaten = [len(model.Kinds)]int{}
	c.regrown = 0
	c.moves = 0
	for i := range c.lifespans {
		c.lifespans[i] = c.lifespans[i][:0]
	}

	return stats
}

// Lifetimes exposes the per-animal tracker.
func (c *Collector) Lifetimes() *LifetimeTracker {
	return c.lifetimes
}
