// Package systems implements the tick processor: the seven ordered phases
// that turn one world snapshot into the next.
package systems

import (
	"github.com/pthm-cable/foodweb/model"
	"github.com/pthm-cable/foodweb/rng"
	"github.com/pthm-cable/foodweb/rules"
)

// PhaseTimer receives phase boundaries while a tick runs.
type PhaseTimer interface {
	StartTick()
	StartPhase(phase string)
	EndTick()
}

// Processor advances worlds under one compiled rule set.
type Processor struct {
	table rules.Table
	timer PhaseTimer
}

// NewProcessor compiles rs for repeated use.
func NewProcessor(rs rules.RuleSet) *Processor {
	return &Processor{table: rs.Compile()}
}

// SetTimer installs an optional phase timer. Pass nil to remove it.
func (p *Processor) SetTimer(t PhaseTimer) {
	p.timer = t
}

// Advance runs one tick of w under rs, drawing every random choice from src.
// The input world is not modified.
func Advance(w model.World, rs rules.RuleSet, src *rng.Source) model.World {
	next, _ := AdvanceReport(w, rs, src)
	return next
}

// AdvanceReport is Advance that also returns what happened during the tick.
func AdvanceReport(w model.World, rs rules.RuleSet, src *rng.Source) (model.World, TickReport) {
	return NewProcessor(rs).Step(w, src)
}

// tickState is the working set of one tick.
type tickState struct {
	arena    *arena
	table    *rules.Table
	src      *rng.Source
	report   *TickReport
	nextID   int
	incoming int64
}

// Step runs the seven phases in order and returns the successor world.
func (p *Processor) Step(w model.World, src *rng.Source) (model.World, TickReport) {
	report := TickReport{Tick: w.Tick()}
	ts := &tickState{
		arena:    newArena(w),
		table:    &p.table,
		src:      src,
		report:   &report,
		incoming: w.Tick(),
	}
	ts.nextID = max(w.LastID(), ts.arena.maxID()) + 1

	steps := [...]struct {
		id  string
		run func()
	}{
		{PhaseEating, ts.resolveEating},
		{PhaseDecay, ts.applyDecay},
		{PhaseDeath, ts.resolveDeaths},
		{PhaseMovement, ts.move},
		{PhaseReproduction, ts.reproduce},
		{PhaseRegrowth, ts.regrowGrass},
		{PhaseAging, ts.age},
	}

	if p.timer != nil {
		p.timer.StartTick()
	}
	for _, s := range steps {
		if p.timer != nil {
			p.timer.StartPhase(s.id)
		}
		s.run()
	}
	if p.timer != nil {
		p.timer.EndTick()
	}

	return w.Successor(ts.arena.export(), ts.nextID-1), report
}

// issueID returns the next unused entity ID.
func (ts *tickState) issueID() int {
	id := ts.nextID
	ts.nextID++
	return id
}
