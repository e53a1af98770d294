package systems

import (
	"log/slog"

	"github.com/pthm-cable/foodweb/model"
)

// DeathCause says why an entity left the world outside of being eaten.
type DeathCause uint8

const (
	CauseStarvation DeathCause = iota
	CauseOldAge
)

// String returns the lowercase cause name.
func (c DeathCause) String() string {
	if c == CauseOldAge {
		return "old_age"
	}
	return "starvation"
}

// Kill records one eater consuming one victim.
type Kill struct {
	EaterID  int
	VictimID int
	Eater    model.Kind
	Victim   model.Kind
	Gain     int
}

// Death records a removal in the death phase.
type Death struct {
	ID     int
	Kind   model.Kind
	Cause  DeathCause
	Energy int
	Age    int
}

// Birth records an offspring placed in the reproduction phase.
type Birth struct {
	ParentID int
	ChildID  int
	Kind     model.Kind
	Pos      model.Position
}

// TickReport lists what happened during one tick.
type TickReport struct {
	Tick    int64 // incoming tick counter
	Kills   []Kill
	Deaths  []Death
	Births  []Birth
	Moves   int
	Regrown int
}

// KillsOf counts victims of kind k.
func (r *TickReport) KillsOf(k model.Kind) int {
	n := 0
	for _, kill := range r.Kills {
		if kill.Victim == k {
			n++
		}
	}
	return n
}

// BirthsOf counts offspring of kind k.
func (r *TickReport) BirthsOf(k model.Kind) int {
	n := 0
	for _, b := range r.Births {
		if b.Kind == k {
			n++
		}
	}
	return n
}

// DeathsOf counts death-phase removals of kind k.
func (r *TickReport) DeathsOf(k model.Kind) int {
	n := 0
	for _, d := range r.Deaths {
		if d.Kind == k {
			n++
		}
	}
	return n
}

// LogValue implements slog.LogValuer.
func (r TickReport) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("tick", r.Tick),
		slog.Int("kills", len(r.Kills)),
		slog.Int("deaths", len(r.Deaths)),
		slog.Int("births", len(r.Births)),
		slog.Int("moves", r.Moves),
		slog.Int("regrown", r.Regrown),
	)
}
