// Package status classifies the ecological health of a world snapshot.
package status

import (
	"fmt"

	"github.com/pthm-cable/foodweb/model"
)

// Status labels a world. It carries no state; it is recomputed from every
// snapshot.
type Status uint8

const (
	Balanced Status = iota
	PreyStarvation
	PredatorStarvation
	PreyExtinction
	PredatorExtinction
	Empty
)

// All lists every status in declaration order.
var All = [...]Status{Balanced, PreyStarvation, PredatorStarvation, PreyExtinction, PredatorExtinction, Empty}

// String returns the snake_case status name.
func (s Status) String() string {
	switch s {
	case Balanced:
		return "balanced"
	case PreyStarvation:
		return "prey_starvation"
	case PredatorStarvation:
		return "predator_starvation"
	case PreyExtinction:
		return "prey_extinction"
	case PredatorExtinction:
		return "predator_extinction"
	case Empty:
		return "empty"
	}
	return fmt.Sprintf("status(%d)", uint8(s))
}

// Terminal reports whether the status means a side has died out.
func (s Status) Terminal() bool {
	return s == Empty || s == PreyExtinction || s == PredatorExtinction
}

// Classify counts the world's entities and labels it.
func Classify(w model.World) Status {
	return FromCensus(w.Census())
}

// FromCensus applies the classification rules in priority order. Starvation
// means fewer than half as many food units as eaters: grass for prey, prey
// for predators.
func FromCensus(c model.Census) Status {
	switch {
	case c.Prey == 0 && c.Predator == 0:
		return Empty
	case c.Prey == 0:
		return PreyExtinction
	case c.Predator == 0:
		return PredatorExtinction
	case 2*c.Grass < c.Prey:
		return PreyStarvation
	case 2*c.Prey < c.Predator:
		return PredatorStarvation
	}
	return Balanced
}
