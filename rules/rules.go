// Package rules holds the declarative configuration that parameterizes a
// simulation: who eats whom, energy economics, reproduction thresholds,
// grass regrowth cadence and the natural lifespan.
package rules

import (
	"errors"
	"fmt"

	"github.com/pthm-cable/foodweb/model"
)

// ErrInvalidRules is returned by Validate for structurally unusable rule sets.
var ErrInvalidRules = errors.New("invalid rule set")

// Mode selects which food chain a preset describes.
type Mode uint8

const (
	ModeNormal Mode = iota
	ModeInverted
)

// String returns the lowercase mode name.
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeInverted:
		return "inverted"
	}
	return fmt.Sprintf("mode(%d)", uint8(m))
}

// ParseMode converts a mode name back to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "normal":
		return ModeNormal, nil
	case "inverted":
		return ModeInverted, nil
	}
	return 0, fmt.Errorf("unknown rule mode %q", s)
}

// Interaction says that Eater gains EnergyGain by eating an adjacent Eaten.
type Interaction struct {
	Eater      model.Kind
	Eaten      model.Kind
	EnergyGain int
}

// EnergyRules holds offspring energy and per-tick decay by role.
type EnergyRules struct {
	EaterInitial  int
	VictimInitial int
	EaterDecay    int
	VictimDecay   int
}

// ReproductionRules holds the thresholds a parent must meet and the energy
// it pays. A kind missing from MinAge never reproduces.
type ReproductionRules struct {
	EaterMinEnergy   int
	VictimMinEnergy  int
	EaterEnergyCost  int
	VictimEnergyCost int
	MinAge           map[model.Kind]int
}

// RegrowthRules controls how often and how much grass reappears.
type RegrowthRules struct {
	TicksBetween     int
	GrassPerRegrowth int
}

// RuleSet is the full configuration of one simulation session. It is built
// once and never changed while a session runs.
type RuleSet struct {
	Mode         Mode
	Interactions []Interaction
	Energy       EnergyRules
	Reproduction ReproductionRules
	Regrowth     RegrowthRules
	MaxAge       int
}

// Role is the part a kind plays in the interaction table.
type Role uint8

const (
	RoleNone Role = iota
	RoleEater
	RoleVictim
)

// String returns the lowercase role name.
func (r Role) String() string {
	switch r {
	case RoleEater:
		return "eater"
	case RoleVictim:
		return "victim"
	}
	return "none"
}

// RoleOf derives the role of k: eater if any interaction lists it as the
// eater, otherwise victim if any lists it as eaten, otherwise none.
func (rs RuleSet) RoleOf(k model.Kind) Role {
	victim := false
	for _, in := range rs.Interactions {
		if in.Eater == k {
			return RoleEater
		}
		if in.Eaten == k {
			victim = true
		}
	}
	if victim {
		return RoleVictim
	}
	return RoleNone
}

// Gain returns the energy an eater of kind eater receives for eating a kind
// eaten. The first matching interaction wins.
func (rs RuleSet) Gain(eater, eaten model.Kind) (int, bool) {
	for _, in := range rs.Interactions {
		if in.Eater == eater && in.Eaten == eaten {
			return in.EnergyGain, true
		}
	}
	return 0, false
}

// Unassigned lists the non-grass kinds that appear in no interaction. Such
// kinds never decay and never reproduce; callers should surface them.
func (rs RuleSet) Unassigned() []model.Kind {
	var out []model.Kind
	for _, k := range model.Kinds {
		if k == model.KindGrass {
			continue
		}
		if rs.RoleOf(k) == RoleNone {
			out = append(out, k)
		}
	}
	return out
}

// Validate rejects rule sets the tick processor cannot run meaningfully.
// Missing minimum ages are not an error; they make a kind ineligible.
func (rs RuleSet) Validate() error {
	if rs.MaxAge <= 0 {
		return fmt.Errorf("%w: max age %d must be positive", ErrInvalidRules, rs.MaxAge)
	}
	if rs.Regrowth.TicksBetween <= 0 {
		return fmt.Errorf("%w: regrowth interval %d must be positive", ErrInvalidRules, rs.Regrowth.TicksBetween)
	}
	if rs.Regrowth.GrassPerRegrowth < 0 {
		return fmt.Errorf("%w: grass per regrowth %d is negative", ErrInvalidRules, rs.Regrowth.GrassPerRegrowth)
	}
	e := rs.Energy
	if e.EaterDecay < 0 || e.VictimDecay < 0 {
		return fmt.Errorf("%w: decay must not be negative", ErrInvalidRules)
	}
	r := rs.Reproduction
	if r.EaterEnergyCost < 0 || r.VictimEnergyCost < 0 {
		return fmt.Errorf("%w: reproduction cost must not be negative", ErrInvalidRules)
	}
	for k, age := range r.MinAge {
		if !k.Valid() {
			return fmt.Errorf("%w: min age for unknown kind %v", ErrInvalidRules, k)
		}
		if age < 0 {
			return fmt.Errorf("%w: min age for %v is negative", ErrInvalidRules, k)
		}
	}
	for i, in := range rs.Interactions {
		if !in.Eater.Valid() || !in.Eaten.Valid() {
			return fmt.Errorf("%w: interaction %d references unknown kind", ErrInvalidRules, i)
		}
		if in.Eater == model.KindGrass {
			return fmt.Errorf("%w: interaction %d: grass cannot eat", ErrInvalidRules, i)
		}
		if in.EnergyGain < 0 {
			return fmt.Errorf("%w: interaction %d has negative gain", ErrInvalidRules, i)
		}
	}
	return nil
}
