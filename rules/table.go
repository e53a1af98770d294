package rules

import (
	"math"

	"github.com/pthm-cable/foodweb/model"
)

const numKinds = len(model.Kinds)

// Table is a RuleSet flattened into per-kind lookups for the tick processor.
type Table struct {
	canEat    [numKinds][numKinds]bool
	gain      [numKinds][numKinds]int
	decay     [numKinds]int
	minEnergy [numKinds]int
	minAge    [numKinds]int
	cost      [numKinds]int
	offspring [numKinds]int
	fertile   [numKinds]bool

	MaxAge           int
	RegrowthEvery    int
	GrassPerRegrowth int
}

// Compile resolves roles and thresholds once so each tick is table lookups.
func (rs RuleSet) Compile() Table {
	t := Table{
		MaxAge:           rs.MaxAge,
		RegrowthEvery:    rs.Regrowth.TicksBetween,
		GrassPerRegrowth: rs.Regrowth.GrassPerRegrowth,
	}

	for i := len(rs.Interactions) - 1; i >= 0; i-- {
		in := rs.Interactions[i]
		if !in.Eater.Valid() || !in.Eaten.Valid() {
			continue
		}
		// Walking backwards lets the first matching interaction win.
		t.canEat[in.Eater][in.Eaten] = true
		t.gain[in.Eater][in.Eaten] = in.EnergyGain
	}

	for _, k := range model.Kinds {
		role := rs.RoleOf(k)
		if k == model.KindGrass {
			continue
		}
		switch role {
		case RoleEater:
			t.decay[k] = rs.Energy.EaterDecay
			t.minEnergy[k] = rs.Reproduction.EaterMinEnergy
			t.cost[k] = rs.Reproduction.EaterEnergyCost
			t.offspring[k] = rs.Energy.EaterInitial
		case RoleVictim:
			t.decay[k] = rs.Energy.VictimDecay
			t.minEnergy[k] = rs.Reproduction.VictimMinEnergy
			t.cost[k] = rs.Reproduction.VictimEnergyCost
			t.offspring[k] = rs.Energy.VictimInitial
		}
		age, ok := rs.Reproduction.MinAge[k]
		if !ok || role == RoleNone {
			t.minAge[k] = math.MaxInt
			continue
		}
		t.minAge[k] = age
		t.fertile[k] = true
	}
	return t
}

// CanEat reports whether an eater of kind a may eat kind b.
func (t *Table) CanEat(a, b model.Kind) bool { return t.canEat[a][b] }

// Gain returns the energy gained when a eats b.
func (t *Table) Gain(a, b model.Kind) int { return t.gain[a][b] }

// Decay returns the per-tick energy loss of k. Grass never decays.
func (t *Table) Decay(k model.Kind) int { return t.decay[k] }

// OffspringEnergy returns the base energy of a newborn of kind k.
func (t *Table) OffspringEnergy(k model.Kind) int { return t.offspring[k] }

// ReproductionCost returns the energy a parent of kind k pays per offspring.
func (t *Table) ReproductionCost(k model.Kind) int { return t.cost[k] }

// CanReproduce reports whether an entity of kind k with the given energy and
// age meets its role's thresholds.
func (t *Table) CanReproduce(k model.Kind, energy, age int) bool {
	if k == model.KindGrass || !t.fertile[k] {
		return false
	}
	return energy >= t.minEnergy[k] && age >= t.minAge[k]
}

// ReproductionThreshold returns the energy k needs before it can breed.
func (t *Table) ReproductionThreshold(k model.Kind) int { return t.minEnergy[k] }

// Mortal reports whether k can die of starvation or old age.
func (t *Table) Mortal(k model.Kind) bool { return k != model.KindGrass }

// Regrows reports whether grass regrowth runs on a tick whose incoming
// counter is tick.
func (t *Table) Regrows(tick int64) bool {
	if t.RegrowthEvery <= 0 {
		return false
	}
	return tick%int64(t.RegrowthEvery) == 0
}
