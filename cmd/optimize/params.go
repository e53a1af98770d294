// Package main provides CMA-ES optimization for food web rule parameters.
package main

import (
	"math"

	"github.com/pthm-cable/foodweb/config"
	"github.com/pthm-cable/foodweb/model"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters.
// Every rule number is an integer; values are rounded when applied.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Feeding
			{Name: "animal_gain", Path: "rules.interactions[eaten!=grass].energy_gain", Min: 4, Max: 30, Default: 14},
			{Name: "grass_gain", Path: "rules.interactions[eaten=grass].energy_gain", Min: 1, Max: 20, Default: 6},
			// Energy
			{Name: "eater_initial", Path: "rules.energy.eater_initial", Min: 5, Max: 40, Default: 20},
			{Name: "victim_initial", Path: "rules.energy.victim_initial", Min: 3, Max: 30, Default: 10},
			{Name: "eater_decay", Path: "rules.energy.eater_decay", Min: 0, Max: 6, Default: 2},
			{Name: "victim_decay", Path: "rules.energy.victim_decay", Min: 0, Max: 4, Default: 1},
			// Reproduction
			{Name: "eater_min_energy", Path: "rules.reproduction.eater_min_energy", Min: 8, Max: 60, Default: 28},
			{Name: "victim_min_energy", Path: "rules.reproduction.victim_min_energy", Min: 4, Max: 40, Default: 14},
			{Name: "eater_energy_cost", Path: "rules.reproduction.eater_energy_cost", Min: 1, Max: 30, Default: 12},
			{Name: "victim_energy_cost", Path: "rules.reproduction.victim_energy_cost", Min: 1, Max: 20, Default: 6},
			{Name: "prey_min_age", Path: "rules.reproduction.min_age.prey", Min: 0, Max: 20, Default: 6},
			{Name: "predator_min_age", Path: "rules.reproduction.min_age.predator", Min: 0, Max: 30, Default: 10},
			// Regrowth
			{Name: "ticks_between", Path: "rules.regrowth.ticks_between", Min: 1, Max: 20, Default: 6},
			{Name: "grass_per_regrowth", Path: "rules.regrowth.grass_per_regrowth", Min: 1, Max: 40, Default: 8},
			// Aging
			{Name: "max_age", Path: "rules.max_age", Min: 10, Max: 120, Default: 40},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = max(spec.Min, min(spec.Max, v[i]))
	}
	return clamped
}

// Round clamps v and rounds every value to the integer the rules will use.
func (pv *ParamVector) Round(v []float64) []int {
	clamped := pv.Clamp(v)
	out := make([]int, len(clamped))
	for i, x := range clamped {
		out[i] = int(math.Round(x))
	}
	return out
}

// ApplyToConfig writes parameter values into cfg's rules section and
// recomputes derived values. The mode's interactions are copied into the
// config first so their gains can be overridden.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) error {
	v := pv.Round(values)

	// Order must match Specs order
	i := 0
	next := func() int {
		x := v[i]
		i++
		return x
	}

	animalGain, grassGain := next(), next()
	if len(cfg.Rules.Interactions) == 0 {
		for _, in := range cfg.RuleSet().Interactions {
			cfg.Rules.Interactions = append(cfg.Rules.Interactions, config.InteractionConfig{
				Eater: in.Eater.String(),
				Eaten: in.Eaten.String(),
			})
		}
	}
	for j := range cfg.Rules.Interactions {
		in := &cfg.Rules.Interactions[j]
		if in.Eaten == model.KindGrass.String() {
			in.EnergyGain = grassGain
		} else {
			in.EnergyGain = animalGain
		}
	}

	cfg.Rules.Energy.EaterInitial = next()
	cfg.Rules.Energy.VictimInitial = next()
	cfg.Rules.Energy.EaterDecay = next()
	cfg.Rules.Energy.VictimDecay = next()

	cfg.Rules.Reproduction.EaterMinEnergy = next()
	cfg.Rules.Reproduction.VictimMinEnergy = next()
	cfg.Rules.Reproduction.EaterEnergyCost = next()
	cfg.Rules.Reproduction.VictimEnergyCost = next()
	minAge := make(map[string]int, 2)
	minAge[model.KindPrey.String()] = next()
	minAge[model.KindPredator.String()] = next()
	cfg.Rules.Reproduction.MinAge = minAge

	cfg.Rules.Regrowth.TicksBetween = next()
	cfg.Rules.Regrowth.GrassPerRegrowth = next()

	cfg.Rules.MaxAge = next()

	return cfg.Recompute()
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	rs := cfg.RuleSet()

	animalGain, grassGain := pv.Specs[0].Default, pv.Specs[1].Default
	animalSet, grassSet := false, false
	for _, in := range rs.Interactions {
		switch {
		case in.Eaten == model.KindGrass && !grassSet:
			grassGain, grassSet = float64(in.EnergyGain), true
		case in.Eaten != model.KindGrass && !animalSet:
			animalGain, animalSet = float64(in.EnergyGain), true
		}
	}

	return []float64{
		animalGain,
		grassGain,
		float64(rs.Energy.EaterInitial),
		float64(rs.Energy.VictimInitial),
		float64(rs.Energy.EaterDecay),
		float64(rs.Energy.VictimDecay),
		float64(rs.Reproduction.EaterMinEnergy),
		float64(rs.Reproduction.VictimMinEnergy),
		float64(rs.Reproduction.EaterEnergyCost),
		float64(rs.Reproduction.VictimEnergyCost),
		float64(rs.Reproduction.MinAge[model.KindPrey]),
		float64(rs.Reproduction.MinAge[model.KindPredator]),
		float64(rs.Regrowth.TicksBetween),
		float64(rs.Regrowth.GrassPerRegrowth),
		float64(rs.MaxAge),
	}
}
