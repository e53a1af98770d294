package rules

import "github.com/pthm-cable/foodweb/model"

// DefaultGrassPerRegrowth is the number of grass tiles each regrowth event
// tries to place in the presets.
const DefaultGrassPerRegrowth = 8

// Normal returns the standard food chain: predators eat prey, prey eat grass.
func Normal() RuleSet {
	return preset(ModeNormal, []Interaction{
		{Eater: model.KindPredator, Eaten: model.KindPrey, EnergyGain: 14},
		{Eater: model.KindPrey, Eaten: model.KindGrass, EnergyGain: 6},
	})
}

// Inverted returns the reversed chain: prey eat predators and grass.
func Inverted() RuleSet {
	return preset(ModeInverted, []Interaction{
		{Eater: model.KindPrey, Eaten: model.KindPredator, EnergyGain: 14},
		{Eater: model.KindPrey, Eaten: model.KindGrass, EnergyGain: 6},
	})
}

// Preset returns the rule set for a mode.
func Preset(m Mode) RuleSet {
	if m == ModeInverted {
		return Inverted()
	}
	return Normal()
}

func preset(m Mode, interactions []Interaction) RuleSet {
	return RuleSet{
		Mode:         m,
		Interactions: interactions,
		Energy: EnergyRules{
			EaterInitial:  20,
			VictimInitial: 10,
			EaterDecay:    2,
			VictimDecay:   1,
		},
		Reproduction: ReproductionRules{
			EaterMinEnergy:   28,
			VictimMinEnergy:  14,
			EaterEnergyCost:  12,
			VictimEnergyCost: 6,
			MinAge: map[model.Kind]int{
				model.KindPrey:     6,
				model.KindPredator: 10,
			},
		},
		Regrowth: RegrowthRules{
			TicksBetween:     6,
			GrassPerRegrowth: DefaultGrassPerRegrowth,
		},
		MaxAge: 40,
	}
}
