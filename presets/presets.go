// Package presets builds initial worlds from coarse density settings.
package presets

import (
	"fmt"

	"github.com/pthm-cable/foodweb/model"
	"github.com/pthm-cable/foodweb/rng"
)

// Density is a coarse population level.
type Density uint8

const (
	Low Density = iota
	Medium
	High
)

// String returns the lowercase density name.
func (d Density) String() string {
	switch d {
	case Low:
		return "low"
	case Medium:
		return "medium"
	case High:
		return "high"
	}
	return fmt.Sprintf("density(%d)", uint8(d))
}

// ParseDensity converts a density name back to a Density.
func ParseDensity(s string) (Density, error) {
	switch s {
	case "low":
		return Low, nil
	case "medium":
		return Medium, nil
	case "high":
		return High, nil
	}
	return 0, fmt.Errorf("unknown density %q", s)
}

// Count converts a density level to a cell count for a grid of totalCells.
func (d Density) Count(totalCells int) int {
	switch d {
	case Medium:
		return totalCells / 5
	case High:
		return totalCells / 3
	}
	return totalCells / 10
}

// Spawn tuning for founders.
const (
	FounderEnergy       = 10
	FounderEnergyJitter = 3 // energy is FounderEnergy + [0, jitter)
	FounderAgeSpread    = 3 // age is in [0, spread)
)

// Densities groups the three per-kind levels.
type Densities struct {
	Grass    Density
	Prey     Density
	Predator Density
}

// Counts returns how many founders of each kind a grid of totalCells gets.
// Prey and predators are scaled down from their density counts.
func (d Densities) Counts(totalCells int) model.Census {
	return model.Census{
		Grass:    d.Grass.Count(totalCells),
		Prey:     d.Prey.Count(totalCells) / 4,
		Predator: d.Predator.Count(totalCells) / 8,
	}
}

// BuildInitialWorld lays out founders on a shuffled list of all cells,
// assigning positions greedily to grass, then prey, then predators. Counts
// are capped at the positions left. IDs start at 1.
func BuildInitialWorld(rows, cols int, grass, prey, predator Density, src *rng.Source) (model.World, error) {
	if rows <= 0 || cols <= 0 {
		return model.World{}, fmt.Errorf("%w: %dx%d", model.ErrInvalidDimensions, rows, cols)
	}
	counts := Densities{Grass: grass, Prey: prey, Predator: predator}.Counts(rows * cols)

	cells := make([]model.Position, 0, rows*cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			cells = append(cells, model.Position{Row: r, Col: c})
		}
	}
	free := rng.Shuffle(src, cells)

	entities := make([]model.Entity, 0, counts.Total())
	nextID := 1
	spawn := func(kind model.Kind, count int) {
		count = min(count, len(free))
		for i := 0; i < count; i++ {
			pos := free[0]
			free = free[1:]
			energy := 0
			if kind != model.KindGrass {
				energy = FounderEnergy + src.IntN(FounderEnergyJitter)
			}
			entities = append(entities, model.Entity{
				ID:     nextID,
				Kind:   kind,
				Pos:    pos,
				Energy: energy,
				Age:    src.IntN(FounderAgeSpread),
			})
			nextID++
		}
	}
	spawn(model.KindGrass, counts.Grass)
	spawn(model.KindPrey, counts.Prey)
	spawn(model.KindPredator, counts.Predator)

	return model.New(rows, cols, entities)
}
