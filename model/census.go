package model

import "log/slog"

// Census holds per-kind entity counts.
type Census struct {
	Grass    int
	Prey     int
	Predator int
}

// Add counts one entity of kind k.
func (c *Census) Add(k Kind) {
	switch k {
	case KindGrass:
		c.Grass++
	case KindPrey:
		c.Prey++
	case KindPredator:
		c.Predator++
	}
}

// Of returns the count for kind k.
func (c Census) Of(k Kind) int {
	switch k {
	case KindGrass:
		return c.Grass
	case KindPrey:
		return c.Prey
	case KindPredator:
		return c.Predator
	}
	return 0
}

// Total returns the number of entities of every kind.
func (c Census) Total() int { return c.Grass + c.Prey + c.Predator }

// LogValue implements slog.LogValuer.
func (c Census) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("grass", c.Grass),
		slog.Int("prey", c.Prey),
		slog.Int("predator", c.Predator),
	)
}
