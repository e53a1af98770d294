package model

// Entity is a single organism. Values are replaced, never mutated, from one
// tick to the next; only ID is stable for the entity's lifetime.
type Entity struct {
	ID     int
	Kind   Kind
	Pos    Position
	Energy int
	Age    int
}

// WithEnergy returns a copy of e with energy replaced.
func (e Entity) WithEnergy(energy int) Entity {
	e.Energy = energy
	return e
}
