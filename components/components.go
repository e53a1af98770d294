// Package components defines the ECS components of the tick arena.
package components

import "github.com/pthm-cable/foodweb/model"

// Identity holds the fields that never change for an entity's lifetime.
type Identity struct {
	ID   int
	Kind model.Kind
}

// Cell is an entity's grid position.
type Cell struct {
	Pos model.Position
}

// Vitals holds the per-tick mutable state of an entity.
type Vitals struct {
	Energy int
	Age    int
}

// Split breaks a model entity into its components.
func Split(e model.Entity) (Identity, Cell, Vitals) {
	return Identity{ID: e.ID, Kind: e.Kind}, Cell{Pos: e.Pos}, Vitals{Energy: e.Energy, Age: e.Age}
}

// Join rebuilds a model entity from its components.
func Join(id *Identity, cell *Cell, vit *Vitals) model.Entity {
	return model.Entity{
		ID:     id.ID,
		Kind:   id.Kind,
		Pos:    cell.Pos,
		Energy: vit.Energy,
		Age:    vit.Age,
	}
}
