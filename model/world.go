package model

import (
	"errors"
	"fmt"
	"slices"
)

var (
	ErrInvalidDimensions = errors.New("world dimensions must be positive")
	ErrOutOfBounds       = errors.New("entity position out of bounds")
	ErrInvalidID         = errors.New("entity id must be positive")
	ErrDuplicateID       = errors.New("duplicate entity id")
	ErrOccupied          = errors.New("position already occupied")
	ErrInvalidEntity     = errors.New("invalid entity")
)

// World is an immutable snapshot of the grid. Entity order is significant:
// it decides which entity acts first and therefore how random draws are
// consumed, so it is preserved across ticks.
type World struct {
	rows, cols int
	entities   []Entity
	tick       int64
	lastID     int
}

// New validates the entities and builds a tick-zero world. The entity slice
// is copied.
func New(rows, cols int, entities []Entity) (World, error) {
	if rows <= 0 || cols <= 0 {
		return World{}, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, rows, cols)
	}
	grid := World{rows: rows, cols: cols}
	ids := make(map[int]struct{}, len(entities))
	occupied := make(map[Position]int, len(entities))
	lastID := 0
	for _, e := range entities {
		if e.ID <= 0 {
			return World{}, fmt.Errorf("%w: %d", ErrInvalidID, e.ID)
		}
		if _, dup := ids[e.ID]; dup {
			return World{}, fmt.Errorf("%w: %d", ErrDuplicateID, e.ID)
		}
		ids[e.ID] = struct{}{}
		if !e.Kind.Valid() {
			return World{}, fmt.Errorf("%w: id %d has kind %v", ErrInvalidEntity, e.ID, e.Kind)
		}
		if e.Age < 0 {
			return World{}, fmt.Errorf("%w: id %d has negative age %d", ErrInvalidEntity, e.ID, e.Age)
		}
		if e.Kind == KindGrass && e.Energy != 0 {
			return World{}, fmt.Errorf("%w: grass %d has energy %d", ErrInvalidEntity, e.ID, e.Energy)
		}
		if !grid.InBounds(e.Pos) {
			return World{}, fmt.Errorf("%w: id %d at (%d,%d)", ErrOutOfBounds, e.ID, e.Pos.Row, e.Pos.Col)
		}
		if other, taken := occupied[e.Pos]; taken {
			return World{}, fmt.Errorf("%w: ids %d and %d at (%d,%d)", ErrOccupied, other, e.ID, e.Pos.Row, e.Pos.Col)
		}
		occupied[e.Pos] = e.ID
		lastID = max(lastID, e.ID)
	}
	return World{
		rows:     rows,
		cols:     cols,
		entities: slices.Clone(entities),
		lastID:   lastID,
	}, nil
}

// MustNew is like New but panics on invalid input.
func MustNew(rows, cols int, entities []Entity) World {
	w, err := New(rows, cols, entities)
	if err != nil {
		panic(fmt.Sprintf("model: %v", err))
	}
	return w
}

// Successor builds the world that follows w. It takes ownership of entities
// and is meant for the tick processor, which maintains the invariants New
// checks.
func (w World) Successor(entities []Entity, lastID int) World {
	return World{
		rows:     w.rows,
		cols:     w.cols,
		entities: entities,
		tick:     w.tick + 1,
		lastID:   max(w.lastID, lastID),
	}
}

// Rows returns the grid height.
func (w World) Rows() int { return w.rows }

// Cols returns the grid width.
func (w World) Cols() int { return w.cols }

// Tick returns the number of ticks already applied.
func (w World) Tick() int64 { return w.tick }

// LastID returns the highest entity ID ever issued in this run.
func (w World) LastID() int { return w.lastID }

// Cells returns rows*cols.
func (w World) Cells() int { return w.rows * w.cols }

// Len returns the number of entities.
func (w World) Len() int { return len(w.entities) }

// At returns the i-th entity in world order.
func (w World) At(i int) Entity { return w.entities[i] }

// Entities returns a copy of the entity list in world order.
func (w World) Entities() []Entity { return slices.Clone(w.entities) }

// All iterates the entities in world order without copying.
func (w World) All(yield func(int, Entity) bool) {
	for i, e := range w.entities {
		if !yield(i, e) {
			return
		}
	}
}

// InBounds reports whether p lies on the grid.
func (w World) InBounds(p Position) bool {
	return p.Row >= 0 && p.Row < w.rows && p.Col >= 0 && p.Col < w.cols
}

// Census counts the entities of each kind.
func (w World) Census() Census {
	var c Census
	for _, e := range w.entities {
		c.Add(e.Kind)
	}
	return c
}
