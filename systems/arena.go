package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/foodweb/components"
	"github.com/pthm-cable/foodweb/model"
)

// arena is the scratch store one tick works in. Entities live in an ECS
// world so handles stay stable while others are removed or created; order
// carries the world order, which decides who acts first. ECS query order is
// never used.
type arena struct {
	world  *ecs.World
	bodies *ecs.Map3[components.Identity, components.Cell, components.Vitals]
	order  []ecs.Entity
	slot   map[ecs.Entity]int
	grid   model.World // incoming snapshot, consulted only for its bounds
}

func newArena(w model.World) *arena {
	world := ecs.NewWorld()
	a := &arena{
		world:  world,
		bodies: ecs.NewMap3[components.Identity, components.Cell, components.Vitals](world),
		order:  make([]ecs.Entity, 0, w.Len()),
		grid:   w,
	}
	for _, e := range w.All {
		a.order = append(a.order, a.spawn(e))
	}
	a.reslot()
	return a
}

// spawn adds an entity to the store. It does not touch order. Component
// pointers obtained before the call must not be used after it.
func (a *arena) spawn(e model.Entity) ecs.Entity {
	id, cell, vit := components.Split(e)
	return a.bodies.NewEntity(&id, &cell, &vit)
}

// remove deletes an entity from the store. Its handle stays in order until
// the next compact.
func (a *arena) remove(e ecs.Entity) {
	a.world.RemoveEntity(e)
}

func (a *arena) alive(e ecs.Entity) bool {
	return a.world.Alive(e)
}

func (a *arena) get(e ecs.Entity) (*components.Identity, *components.Cell, *components.Vitals) {
	return a.bodies.Get(e)
}

func (a *arena) kind(e ecs.Entity) model.Kind {
	id, _, _ := a.bodies.Get(e)
	return id.Kind
}

// compact drops removed handles from order, keeping the survivors' order.
func (a *arena) compact() {
	live := a.order[:0]
	for _, e := range a.order {
		if a.alive(e) {
			live = append(live, e)
		}
	}
	clear(a.order[len(live):])
	a.order = live
}

// reslot records each handle's index in the incoming order. Eating uses it
// to list candidate meals in world order.
func (a *arena) reslot() {
	a.slot = make(map[ecs.Entity]int, len(a.order))
	for i, e := range a.order {
		a.slot[e] = i
	}
}

func (a *arena) inBounds(p model.Position) bool {
	return a.grid.InBounds(p)
}

// occupancy maps each occupied cell to its entity.
func (a *arena) occupancy() map[model.Position]ecs.Entity {
	occ := make(map[model.Position]ecs.Entity, len(a.order))
	for _, e := range a.order {
		_, cell, _ := a.get(e)
		occ[cell.Pos] = e
	}
	return occ
}

// maxID returns the highest ID held by any entity in the store.
func (a *arena) maxID() int {
	m := 0
	for _, e := range a.order {
		id, _, _ := a.get(e)
		m = max(m, id.ID)
	}
	return m
}

// export copies the store back into model entities in world order.
func (a *arena) export() []model.Entity {
	out := make([]model.Entity, 0, len(a.order))
	for _, e := range a.order {
		out = append(out, components.Join(a.get(e)))
	}
	return out
}
