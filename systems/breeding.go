package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/foodweb/model"
	"github.com/pthm-cable/foodweb/rng"
)

// OffspringJitter is the spread of the uniform offset added to a newborn's
// base energy.
const OffspringJitter = 1

// reproduce gives every eligible animal, in world order, one chance to place
// an offspring on an empty neighboring cell. The parent pays its role's
// cost, the child starts at age 0 with the role's initial energy plus
// jitter, and the cell is reserved at once. Children follow their parent in
// world order.
func (ts *tickState) reproduce() {
	a := ts.arena
	occ := a.occupancy()
	order := make([]ecs.Entity, 0, len(a.order))
	spots := make([]model.Position, 0, 4)

	for _, e := range a.order {
		order = append(order, e)

		id, cell, vit := a.get(e)
		if !ts.table.CanReproduce(id.Kind, vit.Energy, vit.Age) {
			continue
		}

		spots = spots[:0]
		for _, n := range cell.Pos.Neighbors() {
			if !a.inBounds(n) {
				continue
			}
			if _, taken := occ[n]; !taken {
				spots = append(spots, n)
			}
		}
		spot, ok := rng.PickOne(ts.src, spots)
		if !ok {
			continue
		}

		kind, parentID := id.Kind, id.ID
		vit.Energy -= ts.table.ReproductionCost(kind)
		child := model.Entity{
			ID:     ts.issueID(),
			Kind:   kind,
			Pos:    spot,
			Energy: ts.table.OffspringEnergy(kind) + ts.src.Jitter(OffspringJitter),
		}
		// spawn is a structural change; parent pointers are dead past here.
		h := a.spawn(child)
		occ[spot] = h
		order = append(order, h)

		ts.report.Births = append(ts.report.Births, Birth{
			ParentID: parentID,
			ChildID:  child.ID,
			Kind:     kind,
			Pos:      spot,
		})
	}
	a.order = order
}
