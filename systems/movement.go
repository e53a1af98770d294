package systems

import (
	"github.com/pthm-cable/foodweb/model"
	"github.com/pthm-cable/foodweb/rng"
)

// move walks animals in world order. An animal with something edible next
// to it picks one of those cells; since the cell is occupied it holds its
// position beside the meal, ready to eat next tick. Otherwise it picks an
// empty neighbor, or stays if there is none. The occupancy map is updated
// after every decision, so earlier animals win contested cells.
func (ts *tickState) move() {
	a := ts.arena
	occ := a.occupancy()
	food := make([]model.Position, 0, 4)
	open := make([]model.Position, 0, 4)

	for _, e := range a.order {
		id, cell, _ := a.get(e)
		if id.Kind == model.KindGrass {
			continue
		}

		food, open = food[:0], open[:0]
		for _, n := range cell.Pos.Neighbors() {
			if !a.inBounds(n) {
				continue
			}
			other, taken := occ[n]
			switch {
			case !taken:
				open = append(open, n)
			case ts.table.CanEat(id.Kind, a.kind(other)):
				food = append(food, n)
			}
		}

		candidates := open
		if len(food) > 0 {
			candidates = food
		}
		target, ok := rng.PickOne(ts.src, candidates)
		if !ok {
			continue
		}
		if _, taken := occ[target]; taken {
			continue
		}
		delete(occ, cell.Pos)
		cell.Pos = target
		occ[target] = e
		ts.report.Moves++
	}
}
