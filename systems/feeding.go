package systems

import (
	"cmp"
	"slices"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/foodweb/rng"
)

// resolveEating lets every entity, in world order, eat at most one adjacent
// victim. Victims are removed at once, so they can neither be eaten twice
// nor act later in the tick. Candidates are listed in world order before the
// random pick.
func (ts *tickState) resolveEating() {
	a := ts.arena
	occ := a.occupancy()
	meals := make([]ecs.Entity, 0, 4)

	for _, e := range a.order {
		if !a.alive(e) {
			continue // eaten earlier this phase
		}
		id, cell, vit := a.get(e)
		eater, pos := id.Kind, cell.Pos

		meals = meals[:0]
		for _, n := range pos.Neighbors() {
			other, ok := occ[n]
			if !ok {
				continue
			}
			if ts.table.CanEat(eater, a.kind(other)) {
				meals = append(meals, other)
			}
		}
		slices.SortFunc(meals, func(x, y ecs.Entity) int {
			return cmp.Compare(a.slot[x], a.slot[y])
		})

		victim, ok := rng.PickOne(ts.src, meals)
		if !ok {
			continue
		}

		vid, vcell, _ := a.get(victim)
		gain := ts.table.Gain(eater, vid.Kind)
		vit.Energy += gain
		ts.report.Kills = append(ts.report.Kills, Kill{
			EaterID:  id.ID,
			VictimID: vid.ID,
			Eater:    eater,
			Victim:   vid.Kind,
			Gain:     gain,
		})

		// Removal invalidates component pointers; nothing above is reused.
		delete(occ, vcell.Pos)
		a.remove(victim)
	}
	a.compact()
}
