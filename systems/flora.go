package systems

import (
	"github.com/pthm-cable/foodweb/model"
	"github.com/pthm-cable/foodweb/rng"
)

// regrowGrass runs when the incoming tick counter is a multiple of the
// regrowth interval. All empty cells are listed row by row, shuffled, and
// the first GrassPerRegrowth of them receive new grass.
func (ts *tickState) regrowGrass() {
	if !ts.table.Regrows(ts.incoming) {
		return
	}
	a := ts.arena
	occ := a.occupancy()

	empty := make([]model.Position, 0, a.grid.Cells()-len(occ))
	for r := 0; r < a.grid.Rows(); r++ {
		for c := 0; c < a.grid.Cols(); c++ {
			p := model.Position{Row: r, Col: c}
			if _, taken := occ[p]; !taken {
				empty = append(empty, p)
			}
		}
	}

	n := min(ts.table.GrassPerRegrowth, len(empty))
	for _, p := range rng.Shuffle(ts.src, empty)[:n] {
		h := a.spawn(model.Entity{
			ID:   ts.issueID(),
			Kind: model.KindGrass,
			Pos:  p,
		})
		a.order = append(a.order, h)
	}
	ts.report.Regrown = n
}
