package systems

// resolveDeaths removes animals that ran out of energy or reached the
// maximum age. Grass only leaves the world by being eaten.
func (ts *tickState) resolveDeaths() {
	a := ts.arena
	for _, e := range a.order {
		id, _, vit := a.get(e)
		if !ts.table.Mortal(id.Kind) {
			continue
		}
		var cause DeathCause
		switch {
		case vit.Energy <= 0:
			cause = CauseStarvation
		case vit.Age >= ts.table.MaxAge:
			cause = CauseOldAge
		default:
			continue
		}
		ts.report.Deaths = append(ts.report.Deaths, Death{
			ID:     id.ID,
			Kind:   id.Kind,
			Cause:  cause,
			Energy: vit.Energy,
			Age:    vit.Age,
		})
		a.remove(e)
	}
	a.compact()
}

// age advances every entity by one tick, newborns included.
func (ts *tickState) age() {
	for _, e := range ts.arena.order {
		_, _, vit := ts.arena.get(e)
		vit.Age++
	}
}
