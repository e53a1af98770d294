package systems

// applyDecay charges every entity its role's per-tick energy loss. Grass is
// exempt. Gains from eating were applied first; the two are not netted.
func (ts *tickState) applyDecay() {
	for _, e := range ts.arena.order {
		id, _, vit := ts.arena.get(e)
		vit.Energy -= ts.table.Decay(id.Kind)
	}
}
