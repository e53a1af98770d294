package model

// Position is a (row, col) grid coordinate.
type Position struct {
	Row, Col int
}

// Neighbors returns the four orthogonal neighbors in up, down, left, right
// order. Bounds are not checked.
func (p Position) Neighbors() [4]Position {
	return [4]Position{
		{p.Row - 1, p.Col},
		{p.Row + 1, p.Col},
		{p.Row, p.Col - 1},
		{p.Row, p.Col + 1},
	}
}

// Adjacent reports whether a and b are exactly one step apart horizontally or
// vertically. Diagonal cells are not adjacent.
func Adjacent(a, b Position) bool {
	dr := abs(a.Row - b.Row)
	dc := abs(a.Col - b.Col)
	return dr+dc == 1
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
