package model

import (
	"errors"
	"testing"
)

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name     string
		rows     int
		cols     int
		entities []Entity
		wantErr  error
	}{
		{"zero rows", 0, 3, nil, ErrInvalidDimensions},
		{"negative cols", 3, -1, nil, ErrInvalidDimensions},
		{"zero id", 3, 3, []Entity{{ID: 0, Kind: KindPrey}}, ErrInvalidID},
		{"duplicate id", 3, 3, []Entity{
			{ID: 1, Kind: KindPrey, Pos: Position{0, 0}},
			{ID: 1, Kind: KindPrey, Pos: Position{0, 1}},
		}, ErrDuplicateID},
		{"out of bounds", 3, 3, []Entity{{ID: 1, Kind: KindPrey, Pos: Position{3, 0}}}, ErrOutOfBounds},
		{"negative position", 3, 3, []Entity{{ID: 1, Kind: KindPrey, Pos: Position{0, -1}}}, ErrOutOfBounds},
		{"shared cell", 3, 3, []Entity{
			{ID: 1, Kind: KindPrey, Pos: Position{1, 1}},
			{ID: 2, Kind: KindGrass, Pos: Position{1, 1}},
		}, ErrOccupied},
		{"grass with energy", 3, 3, []Entity{{ID: 1, Kind: KindGrass, Energy: 2}}, ErrInvalidEntity},
		{"negative age", 3, 3, []Entity{{ID: 1, Kind: KindPrey, Age: -1}}, ErrInvalidEntity},
		{"unknown kind", 3, 3, []Entity{{ID: 1, Kind: Kind(9)}}, ErrInvalidEntity},
		{"valid", 3, 3, []Entity{
			{ID: 4, Kind: KindPredator, Pos: Position{1, 1}, Energy: 10},
			{ID: 2, Kind: KindPrey, Pos: Position{1, 2}, Energy: 10},
		}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.rows, tt.cols, tt.entities)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewCopiesEntities(t *testing.T) {
	in := []Entity{{ID: 1, Kind: KindPrey, Pos: Position{0, 0}, Energy: 5}}
	w := MustNew(2, 2, in)
	in[0].Energy = 99

	if got := w.At(0).Energy; got != 5 {
		t.Errorf("world shares caller slice: energy = %d", got)
	}

	out := w.Entities()
	out[0].Energy = 42
	if got := w.At(0).Energy; got != 5 {
		t.Errorf("Entities() exposes internal slice: energy = %d", got)
	}
}

func TestSuccessor(t *testing.T) {
	w := MustNew(4, 5, []Entity{{ID: 3, Kind: KindPrey, Energy: 1}})
	if w.LastID() != 3 {
		t.Fatalf("LastID = %d, want 3", w.LastID())
	}

	next := w.Successor(nil, 2)
	if next.Tick() != 1 {
		t.Errorf("Tick = %d, want 1", next.Tick())
	}
	if next.LastID() != 3 {
		t.Errorf("LastID must never decrease, got %d", next.LastID())
	}
	if next.Rows() != 4 || next.Cols() != 5 {
		t.Errorf("dimensions changed: %dx%d", next.Rows(), next.Cols())
	}
	if w.Tick() != 0 {
		t.Error("Successor mutated the receiver")
	}
}

func TestBounds(t *testing.T) {
	w := MustNew(2, 3, nil)
	if w.Cells() != 6 {
		t.Errorf("Cells = %d, want 6", w.Cells())
	}
	for _, tt := range []struct {
		p    Position
		want bool
	}{
		{Position{0, 0}, true},
		{Position{1, 2}, true},
		{Position{2, 0}, false},
		{Position{0, 3}, false},
		{Position{-1, 1}, false},
	} {
		if got := w.InBounds(tt.p); got != tt.want {
			t.Errorf("InBounds(%+v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestAdjacent(t *testing.T) {
	c := Position{2, 2}
	for _, n := range c.Neighbors() {
		if !Adjacent(c, n) {
			t.Errorf("%v should be adjacent to %v", n, c)
		}
	}
	for _, p := range []Position{{1, 1}, {3, 3}, {2, 2}, {2, 4}, {0, 2}} {
		if Adjacent(c, p) {
			t.Errorf("%v should not be adjacent to %v", p, c)
		}
	}
}

func TestNeighborsOrder(t *testing.T) {
	got := Position{5, 5}.Neighbors()
	want := [4]Position{{4, 5}, {6, 5}, {5, 4}, {5, 6}}
	if got != want {
		t.Errorf("Neighbors() = %v, want %v", got, want)
	}
}

func TestCensus(t *testing.T) {
	w := MustNew(3, 3, []Entity{
		{ID: 1, Kind: KindGrass, Pos: Position{0, 0}},
		{ID: 2, Kind: KindGrass, Pos: Position{0, 1}},
		{ID: 3, Kind: KindPrey, Pos: Position{0, 2}, Energy: 3},
		{ID: 4, Kind: KindPredator, Pos: Position{1, 0}, Energy: 3},
	})
	c := w.Census()
	if c.Grass != 2 || c.Prey != 1 || c.Predator != 1 {
		t.Errorf("Census = %+v", c)
	}
	if c.Total() != 4 {
		t.Errorf("Total = %d, want 4", c.Total())
	}
	if c.Of(KindGrass) != 2 {
		t.Errorf("Of(grass) = %d, want 2", c.Of(KindGrass))
	}
}

func TestParseKindRoundTrip(t *testing.T) {
	for _, k := range Kinds {
		got, err := ParseKind(k.String())
		if err != nil || got != k {
			t.Errorf("ParseKind(%q) = %v, %v", k.String(), got, err)
		}
	}
	if _, err := ParseKind("fungus"); err == nil {
		t.Error("expected error for unknown kind")
	}
}
