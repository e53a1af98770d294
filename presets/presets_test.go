package presets

import (
	"errors"
	"reflect"
	"testing"

	"github.com/pthm-cable/foodweb/model"
	"github.com/pthm-cable/foodweb/rng"
	"github.com/pthm-cable/foodweb/status"
)

func TestDensityCount(t *testing.T) {
	tests := []struct {
		d     Density
		cells int
		want  int
	}{
		{Low, 400, 40},
		{Medium, 400, 80},
		{High, 400, 133},
		{Low, 9, 0},
	}
	for _, tt := range tests {
		if got := tt.d.Count(tt.cells); got != tt.want {
			t.Errorf("%v.Count(%d) = %d, want %d", tt.d, tt.cells, got, tt.want)
		}
	}
}

func TestBuildInitialWorldCounts(t *testing.T) {
	w, err := BuildInitialWorld(20, 20, Medium, Medium, Medium, rng.New(42))
	if err != nil {
		t.Fatalf("BuildInitialWorld: %v", err)
	}
	c := w.Census()
	if c.Grass != 80 || c.Prey != 20 || c.Predator != 10 {
		t.Errorf("census = %+v, want grass=80 prey=20 predator=10", c)
	}
	if w.Tick() != 0 {
		t.Errorf("tick = %d, want 0", w.Tick())
	}
}

func TestBuildInitialWorldFounders(t *testing.T) {
	w, err := BuildInitialWorld(12, 15, High, High, High, rng.New(9))
	if err != nil {
		t.Fatalf("BuildInitialWorld: %v", err)
	}
	seen := make(map[model.Position]bool)
	for i, e := range w.Entities() {
		if e.ID != i+1 {
			t.Errorf("entity %d has id %d, want strictly increasing from 1", i, e.ID)
		}
		if seen[e.Pos] {
			t.Errorf("position %v used twice", e.Pos)
		}
		seen[e.Pos] = true
		if e.Age < 0 || e.Age >= FounderAgeSpread {
			t.Errorf("entity %d age %d out of range", e.ID, e.Age)
		}
		switch e.Kind {
		case model.KindGrass:
			if e.Energy != 0 {
				t.Errorf("grass %d has energy %d", e.ID, e.Energy)
			}
		default:
			if e.Energy < FounderEnergy || e.Energy >= FounderEnergy+FounderEnergyJitter {
				t.Errorf("%v %d energy %d out of range", e.Kind, e.ID, e.Energy)
			}
		}
	}
}

func TestBuildInitialWorldOrder(t *testing.T) {
	w, err := BuildInitialWorld(10, 10, Low, High, High, rng.New(1))
	if err != nil {
		t.Fatal(err)
	}
	// Grass first, then prey, then predators.
	last := model.KindGrass
	for _, e := range w.Entities() {
		if e.Kind < last {
			t.Fatalf("kind %v after %v breaks grass/prey/predator order", e.Kind, last)
		}
		last = e.Kind
	}
}

func TestBuildInitialWorldDeterministic(t *testing.T) {
	a, _ := BuildInitialWorld(16, 16, Medium, High, Low, rng.New(1234))
	b, _ := BuildInitialWorld(16, 16, Medium, High, Low, rng.New(1234))
	if !reflect.DeepEqual(a.Entities(), b.Entities()) {
		t.Error("same seed produced different worlds")
	}
	c, _ := BuildInitialWorld(16, 16, Medium, High, Low, rng.New(4321))
	if reflect.DeepEqual(a.Entities(), c.Entities()) {
		t.Error("different seeds produced identical worlds")
	}
}

func TestAllGrassWorldIsEmpty(t *testing.T) {
	// 25 cells: high grass gives 8, low prey gives 2/4=0, low predators 2/8=0.
	w, err := BuildInitialWorld(5, 5, High, Low, Low, rng.New(3))
	if err != nil {
		t.Fatal(err)
	}
	c := w.Census()
	if c.Prey != 0 || c.Predator != 0 || c.Grass == 0 {
		t.Fatalf("census = %+v, want grass only", c)
	}
	if got := status.Classify(w); got != status.Empty {
		t.Errorf("Classify = %v, want empty", got)
	}
}

func TestBuildInitialWorldInvalidDimensions(t *testing.T) {
	_, err := BuildInitialWorld(0, 4, Low, Low, Low, rng.New(1))
	if !errors.Is(err, model.ErrInvalidDimensions) {
		t.Errorf("err = %v, want ErrInvalidDimensions", err)
	}
}

func TestParseDensity(t *testing.T) {
	for _, d := range []Density{Low, Medium, High} {
		got, err := ParseDensity(d.String())
		if err != nil || got != d {
			t.Errorf("ParseDensity(%q) = %v, %v", d, got, err)
		}
	}
	if _, err := ParseDensity("extreme"); err == nil {
		t.Error("expected error for unknown density")
	}
}
