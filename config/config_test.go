package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pthm-cable/foodweb/model"
	"github.com/pthm-cable/foodweb/presets"
	"github.com/pthm-cable/foodweb/rules"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.World.Rows != 20 || cfg.World.Cols != 20 || cfg.World.Seed != 42 {
		t.Errorf("world = %+v", cfg.World)
	}
	want := presets.Densities{Grass: presets.Medium, Prey: presets.Medium, Predator: presets.Medium}
	if cfg.Densities() != want {
		t.Errorf("densities = %+v", cfg.Densities())
	}
	if cfg.Derived.TickInterval != 600*time.Millisecond {
		t.Errorf("tick interval = %v", cfg.Derived.TickInterval)
	}

	rs, preset := cfg.RuleSet(), rules.Normal()
	if rs.Mode != preset.Mode || rs.MaxAge != preset.MaxAge || rs.Energy != preset.Energy || rs.Regrowth != preset.Regrowth {
		t.Errorf("rule set differs from preset: %+v", rs)
	}
	if len(rs.Interactions) != len(preset.Interactions) {
		t.Fatalf("interactions = %+v", rs.Interactions)
	}
	for i := range rs.Interactions {
		if rs.Interactions[i] != preset.Interactions[i] {
			t.Errorf("interaction %d = %+v, want %+v", i, rs.Interactions[i], preset.Interactions[i])
		}
	}
	if rs.Reproduction.MinAge[model.KindPrey] != 6 || rs.Reproduction.MinAge[model.KindPredator] != 10 {
		t.Errorf("min age = %v", rs.Reproduction.MinAge)
	}
}

func TestParseOverrides(t *testing.T) {
	cfg, err := Parse([]byte(`
world:
  rows: 8
population:
  predator: low
rules:
  mode: inverted
  max_age: 25
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.World.Rows != 8 || cfg.World.Cols != 20 {
		t.Errorf("world = %+v, want rows overridden only", cfg.World)
	}
	if cfg.Densities().Predator != presets.Low || cfg.Densities().Grass != presets.Medium {
		t.Errorf("densities = %+v", cfg.Densities())
	}
	rs := cfg.RuleSet()
	if rs.Mode != rules.ModeInverted || rs.MaxAge != 25 {
		t.Errorf("mode %s max age %d", rs.Mode, rs.MaxAge)
	}
	if rs.RoleOf(model.KindPrey) != rules.RoleEater {
		t.Errorf("prey role = %s, want eater in inverted mode", rs.RoleOf(model.KindPrey))
	}
}

func TestParseCustomInteractions(t *testing.T) {
	cfg, err := Parse([]byte(`
rules:
  interactions:
    - {eater: predator, eaten: grass, energy_gain: 3}
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	rs := cfg.RuleSet()
	if len(rs.Interactions) != 1 {
		t.Fatalf("interactions = %+v", rs.Interactions)
	}
	if got, ok := rs.Gain(model.KindPredator, model.KindGrass); !ok || got != 3 {
		t.Errorf("gain = %d, %v", got, ok)
	}
	if u := rs.Unassigned(); len(u) != 1 || u[0] != model.KindPrey {
		t.Errorf("unassigned = %v, want [prey]", u)
	}
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"unknown section", "screen: {width: 3}", "invalid config"},
		{"unknown density", "population: {grass: lots}", "invalid config"},
		{"bad mode", "rules: {mode: sideways}", "invalid config"},
		{"grass eater", "rules: {interactions: [{eater: grass, eaten: prey, energy_gain: 1}]}", "invalid config"},
		{"zero rows", "world: {rows: 0}", "invalid config"},
		{"negative decay", "rules: {energy: {eater_decay: -1}}", "invalid config"},
		{"wrong type", "world: {rows: many}", "invalid config"},
		{"bad yaml", "world: [", "parsing config file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestRecomputeValidatesRules(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Rules.MaxAge = 0
	if err := cfg.Recompute(); !errors.Is(err, rules.ErrInvalidRules) {
		t.Errorf("err = %v, want ErrInvalidRules", err)
	}

	cfg.Rules.MaxAge = 40
	cfg.World.Cols = -2
	if err := cfg.Recompute(); !errors.Is(err, model.ErrInvalidDimensions) {
		t.Errorf("err = %v, want ErrInvalidDimensions", err)
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	rs := rules.Inverted()
	rs.Regrowth.GrassPerRegrowth = 3
	if err := cfg.SetRuleSet(rs); err != nil {
		t.Fatalf("SetRuleSet: %v", err)
	}

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}
	back, err := Load(path)
	if err != nil {
		t.Fatalf("Load written config: %v", err)
	}
	got := back.RuleSet()
	if got.Mode != rules.ModeInverted || got.Regrowth.GrassPerRegrowth != 3 {
		t.Errorf("round trip lost rules: %+v", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want not-exist", err)
	}
}

func TestCfgAfterInit(t *testing.T) {
	MustInit("")
	if Cfg().World.Seed != 42 {
		t.Errorf("seed = %d", Cfg().World.Seed)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	cfg, err := Parse([]byte("rules:\n  mode: inverted\n  reproduction:\n    min_age:\n      prey: 3\n"))
	if err != nil {
		t.Fatal(err)
	}
	clone, err := cfg.Clone()
	if err != nil {
		t.Fatalf("Clone: %v", err)
	}
	if clone.Derived.Mode != rules.ModeInverted || clone.RuleSet().Reproduction.MinAge[model.KindPrey] != 3 {
		t.Fatalf("clone rules = %+v", clone.RuleSet())
	}

	clone.Rules.Reproduction.MinAge["prey"] = 9
	clone.World.Rows = 5
	if cfg.Rules.Reproduction.MinAge["prey"] != 3 || cfg.World.Rows != 20 {
		t.Error("mutating the clone changed the original")
	}
}

func TestParseMinAgeReplacesDefaults(t *testing.T) {
	cfg, err := Parse([]byte("rules:\n  reproduction:\n    min_age:\n      prey: 3\n"))
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := cfg.Rules.Reproduction.MinAge["predator"]; ok {
		t.Errorf("min_age = %v, want only prey", cfg.Rules.Reproduction.MinAge)
	}
	tbl := cfg.RuleSet().Compile()
	if !tbl.CanReproduce(model.KindPrey, 100, 3) {
		t.Error("prey at age 3 should breed")
	}
	if tbl.CanReproduce(model.KindPredator, 100, 1000) {
		t.Error("predator without a min age should never breed")
	}

	// A document that leaves min_age out keeps the defaults.
	cfg, err = Parse([]byte("world:\n  rows: 8\n"))
	if err != nil {
		t.Fatal(err)
	}
	if got := cfg.Rules.Reproduction.MinAge; got["prey"] != 6 || got["predator"] != 10 {
		t.Errorf("min_age = %v, want defaults", got)
	}
}
