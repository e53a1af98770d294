// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/foodweb/model"
	"github.com/pthm-cable/foodweb/presets"
	"github.com/pthm-cable/foodweb/rules"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	World      WorldConfig      `yaml:"world"`
	Population PopulationConfig `yaml:"population"`
	Rules      RulesConfig      `yaml:"rules"`
	Session    SessionConfig    `yaml:"session"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
	Bookmarks  BookmarksConfig  `yaml:"bookmarks"`
	HallOfFame HallOfFameConfig `yaml:"hall_of_fame"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// WorldConfig holds grid dimensions and the session seed.
type WorldConfig struct {
	Rows int   `yaml:"rows"`
	Cols int   `yaml:"cols"`
	Seed int64 `yaml:"seed"`
}

// PopulationConfig holds density levels for the founding population.
type PopulationConfig struct {
	Grass    string `yaml:"grass"`    // low, medium or high
	Prey     string `yaml:"prey"`     // scales the grass count by 1/4
	Predator string `yaml:"predator"` // scales the grass count by 1/8
}

// RulesConfig selects a rule preset and overrides its numbers.
type RulesConfig struct {
	Mode         string              `yaml:"mode"`
	Interactions []InteractionConfig `yaml:"interactions"` // empty: the mode's food chain
	Energy       EnergyConfig        `yaml:"energy"`
	Reproduction ReproductionConfig  `yaml:"reproduction"`
	Regrowth     RegrowthConfig      `yaml:"regrowth"`
	MaxAge       int                 `yaml:"max_age"`
}

// InteractionConfig is one custom eater/eaten pair.
type InteractionConfig struct {
	Eater      string `yaml:"eater"`
	Eaten      string `yaml:"eaten"`
	EnergyGain int    `yaml:"energy_gain"`
}

// EnergyConfig holds offspring energy and per-tick decay by role.
type EnergyConfig struct {
	EaterInitial  int `yaml:"eater_initial"`
	VictimInitial int `yaml:"victim_initial"`
	EaterDecay    int `yaml:"eater_decay"`
	VictimDecay   int `yaml:"victim_decay"`
}

// ReproductionConfig holds breeding thresholds by role.
type ReproductionConfig struct {
	EaterMinEnergy   int            `yaml:"eater_min_energy"`
	VictimMinEnergy  int            `yaml:"victim_min_energy"`
	EaterEnergyCost  int            `yaml:"eater_energy_cost"`
	VictimEnergyCost int            `yaml:"victim_energy_cost"`
	MinAge           map[string]int `yaml:"min_age"` // kind name -> ticks
}

// RegrowthConfig holds the grass regrowth cadence.
type RegrowthConfig struct {
	TicksBetween     int `yaml:"ticks_between"`
	GrassPerRegrowth int `yaml:"grass_per_regrowth"`
}

// SessionConfig holds driver settings.
type SessionConfig struct {
	TickIntervalMS int   `yaml:"tick_interval_ms"`
	MaxTicks       int64 `yaml:"max_ticks"`        // 0 = unlimited
	StopOnCollapse bool  `yaml:"stop_on_collapse"` // halt once no animals remain
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         int  `yaml:"stats_window"` // ticks per window
	BookmarkHistorySize int  `yaml:"bookmark_history_size"`
	PerfCollectorWindow int  `yaml:"perf_collector_window"`
	EventLog            bool `yaml:"event_log"`
}

// BookmarksConfig holds bookmark detection thresholds.
type BookmarksConfig struct {
	PreyCrash        PreyCrashConfig        `yaml:"prey_crash"`
	PredatorRecovery PredatorRecoveryConfig `yaml:"predator_recovery"`
	StableEcosystem  StableEcosystemConfig  `yaml:"stable_ecosystem"`
}

// PreyCrashConfig holds prey crash detection parameters.
type PreyCrashConfig struct {
	DropPercent float64 `yaml:"drop_percent"`
	MinPeak     int     `yaml:"min_peak"`
}

// PredatorRecoveryConfig holds predator recovery detection parameters.
type PredatorRecoveryConfig struct {
	Multiplier   float64 `yaml:"multiplier"`
	MinPredators int     `yaml:"min_predators"`
}

// StableEcosystemConfig holds stable ecosystem detection parameters.
type StableEcosystemConfig struct {
	CVThreshold   float64 `yaml:"cv_threshold"`
	StableWindows int     `yaml:"stable_windows"`
}

// HallOfFameConfig holds settings for ranking departed animals.
type HallOfFameConfig struct {
	Size    int                     `yaml:"size"` // entries kept per kind
	Fitness HallOfFameFitnessConfig `yaml:"fitness"`
	Entry   HallOfFameEntryConfig   `yaml:"entry"`
}

// HallOfFameFitnessConfig holds fitness calculation weights.
type HallOfFameFitnessConfig struct {
	ChildrenWeight float64 `yaml:"children_weight"`
	KillsWeight    float64 `yaml:"kills_weight"`
	SurvivalWeight float64 `yaml:"survival_weight"` // per tick lived
}

// HallOfFameEntryConfig holds entry criteria thresholds.
type HallOfFameEntryConfig struct {
	MinChildren int `yaml:"min_children"`
	MinLifespan int `yaml:"min_lifespan"` // ticks
	MinKills    int `yaml:"min_kills"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Mode         rules.Mode
	RuleSet      rules.RuleSet
	Densities    presets.Densities
	TickInterval time.Duration
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	var data []byte
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}
	return Parse(data)
}

// Parse merges a YAML document over the embedded defaults. An empty
// document yields the defaults.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if len(data) > 0 {
		if err := validateDocument(data); err != nil {
			return nil, err
		}
		if err := resetReplacedMaps(data, cfg); err != nil {
			return nil, err
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Recompute(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resetReplacedMaps clears default maps the document sets itself. yaml.v3
// decodes into an existing map by merging keys, so without this a file
// could add a min_age entry but never drop one.
func resetReplacedMaps(data []byte, cfg *Config) error {
	var doc struct {
		Rules struct {
			Reproduction struct {
				MinAge map[string]int `yaml:"min_age"`
			} `yaml:"reproduction"`
		} `yaml:"rules"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}
	if doc.Rules.Reproduction.MinAge != nil {
		cfg.Rules.Reproduction.MinAge = nil
	}
	return nil
}

// Recompute refreshes Derived. Call it after changing fields by hand, for
// example from command-line flags.
func (c *Config) Recompute() error {
	mode, err := rules.ParseMode(c.Rules.Mode)
	if err != nil {
		return fmt.Errorf("rules.mode: %w", err)
	}
	rs, err := c.buildRuleSet(mode)
	if err != nil {
		return err
	}
	if err := rs.Validate(); err != nil {
		return fmt.Errorf("rules: %w", err)
	}
	for _, k := range rs.Unassigned() {
		slog.Warn("kind has no role and will never decay or reproduce", "kind", k)
	}

	var d presets.Densities
	for _, f := range []struct {
		name string
		in   string
		out  *presets.Density
	}{
		{"grass", c.Population.Grass, &d.Grass},
		{"prey", c.Population.Prey, &d.Prey},
		{"predator", c.Population.Predator, &d.Predator},
	} {
		if *f.out, err = presets.ParseDensity(f.in); err != nil {
			return fmt.Errorf("population.%s: %w", f.name, err)
		}
	}

	if c.World.Rows <= 0 || c.World.Cols <= 0 {
		return fmt.Errorf("world: %dx%d: %w", c.World.Rows, c.World.Cols, model.ErrInvalidDimensions)
	}

	c.Derived = DerivedConfig{
		Mode:         mode,
		RuleSet:      rs,
		Densities:    d,
		TickInterval: time.Duration(c.Session.TickIntervalMS) * time.Millisecond,
	}
	return nil
}

func (c *Config) buildRuleSet(mode rules.Mode) (rules.RuleSet, error) {
	rs := rules.Preset(mode)

	if len(c.Rules.Interactions) > 0 {
		rs.Interactions = make([]rules.Interaction, 0, len(c.Rules.Interactions))
		for i, ic := range c.Rules.Interactions {
			eater, err := model.ParseKind(ic.Eater)
			if err != nil {
				return rs, fmt.Errorf("rules.interactions[%d].eater: %w", i, err)
			}
			eaten, err := model.ParseKind(ic.Eaten)
			if err != nil {
				return rs, fmt.Errorf("rules.interactions[%d].eaten: %w", i, err)
			}
			rs.Interactions = append(rs.Interactions, rules.Interaction{
				Eater:      eater,
				Eaten:      eaten,
				EnergyGain: ic.EnergyGain,
			})
		}
	}

	rs.Energy = rules.EnergyRules{
		EaterInitial:  c.Rules.Energy.EaterInitial,
		VictimInitial: c.Rules.Energy.VictimInitial,
		EaterDecay:    c.Rules.Energy.EaterDecay,
		VictimDecay:   c.Rules.Energy.VictimDecay,
	}

	minAge := make(map[model.Kind]int, len(c.Rules.Reproduction.MinAge))
	for name, age := range c.Rules.Reproduction.MinAge {
		k, err := model.ParseKind(name)
		if err != nil {
			return rs, fmt.Errorf("rules.reproduction.min_age: %w", err)
		}
		minAge[k] = age
	}
	rs.Reproduction = rules.ReproductionRules{
		EaterMinEnergy:   c.Rules.Reproduction.EaterMinEnergy,
		VictimMinEnergy:  c.Rules.Reproduction.VictimMinEnergy,
		EaterEnergyCost:  c.Rules.Reproduction.EaterEnergyCost,
		VictimEnergyCost: c.Rules.Reproduction.VictimEnergyCost,
		MinAge:           minAge,
	}
	rs.Regrowth = rules.RegrowthRules{
		TicksBetween:     c.Rules.Regrowth.TicksBetween,
		GrassPerRegrowth: c.Rules.Regrowth.GrassPerRegrowth,
	}
	rs.MaxAge = c.Rules.MaxAge
	return rs, nil
}

// RuleSet returns the rule set the configuration describes.
func (c *Config) RuleSet() rules.RuleSet {
	return c.Derived.RuleSet
}

// Densities returns the founding population levels.
func (c *Config) Densities() presets.Densities {
	return c.Derived.Densities
}

// SetRuleSet writes rs back into the Rules section so WriteYAML reproduces it.
func (c *Config) SetRuleSet(rs rules.RuleSet) error {
	c.Rules.Mode = rs.Mode.String()
	c.Rules.Interactions = c.Rules.Interactions[:0]
	for _, in := range rs.Interactions {
		c.Rules.Interactions = append(c.Rules.Interactions, InteractionConfig{
			Eater:      in.Eater.String(),
			Eaten:      in.Eaten.String(),
			EnergyGain: in.EnergyGain,
		})
	}
	c.Rules.Energy = EnergyConfig(rs.Energy)
	c.Rules.Reproduction = ReproductionConfig{
		EaterMinEnergy:   rs.Reproduction.EaterMinEnergy,
		VictimMinEnergy:  rs.Reproduction.VictimMinEnergy,
		EaterEnergyCost:  rs.Reproduction.EaterEnergyCost,
		VictimEnergyCost: rs.Reproduction.VictimEnergyCost,
		MinAge:           make(map[string]int, len(rs.Reproduction.MinAge)),
	}
	for k, age := range rs.Reproduction.MinAge {
		c.Rules.Reproduction.MinAge[k.String()] = age
	}
	c.Rules.Regrowth = RegrowthConfig(rs.Regrowth)
	c.Rules.MaxAge = rs.MaxAge
	return c.Recompute()
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// Clone returns an independent copy of c by round-tripping it through YAML.
func (c *Config) Clone() (*Config, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	return Parse(data)
}
