package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/pthm-cable/foodweb/config"
	"github.com/pthm-cable/foodweb/model"
)

// HallEntry is a departed animal that did well.
type HallEntry struct {
	EntityID   int     `json:"entity_id"`
	ParentID   int     `json:"parent_id"`
	Fitness    float64 `json:"fitness"`
	Children   int     `json:"children"`
	Kills      int     `json:"kills"`
	Lifespan   int64   `json:"lifespan"`
	PeakEnergy int     `json:"peak_energy"`
	BirthTick  int64   `json:"birth_tick"`
}

// HallOfFame keeps the fittest departed animals, one ranked hall per kind.
type HallOfFame struct {
	halls   [len(model.Kinds)][]HallEntry
	maxSize int
	cfg     config.HallOfFameConfig
}

// NewHallOfFame creates a hall of fame. A size of 0 disables it.
func NewHallOfFame(cfg config.HallOfFameConfig) *HallOfFame {
	return &HallOfFame{maxSize: cfg.Size, cfg: cfg}
}

// Consider evaluates a departed animal for hall of fame entry.
// Returns true if the animal was added.
func (hof *HallOfFame) Consider(id int, stats *LifetimeStats) bool {
	if hof == nil || hof.maxSize <= 0 || stats == nil || !stats.Kind.Valid() {
		return false
	}
	if !hof.meetsEntryCriteria(stats) {
		return false
	}

	entry := HallEntry{
		EntityID:   id,
		ParentID:   stats.ParentID,
		Fitness:    hof.calculateFitness(stats),
		Children:   stats.Children,
		Kills:      stats.Kills,
		Lifespan:   stats.Lifespan(),
		PeakEnergy: stats.PeakEnergy,
		BirthTick:  stats.BirthTick,
	}

	var added bool
	hof.halls[stats.Kind], added = hof.insertEntry(hof.halls[stats.Kind], entry)
	return added
}

// meetsEntryCriteria: reproduced, or lived long and hunted.
func (hof *HallOfFame) meetsEntryCriteria(stats *LifetimeStats) bool {
	if stats.Children >= hof.cfg.Entry.MinChildren {
		return true
	}
	return stats.Lifespan() >= int64(hof.cfg.Entry.MinLifespan) && stats.Kills >= hof.cfg.Entry.MinKills
}

func (hof *HallOfFame) calculateFitness(stats *LifetimeStats) float64 {
	w := hof.cfg.Fitness
	return float64(stats.Children)*w.ChildrenWeight +
		float64(stats.Kills)*w.KillsWeight +
		float64(stats.Lifespan())*w.SurvivalWeight
}

// insertEntry adds an entry to the hall, maintaining sorted order by fitness.
// If the hall is full, the lowest-fitness entry is removed.
func (hof *HallOfFame) insertEntry(hall []HallEntry, entry HallEntry) ([]HallEntry, bool) {
	// Sorted descending; ties keep the earlier entry first.
	idx := sort.Search(len(hall), func(i int) bool {
		return hall[i].Fitness < entry.Fitness
	})

	if len(hall) >= hof.maxSize && idx >= hof.maxSize {
		return hall, false
	}

	hall = append(hall, HallEntry{})
	copy(hall[idx+1:], hall[idx:])
	hall[idx] = entry

	if len(hall) > hof.maxSize {
		hall = hall[:hof.maxSize]
	}
	return hall, true
}

// Entries returns the hall for kind k, best first.
func (hof *HallOfFame) Entries(k model.Kind) []HallEntry {
	if hof == nil || !k.Valid() {
		return nil
	}
	return hof.halls[k]
}

// TopFitness returns the highest fitness in the hall for kind k.
// Returns 0 if the hall is empty.
func (hof *HallOfFame) TopFitness(k model.Kind) float64 {
	hall := hof.Entries(k)
	if len(hall) == 0 {
		return 0
	}
	return hall[0].Fitness
}

// MarshalJSON serializes the hall of fame keyed by kind name.
func (hof *HallOfFame) MarshalJSON() ([]byte, error) {
	export := make(map[string][]HallEntry)
	for _, k := range model.Kinds {
		if k == model.KindGrass {
			continue
		}
		entries := hof.halls[k]
		if entries == nil {
			entries = []HallEntry{}
		}
		export[k.String()] = entries
	}
	return json.MarshalIndent(export, "", "  ")
}

// LoadHallOfFameFromFile reads the file OutputManager.Close writes.
func LoadHallOfFameFromFile(path string, cfg config.HallOfFameConfig) (*HallOfFame, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading hall of fame: %w", err)
	}

	var raw map[string][]HallEntry
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing hall of fame JSON: %w", err)
	}

	hof := NewHallOfFame(cfg)
	for name, entries := range raw {
		k, err := model.ParseKind(name)
		if err != nil {
			return nil, fmt.Errorf("hall of fame: %w", err)
		}
		for _, e := range entries {
			hof.halls[k], _ = hof.insertEntry(hof.halls[k], e)
		}
	}
	return hof, nil
}
