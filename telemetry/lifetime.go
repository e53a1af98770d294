package telemetry

import "github.com/pthm-cable/foodweb/model"

// LifetimeStats tracks per-animal statistics over its lifetime.
type LifetimeStats struct {
	Kind      model.Kind
	BirthTick int64
	EndTick   int64 // set on removal
	ParentID  int   // 0 for founders

	Kills      int
	Children   int
	PeakEnergy int
}

// Lifespan returns the ticks lived, up to EndTick.
func (s *LifetimeStats) Lifespan() int64 {
	return s.EndTick - s.BirthTick
}

// LifetimeTracker manages per-animal lifetime statistics.
type LifetimeTracker struct {
	stats map[int]*LifetimeStats
}

// NewLifetimeTracker creates a new lifetime tracker.
func NewLifetimeTracker() *LifetimeTracker {
	return &LifetimeTracker{
		stats: make(map[int]*LifetimeStats),
	}
}

// Register starts tracking an animal. Grass is ignored.
func (lt *LifetimeTracker) Register(e model.Entity, birthTick int64, parentID int) {
	if e.Kind == model.KindGrass {
		return
	}
	lt.stats[e.ID] = &LifetimeStats{
		Kind:       e.Kind,
		BirthTick:  birthTick,
		ParentID:   parentID,
		PeakEnergy: e.Energy,
	}
}

// Get returns the lifetime stats for an animal, or nil if not found.
func (lt *LifetimeTracker) Get(id int) *LifetimeStats {
	return lt.stats[id]
}

// Remove stops tracking an animal and returns its final stats.
func (lt *LifetimeTracker) Remove(id int, tick int64) *LifetimeStats {
	s := lt.stats[id]
	if s == nil {
		return nil
	}
	delete(lt.stats, id)
	s.EndTick = tick
	return s
}

// RecordKill increments kill count.
func (lt *LifetimeTracker) RecordKill(id int) {
	if s := lt.stats[id]; s != nil {
		s.Kills++
	}
}

// RecordChild increments children count.
func (lt *LifetimeTracker) RecordChild(parentID int) {
	if s := lt.stats[parentID]; s != nil {
		s.Children++
	}
}

// UpdateEnergy tracks peak energy.
func (lt *LifetimeTracker) UpdateEnergy(id, energy int) {
	if s := lt.stats[id]; s != nil && energy > s.PeakEnergy {
		s.PeakEnergy = energy
	}
}

// Count returns the number of tracked animals.
func (lt *LifetimeTracker) Count() int {
	return len(lt.stats)
}
