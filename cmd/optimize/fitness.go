package main

import (
	"log/slog"
	"math"
	"sync"

	"github.com/pthm-cable/foodweb/config"
	"github.com/pthm-cable/foodweb/game"
	"github.com/pthm-cable/foodweb/model"
	"github.com/pthm-cable/foodweb/rules"
	"github.com/pthm-cable/foodweb/telemetry"
)

// FitnessEvaluator runs headless simulations and computes fitness.
type FitnessEvaluator struct {
	params      *ParamVector
	maxTicks    int64
	seeds       []int64
	baseConfig  *config.Config
	statsWindow int

	// Best run tracking
	mu             sync.Mutex
	bestFitness    float64
	bestHallOfFame *telemetry.HallOfFame
	lastQuality    float64 // quality from most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int64, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		maxTicks:    maxTicks,
		seeds:       seeds,
		baseConfig:  baseCfg,
		statsWindow: 25,
		bestFitness: math.Inf(1),
	}
}

// BestHallOfFame returns the hall of fame from the best evaluation.
func (fe *FitnessEvaluator) BestHallOfFame() *telemetry.HallOfFame {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.bestHallOfFame
}

// LastQuality returns the quality score from the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastQuality
}

// Minimum viable population: if either animal kind stays below this for
// extinctionGraceTicks consecutive ticks, it counts as functionally extinct.
const (
	minViablePop         = 2
	extinctionGraceTicks = 30
	warmupTicks          = 10
)

// runResult holds the results from a single simulation run.
type runResult struct {
	survivalTicks int64                   // ticks before functional extinction (or maxTicks if survived)
	windowStats   []telemetry.WindowStats // collected via StatsCallback each window
	hallOfFame    *telemetry.HallOfFame
}

// seedResult holds the result from one seed evaluation.
type seedResult struct {
	fitness    float64
	quality    float64
	hallOfFame *telemetry.HallOfFame
}

// Evaluate computes fitness for a parameter vector (lower = better).
// Fitness is negative survival ticks: longer survival = lower (better) fitness.
// A vector the rules reject scores 0, the worst possible value.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg, err := fe.baseConfig.Clone()
	if err != nil {
		slog.Error("failed to copy config", "error", err)
		return 0
	}
	if err := fe.params.ApplyToConfig(cfg, x); err != nil {
		slog.Warn("rejected parameter vector", "error", err)
		return 0
	}
	rs := cfg.RuleSet()

	// Seeds share cfg read-only, so they can run in parallel.
	results := make([]seedResult, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			result, err := fe.runSimulation(cfg, s)
			if err != nil {
				slog.Error("simulation failed", "seed", s, "error", err)
				return
			}
			quality := computeQuality(result.windowStats, rs)
			results[idx] = seedResult{
				fitness:    computeFitness(result.survivalTicks, quality),
				quality:    quality,
				hallOfFame: result.hallOfFame,
			}
		}(i, seed)
	}
	wg.Wait()

	// Aggregate results
	var totalFitness, totalQuality float64
	bestSeedFitness := math.Inf(1)
	var bestSeedHallOfFame *telemetry.HallOfFame

	for _, r := range results {
		totalFitness += r.fitness
		totalQuality += r.quality
		if r.fitness < bestSeedFitness {
			bestSeedFitness = r.fitness
			bestSeedHallOfFame = r.hallOfFame
		}
	}

	n := float64(len(fe.seeds))
	avgFitness := totalFitness / n

	// Update best tracking
	fe.mu.Lock()
	if avgFitness < fe.bestFitness {
		fe.bestFitness = avgFitness
		fe.bestHallOfFame = bestSeedHallOfFame
	}
	fe.lastQuality = totalQuality / n
	fe.mu.Unlock()

	return avgFitness
}

// runSimulation executes a single headless simulation run.
// Runs until functional extinction or maxTicks, whichever comes first.
func (fe *FitnessEvaluator) runSimulation(cfg *config.Config, seed int64) (*runResult, error) {
	result := &runResult{}

	g, err := game.NewGameWithOptions(game.Options{
		Seed:        seed,
		Config:      cfg,
		StatsWindow: fe.statsWindow,
		MaxTicks:    fe.maxTicks,
		StatsCallback: func(stats telemetry.WindowStats) {
			result.windowStats = append(result.windowStats, stats)
		},
	})
	if err != nil {
		return nil, err
	}
	defer g.Unload()

	var preyBelow, predBelow int64
	for g.Tick() < fe.maxTicks {
		g.Step()

		tick := g.Tick()
		if tick < warmupTicks {
			continue
		}

		prey := g.PreyCount()
		pred := g.PredCount()

		// Hard extinction: either kind completely gone
		if prey == 0 || pred == 0 {
			result.survivalTicks = tick
			result.hallOfFame = g.HallOfFame()
			return result, nil
		}

		// Functional extinction: a kind below minimum viable population too long
		preyBelow = belowCount(preyBelow, prey)
		predBelow = belowCount(predBelow, pred)
		if preyBelow >= extinctionGraceTicks || predBelow >= extinctionGraceTicks {
			result.survivalTicks = tick
			result.hallOfFame = g.HallOfFame()
			return result, nil
		}
	}

	// Survived the full run
	result.survivalTicks = fe.maxTicks
	result.hallOfFame = g.HallOfFame()
	return result, nil
}

func belowCount(run int64, count int) int64 {
	if count < minViablePop {
		return run + 1
	}
	return 0
}

// computeFitness calculates the scalar fitness (lower = better).
// Formula: -(survivalTicks × (1.0 + 0.2 × quality))
// Survival dominates; quality adds up to 20% bonus to differentiate
// configs with similar survival.
func computeFitness(survivalTicks int64, quality float64) float64 {
	return -(float64(survivalTicks) * (1.0 + 0.2*quality))
}

// Quality component weights.
const (
	qualityWeightRatio     = 0.30
	qualityWeightStability = 0.25
	qualityWeightEnergy    = 0.25
	qualityWeightFeeding   = 0.20

	qualityWarmupWindows = 2 // skip first N windows (warmup)
	qualityMinPop        = 2 // exclude windows where either kind < this

	targetPreyPerPredator = 3.0
	targetEnergyFraction  = 0.6 // median energy as a fraction of the breeding threshold
)

// computeQuality computes ecosystem quality ∈ [0, 1] from window stats.
func computeQuality(windows []telemetry.WindowStats, rs rules.RuleSet) float64 {
	if len(windows) <= qualityWarmupWindows {
		return 0
	}

	valid := windows[qualityWarmupWindows:]

	var ratioSum, energySum, feedSum float64
	var count int

	preyCounts := make([]float64, 0, len(valid))
	predCounts := make([]float64, 0, len(valid))

	tbl := rs.Compile()
	preyThreshold := float64(max(1, tbl.ReproductionThreshold(model.KindPrey)))
	predThreshold := float64(max(1, tbl.ReproductionThreshold(model.KindPredator)))

	for _, w := range valid {
		if w.PreyCount < qualityMinPop || w.PredCount < qualityMinPop {
			continue
		}
		count++

		preyCounts = append(preyCounts, float64(w.PreyCount))
		predCounts = append(predCounts, float64(w.PredCount))

		// 1. Population ratio score
		ratio := float64(w.PreyCount) / float64(w.PredCount)
		logErr := math.Log(ratio / targetPreyPerPredator)
		ratioSum += math.Exp(-logErr * logErr)

		// 2. Energy health score
		preyH := math.Exp(-math.Pow((w.PreyEnergyP50/preyThreshold-targetEnergyFraction)/0.3, 2))
		predH := math.Exp(-math.Pow((w.PredEnergyP50/predThreshold-targetEnergyFraction)/0.3, 2))
		energySum += (preyH + predH) / 2.0

		// 3. Feeding activity: animals eaten per live animal
		animals := float64(w.PreyCount + w.PredCount)
		eaten := float64(w.PreyEaten + w.PredEaten)
		feedSum += 1.0 - math.Exp(-eaten/animals)
	}

	// No valid windows → zero quality
	if count == 0 {
		return 0
	}

	// 4. Population stability (CV across all valid windows)
	stabilityScore := 0.0
	if len(preyCounts) >= 2 {
		cvPrey := telemetry.CoefficientOfVariation(preyCounts)
		cvPred := telemetry.CoefficientOfVariation(predCounts)
		stabilityScore = math.Exp(-(cvPrey*cvPrey + cvPred*cvPred))
	}

	n := float64(count)
	quality := qualityWeightRatio*ratioSum/n +
		qualityWeightStability*stabilityScore +
		qualityWeightEnergy*energySum/n +
		qualityWeightFeeding*feedSum/n

	return clamp01(quality)
}

// clamp01 clamps x to [0, 1].
func clamp01(x float64) float64 {
	return max(0, min(1, x))
}
