package telemetry

import (
	"log/slog"
	"slices"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a window of ticks.
type WindowStats struct {
	WindowStartTick int64  `csv:"-"`
	WindowEndTick   int64  `csv:"window_end"`
	Status          string `csv:"status"`

	// Population counts at window end
	GrassCount int `csv:"grass"`
	PreyCount  int `csv:"prey"`
	PredCount  int `csv:"pred"`

	// Events during window
	PreyBirths   int `csv:"prey_births"`
	PredBirths   int `csv:"pred_births"`
	PreyStarved  int `csv:"prey_starved"`
	PredStarved  int `csv:"pred_starved"`
	PreyOldAge   int `csv:"prey_old_age"`
	PredOldAge   int `csv:"pred_old_age"`
	GrassEaten   int `csv:"grass_eaten"`
	PreyEaten    int `csv:"prey_eaten"`
	PredEaten    int `csv:"pred_eaten"`
	GrassRegrown int `csv:"grass_regrown"`
	Moves        int `csv:"moves"`

	// Energy distribution (sampled at window end)
	PreyEnergyMean float64 `csv:"prey_energy_mean"`
	PreyEnergyP10  float64 `csv:"prey_energy_p10"`
	PreyEnergyP50  float64 `csv:"prey_energy_p50"`
	PreyEnergyP90  float64 `csv:"prey_energy_p90"`

	PredEnergyMean float64 `csv:"pred_energy_mean"`
	PredEnergyP10  float64 `csv:"pred_energy_p10"`
	PredEnergyP50  float64 `csv:"pred_energy_p50"`
	PredEnergyP90  float64 `csv:"pred_energy_p90"`

	// Lifespans of animals that left the world during the window
	PreyLifespanMean float64 `csv:"prey_lifespan_mean"`
	PredLifespanMean float64 `csv:"pred_lifespan_mean"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeEnergyStats calculates mean and percentiles from energy values.
func ComputeEnergyStats(values []float64) (mean, p10, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0
	}
	mean = meanOf(values)

	sorted := slices.Clone(values)
	slices.Sort(sorted)
	return mean, Percentile(sorted, 0.10), Percentile(sorted, 0.50), Percentile(sorted, 0.90)
}

// meanOf is stat.Mean with 0 for no samples.
func meanOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return stat.Mean(values, nil)
}

// CoefficientOfVariation returns stddev/mean of values, or 0 when the mean is 0
// or there are fewer than two samples.
func CoefficientOfVariation(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	mean, std := stat.PopMeanStdDev(values, nil)
	if mean == 0 {
		return 0
	}
	return std / mean
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("window_start", s.WindowStartTick),
		slog.Int64("window_end", s.WindowEndTick),
		slog.String("status", s.Status),
		slog.Int("grass", s.GrassCount),
		slog.Int("prey", s.PreyCount),
		slog.Int("pred", s.PredCount),
		slog.Int("prey_births", s.PreyBirths),
		slog.Int("pred_births", s.PredBirths),
		slog.Int("prey_starved", s.PreyStarved),
		slog.Int("pred_starved", s.PredStarved),
		slog.Int("prey_old_age", s.PreyOldAge),
		slog.Int("pred_old_age", s.PredOldAge),
		slog.Int("grass_eaten", s.GrassEaten),
		slog.Int("prey_eaten", s.PreyEaten),
		slog.Int("pred_eaten", s.PredEaten),
		slog.Int("grass_regrown", s.GrassRegrown),
		slog.Int("moves", s.Moves),
		slog.Float64("prey_energy_mean", s.PreyEnergyMean),
		slog.Float64("prey_energy_p50", s.PreyEnergyP50),
		slog.Float64("pred_energy_mean", s.PredEnergyMean),
		slog.Float64("pred_energy_p50", s.PredEnergyP50),
		slog.Float64("prey_lifespan_mean", s.PreyLifespanMean),
		slog.Float64("pred_lifespan_mean", s.PredLifespanMean),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
