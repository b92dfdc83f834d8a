package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a window of ticks.
type WindowStats struct {
	WindowStartTick int `csv:"-"`
	WindowEndTick   int `csv:"window_end"`

	// Population at window end
	Alive      int `csv:"alive"`
	Corpses    int `csv:"corpses"`
	Herbivores int `csv:"herbivores"`
	Carnivores int `csv:"carnivores"`
	Species    int `csv:"species"` // species with at least one living animal

	// Events during window
	Births           int `csv:"births"`
	StarvationDeaths int `csv:"starvation_deaths"`
	KillDeaths       int `csv:"kill_deaths"`
	Attacks          int `csv:"attacks"`
	GrassBites       int `csv:"grass_bites"`
	GrassEaten       int `csv:"grass_eaten"`
	CarrionMeals     int `csv:"carrion_meals"`
	Removals         int `csv:"removals"`

	// Vegetation at window end
	GrassPatches int `csv:"grass_patches"`
	GrassAmount  int `csv:"grass_amount"`

	// Fullness as a fraction of max fullness, living animals only
	FullnessMean float64 `csv:"fullness_mean"`
	FullnessStd  float64 `csv:"fullness_std"`
	FullnessP10  float64 `csv:"fullness_p10"`
	FullnessP50  float64 `csv:"fullness_p50"`
	FullnessP90  float64 `csv:"fullness_p90"`

	// Evolution
	GenerationMean float64 `csv:"generation_mean"`
	GenerationMax  int     `csv:"generation_max"`
	SpeedMean      float64 `csv:"speed_mean"`
	DetectionMean  float64 `csv:"detection_mean"`
	AttackMean     float64 `csv:"attack_mean"`
}

// SpeciesStats holds one species' row for a window.
type SpeciesStats struct {
	WindowEndTick  int     `csv:"window_end"`
	Species        string  `csv:"species"`
	Alive          int     `csv:"alive"`
	Dead           int     `csv:"dead"`
	Births         int     `csv:"births"`
	Deaths         int     `csv:"deaths"`
	GenerationMean float64 `csv:"generation_mean"`
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

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// Distribution summarizes a sample.
type Distribution struct {
	Mean, Std     float64
	P10, P50, P90 float64
}

// ComputeDistribution calculates mean, population standard deviation and
// percentiles. An empty sample yields all zeros.
func ComputeDistribution(values []float64) Distribution {
	if len(values) == 0 {
		return Distribution{}
	}

	mean, std := stat.PopMeanStdDev(values, nil)

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	return Distribution{
		Mean: mean,
		Std:  std,
		P10:  Percentile(sorted, 0.10),
		P50:  Percentile(sorted, 0.50),
		P90:  Percentile(sorted, 0.90),
	}
}

// mean returns the arithmetic mean, or 0 for an empty sample.
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return stat.Mean(values, nil)
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", s.WindowStartTick),
		slog.Int("window_end", s.WindowEndTick),
		slog.Int("alive", s.Alive),
		slog.Int("corpses", s.Corpses),
		slog.Int("herbivores", s.Herbivores),
		slog.Int("carnivores", s.Carnivores),
		slog.Int("species", s.Species),
		slog.Int("births", s.Births),
		slog.Int("starvation_deaths", s.StarvationDeaths),
		slog.Int("kill_deaths", s.KillDeaths),
		slog.Int("attacks", s.Attacks),
		slog.Int("grass_bites", s.GrassBites),
		slog.Int("grass_eaten", s.GrassEaten),
		slog.Int("carrion_meals", s.CarrionMeals),
		slog.Int("removals", s.Removals),
		slog.Int("grass_patches", s.GrassPatches),
		slog.Int("grass_amount", s.GrassAmount),
		slog.Float64("fullness_mean", s.FullnessMean),
		slog.Float64("fullness_std", s.FullnessStd),
		slog.Float64("fullness_p10", s.FullnessP10),
		slog.Float64("fullness_p50", s.FullnessP50),
		slog.Float64("fullness_p90", s.FullnessP90),
		slog.Float64("generation_mean", s.GenerationMean),
		slog.Int("generation_max", s.GenerationMax),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("detection_mean", s.DetectionMean),
		slog.Float64("attack_mean", s.AttackMean),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"alive", s.Alive,
		"corpses", s.Corpses,
		"herbivores", s.Herbivores,
		"carnivores", s.Carnivores,
		"species", s.Species,
		"births", s.Births,
		"starvation_deaths", s.StarvationDeaths,
		"kill_deaths", s.KillDeaths,
		"grass_bites", s.GrassBites,
		"carrion_meals", s.CarrionMeals,
		"grass_patches", s.GrassPatches,
		"grass_amount", s.GrassAmount,
		"fullness_mean", s.FullnessMean,
		"generation_mean", s.GenerationMean,
		"generation_max", s.GenerationMax,
	)
}
