package telemetry

import "sort"

// SpeciesSample is one species' population state at flush time.
type SpeciesSample struct {
	Name        string
	Alive       int
	Dead        int
	Generations []float64 // living animals only
}

// Sample is the world state the simulator hands to Flush.
type Sample struct {
	Species []SpeciesSample

	// Living animals only
	Fullness    []float64 // fullness / max fullness
	Generations []float64
	Speeds      []float64
	Detections  []float64
	Attacks     []float64
	Herbivores  int
	Carnivores  int

	GrassPatches int
	GrassAmount  int
}

// Collector accumulates events within tick windows and produces WindowStats.
type Collector struct {
	windowTicks     int
	windowStartTick int

	// Event counters for current window
	births           int
	starvationDeaths int
	killDeaths       int
	attacks          int
	grassBites       int
	grassEaten       int
	carrionMeals     int
	removals         int

	speciesBirths map[string]int
	speciesDeaths map[string]int
}

// NewCollector creates a new stats collector with the given window length.
func NewCollector(windowTicks int) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{
		windowTicks:   windowTicks,
		speciesBirths: make(map[string]int),
		speciesDeaths: make(map[string]int),
	}
}

// Record counts one event in the current window.
func (c *Collector) Record(ev Event) {
	switch ev.Type {
	case EventBirth:
		c.births++
		c.speciesBirths[ev.Species]++
	case EventDeath:
		switch ev.Cause {
		case CauseStarvation:
			c.starvationDeaths++
		case CauseKilled:
			c.killDeaths++
		}
		c.speciesDeaths[ev.Species]++
	case EventAttack:
		c.attacks++
	case EventGrassBite:
		c.grassBites++
		c.grassEaten += ev.Amount
	case EventCarrionMeal:
		c.carrionMeals++
	case EventRemoval:
		c.removals++
	}
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int) bool {
	return currentTick-c.windowStartTick >= c.windowTicks
}

// Flush produces the window's stats and per-species rows, then resets the
// counters for the next window.
func (c *Collector) Flush(currentTick int, s Sample) (WindowStats, []SpeciesStats) {
	fullness := ComputeDistribution(s.Fullness)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,

		Herbivores: s.Herbivores,
		Carnivores: s.Carnivores,

		Births:           c.births,
		StarvationDeaths: c.starvationDeaths,
		KillDeaths:       c.killDeaths,
		Attacks:          c.attacks,
		GrassBites:       c.grassBites,
		GrassEaten:       c.grassEaten,
		CarrionMeals:     c.carrionMeals,
		Removals:         c.removals,

		GrassPatches: s.GrassPatches,
		GrassAmount:  s.GrassAmount,

		FullnessMean: fullness.Mean,
		FullnessStd:  fullness.Std,
		FullnessP10:  fullness.P10,
		FullnessP50:  fullness.P50,
		FullnessP90:  fullness.P90,

		GenerationMean: mean(s.Generations),
		SpeedMean:      mean(s.Speeds),
		DetectionMean:  mean(s.Detections),
		AttackMean:     mean(s.Attacks),
	}
	for _, g := range s.Generations {
		stats.GenerationMax = max(stats.GenerationMax, int(g))
	}

	species := make([]SpeciesStats, 0, len(s.Species))
	for _, sp := range s.Species {
		stats.Alive += sp.Alive
		stats.Corpses += sp.Dead
		if sp.Alive > 0 {
			stats.Species++
		}
		species = append(species, SpeciesStats{
			WindowEndTick:  currentTick,
			Species:        sp.Name,
			Alive:          sp.Alive,
			Dead:           sp.Dead,
			Births:         c.speciesBirths[sp.Name],
			Deaths:         c.speciesDeaths[sp.Name],
			GenerationMean: mean(sp.Generations),
		})
	}
	sort.Slice(species, func(i, j int) bool { return species[i].Species < species[j].Species })

	// Reset for next window
	c.windowStartTick = currentTick
	c.births = 0
	c.starvationDeaths = 0
	c.killDeaths = 0
	c.attacks = 0
	c.grassBites = 0
	c.grassEaten = 0
	c.carrionMeals = 0
	c.removals = 0
	clear(c.speciesBirths)
	clear(c.speciesDeaths)

	return stats, species
}

// WindowTicks returns the number of ticks per window.
func (c *Collector) WindowTicks() int {
	return c.windowTicks
}
