package main

import (
	"log/slog"
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/critters/config"
	"github.com/pthm-cable/critters/game"
	"github.com/pthm-cable/critters/species"
	"github.com/pthm-cable/critters/telemetry"
)

// A species that stays below minViablePop for extinctionGraceTicks in a row
// counts as extinct.
const (
	minViablePop         = 3
	extinctionGraceTicks = 300
)

// FitnessEvaluator runs headless simulations and scores how long the host
// species and the predators coexist.
type FitnessEvaluator struct {
	params   *ParamVector
	host     string
	maxTicks int
	seeds    []int64
	base     *config.Config

	mu          sync.Mutex
	lastQuality float64
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, host string, maxTicks int, seeds []int64, base *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:   params,
		host:     host,
		maxTicks: maxTicks,
		seeds:    seeds,
		base:     base,
	}
}

// LastQuality returns the quality score from the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastQuality
}

// runResult holds the results from a single simulation run.
type runResult struct {
	survivalTicks int
	windows       []window
}

// window is one stats window reduced to what quality needs.
type window struct {
	stats     telemetry.WindowStats
	hosts     int
	predators int
}

// Evaluate computes fitness for raw parameter values (lower = better).
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	fitness := make([]float64, len(fe.seeds))
	quality := make([]float64, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			result, err := fe.runSimulation(x, s)
			if err != nil {
				slog.Warn("evaluation_failed", "seed", s, "error", err)
				return
			}
			quality[idx] = computeQuality(result.windows)
			fitness[idx] = -(float64(result.survivalTicks) * (1.0 + 0.2*quality[idx]))
		}(i, seed)
	}
	wg.Wait()

	fe.mu.Lock()
	fe.lastQuality = stat.Mean(quality, nil)
	fe.mu.Unlock()

	return stat.Mean(fitness, nil)
}

// runSimulation executes one headless run until either side is extinct or
// maxTicks is reached.
func (fe *FitnessEvaluator) runSimulation(x []float64, seed int64) (*runResult, error) {
	cfg := fe.copyConfig()
	if err := fe.params.ApplyToConfig(cfg, x); err != nil {
		return nil, err
	}

	reg := game.NewRegistry()
	if err := species.Register(reg); err != nil {
		return nil, err
	}

	result := &runResult{}
	sim := game.New(cfg, reg, game.Options{
		Seed:      seed,
		Telemetry: true,
		StatsCallback: func(ws telemetry.WindowStats, rows []telemetry.SpeciesStats) {
			w := window{stats: ws}
			for _, r := range rows {
				switch r.Species {
				case fe.host:
					w.hosts = r.Alive
				case species.Predator:
					w.predators = r.Alive
				}
			}
			result.windows = append(result.windows, w)
		},
	})
	defer sim.Close()

	if err := sim.Populate(fe.host); err != nil {
		return nil, err
	}

	var hostsBelow, predsBelow int
	for sim.Tick() < fe.maxTicks {
		sim.NextTick()

		hosts := sim.CountAlive(fe.host)
		preds := sim.CountAlive(species.Predator)
		if hosts == 0 || preds == 0 {
			break
		}

		hostsBelow = below(hosts, hostsBelow)
		predsBelow = below(preds, predsBelow)
		if hostsBelow >= extinctionGraceTicks || predsBelow >= extinctionGraceTicks {
			break
		}
	}

	result.survivalTicks = sim.Tick()
	return result, nil
}

func below(pop, streak int) int {
	if pop < minViablePop {
		return streak + 1
	}
	return 0
}

// copyConfig returns an independent copy of the base config.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.base
	return &cfg
}

// Quality component weights.
const (
	qualityWeightRatio     = 0.35
	qualityWeightStability = 0.35
	qualityWeightFullness  = 0.30

	qualityWarmupWindows = 1
)

// computeQuality scores an ecosystem in [0, 1]: a few hosts per predator,
// steady populations and animals that are neither starving nor gorged.
func computeQuality(windows []window) float64 {
	if len(windows) <= qualityWarmupWindows {
		return 0
	}

	var ratioSum, fullnessSum float64
	hosts := make([]float64, 0, len(windows))
	preds := make([]float64, 0, len(windows))

	for _, w := range windows[qualityWarmupWindows:] {
		if w.hosts < minViablePop || w.predators < minViablePop {
			continue
		}
		hosts = append(hosts, float64(w.hosts))
		preds = append(preds, float64(w.predators))

		logErr := math.Log(float64(w.hosts) / float64(w.predators) / 4.0)
		ratioSum += math.Exp(-logErr * logErr)

		fullnessSum += math.Exp(-math.Pow((w.stats.FullnessP50-0.6)/0.2, 2))
	}

	n := float64(len(hosts))
	if n == 0 {
		return 0
	}

	stability := 0.0
	if n >= 2 {
		cvHosts, cvPreds := cv(hosts), cv(preds)
		stability = math.Exp(-(cvHosts*cvHosts + cvPreds*cvPreds))
	}

	q := qualityWeightRatio*ratioSum/n +
		qualityWeightStability*stability +
		qualityWeightFullness*fullnessSum/n
	return min(max(q, 0), 1)
}

// cv is the coefficient of variation of values.
func cv(values []float64) float64 {
	mean, std := stat.PopMeanStdDev(values, nil)
	if mean == 0 {
		return 0
	}
	return std / mean
}
