package game

import (
	"log/slog"
	"sort"

	"github.com/pthm-cable/critters/config"
	"github.com/pthm-cable/critters/telemetry"
)

// telemetryState bundles the collectors fed by simulation events.
type telemetryState struct {
	collector *telemetry.Collector
	lifetime  *telemetry.LifetimeTracker
	bookmarks *telemetry.BookmarkDetector
	output    *telemetry.OutputManager
	logStats  bool
	callback  func(telemetry.WindowStats, []telemetry.SpeciesStats)

	// every species that ever had an animal, so extinctions keep a row
	seen map[string]struct{}
}

func newTelemetryState(cfg *config.Config, opts Options) *telemetryState {
	return &telemetryState{
		collector: telemetry.NewCollector(cfg.Telemetry.StatsWindow),
		lifetime:  telemetry.NewLifetimeTracker(),
		bookmarks: telemetry.NewBookmarkDetector(cfg.Telemetry.BookmarkHistorySize, cfg.Bookmarks),
		output:    opts.Output,
		logStats:  opts.LogStats,
		callback:  opts.StatsCallback,
		seen:      make(map[string]struct{}),
	}
}

// emit records an event when telemetry is enabled.
func (s *Simulator) emit(ev telemetry.Event) {
	if s.telemetry == nil {
		return
	}
	s.telemetry.collector.Record(ev)
	s.telemetry.lifetime.Record(ev)
}

// Lifetime returns the lifetime tracker, or nil when telemetry is disabled.
func (s *Simulator) Lifetime() *telemetry.LifetimeTracker {
	if s.telemetry == nil {
		return nil
	}
	return s.telemetry.lifetime
}

// flushTelemetry checks if the stats window should be flushed and handles bookmarks.
func (s *Simulator) flushTelemetry() {
	t := s.telemetry
	if t == nil || !t.collector.ShouldFlush(s.tick) {
		return
	}

	stats, species := t.collector.Flush(s.tick, s.sample())
	perfStats := s.perf.Stats()

	if t.callback != nil {
		t.callback(stats, species)
	}

	if t.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if t.output != nil {
		if err := t.output.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := t.output.WritePopulation(species); err != nil {
			slog.Error("failed to write population", "error", err)
		}
		if err := t.output.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}

	for _, bm := range t.bookmarks.Check(stats, species) {
		if t.logStats {
			bm.LogBookmark()
		}
		if t.output != nil {
			if err := t.output.WriteBookmark(bm); err != nil {
				slog.Error("failed to write bookmark", "error", err)
			}
		}
	}
}

// sample gathers the per-window world state for the collector.
func (s *Simulator) sample() telemetry.Sample {
	var out telemetry.Sample
	bySpecies := make(map[string]*telemetry.SpeciesSample)

	for _, a := range s.animals {
		name := a.Species()
		sp := bySpecies[name]
		if sp == nil {
			sp = &telemetry.SpeciesSample{Name: name}
			bySpecies[name] = sp
		}

		if a.Dead() {
			sp.Dead++
			continue
		}
		sp.Alive++

		gen := float64(a.Generation())
		sp.Generations = append(sp.Generations, gen)
		out.Generations = append(out.Generations, gen)

		if maxFullness := a.MaxFullness(); maxFullness > 0 {
			out.Fullness = append(out.Fullness, float64(a.Fullness())/float64(maxFullness))
		}
		out.Speeds = append(out.Speeds, float64(a.Speed()))
		out.Detections = append(out.Detections, float64(a.Detection()))
		out.Attacks = append(out.Attacks, float64(a.AttackPower()))

		if a.Herbivore() {
			out.Herbivores++
		}
		if a.Carnivore() {
			out.Carnivores++
		}
	}

	for name := range s.telemetry.seen {
		if bySpecies[name] == nil {
			bySpecies[name] = &telemetry.SpeciesSample{Name: name}
		}
	}
	for _, sp := range bySpecies {
		out.Species = append(out.Species, *sp)
	}
	sort.Slice(out.Species, func(i, j int) bool { return out.Species[i].Name < out.Species[j].Name })

	out.GrassPatches = len(s.grass)
	for _, e := range s.grass {
		out.GrassAmount += s.patchMap.Get(e).Amount
	}
	return out
}
