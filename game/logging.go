package game

import (
	"log/slog"
	"sort"
)

// speciesCensus is the head count of one species.
type speciesCensus struct {
	alive, dead   int
	fullnessSum   int
	generationMax int
}

// census counts animals per species.
func (s *Simulator) census() map[string]*speciesCensus {
	out := make(map[string]*speciesCensus)
	for _, a := range s.animals {
		c := out[a.Species()]
		if c == nil {
			c = &speciesCensus{}
			out[a.Species()] = c
		}
		if a.Dead() {
			c.dead++
			continue
		}
		c.alive++
		c.fullnessSum += a.Fullness()
		c.generationMax = max(c.generationMax, a.Generation())
	}
	return out
}

// LogWorldState logs one line per species and a summary of the map.
func (s *Simulator) LogWorldState() {
	counts := s.census()
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		c := counts[name]
		avgFullness := 0
		if c.alive > 0 {
			avgFullness = c.fullnessSum / c.alive
		}
		slog.Info("species_state",
			"tick", s.tick,
			"species", name,
			"alive", c.alive,
			"dead", c.dead,
			"avg_fullness", avgFullness,
			"max_generation", c.generationMax,
		)
	}

	grassAmount := 0
	for _, e := range s.grass {
		grassAmount += s.patchMap.Get(e).Amount
	}
	slog.Info("world_state",
		"tick", s.tick,
		"animals", len(s.animals),
		"grass_patches", len(s.grass),
		"grass_amount", grassAmount,
		"rivers", len(s.rivers),
	)
}
