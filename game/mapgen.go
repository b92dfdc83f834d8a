package game

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/critters/systems"
)

// PredatorSpecies is the species Populate adds next to the host species.
const PredatorSpecies = "predator"

// Populate generates the starting map: host animals, predators, grass and
// rivers, all at uniformly random positions. Each host species gets the
// full animal count. Predators are skipped when no predator species is
// registered.
func (s *Simulator) Populate(hosts ...string) error {
	derived := s.cfg.Derived

	for _, host := range hosts {
		for i := 0; i < derived.Animals; i++ {
			p := systems.RandomPoint(s.rng, s.cfg)
			if _, err := s.Spawn(host, p.X, p.Y); err != nil {
				return fmt.Errorf("populating %s: %w", host, err)
			}
		}
	}

	if _, err := s.registry.Lookup(PredatorSpecies); err == nil {
		for i := 0; i < derived.Predators; i++ {
			p := systems.RandomPoint(s.rng, s.cfg)
			if _, err := s.Spawn(PredatorSpecies, p.X, p.Y); err != nil {
				return fmt.Errorf("populating predators: %w", err)
			}
		}
	} else {
		slog.Warn("no predator species registered", "species", PredatorSpecies)
	}

	for i := 0; i < derived.Vegetation; i++ {
		p := systems.RandomPoint(s.rng, s.cfg)
		s.AddGrass(p.X, p.Y, systems.InitialGrassAmount(s.rng, s.cfg))
	}

	for _, nodes := range systems.GenerateRiverNodes(s.rng, s.cfg) {
		if _, err := s.AddRiver(nodes...); err != nil {
			return err
		}
	}

	slog.Info("map_generated",
		"seed", s.seed,
		"animals", len(s.animals),
		"grass", len(s.grass),
		"rivers", len(s.rivers),
	)
	return nil
}
