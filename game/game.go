// Package game runs the simulation: it owns every entity in an ECS world and
// advances them one tick at a time through a fixed phase pipeline.
package game

import (
	"fmt"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/critters/components"
	"github.com/pthm-cable/critters/config"
	"github.com/pthm-cable/critters/geom"
	"github.com/pthm-cable/critters/systems"
	"github.com/pthm-cable/critters/telemetry"
)

// Options configures a simulator beyond the world constants.
type Options struct {
	Seed int64

	// Telemetry enables window stats, lifetime tracking and bookmarks.
	Telemetry bool
	LogStats  bool
	Output    *telemetry.OutputManager // nil disables CSV output

	// StatsCallback, if set, receives every flushed stats window.
	StatsCallback func(telemetry.WindowStats, []telemetry.SpeciesStats)
}

// Simulator holds the complete simulation state.
type Simulator struct {
	cfg      *config.Config
	registry *Registry
	world    *ecs.World
	rng      *rand.Rand
	seed     int64
	bounds   systems.Bounds

	animalMapper *ecs.Map8[
		components.Identity,
		mind,
		components.Position,
		components.Heading,
		components.Traits,
		components.Vitals,
		components.Genome,
		components.Intents,
	]
	grassMapper *ecs.Map2[components.Position, components.Patch]

	// Individual component mappers for lookups
	idMap      *ecs.Map1[components.Identity]
	mindMap    *ecs.Map1[mind]
	posMap     *ecs.Map1[components.Position]
	headingMap *ecs.Map1[components.Heading]
	traitsMap  *ecs.Map1[components.Traits]
	vitalsMap  *ecs.Map1[components.Vitals]
	genomeMap  *ecs.Map1[components.Genome]
	intentsMap *ecs.Map1[components.Intents]
	patchMap   *ecs.Map1[components.Patch]

	flora     *systems.FloraSystem
	detection *detectionPool

	// Live entities in insertion order. Iteration follows this order.
	animals []*Animal
	handles map[ecs.Entity]*Animal
	grass   []ecs.Entity
	rivers  []River
	paths   []geom.Polyline

	// Changes applied at the end of the tick
	newborns []*Animal
	removals []ecs.Entity
	queued   map[ecs.Entity]struct{}

	tick   int
	nextID uint64

	telemetry *telemetryState
	perf      *telemetry.PerfCollector
}

// New creates an empty simulator. The config must not change during the run.
func New(cfg *config.Config, reg *Registry, opts Options) *Simulator {
	world := ecs.NewWorld()

	s := &Simulator{
		cfg:      cfg,
		registry: reg,
		world:    world,
		rng:      rand.New(rand.NewSource(opts.Seed)),
		seed:     opts.Seed,
		bounds:   systems.Bounds{Width: cfg.Map.Width, Height: cfg.Map.Height},

		animalMapper: ecs.NewMap8[
			components.Identity,
			mind,
			components.Position,
			components.Heading,
			components.Traits,
			components.Vitals,
			components.Genome,
			components.Intents,
		](world),
		grassMapper: ecs.NewMap2[components.Position, components.Patch](world),

		idMap:      ecs.NewMap1[components.Identity](world),
		mindMap:    ecs.NewMap1[mind](world),
		posMap:     ecs.NewMap1[components.Position](world),
		headingMap: ecs.NewMap1[components.Heading](world),
		traitsMap:  ecs.NewMap1[components.Traits](world),
		vitalsMap:  ecs.NewMap1[components.Vitals](world),
		genomeMap:  ecs.NewMap1[components.Genome](world),
		intentsMap: ecs.NewMap1[components.Intents](world),
		patchMap:   ecs.NewMap1[components.Patch](world),

		flora:     systems.NewFloraSystem(world, cfg),
		detection: newDetectionPool(),

		handles: make(map[ecs.Entity]*Animal),
		queued:  make(map[ecs.Entity]struct{}),
		nextID:  1,

		perf: telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
	}

	if opts.Telemetry {
		s.telemetry = newTelemetryState(cfg, opts)
	}

	return s
}

// Spawn places a new animal of the given species on the map, as the map
// generator does: adult, fed, with the starting ADN. The species picks its
// diet and runs its spawn hook before Spawn returns. Positions off the map
// are clamped onto it.
func (s *Simulator) Spawn(species string, x, y int) (*Animal, error) {
	sp, err := s.registry.Lookup(species)
	if err != nil {
		return nil, err
	}
	x, y = s.bounds.Clamp(x, y)

	tr := components.DefaultTraits(s.cfg)
	maxFullness := tr.MaxFullness.Value
	fullness := maxFullness / 2
	if maxFullness/2 > 0 {
		fullness += s.rng.Intn(maxFullness / 2)
	}

	vitals := components.Vitals{
		Fullness:   fullness,
		Age:        tr.Puberty.Value,
		AgeOfDeath: -1,
	}
	genome := components.Genome{
		ADN:        s.cfg.Genetics.StartingADN,
		Generation: 1,
	}

	a := s.newAnimal(sp, components.Position{X: x, Y: y}, tr, vitals, genome)

	b := a.behavior()
	b.ChooseInitialDiet(a)
	if l, ok := b.(SpawnListener); ok {
		l.OnSpawn(a)
	}

	s.join(a)
	s.emit(telemetry.NewSpawnEvent(s.tick, a.ID(), sp.Name))
	return a, nil
}

// AddGrass places a grass patch holding amount, clamped onto the map.
func (s *Simulator) AddGrass(x, y, amount int) {
	x, y = s.bounds.Clamp(x, y)
	pos := components.Position{X: x, Y: y}
	patch := components.Patch{Amount: max(amount, 0)}
	e := s.grassMapper.NewEntity(&pos, &patch)
	s.grass = append(s.grass, e)
}

// AddRiver adds an impassable river through the given nodes.
func (s *Simulator) AddRiver(nodes ...geom.Point) (River, error) {
	pl, err := geom.NewPolyline(nodes...)
	if err != nil {
		return River{}, fmt.Errorf("adding river: %w", err)
	}
	r := River{Polyline: pl}
	s.rivers = append(s.rivers, r)
	s.paths = append(s.paths, pl)
	return r, nil
}

// Animals returns the animals currently in the world, dead ones included.
func (s *Simulator) Animals() []AnimalView {
	out := make([]AnimalView, 0, len(s.animals))
	for _, a := range s.animals {
		out = append(out, a.View())
	}
	return out
}

// Handles returns the live animal handles in iteration order.
func (s *Simulator) Handles() []*Animal {
	out := make([]*Animal, len(s.animals))
	copy(out, s.animals)
	return out
}

// Grass returns the grass patches currently in the world.
func (s *Simulator) Grass() []GrassView {
	out := make([]GrassView, 0, len(s.grass))
	for _, e := range s.grass {
		pos := s.posMap.Get(e)
		patch := s.patchMap.Get(e)
		out = append(out, GrassView{
			X:            pos.X,
			Y:            pos.Y,
			Amount:       patch.Amount,
			EdibleRadius: systems.EdibleRadius(patch.Amount, s.cfg),
		})
	}
	return out
}

// Rivers returns the rivers on the map.
func (s *Simulator) Rivers() []River {
	out := make([]River, len(s.rivers))
	copy(out, s.rivers)
	return out
}

// Tick returns the number of completed ticks.
func (s *Simulator) Tick() int { return s.tick }

func (s *Simulator) Width() int  { return s.bounds.Width }
func (s *Simulator) Height() int { return s.bounds.Height }

// Seed returns the seed the random source was created with.
func (s *Simulator) Seed() int64 { return s.seed }

// Config returns the world constants.
func (s *Simulator) Config() *config.Config { return s.cfg }

// Count returns the number of animals of a species, dead ones included.
// An empty name counts every animal.
func (s *Simulator) Count(species string) int {
	if species == "" {
		return len(s.animals)
	}
	n := 0
	for _, a := range s.animals {
		if a.Species() == species {
			n++
		}
	}
	return n
}

// CountAlive returns the number of living animals of a species.
func (s *Simulator) CountAlive(species string) int {
	n := 0
	for _, a := range s.animals {
		if a.Alive() && (species == "" || a.Species() == species) {
			n++
		}
	}
	return n
}

// PerfStats returns the average phase timings of the recent ticks.
func (s *Simulator) PerfStats() telemetry.PerfStats {
	return s.perf.Stats()
}

// Close stops the detection workers and closes telemetry output.
func (s *Simulator) Close() error {
	s.detection.stop()
	if s.telemetry == nil || s.telemetry.output == nil {
		return nil
	}
	return s.telemetry.output.Close()
}
