package game

import (
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/critters/components"
	"github.com/pthm-cable/critters/systems"
	"github.com/pthm-cable/critters/telemetry"
)

// newAnimal creates the entity and its handle. The animal is not yet part
// of the live list; callers join or stage it.
func (s *Simulator) newAnimal(sp Species, pos components.Position, tr components.Traits, vitals components.Vitals, genome components.Genome) *Animal {
	id := components.Identity{ID: s.nextID, Species: sp.Name}
	s.nextID++

	m := mind{behavior: sp.NewBehavior()}
	heading := components.Heading{}
	intents := components.Intents{}

	e := s.animalMapper.NewEntity(&id, &m, &pos, &heading, &tr, &vitals, &genome, &intents)
	a := &Animal{sim: s, entity: e}

	if s.telemetry != nil {
		s.telemetry.lifetime.Register(id.ID, sp.Name, s.tick, genome.Generation)
		s.telemetry.seen[sp.Name] = struct{}{}
	}
	return a
}

// join adds an animal to the live list.
func (s *Simulator) join(a *Animal) {
	s.animals = append(s.animals, a)
	s.handles[a.entity] = a
}

// lookup returns the live animal behind an entity, or nil when the entity
// is gone or is not an animal of this tick.
func (s *Simulator) lookup(e ecs.Entity) *Animal {
	if !s.world.Alive(e) {
		return nil
	}
	return s.handles[e]
}

// breed derives a newborn from two parents, runs its birth hook and stages
// it for the end of the tick.
func (s *Simulator) breed(initiator, mate *Animal) *Animal {
	bi := initiator.breeder()
	bm := mate.breeder()
	nb := systems.Offspring(&bi, &bm, s.cfg)

	sp, err := s.registry.Lookup(bi.Species)
	if err != nil {
		invariant("parent species %q is not registered", bi.Species)
	}

	child := s.newAnimal(sp, nb.Pos, nb.Traits, nb.Vitals, nb.Genome)
	if l, ok := child.behavior().(BirthListener); ok {
		l.OnBirth(child, initiator, mate)
	}
	s.newborns = append(s.newborns, child)

	s.emit(telemetry.NewBirthEvent(s.tick, child.ID(), sp.Name, initiator.ID(), mate.ID()))
	slog.Debug("animal_born",
		"tick", s.tick,
		"id", child.ID(),
		"species", sp.Name,
		"generation", nb.Genome.Generation,
		"x", nb.Pos.X,
		"y", nb.Pos.Y,
	)
	return child
}

// kill marks an animal dead and notifies its behavior. Killing a dead
// animal means the phases are out of order and panics.
func (s *Simulator) kill(a *Animal, cause telemetry.DeathCause) {
	if err := systems.Kill(a.vitals()); err != nil {
		invariant("animal %d: %v", a.ID(), err)
	}

	if l, ok := a.behavior().(DeathListener); ok {
		l.OnDeath(a)
	}

	s.emit(telemetry.NewDeathEvent(s.tick, a.ID(), a.Species(), cause))
	slog.Debug("animal_died",
		"tick", s.tick,
		"id", a.ID(),
		"species", a.Species(),
		"cause", cause.String(),
		"age", a.Age(),
	)
}

// queueRemoval schedules an animal for removal at commit. Queuing twice is
// harmless.
func (s *Simulator) queueRemoval(e ecs.Entity) {
	if _, ok := s.queued[e]; ok {
		return
	}
	s.queued[e] = struct{}{}
	s.removals = append(s.removals, e)
}

// removeGrass deletes emptied grass patches.
func (s *Simulator) removeGrass(emptied []ecs.Entity) {
	if len(emptied) == 0 {
		return
	}
	gone := make(map[ecs.Entity]struct{}, len(emptied))
	for _, e := range emptied {
		if _, ok := gone[e]; ok {
			continue
		}
		gone[e] = struct{}{}
		s.world.RemoveEntity(e)
	}

	kept := s.grass[:0]
	for _, e := range s.grass {
		if _, ok := gone[e]; !ok {
			kept = append(kept, e)
		}
	}
	clear(s.grass[len(kept):])
	s.grass = kept
}

// commit merges staged newborns and purges queued removals. Intents a
// newborn declared in its birth hook missed bookkeeping and are dropped.
func (s *Simulator) commit() {
	for _, a := range s.newborns {
		a.intents().Clear()
		s.join(a)
	}
	clear(s.newborns)
	s.newborns = s.newborns[:0]

	if len(s.removals) == 0 {
		return
	}

	for _, e := range s.removals {
		a := s.lookup(e)
		if a == nil {
			invariant("removing entity %v that is not in the world", e)
		}
		id, species := a.ID(), a.Species()

		s.emit(telemetry.NewRemovalEvent(s.tick, id, species))
		if s.telemetry != nil {
			if ls := s.telemetry.lifetime.Remove(id); ls != nil {
				slog.Debug("animal_removed",
					"tick", s.tick,
					"id", id,
					"species", species,
					"lifespan", ls.Lifespan(s.tick),
					"children", ls.Children,
					"kills", ls.Kills,
				)
			}
		}

		delete(s.handles, e)
		s.world.RemoveEntity(e)
	}

	kept := s.animals[:0]
	for _, a := range s.animals {
		if _, gone := s.queued[a.entity]; !gone {
			kept = append(kept, a)
		}
	}
	clear(s.animals[len(kept):])
	s.animals = kept

	clear(s.queued)
	s.removals = s.removals[:0]
}
